package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/stitchpos/backend/internal/application/order"
)

// RetailOrderHandler handles ready-made sale endpoints
type RetailOrderHandler struct {
	BaseHandler
	service *orderapp.RetailService
}

// NewRetailOrderHandler creates a new RetailOrderHandler
func NewRetailOrderHandler(service *orderapp.RetailService) *RetailOrderHandler {
	return &RetailOrderHandler{service: service}
}

// RegisterRoutes registers retail order routes on the given group
func (h *RetailOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/retail-orders")
	{
		orders.POST("", h.Submit)
		orders.GET("", h.List)
		orders.GET("/by-bill/:billNo", h.GetByBillNo)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.POST("/:id/payments", h.RecordPayment)
		orders.PUT("/:id/lines/:lineId/handover", h.MarkLineGiven)
	}
}

func (h *RetailOrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Order ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Submit handles POST /retail-orders
func (h *RetailOrderHandler) Submit(c *gin.Context) {
	var req orderapp.SubmitRetailOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /retail-orders. An optional phone query lists a
// customer's purchase history.
func (h *RetailOrderHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if phone := c.Query("phone"); phone != "" {
		orders, err := h.service.ListByCustomerPhone(c.Request.Context(), phone, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, orders)
		return
	}

	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /retail-orders/:id
func (h *RetailOrderHandler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByBillNo handles GET /retail-orders/by-bill/:billNo
func (h *RetailOrderHandler) GetByBillNo(c *gin.Context) {
	billNo, err := strconv.ParseInt(c.Param("billNo"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Bill number must be an integer")
		return
	}

	resp, err := h.service.GetByBillNo(c.Request.Context(), billNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus handles PUT /retail-orders/:id/status
func (h *RetailOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordPayment handles POST /retail-orders/:id/payments
func (h *RetailOrderHandler) RecordPayment(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req orderapp.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// markLineGivenRequest toggles handover state for one bill line
type markLineGivenRequest struct {
	Given *bool `json:"given" binding:"required"`
}

// MarkLineGiven handles PUT /retail-orders/:id/lines/:lineId/handover
func (h *RetailOrderHandler) MarkLineGiven(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Line ID must be a valid UUID")
		return
	}

	var req markLineGivenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.MarkLineGiven(c.Request.Context(), id, lineID, *req.Given)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
