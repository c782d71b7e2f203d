package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/stitchpos/backend/internal/application/order"
)

// StitchingOrderHandler handles custom tailoring order endpoints
type StitchingOrderHandler struct {
	BaseHandler
	service *orderapp.StitchingService
}

// NewStitchingOrderHandler creates a new StitchingOrderHandler
func NewStitchingOrderHandler(service *orderapp.StitchingService) *StitchingOrderHandler {
	return &StitchingOrderHandler{service: service}
}

// RegisterRoutes registers stitching order routes on the given group
func (h *StitchingOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/stitching-orders")
	{
		orders.POST("", h.Submit)
		orders.GET("", h.List)
		orders.GET("/by-number/:orderNo", h.GetByOrderNo)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/items", h.ReplaceItems)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.POST("/:id/payments", h.RecordPayment)
	}
}

func (h *StitchingOrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Order ID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Submit handles POST /stitching-orders
func (h *StitchingOrderHandler) Submit(c *gin.Context) {
	var req orderapp.SubmitStitchingOrderRequest
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

// List handles GET /stitching-orders. An optional status query limits
// results to one lifecycle state; an optional phone query lists a
// customer's order history.
func (h *StitchingOrderHandler) List(c *gin.Context) {
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
		page, err := h.service.ListByStatus(c.Request.Context(), status, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /stitching-orders/:id
func (h *StitchingOrderHandler) Get(c *gin.Context) {
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

// GetByOrderNo handles GET /stitching-orders/by-number/:orderNo
func (h *StitchingOrderHandler) GetByOrderNo(c *gin.Context) {
	resp, err := h.service.GetByOrderNo(c.Request.Context(), c.Param("orderNo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReplaceItems handles PUT /stitching-orders/:id/items
func (h *StitchingOrderHandler) ReplaceItems(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req orderapp.ReplaceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.ReplaceItems(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus handles PUT /stitching-orders/:id/status
func (h *StitchingOrderHandler) UpdateStatus(c *gin.Context) {
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

// RecordPayment handles POST /stitching-orders/:id/payments
func (h *StitchingOrderHandler) RecordPayment(c *gin.Context) {
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
