package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/stitchpos/backend/internal/application/partner"
)

// CustomerHandler handles customer directory endpoints
type CustomerHandler struct {
	BaseHandler
	service *partnerapp.Service
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *partnerapp.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers customer routes on the given group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.PUT("", h.Upsert)
		customers.GET("", h.List)
		customers.GET("/lookup", h.LookupByPhone)
		customers.GET("/:id", h.Get)
	}
}

// Upsert handles PUT /customers. The phone number is the natural key;
// an existing customer is renamed in place, a new one is created.
func (h *CustomerHandler) Upsert(c *gin.Context) {
	var req partnerapp.UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// LookupByPhone handles GET /customers/lookup?phone=...; a miss
// returns success with null data so the POS form can prefill without
// treating new customers as errors.
func (h *CustomerHandler) LookupByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		h.BadRequest(c, "phone query parameter is required")
		return
	}

	resp, err := h.service.LookupByPhone(c.Request.Context(), phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Customer ID must be a valid UUID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
