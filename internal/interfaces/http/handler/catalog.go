package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stitchpos/backend/internal/application/catalog"
)

// CatalogHandler handles ready-made catalogue item endpoints
type CatalogHandler struct {
	BaseHandler
	service *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalogue routes on the given group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/catalog-items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:code", h.GetByCode)
		items.PUT("/:code/price", h.UpdatePrice)
	}
}

// Create handles POST /catalog-items
func (h *CatalogHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /catalog-items. Pass unsold=true to see only items
// still on the rack.
func (h *CatalogHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}
	unsoldOnly := c.Query("unsold") == "true"

	page, err := h.service.List(c.Request.Context(), filter, unsoldOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByCode handles GET /catalog-items/:code
func (h *CatalogHandler) GetByCode(c *gin.Context) {
	resp, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdatePrice handles PUT /catalog-items/:code/price
func (h *CatalogHandler) UpdatePrice(c *gin.Context) {
	var req catalogapp.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	existing, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.service.UpdatePrice(c.Request.Context(), existing.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
