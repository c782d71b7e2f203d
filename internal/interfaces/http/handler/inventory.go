package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/stitchpos/backend/internal/application/inventory"
	"github.com/stitchpos/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles fabric and accessory stock endpoints
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	fabrics := rg.Group("/fabrics")
	{
		fabrics.POST("", h.CreateFabric)
		fabrics.GET("", h.ListFabrics)
		fabrics.GET("/:code", h.GetFabric)
		fabrics.PUT("/:code/rate", h.UpdateFabricRate)
		fabrics.POST("/:code/adjustments", h.AdjustFabric)
		fabrics.DELETE("/:code/adjustments/:index", h.RollbackFabricAdjustment)
		fabrics.GET("/:code/usage", h.FabricUsage)
	}

	accessories := rg.Group("/accessories")
	{
		accessories.POST("", h.CreateAccessory)
		accessories.GET("", h.ListAccessories)
		accessories.GET("/:code", h.GetAccessory)
		accessories.PUT("/:code/price", h.UpdateAccessoryPrice)
		accessories.POST("/:code/adjustments", h.AdjustAccessory)
		accessories.DELETE("/:code/adjustments/:index", h.RollbackAccessoryAdjustment)
		accessories.GET("/:code/usage", h.AccessoryUsage)
	}
}

// CreateFabric handles POST /fabrics
func (h *InventoryHandler) CreateFabric(c *gin.Context) {
	var req inventoryapp.CreateFabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateFabric(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListFabrics handles GET /fabrics
func (h *InventoryHandler) ListFabrics(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if material := c.Query("material"); material != "" {
		filter.Filters["material"] = material
	}

	page, err := h.service.ListFabrics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetFabric handles GET /fabrics/:code
func (h *InventoryHandler) GetFabric(c *gin.Context) {
	resp, err := h.service.GetFabricByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateFabricRate handles PUT /fabrics/:code/rate
func (h *InventoryHandler) UpdateFabricRate(c *gin.Context) {
	var req inventoryapp.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	existing, err := h.service.GetFabricByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.service.UpdateFabricRate(c.Request.Context(), existing.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustFabric handles POST /fabrics/:code/adjustments
func (h *InventoryHandler) AdjustFabric(c *gin.Context) {
	var req inventoryapp.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.AdjustFabric(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RollbackFabricAdjustment handles DELETE /fabrics/:code/adjustments/:index
func (h *InventoryHandler) RollbackFabricAdjustment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Adjustment index must be an integer")
		return
	}

	resp, err := h.service.RollbackFabricAdjustment(c.Request.Context(), c.Param("code"), index)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// FabricUsage handles GET /fabrics/:code/usage
func (h *InventoryHandler) FabricUsage(c *gin.Context) {
	resp, err := h.service.FabricUsageReport(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateAccessory handles POST /accessories
func (h *InventoryHandler) CreateAccessory(c *gin.Context) {
	var req inventoryapp.CreateAccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateAccessory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListAccessories handles GET /accessories
func (h *InventoryHandler) ListAccessories(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	page, err := h.service.ListAccessories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetAccessory handles GET /accessories/:code
func (h *InventoryHandler) GetAccessory(c *gin.Context) {
	resp, err := h.service.GetAccessoryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateAccessoryPrice handles PUT /accessories/:code/price
func (h *InventoryHandler) UpdateAccessoryPrice(c *gin.Context) {
	var req inventoryapp.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	existing, err := h.service.GetAccessoryByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.service.UpdateAccessoryPrice(c.Request.Context(), existing.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustAccessory handles POST /accessories/:code/adjustments
func (h *InventoryHandler) AdjustAccessory(c *gin.Context) {
	var req inventoryapp.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.AdjustAccessory(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RollbackAccessoryAdjustment handles DELETE /accessories/:code/adjustments/:index
func (h *InventoryHandler) RollbackAccessoryAdjustment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Adjustment index must be an integer")
		return
	}

	resp, err := h.service.RollbackAccessoryAdjustment(c.Request.Context(), c.Param("code"), index)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AccessoryUsage handles GET /accessories/:code/usage
func (h *InventoryHandler) AccessoryUsage(c *gin.Context) {
	resp, err := h.service.AccessoryUsageReport(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
