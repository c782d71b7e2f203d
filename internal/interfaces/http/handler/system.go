package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchpos/backend/internal/infrastructure/persistence"
	"github.com/stitchpos/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and diagnostics endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// RegisterRoutes registers system routes on the given group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/health", h.Health)
		system.GET("/stats", h.Stats)
	}
}

// Health handles GET /system/health. Reports degraded with a 503 when
// the database does not answer.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "up"
	httpStatus := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":   status,
		"app":      h.appName,
		"env":      h.env,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	}))
}

// Stats handles GET /system/stats
func (h *SystemHandler) Stats(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		h.InternalError(c, "Unable to read connection pool stats")
		return
	}
	h.Success(c, stats)
}
