package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("normal order payload passes", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(1 << 20))
		router.POST("/api/v1/stitching-orders", func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		payload := `{"customer_name":"Asha","customer_phone":"9123456780"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stitching-orders", strings.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("oversized payload is rejected up front", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(100))
		router.POST("/api/v1/stitching-orders", func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/stitching-orders",
			strings.NewReader(strings.Repeat("x", 200)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})

	t.Run("bodyless GET is unaffected", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(10))
		router.GET("/api/v1/fabrics", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fabrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("chunked body without Content-Length still hits the cap", func(t *testing.T) {
		router := gin.New()
		router.Use(BodyLimit(50))
		router.POST("/api/v1/stitching-orders", func(c *gin.Context) {
			if _, err := io.ReadAll(c.Request.Body); err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			c.Status(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/stitching-orders",
			strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
