package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeHandler mounts routes the way the real handlers do, one resource
// prefix per registrar.
type fakeHandler struct {
	prefix string
	routes []string
}

func (h *fakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(h.prefix)
	for _, route := range h.routes {
		g.GET(route, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	}
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegisterChains(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	returned := r.
		Register(&fakeHandler{prefix: "/fabrics"}).
		Register(&fakeHandler{prefix: "/accessories"})

	assert.Same(t, r, returned)
	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup(t *testing.T) {
	t.Run("mounts handlers under the versioned prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine, WithAPIVersion("v1"))
		r.Register(&fakeHandler{prefix: "/fabrics", routes: []string{"", "/:code"}}).
			Register(&fakeHandler{prefix: "/retail-orders", routes: []string{""}})
		r.Setup()

		for _, path := range []string{
			"/api/v1/fabrics",
			"/api/v1/fabrics/FAB-001",
			"/api/v1/retail-orders",
		} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("unregistered path stays 404", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)
		r.Register(&fakeHandler{prefix: "/fabrics", routes: []string{""}})
		r.Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("version segment comes from the option", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine, WithAPIVersion("v2"))
		r.Register(&fakeHandler{prefix: "/fabrics", routes: []string{""}})
		r.Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/fabrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fabrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
