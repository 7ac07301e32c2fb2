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

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("tours", "/tours")
	group.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "list")
	})

	NewRouter(engine).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/tours")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/tours").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("files", "/files")
		assert.Equal(t, "files", g.Name())
		assert.Equal(t, "/files", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g := NewDomainGroup("tours", "/tours")
		g.GET("/:id", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id", ok)

		engine := gin.New()
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/tours/1"},
			{http.MethodPost, "/api/v1/tours"},
			{http.MethodPut, "/api/v1/tours/1"},
			{http.MethodPatch, "/api/v1/tours/1"},
			{http.MethodDelete, "/api/v1/tours/1"},
		} {
			w := serve(engine, tc.method, tc.path)
			assert.Equal(t, http.StatusOK, w.Code, tc.method)
			assert.Equal(t, tc.method, w.Body.String())
		}
	})

	t.Run("group middleware runs before route middleware", func(t *testing.T) {
		var order []string
		step := func(name string) gin.HandlerFunc {
			return func(c *gin.Context) {
				order = append(order, name)
				c.Next()
			}
		}

		g := NewDomainGroup("files", "/files").Use(step("group"))
		g.POST("/upload", step("route"), func(c *gin.Context) {
			order = append(order, "handler")
			c.Status(http.StatusCreated)
		})

		engine := gin.New()
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/files/upload").Code)
		assert.Equal(t, []string{"group", "route", "handler"}, order)
	})

	t.Run("subgroups inherit the parent prefix", func(t *testing.T) {
		g := NewDomainGroup("system", "/system")
		g.Group("meta", "/meta").GET("/info", func(c *gin.Context) {
			c.String(http.StatusOK, "info")
		})

		engine := gin.New()
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/system/meta/info").Code)
	})
}
