package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tourdesk/backend/internal/interfaces/http/handler"
	"github.com/tourdesk/backend/internal/interfaces/http/middleware"
)

// multipartOverhead is allowed on top of the file limit for form framing
const multipartOverhead int64 = 1 << 20

// Handlers are the endpoint handlers mounted under /api/v1
type Handlers struct {
	Tours        *handler.TourHandler
	Tourists     *handler.TouristHandler
	Transactions *handler.TransactionHandler
	Files        *handler.FileHandler
	Dashboard    *handler.DashboardHandler
	Export       *handler.ExportHandler
	System       *handler.SystemHandler
	// Docs is optional; nil leaves /openapi.json unmounted
	Docs *handler.DocsHandler
}

// RouteOptions holds per-route limits and the create-route guard
type RouteOptions struct {
	MaxBodySize   int64
	MaxUploadSize int64
	// Idempotency guards create and upload routes; nil disables it
	Idempotency gin.HandlerFunc
}

// APIGroups builds the resource groups of the tour desk API. JSON routes
// share MaxBodySize; the upload route alone accepts MaxUploadSize.
func APIGroups(h Handlers, opts RouteOptions) []RouteRegistrar {
	jsonLimit := middleware.BodyLimit(opts.MaxBodySize)
	guard := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if opts.Idempotency == nil {
			return handlers
		}
		return append([]gin.HandlerFunc{opts.Idempotency}, handlers...)
	}

	dashboard := NewDomainGroup("dashboard", "")
	dashboard.GET("/stats", h.Dashboard.Stats)
	dashboard.GET("/meta/categories", h.Dashboard.Categories)

	tours := NewDomainGroup("tours", "/tours").Use(jsonLimit)
	tours.GET("", h.Tours.List)
	tours.POST("", guard(h.Tours.Create)...)
	tours.GET("/:id", h.Tours.GetByID)
	tours.PUT("/:id", h.Tours.Update)
	tours.DELETE("/:id", h.Tours.Delete)

	tourists := NewDomainGroup("tourists", "/tourists").Use(jsonLimit)
	tourists.GET("", h.Tourists.List)
	tourists.POST("", guard(h.Tourists.Create)...)
	tourists.GET("/:id", h.Tourists.GetByID)
	tourists.PUT("/:id", h.Tourists.Update)
	tourists.DELETE("/:id", h.Tourists.Delete)

	transactions := NewDomainGroup("transactions", "/transactions").Use(jsonLimit)
	transactions.GET("", h.Transactions.List)
	transactions.POST("", guard(h.Transactions.Create)...)
	transactions.GET("/:id", h.Transactions.GetByID)
	transactions.PUT("/:id", h.Transactions.Update)
	transactions.DELETE("/:id", h.Transactions.Delete)

	files := NewDomainGroup("files", "/files")
	files.GET("", h.Files.List)
	files.POST("/upload", guard(middleware.BodyLimit(opts.MaxUploadSize+multipartOverhead), h.Files.Upload)...)
	files.GET("/:id", h.Files.GetByID)
	files.PUT("/:id", jsonLimit, h.Files.Update)
	files.DELETE("/:id", h.Files.Delete)
	files.GET("/:id/download", h.Files.Download)

	export := NewDomainGroup("export", "/export").Use(jsonLimit)
	export.POST("/tours", h.Export.Tours)
	export.POST("/tourists", h.Export.Tourists)
	export.POST("/transactions", h.Export.Transactions)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	groups := []RouteRegistrar{dashboard, tours, tourists, transactions, files, export, system}
	if h.Docs != nil {
		docs := NewDomainGroup("docs", "")
		docs.GET("/openapi.json", h.Docs.OpenAPI)
		groups = append(groups, docs)
	}
	return groups
}
