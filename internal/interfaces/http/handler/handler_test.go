package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/memory"
	"github.com/tourdesk/backend/internal/infrastructure/storage"
	"github.com/tourdesk/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI wires every handler over a fresh store and in-memory blob storage
type testAPI struct {
	engine *gin.Engine
	store  *memory.Store
	blobs  *storage.MemoryStorage
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	blobs := storage.NewMemoryStorage()

	tours := NewTourHandler(tourismapp.NewTourService(store.Tours))
	tourists := NewTouristHandler(tourismapp.NewTouristService(store.Tourists))
	transactions := NewTransactionHandler(tourismapp.NewTransactionService(store.Transactions))
	fileService := tourismapp.NewFileService(store.Files, blobs)
	files := NewFileHandler(fileService, 1<<10)
	dashboard := NewDashboardHandler(tourismapp.NewDashboardService(store))
	export := NewExportHandler(tourismapp.NewExportService(store.Tours, store.Tourists, store.Transactions))
	system := NewSystemHandler("TourDesk API", fileService)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", system.Health)

	api := engine.Group("/api/v1")
	api.GET("/stats", dashboard.Stats)
	api.GET("/meta/categories", dashboard.Categories)

	api.GET("/tours", tours.List)
	api.POST("/tours", tours.Create)
	api.GET("/tours/:id", tours.GetByID)
	api.PUT("/tours/:id", tours.Update)
	api.DELETE("/tours/:id", tours.Delete)

	api.GET("/tourists", tourists.List)
	api.POST("/tourists", tourists.Create)
	api.GET("/tourists/:id", tourists.GetByID)
	api.PUT("/tourists/:id", tourists.Update)
	api.DELETE("/tourists/:id", tourists.Delete)

	api.GET("/transactions", transactions.List)
	api.POST("/transactions", transactions.Create)
	api.GET("/transactions/:id", transactions.GetByID)
	api.PUT("/transactions/:id", transactions.Update)
	api.DELETE("/transactions/:id", transactions.Delete)

	api.GET("/files", files.List)
	api.POST("/files/upload", files.Upload)
	api.GET("/files/:id", files.GetByID)
	api.PUT("/files/:id", files.Update)
	api.DELETE("/files/:id", files.Delete)
	api.GET("/files/:id/download", files.Download)

	api.POST("/export/tours", export.Tours)
	api.POST("/export/tourists", export.Tourists)
	api.POST("/export/transactions", export.Transactions)

	api.GET("/system/info", system.GetSystemInfo)
	api.GET("/system/ping", system.Ping)

	return &testAPI{engine: engine, store: store, blobs: blobs}
}

func (a *testAPI) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) json(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	return a.do(method, path, r, "application/json")
}

// envelope is the decoded response wrapper with raw data
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
