package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/backend/internal/infrastructure/logger"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Version is the reported API version
const Version = "1.0.0"

// StorageChecker reports whether the blob store is reachable
type StorageChecker interface {
	CheckStorage(ctx context.Context) error
}

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	startTime time.Time
	storage   StorageChecker
}

// NewSystemHandler creates a new SystemHandler. storage may be nil.
func NewSystemHandler(name string, storage StorageChecker) *SystemHandler {
	return &SystemHandler{
		name:      name,
		startTime: time.Now(),
		storage:   storage,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo handles GET /system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping handles GET /system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Time    string `json:"time"`
}

// Health handles GET /health. It answers 503 when the blob store fails.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Storage: "ok",
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.storage.CheckStorage(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Storage health check failed", zap.Error(err))
			resp.Status = "unhealthy"
			resp.Storage = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
