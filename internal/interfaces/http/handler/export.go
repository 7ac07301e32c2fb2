package handler

import (
	"github.com/gin-gonic/gin"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// ExportHandler handles the export endpoints
type ExportHandler struct {
	BaseHandler
	exportService *tourismapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *tourismapp.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Tours handles POST /export/tours
func (h *ExportHandler) Tours(c *gin.Context) {
	h.export(c, tourismapp.ExportTours)
}

// Tourists handles POST /export/tourists
func (h *ExportHandler) Tourists(c *gin.Context) {
	h.export(c, tourismapp.ExportTourists)
}

// Transactions handles POST /export/transactions
func (h *ExportHandler) Transactions(c *gin.Context) {
	h.export(c, tourismapp.ExportTransactions)
}

func (h *ExportHandler) export(c *gin.Context, kind tourismapp.ExportKind) {
	var req dto.ExportRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.exportService.Export(c.Request.Context(), kind, req.ToExportRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
