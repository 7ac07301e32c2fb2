package handler

import (
	"github.com/gin-gonic/gin"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// TransactionHandler handles income and expense endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *tourismapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *tourismapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	h.Success(c, dto.NewTransactionListResponse(h.transactionService.List(c.Request.Context())))
}

// GetByID handles GET /transactions/:id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	tx, err := h.transactionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewTransactionResponse(tx))
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tx := h.transactionService.Create(c.Request.Context(), req.ToInput())
	h.Created(c, dto.NewTransactionResponse(tx))
}

// Update handles PUT /transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tx, err := h.transactionService.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewTransactionResponse(tx))
}

// Delete handles DELETE /transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.transactionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Transaction deleted successfully")
}
