package handler

import (
	"github.com/gin-gonic/gin"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// TouristHandler handles tourist endpoints. Tourists render as stored.
type TouristHandler struct {
	BaseHandler
	touristService *tourismapp.TouristService
}

// NewTouristHandler creates a new TouristHandler
func NewTouristHandler(touristService *tourismapp.TouristService) *TouristHandler {
	return &TouristHandler{touristService: touristService}
}

// List handles GET /tourists
func (h *TouristHandler) List(c *gin.Context) {
	h.Success(c, h.touristService.List(c.Request.Context()))
}

// GetByID handles GET /tourists/:id
func (h *TouristHandler) GetByID(c *gin.Context) {
	tourist, err := h.touristService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tourist)
}

// Create handles POST /tourists
func (h *TouristHandler) Create(c *gin.Context) {
	var req dto.CreateTouristRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Created(c, h.touristService.Create(c.Request.Context(), req.ToInput()))
}

// Update handles PUT /tourists/:id
func (h *TouristHandler) Update(c *gin.Context) {
	var req dto.UpdateTouristRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tourist, err := h.touristService.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tourist)
}

// Delete handles DELETE /tourists/:id
func (h *TouristHandler) Delete(c *gin.Context) {
	if err := h.touristService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Tourist deleted successfully")
}
