package handler

import (
	"github.com/gin-gonic/gin"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// TourHandler handles tour endpoints
type TourHandler struct {
	BaseHandler
	tourService *tourismapp.TourService
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tourService *tourismapp.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// List handles GET /tours
func (h *TourHandler) List(c *gin.Context) {
	h.Success(c, dto.NewTourListResponse(h.tourService.List(c.Request.Context())))
}

// GetByID handles GET /tours/:id
func (h *TourHandler) GetByID(c *gin.Context) {
	tour, err := h.tourService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewTourResponse(tour))
}

// Create handles POST /tours
func (h *TourHandler) Create(c *gin.Context) {
	var req dto.CreateTourRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tour := h.tourService.Create(c.Request.Context(), req.ToInput())
	h.Created(c, dto.NewTourResponse(tour))
}

// Update handles PUT /tours/:id
func (h *TourHandler) Update(c *gin.Context) {
	var req dto.UpdateTourRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tour, err := h.tourService.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewTourResponse(tour))
}

// Delete handles DELETE /tours/:id
func (h *TourHandler) Delete(c *gin.Context) {
	if err := h.tourService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Tour deleted successfully")
}
