package api

import (
	"alcyxob/fitness-market/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GymHandler struct {
	gyms     service.GymService
	flashes Flasher
}

func NewGymHandler(gyms service.GymService, flashes Flasher) *GymHandler {
	return &GymHandler{gyms: gyms, flashes: flashes}
}

// ListGyms godoc
// @Summary All gyms with their owners
// @Router /gyms [get]
func (h *GymHandler) ListGyms(c *gin.Context) {
	views, err := h.gyms.ListGyms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]GymResponse, 0, len(views))
	for i := range views {
		resp = append(resp, MapGym(&views[i].Gym, views[i].Owner))
	}
	c.JSON(http.StatusOK, resp)
}

// GetGym godoc
// @Summary One gym with its owner
// @Router /gyms/{id} [get]
func (h *GymHandler) GetGym(c *gin.Context) {
	id, ok := pathObjectID(c)
	if !ok {
		return
	}
	view, err := h.gyms.GetGym(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGym(&view.Gym, view.Owner))
}

// CreateGym godoc
// @Summary Create the authenticated trainer's gym
// @Security BearerAuth
// @Router /gyms [post]
func (h *GymHandler) CreateGym(c *gin.Context) {
	var req service.CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	gym, err := h.gyms.CreateGym(c.Request.Context(), currentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	addFlash(c, h.flashes, msgGymCreated)
	c.JSON(http.StatusCreated, MapGym(gym, nil))
}
