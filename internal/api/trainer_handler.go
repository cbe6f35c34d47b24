package api

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"alcyxob/fitness-market/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainerHandler struct {
	directory service.DirectoryService
	profiles  service.ProfileService
	media     service.MediaService
	flashes   Flasher
}

func NewTrainerHandler(
	directory service.DirectoryService,
	profiles service.ProfileService,
	media service.MediaService,
	flashes Flasher,
) *TrainerHandler {
	return &TrainerHandler{
		directory: directory,
		profiles:  profiles,
		media:     media,
		flashes:   flashes,
	}
}

// pathObjectID parses the :id parameter. Malformed ids answer 404 like
// unknown ones.
func pathObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, msgNotFound)
		return primitive.NilObjectID, false
	}
	return id, true
}

// ListTrainers godoc
// @Summary Public trainer directory
// @Param specialization query string false "Filter by specialization"
// @Router /trainers [get]
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.directory.ListTrainers(c.Request.Context(), c.Query("specialization"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]TrainerResponse, 0, len(trainers))
	for i := range trainers {
		resp = append(resp, MapTrainer(&trainers[i], nil))
	}
	c.JSON(http.StatusOK, resp)
}

// GetPublicProfile godoc
// @Summary Public trainer profile with its gym
// @Router /trainers/{id} [get]
func (h *TrainerHandler) GetPublicProfile(c *gin.Context) {
	id, ok := pathObjectID(c)
	if !ok {
		return
	}
	view, err := h.directory.TrainerPublicProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTrainerView(view))
}

// GetContact godoc
// @Summary Trainer contact card
// @Router /trainers/{id}/contact [get]
func (h *TrainerHandler) GetContact(c *gin.Context) {
	id, ok := pathObjectID(c)
	if !ok {
		return
	}
	view, err := h.directory.TrainerContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTrainerView(view))
}

// GetMyProfile godoc
// @Summary The authenticated trainer's profile
// @Security BearerAuth
// @Router /trainer/profile [get]
func (h *TrainerHandler) GetMyProfile(c *gin.Context) {
	p := currentPrincipal(c)
	if err := access.Require(p, access.Role(domain.RoleTrainer)); err != nil {
		respondError(c, err)
		return
	}
	view, err := h.profiles.GetTrainer(c.Request.Context(), p.PrincipalID(), repository.WithoutCredentials)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapTrainerView(view))
}

// UpdateMyProfile godoc
// @Summary Update the authenticated trainer's profile
// @Security BearerAuth
// @Router /trainer/profile [put]
func (h *TrainerHandler) UpdateMyProfile(c *gin.Context) {
	var req service.TrainerProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	trainer, err := h.profiles.UpdateTrainerProfile(c.Request.Context(), currentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	addFlash(c, h.flashes, msgProfileUpdated)
	c.JSON(http.StatusOK, gin.H{"message": msgProfileUpdated, "trainer": MapTrainer(trainer, nil)})
}

// RequestProfileImageUpload godoc
// @Summary Presigned upload URL for the trainer's profile image
// @Security BearerAuth
// @Router /trainer/media/profile-image [post]
func (h *TrainerHandler) RequestProfileImageUpload(c *gin.Context) {
	var req service.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	ticket, err := h.media.TrainerImageUpload(c.Request.Context(), currentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// RequestGymImageUpload godoc
// @Summary Presigned upload URL for a gym image
// @Security BearerAuth
// @Router /trainer/media/gym-image [post]
func (h *TrainerHandler) RequestGymImageUpload(c *gin.Context) {
	var req service.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	ticket, err := h.media.GymImageUpload(c.Request.Context(), currentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
