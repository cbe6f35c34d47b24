package api

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"alcyxob/fitness-market/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	profiles  service.ProfileService
	directory service.DirectoryService
	flashes   Flasher
}

func NewClientHandler(profiles service.ProfileService, directory service.DirectoryService, flashes Flasher) *ClientHandler {
	return &ClientHandler{profiles: profiles, directory: directory, flashes: flashes}
}

// GetMyProfile godoc
// @Summary The authenticated client's profile
// @Security BearerAuth
// @Router /client/profile [get]
func (h *ClientHandler) GetMyProfile(c *gin.Context) {
	p := currentPrincipal(c)
	if err := access.Require(p, access.Role(domain.RoleClient)); err != nil {
		respondError(c, err)
		return
	}
	client, err := h.profiles.GetClient(c.Request.Context(), p.PrincipalID(), repository.WithoutCredentials)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapClient(client))
}

// UpdateMyProfile godoc
// @Summary Update the authenticated client's profile
// @Security BearerAuth
// @Router /client/profile [put]
func (h *ClientHandler) UpdateMyProfile(c *gin.Context) {
	var req service.ClientProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	client, err := h.profiles.UpdateClientProfile(c.Request.Context(), currentPrincipal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	addFlash(c, h.flashes, msgProfileUpdated)
	c.JSON(http.StatusOK, gin.H{"message": msgProfileUpdated, "client": MapClient(client)})
}

// ListClients godoc
// @Summary All clients, for administrators
// @Security BearerAuth
// @Router /admin/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.directory.ListClients(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, MapClient(&clients[i]))
	}
	c.JSON(http.StatusOK, resp)
}
