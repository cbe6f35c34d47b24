package api

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/oauth"
	"alcyxob/fitness-market/internal/service"
	"alcyxob/fitness-market/internal/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dependencies collects what the HTTP layer needs. Facebook may be nil.
type Dependencies struct {
	Auth      service.AuthService
	Profiles  service.ProfileService
	Directory service.DirectoryService
	Gyms      service.GymService
	Media     service.MediaService
	Resolver  PrincipalResolver
	Sessions  *session.Manager
	Tokens    *TokenManager
	Facebook  oauth.Provider
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.Auth, deps.Resolver, deps.Sessions, deps.Tokens, deps.Facebook)
	trainerHandler := NewTrainerHandler(deps.Directory, deps.Profiles, deps.Media, deps.Sessions)
	clientHandler := NewClientHandler(deps.Profiles, deps.Directory, deps.Sessions)
	gymHandler := NewGymHandler(deps.Gyms, deps.Sessions)

	router.Use(RequestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	// Credential routes never consult the Authorization header, so a stale
	// token cannot block logging in again.
	{
		apiV1.POST("/trainer/signup", authHandler.SignupTrainer)
		apiV1.POST("/trainer/login", authHandler.LoginTrainer)
		apiV1.GET("/trainer/auth/facebook", authHandler.FacebookLogin(domain.RoleTrainer))
		apiV1.GET("/trainer/auth/facebook/callback", authHandler.FacebookCallback(domain.RoleTrainer))

		apiV1.POST("/client/signup", authHandler.SignupClient)
		apiV1.POST("/client/login", authHandler.LoginClient)
		apiV1.GET("/client/auth/facebook", authHandler.FacebookLogin(domain.RoleClient))
		apiV1.GET("/client/auth/facebook/callback", authHandler.FacebookCallback(domain.RoleClient))

		apiV1.POST("/admin/login", authHandler.LoginAdministrator)
		apiV1.POST("/logout", authHandler.Logout)
		apiV1.GET("/flash", authHandler.Flash)

		apiV1.GET("/trainers", trainerHandler.ListTrainers)
		apiV1.GET("/trainers/:id", trainerHandler.GetPublicProfile)
		apiV1.GET("/trainers/:id/contact", trainerHandler.GetContact)
		apiV1.GET("/gyms", gymHandler.ListGyms)
		apiV1.GET("/gyms/:id", gymHandler.GetGym)
	}

	protected := apiV1.Group("")
	protected.Use(Authenticate(deps.Tokens, deps.Sessions, deps.Resolver))
	{
		protected.GET("/me", authHandler.Me)

		trainerGroup := protected.Group("/trainer")
		{
			trainerGroup.GET("/profile", trainerHandler.GetMyProfile)
			trainerGroup.PUT("/profile", trainerHandler.UpdateMyProfile)
			trainerGroup.POST("/media/profile-image", trainerHandler.RequestProfileImageUpload)
			trainerGroup.POST("/media/gym-image", trainerHandler.RequestGymImageUpload)
		}

		clientGroup := protected.Group("/client")
		{
			clientGroup.GET("/profile", clientHandler.GetMyProfile)
			clientGroup.PUT("/profile", clientHandler.UpdateMyProfile)
		}

		protected.GET("/admin/clients", clientHandler.ListClients)
		protected.POST("/gyms", gymHandler.CreateGym)
	}
}
