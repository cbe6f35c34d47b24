package api

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/oauth"
	"alcyxob/fitness-market/internal/service"
	"alcyxob/fitness-market/internal/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler serves signup, login, logout and the Facebook flow.
type AuthHandler struct {
	authService service.AuthService
	resolver    PrincipalResolver
	sessions    *session.Manager
	tokens      *TokenManager
	facebook    oauth.Provider // nil when Facebook login is disabled
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, resolver PrincipalResolver, sessions *session.Manager, tokens *TokenManager, facebook oauth.Provider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		resolver:    resolver,
		sessions:    sessions,
		tokens:      tokens,
		facebook:    facebook,
	}
}

// establish binds p to the cookie session and answers with a bearer token.
func (h *AuthHandler) establish(c *gin.Context, status int, p domain.Principal) {
	sessionID := h.resolver.Serialize(p)
	token, err := h.tokens.Issue(sessionID, p.Role())
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.sessions.Login(c.Writer, c.Request, sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, AuthResponse{Token: token, Principal: MapPrincipal(p)})
}

// SignupTrainer godoc
// @Summary Register a trainer with email and password
// @Router /trainer/signup [post]
func (h *AuthHandler) SignupTrainer(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	trainer, err := h.authService.SignupTrainer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, http.StatusCreated, trainer)
}

// SignupClient godoc
// @Summary Register a client with email and password
// @Router /client/signup [post]
func (h *AuthHandler) SignupClient(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	client, err := h.authService.SignupClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, http.StatusCreated, client)
}

// LoginTrainer godoc
// @Summary Log in a trainer
// @Router /trainer/login [post]
func (h *AuthHandler) LoginTrainer(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	trainer, err := h.authService.LoginTrainer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, http.StatusOK, trainer)
}

// LoginClient godoc
// @Summary Log in a client
// @Router /client/login [post]
func (h *AuthHandler) LoginClient(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	client, err := h.authService.LoginClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, http.StatusOK, client)
}

// LoginAdministrator godoc
// @Summary Log in an administrator
// @Router /admin/login [post]
func (h *AuthHandler) LoginAdministrator(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	admin, err := h.authService.LoginAdministrator(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, http.StatusOK, admin)
}

// Logout clears the cookie session. Bearer tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the resolved principal.
func (h *AuthHandler) Me(c *gin.Context) {
	p := currentPrincipal(c)
	if err := access.Require(p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPrincipal(p))
}

// Flash drains the one-shot messages of the session.
func (h *AuthHandler) Flash(c *gin.Context) {
	messages, err := h.sessions.Flashes(c.Writer, c.Request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// FacebookLogin redirects to the Facebook dialog for role.
func (h *AuthHandler) FacebookLogin(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.facebook == nil {
			abortWithError(c, http.StatusNotFound, "Facebook login is not configured")
			return
		}
		state, err := oauth.NewState()
		if err != nil {
			respondError(c, err)
			return
		}
		if err := h.sessions.SetOAuthState(c.Writer, c.Request, state); err != nil {
			respondError(c, err)
			return
		}
		c.Redirect(http.StatusFound, h.facebook.AuthCodeURL(role, state))
	}
}

// FacebookCallback completes the Facebook flow for role, provisioning the
// account on first login.
func (h *AuthHandler) FacebookCallback(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.facebook == nil {
			abortWithError(c, http.StatusNotFound, "Facebook login is not configured")
			return
		}
		if reason := c.Query("error"); reason != "" {
			logrus.WithFields(logrus.Fields{"role": role, "reason": reason}).Info("Facebook login declined")
			abortWithError(c, http.StatusUnauthorized, "Facebook login failed")
			return
		}
		ok, err := h.sessions.ConsumeOAuthState(c.Writer, c.Request, c.Query("state"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			abortWithError(c, http.StatusBadRequest, "Invalid OAuth state")
			return
		}

		ctx := c.Request.Context()
		fb, err := h.facebook.Exchange(ctx, role, c.Query("code"))
		if err != nil {
			respondError(c, err)
			return
		}
		profile := service.OAuthProfile{
			Provider: fb.Provider,
			ID:       fb.ID,
			Emails:   []string{fb.Email},
			Name:     fb.Name,
			Token:    fb.Token,
		}

		var principal domain.Principal
		switch role {
		case domain.RoleTrainer:
			principal, err = h.authService.TrainerFromOAuth(ctx, profile)
		default:
			principal, err = h.authService.ClientFromOAuth(ctx, profile)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		h.establish(c, http.StatusOK, principal)
	}
}
