package api

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/identity"
	"alcyxob/fitness-market/internal/oauth"
	"alcyxob/fitness-market/internal/repository"
	"alcyxob/fitness-market/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// User facing messages.
const (
	msgDuplicateEmail  = "That email is already taken!"
	msgUnknownAccount  = "The user does not exist. Click sign up to register a user."
	msgInvalidPassword = "Password is invalid, Please check your password and try again."
	msgLoginRequired   = "Please log in to continue."
	msgNotOwner        = "Sorry, only the owner can modify this gym"
	msgTrainerHasGym   = "You already own a gym"
	msgNotFound        = "Record does not exist"
	msgGymLinkFailed   = "The gym was created but could not be linked to your profile."
	msgInternal        = "Something went wrong."

	msgProfileUpdated = "Successfully updated your profile"
	msgGymCreated     = "Successfully added a new Gym"
)

// Flasher queues one-shot messages for the next page view.
type Flasher interface {
	AddFlash(w http.ResponseWriter, r *http.Request, message string) error
}

// addFlash queues message after a committed change. A failure is logged
// only; the change itself already succeeded.
func addFlash(c *gin.Context, flashes Flasher, message string) {
	if err := flashes.AddFlash(c.Writer, c.Request, message); err != nil {
		logrus.WithError(err).WithField("path", c.FullPath()).Warn("Failed to queue flash message")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondError maps service, guard and store errors onto HTTP responses.
// Only unexpected errors are logged.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var roleErr *access.RoleError
	switch {
	case errors.As(err, &verr):
		msgs := verr.Messages()
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgs[0], "messages": msgs})
	case errors.Is(err, service.ErrDuplicateEmail):
		abortWithError(c, http.StatusConflict, msgDuplicateEmail)
	case errors.Is(err, service.ErrUnknownAccount):
		abortWithError(c, http.StatusUnauthorized, msgUnknownAccount)
	case errors.Is(err, service.ErrInvalidPassword):
		abortWithError(c, http.StatusUnauthorized, msgInvalidPassword)
	case errors.Is(err, access.ErrUnauthenticated), errors.Is(err, identity.ErrUnknownPrincipal):
		abortWithError(c, http.StatusUnauthorized, msgLoginRequired)
	case errors.As(err, &roleErr):
		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Sorry only %s can access this route", roleErr.Role))
	case errors.Is(err, access.ErrNotOwner):
		abortWithError(c, http.StatusForbidden, msgNotOwner)
	case errors.Is(err, service.ErrTrainerHasGym):
		abortWithError(c, http.StatusConflict, msgTrainerHasGym)
	case errors.Is(err, service.ErrInvalidContentType):
		abortWithError(c, http.StatusBadRequest, "Only image uploads are allowed")
	case errors.Is(err, service.ErrMediaDisabled):
		abortWithError(c, http.StatusServiceUnavailable, "Media uploads are not configured")
	case errors.Is(err, service.ErrOAuthProfileInvalid), errors.Is(err, oauth.ErrExchangeFailed):
		abortWithError(c, http.StatusUnauthorized, "Facebook login failed")
	case errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, repository.ErrDuplicateKey):
		abortWithError(c, http.StatusConflict, "Record already exists")
	case errors.Is(err, service.ErrGymLinkFailed):
		abortWithError(c, http.StatusInternalServerError, msgGymLinkFailed)
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		abortWithError(c, http.StatusInternalServerError, msgInternal)
	}
}
