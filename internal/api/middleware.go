package api

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/identity"
	"alcyxob/fitness-market/internal/session"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextPrincipalKey = "principal"
	ContextRequestIDKey = "requestID"
)

const headerRequestID = "X-Request-ID"

// PrincipalResolver turns principals into session ids and back.
type PrincipalResolver interface {
	Serialize(p domain.Principal) string
	Deserialize(ctx context.Context, sessionID string) (domain.Principal, error)
}

// RequestLogger logs one entry per request and tags it with a request id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(headerRequestID, requestID)

		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
	}
}

// Authenticate resolves the principal behind a bearer token or, failing
// that, the session cookie. Requests without either pass through
// anonymously; handlers apply the access guards themselves.
func Authenticate(tokens *TokenManager, sessions *session.Manager, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			sessionID  string
			tokenRole  domain.Role
			fromCookie bool
		)
		if header := c.GetHeader("Authorization"); header != "" {
			claims, err := tokens.ParseHeader(header)
			if err != nil {
				abortWithError(c, http.StatusUnauthorized, err.Error())
				return
			}
			sessionID, tokenRole = claims.Subject, claims.Role
		} else if sid, ok := sessions.SessionID(c.Request); ok {
			sessionID, fromCookie = sid, true
		}
		if sessionID == "" {
			c.Next()
			return
		}

		principal, err := resolver.Deserialize(c.Request.Context(), sessionID)
		if errors.Is(err, identity.ErrUnknownPrincipal) || errors.Is(err, identity.ErrAmbiguousPrincipal) {
			if fromCookie {
				_ = sessions.Logout(c.Writer, c.Request)
			}
			abortWithError(c, http.StatusUnauthorized, "Session is no longer valid, please log in again")
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		if tokenRole != "" && tokenRole != principal.Role() {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// currentPrincipal returns the principal resolved by Authenticate, or nil.
func currentPrincipal(c *gin.Context) domain.Principal {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil
	}
	p, _ := raw.(domain.Principal)
	return p
}
