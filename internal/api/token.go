package api

import (
	"alcyxob/fitness-market/internal/domain"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrTokenGeneration = errors.New("failed to generate authentication token")

// jwtClaims defines the structure of the JWT payload. Subject carries the
// session id; Role records the variant the token was issued for.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies bearer tokens.
type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenManager creates a TokenManager. An empty secret is a
// configuration error.
func NewTokenManager(secret string, expiration time.Duration) *TokenManager {
	if secret == "" {
		panic("JWT secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiration: expiration}
}

// Issue creates a signed token for sessionID.
func (m *TokenManager) Issue(sessionID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: sessionID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fitness-market",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, nil
}

// ParseHeader validates an "Authorization: Bearer <token>" header value.
func (m *TokenManager) ParseHeader(header string) (*jwtClaims, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errors.New("Authorization header format must be Bearer {token}")
	}
	return m.Parse(parts[1])
}

// Parse validates tokenString and returns its claims.
func (m *TokenManager) Parse(tokenString string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("Token has expired")
		}
		return nil, fmt.Errorf("Invalid token: %v", err)
	}
	if !token.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, errors.New("Invalid token or missing claims")
	}
	return claims, nil
}
