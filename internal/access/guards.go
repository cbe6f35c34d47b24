// Package access holds the request guards. Every guard is a pure predicate
// over an already resolved principal; handlers call them explicitly.
package access

import (
	"alcyxob/fitness-market/internal/domain"
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrRoleRequired    = errors.New("role required")
	ErrNotOwner        = errors.New("not the owner of this resource")
)

// IsAuthenticated reports whether a principal was resolved.
func IsAuthenticated(p domain.Principal) bool {
	if p == nil {
		return false
	}
	switch v := p.(type) {
	case *domain.Trainer:
		return v != nil
	case *domain.Client:
		return v != nil
	case *domain.Administrator:
		return v != nil
	}
	return false
}

// HasRole reports whether p belongs to role. Trainers and clients qualify
// with the role flag set by local signup or with a provider email from
// OAuth provisioning. Administrators need the admin flag.
func HasRole(p domain.Principal, role domain.Role) bool {
	if !IsAuthenticated(p) || p.Role() != role {
		return false
	}
	switch v := p.(type) {
	case *domain.Trainer:
		return v.IsTrainer || hasOAuthEmail(v.Auth)
	case *domain.Client:
		return v.IsClient || hasOAuthEmail(v.Auth)
	case *domain.Administrator:
		return v.IsAdmin
	}
	return false
}

func hasOAuthEmail(a domain.AuthMethod) bool {
	o, ok := domain.OAuthIdentity(a)
	return ok && o.Email != ""
}

// IsOwner reports whether p created gym.
func IsOwner(p domain.Principal, gym *domain.Gym) bool {
	if !IsAuthenticated(p) || gym == nil {
		return false
	}
	if _, ok := p.(*domain.Trainer); !ok {
		return false
	}
	return gym.TrainerID == p.PrincipalID()
}

// Check is one link of a guard chain.
type Check func(p domain.Principal) error

// Authenticated fails with ErrUnauthenticated when no principal is present.
func Authenticated() Check {
	return func(p domain.Principal) error {
		if !IsAuthenticated(p) {
			return ErrUnauthenticated
		}
		return nil
	}
}

// RoleError names the role a denied principal lacked. It matches
// ErrRoleRequired with errors.Is.
type RoleError struct {
	Role domain.Role
}

func (e *RoleError) Error() string { return fmt.Sprintf("%s: %s", ErrRoleRequired, e.Role) }
func (e *RoleError) Unwrap() error { return ErrRoleRequired }

// Role fails with a *RoleError when p is not a member of role.
func Role(role domain.Role) Check {
	return func(p domain.Principal) error {
		if !HasRole(p, role) {
			return &RoleError{Role: role}
		}
		return nil
	}
}

// Owner fails with ErrNotOwner when p did not create gym.
func Owner(gym *domain.Gym) Check {
	return func(p domain.Principal) error {
		if !IsOwner(p, gym) {
			return ErrNotOwner
		}
		return nil
	}
}

// Require runs checks in order and returns the first failure.
// Authentication is always checked first.
func Require(p domain.Principal, checks ...Check) error {
	if err := Authenticated()(p); err != nil {
		return err
	}
	for _, check := range checks {
		if err := check(p); err != nil {
			return err
		}
	}
	return nil
}
