// Package identity turns opaque session identifiers into typed principals.
package identity

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownPrincipal means the session id no longer resolves to any account.
	ErrUnknownPrincipal = errors.New("unknown principal")
	// ErrAmbiguousPrincipal means more than one collection holds the id.
	ErrAmbiguousPrincipal = errors.New("session id matches more than one account")
)

// LookupOrder is the precedence used when several collections hold the same id.
var LookupOrder = []domain.Role{domain.RoleTrainer, domain.RoleClient, domain.RoleAdministrator}

// Resolver implements session serialization for every principal variant.
type Resolver struct {
	trainers       repository.TrainerRepository
	clients        repository.ClientRepository
	administrators repository.AdministratorRepository
	strict         bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// StrictCollisions makes Deserialize fail with ErrAmbiguousPrincipal instead
// of picking the first match in LookupOrder.
func StrictCollisions() Option {
	return func(r *Resolver) { r.strict = true }
}

// NewResolver creates a Resolver over the account repositories of store.
func NewResolver(store repository.Store, opts ...Option) *Resolver {
	r := &Resolver{
		trainers:       store.Trainers,
		clients:        store.Clients,
		administrators: store.Administrators,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Serialize returns the session id of p. Role is not encoded.
func (r *Resolver) Serialize(p domain.Principal) string {
	if p == nil {
		return ""
	}
	return p.PrincipalID().Hex()
}

// Deserialize loads the principal behind sessionID. All collections are
// looked up concurrently; the hit earliest in LookupOrder wins.
func (r *Resolver) Deserialize(ctx context.Context, sessionID string) (domain.Principal, error) {
	id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrUnknownPrincipal
	}

	hits := make([]domain.Principal, len(LookupOrder))
	g, gctx := errgroup.WithContext(ctx)
	for i, role := range LookupOrder {
		i, role := i, role
		g.Go(func() error {
			p, err := r.lookup(gctx, role, id)
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("lookup %s: %w", role, err)
			}
			hits[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var found []domain.Principal
	for _, p := range hits {
		if p != nil {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return nil, ErrUnknownPrincipal
	case 1:
		return found[0], nil
	}

	roles := make([]domain.Role, 0, len(found))
	for _, p := range found {
		roles = append(roles, p.Role())
	}
	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"roles":      roles,
	}).Warn("Session id resolves in more than one collection")
	if r.strict {
		return nil, ErrAmbiguousPrincipal
	}
	return found[0], nil
}

func (r *Resolver) lookup(ctx context.Context, role domain.Role, id primitive.ObjectID) (domain.Principal, error) {
	switch role {
	case domain.RoleTrainer:
		t, err := r.trainers.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return t, nil
	case domain.RoleClient:
		c, err := r.clients.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return c, nil
	case domain.RoleAdministrator:
		a, err := r.administrators.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, fmt.Errorf("unsupported role %q", role)
}
