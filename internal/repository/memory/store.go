// Package memory keeps every collection in process. It enforces the same
// unique constraints as the MongoDB indexes so services behave identically
// against either driver.
package memory

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewStore returns a repository.Store backed by process memory.
func NewStore() repository.Store {
	return repository.Store{
		Administrators: NewAdministratorRepository(),
		Clients:        NewClientRepository(),
		Trainers:       NewTrainerRepository(),
		Gyms:           NewGymRepository(),
		Tx:             Transactor{},
	}
}

// Transactor runs functions directly; memory writes are not rolled back.
type Transactor struct{}

func (Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	return fn(ctx)
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func oauthKey(a domain.AuthMethod) string {
	if o, ok := domain.OAuthIdentity(a); ok && o.ProviderID != "" {
		return string(o.Provider) + ":" + o.ProviderID
	}
	return ""
}

func localEmailKey(a domain.AuthMethod) string {
	if l, ok := domain.LocalCredentials(a); ok && l.Email != "" {
		return normalizeEmail(l.Email)
	}
	return ""
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// accounts is the shared bookkeeping behind the trainer and client stores:
// insertion order plus the local-email and provider-id unique indexes.
type accounts struct {
	mu      sync.RWMutex
	order   []primitive.ObjectID
	byEmail map[string]primitive.ObjectID
	byOAuth map[string]primitive.ObjectID
}

func newAccounts() accounts {
	return accounts{
		byEmail: make(map[string]primitive.ObjectID),
		byOAuth: make(map[string]primitive.ObjectID),
	}
}

// claim checks the unique keys of auth for id. Caller holds mu.
func (a *accounts) claim(id primitive.ObjectID, auth domain.AuthMethod) error {
	if key := localEmailKey(auth); key != "" {
		if owner, ok := a.byEmail[key]; ok && owner != id {
			return fmt.Errorf("%w: email %s", repository.ErrDuplicateKey, key)
		}
	}
	if key := oauthKey(auth); key != "" {
		if owner, ok := a.byOAuth[key]; ok && owner != id {
			return fmt.Errorf("%w: provider id %s", repository.ErrDuplicateKey, key)
		}
	}
	return nil
}

// index records the unique keys of auth for id, dropping previous ones.
// Caller holds mu.
func (a *accounts) index(id primitive.ObjectID, previous, auth domain.AuthMethod) {
	if key := localEmailKey(previous); key != "" {
		delete(a.byEmail, key)
	}
	if key := oauthKey(previous); key != "" {
		delete(a.byOAuth, key)
	}
	if key := localEmailKey(auth); key != "" {
		a.byEmail[key] = id
	}
	if key := oauthKey(auth); key != "" {
		a.byOAuth[key] = id
	}
}

func now() time.Time {
	return time.Now().UTC()
}
