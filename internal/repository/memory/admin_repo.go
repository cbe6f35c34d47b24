package memory

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type administratorRepository struct {
	mu      sync.RWMutex
	admins  map[primitive.ObjectID]*domain.Administrator
	byEmail map[string]primitive.ObjectID
}

// NewAdministratorRepository creates an empty in-memory administrator store.
func NewAdministratorRepository() repository.AdministratorRepository {
	return &administratorRepository{
		admins:  make(map[primitive.ObjectID]*domain.Administrator),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (r *administratorRepository) Create(ctx context.Context, admin *domain.Administrator) (primitive.ObjectID, error) {
	if err := checkContext(ctx); err != nil {
		return primitive.NilObjectID, err
	}
	if admin.Email == "" || admin.PasswordHash == "" || admin.Name == "" {
		return primitive.NilObjectID, errors.New("administrator email, password hash, and name are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(admin.Email)
	if _, taken := r.byEmail[key]; taken {
		return primitive.NilObjectID, fmt.Errorf("%w: email %s", repository.ErrDuplicateKey, key)
	}
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = now()
	r.admins[admin.ID] = admin.Clone()
	r.byEmail[key] = admin.ID
	return admin.ID, nil
}

func (r *administratorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *administratorRepository) FindByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.admins[id].Clone(), nil
}
