package memory

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type clientRepository struct {
	accounts
	clients map[primitive.ObjectID]*domain.Client
}

// NewClientRepository creates an empty in-memory client store.
func NewClientRepository() repository.ClientRepository {
	return &clientRepository{
		accounts: newAccounts(),
		clients:  make(map[primitive.ObjectID]*domain.Client),
	}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	if err := checkContext(ctx); err != nil {
		return primitive.NilObjectID, err
	}
	if client.Auth == nil {
		return primitive.NilObjectID, errors.New("client auth method is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID()
	if err := r.claim(id, client.Auth); err != nil {
		return primitive.NilObjectID, err
	}
	client.ID = id
	client.CreatedAt = now()
	client.UpdatedAt = client.CreatedAt

	r.clients[id] = client.Clone()
	r.order = append(r.order, id)
	r.index(id, nil, client.Auth)
	return id, nil
}

func (r *clientRepository) Save(ctx context.Context, client *domain.Client) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if client.ID == primitive.NilObjectID {
		return errors.New("client ID is required for save")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claim(client.ID, client.Auth); err != nil {
		return err
	}
	var previous domain.AuthMethod
	if existing, ok := r.clients[client.ID]; ok {
		previous = existing.Auth
		if client.CreatedAt.IsZero() {
			client.CreatedAt = existing.CreatedAt
		}
	} else {
		r.order = append(r.order, client.ID)
		if client.CreatedAt.IsZero() {
			client.CreatedAt = now()
		}
	}
	client.UpdatedAt = now()
	r.clients[client.ID] = client.Clone()
	r.index(client.ID, previous, client.Auth)
	return nil
}

func (r *clientRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.ClientProfile) (*domain.Client, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Profile = (&domain.Client{Profile: profile}).Clone().Profile
	c.UpdatedAt = now()
	return c.Clone(), nil
}

func (r *clientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *clientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.clients[id].Clone(), nil
}

func (r *clientRepository) FindByOAuthID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Client, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOAuth[string(provider)+":"+providerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.clients[id].Clone(), nil
}

func (r *clientRepository) FindAll(ctx context.Context, filter repository.ClientFilter, projection repository.Projection) ([]domain.Client, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := []domain.Client{}
	for _, id := range r.order {
		if len(filter.IDs) > 0 && !containsID(filter.IDs, id) {
			continue
		}
		c := r.clients[id].Clone()
		projection.Client(c)
		clients = append(clients, *c)
	}
	return clients, nil
}
