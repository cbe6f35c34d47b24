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

type gymRepository struct {
	mu        sync.RWMutex
	order     []primitive.ObjectID
	gyms      map[primitive.ObjectID]*domain.Gym
	byTrainer map[primitive.ObjectID]primitive.ObjectID
}

// NewGymRepository creates an empty in-memory gym store.
func NewGymRepository() repository.GymRepository {
	return &gymRepository{
		gyms:      make(map[primitive.ObjectID]*domain.Gym),
		byTrainer: make(map[primitive.ObjectID]primitive.ObjectID),
	}
}

func (r *gymRepository) Create(ctx context.Context, gym *domain.Gym) (primitive.ObjectID, error) {
	if err := checkContext(ctx); err != nil {
		return primitive.NilObjectID, err
	}
	if gym.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("gym owner is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirrors the unique index on the owner field.
	if _, owned := r.byTrainer[gym.TrainerID]; owned {
		return primitive.NilObjectID, fmt.Errorf("%w: trainer %s already owns a gym", repository.ErrDuplicateKey, gym.TrainerID.Hex())
	}
	gym.ID = primitive.NewObjectID()
	gym.CreatedAt = now()
	gym.UpdatedAt = gym.CreatedAt
	r.gyms[gym.ID] = gym.Clone()
	r.byTrainer[gym.TrainerID] = gym.ID
	r.order = append(r.order, gym.ID)
	return gym.ID, nil
}

func (r *gymRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Gym, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gyms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return g.Clone(), nil
}

func (r *gymRepository) FindAll(ctx context.Context, filter repository.GymFilter) ([]domain.Gym, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	gyms := []domain.Gym{}
	for _, id := range r.order {
		g := r.gyms[id]
		if filter.TrainerID != nil && g.TrainerID != *filter.TrainerID {
			continue
		}
		gyms = append(gyms, *g.Clone())
	}
	return gyms, nil
}
