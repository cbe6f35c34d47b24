package memory

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type trainerRepository struct {
	accounts
	trainers map[primitive.ObjectID]*domain.Trainer
}

// NewTrainerRepository creates an empty in-memory trainer store.
func NewTrainerRepository() repository.TrainerRepository {
	return &trainerRepository{
		accounts: newAccounts(),
		trainers: make(map[primitive.ObjectID]*domain.Trainer),
	}
}

func (r *trainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if err := checkContext(ctx); err != nil {
		return primitive.NilObjectID, err
	}
	if trainer.Auth == nil {
		return primitive.NilObjectID, errors.New("trainer auth method is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID()
	if err := r.claim(id, trainer.Auth); err != nil {
		return primitive.NilObjectID, err
	}
	trainer.ID = id
	trainer.CreatedAt = now()
	trainer.UpdatedAt = trainer.CreatedAt

	r.trainers[id] = trainer.Clone()
	r.order = append(r.order, id)
	r.index(id, nil, trainer.Auth)
	return id, nil
}

func (r *trainerRepository) Save(ctx context.Context, trainer *domain.Trainer) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if trainer.ID == primitive.NilObjectID {
		return errors.New("trainer ID is required for save")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claim(trainer.ID, trainer.Auth); err != nil {
		return err
	}
	var previous domain.AuthMethod
	if existing, ok := r.trainers[trainer.ID]; ok {
		previous = existing.Auth
		if trainer.CreatedAt.IsZero() {
			trainer.CreatedAt = existing.CreatedAt
		}
	} else {
		r.order = append(r.order, trainer.ID)
		if trainer.CreatedAt.IsZero() {
			trainer.CreatedAt = now()
		}
	}
	trainer.UpdatedAt = now()
	r.trainers[trainer.ID] = trainer.Clone()
	r.index(trainer.ID, previous, trainer.Auth)
	return nil
}

func (r *trainerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *trainerRepository) FindByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.trainers[id].Clone(), nil
}

func (r *trainerRepository) FindByOAuthID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Trainer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOAuth[string(provider)+":"+providerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.trainers[id].Clone(), nil
}

func (r *trainerRepository) FindAll(ctx context.Context, filter repository.TrainerFilter, projection repository.Projection) ([]domain.Trainer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	trainers := []domain.Trainer{}
	for _, id := range r.order {
		if len(filter.IDs) > 0 && !containsID(filter.IDs, id) {
			continue
		}
		t := r.trainers[id].Clone()
		if filter.Specialization != "" && !hasSpecialization(t, filter.Specialization) {
			continue
		}
		projection.Trainer(t)
		trainers = append(trainers, *t)
	}
	return trainers, nil
}

func (r *trainerRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.TrainerProfile) (*domain.Trainer, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Clone detaches the caller's slices and birthday from the stored record.
	t.Profile = (&domain.Trainer{Profile: profile}).Clone().Profile
	t.UpdatedAt = now()
	return t.Clone(), nil
}

func (r *trainerRepository) SetGym(ctx context.Context, trainerID, gymID primitive.ObjectID) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trainers[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	g := gymID
	t.GymID = &g
	t.UpdatedAt = now()
	return nil
}

func hasSpecialization(t *domain.Trainer, specialization string) bool {
	for _, s := range t.Profile.Specialization {
		if strings.EqualFold(s, specialization) {
			return true
		}
	}
	return false
}
