package repository

import (
	"alcyxob/fitness-market/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound         = RepositoryError("not found")
	ErrDuplicateKey     = RepositoryError("duplicate key")
	ErrStoreUnavailable = RepositoryError("store unavailable")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainerFilter narrows FindAll on trainers. Zero value matches all.
type TrainerFilter struct {
	IDs            []primitive.ObjectID
	Specialization string
}

// ClientFilter narrows FindAll on clients. Zero value matches all.
type ClientFilter struct {
	IDs []primitive.ObjectID
}

// GymFilter narrows FindAll on gyms. Zero value matches all.
type GymFilter struct {
	TrainerID *primitive.ObjectID
}

// TrainerRepository defines the interface for interacting with trainer data.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	// Save replaces the stored trainer, inserting it when absent.
	Save(ctx context.Context, trainer *domain.Trainer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Trainer, error)
	FindByOAuthID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Trainer, error)
	FindAll(ctx context.Context, filter TrainerFilter, projection Projection) ([]domain.Trainer, error)
	// UpdateProfile overwrites the profile fields only; auth, role flag and
	// gymInfo are left as stored.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.TrainerProfile) (*domain.Trainer, error)
	SetGym(ctx context.Context, trainerID, gymID primitive.ObjectID) error
}

// ClientRepository defines the interface for interacting with client data.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error)
	Save(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByOAuthID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Client, error)
	FindAll(ctx context.Context, filter ClientFilter, projection Projection) ([]domain.Client, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.ClientProfile) (*domain.Client, error)
}

// AdministratorRepository defines the interface for interacting with administrator data.
// Administrators never authenticate through OAuth.
type AdministratorRepository interface {
	Create(ctx context.Context, admin *domain.Administrator) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Administrator, error)
	FindByEmail(ctx context.Context, email string) (*domain.Administrator, error)
}

// GymRepository defines the interface for interacting with gym data.
type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Gym, error)
	FindAll(ctx context.Context, filter GymFilter) ([]domain.Gym, error)
}

// Transactor runs fn so that every repository call made with the context it
// receives either commits together or not at all. Stores without transaction
// support run fn directly.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles the repositories the services need.
type Store struct {
	Administrators AdministratorRepository
	Clients        ClientRepository
	Trainers       TrainerRepository
	Gyms           GymRepository
	Tx             Transactor
}
