package service

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerProfileUpdate lists the trainer fields a trainer may change.
// Nil fields are left untouched.
type TrainerProfileUpdate struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Birthday       *time.Time `json:"birthday"`
	Age            *int       `json:"age" validate:"omitempty,min=0"`
	Phone          *string    `json:"phone"`
	Rate           *float64   `json:"rate" validate:"omitempty,min=0"`
	Image          *string    `json:"image"`
	Specialization []string   `json:"specialization"`
}

// ClientProfileUpdate lists the client fields a client may change.
type ClientProfileUpdate struct {
	Name     *string    `json:"name"`
	Birthday *time.Time `json:"birthday"`
	Age      *int       `json:"age" validate:"omitempty,min=0"`
	Address  []string   `json:"address"`
}

type ProfileService interface {
	// GetTrainer reads a trainer through projection, with its gym populated.
	GetTrainer(ctx context.Context, id primitive.ObjectID, projection repository.Projection) (*TrainerView, error)
	GetClient(ctx context.Context, id primitive.ObjectID, projection repository.Projection) (*domain.Client, error)
	UpdateTrainerProfile(ctx context.Context, principal domain.Principal, update TrainerProfileUpdate) (*domain.Trainer, error)
	UpdateClientProfile(ctx context.Context, principal domain.Principal, update ClientProfileUpdate) (*domain.Client, error)
}

type profileService struct {
	trainers repository.TrainerRepository
	clients  repository.ClientRepository
	gyms     repository.GymRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(store repository.Store) ProfileService {
	return &profileService{
		trainers: store.Trainers,
		clients:  store.Clients,
		gyms:     store.Gyms,
	}
}

func (s *profileService) GetTrainer(ctx context.Context, id primitive.ObjectID, projection repository.Projection) (*TrainerView, error) {
	trainers, err := s.trainers.FindAll(ctx, repository.TrainerFilter{IDs: []primitive.ObjectID{id}}, projection)
	if err != nil {
		return nil, err
	}
	if len(trainers) == 0 {
		return nil, repository.ErrNotFound
	}
	return populateGym(ctx, s.gyms, trainers[0])
}

// populateGym attaches the trainer's gym summary. A dangling gymInfo
// reference is shown as no gym.
func populateGym(ctx context.Context, gyms repository.GymRepository, trainer domain.Trainer) (*TrainerView, error) {
	view := &TrainerView{Trainer: trainer}
	if !trainer.HasGym() {
		return view, nil
	}
	gym, err := gyms.FindByID(ctx, *trainer.GymID)
	if errors.Is(err, repository.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, err
	}
	view.Gym = summarizeGym(gym)
	return view, nil
}

func (s *profileService) GetClient(ctx context.Context, id primitive.ObjectID, projection repository.Projection) (*domain.Client, error) {
	clients, err := s.clients.FindAll(ctx, repository.ClientFilter{IDs: []primitive.ObjectID{id}}, projection)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, repository.ErrNotFound
	}
	return &clients[0], nil
}

func (s *profileService) UpdateTrainerProfile(ctx context.Context, principal domain.Principal, update TrainerProfileUpdate) (*domain.Trainer, error) {
	if err := access.Require(principal, access.Role(domain.RoleTrainer)); err != nil {
		return nil, err
	}
	if err := validateRequest(update, profileMessages); err != nil {
		return nil, err
	}

	trainer, err := s.trainers.FindByID(ctx, principal.PrincipalID())
	if err != nil {
		return nil, err
	}
	p := &trainer.Profile
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Birthday != nil {
		p.Birthday = update.Birthday
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	if update.Rate != nil {
		p.Rate = *update.Rate
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
	if update.Specialization != nil {
		p.Specialization = update.Specialization
	}

	updated, err := s.trainers.UpdateProfile(ctx, trainer.ID, *p)
	if err != nil {
		return nil, err
	}
	repository.WithoutCredentials.Trainer(updated)
	return updated, nil
}

func (s *profileService) UpdateClientProfile(ctx context.Context, principal domain.Principal, update ClientProfileUpdate) (*domain.Client, error) {
	if err := access.Require(principal, access.Role(domain.RoleClient)); err != nil {
		return nil, err
	}
	if err := validateRequest(update, profileMessages); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, principal.PrincipalID())
	if err != nil {
		return nil, err
	}
	p := &client.Profile
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Birthday != nil {
		p.Birthday = update.Birthday
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Address != nil {
		p.Address = update.Address
	}

	updated, err := s.clients.UpdateProfile(ctx, client.ID, *p)
	if err != nil {
		return nil, err
	}
	repository.WithoutCredentials.Client(updated)
	return updated, nil
}
