package service

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DirectoryService serves the public trainer listings and the admin views.
type DirectoryService interface {
	ListTrainers(ctx context.Context, specialization string) ([]domain.Trainer, error)
	TrainerPublicProfile(ctx context.Context, id primitive.ObjectID) (*TrainerView, error)
	TrainerContact(ctx context.Context, id primitive.ObjectID) (*TrainerView, error)
	ListClients(ctx context.Context, principal domain.Principal) ([]domain.Client, error)
}

type directoryService struct {
	trainers repository.TrainerRepository
	clients  repository.ClientRepository
	gyms     repository.GymRepository
}

// NewDirectoryService creates a new instance of directoryService.
func NewDirectoryService(store repository.Store) DirectoryService {
	return &directoryService{
		trainers: store.Trainers,
		clients:  store.Clients,
		gyms:     store.Gyms,
	}
}

func (s *directoryService) ListTrainers(ctx context.Context, specialization string) ([]domain.Trainer, error) {
	filter := repository.TrainerFilter{Specialization: strings.TrimSpace(specialization)}
	return s.trainers.FindAll(ctx, filter, repository.PublicProfile)
}

func (s *directoryService) TrainerPublicProfile(ctx context.Context, id primitive.ObjectID) (*TrainerView, error) {
	return s.trainerView(ctx, id, repository.PublicProfile)
}

// TrainerContact keeps the role flag but never the credentials.
func (s *directoryService) TrainerContact(ctx context.Context, id primitive.ObjectID) (*TrainerView, error) {
	return s.trainerView(ctx, id, repository.WithoutCredentials)
}

func (s *directoryService) trainerView(ctx context.Context, id primitive.ObjectID, projection repository.Projection) (*TrainerView, error) {
	trainers, err := s.trainers.FindAll(ctx, repository.TrainerFilter{IDs: []primitive.ObjectID{id}}, projection)
	if err != nil {
		return nil, err
	}
	if len(trainers) == 0 {
		return nil, repository.ErrNotFound
	}
	return populateGym(ctx, s.gyms, trainers[0])
}

// ListClients is restricted to administrators.
func (s *directoryService) ListClients(ctx context.Context, principal domain.Principal) ([]domain.Client, error) {
	if err := access.Require(principal, access.Role(domain.RoleAdministrator)); err != nil {
		return nil, err
	}
	return s.clients.FindAll(ctx, repository.ClientFilter{}, repository.WithoutCredentials)
}
