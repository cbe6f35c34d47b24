package service

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTrainerHasGym = errors.New("trainer already owns a gym")
	// ErrGymLinkFailed means the gym was stored but the trainer's gymInfo
	// could not be pointed at it.
	ErrGymLinkFailed = errors.New("gym created but not linked to trainer")
)

// CreateGymRequest carries the fields of a new gym.
type CreateGymRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

type GymService interface {
	CreateGym(ctx context.Context, principal domain.Principal, req CreateGymRequest) (*domain.Gym, error)
	GetGym(ctx context.Context, id primitive.ObjectID) (*GymView, error)
	ListGyms(ctx context.Context) ([]GymView, error)
}

type gymService struct {
	gyms     repository.GymRepository
	trainers repository.TrainerRepository
	tx       repository.Transactor
}

// NewGymService creates a new instance of gymService.
func NewGymService(store repository.Store) GymService {
	return &gymService{
		gyms:     store.Gyms,
		trainers: store.Trainers,
		tx:       store.Tx,
	}
}

// CreateGym stores a gym owned by principal and links it from the trainer.
// Both writes share one transaction when the store supports it.
func (s *gymService) CreateGym(ctx context.Context, principal domain.Principal, req CreateGymRequest) (*domain.Gym, error) {
	if err := access.Require(principal, access.Role(domain.RoleTrainer)); err != nil {
		return nil, err
	}
	if err := validateRequest(req, gymMessages); err != nil {
		return nil, err
	}

	trainerID := principal.PrincipalID()
	var gym *domain.Gym
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		trainer, err := s.trainers.FindByID(ctx, trainerID)
		if err != nil {
			return err
		}
		if trainer.HasGym() {
			return ErrTrainerHasGym
		}

		gym = &domain.Gym{
			Name:        req.Name,
			Description: req.Description,
			Location:    req.Location,
			Images:      req.Images,
			TrainerID:   trainerID,
		}
		if _, err := s.gyms.Create(ctx, gym); err != nil {
			// The unique owner index catches a concurrent second gym.
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrTrainerHasGym
			}
			return err
		}
		if err := s.trainers.SetGym(ctx, trainerID, gym.ID); err != nil {
			return fmt.Errorf("%w: gym %s: %v", ErrGymLinkFailed, gym.ID.Hex(), err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrGymLinkFailed) {
			logrus.WithError(err).WithField("trainer_id", trainerID.Hex()).Error("Gym link failed")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"trainer_id": trainerID.Hex(),
		"gym_id":     gym.ID.Hex(),
	}).Info("Gym created")
	return gym, nil
}

func (s *gymService) GetGym(ctx context.Context, id primitive.ObjectID) (*GymView, error) {
	gym, err := s.gyms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.withOwners(ctx, []domain.Gym{*gym})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *gymService) ListGyms(ctx context.Context) ([]GymView, error) {
	gyms, err := s.gyms.FindAll(ctx, repository.GymFilter{})
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, gyms)
}

// withOwners populates each gym's owner with one trainer query.
func (s *gymService) withOwners(ctx context.Context, gyms []domain.Gym) ([]GymView, error) {
	views := make([]GymView, 0, len(gyms))
	if len(gyms) == 0 {
		return views, nil
	}
	ids := make([]primitive.ObjectID, 0, len(gyms))
	for _, g := range gyms {
		ids = append(ids, g.TrainerID)
	}
	owners, err := s.trainers.FindAll(ctx, repository.TrainerFilter{IDs: ids}, repository.PublicProfile)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.Trainer, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}
	for _, g := range gyms {
		views = append(views, GymView{Gym: g, Owner: summarizeTrainer(byID[g.TrainerID])})
	}
	return views, nil
}
