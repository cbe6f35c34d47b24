package service

import (
	"alcyxob/fitness-market/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymSummary is the part of a gym shown next to its trainer.
type GymSummary struct {
	ID          primitive.ObjectID
	Name        string
	Description string
	Location    string
	Images      []string
}

// TrainerView is a trainer with its gym populated.
type TrainerView struct {
	Trainer domain.Trainer
	Gym     *GymSummary
}

// TrainerSummary is the part of a trainer shown next to its gym.
type TrainerSummary struct {
	ID             primitive.ObjectID
	Name           string
	Email          string
	Specialization []string
	Address        []string
}

// GymView is a gym with its owner populated.
type GymView struct {
	Gym   domain.Gym
	Owner *TrainerSummary
}

func summarizeGym(g *domain.Gym) *GymSummary {
	if g == nil {
		return nil
	}
	return &GymSummary{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Location:    g.Location,
		Images:      g.Images,
	}
}

func summarizeTrainer(t *domain.Trainer) *TrainerSummary {
	if t == nil {
		return nil
	}
	return &TrainerSummary{
		ID:             t.ID,
		Name:           t.Profile.Name,
		Email:          t.Email(),
		Specialization: t.Profile.Specialization,
		Address:        t.Profile.Address,
	}
}
