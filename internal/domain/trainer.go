package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerProfile is the self-managed part of a trainer account.
type TrainerProfile struct {
	Name           string
	Description    string
	Age            int
	Birthday       *time.Time
	Address        []string
	Specialization []string
	Phone          string
	Rate           float64
	Image          string // object key or URL of the profile picture
}

// Trainer offers services and may own at most one Gym.
type Trainer struct {
	ID        primitive.ObjectID
	Auth      AuthMethod
	IsTrainer bool // set only by local signup
	Profile   TrainerProfile
	GymID     *primitive.ObjectID // nil until the trainer creates a gym
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Email returns the local or OAuth email of the trainer.
func (t *Trainer) Email() string {
	return AuthEmail(t.Auth)
}

// HasGym reports whether the trainer already owns a gym.
func (t *Trainer) HasGym() bool {
	return t.GymID != nil && *t.GymID != primitive.NilObjectID
}

// Clone returns a deep copy of t.
func (t *Trainer) Clone() *Trainer {
	if t == nil {
		return nil
	}
	c := *t
	c.Auth = CloneAuth(t.Auth)
	c.Profile.Address = append([]string(nil), t.Profile.Address...)
	c.Profile.Specialization = append([]string(nil), t.Profile.Specialization...)
	if t.Profile.Birthday != nil {
		b := *t.Profile.Birthday
		c.Profile.Birthday = &b
	}
	if t.GymID != nil {
		g := *t.GymID
		c.GymID = &g
	}
	return &c
}
