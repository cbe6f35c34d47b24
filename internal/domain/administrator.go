package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Administrator accounts are created by the seeding tool only.
type Administrator struct {
	ID           primitive.ObjectID
	Email        string
	PasswordHash string
	Name         string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Clone returns a copy of a.
func (a *Administrator) Clone() *Administrator {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
