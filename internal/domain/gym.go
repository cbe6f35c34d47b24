package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gym is created by a trainer, who stays its only owner.
type Gym struct {
	ID          primitive.ObjectID
	Name        string
	Description string
	Location    string
	Images      []string
	TrainerID   primitive.ObjectID // owner, immutable after creation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy of g.
func (g *Gym) Clone() *Gym {
	if g == nil {
		return nil
	}
	c := *g
	c.Images = append([]string(nil), g.Images...)
	return &c
}
