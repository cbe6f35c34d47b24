package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientProfile is the self-managed part of a client account.
type ClientProfile struct {
	Name     string
	Age      int
	Birthday *time.Time
	Address  []string
}

// Client looks for trainers and gyms.
type Client struct {
	ID        primitive.ObjectID
	Auth      AuthMethod
	IsClient  bool // set only by local signup
	Profile   ClientProfile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Email returns the local or OAuth email of the client.
func (c *Client) Email() string {
	return AuthEmail(c.Auth)
}

// Clone returns a deep copy of c.
func (c *Client) Clone() *Client {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Auth = CloneAuth(c.Auth)
	cp.Profile.Address = append([]string(nil), c.Profile.Address...)
	if c.Profile.Birthday != nil {
		b := *c.Profile.Birthday
		cp.Profile.Birthday = &b
	}
	return &cp
}
