package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between account roles
type Role string

// Define constants for roles
const (
	RoleTrainer       Role = "trainer"
	RoleClient        Role = "client"
	RoleAdministrator Role = "administrator"
)

// Principal is the resolved identity behind a request. The set of
// implementations is closed: *Trainer, *Client and *Administrator.
type Principal interface {
	PrincipalID() primitive.ObjectID
	Role() Role
	isPrincipal()
}

func (t *Trainer) PrincipalID() primitive.ObjectID { return t.ID }
func (t *Trainer) Role() Role                      { return RoleTrainer }
func (*Trainer) isPrincipal()                      {}

func (c *Client) PrincipalID() primitive.ObjectID { return c.ID }
func (c *Client) Role() Role                      { return RoleClient }
func (*Client) isPrincipal()                      {}

func (a *Administrator) PrincipalID() primitive.ObjectID { return a.ID }
func (a *Administrator) Role() Role                      { return RoleAdministrator }
func (*Administrator) isPrincipal()                      {}
