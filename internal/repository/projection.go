package repository

import "alcyxob/fitness-market/internal/domain"

// Projection redacts fields before entities leave the trusted boundary.
type Projection struct {
	OmitCredentials bool // password hash and OAuth token
	OmitRoleFlag    bool // isClient / isTrainer / isAdmin
}

var (
	FullRecord         = Projection{}
	WithoutCredentials = Projection{OmitCredentials: true}
	PublicProfile      = Projection{OmitCredentials: true, OmitRoleFlag: true}
)

// Trainer applies p to t in place.
func (p Projection) Trainer(t *domain.Trainer) {
	if t == nil {
		return
	}
	if p.OmitCredentials {
		t.Auth = redactAuth(t.Auth)
	}
	if p.OmitRoleFlag {
		t.IsTrainer = false
	}
}

// Client applies p to c in place.
func (p Projection) Client(c *domain.Client) {
	if c == nil {
		return
	}
	if p.OmitCredentials {
		c.Auth = redactAuth(c.Auth)
	}
	if p.OmitRoleFlag {
		c.IsClient = false
	}
}

// Administrator applies p to a in place.
func (p Projection) Administrator(a *domain.Administrator) {
	if a == nil {
		return
	}
	if p.OmitCredentials {
		a.PasswordHash = ""
	}
	if p.OmitRoleFlag {
		a.IsAdmin = false
	}
}

func redactAuth(a domain.AuthMethod) domain.AuthMethod {
	switch m := domain.CloneAuth(a).(type) {
	case *domain.LocalAuth:
		m.PasswordHash = ""
		return m
	case *domain.OAuthAuth:
		m.Token = ""
		return m
	}
	return nil
}
