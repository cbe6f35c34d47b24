package api

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/service"
	"time"
)

// --- Response Structs ---
// Password hashes and provider tokens never appear in responses.

type authMethodResponse struct {
	Kind     domain.AuthKind `json:"kind"`
	Provider domain.Provider `json:"provider,omitempty"`
	Email    string          `json:"email,omitempty"`
	Name     string          `json:"name,omitempty"`
}

type PrincipalResponse struct {
	ID    string      `json:"id"`
	Role  domain.Role `json:"role"`
	Email string      `json:"email,omitempty"`
	Name  string      `json:"name,omitempty"`
}

type AuthResponse struct {
	Token     string            `json:"token"`
	Principal PrincipalResponse `json:"principal"`
}

type gymSummaryResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type TrainerResponse struct {
	ID             string              `json:"id"`
	Auth           *authMethodResponse `json:"auth,omitempty"`
	IsTrainer      bool                `json:"isTrainer,omitempty"`
	Name           string              `json:"name,omitempty"`
	Description    string              `json:"description,omitempty"`
	Age            int                 `json:"age,omitempty"`
	Birthday       *time.Time          `json:"birthday,omitempty"`
	Address        []string            `json:"address,omitempty"`
	Specialization []string            `json:"specialization,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	Rate           float64             `json:"rate,omitempty"`
	Image          string              `json:"image,omitempty"`
	GymID          *string             `json:"gymInfo,omitempty"`
	Gym            *gymSummaryResponse `json:"gym,omitempty"`
}

type ClientResponse struct {
	ID       string              `json:"id"`
	Auth     *authMethodResponse `json:"auth,omitempty"`
	IsClient bool                `json:"isClient,omitempty"`
	Name     string              `json:"name,omitempty"`
	Age      int                 `json:"age,omitempty"`
	Birthday *time.Time          `json:"birthday,omitempty"`
	Address  []string            `json:"address,omitempty"`
}

type ownerResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	Email          string   `json:"email,omitempty"`
	Specialization []string `json:"specialization,omitempty"`
	Address        []string `json:"address,omitempty"`
}

type GymResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Images      []string       `json:"images,omitempty"`
	TrainerID   string         `json:"trainer"`
	Owner       *ownerResponse `json:"owner,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func mapAuth(a domain.AuthMethod) *authMethodResponse {
	if a == nil {
		return nil
	}
	resp := &authMethodResponse{Kind: a.Kind(), Email: domain.AuthEmail(a)}
	if o, ok := domain.OAuthIdentity(a); ok {
		resp.Provider = o.Provider
		resp.Name = o.Name
	}
	return resp
}

// MapPrincipal converts any principal variant to its summary.
func MapPrincipal(p domain.Principal) PrincipalResponse {
	resp := PrincipalResponse{ID: p.PrincipalID().Hex(), Role: p.Role()}
	switch v := p.(type) {
	case *domain.Trainer:
		resp.Email, resp.Name = v.Email(), v.Profile.Name
	case *domain.Client:
		resp.Email, resp.Name = v.Email(), v.Profile.Name
	case *domain.Administrator:
		resp.Email, resp.Name = v.Email, v.Name
	}
	return resp
}

func MapTrainer(t *domain.Trainer, gym *service.GymSummary) TrainerResponse {
	p := t.Profile
	resp := TrainerResponse{
		ID:             t.ID.Hex(),
		Auth:           mapAuth(t.Auth),
		IsTrainer:      t.IsTrainer,
		Name:           p.Name,
		Description:    p.Description,
		Age:            p.Age,
		Birthday:       p.Birthday,
		Address:        p.Address,
		Specialization: p.Specialization,
		Phone:          p.Phone,
		Rate:           p.Rate,
		Image:          p.Image,
	}
	if t.HasGym() {
		hex := t.GymID.Hex()
		resp.GymID = &hex
	}
	if gym != nil {
		resp.Gym = &gymSummaryResponse{
			ID:          gym.ID.Hex(),
			Name:        gym.Name,
			Description: gym.Description,
			Location:    gym.Location,
			Images:      gym.Images,
		}
	}
	return resp
}

func MapTrainerView(v *service.TrainerView) TrainerResponse {
	return MapTrainer(&v.Trainer, v.Gym)
}

func MapClient(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:       c.ID.Hex(),
		Auth:     mapAuth(c.Auth),
		IsClient: c.IsClient,
		Name:     c.Profile.Name,
		Age:      c.Profile.Age,
		Birthday: c.Profile.Birthday,
		Address:  c.Profile.Address,
	}
}

func MapGym(g *domain.Gym, owner *service.TrainerSummary) GymResponse {
	resp := GymResponse{
		ID:          g.ID.Hex(),
		Name:        g.Name,
		Description: g.Description,
		Location:    g.Location,
		Images:      g.Images,
		TrainerID:   g.TrainerID.Hex(),
		CreatedAt:   g.CreatedAt,
	}
	if owner != nil {
		resp.Owner = &ownerResponse{
			ID:             owner.ID.Hex(),
			Name:           owner.Name,
			Email:          owner.Email,
			Specialization: owner.Specialization,
			Address:        owner.Address,
		}
	}
	return resp
}
