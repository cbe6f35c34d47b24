package mongo

import (
	"alcyxob/fitness-market/internal/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account documents keep the local/facebook/google sub-documents on every
// record; exactly one of them is populated.

type oauthDocument struct {
	ID    string `bson:"id,omitempty"`
	Token string `bson:"token,omitempty"`
	Email string `bson:"email,omitempty"`
	Name  string `bson:"name,omitempty"`
}

type trainerLocalDocument struct {
	Email          string              `bson:"email,omitempty"`
	Password       string              `bson:"password,omitempty"`
	IsTrainer      bool                `bson:"isTrainer,omitempty"`
	Name           string              `bson:"name,omitempty"`
	Description    string              `bson:"description,omitempty"`
	Age            int                 `bson:"age,omitempty"`
	Birthday       *time.Time          `bson:"birthday,omitempty"`
	Address        []string            `bson:"address,omitempty"`
	Specialization []string            `bson:"specialization,omitempty"`
	Phone          string              `bson:"phone,omitempty"`
	Rate           float64             `bson:"rate,omitempty"`
	Image          string              `bson:"image,omitempty"`
	GymInfo        *primitive.ObjectID `bson:"gymInfo,omitempty"`
}

type trainerDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Local     trainerLocalDocument `bson:"local"`
	Facebook  oauthDocument        `bson:"facebook"`
	Google    oauthDocument        `bson:"google"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type clientLocalDocument struct {
	Email    string     `bson:"email,omitempty"`
	Password string     `bson:"password,omitempty"`
	IsClient bool       `bson:"isClient,omitempty"`
	Name     string     `bson:"name,omitempty"`
	Age      int        `bson:"age,omitempty"`
	Birthday *time.Time `bson:"birthday,omitempty"`
	Address  []string   `bson:"address,omitempty"`
}

type clientDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Local     clientLocalDocument `bson:"local"`
	Facebook  oauthDocument       `bson:"facebook"`
	Google    oauthDocument       `bson:"google"`
	CreatedAt time.Time           `bson:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

type administratorDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Name      string             `bson:"name"`
	IsAdmin   bool               `bson:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type gymDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Location    string             `bson:"location"`
	Images      []string           `bson:"image,omitempty"`
	Trainer     primitive.ObjectID `bson:"trainer"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// splitAuth spreads an AuthMethod over the three sub-documents.
func splitAuth(a domain.AuthMethod) (email, password string, facebook, google oauthDocument) {
	switch m := a.(type) {
	case *domain.LocalAuth:
		if m != nil {
			email, password = m.Email, m.PasswordHash
		}
	case *domain.OAuthAuth:
		if m == nil {
			break
		}
		doc := oauthDocument{ID: m.ProviderID, Token: m.Token, Email: m.Email, Name: m.Name}
		if m.Provider == domain.ProviderGoogle {
			google = doc
		} else {
			facebook = doc
		}
	}
	return
}

// joinAuth rebuilds the AuthMethod from stored sub-documents.
func joinAuth(email, password string, facebook, google oauthDocument) domain.AuthMethod {
	switch {
	case facebook.ID != "":
		return &domain.OAuthAuth{Provider: domain.ProviderFacebook, ProviderID: facebook.ID, Token: facebook.Token, Email: facebook.Email, Name: facebook.Name}
	case google.ID != "":
		return &domain.OAuthAuth{Provider: domain.ProviderGoogle, ProviderID: google.ID, Token: google.Token, Email: google.Email, Name: google.Name}
	}
	return &domain.LocalAuth{Email: email, PasswordHash: password}
}

func newTrainerDocument(t *domain.Trainer) trainerDocument {
	email, password, facebook, google := splitAuth(t.Auth)
	p := t.Profile
	return trainerDocument{
		ID: t.ID,
		Local: trainerLocalDocument{
			Email:          email,
			Password:       password,
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
			GymInfo:        t.GymID,
		},
		Facebook:  facebook,
		Google:    google,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (d trainerDocument) toDomain() domain.Trainer {
	l := d.Local
	return domain.Trainer{
		ID:        d.ID,
		Auth:      joinAuth(l.Email, l.Password, d.Facebook, d.Google),
		IsTrainer: l.IsTrainer,
		Profile: domain.TrainerProfile{
			Name:           l.Name,
			Description:    l.Description,
			Age:            l.Age,
			Birthday:       l.Birthday,
			Address:        l.Address,
			Specialization: l.Specialization,
			Phone:          l.Phone,
			Rate:           l.Rate,
			Image:          l.Image,
		},
		GymID:     l.GymInfo,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func newClientDocument(c *domain.Client) clientDocument {
	email, password, facebook, google := splitAuth(c.Auth)
	return clientDocument{
		ID: c.ID,
		Local: clientLocalDocument{
			Email:    email,
			Password: password,
			IsClient: c.IsClient,
			Name:     c.Profile.Name,
			Age:      c.Profile.Age,
			Birthday: c.Profile.Birthday,
			Address:  c.Profile.Address,
		},
		Facebook:  facebook,
		Google:    google,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d clientDocument) toDomain() domain.Client {
	l := d.Local
	return domain.Client{
		ID:       d.ID,
		Auth:     joinAuth(l.Email, l.Password, d.Facebook, d.Google),
		IsClient: l.IsClient,
		Profile: domain.ClientProfile{
			Name:     l.Name,
			Age:      l.Age,
			Birthday: l.Birthday,
			Address:  l.Address,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// trainerProfileSet is the $set document of a profile update. gymInfo and
// the auth sub-documents are not part of it.
func trainerProfileSet(p domain.TrainerProfile) bson.M {
	return bson.M{
		"local.name":           p.Name,
		"local.description":    p.Description,
		"local.age":            p.Age,
		"local.birthday":       p.Birthday,
		"local.address":        p.Address,
		"local.specialization": p.Specialization,
		"local.phone":          p.Phone,
		"local.rate":           p.Rate,
		"local.image":          p.Image,
	}
}

func clientProfileSet(p domain.ClientProfile) bson.M {
	return bson.M{
		"local.name":     p.Name,
		"local.age":      p.Age,
		"local.birthday": p.Birthday,
		"local.address":  p.Address,
	}
}

// oauthField returns the sub-document key holding provider ids.
func oauthField(provider domain.Provider) string {
	if provider == domain.ProviderGoogle {
		return "google.id"
	}
	return "facebook.id"
}

// accountProjection converts a repository.Projection into a Mongo projection
// for account collections. roleFlag is the local.* flag of the collection.
func accountProjection(omitCredentials, omitRoleFlag bool, roleFlag string) bson.M {
	projection := bson.M{}
	if omitCredentials {
		projection["local.password"] = 0
		projection["facebook.token"] = 0
		projection["google.token"] = 0
	}
	if omitRoleFlag {
		projection["local."+roleFlag] = 0
	}
	if len(projection) == 0 {
		return nil
	}
	return projection
}
