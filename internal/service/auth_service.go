package service

import (
	"alcyxob/fitness-market/internal/credential"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrDuplicateEmail      = errors.New("email is already taken")
	ErrUnknownAccount      = errors.New("account does not exist")
	ErrInvalidPassword     = errors.New("password is invalid")
	ErrOAuthProfileInvalid = errors.New("oauth profile has no provider id")
)

// --- Request Structs ---

// SignupRequest carries the credentials and the optional profile fields of a
// new local account. Profile fields are stored as given; clients ignore the
// trainer-only ones.
type SignupRequest struct {
	Email          string     `json:"email" validate:"required,tldemail"`
	Password       string     `json:"password" validate:"required,min=6"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Age            int        `json:"age"`
	Birthday       *time.Time `json:"birthday"`
	Address        []string   `json:"address"`
	Specialization []string   `json:"specialization"`
	Phone          string     `json:"phone"`
	Rate           float64    `json:"rate"`
	Image          string     `json:"image"`
}

// LoginRequest carries local credentials. Only presence is checked; an
// address that was never registered is simply unknown.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdministratorRequest creates an administrator from the seeding tool.
type AdministratorRequest struct {
	Email    string `json:"email" validate:"required,tldemail"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// OAuthProfile is what a provider returns about the signed-in user.
type OAuthProfile struct {
	Provider domain.Provider
	ID       string
	Emails   []string
	Name     string
	Token    string
}

// PrimaryEmail returns the first non-empty email of the profile.
func (p OAuthProfile) PrimaryEmail() string {
	for _, e := range p.Emails {
		if e = normalizeEmail(e); e != "" {
			return e
		}
	}
	return ""
}

// --- Service Interface ---
type AuthService interface {
	SignupTrainer(ctx context.Context, req SignupRequest) (*domain.Trainer, error)
	SignupClient(ctx context.Context, req SignupRequest) (*domain.Client, error)
	LoginTrainer(ctx context.Context, req LoginRequest) (*domain.Trainer, error)
	LoginClient(ctx context.Context, req LoginRequest) (*domain.Client, error)
	LoginAdministrator(ctx context.Context, req LoginRequest) (*domain.Administrator, error)
	// TrainerFromOAuth returns the trainer behind profile, provisioning it on first login.
	TrainerFromOAuth(ctx context.Context, profile OAuthProfile) (*domain.Trainer, error)
	ClientFromOAuth(ctx context.Context, profile OAuthProfile) (*domain.Client, error)
	CreateAdministrator(ctx context.Context, req AdministratorRequest) (*domain.Administrator, error)
}

// --- Service Implementation ---

type authService struct {
	trainers       repository.TrainerRepository
	clients        repository.ClientRepository
	administrators repository.AdministratorRepository
	hasher         credential.Hasher
}

// NewAuthService creates a new instance of authService.
func NewAuthService(store repository.Store, hasher credential.Hasher) AuthService {
	if hasher == nil {
		hasher = credential.NewBcryptHasher(credential.DefaultCost)
	}
	return &authService{
		trainers:       store.Trainers,
		clients:        store.Clients,
		administrators: store.Administrators,
		hasher:         hasher,
	}
}

// SignupTrainer registers a trainer with local credentials.
func (s *authService) SignupTrainer(ctx context.Context, req SignupRequest) (*domain.Trainer, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req, signupMessages); err != nil {
		return nil, err
	}

	_, err := s.trainers.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	trainer := &domain.Trainer{
		Auth:      &domain.LocalAuth{Email: req.Email, PasswordHash: hash},
		IsTrainer: true,
		Profile: domain.TrainerProfile{
			Name:           req.Name,
			Description:    req.Description,
			Age:            req.Age,
			Birthday:       req.Birthday,
			Address:        req.Address,
			Specialization: req.Specialization,
			Phone:          req.Phone,
			Rate:           req.Rate,
			Image:          req.Image,
		},
	}
	if _, err := s.trainers.Create(ctx, trainer); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	logrus.WithField("trainer_id", trainer.ID.Hex()).Info("Trainer signed up")
	repository.WithoutCredentials.Trainer(trainer)
	return trainer, nil
}

// SignupClient registers a client with local credentials.
func (s *authService) SignupClient(ctx context.Context, req SignupRequest) (*domain.Client, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req, signupMessages); err != nil {
		return nil, err
	}

	_, err := s.clients.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		Auth:     &domain.LocalAuth{Email: req.Email, PasswordHash: hash},
		IsClient: true,
		Profile: domain.ClientProfile{
			Name:     req.Name,
			Age:      req.Age,
			Birthday: req.Birthday,
			Address:  req.Address,
		},
	}
	if _, err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	logrus.WithField("client_id", client.ID.Hex()).Info("Client signed up")
	repository.WithoutCredentials.Client(client)
	return client, nil
}

// LoginTrainer authenticates a trainer by local credentials.
func (s *authService) LoginTrainer(ctx context.Context, req LoginRequest) (*domain.Trainer, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req, loginMessages); err != nil {
		return nil, err
	}
	trainer, err := s.trainers.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, loginLookupError(err, domain.RoleTrainer)
	}
	if err := s.checkPassword(trainer.Auth, req.Password, domain.RoleTrainer); err != nil {
		return nil, err
	}
	repository.WithoutCredentials.Trainer(trainer)
	return trainer, nil
}

// LoginClient authenticates a client by local credentials.
func (s *authService) LoginClient(ctx context.Context, req LoginRequest) (*domain.Client, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req, loginMessages); err != nil {
		return nil, err
	}
	client, err := s.clients.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, loginLookupError(err, domain.RoleClient)
	}
	if err := s.checkPassword(client.Auth, req.Password, domain.RoleClient); err != nil {
		return nil, err
	}
	repository.WithoutCredentials.Client(client)
	return client, nil
}

// LoginAdministrator authenticates an administrator.
func (s *authService) LoginAdministrator(ctx context.Context, req LoginRequest) (*domain.Administrator, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req, loginMessages); err != nil {
		return nil, err
	}
	admin, err := s.administrators.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, loginLookupError(err, domain.RoleAdministrator)
	}
	if !s.hasher.Verify(req.Password, admin.PasswordHash) {
		logrus.WithField("role", domain.RoleAdministrator).Warn("Login rejected: invalid password")
		return nil, ErrInvalidPassword
	}
	repository.WithoutCredentials.Administrator(admin)
	return admin, nil
}

func loginLookupError(err error, role domain.Role) error {
	if errors.Is(err, repository.ErrNotFound) {
		logrus.WithField("role", role).Info("Login rejected: unknown account")
		return ErrUnknownAccount
	}
	return err
}

func (s *authService) checkPassword(auth domain.AuthMethod, password string, role domain.Role) error {
	local, ok := domain.LocalCredentials(auth)
	if !ok || !s.hasher.Verify(password, local.PasswordHash) {
		logrus.WithField("role", role).Warn("Login rejected: invalid password")
		return ErrInvalidPassword
	}
	return nil
}

// TrainerFromOAuth looks the trainer up by provider id and creates it from
// the provider profile when unseen. Known trainers are returned unchanged.
func (s *authService) TrainerFromOAuth(ctx context.Context, profile OAuthProfile) (*domain.Trainer, error) {
	if profile.ID == "" {
		return nil, ErrOAuthProfileInvalid
	}
	trainer, err := provision(ctx, profile,
		func(ctx context.Context) (*domain.Trainer, error) {
			return s.trainers.FindByOAuthID(ctx, profile.Provider, profile.ID)
		},
		func(ctx context.Context) (*domain.Trainer, error) {
			t := &domain.Trainer{Auth: oauthAuth(profile)}
			if _, err := s.trainers.Create(ctx, t); err != nil {
				return nil, err
			}
			return t, nil
		},
	)
	if err != nil {
		return nil, err
	}
	repository.WithoutCredentials.Trainer(trainer)
	return trainer, nil
}

// ClientFromOAuth is the client counterpart of TrainerFromOAuth.
func (s *authService) ClientFromOAuth(ctx context.Context, profile OAuthProfile) (*domain.Client, error) {
	if profile.ID == "" {
		return nil, ErrOAuthProfileInvalid
	}
	client, err := provision(ctx, profile,
		func(ctx context.Context) (*domain.Client, error) {
			return s.clients.FindByOAuthID(ctx, profile.Provider, profile.ID)
		},
		func(ctx context.Context) (*domain.Client, error) {
			c := &domain.Client{Auth: oauthAuth(profile)}
			if _, err := s.clients.Create(ctx, c); err != nil {
				return nil, err
			}
			return c, nil
		},
	)
	if err != nil {
		return nil, err
	}
	repository.WithoutCredentials.Client(client)
	return client, nil
}

// provision runs lookup, then create on a miss. A DuplicateKey from create
// means a concurrent callback provisioned the same provider id first; the
// lookup is retried once to return that account.
func provision[T domain.Principal](ctx context.Context, profile OAuthProfile, lookup, create func(context.Context) (T, error)) (T, error) {
	var zero T
	found, err := lookup(ctx)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return zero, err
	}

	created, err := create(ctx)
	if err == nil {
		logrus.WithFields(logrus.Fields{
			"provider": profile.Provider,
			"role":     created.Role(),
			"id":       created.PrincipalID().Hex(),
		}).Info("Provisioned account from OAuth profile")
		return created, nil
	}
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return zero, err
	}

	found, err = lookup(ctx)
	if err != nil {
		return zero, fmt.Errorf("lookup after duplicate provisioning: %w", err)
	}
	return found, nil
}

func oauthAuth(profile OAuthProfile) *domain.OAuthAuth {
	provider := profile.Provider
	if provider == "" {
		provider = domain.ProviderFacebook
	}
	return &domain.OAuthAuth{
		Provider:   provider,
		ProviderID: profile.ID,
		Token:      profile.Token,
		Email:      profile.PrimaryEmail(),
		Name:       profile.Name,
	}
}

// CreateAdministrator stores a new administrator with a hashed password.
func (s *authService) CreateAdministrator(ctx context.Context, req AdministratorRequest) (*domain.Administrator, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req, signupMessages); err != nil {
		return nil, err
	}
	_, err := s.administrators.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	admin := &domain.Administrator{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsAdmin:      true,
	}
	if _, err := s.administrators.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	logrus.WithField("admin_id", admin.ID.Hex()).Info("Administrator created")
	repository.WithoutCredentials.Administrator(admin)
	return admin, nil
}
