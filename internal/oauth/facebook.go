// Package oauth implements the Facebook login flow used by trainers and clients.
package oauth

import (
	"alcyxob/fitness-market/internal/config"
	"alcyxob/fitness-market/internal/domain"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// DefaultGraphURL is the Facebook Graph API base.
const DefaultGraphURL = "https://graph.facebook.com"

var ErrExchangeFailed = errors.New("oauth code exchange failed")

// Profile is the identity returned by the provider.
type Profile struct {
	Provider domain.Provider
	ID       string
	Name     string
	Email    string
	Token    string
}

// Provider runs the authorization-code flow for one role's callback.
type Provider interface {
	AuthCodeURL(role domain.Role, state string) string
	Exchange(ctx context.Context, role domain.Role, code string) (*Profile, error)
}

// Facebook implements Provider against Facebook Login.
type Facebook struct {
	configs  map[domain.Role]*oauth2.Config
	graphURL string
}

// Option customises Facebook.
type Option func(*Facebook)

// WithEndpoints points the token exchange and Graph calls at other hosts.
func WithEndpoints(endpoint oauth2.Endpoint, graphURL string) Option {
	return func(f *Facebook) {
		for _, c := range f.configs {
			c.Endpoint = endpoint
		}
		f.graphURL = strings.TrimRight(graphURL, "/")
	}
}

// CallbackPath is the route the provider redirects role back to.
func CallbackPath(role domain.Role) string {
	return "/api/v1/" + string(role) + "/auth/facebook/callback"
}

// NewFacebook builds one oauth2 config per role from cfg.
func NewFacebook(cfg config.FacebookConfig, opts ...Option) *Facebook {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"email", "public_profile"}
	}
	base := strings.TrimRight(cfg.RedirectBase, "/")
	f := &Facebook{
		configs:  make(map[domain.Role]*oauth2.Config, 2),
		graphURL: DefaultGraphURL,
	}
	for _, role := range []domain.Role{domain.RoleTrainer, domain.RoleClient} {
		f.configs[role] = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     facebook.Endpoint,
			RedirectURL:  base + CallbackPath(role),
			Scopes:       scopes,
		}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Facebook) config(role domain.Role) (*oauth2.Config, error) {
	c, ok := f.configs[role]
	if !ok {
		return nil, fmt.Errorf("facebook login is not available for role %q", role)
	}
	return c, nil
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (f *Facebook) AuthCodeURL(role domain.Role, state string) string {
	c, err := f.config(role)
	if err != nil {
		return ""
	}
	return c.AuthCodeURL(state)
}

// Exchange trades code for a token and loads the Graph profile.
func (f *Facebook) Exchange(ctx context.Context, role domain.Role, code string) (*Profile, error) {
	c, err := f.config(role)
	if err != nil {
		return nil, err
	}
	token, err := c.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	profile, err := f.fetchProfile(ctx, c.Client(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	profile.Token = token.AccessToken
	return profile, nil
}

type graphUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (f *Facebook) fetchProfile(ctx context.Context, client *http.Client) (*Profile, error) {
	endpoint := f.graphURL + "/me?" + url.Values{"fields": {"id,name,email"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graph request: unexpected status %s", resp.Status)
	}

	var user graphUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode graph profile: %w", err)
	}
	return &Profile{
		Provider: domain.ProviderFacebook,
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
	}, nil
}

// NewState returns a random value for the OAuth state parameter.
func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
