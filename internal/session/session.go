// Package session keeps the principal id, flash messages and OAuth state in
// a signed cookie. Everything is read from and written to the request at
// hand; nothing is process-global.
package session

import (
	"alcyxob/fitness-market/internal/config"
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	keySessionID  = "sid"
	keyOAuthState = "oauth_state"
	flashKey      = "_flash"
)

// Manager wraps a gorilla session store.
type Manager struct {
	store sessions.Store
	name  string
}

// NewManager builds a cookie-backed Manager from cfg.
func NewManager(cfg config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		// Lax so the cookie survives the redirect back from the OAuth provider.
		SameSite: http.SameSiteLaxMode,
	}
	name := cfg.Name
	if name == "" {
		name = "fitmarket"
	}
	return &Manager{store: store, name: name}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// A cookie that fails verification yields a fresh session.
	sess, _ := m.store.Get(r, m.name)
	return sess
}

// Login binds sessionID to the browser session.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, sessionID string) error {
	sess := m.get(r)
	sess.Values[keySessionID] = sessionID
	return sess.Save(r, w)
}

// SessionID returns the bound session id, if any.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	sid, ok := m.get(r).Values[keySessionID].(string)
	return sid, ok && sid != ""
}

// Logout expires the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess := m.get(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// AddFlash queues a one-shot message.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	sess := m.get(r)
	sess.AddFlash(message, flashKey)
	return sess.Save(r, w)
}

// Flashes drains the queued messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) ([]string, error) {
	sess := m.get(r)
	raw := sess.Flashes(flashKey)
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	if len(raw) == 0 {
		return messages, nil
	}
	return messages, sess.Save(r, w)
}

// SetOAuthState remembers the state parameter of an authorization redirect.
func (m *Manager) SetOAuthState(w http.ResponseWriter, r *http.Request, state string) error {
	sess := m.get(r)
	sess.Values[keyOAuthState] = state
	return sess.Save(r, w)
}

// ConsumeOAuthState reports whether state matches the remembered one and
// forgets it either way.
func (m *Manager) ConsumeOAuthState(w http.ResponseWriter, r *http.Request, state string) (bool, error) {
	sess := m.get(r)
	want, _ := sess.Values[keyOAuthState].(string)
	delete(sess.Values, keyOAuthState)
	if err := sess.Save(r, w); err != nil {
		return false, err
	}
	return want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(state)) == 1, nil
}
