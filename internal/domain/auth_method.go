package domain

// AuthKind names how an account proves its identity.
type AuthKind string

const (
	AuthLocal AuthKind = "local"
	AuthOAuth AuthKind = "oauth"
)

// Provider identifies an external OAuth identity provider.
type Provider string

const (
	ProviderFacebook Provider = "facebook"
	ProviderGoogle   Provider = "google"
)

// AuthMethod is either *LocalAuth or *OAuthAuth. Every Client and Trainer
// carries exactly one.
type AuthMethod interface {
	Kind() AuthKind
	isAuthMethod()
}

// LocalAuth holds email + password credentials.
type LocalAuth struct {
	Email        string
	PasswordHash string
}

func (*LocalAuth) Kind() AuthKind { return AuthLocal }
func (*LocalAuth) isAuthMethod()  {}

// OAuthAuth holds the identity returned by a provider on first login.
type OAuthAuth struct {
	Provider   Provider
	ProviderID string
	Token      string
	Email      string
	Name       string
}

func (*OAuthAuth) Kind() AuthKind { return AuthOAuth }
func (*OAuthAuth) isAuthMethod()  {}

// LocalCredentials returns the local credentials of a, if any.
func LocalCredentials(a AuthMethod) (*LocalAuth, bool) {
	l, ok := a.(*LocalAuth)
	return l, ok && l != nil
}

// OAuthIdentity returns the provider identity of a, if any.
func OAuthIdentity(a AuthMethod) (*OAuthAuth, bool) {
	o, ok := a.(*OAuthAuth)
	return o, ok && o != nil
}

// AuthEmail returns the email attached to either variant.
func AuthEmail(a AuthMethod) string {
	switch m := a.(type) {
	case *LocalAuth:
		if m != nil {
			return m.Email
		}
	case *OAuthAuth:
		if m != nil {
			return m.Email
		}
	}
	return ""
}

// CloneAuth returns a deep copy so stores never share credential structs.
func CloneAuth(a AuthMethod) AuthMethod {
	switch m := a.(type) {
	case *LocalAuth:
		if m == nil {
			return nil
		}
		c := *m
		return &c
	case *OAuthAuth:
		if m == nil {
			return nil
		}
		c := *m
		return &c
	}
	return nil
}
