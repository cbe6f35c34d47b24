package service

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"
)

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(newMemoryStore())
	signupTrainer(t, auth, "dup@example.com")

	_, err := auth.SignupTrainer(ctx, SignupRequest{Email: "DUP@example.com", Password: "another-pass", Name: "Other", Rate: 40})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	signupClient(t, auth, "dup@example.com") // collections are independent
	if _, err := auth.SignupClient(ctx, SignupRequest{Email: "dup@example.com", Password: "different"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail for client, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	auth := newAuth(newMemoryStore())
	tests := []struct {
		name       string
		req        SignupRequest
		wantFields []string
	}{
		{"short password", SignupRequest{Email: "a@example.com", Password: "12345"}, []string{"password"}},
		{"bad email", SignupRequest{Email: "not-an-email", Password: "secret1"}, []string{"email"}},
		{"missing tld", SignupRequest{Email: "a@example", Password: "secret1"}, []string{"email"}},
		{"both", SignupRequest{Email: "", Password: ""}, []string{"email", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.SignupClient(context.Background(), tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("expected %d failing fields, got %+v", len(tt.wantFields), verr.Fields)
			}
			for _, f := range tt.wantFields {
				if !verr.Has(f) {
					t.Errorf("expected field %q in %+v", f, verr.Fields)
				}
			}
		})
	}
}

func TestSignupValidationMessages(t *testing.T) {
	auth := newAuth(newMemoryStore())
	_, err := auth.SignupTrainer(context.Background(), SignupRequest{Email: "bad", Password: "123"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"Invalid Credentials, Please check email",
		"Password should atleast contain more than six characters",
	}
	got := verr.Messages()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("messages = %q, want %q", got, want)
	}
}

func TestSignupStoresHashAndProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)

	trainer, err := auth.SignupTrainer(ctx, SignupRequest{
		Email:          "coach@example.com",
		Password:       "secret1",
		Name:           "Coach",
		Specialization: []string{"Yoga"},
		Rate:           55,
	})
	if err != nil {
		t.Fatalf("SignupTrainer: %v", err)
	}
	if local, ok := domain.LocalCredentials(trainer.Auth); !ok || local.PasswordHash != "" {
		t.Fatalf("returned trainer must carry redacted local auth, got %#v", trainer.Auth)
	}

	stored, err := store.Trainers.FindByID(ctx, trainer.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	local, _ := domain.LocalCredentials(stored.Auth)
	if local.PasswordHash == "" || local.PasswordHash == "secret1" {
		t.Fatalf("expected a bcrypt digest, got %q", local.PasswordHash)
	}
	if !stored.IsTrainer {
		t.Error("local signup must set the role flag")
	}
	if stored.Profile.Name != "Coach" || stored.Profile.Rate != 55 || len(stored.Profile.Specialization) != 1 {
		t.Errorf("profile not copied: %+v", stored.Profile)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(newMemoryStore())
	trainer := signupTrainer(t, auth, "t1@example.com")
	client := signupClient(t, auth, "c1@example.com")

	got, err := auth.LoginTrainer(ctx, LoginRequest{Email: "t1@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("LoginTrainer: %v", err)
	}
	if got.ID != trainer.ID {
		t.Fatalf("expected trainer id %s, got %s", trainer.ID.Hex(), got.ID.Hex())
	}

	gotClient, err := auth.LoginClient(ctx, LoginRequest{Email: " C1@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("LoginClient: %v", err)
	}
	if gotClient.ID != client.ID {
		t.Fatalf("expected client id %s, got %s", client.ID.Hex(), gotClient.ID.Hex())
	}

	if _, err := auth.LoginTrainer(ctx, LoginRequest{Email: "t1@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := auth.LoginTrainer(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	// Trainers and clients do not share credentials.
	if _, err := auth.LoginClient(ctx, LoginRequest{Email: "t1@example.com", Password: "secret1"}); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount for trainer email on client login, got %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	auth := newAuth(newMemoryStore())
	_, err := auth.LoginClient(context.Background(), LoginRequest{Email: "c@example.com"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if msgs := verr.Messages(); len(msgs) != 1 || msgs[0] != "Invalid Credentials, Please check password" {
		t.Fatalf("unexpected messages %q", msgs)
	}
}

func TestLoginChecksEmailPresenceOnly(t *testing.T) {
	auth := newAuth(newMemoryStore())
	for _, email := range []string{"coach@localhost", "not-an-email"} {
		if _, err := auth.LoginTrainer(context.Background(), LoginRequest{Email: email, Password: "secret1"}); !errors.Is(err, ErrUnknownAccount) {
			t.Errorf("LoginTrainer(%q): expected ErrUnknownAccount, got %v", email, err)
		}
	}

	_, err := auth.LoginTrainer(context.Background(), LoginRequest{Password: "secret1"})
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("email") {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestLoginStoreFaultPropagates(t *testing.T) {
	auth := newAuth(newMemoryStore())
	signupTrainer(t, auth, "t1@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := auth.LoginTrainer(ctx, LoginRequest{Email: "t1@example.com", Password: "secret1"})
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func facebookProfile(id string) OAuthProfile {
	return OAuthProfile{
		Provider: domain.ProviderFacebook,
		ID:       id,
		Emails:   []string{"", "FB.User@example.com"},
		Name:     "FB User",
		Token:    "token-" + id,
	}
}

func TestOAuthReloginIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)

	first, err := auth.ClientFromOAuth(ctx, facebookProfile("fb-1"))
	if err != nil {
		t.Fatalf("ClientFromOAuth: %v", err)
	}
	if first.IsClient {
		t.Error("OAuth provisioning must not set the role flag")
	}
	oauth, ok := domain.OAuthIdentity(first.Auth)
	if !ok || oauth.Email != "fb.user@example.com" || oauth.Token != "" {
		t.Fatalf("unexpected auth %#v", first.Auth)
	}

	changed := facebookProfile("fb-1")
	changed.Name = "Renamed"
	second, err := auth.ClientFromOAuth(ctx, changed)
	if err != nil {
		t.Fatalf("ClientFromOAuth again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id %s, got %s", first.ID.Hex(), second.ID.Hex())
	}
	if o, _ := domain.OAuthIdentity(second.Auth); o.Name != "FB User" {
		t.Errorf("profile must not be refreshed on re-login, got name %q", o.Name)
	}

	clients, err := store.Clients.FindAll(ctx, repository.ClientFilter{}, repository.FullRecord)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
}

func TestOAuthConcurrentProvisioningCreatesOne(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)

	const callbacks = 16
	ids := make(chan string, callbacks)
	errs := make(chan error, callbacks)
	var wg sync.WaitGroup
	for i := 0; i < callbacks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trainer, err := auth.TrainerFromOAuth(ctx, facebookProfile("fb-race"))
			if err != nil {
				errs <- err
				return
			}
			ids <- trainer.ID.Hex()
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Fatalf("TrainerFromOAuth: %v", err)
	}
	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 1 {
		t.Fatalf("expected every callback to resolve to one trainer, got %d ids", len(seen))
	}

	trainers, err := store.Trainers.FindAll(ctx, repository.TrainerFilter{}, repository.FullRecord)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(trainers) != 1 {
		t.Fatalf("expected exactly 1 provisioned trainer, got %d", len(trainers))
	}
}

func TestOAuthRequiresProviderID(t *testing.T) {
	auth := newAuth(newMemoryStore())
	if _, err := auth.TrainerFromOAuth(context.Background(), OAuthProfile{Name: "No Id"}); !errors.Is(err, ErrOAuthProfileInvalid) {
		t.Fatalf("expected ErrOAuthProfileInvalid, got %v", err)
	}
}

func TestAdministrator(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(newMemoryStore())

	admin, err := auth.CreateAdministrator(ctx, AdministratorRequest{Email: "root@example.com", Password: "secret1", Name: "Root"})
	if err != nil {
		t.Fatalf("CreateAdministrator: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("seeded administrator must have isAdmin set")
	}
	if _, err := auth.CreateAdministrator(ctx, AdministratorRequest{Email: "root@example.com", Password: "secret2", Name: "Again"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := auth.LoginAdministrator(ctx, LoginRequest{Email: "root@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("LoginAdministrator: %v", err)
	}
	if got.ID != admin.ID || got.PasswordHash != "" {
		t.Fatalf("unexpected administrator %+v", got)
	}
	if _, err := auth.LoginAdministrator(ctx, LoginRequest{Email: "root@example.com", Password: "nope-nope"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}
