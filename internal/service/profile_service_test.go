package service

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateTrainerProfileChangesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)
	profiles := NewProfileService(store)

	trainer, err := auth.SignupTrainer(ctx, SignupRequest{Email: "t@example.com", Password: "secret1", Name: "Before", Phone: "555", Rate: 30})
	if err != nil {
		t.Fatalf("SignupTrainer: %v", err)
	}

	updated, err := profiles.UpdateTrainerProfile(ctx, trainer, TrainerProfileUpdate{
		Name:           ptr("After"),
		Rate:           ptr(45.5),
		Specialization: []string{"Boxing", "HIIT"},
	})
	if err != nil {
		t.Fatalf("UpdateTrainerProfile: %v", err)
	}
	if updated.Profile.Name != "After" || updated.Profile.Rate != 45.5 {
		t.Errorf("fields not applied: %+v", updated.Profile)
	}
	if updated.Profile.Phone != "555" {
		t.Errorf("phone should be untouched, got %q", updated.Profile.Phone)
	}

	// Credentials survive the profile update.
	if _, err := auth.LoginTrainer(ctx, LoginRequest{Email: "t@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("login after update: %v", err)
	}
}

func TestUpdateProfileGuards(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)
	profiles := NewProfileService(store)
	client := signupClient(t, auth, "c@example.com")
	trainer := signupTrainer(t, auth, "t@example.com")

	if _, err := profiles.UpdateTrainerProfile(ctx, client, TrainerProfileUpdate{Name: ptr("x")}); !errors.Is(err, access.ErrRoleRequired) {
		t.Fatalf("expected ErrRoleRequired, got %v", err)
	}
	if _, err := profiles.UpdateClientProfile(ctx, trainer, ClientProfileUpdate{Name: ptr("x")}); !errors.Is(err, access.ErrRoleRequired) {
		t.Fatalf("expected ErrRoleRequired, got %v", err)
	}
	_, err := profiles.UpdateTrainerProfile(ctx, trainer, TrainerProfileUpdate{Age: ptr(-1)})
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("age") {
		t.Fatalf("expected age validation error, got %v", err)
	}
}

func TestUpdateClientProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	profiles := NewProfileService(store)
	client := signupClient(t, newAuth(store), "c@example.com")

	if _, err := profiles.UpdateClientProfile(ctx, client, ClientProfileUpdate{Age: ptr(31), Address: []string{"Main St 1"}}); err != nil {
		t.Fatalf("UpdateClientProfile: %v", err)
	}
	got, err := profiles.GetClient(ctx, client.ID, repository.WithoutCredentials)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.Profile.Age != 31 || len(got.Profile.Address) != 1 {
		t.Fatalf("unexpected profile %+v", got.Profile)
	}
	if local, _ := domain.LocalCredentials(got.Auth); local.PasswordHash != "" {
		t.Fatal("projection must strip the password hash")
	}
	if !got.IsClient {
		t.Error("WithoutCredentials keeps the role flag")
	}
}

func TestOAuthClientMayUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	client, err := newAuth(store).ClientFromOAuth(ctx, facebookProfile("fb-9"))
	if err != nil {
		t.Fatalf("ClientFromOAuth: %v", err)
	}
	if _, err := NewProfileService(store).UpdateClientProfile(ctx, client, ClientProfileUpdate{Name: ptr("Via FB")}); err != nil {
		t.Fatalf("OAuth email should satisfy the client guard: %v", err)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	profiles := NewProfileService(newMemoryStore())
	if _, err := profiles.GetTrainer(context.Background(), primitive.NewObjectID(), repository.PublicProfile); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := profiles.GetClient(context.Background(), primitive.NewObjectID(), repository.PublicProfile); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// gymDuringRead runs after once the trainer has been read, before the
// profile is written back.
type gymDuringRead struct {
	repository.TrainerRepository
	after func()
}

func (r *gymDuringRead) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := r.TrainerRepository.FindByID(ctx, id)
	if r.after != nil {
		after := r.after
		r.after = nil
		after()
	}
	return trainer, err
}

func TestUpdateTrainerProfileKeepsGymCreatedConcurrently(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	trainer := signupTrainer(t, newAuth(store), "t1@example.com")
	gyms := NewGymService(store)

	var gym *domain.Gym
	interleaved := store
	interleaved.Trainers = &gymDuringRead{
		TrainerRepository: store.Trainers,
		after: func() {
			var err error
			gym, err = gyms.CreateGym(ctx, trainer, CreateGymRequest{Name: "g1", Description: "strength", Location: "Downtown"})
			if err != nil {
				t.Fatalf("CreateGym: %v", err)
			}
		},
	}

	updated, err := NewProfileService(interleaved).UpdateTrainerProfile(ctx, trainer, TrainerProfileUpdate{Phone: ptr("555-0101")})
	if err != nil {
		t.Fatalf("UpdateTrainerProfile: %v", err)
	}
	if gym == nil {
		t.Fatal("gym was not created during the update")
	}
	if updated.GymID == nil || *updated.GymID != gym.ID {
		t.Errorf("updated.GymID = %v, want %s", updated.GymID, gym.ID.Hex())
	}

	stored, err := store.Trainers.FindByID(ctx, trainer.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.GymID == nil || *stored.GymID != gym.ID {
		t.Fatalf("stored gymInfo = %v, want %s", stored.GymID, gym.ID.Hex())
	}
	if stored.Profile.Phone != "555-0101" {
		t.Errorf("phone = %q, want 555-0101", stored.Profile.Phone)
	}
}

func TestUpdateClientProfileKeepsCredentials(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)
	client := signupClient(t, auth, "c@example.com")

	if _, err := NewProfileService(store).UpdateClientProfile(ctx, client, ClientProfileUpdate{Address: []string{"1 Main St"}}); err != nil {
		t.Fatalf("UpdateClientProfile: %v", err)
	}
	stored, err := store.Clients.FindByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.IsClient || len(stored.Profile.Address) != 1 {
		t.Errorf("unexpected stored client %+v", stored)
	}
	if _, err := auth.LoginClient(ctx, LoginRequest{Email: "c@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("login after update: %v", err)
	}
}
