package service

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Signup, login, create a gym, then read both sides of the link.
func TestTrainerGymScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)
	gyms := NewGymService(store)
	profiles := NewProfileService(store)

	if _, err := auth.SignupTrainer(ctx, SignupRequest{Email: "t1@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("SignupTrainer: %v", err)
	}
	t1, err := auth.LoginTrainer(ctx, LoginRequest{Email: "t1@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("LoginTrainer: %v", err)
	}

	g1, err := gyms.CreateGym(ctx, t1, CreateGymRequest{Name: "g1", Description: "Open gym", Location: "Downtown", Images: []string{"gyms/a.png"}})
	if err != nil {
		t.Fatalf("CreateGym: %v", err)
	}

	view, err := profiles.GetTrainer(ctx, t1.ID, repository.WithoutCredentials)
	if err != nil {
		t.Fatalf("GetTrainer: %v", err)
	}
	if view.Trainer.GymID == nil || *view.Trainer.GymID != g1.ID {
		t.Fatalf("expected gymInfo %s, got %v", g1.ID.Hex(), view.Trainer.GymID)
	}
	if view.Gym == nil || view.Gym.Name != "g1" {
		t.Fatalf("expected populated gym summary, got %+v", view.Gym)
	}

	gv, err := gyms.GetGym(ctx, g1.ID)
	if err != nil {
		t.Fatalf("GetGym: %v", err)
	}
	if gv.Gym.TrainerID != t1.ID {
		t.Fatalf("expected gym owner %s, got %s", t1.ID.Hex(), gv.Gym.TrainerID.Hex())
	}
	if gv.Owner == nil || gv.Owner.Email != "t1@example.com" {
		t.Fatalf("expected owner summary, got %+v", gv.Owner)
	}
	if !access.IsOwner(t1, &gv.Gym) {
		t.Error("creator should own the gym")
	}
}

func TestCreateGymOnePerTrainer(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	gyms := NewGymService(store)
	trainer := signupTrainer(t, newAuth(store), "t@example.com")

	if _, err := gyms.CreateGym(ctx, trainer, CreateGymRequest{Name: "first", Description: "Open gym", Location: "Downtown"}); err != nil {
		t.Fatalf("CreateGym: %v", err)
	}
	if _, err := gyms.CreateGym(ctx, trainer, CreateGymRequest{Name: "second", Description: "Open gym", Location: "Downtown"}); !errors.Is(err, ErrTrainerHasGym) {
		t.Fatalf("expected ErrTrainerHasGym, got %v", err)
	}
}

func TestCreateGymGuards(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)
	gyms := NewGymService(store)
	client := signupClient(t, auth, "c@example.com")
	trainer := signupTrainer(t, auth, "t@example.com")

	if _, err := gyms.CreateGym(ctx, nil, CreateGymRequest{Name: "x", Description: "Open gym", Location: "Downtown"}); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := gyms.CreateGym(ctx, client, CreateGymRequest{Name: "x", Description: "Open gym", Location: "Downtown"}); !errors.Is(err, access.ErrRoleRequired) {
		t.Fatalf("expected ErrRoleRequired, got %v", err)
	}
	_, err := gyms.CreateGym(ctx, trainer, CreateGymRequest{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "description", "location"} {
		if !verr.Has(field) {
			t.Errorf("expected a %s message, got %q", field, verr.Messages())
		}
	}
}

// failingLink lets the gym insert succeed and the trainer update fail.
type failingLink struct {
	repository.TrainerRepository
}

func (failingLink) SetGym(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return repository.ErrStoreUnavailable
}

func TestCreateGymSurfacesLinkFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	trainer := signupTrainer(t, newAuth(store), "t@example.com")

	broken := store
	broken.Trainers = failingLink{store.Trainers}
	_, err := NewGymService(broken).CreateGym(ctx, trainer, CreateGymRequest{Name: "orphan", Description: "Open gym", Location: "Downtown"})
	if !errors.Is(err, ErrGymLinkFailed) {
		t.Fatalf("expected ErrGymLinkFailed, got %v", err)
	}
}

func TestListGymsPopulatesOwners(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	auth := newAuth(store)
	gyms := NewGymService(store)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		trainer := signupTrainer(t, auth, email)
		if _, err := gyms.CreateGym(ctx, trainer, CreateGymRequest{Name: "gym of " + email, Description: "Open gym", Location: "Downtown"}); err != nil {
			t.Fatalf("CreateGym: %v", err)
		}
	}

	list, err := gyms.ListGyms(ctx)
	if err != nil {
		t.Fatalf("ListGyms: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 gyms, got %d", len(list))
	}
	for _, v := range list {
		if v.Owner == nil || v.Owner.ID != v.Gym.TrainerID {
			t.Errorf("gym %q has owner %+v", v.Gym.Name, v.Owner)
		}
	}

	if _, err := gyms.GetGym(ctx, primitive.NewObjectID()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
