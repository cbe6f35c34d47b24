package memory

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTrainerEmailIsUnique(t *testing.T) {
	repo := NewTrainerRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.Trainer{Auth: &domain.LocalAuth{Email: "t1@example.com", PasswordHash: "h"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, &domain.Trainer{Auth: &domain.LocalAuth{Email: "T1@example.com", PasswordHash: "h2"}})
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestClientLookupByOAuthID(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Client{Auth: &domain.OAuthAuth{Provider: domain.ProviderFacebook, ProviderID: "fb-42", Email: "c@example.com"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	found, err := repo.FindByOAuthID(ctx, domain.ProviderFacebook, "fb-42")
	if err != nil {
		t.Fatalf("FindByOAuthID: %v", err)
	}
	if found.ID != id {
		t.Fatalf("expected %s, got %s", id.Hex(), found.ID.Hex())
	}
	if _, err := repo.FindByOAuthID(ctx, domain.ProviderGoogle, "fb-42"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other provider, got %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "c@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("OAuth email must not satisfy a local email lookup, got %v", err)
	}
}

func TestConcurrentOAuthCreateAllowsOneWinner(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Client{Auth: &domain.OAuthAuth{Provider: domain.ProviderFacebook, ProviderID: "same"}})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if created != 1 {
		t.Fatalf("expected exactly one insert, got %d", created)
	}
}

func TestSaveUpsertsAndReindexes(t *testing.T) {
	repo := NewTrainerRepository()
	ctx := context.Background()

	tr := &domain.Trainer{Auth: &domain.LocalAuth{Email: "old@example.com", PasswordHash: "h"}}
	if _, err := repo.Create(ctx, tr); err != nil {
		t.Fatalf("Create: %v", err)
	}
	tr.Auth = &domain.LocalAuth{Email: "new@example.com", PasswordHash: "h"}
	tr.Profile.Name = "Renamed"
	if err := repo.Save(ctx, tr); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "old@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("old email should be released, got %v", err)
	}
	got, err := repo.FindByEmail(ctx, "new@example.com")
	if err != nil || got.Profile.Name != "Renamed" {
		t.Fatalf("unexpected lookup result %+v, %v", got, err)
	}
}

func TestFindAllAppliesFilterAndProjection(t *testing.T) {
	repo := NewTrainerRepository()
	ctx := context.Background()
	_, _ = repo.Create(ctx, &domain.Trainer{IsTrainer: true, Auth: &domain.LocalAuth{Email: "a@example.com", PasswordHash: "h"}, Profile: domain.TrainerProfile{Specialization: []string{"Yoga"}}})
	_, _ = repo.Create(ctx, &domain.Trainer{IsTrainer: true, Auth: &domain.LocalAuth{Email: "b@example.com", PasswordHash: "h"}, Profile: domain.TrainerProfile{Specialization: []string{"Boxing"}}})

	trainers, err := repo.FindAll(ctx, repository.TrainerFilter{Specialization: "yoga"}, repository.PublicProfile)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(trainers) != 1 {
		t.Fatalf("expected 1 trainer, got %d", len(trainers))
	}
	local, _ := domain.LocalCredentials(trainers[0].Auth)
	if local.PasswordHash != "" || trainers[0].IsTrainer {
		t.Fatalf("projection not applied: %+v", trainers[0])
	}
}

func TestCancelledContextIsStoreUnavailable(t *testing.T) {
	repo := NewGymRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.FindAll(ctx, repository.GymFilter{}); !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUpdateProfileLeavesGymAndAuthAlone(t *testing.T) {
	repo := NewTrainerRepository()
	ctx := context.Background()

	tr := &domain.Trainer{Auth: &domain.LocalAuth{Email: "t@example.com", PasswordHash: "h"}, IsTrainer: true}
	id, err := repo.Create(ctx, tr)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	gymID := primitive.NewObjectID()
	if err := repo.SetGym(ctx, id, gymID); err != nil {
		t.Fatalf("SetGym: %v", err)
	}

	profile := domain.TrainerProfile{Name: "New", Specialization: []string{"Yoga"}}
	got, err := repo.UpdateProfile(ctx, id, profile)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	profile.Specialization[0] = "mutated"

	stored, _ := repo.FindByID(ctx, id)
	for _, tr := range []*domain.Trainer{got, stored} {
		if tr.GymID == nil || *tr.GymID != gymID {
			t.Errorf("gymInfo lost: %v", tr.GymID)
		}
		if !tr.IsTrainer || domain.AuthEmail(tr.Auth) != "t@example.com" {
			t.Errorf("auth or role flag changed: %+v", tr)
		}
	}
	if stored.Profile.Name != "New" || stored.Profile.Specialization[0] != "Yoga" {
		t.Errorf("stored profile = %+v", stored.Profile)
	}

	if _, err := repo.UpdateProfile(ctx, primitive.NewObjectID(), profile); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
