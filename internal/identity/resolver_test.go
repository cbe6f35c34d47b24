package identity

import (
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"alcyxob/fitness-market/internal/repository/memory"
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTrainer(t *testing.T, store repository.Store, email string) *domain.Trainer {
	t.Helper()
	trainer := &domain.Trainer{Auth: &domain.LocalAuth{Email: email, PasswordHash: "x"}, IsTrainer: true}
	if _, err := store.Trainers.Create(context.Background(), trainer); err != nil {
		t.Fatalf("create trainer: %v", err)
	}
	return trainer
}

func newClient(t *testing.T, store repository.Store, email string) *domain.Client {
	t.Helper()
	client := &domain.Client{Auth: &domain.LocalAuth{Email: email, PasswordHash: "x"}, IsClient: true}
	if _, err := store.Clients.Create(context.Background(), client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestRoundTripKeepsVariant(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	resolver := NewResolver(store)

	trainer := newTrainer(t, store, "t@example.com")
	client := newClient(t, store, "c@example.com")
	admin := &domain.Administrator{Email: "a@example.com", PasswordHash: "x", Name: "Admin", IsAdmin: true}
	if _, err := store.Administrators.Create(ctx, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	for _, p := range []domain.Principal{trainer, client, admin} {
		got, err := resolver.Deserialize(ctx, resolver.Serialize(p))
		if err != nil {
			t.Fatalf("deserialize %s: %v", p.Role(), err)
		}
		if got.PrincipalID() != p.PrincipalID() {
			t.Errorf("id = %s, want %s", got.PrincipalID().Hex(), p.PrincipalID().Hex())
		}
		if got.Role() != p.Role() {
			t.Errorf("role = %s, want %s", got.Role(), p.Role())
		}
	}

	if _, ok := mustResolve(t, resolver, trainer.ID).(*domain.Trainer); !ok {
		t.Error("trainer session should resolve to *domain.Trainer")
	}
	if _, ok := mustResolve(t, resolver, client.ID).(*domain.Client); !ok {
		t.Error("client session should resolve to *domain.Client")
	}
}

func mustResolve(t *testing.T, r *Resolver, id primitive.ObjectID) domain.Principal {
	t.Helper()
	p, err := r.Deserialize(context.Background(), id.Hex())
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	return p
}

func TestUnknownSession(t *testing.T) {
	resolver := NewResolver(memory.NewStore())
	for _, sid := range []string{"", "not-an-id", primitive.NewObjectID().Hex()} {
		if _, err := resolver.Deserialize(context.Background(), sid); !errors.Is(err, ErrUnknownPrincipal) {
			t.Errorf("Deserialize(%q) error = %v, want ErrUnknownPrincipal", sid, err)
		}
	}
}

// collide stores a client under an id already used by a trainer.
func collide(t *testing.T, store repository.Store) primitive.ObjectID {
	t.Helper()
	trainer := newTrainer(t, store, "shared-t@example.com")
	client := &domain.Client{ID: trainer.ID, Auth: &domain.LocalAuth{Email: "shared-c@example.com", PasswordHash: "x"}, IsClient: true}
	if err := store.Clients.Save(context.Background(), client); err != nil {
		t.Fatalf("save colliding client: %v", err)
	}
	return trainer.ID
}

func TestCollisionFollowsLookupOrder(t *testing.T) {
	store := memory.NewStore()
	id := collide(t, store)

	p := mustResolve(t, NewResolver(store), id)
	if p.Role() != domain.RoleTrainer {
		t.Fatalf("role = %s, want trainer first", p.Role())
	}
}

func TestStrictCollisionFails(t *testing.T) {
	store := memory.NewStore()
	id := collide(t, store)

	_, err := NewResolver(store, StrictCollisions()).Deserialize(context.Background(), id.Hex())
	if !errors.Is(err, ErrAmbiguousPrincipal) {
		t.Fatalf("error = %v, want ErrAmbiguousPrincipal", err)
	}
}

func TestStoreFaultPropagates(t *testing.T) {
	store := memory.NewStore()
	trainer := newTrainer(t, store, "t@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewResolver(store).Deserialize(ctx, trainer.ID.Hex())
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}
}
