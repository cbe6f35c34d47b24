package service

import (
	"alcyxob/fitness-market/internal/credential"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/repository"
	"alcyxob/fitness-market/internal/repository/memory"
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// fastHasher keeps bcrypt but at the minimum cost so tests stay quick.
func fastHasher() credential.Hasher {
	return credential.NewBcryptHasher(bcrypt.MinCost)
}

func newAuth(store repository.Store) AuthService {
	return NewAuthService(store, fastHasher())
}

func signupTrainer(t *testing.T, auth AuthService, email string) *domain.Trainer {
	t.Helper()
	trainer, err := auth.SignupTrainer(context.Background(), SignupRequest{Email: email, Password: "secret1", Name: "Trainer " + email})
	if err != nil {
		t.Fatalf("SignupTrainer(%s): %v", email, err)
	}
	return trainer
}

func signupClient(t *testing.T, auth AuthService, email string) *domain.Client {
	t.Helper()
	client, err := auth.SignupClient(context.Background(), SignupRequest{Email: email, Password: "secret1", Name: "Client " + email})
	if err != nil {
		t.Fatalf("SignupClient(%s): %v", email, err)
	}
	return client
}

func newMemoryStore() repository.Store {
	return memory.NewStore()
}
