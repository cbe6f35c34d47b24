package credential

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4)
	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if digest == "secret1" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !h.Verify("secret1", digest) {
		t.Errorf("Expected password check to pass")
	}
	if h.Verify("secret2", digest) {
		t.Errorf("Expected password check to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher(4)
	a, _ := h.Hash("same-password")
	b, _ := h.Hash("same-password")
	if a == b {
		t.Fatalf("expected distinct digests for the same plaintext")
	}
	if !h.Verify("same-password", a) || !h.Verify("same-password", b) {
		t.Fatalf("both digests should verify")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewBcryptHasher(4)
	for _, digest := range []string{"", "not-a-hash", "$2a$10$short", strings.Repeat("x", 60)} {
		if h.Verify("anything", digest) {
			t.Errorf("Verify(%q) returned true", digest)
		}
	}
}

func TestDefaultCostFallback(t *testing.T) {
	h := NewBcryptHasher(0).(*bcryptHasher)
	if h.cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, h.cost)
	}
}
