package strategy

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"gatehouse/cmd/identity"
	"gatehouse/cmd/security/password"
)

// testHasher keeps the KDF cheap so the suite stays fast.
func testHasher() password.Hasher {
	return password.New(password.Params{
		MemoryKiB:   8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

// seedUser registers email/secret in a fresh store and returns both.
func seedUser(t *testing.T, users *identity.MemoryStore, h password.Hasher, email, secret string) identity.User {
	t.Helper()

	hash, err := h.Hash(secret)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	u, err := users.Create(context.Background(), identity.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func basicHeader(email, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+secret))
}

func requestWithHeader(t *testing.T, value string) *http.Request {
	t.Helper()

	r, err := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if value != "" {
		r.Header.Set("Authorization", value)
	}
	return r
}
