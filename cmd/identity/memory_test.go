package identity

import (
	"context"
	"testing"
)

func TestMemoryStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u, err := s.Create(ctx, CreateUserInput{Email: "  Bob@Example.COM ", PasswordHash: "$h"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "bob@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if len(u.ID) != 26 {
		t.Fatalf("expected ULID id, got %q", u.ID)
	}

	got, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.PasswordHash != "$h" {
		t.Fatalf("unexpected hash: %q", got.PasswordHash)
	}

	list, err := s.FindByEmail(ctx, "BOB@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if len(list) != 1 || list[0].ID != u.ID {
		t.Fatalf("unexpected candidates: %+v", list)
	}
}

func TestMemoryStore_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Create(ctx, CreateUserInput{Email: "a@b.com", PasswordHash: "$h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, CreateUserInput{Email: "A@B.com", PasswordHash: "$h2"})
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMemoryStore_UnknownLookups(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.FindByID(ctx, "missing"); !IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	list, err := s.FindByEmail(ctx, "nobody@x.dev")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no candidates, got %+v", list)
	}
	if err := s.UpdatePasswordHash(ctx, "missing", "$h"); !IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestMemoryStore_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u, err := s.Create(ctx, CreateUserInput{Email: "a@b.com", PasswordHash: "$old"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.UpdatePasswordHash(ctx, u.ID, "$new"); err != nil {
		t.Fatalf("UpdatePasswordHash: %v", err)
	}
	got, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.PasswordHash != "$new" {
		t.Fatalf("hash not updated: %q", got.PasswordHash)
	}
}
