package session

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration tests are enabled when GATEHOUSE_DATABASE_URL is set.
// In non-CI runs, an unset URL skips these tests to keep local runs fast.
//
// Schema expected (managed outside this repo):
//
//	CREATE SCHEMA IF NOT EXISTS gatehouse;
//	CREATE TABLE gatehouse.sessions (
//	    id_digest  text PRIMARY KEY,
//	    user_id    text NOT NULL,
//	    created_at timestamptz NOT NULL
//	);
//	CREATE TABLE gatehouse.reset_tokens (
//	    token_digest text PRIMARY KEY,
//	    user_id      text NOT NULL,
//	    created_at   timestamptz NOT NULL
//	);
func mustIntegrationPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("GATEHOUSE_DATABASE_URL")
	if dbURL == "" {
		t.Skip("GATEHOUSE_DATABASE_URL is not set; skipping Postgres integration test")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStore_SessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPostgresStore(mustIntegrationPool(ctx, t))

	id, err := store.Create(ctx, "it-user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _, _ = store.Destroy(ctx, id) })

	userID, err := store.UserID(ctx, id)
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if userID != "it-user-1" {
		t.Fatalf("got %q, want it-user-1", userID)
	}

	ok, err := store.Destroy(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Destroy = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = store.Destroy(ctx, id)
	if err != nil || ok {
		t.Fatalf("second Destroy = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestPostgresStore_ResetTokenConsumeOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPostgresStore(mustIntegrationPool(ctx, t))

	tok, err := store.CreateResetToken(ctx, "it-user-2")
	if err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}

	userID, err := store.ConsumeResetToken(ctx, tok)
	if err != nil {
		t.Fatalf("ConsumeResetToken: %v", err)
	}
	if userID != "it-user-2" {
		t.Fatalf("got %q, want it-user-2", userID)
	}

	if _, err := store.ConsumeResetToken(ctx, tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second consume: expected ErrInvalidToken, got %v", err)
	}
}
