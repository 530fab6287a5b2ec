package session

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryStore_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatalf("empty session id")
	}

	userID, err := s.UserID(ctx, id)
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("got %q, want user-1", userID)
	}
}

func TestMemoryStore_CreateRequiresPrincipal(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Create(ctx, ""); !errors.Is(err, ErrNoPrincipal) {
		t.Fatalf("expected ErrNoPrincipal, got %v", err)
	}
	if _, err := s.CreateResetToken(ctx, ""); !errors.Is(err, ErrNoPrincipal) {
		t.Fatalf("expected ErrNoPrincipal, got %v", err)
	}
}

func TestMemoryStore_DestroyIdempotentSafe(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := s.Destroy(ctx, id)
	if err != nil || !ok {
		t.Fatalf("first Destroy = (%v, %v), want (true, nil)", ok, err)
	}

	if _, err := s.UserID(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("lookup after destroy: expected ErrSessionNotFound, got %v", err)
	}

	ok, err = s.Destroy(ctx, id)
	if err != nil || ok {
		t.Fatalf("second Destroy = (%v, %v), want (false, nil)", ok, err)
	}

	ok, err = s.Destroy(ctx, "")
	if err != nil || ok {
		t.Fatalf("Destroy(\"\") = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestMemoryStore_ResetTokenConsumedExactlyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tok, err := s.CreateResetToken(ctx, "user-7")
	if err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}

	userID, err := s.UserIDForResetToken(ctx, tok)
	if err != nil {
		t.Fatalf("UserIDForResetToken: %v", err)
	}
	if userID != "user-7" {
		t.Fatalf("got %q, want user-7", userID)
	}

	userID, err = s.ConsumeResetToken(ctx, tok)
	if err != nil {
		t.Fatalf("ConsumeResetToken: %v", err)
	}
	if userID != "user-7" {
		t.Fatalf("got %q, want user-7", userID)
	}

	if _, err := s.ConsumeResetToken(ctx, tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second consume: expected ErrInvalidToken, got %v", err)
	}
	if _, err := s.UserIDForResetToken(ctx, tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("lookup after consume: expected ErrInvalidToken, got %v", err)
	}
}

func TestMemoryStore_NamespacesAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sid, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	tok, err := s.CreateResetToken(ctx, "user-1")
	if err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}

	if _, err := s.UserIDForResetToken(ctx, sid); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("session id must not resolve as reset token, got %v", err)
	}
	if _, err := s.UserID(ctx, tok); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("reset token must not resolve as session id, got %v", err)
	}
}

func TestMemoryStore_CountTracksLiveSessionsOnly(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	mustCount := func(want int) {
		t.Helper()
		n, err := s.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != want {
			t.Fatalf("Count=%d want=%d", n, want)
		}
	}

	mustCount(0)

	a, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "user-2"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustCount(2)

	// Reset tokens live in their own namespace and are not counted.
	if _, err := s.CreateResetToken(ctx, "user-1"); err != nil {
		t.Fatalf("CreateResetToken: %v", err)
	}
	mustCount(2)

	if destroyed, err := s.Destroy(ctx, a); err != nil || !destroyed {
		t.Fatalf("Destroy: destroyed=%v err=%v", destroyed, err)
	}
	mustCount(1)
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	const workers = 64
	const perWorker = 25

	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	ids := make(chan string, workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := s.Create(ctx, "user-1")
				if err != nil {
					t.Errorf("Create: %v", err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, workers*perWorker)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session id issued under concurrency")
		}
		seen[id] = struct{}{}
	}

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d sessions, got %d", workers*perWorker, len(seen))
	}
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != workers*perWorker {
		t.Fatalf("store size %d, want %d (no lost updates)", n, workers*perWorker)
	}
}
