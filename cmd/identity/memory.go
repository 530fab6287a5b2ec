package identity

import (
	"context"
	"sync"
	"time"

	"gatehouse/cmd/identity/ids"
)

// MemoryStore is an in-process Store. It is the default when no database is
// configured and the fixture store for the test suite.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string][]string // normalized email -> ids, insertion order
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]User),
		byEmail: make(map[string][]string),
	}
}

// Create registers a new principal. A duplicate normalized email yields a
// ConflictError, mirroring unique-index behavior in a real store.
func (s *MemoryStore) Create(_ context.Context, in CreateUserInput) (User, error) {
	const op = "identity.Create"

	email := NormalizeEmail(in.Email)
	if email == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "email required"}
	}
	if in.PasswordHash == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "password hash required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	id, err := ids.NewULID(now)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           id,
		Email:        email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.byEmail[email]) > 0 {
		return User{}, ConflictError{Op: op, Field: "email"}
	}

	s.byID[id] = u
	s.byEmail[email] = append(s.byEmail[email], id)
	return u, nil
}

// FindByEmail returns every principal registered under the normalized email,
// in insertion order. An unknown email is an empty slice, not an error.
func (s *MemoryStore) FindByEmail(_ context.Context, email string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idList := s.byEmail[NormalizeEmail(email)]
	out := make([]User, 0, len(idList))
	for _, id := range idList {
		if u, ok := s.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// FindByID loads a principal by id.
func (s *MemoryStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, OpError{Op: "identity.FindByID", Kind: ErrNotFound}
	}
	return u, nil
}

// UpdatePasswordHash replaces the stored credential hash for one principal.
func (s *MemoryStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	const op = "identity.UpdatePasswordHash"

	if hash == "" {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "password hash required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return OpError{Op: op, Kind: ErrNotFound}
	}
	u.PasswordHash = hash
	s.byID[id] = u
	return nil
}
