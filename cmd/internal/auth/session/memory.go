package session

import (
	"context"
	"sync"

	"gatehouse/cmd/security/token"
)

// MemoryStore holds sessions and reset tokens in process memory.
//
// One lock guards both namespaces: contention is low and a single lock keeps
// the mutation ordering trivially serializable, which is what rules out a
// destroy racing a duplicate generation against the same id.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string // session id -> principal id
	resets   map[string]string // reset token -> principal id
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]string),
		resets:   make(map[string]string),
	}
}

// Create generates a fresh session id and records it for the principal.
func (s *MemoryStore) Create(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoPrincipal
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := freshKey(s.sessions)
	if err != nil {
		return "", err
	}
	s.sessions[id] = userID
	return id, nil
}

// UserID resolves a session id to its principal id.
func (s *MemoryStore) UserID(_ context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

// Destroy removes a session, reporting whether one existed.
func (s *MemoryStore) Destroy(_ context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(s.sessions, sessionID)
	return true, nil
}

// CreateResetToken generates a fresh single-use reset token for the principal.
func (s *MemoryStore) CreateResetToken(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoPrincipal
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := freshKey(s.resets)
	if err != nil {
		return "", err
	}
	s.resets[tok] = userID
	return tok, nil
}

// UserIDForResetToken resolves a reset token without consuming it.
func (s *MemoryStore) UserIDForResetToken(_ context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrInvalidToken
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.resets[tok]
	if !ok {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// ConsumeResetToken invalidates the token and returns the bound principal id.
func (s *MemoryStore) ConsumeResetToken(_ context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.resets[tok]
	if !ok {
		return "", ErrInvalidToken
	}
	delete(s.resets, tok)
	return userID, nil
}

// Count reports the number of live sessions.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// freshKey draws opaque tokens until one misses the map. A collision is
// negligible at 256 bits of entropy, so the loop body runs once in practice.
// Must be called with the write lock held.
func freshKey(m map[string]string) (string, error) {
	for {
		k, err := token.NewOpaque(token.DefaultBytes)
		if err != nil {
			return "", err
		}
		if _, exists := m[k]; !exists {
			return k, nil
		}
	}
}
