package identity

import (
	"context"
	"time"
)

// User is gatehouse's canonical security principal.
// IMPORTANT: PasswordHash is the only credential field; the plain password is
// never stored anywhere.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	CreatedAt time.Time
}

// CreateUserInput describes a registration request. The password must already
// be hashed by the caller; this boundary never sees plaintext secrets.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Now          time.Time
}

// Store abstracts principal persistence. The authentication core treats it as
// an external collaborator and only ever references principals by id.
//
// FindByEmail returns all candidates for an email: storage is not assumed to
// enforce email uniqueness, so callers must iterate and verify each candidate.
type Store interface {
	Create(ctx context.Context, in CreateUserInput) (User, error)
	FindByEmail(ctx context.Context, email string) ([]User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
