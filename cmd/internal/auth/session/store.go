package session

import "context"

// Store abstracts session and reset-token persistence.
//
// Contract, shared by every implementation:
//   - Ids and tokens are crypto-random opaques and are never reused after
//     destruction or consumption.
//   - Sessions and reset tokens live in separate namespaces; a session id is
//     never accepted as a reset token or vice versa, even on a string
//     collision.
//   - Mutations (Create, Destroy, CreateResetToken, ConsumeResetToken) are
//     atomic with respect to each other; lookups may run concurrently.
//   - "Already gone" is an expected outcome: Destroy reports false and
//     ConsumeResetToken reports ErrInvalidToken, never a process fault.
type Store interface {
	// Create generates a fresh session id for the principal and records the
	// association. An empty principal id yields ErrNoPrincipal.
	Create(ctx context.Context, userID string) (string, error)

	// UserID resolves a session id to its principal id.
	// Unknown or empty ids yield ErrSessionNotFound.
	UserID(ctx context.Context, sessionID string) (string, error)

	// Destroy removes a session. It reports whether a live session was
	// removed; destroying an unknown or already-destroyed id is false, nil.
	Destroy(ctx context.Context, sessionID string) (bool, error)

	// Count reports the number of live sessions. Reset tokens are not
	// counted.
	Count(ctx context.Context) (int, error)

	// CreateResetToken generates a fresh single-use reset token for the
	// principal. An empty principal id yields ErrNoPrincipal.
	CreateResetToken(ctx context.Context, userID string) (string, error)

	// UserIDForResetToken resolves a reset token without consuming it.
	// Unknown tokens yield ErrInvalidToken.
	UserIDForResetToken(ctx context.Context, tok string) (string, error)

	// ConsumeResetToken atomically invalidates the token and returns the
	// bound principal id. The caller is responsible for applying whatever
	// change the token authorized; principal storage is not owned here.
	// A second consume of the same token yields ErrInvalidToken.
	ConsumeResetToken(ctx context.Context, tok string) (string, error)
}
