package session

import "errors"

var (
	// ErrNoPrincipal is returned when a caller asks for a session or reset
	// token without a principal id.
	ErrNoPrincipal = errors.New("empty principal id")

	// ErrSessionNotFound is returned when a session id does not resolve to a
	// live session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidToken is returned when a reset token is unknown or already
	// consumed. The two cases are deliberately indistinguishable.
	ErrInvalidToken = errors.New("invalid reset token")
)
