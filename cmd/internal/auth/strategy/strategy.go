package strategy

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"gatehouse/cmd/identity"
	"gatehouse/cmd/internal/auth/session"
	"gatehouse/cmd/security/password"
)

// Strategy is a per-scheme authentication policy. Each request is evaluated
// independently: exclusion check first, then principal resolution.
type Strategy interface {
	// RequiresAuth reports whether path must be authenticated.
	RequiresAuth(path string) bool

	// HasCredential reports whether the request carries this scheme's
	// credential at all (header or cookie), without validating it. The
	// enforcement layer uses it to split "unauthenticated" from
	// "unauthorized".
	HasCredential(r *http.Request) bool

	// CurrentUser resolves the request's principal. ok is false when the
	// request carries no resolvable credential; all failure paths fail
	// closed to "unauthenticated" and never raise.
	CurrentUser(ctx context.Context, r *http.Request) (identity.User, bool)
}

// Mode names an authentication scheme in configuration.
type Mode string

const (
	ModeNone    Mode = "none"
	ModeBasic   Mode = "basic"
	ModeSession Mode = "session"
)

// ParseMode canonicalizes a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNone, "":
		return ModeNone, nil
	case ModeBasic:
		return ModeBasic, nil
	case ModeSession:
		return ModeSession, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Deps carries the collaborators a strategy may need. Unused fields may stay
// zero for modes that do not touch them.
type Deps struct {
	Users    identity.Store
	Sessions session.Store
	Hasher   password.Hasher

	// Excluded is the immutable exemption list, in configured order.
	Excluded []string

	// CookieName is the session-id cookie read by ModeSession.
	CookieName string
}

// FromMode constructs the active strategy once, at wiring time.
func FromMode(mode Mode, d Deps) (Strategy, error) {
	switch mode {
	case ModeNone:
		return NoAuth{}, nil
	case ModeBasic:
		if d.Users == nil {
			return nil, fmt.Errorf("basic auth: nil user store")
		}
		return NewBasic(d.Users, d.Hasher, d.Excluded), nil
	case ModeSession:
		if d.Users == nil {
			return nil, fmt.Errorf("session auth: nil user store")
		}
		if d.Sessions == nil {
			return nil, fmt.Errorf("session auth: nil session store")
		}
		return NewSession(d.Sessions, d.Users, d.Hasher, d.CookieName, d.Excluded), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// NoAuth is the explicit opt-out strategy: no path needs authentication and
// no request ever carries a principal.
type NoAuth struct{}

func (NoAuth) RequiresAuth(string) bool { return false }

func (NoAuth) HasCredential(*http.Request) bool { return false }

func (NoAuth) CurrentUser(context.Context, *http.Request) (identity.User, bool) {
	return identity.User{}, false
}
