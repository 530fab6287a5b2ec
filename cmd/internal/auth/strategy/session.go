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

// DefaultCookieName is the session-id cookie used when configuration does not
// override it.
const DefaultCookieName = "_gatehouse_session"

// Session authenticates requests by a server-side session cookie and owns the
// login/logout and password-reset flows around the session store.
type Session struct {
	store    session.Store
	users    identity.Store
	hasher   password.Hasher
	cookie   string
	excluded []string
}

// NewSession constructs the session strategy. An empty cookieName falls back
// to DefaultCookieName; excluded is captured as supplied and never mutated.
func NewSession(store session.Store, users identity.Store, hasher password.Hasher, cookieName string, excluded []string) *Session {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Session{
		store:    store,
		users:    users,
		hasher:   hasher,
		cookie:   cookieName,
		excluded: excluded,
	}
}

// CookieName returns the configured session cookie name.
func (s *Session) CookieName() string { return s.cookie }

// RequiresAuth reports whether path is outside the configured exemptions.
func (s *Session) RequiresAuth(path string) bool {
	return RequiresAuth(path, s.excluded)
}

// HasCredential reports whether the request carries a session cookie.
func (s *Session) HasCredential(r *http.Request) bool {
	_, ok := s.sessionIDFromRequest(r)
	return ok
}

// CurrentUser resolves cookie -> session store -> principal store,
// short-circuiting to "no principal" at the first failure.
func (s *Session) CurrentUser(ctx context.Context, r *http.Request) (identity.User, bool) {
	sid, ok := s.sessionIDFromRequest(r)
	if !ok {
		return identity.User{}, false
	}
	userID, err := s.store.UserID(ctx, sid)
	if err != nil {
		return identity.User{}, false
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return identity.User{}, false
	}
	return u, true
}

// Login verifies the email/secret pair against the principal store and opens
// a new session. No verified candidate yields ErrInvalidCredentials; unknown
// email and wrong password are indistinguishable to the caller.
func (s *Session) Login(ctx context.Context, email, secret string) (string, error) {
	candidates, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	for _, u := range candidates {
		match, err := s.hasher.Verify(u.PasswordHash, secret)
		if err != nil || !match {
			continue
		}
		sid, err := s.store.Create(ctx, u.ID)
		if err != nil {
			return "", fmt.Errorf("login: %w", err)
		}
		return sid, nil
	}
	return "", ErrInvalidCredentials
}

// Logout destroys the request's session. It reports false when the request
// carries no cookie or the session is already gone; "already logged out" is
// not a fault.
func (s *Session) Logout(ctx context.Context, r *http.Request) bool {
	sid, ok := s.sessionIDFromRequest(r)
	if !ok {
		return false
	}
	destroyed, err := s.store.Destroy(ctx, sid)
	if err != nil {
		return false
	}
	return destroyed
}

// SessionCount reports the number of live sessions in the backing store.
func (s *Session) SessionCount(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// RequestPasswordReset issues a single-use reset token for the email's
// principal. Issuance is independent of session state; it is gated only on a
// known email.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	candidates, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("password reset: %w", err)
	}
	if len(candidates) == 0 {
		return "", ErrUnknownPrincipal
	}

	tok, err := s.store.CreateResetToken(ctx, candidates[0].ID)
	if err != nil {
		return "", fmt.Errorf("password reset: %w", err)
	}
	return tok, nil
}

// UpdatePassword hashes the new secret, consumes the reset token, and applies
// the hash to the token's principal. The hash is computed before the consume
// so a rejected secret never burns the token. An unknown or already-consumed
// token surfaces as session.ErrInvalidToken.
func (s *Session) UpdatePassword(ctx context.Context, tok, newSecret string) error {
	hash, err := s.hasher.Hash(newSecret)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	userID, err := s.store.ConsumeResetToken(ctx, tok)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *Session) sessionIDFromRequest(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	c, err := r.Cookie(s.cookie)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	return v, true
}
