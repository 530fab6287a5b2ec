package strategy

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"unicode/utf8"

	"gatehouse/cmd/identity"
	"gatehouse/cmd/security/password"
)

// basicPrefix is the exact, case-sensitive scheme prefix: one space, no more.
const basicPrefix = "Basic "

// Basic authenticates requests carrying an RFC 7617 Authorization header.
// Every malformed input resolves to "no principal"; nothing in the chain
// raises.
type Basic struct {
	users    identity.Store
	hasher   password.Hasher
	excluded []string
}

// NewBasic constructs the basic-auth strategy. excluded is captured as
// supplied and never mutated afterwards.
func NewBasic(users identity.Store, hasher password.Hasher, excluded []string) *Basic {
	return &Basic{users: users, hasher: hasher, excluded: excluded}
}

// RequiresAuth reports whether path is outside the configured exemptions.
func (b *Basic) RequiresAuth(path string) bool {
	return RequiresAuth(path, b.excluded)
}

// HasCredential reports whether the request carries an Authorization header.
func (b *Basic) HasCredential(r *http.Request) bool {
	return r != nil && r.Header.Get("Authorization") != ""
}

// CurrentUser composes header -> token -> decode -> split -> resolve,
// short-circuiting to "no principal" at the first failure.
func (b *Basic) CurrentUser(ctx context.Context, r *http.Request) (identity.User, bool) {
	if r == nil {
		return identity.User{}, false
	}

	tok, ok := schemeToken(r.Header.Get("Authorization"))
	if !ok {
		return identity.User{}, false
	}
	decoded, ok := decodeToken(tok)
	if !ok {
		return identity.User{}, false
	}
	email, secret, ok := splitCredentials(decoded)
	if !ok {
		return identity.User{}, false
	}
	return b.resolveUser(ctx, email, secret)
}

// schemeToken returns the header remainder after the exact "Basic " prefix.
func schemeToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	return strings.CutPrefix(header, basicPrefix)
}

// decodeToken reverses standard base64. Anything that does not decode to
// valid UTF-8 text is rejected.
func decodeToken(tok string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// splitCredentials splits at the first ':' only; the secret may itself
// contain ':'. No separator means no credentials.
func splitCredentials(decoded string) (email, secret string, ok bool) {
	return strings.Cut(decoded, ":")
}

// resolveUser looks up every candidate for the email and returns the first
// whose stored hash verifies against the secret. Lookup errors, an empty
// candidate set, and verification failures all resolve to "no principal".
func (b *Basic) resolveUser(ctx context.Context, email, secret string) (identity.User, bool) {
	candidates, err := b.users.FindByEmail(ctx, email)
	if err != nil {
		return identity.User{}, false
	}
	for _, u := range candidates {
		match, err := b.hasher.Verify(u.PasswordHash, secret)
		if err != nil {
			continue
		}
		if match {
			return u, true
		}
	}
	return identity.User{}, false
}
