// Package token provides opaque token primitives for gatehouse.
//
// It is the single source of truth for session-id and reset-token generation
// and for how those tokens are digested before being written to persistent
// storage.
//
// Design goals:
//   - Tokens are unguessable: crypto/rand bytes, base64url without padding.
//   - The plain token is only ever held by the client; persistent stores keep
//     a SHA-256 hex digest so a database leak does not leak live credentials.
//   - Stable 64-char hex digest output for storage and constant-time
//     comparison.
package token
