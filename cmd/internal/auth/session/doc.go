// Package session owns the server-side session and password-reset-token
// lifecycle.
//
// A session is an opaque unguessable id bound to one principal id; a reset
// token is the same shape but lives in a separate namespace and is consumed
// exactly once. No other package reads or writes these records directly.
//
// Two Store implementations exist: MemoryStore (single guarded map pair, the
// default) and PostgresStore (survives restarts; persists token digests, never
// plain tokens).
package session
