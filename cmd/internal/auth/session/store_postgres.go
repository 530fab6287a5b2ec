package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatehouse/cmd/security/token"
)

// PostgresStore implements Store using PostgreSQL (gatehouse.sessions and
// gatehouse.reset_tokens). Only SHA-256 digests of ids and tokens are stored;
// a database leak never leaks live credentials.
//
// Single-use consumption and destroy idempotence ride on DELETE row counts,
// so concurrent callers race safely inside the database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create generates a fresh session id and inserts its digest.
func (s *PostgresStore) Create(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoPrincipal
	}

	id, err := token.NewOpaque(token.DefaultBytes)
	if err != nil {
		return "", err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO gatehouse.sessions (id_digest, user_id, created_at)
		VALUES ($1, $2, $3)
	`, token.DigestHex(id), userID, time.Now().UTC())
	if err != nil {
		return "", err
	}

	return id, nil
}

// UserID resolves a session id to its principal id.
func (s *PostgresStore) UserID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrSessionNotFound
	}

	var userID string
	err := s.pool.QueryRow(ctx, `
		SELECT user_id FROM gatehouse.sessions WHERE id_digest = $1
	`, token.DigestHex(sessionID)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}

	return userID, nil
}

// Destroy removes a session, reporting whether one existed.
func (s *PostgresStore) Destroy(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	tag, err := s.pool.Exec(ctx, `
		DELETE FROM gatehouse.sessions WHERE id_digest = $1
	`, token.DigestHex(sessionID))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// Count reports the number of live sessions across all processes sharing the
// database.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM gatehouse.sessions
	`).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CreateResetToken generates a fresh single-use reset token and inserts its
// digest.
func (s *PostgresStore) CreateResetToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrNoPrincipal
	}

	tok, err := token.NewOpaque(token.DefaultBytes)
	if err != nil {
		return "", err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO gatehouse.reset_tokens (token_digest, user_id, created_at)
		VALUES ($1, $2, $3)
	`, token.DigestHex(tok), userID, time.Now().UTC())
	if err != nil {
		return "", err
	}

	return tok, nil
}

// UserIDForResetToken resolves a reset token without consuming it.
func (s *PostgresStore) UserIDForResetToken(ctx context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrInvalidToken
	}

	var userID string
	err := s.pool.QueryRow(ctx, `
		SELECT user_id FROM gatehouse.reset_tokens WHERE token_digest = $1
	`, token.DigestHex(tok)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}

	return userID, nil
}

// ConsumeResetToken invalidates the token and returns the bound principal id.
// DELETE .. RETURNING makes the consume atomic: of two racing consumers,
// exactly one sees the row.
func (s *PostgresStore) ConsumeResetToken(ctx context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrInvalidToken
	}

	var userID string
	err := s.pool.QueryRow(ctx, `
		DELETE FROM gatehouse.reset_tokens WHERE token_digest = $1
		RETURNING user_id
	`, token.DigestHex(tok)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}

	return userID, nil
}
