// Package app wires the gatehouse runtime: config, redacting logs, the
// authentication strategies, and the HTTP surface around them.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gatehouse/cmd/identity"
	authapi "gatehouse/cmd/internal/auth/api"
	"gatehouse/cmd/internal/auth/session"
	"gatehouse/cmd/internal/auth/strategy"
	"gatehouse/cmd/security/password"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App is the gatehouse runtime: it owns the HTTP server wiring and the
// stores behind the active authentication strategy.
type App struct {
	cfg Config
	log Logger

	users    identity.Store
	sessions session.Store

	dbPool    *pgxpool.Pool
	dbEnabled bool

	strategy strategy.Strategy
	auth     *authapi.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg)
	}

	mode, err := strategy.ParseMode(cfg.AuthMode)
	if err != nil {
		return nil, err
	}

	sessions, dbPool, dbEnabled, err := newSessionStore(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	users := identity.NewMemoryStore()
	hasher := password.New(password.DefaultParams())

	strat, err := strategy.FromMode(mode, strategy.Deps{
		Users:      users,
		Sessions:   sessions,
		Hasher:     hasher,
		Excluded:   cfg.ExcludedPaths,
		CookieName: cfg.SessionCookieName,
	})
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}

	// The account endpoints only exist in session mode; none and basic
	// carry no login surface.
	var authHandler *authapi.Handler
	if sess, ok := strat.(*strategy.Session); ok {
		acfg := authapi.DefaultConfig()
		acfg.CookieSecure = cfg.CookieSecure
		acfg.PasswordPolicy = password.Policy{
			MinLength:      cfg.PasswordMinLength,
			MaxLength:      cfg.PasswordMaxLength,
			RejectVeryWeak: cfg.PasswordRejectVeryWeak,
		}
		authHandler, err = authapi.NewHandler(log, acfg, users, sess, hasher)
		if err != nil {
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, err
		}
	}

	return &App{
		cfg:       cfg,
		log:       log,
		users:     users,
		sessions:  sessions,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		strategy:  strat,
		auth:      authHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.auth)

	handler := WithAuthentication(mux, a.strategy, a.log)
	handler = WithRequestLogging(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "auth_mode", a.cfg.AuthMode, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newSessionStore decides between Postgres-backed session persistence and
// the in-memory dev store.
func newSessionStore(ctx context.Context, cfg Config, log Logger) (session.Store, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_sessions")
		return session.NewMemoryStore(), nil, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, err
	}

	log.Info("db.enabled.postgres_sessions")
	return session.NewPostgresStore(pool), pool, true, nil
}
