package app

import (
	"time"

	"gatehouse/cmd/security/password"
	"gatehouse/cmd/security/redact"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string // "line" (redacting key=value lines) or "json"

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// AuthMode selects the active strategy: none, basic, or session.
	AuthMode string

	// ExcludedPaths is the auth exemption list, evaluated in order.
	// Immutable for the process lifetime.
	ExcludedPaths []string

	// SessionCookieName is the cookie carrying the session id.
	SessionCookieName string
	CookieSecure      bool

	// Password policy applied at registration.
	PasswordMinLength      int
	PasswordMaxLength      int
	PasswordRejectVeryWeak bool

	// RedactFields/RedactMarker/RedactSeparator drive PII scrubbing on every
	// log line.
	RedactFields    []string
	RedactMarker    string
	RedactSeparator string

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the database is configured and
	// reachable.
	ReadinessRequireDB bool
}

// defaultExcludedPaths keeps the unauthenticated surface reachable: health
// probes, metrics, and the account/session endpoints themselves.
var defaultExcludedPaths = []string{
	"/healthz*",
	"/readyz*",
	"/metrics*",
	"/users*",
	"/sessions*",
	"/reset_password*",
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("GATEHOUSE_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("GATEHOUSE_LOG_LEVEL", "info"),
		LogFormat: EnvString("GATEHOUSE_LOG_FORMAT", "line"),

		ReadHeaderTimeout: EnvDuration("GATEHOUSE_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("GATEHOUSE_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("GATEHOUSE_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("GATEHOUSE_HTTP_IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    EnvInt("GATEHOUSE_HTTP_MAX_HEADER_BYTES", 1<<20),

		AuthMode:      EnvString("GATEHOUSE_AUTH_MODE", "session"),
		ExcludedPaths: EnvList("GATEHOUSE_EXCLUDED_PATHS", defaultExcludedPaths),

		SessionCookieName: EnvString("GATEHOUSE_SESSION_COOKIE", "_gatehouse_session"),
		CookieSecure:      EnvBool("GATEHOUSE_COOKIE_SECURE", true),

		PasswordMinLength:      EnvInt("GATEHOUSE_PASSWORD_MIN_LEN", password.DefaultPolicy().MinLength),
		PasswordMaxLength:      EnvInt("GATEHOUSE_PASSWORD_MAX_LEN", password.DefaultPolicy().MaxLength),
		PasswordRejectVeryWeak: EnvBool("GATEHOUSE_PASSWORD_REJECT_VERY_WEAK", false),

		RedactFields:    EnvList("GATEHOUSE_REDACT_FIELDS", redact.PIIFields),
		RedactMarker:    EnvString("GATEHOUSE_REDACT_MARKER", redact.Replacement),
		RedactSeparator: EnvString("GATEHOUSE_REDACT_SEPARATOR", ";"),

		DatabaseURL: EnvString("GATEHOUSE_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("GATEHOUSE_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("GATEHOUSE_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("GATEHOUSE_READINESS_REQUIRE_DB", false),
	}
}
