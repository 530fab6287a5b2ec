package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gatehouse/cmd/identity"
	"gatehouse/cmd/internal/auth/session"
	"gatehouse/cmd/internal/auth/strategy"
	"gatehouse/cmd/internal/observability"
	"gatehouse/cmd/security/password"
)

// Handler wires the account/session HTTP endpoints to the session strategy
// and the principal store.
type Handler struct {
	log    *slog.Logger
	cfg    Config
	users  identity.Store
	auth   *strategy.Session
	hasher password.Hasher
}

// NewHandler constructs the auth Handler.
func NewHandler(log *slog.Logger, cfg Config, users identity.Store, auth *strategy.Session, hasher password.Hasher) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if users == nil {
		return nil, errors.New("authapi: nil user store")
	}
	if auth == nil {
		return nil, errors.New("authapi: nil session strategy")
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.PasswordPolicy == (password.Policy{}) {
		cfg.PasswordPolicy = password.DefaultPolicy()
	}

	return &Handler{
		log:    log,
		cfg:    cfg,
		users:  users,
		auth:   auth,
		hasher: hasher,
	}, nil
}

// Register wires the auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/users", h.handleRegister)
	mux.HandleFunc("/sessions", h.handleSessions)
	mux.HandleFunc("/profile", h.handleProfile)
	mux.HandleFunc("/reset_password", h.handleResetPassword)
}

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "email and password are required")
		return
	}
	if err := h.cfg.PasswordPolicy.Validate(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPassword, "password does not meet policy")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPassword, "password rejected")
		return
	}

	u, err := h.users.Create(r.Context(), identity.CreateUserInput{
		Email:        req.Email,
		PasswordHash: hash,
		Now:          time.Now().UTC(),
	})
	switch {
	case identity.IsConflict(err):
		writeError(w, http.StatusBadRequest, codeEmailRegistered, "email already registered")
		return
	case identity.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "email and password are required")
		return
	case err != nil:
		h.log.Error("auth.register.fail", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "registration failed")
		return
	}

	observability.Registrations.Inc()
	h.log.Info("auth.register", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, registerResponse{
		User:    toUserResponse(u),
		Message: "user created",
	})
}

// handleSessions serves login (POST) and logout (DELETE) on one route, the
// way the session resource reads naturally.
func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleLogin(w, r)
	case http.MethodDelete:
		h.handleLogout(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "email missing")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "password missing")
		return
	}

	sid, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, strategy.ErrInvalidCredentials) {
			observability.Logins.WithLabelValues("rejected").Inc()
			writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "wrong email or password")
			return
		}
		h.log.Error("auth.login.fail", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "login failed")
		return
	}

	h.setSessionCookie(w, sid)
	observability.Logins.WithLabelValues("ok").Inc()
	h.syncSessionGauge(r)
	h.log.Info("auth.login", "email", req.Email)
	writeJSON(w, http.StatusOK, loginResponse{Email: identity.NormalizeEmail(req.Email), Message: "logged in"})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Logout(r.Context(), r) {
		writeError(w, http.StatusNotFound, codeNoSession, "no active session")
		return
	}

	h.clearSessionCookie(w)
	h.syncSessionGauge(r)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	u, ok := h.auth.CurrentUser(r.Context(), r)
	if !ok {
		writeError(w, http.StatusForbidden, codeForbidden, "no valid session")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// handleResetPassword serves token issuance (POST) and consumption (PUT).
// Both failure modes answer 403: a reset endpoint must not help enumerate
// accounts or probe tokens.
func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleResetIssue(w, r)
	case http.MethodPut:
		h.handleResetConsume(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleResetIssue(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !h.readJSON(w, r, &req) {
		return
	}

	tok, err := h.auth.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, strategy.ErrUnknownPrincipal) {
			writeError(w, http.StatusForbidden, codeForbidden, "email not registered")
			return
		}
		h.log.Error("auth.reset.issue.fail", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "reset failed")
		return
	}

	observability.ResetTokensIssued.Inc()
	writeJSON(w, http.StatusOK, resetResponse{
		Email:      identity.NormalizeEmail(req.Email),
		ResetToken: tok,
	})
}

func (h *Handler) handleResetConsume(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if !h.readJSON(w, r, &req) {
		return
	}

	err := h.auth.UpdatePassword(r.Context(), req.ResetToken, req.NewPassword)
	switch {
	case errors.Is(err, session.ErrInvalidToken):
		writeError(w, http.StatusForbidden, codeInvalidToken, "reset token invalid")
		return
	case errors.Is(err, password.ErrPasswordEmpty), errors.Is(err, password.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, codeInvalidPassword, "password rejected")
		return
	case err != nil:
		h.log.Error("auth.reset.consume.fail", "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "reset failed")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "password updated"})
}

// syncSessionGauge sets the active-session gauge from the store's live
// count so the metric tracks reality instead of increment/decrement drift.
// A count failure leaves the gauge stale; the next sync corrects it.
func (h *Handler) syncSessionGauge(r *http.Request) {
	n, err := h.auth.SessionCount(r.Context())
	if err != nil {
		return
	}
	observability.ActiveSessions.Set(float64(n))
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
