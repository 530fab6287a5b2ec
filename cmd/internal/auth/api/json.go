package authapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Error codes returned in the response envelope. Clients branch on the code;
// the message is advisory text only.
const (
	codeInvalidJSON        = "invalid_json"
	codeInvalidRequest     = "invalid_request"
	codeInvalidPassword    = "invalid_password"
	codeInvalidCredentials = "invalid_credentials"
	codeEmailRegistered    = "email_registered"
	codeNoSession          = "no_session"
	codeForbidden          = "forbidden"
	codeInvalidToken       = "invalid_token"
	codePayloadTooLarge    = "payload_too_large"
	codeInternal           = "internal"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: msg}})
}

// readJSON decodes the request body into dst under the handler's body cap and
// answers the error response itself when the body is unusable: 413 for a body
// over the cap, 400 for everything else (malformed JSON, unknown fields,
// trailing data). It reports whether dst was populated.
func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "invalid request body")
		return false
	}
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "invalid request body")
		return false
	}

	// One JSON value per request; trailing data is rejected.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, "invalid request body")
		return false
	}
	return true
}
