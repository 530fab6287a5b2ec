package app

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"gatehouse/cmd/internal/auth/strategy"
	"gatehouse/cmd/internal/observability"
)

// WithRequestLogging wraps an http.Handler and logs one line per request.
func WithRequestLogging(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(lrw, r)

		log.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

// WithAuthentication gates every request behind the active strategy.
//
// Exempt paths pass through untouched. For guarded paths the request is
// rejected with 401 when it carries no credential at all, and with 403
// when a credential is present but resolves to no principal. Resolved
// principals are attached to the request context for downstream handlers.
func WithAuthentication(next http.Handler, s strategy.Strategy, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.RequiresAuth(r.URL.Path) {
			observability.AuthDecisions.WithLabelValues("exempt").Inc()
			next.ServeHTTP(w, r)
			return
		}

		if !s.HasCredential(r) {
			observability.AuthDecisions.WithLabelValues("unauthorized").Inc()
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, ok := s.CurrentUser(r.Context(), r)
		if !ok {
			observability.AuthDecisions.WithLabelValues("forbidden").Inc()
			log.Info("auth.forbidden", "path", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		observability.AuthDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r.WithContext(strategy.WithUser(r.Context(), user)))
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggingResponseWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

func (w *loggingResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *loggingResponseWriter) ReadFrom(r io.Reader) (int64, error) {
	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		n, err := rf.ReadFrom(r)
		w.bytes += n
		return n, err
	}
	n, err := io.Copy(w.ResponseWriter, r)
	w.bytes += n
	return n, err
}

func (w *loggingResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
