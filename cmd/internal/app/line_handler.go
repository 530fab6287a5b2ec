package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"gatehouse/cmd/security/redact"
)

// lineHandler renders records as "key=value<sep>" lines and scrubs the
// assembled line through the redactor before it touches the writer. The
// scrub happens on the rendered text so PII is masked no matter which
// attribute carried it.
type lineHandler struct {
	w        io.Writer
	opts     slog.HandlerOptions
	redactor *redact.Redactor
	attrs    []slog.Attr
	groups   []string
	mu       *sync.Mutex
}

func newLineHandler(w io.Writer, opts *slog.HandlerOptions, r *redact.Redactor) slog.Handler {
	h := &lineHandler{
		w:        w,
		redactor: r,
		mu:       &sync.Mutex{},
	}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	sep := h.redactor.Separator()

	var b strings.Builder

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString("ts=")
	b.WriteString(ts.Format(time.RFC3339))
	b.WriteString(sep)
	b.WriteString(" lvl=")
	b.WriteString(levelTag(r.Level))
	b.WriteString(sep)
	b.WriteString(" msg=")
	b.WriteString(r.Message)
	b.WriteString(sep)

	for _, a := range h.attrs {
		h.appendAttr(&b, a, "", sep)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, a, "", sep)
		return true
	})

	line := h.redactor.Apply(b.String()) + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &cp
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if strings.TrimSpace(name) == "" {
		return h
	}
	cp := *h
	cp.groups = append(append([]string{}, h.groups...), name)
	return &cp
}

func (h *lineHandler) appendAttr(b *strings.Builder, a slog.Attr, parent, sep string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := strings.TrimSpace(a.Key)
	if key == "" {
		return
	}

	fullKey := key
	if parent != "" {
		fullKey = parent + "." + key
	}
	if parent == "" && len(h.groups) > 0 {
		fullKey = strings.Join(h.groups, ".") + "." + fullKey
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, ga, fullKey, sep)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(fullKey)
	b.WriteByte('=')
	b.WriteString(valueToString(a.Value))
	b.WriteString(sep)
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func valueToString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return fmt.Sprint(v.Any())
	}
}
