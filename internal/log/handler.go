package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// HomeHandler wraps an slog.Handler and shortens string values that are
// paths under the home directory.
type HomeHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the home directory prefix; empty disables rewriting.
	home string
}

// NewHomeHandler creates a HomeHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. If home is empty,
// values pass through unchanged.
func NewHomeHandler(handler slog.Handler, home string) *HomeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &HomeHandler{handler: handler, home: filepath.Clean(home)}
}

// Enabled reports whether the handler handles records at the given level.
func (h *HomeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *HomeHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *HomeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &HomeHandler{handler: h.handler.WithAttrs(rewritten), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *HomeHandler) WithGroup(name string) slog.Handler {
	return &HomeHandler{handler: h.handler.WithGroup(name), home: h.home}
}

func (h *HomeHandler) rewriteAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			rewritten[i] = h.rewriteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	case slog.KindString:
		return slog.String(a.Key, h.shorten(a.Value.String()))
	default:
		return a
	}
}

// shorten replaces a leading home directory with "~".
func (h *HomeHandler) shorten(s string) string {
	if h.home == "" || h.home == "." || h.home == string(filepath.Separator) {
		return s
	}
	if s == h.home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(s, h.home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return s
}

// level returns Debug in verbose mode and Warn otherwise.
func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// userHome returns the home directory, or "" when it cannot be determined.
func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// New creates a text logger writing to w.
// If verbose is true the level is Debug; otherwise Warn.
func New(w io.Writer, verbose bool) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewHomeHandler(handler, userHome()))
}

// NewJSON creates a logger that outputs JSON, for log aggregation.
func NewJSON(w io.Writer, verbose bool) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewHomeHandler(handler, userHome()))
}
