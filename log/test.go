package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// TestingT is the subset of *testing.T the test logger needs.
type TestingT interface {
	Helper()
	Logf(format string, args ...any)
}

// NewTestLogger creates a debug-level Logger that forwards every message
// to t.Logf, so simulator diagnostics show up inline in failing test
// output and are discarded otherwise.
func NewTestLogger(t TestingT) *Logger {
	return newHandlerLogger(testHandler{t: t})
}

// testHandler adapts a TestingT to slog.Handler.
type testHandler struct {
	t     TestingT
	attrs []slog.Attr
}

func (h testHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h testHandler) Handle(_ context.Context, r slog.Record) error {
	h.t.Helper()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Level, r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	h.t.Logf("%s", b.String())
	return nil
}

func (h testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)
	return testHandler{t: h.t, attrs: combined}
}

func (h testHandler) WithGroup(string) slog.Handler {
	return h
}
