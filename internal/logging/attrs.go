package logging

import (
	"context"
	"log/slog"

	"pacerename/internal/services"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Group(key string, attrs ...Attr) Attr {
	return slog.Group(key, Args(attrs...)...)
}

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attributes into the variadic form slog.Logger methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component name. A nil logger discards.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// Problem describes a failure logged by WarnWithContext or ErrorWithContext.
// Err also sets the category field; empty Hint and Impact get defaults.
type Problem struct {
	Event  string
	Err    error
	Hint   string
	Impact string
}

func (p Problem) attrs() []Attr {
	out := []Attr{String(FieldEventType, p.Event)}
	if p.Err != nil {
		out = append(out, String(FieldCategory, services.Category(p.Err)), Error(p.Err))
	}
	hint := p.Hint
	if hint == "" {
		hint = "rerun with --log-level debug for details"
	}
	impact := p.Impact
	if impact == "" {
		impact = "run continues"
	}
	return append(out, String(FieldErrorHint, hint), String(FieldImpact, impact))
}

// WarnWithContext logs a recoverable problem.
func WarnWithContext(logger *slog.Logger, msg string, p Problem, attrs ...Attr) {
	if logger == nil {
		return
	}
	logger.Warn(msg, Args(append(attrs, p.attrs()...)...)...)
}

// ErrorWithContext logs a problem that ended the run.
func ErrorWithContext(logger *slog.Logger, msg string, p Problem, attrs ...Attr) {
	if logger == nil {
		return
	}
	logger.Error(msg, Args(append(attrs, p.attrs()...)...)...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
