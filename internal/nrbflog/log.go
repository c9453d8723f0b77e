// Package nrbflog defines the minimal diagnostic sink that the decoder
// and the nrbf Document carry, so application front ends can route
// warnings to structured logging without the core packages depending
// on log/slog directly. The encoder takes no sink.
package nrbflog

import "log/slog"

// Sink receives diagnostic messages; at present the only messages are
// the dangling-reference warnings from nrbf Document.Traverse.
// Implementations must be safe to call with a nil or empty args slice.
type Sink interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopSink struct{}

func (noopSink) Debug(msg string, args ...any) {}
func (noopSink) Warn(msg string, args ...any)  {}

// NoOp returns a Sink that discards everything. It is the default for
// every constructor in this module that accepts a Sink option.
func NoOp() Sink { return noopSink{} }

// Slog adapts a *slog.Logger to Sink.
type Slog struct {
	Logger *slog.Logger
}

// NewSlog wraps logger as a Sink. A nil logger falls back to
// slog.Default().
func NewSlog(logger *slog.Logger) Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return Slog{Logger: logger}
}

func (s Slog) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }
func (s Slog) Warn(msg string, args ...any)  { s.Logger.Warn(msg, args...) }
