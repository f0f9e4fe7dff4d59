package logger

import "wallet_client/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level logging
// functions, so services that expect a port.Logger get the global slog
// pipeline.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger backed by the global slog logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, args...)
}
