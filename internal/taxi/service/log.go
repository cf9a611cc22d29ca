package service

import (
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
)

// logUnexpected logs err unless it is an outcome the caller is expected to
// handle (not found, validation).
func logUnexpected(l *slog.Logger, msg string, err error, args ...any) {
	var v *domain.ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &v) {
		return
	}
	l.Error(msg, append([]any{"error", err}, args...)...)
}
