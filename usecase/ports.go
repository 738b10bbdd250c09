package usecase

import (
	"context"

	"go.uber.org/zap"
)

// StateReloader refreshes the in-memory application state after a successful write so
// readers never observe a stale snapshot.
type StateReloader interface {
	Reload(ctx context.Context) error
}

// NotifyChanged asks reloader to refresh. The write it follows has already succeeded,
// so a failed reload is logged rather than returned.
func NotifyChanged(ctx context.Context, reloader StateReloader, logger *zap.Logger) {
	if reloader == nil {
		return
	}
	if err := reloader.Reload(ctx); err != nil && logger != nil {
		logger.Warn("state reload after write failed", zap.Error(err))
	}
}
