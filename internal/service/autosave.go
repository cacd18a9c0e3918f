package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FlushFunc saves pending changes and reports whether anything was written
type FlushFunc func(ctx context.Context) (bool, error)

// RunAutosave calls flush every interval until ctx is done, then once more
func RunAutosave(ctx context.Context, interval time.Duration, flush FlushFunc, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			autosave(context.Background(), flush, logger)
			logger.Info("Autosave job stopped")
			return
		case <-ticker.C:
			autosave(ctx, flush, logger)
		}
	}
}

func autosave(ctx context.Context, flush FlushFunc, logger *zap.Logger) {
	saved, err := flush(ctx)
	if err != nil {
		logger.Error("Failed to autosave vocabulary", zap.Error(err))
		return
	}
	if saved {
		logger.Info("Vocabulary autosaved")
	}
}
