package content

import (
	"context"
	"log/slog"
	"time"
)

// Flusher persists pending drafts
type Flusher interface {
	FlushDrafts(ctx context.Context) (int, error)
}

// AutoSaver flushes dirty drafts on a fixed interval. A clean state
// performs no writes.
type AutoSaver struct {
	flusher  Flusher
	interval time.Duration
	logger   *slog.Logger
}

// NewAutoSaver creates an auto-saver ticking every interval
func NewAutoSaver(flusher Flusher, interval time.Duration, logger *slog.Logger) *AutoSaver {
	return &AutoSaver{flusher: flusher, interval: interval, logger: logger}
}

// Run ticks until ctx is cancelled, then flushes one last time.
func (a *AutoSaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.logger.Info("auto-saver started", "interval", a.interval.String())

	for {
		select {
		case <-ticker.C:
			if _, err := a.flusher.FlushDrafts(ctx); err != nil {
				a.logger.Warn("auto-save failed, drafts kept for next tick", "error", err)
			}
		case <-ctx.Done():
			a.Flush(context.Background())
			a.logger.Info("auto-saver stopped")
			return
		}
	}
}

// Flush saves everything pending, bounded to ten seconds
func (a *AutoSaver) Flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	saved, err := a.flusher.FlushDrafts(ctx)
	if err != nil {
		a.logger.Error("final draft flush failed", "saved", saved, "error", err)
		return
	}
	if saved > 0 {
		a.logger.Info("pending drafts flushed", "saved", saved)
	}
}
