// Package sweeper retires expired links on a fixed interval, independent of
// request traffic.
package sweeper

import (
	"context"
	"time"

	"github.com/serroba/shortlinks/internal/shortlink"
	"go.uber.org/zap"
)

// Sweeper periodically bulk-deactivates expired links. It is stateless
// between runs and idempotent; a failed run is logged and never prevents
// subsequent runs.
type Sweeper struct {
	links    shortlink.LinkRepository
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a sweeper that fires every interval.
func New(links shortlink.LinkRepository, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		links:    links,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// WithClock overrides the sweeper clock. Used by tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now

	return s
}

// Start launches the recurring sweep loop. The loop stops when ctx is
// cancelled or Shutdown is called; an in-flight run is never cancelled
// externally, it completes or fails on its own.
func (s *Sweeper) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	go s.run(ctx)

	return nil
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single bulk deactivation pass. Errors are logged and
// swallowed so one failed cycle cannot take the recurring task down.
func (s *Sweeper) Sweep(ctx context.Context) {
	count, err := s.links.BulkDeactivate(context.WithoutCancel(ctx), s.now())
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))

		return
	}

	if count > 0 {
		s.logger.Info("expired links deactivated", zap.Int64("count", count))
	}
}

// Shutdown stops the sweep loop and waits for the current cycle to finish.
// A no-op when the loop was never started.
func (s *Sweeper) Shutdown() error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()
	<-s.done

	return nil
}
