package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/weathermaster/forecast-proxy/internal/observability"
)

// Sweeper runs Store.SweepExpired on a schedule so expired entries are
// reclaimed even for keys that are never read again. Runs are skipped while a
// previous sweep is still in progress.
type Sweeper struct {
	store  Store
	logger *zap.Logger
	cron   *cron.Cron
}

// NewSweeper creates a Sweeper for the given store.
func NewSweeper(store Store, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:  store,
		logger: logger,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start sweeps once immediately, then on every interval tick until Stop.
func (s *Sweeper) Start(interval time.Duration) error {
	s.sweep()
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.sweep); err != nil {
		return fmt.Errorf("schedule cache sweep: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	removed, err := s.store.SweepExpired(ctx)
	if err != nil {
		observability.CacheErrorsTotal.WithLabelValues("sweep").Inc()
		if s.logger != nil {
			s.logger.Warn("cache sweep failed", zap.Error(err))
		}
		return
	}
	observability.CacheSweepRemovedTotal.Add(float64(removed))
	if s.logger != nil && removed > 0 {
		s.logger.Debug("cache sweep", zap.Int("removed", removed))
	}
}
