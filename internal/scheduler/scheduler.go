// Package scheduler owns the periodic price-fluctuation job. The job shares
// the prices upsert path with manual updates and invalidates every cached
// valuation after each run.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"wealthwise-backend/internal/application/prices"
	"wealthwise-backend/internal/cache"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	Prices   *prices.Service
	Cache    *cache.Service
	Interval time.Duration

	cron *cron.Cron
}

// Start registers the price-update job and begins the cron loop.
func (s *Scheduler) Start() error {
	s.cron = cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %s", s.Interval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.RunPriceUpdate(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Dur("interval", s.Interval).Msg("Background scheduler started")
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunPriceUpdate executes one fluctuation pass. Failures are logged, never
// fatal; the manual admin trigger runs the same path.
func (s *Scheduler) RunPriceUpdate(ctx context.Context) {
	updated, err := s.Prices.FluctuateAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Price update job failed")
		return
	}
	s.Cache.Invalidate(ctx, "portfolio:*")
	log.Info().Int("symbols", updated).Msg("Updated stock prices")
}
