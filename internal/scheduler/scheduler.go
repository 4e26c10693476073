package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/config"
	"github.com/slide-cms-api/internal/service"
)

// Scheduler runs the daily reset sweep that clears expired temporary
// unpublishes, on the configured cron schedule.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates the scheduler with the reset job registered
func New(cfg *config.ResetConfig, articles service.ArticleService, log zerolog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load reset timezone: %w", err)
	}

	schedLog := log.With().Str("component", "scheduler").Logger()
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cleared, err := articles.ResetExpired(ctx, time.Now().In(loc))
		if err != nil {
			schedLog.Error().Err(err).Msg("Daily reset sweep failed")
			return
		}
		schedLog.Info().Int64("cleared", cleared).Msg("Daily reset sweep completed")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register reset schedule %q: %w", cfg.Schedule, err)
	}

	return &Scheduler{cron: c, log: schedLog}, nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}
