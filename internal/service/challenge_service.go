package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
	"github.com/slide-cms-api/internal/challenge"
	"github.com/slide-cms-api/internal/models"
)

// challengeService adapts the tracker to the service surface and emits
// change notifications for fresh completions.
type challengeService struct {
	tracker     *challenge.Tracker
	broadcaster *broadcast.Broadcaster
	log         zerolog.Logger
}

func newChallengeService(tracker *challenge.Tracker, b *broadcast.Broadcaster, log zerolog.Logger) *challengeService {
	return &challengeService{
		tracker:     tracker,
		broadcaster: b,
		log:         log.With().Str("service", "challenge").Logger(),
	}
}

// Stats computes the derived progress summary for a challenge
func (s *challengeService) Stats(ctx context.Context, challengeID string, now time.Time) (*models.ChallengeStats, error) {
	return s.tracker.ComputeStats(ctx, challengeID, now)
}

// Complete records an exercise completion. A repeat completion on the
// same calendar day returns the existing record without notifying.
func (s *challengeService) Complete(ctx context.Context, challengeID, subArticleID string, now time.Time) (*models.ChallengeProgress, bool, error) {
	record, created, err := s.tracker.CompleteExercise(ctx, challengeID, subArticleID, now)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.broadcaster.NotifyArticleChange(broadcast.ActionUpdated, subArticleID)
	}
	return record, created, nil
}
