package challenge

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/repository"
)

var (
	// ErrNotFound indicates the challenge or exercise does not exist
	ErrNotFound = errors.New("challenge not found")
	// ErrNotAChallenge indicates the row is not flagged as a challenge
	ErrNotAChallenge = errors.New("article is not a challenge")
	// ErrInactive indicates the current time is outside the challenge date range
	ErrInactive = errors.New("challenge is not active")
)

// Tracker computes derived challenge progress state and records exercise
// completions.
type Tracker struct {
	articles repository.ArticleRepository
	progress repository.ProgressRepository
	identity IdentityResolver
	log      zerolog.Logger
}

// NewTracker creates a challenge progress tracker
func NewTracker(articles repository.ArticleRepository, progress repository.ProgressRepository, identity IdentityResolver, log zerolog.Logger) *Tracker {
	return &Tracker{
		articles: articles,
		progress: progress,
		identity: identity,
		log:      log.With().Str("component", "challenge").Logger(),
	}
}

// ComputeStats derives day-by-day completion percentages, the current
// streak and the overall percentage for a challenge row.
func (t *Tracker) ComputeStats(ctx context.Context, challengeID string, now time.Time) (*models.ChallengeStats, error) {
	c, err := t.loadChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	duration := c.ChallengeDuration
	start := *c.ChallengeStartDate
	end := challengeEnd(c)

	status := models.ChallengeActive
	if now.Before(start) {
		status = models.ChallengeUpcoming
	} else if now.After(end) {
		status = models.ChallengeCompleted
	}

	currentDay := dayNumber(start, now, duration)

	subs, err := t.articles.ListChildren(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	totalExercises := len(subs)

	userID := t.identity.Resolve(ctx)
	log, err := t.progress.ListByChallenge(ctx, challengeID, userID)
	if err != nil {
		return nil, err
	}

	// Distinct exercises completed per day, keyed by the stored day number
	completedByDay := make(map[int]map[string]bool)
	for _, p := range log {
		if completedByDay[p.Day] == nil {
			completedByDay[p.Day] = make(map[string]bool)
		}
		completedByDay[p.Day][p.SubArticleID] = true
	}

	daily := make([]models.DayProgress, 0, currentDay)
	for d := 1; d <= currentDay; d++ {
		completed := len(completedByDay[d])
		daily = append(daily, models.DayProgress{
			Day:        d,
			Completed:  completed,
			Percentage: percentage(completed, totalExercises),
		})
	}

	// Walk backward from today, stopping at the first empty day
	streak := 0
	for d := currentDay; d >= 1; d-- {
		if len(completedByDay[d]) == 0 {
			break
		}
		streak++
	}

	var todayIDs []string
	for id := range completedByDay[currentDay] {
		todayIDs = append(todayIDs, id)
	}

	daysRemaining := duration - currentDay
	if status == models.ChallengeUpcoming {
		daysRemaining = duration
	}
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return &models.ChallengeStats{
		Status:            status,
		CurrentDay:        currentDay,
		DaysRemaining:     daysRemaining,
		TotalExercises:    totalExercises,
		CurrentStreak:     streak,
		TotalCompleted:    len(log),
		OverallPercentage: percentage(len(log), totalExercises*duration),
		DailyProgress:     daily,
		TodayCompletedIDs: todayIDs,
	}, nil
}

// CompleteExercise records a completion for today. Outside the challenge
// date range it is rejected; a second completion of the same exercise on
// the same calendar day idempotently returns the existing record. On a
// fresh completion the exercise is temporarily unpublished so the
// presentation layer advances past it until the next daily reset.
// The boolean reports whether a new record was created.
func (t *Tracker) CompleteExercise(ctx context.Context, challengeID, subArticleID string, now time.Time) (*models.ChallengeProgress, bool, error) {
	c, err := t.loadChallenge(ctx, challengeID)
	if err != nil {
		return nil, false, err
	}

	start := *c.ChallengeStartDate
	end := challengeEnd(c)
	if now.Before(start) || now.After(end) {
		return nil, false, ErrInactive
	}

	sub, err := t.articles.GetByID(ctx, subArticleID)
	if err != nil {
		return nil, false, err
	}
	if sub == nil || sub.ParentID == nil || *sub.ParentID != challengeID {
		return nil, false, ErrNotFound
	}

	userID := t.identity.Resolve(ctx)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := t.progress.GetForUserDay(ctx, challengeID, subArticleID, userID, dayStart, dayEnd)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		// Re-apply the unpublish: a retry after a failed unpublish on the
		// first attempt must still hide the exercise for the day.
		if err := t.articles.SetTemporarilyUnpublished(ctx, subArticleID, now); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	record := &models.ChallengeProgress{
		ID:           uuid.NewString(),
		ArticleID:    challengeID,
		SubArticleID: subArticleID,
		UserID:       userID,
		CompletedAt:  now,
		Day:          dayNumber(start, now, c.ChallengeDuration),
	}
	if err := t.progress.Create(ctx, record); err != nil {
		return nil, false, err
	}

	if err := t.articles.SetTemporarilyUnpublished(ctx, subArticleID, now); err != nil {
		return nil, false, err
	}

	t.log.Info().
		Str("challenge_id", challengeID).
		Str("sub_article_id", subArticleID).
		Int("day", record.Day).
		Msg("Exercise completed")

	return record, true, nil
}

func (t *Tracker) loadChallenge(ctx context.Context, id string) (*models.Article, error) {
	c, err := t.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if !c.IsChallenge || c.ChallengeStartDate == nil || c.ChallengeDuration <= 0 {
		return nil, ErrNotAChallenge
	}
	return c, nil
}

// challengeEnd returns the stored end date, or derives it from the start
// date and duration when absent.
func challengeEnd(c *models.Article) time.Time {
	if c.ChallengeEndDate != nil {
		return *c.ChallengeEndDate
	}
	return c.ChallengeStartDate.AddDate(0, 0, c.ChallengeDuration)
}

// dayNumber computes the 1-based challenge day for an instant, clamped
// to [1, duration].
func dayNumber(start, now time.Time, duration int) int {
	day := int(math.Floor(now.Sub(start).Hours()/24)) + 1
	if day < 1 {
		day = 1
	}
	if day > duration {
		day = duration
	}
	return day
}

// percentage computes an integer percentage with half-up rounding
func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(completed)*100/float64(total) + 0.5))
}
