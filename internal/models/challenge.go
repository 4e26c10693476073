package models

import (
	"time"
)

// ChallengeStatus is the derived three-state classification of a challenge
type ChallengeStatus string

const (
	ChallengeUpcoming  ChallengeStatus = "upcoming"
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
)

// ChallengeProgress is an append-only completion record: one row per
// (user, exercise, day). Rows are created by the completion flow and
// never updated or deleted.
type ChallengeProgress struct {
	ID           string    `json:"id" db:"id"`
	ArticleID    string    `json:"article_id" db:"article_id"`
	SubArticleID string    `json:"sub_article_id" db:"sub_article_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
	Day          int       `json:"day" db:"day"`
}

// DayProgress is the completion percentage for a single challenge day
type DayProgress struct {
	Day        int `json:"day"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// ChallengeStats is the derived progress summary for a challenge row
type ChallengeStats struct {
	Status            ChallengeStatus `json:"status"`
	CurrentDay        int             `json:"current_day"`
	DaysRemaining     int             `json:"days_remaining"`
	TotalExercises    int             `json:"total_exercises"`
	CurrentStreak     int             `json:"current_streak"`
	TotalCompleted    int             `json:"total_completed"`
	OverallPercentage int             `json:"overall_percentage"`
	DailyProgress     []DayProgress   `json:"daily_progress"`
	TodayCompletedIDs []string        `json:"today_completed_ids"`
}
