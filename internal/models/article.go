package models

import (
	"time"
)

// PublishDaysAll is the sentinel meaning "no weekday restriction".
const PublishDaysAll = "all"

// Challenge durations allowed on a challenge row
var ValidChallengeDurations = map[int]bool{
	30: true,
	60: true,
	90: true,
}

// Article represents a slide in the system. An article without a parent
// is a "main" article (a row); one with a parent is a sub-article
// (horizontal slide within that row). Hierarchy depth is two: sub-articles
// never have sub-articles of their own.
type Article struct {
	ID       string  `json:"id" db:"id"`
	ParentID *string `json:"parent_id,omitempty" db:"parent_id"`

	Title         string  `json:"title" db:"title"`
	Subtitle      *string `json:"subtitle,omitempty" db:"subtitle"`
	Content       string  `json:"content" db:"content"`
	AudioURL      *string `json:"audio_url,omitempty" db:"audio_url"`
	MediaID       *string `json:"media_id,omitempty" db:"media_id"`
	TextAlign     string  `json:"text_align" db:"text_align"`
	VerticalAlign string  `json:"vertical_align" db:"vertical_align"`

	// OrderPosition is unique within the sibling scope (same parent_id).
	// Fractional values appear transiently after midpoint insertion.
	OrderPosition float64 `json:"order_position" db:"order_position"`

	Published              bool       `json:"published" db:"published"`
	TemporarilyUnpublished bool       `json:"temporarily_unpublished" db:"temporarily_unpublished"`
	UnpublishedDate        *time.Time `json:"unpublished_date,omitempty" db:"unpublished_date"`
	PublishTimeStart       *string    `json:"publish_time_start,omitempty" db:"publish_time_start"`
	PublishTimeEnd         *string    `json:"publish_time_end,omitempty" db:"publish_time_end"`
	PublishDays            *string    `json:"publish_days,omitempty" db:"publish_days"`

	// Row-level overrides, meaningful on main articles only; inherited
	// field-by-field by their sub-articles for display purposes.
	RowPublishTimeStart *string `json:"row_publish_time_start,omitempty" db:"row_publish_time_start"`
	RowPublishTimeEnd   *string `json:"row_publish_time_end,omitempty" db:"row_publish_time_end"`
	RowPublishDays      *string `json:"row_publish_days,omitempty" db:"row_publish_days"`
	RowStyleRaw         *string `json:"row_style,omitempty" db:"row_style"`

	IsProject bool `json:"is_project" db:"is_project"`

	IsChallenge        bool       `json:"is_challenge" db:"is_challenge"`
	ChallengeDuration  int        `json:"challenge_duration,omitempty" db:"challenge_duration"`
	ChallengeStartDate *time.Time `json:"challenge_start_date,omitempty" db:"challenge_start_date"`
	ChallengeEndDate   *time.Time `json:"challenge_end_date,omitempty" db:"challenge_end_date"`

	IsFavorite bool `json:"is_favorite" db:"is_favorite"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsMain reports whether the article is a top-level row.
func (a *Article) IsMain() bool {
	return a.ParentID == nil
}

// Row is a main article bundled with its sub-articles, as served to the
// presentation layer.
type Row struct {
	Article     *Article   `json:"article"`
	SubArticles []*Article `json:"sub_articles"`
	Style       *RowStyle  `json:"style,omitempty"`
}

// ArticleInput is the admin write payload for creating or updating an
// article. Time fields are validated at this boundary; malformed values
// are rejected rather than stored.
type ArticleInput struct {
	ParentID            *string    `json:"parent_id"`
	Title               string     `json:"title" validate:"required"`
	Subtitle            *string    `json:"subtitle"`
	Content             string     `json:"content"`
	AudioURL            *string    `json:"audio_url"`
	MediaID             *string    `json:"media_id"`
	TextAlign           string     `json:"text_align" validate:"omitempty,oneof=left center right"`
	VerticalAlign       string     `json:"vertical_align" validate:"omitempty,oneof=top center bottom"`
	Published           *bool      `json:"published"`
	PublishTimeStart    *string    `json:"publish_time_start" validate:"omitempty,hhmm"`
	PublishTimeEnd      *string    `json:"publish_time_end" validate:"omitempty,hhmm"`
	PublishDays         *string    `json:"publish_days" validate:"omitempty,weekdays"`
	RowPublishTimeStart *string    `json:"row_publish_time_start" validate:"omitempty,hhmm"`
	RowPublishTimeEnd   *string    `json:"row_publish_time_end" validate:"omitempty,hhmm"`
	RowPublishDays      *string    `json:"row_publish_days" validate:"omitempty,weekdays"`
	RowStyle            *string    `json:"row_style"`
	IsProject           *bool      `json:"is_project"`
	IsChallenge         *bool      `json:"is_challenge"`
	ChallengeDuration   *int       `json:"challenge_duration" validate:"omitempty,challenge_duration"`
	ChallengeStartDate  *time.Time `json:"challenge_start_date"`
	IsFavorite          *bool      `json:"is_favorite"`
}

// ReorderRequest carries a full ordered sibling list for atomic renumbering
type ReorderRequest struct {
	ParentID   *string  `json:"parent_id"`
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}
