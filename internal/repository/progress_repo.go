package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/slide-cms-api/internal/database"
	"github.com/slide-cms-api/internal/models"
)

// progressRepo is the concrete implementation of ProgressRepository
type progressRepo struct {
	db *database.DB
}

// NewProgressRepo creates a new challenge progress repository
func NewProgressRepo(db *database.DB) ProgressRepository {
	return &progressRepo{db: db}
}

// Create appends a completion record
func (r *progressRepo) Create(ctx context.Context, progress *models.ChallengeProgress) error {
	query := `
		INSERT INTO challenge_progress (id, article_id, sub_article_id, user_id, completed_at, day)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		progress.ID, progress.ArticleID, progress.SubArticleID,
		progress.UserID, progress.CompletedAt, progress.Day,
	)
	return err
}

// GetForUserDay finds an existing completion within a calendar day
func (r *progressRepo) GetForUserDay(ctx context.Context, articleID, subArticleID, userID string, dayStart, dayEnd time.Time) (*models.ChallengeProgress, error) {
	query := `
		SELECT id, article_id, sub_article_id, user_id, completed_at, day
		FROM challenge_progress
		WHERE article_id = $1 AND sub_article_id = $2 AND user_id = $3
		  AND completed_at >= $4 AND completed_at < $5
		LIMIT 1
	`

	var p models.ChallengeProgress
	err := r.db.QueryRowContext(ctx, query, articleID, subArticleID, userID, dayStart, dayEnd).Scan(
		&p.ID, &p.ArticleID, &p.SubArticleID, &p.UserID, &p.CompletedAt, &p.Day,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByChallenge retrieves the full completion log for a challenge and user
func (r *progressRepo) ListByChallenge(ctx context.Context, articleID, userID string) ([]*models.ChallengeProgress, error) {
	query := `
		SELECT id, article_id, sub_article_id, user_id, completed_at, day
		FROM challenge_progress
		WHERE article_id = $1 AND user_id = $2
		ORDER BY completed_at
	`
	rows, err := r.db.QueryContext(ctx, query, articleID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var log []*models.ChallengeProgress
	for rows.Next() {
		var p models.ChallengeProgress
		if err := rows.Scan(&p.ID, &p.ArticleID, &p.SubArticleID, &p.UserID, &p.CompletedAt, &p.Day); err != nil {
			return nil, err
		}
		log = append(log, &p)
	}
	return log, rows.Err()
}
