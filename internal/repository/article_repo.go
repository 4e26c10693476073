package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/slide-cms-api/internal/database"
	"github.com/slide-cms-api/internal/models"
)

const articleColumns = `
	id, parent_id, title, subtitle, content, audio_url, media_id,
	text_align, vertical_align, order_position,
	published, temporarily_unpublished, unpublished_date,
	publish_time_start, publish_time_end, publish_days,
	row_publish_time_start, row_publish_time_end, row_publish_days, row_style,
	is_project, is_challenge, challenge_duration, challenge_start_date, challenge_end_date,
	is_favorite, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`
	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.ParentID, article.Title, article.Subtitle, article.Content,
		article.AudioURL, article.MediaID, article.TextAlign, article.VerticalAlign,
		article.OrderPosition,
		article.Published, article.TemporarilyUnpublished, article.UnpublishedDate,
		article.PublishTimeStart, article.PublishTimeEnd, article.PublishDays,
		article.RowPublishTimeStart, article.RowPublishTimeEnd, article.RowPublishDays,
		article.RowStyleRaw,
		article.IsProject, article.IsChallenge, article.ChallengeDuration,
		article.ChallengeStartDate, article.ChallengeEndDate,
		article.IsFavorite, article.CreatedAt, article.UpdatedAt,
	)
	return err
}

// CreateBatch inserts a set of articles in a single transaction so a
// failure partway through leaves nothing behind.
func (r *articleRepo) CreateBatch(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, article := range articles {
		if article.CreatedAt.IsZero() {
			article.CreatedAt = now
		}
		article.UpdatedAt = now

		if _, err := stmt.ExecContext(ctx,
			article.ID, article.ParentID, article.Title, article.Subtitle, article.Content,
			article.AudioURL, article.MediaID, article.TextAlign, article.VerticalAlign,
			article.OrderPosition,
			article.Published, article.TemporarilyUnpublished, article.UnpublishedDate,
			article.PublishTimeStart, article.PublishTimeEnd, article.PublishDays,
			article.RowPublishTimeStart, article.RowPublishTimeEnd, article.RowPublishDays,
			article.RowStyleRaw,
			article.IsProject, article.IsChallenge, article.ChallengeDuration,
			article.ChallengeStartDate, article.ChallengeEndDate,
			article.IsFavorite, article.CreatedAt, article.UpdatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update persists all mutable fields of an article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles SET
			parent_id = $2, title = $3, subtitle = $4, content = $5,
			audio_url = $6, media_id = $7, text_align = $8, vertical_align = $9,
			order_position = $10, published = $11,
			temporarily_unpublished = $12, unpublished_date = $13,
			publish_time_start = $14, publish_time_end = $15, publish_days = $16,
			row_publish_time_start = $17, row_publish_time_end = $18,
			row_publish_days = $19, row_style = $20,
			is_project = $21, is_challenge = $22, challenge_duration = $23,
			challenge_start_date = $24, challenge_end_date = $25,
			is_favorite = $26, updated_at = $27
		WHERE id = $1
	`
	article.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.ParentID, article.Title, article.Subtitle, article.Content,
		article.AudioURL, article.MediaID, article.TextAlign, article.VerticalAlign,
		article.OrderPosition, article.Published,
		article.TemporarilyUnpublished, article.UnpublishedDate,
		article.PublishTimeStart, article.PublishTimeEnd, article.PublishDays,
		article.RowPublishTimeStart, article.RowPublishTimeEnd, article.RowPublishDays,
		article.RowStyleRaw,
		article.IsProject, article.IsChallenge, article.ChallengeDuration,
		article.ChallengeStartDate, article.ChallengeEndDate,
		article.IsFavorite, article.UpdatedAt,
	)
	return err
}

// Delete removes an article and its sub-articles in one transaction
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE parent_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// ListMain retrieves all main articles ordered by position
func (r *articleRepo) ListMain(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE parent_id IS NULL ORDER BY order_position, id`
	return r.list(ctx, query)
}

// ListChildren retrieves the sub-articles of a main article ordered by position
func (r *articleRepo) ListChildren(ctx context.Context, parentID string) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE parent_id = $1 ORDER BY order_position, id`
	return r.list(ctx, query, parentID)
}

// ListSiblings retrieves a sibling scope ordered by position
func (r *articleRepo) ListSiblings(ctx context.Context, parentID *string) ([]*models.Article, error) {
	if parentID == nil {
		return r.ListMain(ctx)
	}
	return r.ListChildren(ctx, *parentID)
}

// UpdatePositions applies a batch of order-position changes in a single
// transaction so concurrent readers never observe a partially renumbered
// sibling set.
func (r *articleRepo) UpdatePositions(ctx context.Context, positions map[string]float64) error {
	if len(positions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "UPDATE articles SET order_position = $2, updated_at = $3 WHERE id = $1")
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for id, pos := range positions {
		if _, err := stmt.ExecContext(ctx, id, pos, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetPublished toggles the permanent publish flag
func (r *articleRepo) SetPublished(ctx context.Context, id string, published bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE articles SET published = $2, updated_at = $3 WHERE id = $1",
		id, published, time.Now(),
	)
	return err
}

// SetFavorite toggles the favorite marker
func (r *articleRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE articles SET is_favorite = $2, updated_at = $3 WHERE id = $1",
		id, favorite, time.Now(),
	)
	return err
}

// SetTemporarilyUnpublished hides an article until the next reset sweep
func (r *articleRepo) SetTemporarilyUnpublished(ctx context.Context, id string, unpublishedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE articles SET temporarily_unpublished = TRUE, unpublished_date = $2, updated_at = $3 WHERE id = $1",
		id, unpublishedAt, time.Now(),
	)
	return err
}

// ClearExpiredUnpublished resets expired temporary unpublishes in one statement
func (r *articleRepo) ClearExpiredUnpublished(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE articles
		SET temporarily_unpublished = FALSE, unpublished_date = NULL, updated_at = $2
		WHERE temporarily_unpublished = TRUE AND unpublished_date < $1
	`, before, time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CountByMedia returns how many articles reference a media asset
func (r *articleRepo) CountByMedia(ctx context.Context, mediaID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE media_id = $1", mediaID).Scan(&count)
	return count, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func (r *articleRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(s scanner) (*models.Article, error) {
	var article models.Article
	var parentID, subtitle, audioURL, mediaID sql.NullString
	var timeStart, timeEnd, days sql.NullString
	var rowTimeStart, rowTimeEnd, rowDays, rowStyle sql.NullString
	var unpublishedDate, challengeStart, challengeEnd sql.NullTime

	err := s.Scan(
		&article.ID, &parentID, &article.Title, &subtitle, &article.Content,
		&audioURL, &mediaID, &article.TextAlign, &article.VerticalAlign,
		&article.OrderPosition,
		&article.Published, &article.TemporarilyUnpublished, &unpublishedDate,
		&timeStart, &timeEnd, &days,
		&rowTimeStart, &rowTimeEnd, &rowDays, &rowStyle,
		&article.IsProject, &article.IsChallenge, &article.ChallengeDuration,
		&challengeStart, &challengeEnd,
		&article.IsFavorite, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.ParentID = nullableString(parentID)
	article.Subtitle = nullableString(subtitle)
	article.AudioURL = nullableString(audioURL)
	article.MediaID = nullableString(mediaID)
	article.PublishTimeStart = nullableString(timeStart)
	article.PublishTimeEnd = nullableString(timeEnd)
	article.PublishDays = nullableString(days)
	article.RowPublishTimeStart = nullableString(rowTimeStart)
	article.RowPublishTimeEnd = nullableString(rowTimeEnd)
	article.RowPublishDays = nullableString(rowDays)
	article.RowStyleRaw = nullableString(rowStyle)
	article.UnpublishedDate = nullableTime(unpublishedDate)
	article.ChallengeStartDate = nullableTime(challengeStart)
	article.ChallengeEndDate = nullableTime(challengeEnd)

	return &article, nil
}

func nullableString(v sql.NullString) *string {
	if v.Valid {
		return &v.String
	}
	return nil
}

func nullableTime(v sql.NullTime) *time.Time {
	if v.Valid {
		return &v.Time
	}
	return nil
}
