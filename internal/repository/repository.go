package repository

import (
	"context"
	"time"

	"github.com/slide-cms-api/internal/database"
	"github.com/slide-cms-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	// CreateBatch inserts a set of articles atomically: all rows commit
	// together or not at all.
	CreateBatch(ctx context.Context, articles []*models.Article) error
	Update(ctx context.Context, article *models.Article) error
	// Delete removes the article and, for a main article, its
	// sub-articles in the same transaction.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	ListMain(ctx context.Context) ([]*models.Article, error)
	ListChildren(ctx context.Context, parentID string) ([]*models.Article, error)
	// ListSiblings returns the sibling scope for the given parent id
	// (nil for main articles), ordered by position.
	ListSiblings(ctx context.Context, parentID *string) ([]*models.Article, error)
	// UpdatePositions applies a batch of position changes atomically:
	// all updates commit together or not at all.
	UpdatePositions(ctx context.Context, positions map[string]float64) error
	SetPublished(ctx context.Context, id string, published bool) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	SetTemporarilyUnpublished(ctx context.Context, id string, unpublishedAt time.Time) error
	// ClearExpiredUnpublished resets every temporarily-unpublished row
	// whose unpublished date is before the cutoff. Idempotent.
	ClearExpiredUnpublished(ctx context.Context, before time.Time) (int64, error)
	CountByMedia(ctx context.Context, mediaID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// ProgressRepository defines the interface for challenge progress records
type ProgressRepository interface {
	Create(ctx context.Context, progress *models.ChallengeProgress) error
	// GetForUserDay finds an existing completion for the exercise within
	// the given calendar-day bounds, or nil if none exists.
	GetForUserDay(ctx context.Context, articleID, subArticleID, userID string, dayStart, dayEnd time.Time) (*models.ChallengeProgress, error)
	ListByChallenge(ctx context.Context, articleID, userID string) ([]*models.ChallengeProgress, error)
}

// MediaRepository defines the interface for media assets and folders
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context, folderID *string) ([]*models.Media, error)
	Delete(ctx context.Context, id string) error
	CreateFolder(ctx context.Context, folder *models.MediaFolder) error
	ListFolders(ctx context.Context) ([]*models.MediaFolder, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Progress ProgressRepository
	Media    MediaRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Progress: NewProgressRepo(db),
		Media:    NewMediaRepo(db),
	}
}
