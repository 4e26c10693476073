package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
	"github.com/slide-cms-api/internal/challenge"
	"github.com/slide-cms-api/internal/config"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/ordering"
	"github.com/slide-cms-api/internal/repository"
)

var (
	// ErrNotFound indicates the requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrMediaInUse indicates a media asset is still referenced by articles
	ErrMediaInUse = errors.New("media is referenced by one or more articles")
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, in *models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context) ([]*models.Row, error)
	Feed(ctx context.Context, now time.Time) ([]*models.Row, error)
	Duplicate(ctx context.Context, id string) (*models.Article, error)
	Reorder(ctx context.Context, req *models.ReorderRequest) error
	Shuffle(ctx context.Context, rowID string) ([]string, error)
	SetPublished(ctx context.Context, id string, published bool) (*models.Article, error)
	ToggleFavorite(ctx context.Context, id string) (*models.Article, error)
	CompleteSlide(ctx context.Context, id string, now time.Time) error
	ResetExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
}

// MediaService defines the interface for media asset management
type MediaService interface {
	Create(ctx context.Context, in *models.MediaInput) (*models.Media, error)
	List(ctx context.Context, folderID *string) ([]*models.Media, error)
	Delete(ctx context.Context, id string) error
	CreateFolder(ctx context.Context, in *models.MediaFolderInput) (*models.MediaFolder, error)
	ListFolders(ctx context.Context) ([]*models.MediaFolder, error)
}

// ChallengeService defines the interface for challenge progress operations
type ChallengeService interface {
	Stats(ctx context.Context, challengeID string, now time.Time) (*models.ChallengeStats, error)
	Complete(ctx context.Context, challengeID, subArticleID string, now time.Time) (*models.ChallengeProgress, bool, error)
}

// ImportService defines the interface for the markdown project importer
type ImportService interface {
	ImportMarkdown(ctx context.Context, source []byte) (*models.Row, error)
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	Media     MediaService
	Challenge ChallengeService
	Import    ImportService
}

// NewServices creates all services. The broadcaster is constructed by the
// caller and injected so its lifetime is owned by the process, not by a
// package-level singleton.
func NewServices(repos *repository.Repositories, b *broadcast.Broadcaster, cfg *config.Config, log zerolog.Logger) *Services {
	orderMgr := ordering.NewManager(repos.Article, log)
	tracker := challenge.NewTracker(repos.Article, repos.Progress, challenge.SharedIdentity{}, log)

	articleSvc := newArticleService(repos.Article, orderMgr, b, log)

	return &Services{
		Article:   articleSvc,
		Media:     newMediaService(repos.Media, repos.Article, log),
		Challenge: newChallengeService(tracker, b, log),
		Import:    newImportService(repos.Article, orderMgr, b, log),
	}
}
