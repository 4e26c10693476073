package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/repository"
)

// mediaService is the concrete implementation of MediaService
type mediaService struct {
	media    repository.MediaRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newMediaService(media repository.MediaRepository, articles repository.ArticleRepository, log zerolog.Logger) *mediaService {
	return &mediaService{
		media:    media,
		articles: articles,
		log:      log.With().Str("service", "media").Logger(),
	}
}

// Create registers a media asset
func (s *mediaService) Create(ctx context.Context, in *models.MediaInput) (*models.Media, error) {
	media := &models.Media{
		ID:        uuid.NewString(),
		FolderID:  in.FolderID,
		Name:      in.Name,
		URL:       in.URL,
		MimeType:  in.MimeType,
		SizeBytes: in.SizeBytes,
	}
	if err := s.media.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// List retrieves media assets, optionally scoped to a folder
func (s *mediaService) List(ctx context.Context, folderID *string) ([]*models.Media, error) {
	return s.media.List(ctx, folderID)
}

// Delete removes a media asset. Deletion is refused while any article
// still references the asset.
func (s *mediaService) Delete(ctx context.Context, id string) error {
	media, err := s.media.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrNotFound
	}

	refs, err := s.articles.CountByMedia(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		s.log.Warn().Str("media_id", id).Int("references", refs).Msg("Refusing to delete in-use media")
		return ErrMediaInUse
	}

	return s.media.Delete(ctx, id)
}

// CreateFolder creates a media folder
func (s *mediaService) CreateFolder(ctx context.Context, in *models.MediaFolderInput) (*models.MediaFolder, error) {
	folder := &models.MediaFolder{
		ID:       uuid.NewString(),
		ParentID: in.ParentID,
		Name:     in.Name,
	}
	if err := s.media.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// ListFolders retrieves the folder tree
func (s *mediaService) ListFolders(ctx context.Context) ([]*models.MediaFolder, error) {
	return s.media.ListFolders(ctx)
}
