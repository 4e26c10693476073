package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
	"github.com/slide-cms-api/internal/importer"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/ordering"
	"github.com/slide-cms-api/internal/repository"
)

// importService is the concrete implementation of ImportService
type importService struct {
	articles    repository.ArticleRepository
	order       *ordering.Manager
	broadcaster *broadcast.Broadcaster
	log         zerolog.Logger
}

func newImportService(articles repository.ArticleRepository, order *ordering.Manager, b *broadcast.Broadcaster, log zerolog.Logger) *importService {
	return &importService{
		articles:    articles,
		order:       order,
		broadcaster: b,
		log:         log.With().Str("service", "import").Logger(),
	}
}

// ImportMarkdown turns a markdown document into a project row: the first
// heading becomes the row, each second-level heading becomes a slide.
// Slides get dense positions in document order; the row is appended at
// the end of the main list. The row and all its slides are inserted in
// one batch, so a failed import leaves nothing behind.
func (s *importService) ImportMarkdown(ctx context.Context, source []byte) (*models.Row, error) {
	doc, err := importer.ParseProject(source)
	if err != nil {
		return nil, err
	}

	position, err := s.order.Append(ctx, nil)
	if err != nil {
		return nil, err
	}

	main := &models.Article{
		ID:            uuid.NewString(),
		Title:         doc.Title,
		Content:       doc.Intro,
		TextAlign:     "center",
		VerticalAlign: "center",
		OrderPosition: position,
		Published:     true,
		IsProject:     true,
	}

	subs := make([]*models.Article, 0, len(doc.Slides))
	for i, slide := range doc.Slides {
		subs = append(subs, &models.Article{
			ID:            uuid.NewString(),
			ParentID:      &main.ID,
			Title:         slide.Title,
			Content:       slide.HTML,
			TextAlign:     "center",
			VerticalAlign: "center",
			OrderPosition: float64(i),
			Published:     true,
		})
	}

	batch := append([]*models.Article{main}, subs...)
	if err := s.articles.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("article_id", main.ID).
		Int("slides", len(subs)).
		Msg("Imported markdown project")

	s.broadcaster.NotifyArticleChange(broadcast.ActionCreated, main.ID)

	return &models.Row{Article: main, SubArticles: subs}, nil
}
