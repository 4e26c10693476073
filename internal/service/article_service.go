package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/ordering"
	"github.com/slide-cms-api/internal/publish"
	"github.com/slide-cms-api/internal/repository"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles    repository.ArticleRepository
	order       *ordering.Manager
	broadcaster *broadcast.Broadcaster
	log         zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, order *ordering.Manager, b *broadcast.Broadcaster, log zerolog.Logger) *articleService {
	return &articleService{
		articles:    articles,
		order:       order,
		broadcaster: b,
		log:         log.With().Str("service", "article").Logger(),
	}
}

// Create inserts a new article at the end of its sibling scope
func (s *articleService) Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error) {
	position, err := s.order.Append(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:            uuid.NewString(),
		ParentID:      in.ParentID,
		TextAlign:     "center",
		VerticalAlign: "center",
		OrderPosition: position,
	}
	applyInput(article, in)

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	s.broadcaster.NotifyArticleChange(broadcast.ActionCreated, article.ID)
	return article, nil
}

// Update applies the non-nil input fields to an existing article
func (s *articleService) Update(ctx context.Context, id string, in *models.ArticleInput) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	applyInput(article, in)

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	s.broadcaster.NotifyArticleChange(broadcast.ActionUpdated, article.ID)
	return article, nil
}

// Delete removes an article; a main article takes its sub-articles with it
func (s *articleService) Delete(ctx context.Context, id string) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcaster.NotifyArticleChange(broadcast.ActionDeleted, id)
	return nil
}

// Get retrieves a single article
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// List returns every row with all its sub-articles, for the admin panel
func (s *articleService) List(ctx context.Context) ([]*models.Row, error) {
	mains, err := s.articles.ListMain(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*models.Row, 0, len(mains))
	for _, main := range mains {
		subs, err := s.articles.ListChildren(ctx, main.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &models.Row{
			Article:     main,
			SubArticles: subs,
			Style:       models.ParseRowStyle(main.RowStyleRaw),
		})
	}
	return rows, nil
}

// Feed returns the currently visible rows with their visible sub-articles,
// applying aggregate visibility rules for project and challenge rows.
func (s *articleService) Feed(ctx context.Context, now time.Time) ([]*models.Row, error) {
	mains, err := s.articles.ListMain(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*models.Row, 0, len(mains))
	for _, main := range mains {
		subs, err := s.articles.ListChildren(ctx, main.ID)
		if err != nil {
			return nil, err
		}
		if !publish.RowVisible(main, subs, now) {
			continue
		}
		rows = append(rows, &models.Row{
			Article:     main,
			SubArticles: publish.VisibleSubArticles(main, subs, now),
			Style:       models.ParseRowStyle(main.RowStyleRaw),
		})
	}
	return rows, nil
}

// Duplicate copies an article, placing the copy immediately after its
// source. Duplicating a main article copies its sub-articles as well.
func (s *articleService) Duplicate(ctx context.Context, id string) (*models.Article, error) {
	source, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNotFound
	}

	position, err := s.order.InsertAfter(ctx, source)
	if err != nil {
		return nil, err
	}

	dup := *source
	dup.ID = uuid.NewString()
	dup.OrderPosition = position
	dup.CreatedAt = time.Time{}

	if err := s.articles.Create(ctx, &dup); err != nil {
		return nil, err
	}

	if source.IsMain() {
		subs, err := s.articles.ListChildren(ctx, source.ID)
		if err != nil {
			return nil, err
		}
		for i, sub := range subs {
			subCopy := *sub
			subCopy.ID = uuid.NewString()
			subCopy.ParentID = &dup.ID
			subCopy.OrderPosition = float64(i)
			subCopy.CreatedAt = time.Time{}
			if err := s.articles.Create(ctx, &subCopy); err != nil {
				return nil, err
			}
		}
	}

	s.broadcaster.NotifyArticleChange(broadcast.ActionCreated, dup.ID)
	return &dup, nil
}

// Reorder renumbers a sibling scope to match the submitted id order
func (s *articleService) Reorder(ctx context.Context, req *models.ReorderRequest) error {
	if _, err := s.order.Reorder(ctx, req.ParentID, req.OrderedIDs); err != nil {
		return err
	}
	s.broadcaster.NotifyArticleChange(broadcast.ActionReordered, "")
	return nil
}

// Shuffle randomizes the sub-article order within a row
func (s *articleService) Shuffle(ctx context.Context, rowID string) ([]string, error) {
	row, err := s.articles.GetByID(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	ids, err := s.order.Shuffle(ctx, &rowID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.NotifyArticleChange(broadcast.ActionReordered, rowID)
	return ids, nil
}

// SetPublished toggles the permanent publish flag
func (s *articleService) SetPublished(ctx context.Context, id string, published bool) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	if err := s.articles.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}
	article.Published = published

	s.broadcaster.NotifyArticleChange(broadcast.ActionUpdated, id)
	return article, nil
}

// ToggleFavorite flips the favorite marker
func (s *articleService) ToggleFavorite(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	if err := s.articles.SetFavorite(ctx, id, !article.IsFavorite); err != nil {
		return nil, err
	}
	article.IsFavorite = !article.IsFavorite

	s.broadcaster.NotifyArticleChange(broadcast.ActionUpdated, id)
	return article, nil
}

// CompleteSlide marks a project slide temporarily unpublished so the
// presentation advances to the next one. The flag clears on the next
// daily reset.
func (s *articleService) CompleteSlide(ctx context.Context, id string, now time.Time) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}

	if err := s.articles.SetTemporarilyUnpublished(ctx, id, now); err != nil {
		return err
	}

	s.broadcaster.NotifyArticleChange(broadcast.ActionUpdated, id)
	return nil
}

// ResetExpired clears every temporary unpublish dated before the start of
// today. Safe to run repeatedly; re-running after a sweep is a no-op.
func (s *articleService) ResetExpired(ctx context.Context, now time.Time) (int64, error) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	cleared, err := s.articles.ClearExpiredUnpublished(ctx, startOfToday)
	if err != nil {
		return 0, err
	}

	if cleared > 0 {
		s.log.Info().Int64("cleared", cleared).Msg("Daily reset cleared temporary unpublishes")
		s.broadcaster.NotifyArticleChange(broadcast.ActionUpdated, "")
	}
	return cleared, nil
}

// Count returns the total article count
func (s *articleService) Count(ctx context.Context) (int, error) {
	return s.articles.Count(ctx)
}

// applyInput copies the non-nil input fields onto an article. When the
// challenge flag or dates change, the end date is rederived from the
// start date and duration.
func applyInput(article *models.Article, in *models.ArticleInput) {
	if in.Title != "" {
		article.Title = in.Title
	}
	article.Subtitle = coalesce(in.Subtitle, article.Subtitle)
	if in.Content != "" {
		article.Content = in.Content
	}
	article.AudioURL = coalesce(in.AudioURL, article.AudioURL)
	article.MediaID = coalesce(in.MediaID, article.MediaID)
	if in.TextAlign != "" {
		article.TextAlign = in.TextAlign
	}
	if in.VerticalAlign != "" {
		article.VerticalAlign = in.VerticalAlign
	}
	if in.Published != nil {
		article.Published = *in.Published
	}
	article.PublishTimeStart = coalesce(in.PublishTimeStart, article.PublishTimeStart)
	article.PublishTimeEnd = coalesce(in.PublishTimeEnd, article.PublishTimeEnd)
	article.PublishDays = coalesce(in.PublishDays, article.PublishDays)
	article.RowPublishTimeStart = coalesce(in.RowPublishTimeStart, article.RowPublishTimeStart)
	article.RowPublishTimeEnd = coalesce(in.RowPublishTimeEnd, article.RowPublishTimeEnd)
	article.RowPublishDays = coalesce(in.RowPublishDays, article.RowPublishDays)
	article.RowStyleRaw = coalesce(in.RowStyle, article.RowStyleRaw)
	if in.IsProject != nil {
		article.IsProject = *in.IsProject
	}
	if in.IsChallenge != nil {
		article.IsChallenge = *in.IsChallenge
	}
	if in.ChallengeDuration != nil {
		article.ChallengeDuration = *in.ChallengeDuration
	}
	if in.ChallengeStartDate != nil {
		article.ChallengeStartDate = in.ChallengeStartDate
	}
	if in.IsFavorite != nil {
		article.IsFavorite = *in.IsFavorite
	}

	if article.IsChallenge && article.ChallengeStartDate != nil && article.ChallengeDuration > 0 {
		end := article.ChallengeStartDate.AddDate(0, 0, article.ChallengeDuration)
		article.ChallengeEndDate = &end
	}
}

func coalesce(in, current *string) *string {
	if in != nil {
		return in
	}
	return current
}
