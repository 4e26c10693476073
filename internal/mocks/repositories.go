package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/slide-cms-api/internal/models"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles                      map[string]*models.Article
	UpdatePositionsFunc           func(ctx context.Context, positions map[string]float64) error
	CreateBatchFunc               func(ctx context.Context, articles []*models.Article) error
	SetTemporarilyUnpublishedFunc func(ctx context.Context, id string, unpublishedAt time.Time) error
	UpdatePositionCalls           int
	CreateBatchCalls              int
	FailWith                      error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) CreateBatch(ctx context.Context, articles []*models.Article) error {
	m.CreateBatchCalls++
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, articles)
	}
	if m.FailWith != nil {
		return m.FailWith
	}
	for _, article := range articles {
		stored := *article
		m.Articles[article.ID] = &stored
	}
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for _, a := range m.Articles {
		if a.ParentID != nil && *a.ParentID == id {
			delete(m.Articles, a.ID)
		}
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	found := *a
	return &found, nil
}

func (m *MockArticleRepository) ListMain(ctx context.Context) ([]*models.Article, error) {
	return m.ListSiblings(ctx, nil)
}

func (m *MockArticleRepository) ListChildren(ctx context.Context, parentID string) ([]*models.Article, error) {
	return m.ListSiblings(ctx, &parentID)
}

func (m *MockArticleRepository) ListSiblings(ctx context.Context, parentID *string) ([]*models.Article, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var siblings []*models.Article
	for _, a := range m.Articles {
		if sameScope(a.ParentID, parentID) {
			found := *a
			siblings = append(siblings, &found)
		}
	}
	sort.Slice(siblings, func(i, j int) bool {
		if siblings[i].OrderPosition != siblings[j].OrderPosition {
			return siblings[i].OrderPosition < siblings[j].OrderPosition
		}
		return siblings[i].ID < siblings[j].ID
	})
	return siblings, nil
}

func (m *MockArticleRepository) UpdatePositions(ctx context.Context, positions map[string]float64) error {
	m.UpdatePositionCalls++
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, positions)
	}
	if m.FailWith != nil {
		return m.FailWith
	}
	for id, pos := range positions {
		if a, ok := m.Articles[id]; ok {
			a.OrderPosition = pos
		}
	}
	return nil
}

func (m *MockArticleRepository) SetPublished(ctx context.Context, id string, published bool) error {
	if a, ok := m.Articles[id]; ok {
		a.Published = published
	}
	return nil
}

func (m *MockArticleRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	if a, ok := m.Articles[id]; ok {
		a.IsFavorite = favorite
	}
	return nil
}

func (m *MockArticleRepository) SetTemporarilyUnpublished(ctx context.Context, id string, unpublishedAt time.Time) error {
	if m.SetTemporarilyUnpublishedFunc != nil {
		return m.SetTemporarilyUnpublishedFunc(ctx, id, unpublishedAt)
	}
	if a, ok := m.Articles[id]; ok {
		a.TemporarilyUnpublished = true
		at := unpublishedAt
		a.UnpublishedDate = &at
	}
	return nil
}

func (m *MockArticleRepository) ClearExpiredUnpublished(ctx context.Context, before time.Time) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	var cleared int64
	for _, a := range m.Articles {
		if a.TemporarilyUnpublished && a.UnpublishedDate != nil && a.UnpublishedDate.Before(before) {
			a.TemporarilyUnpublished = false
			a.UnpublishedDate = nil
			cleared++
		}
	}
	return cleared, nil
}

func (m *MockArticleRepository) CountByMedia(ctx context.Context, mediaID string) (int, error) {
	count := 0
	for _, a := range m.Articles {
		if a.MediaID != nil && *a.MediaID == mediaID {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

func sameScope(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	Records     []*models.ChallengeProgress
	CreateError error
}

func NewMockProgressRepository() *MockProgressRepository {
	return &MockProgressRepository{}
}

func (m *MockProgressRepository) Create(ctx context.Context, progress *models.ChallengeProgress) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	stored := *progress
	m.Records = append(m.Records, &stored)
	return nil
}

func (m *MockProgressRepository) GetForUserDay(ctx context.Context, articleID, subArticleID, userID string, dayStart, dayEnd time.Time) (*models.ChallengeProgress, error) {
	for _, p := range m.Records {
		if p.ArticleID == articleID && p.SubArticleID == subArticleID && p.UserID == userID &&
			!p.CompletedAt.Before(dayStart) && p.CompletedAt.Before(dayEnd) {
			found := *p
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockProgressRepository) ListByChallenge(ctx context.Context, articleID, userID string) ([]*models.ChallengeProgress, error) {
	var log []*models.ChallengeProgress
	for _, p := range m.Records {
		if p.ArticleID == articleID && p.UserID == userID {
			found := *p
			log = append(log, &found)
		}
	}
	return log, nil
}

// MockMediaRepository is a mock implementation of MediaRepository
type MockMediaRepository struct {
	Items   map[string]*models.Media
	Folders map[string]*models.MediaFolder
	Deleted []string
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{
		Items:   make(map[string]*models.Media),
		Folders: make(map[string]*models.MediaFolder),
	}
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	stored := *media
	m.Items[media.ID] = &stored
	return nil
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*models.Media, error) {
	item, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	found := *item
	return &found, nil
}

func (m *MockMediaRepository) List(ctx context.Context, folderID *string) ([]*models.Media, error) {
	var items []*models.Media
	for _, item := range m.Items {
		if folderID == nil || (item.FolderID != nil && *item.FolderID == *folderID) {
			found := *item
			items = append(items, &found)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	delete(m.Items, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockMediaRepository) CreateFolder(ctx context.Context, folder *models.MediaFolder) error {
	stored := *folder
	m.Folders[folder.ID] = &stored
	return nil
}

func (m *MockMediaRepository) ListFolders(ctx context.Context) ([]*models.MediaFolder, error) {
	var folders []*models.MediaFolder
	for _, f := range m.Folders {
		found := *f
		folders = append(folders, &found)
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}
