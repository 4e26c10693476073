package publish

import (
	"time"

	"github.com/slide-cms-api/internal/models"
)

// IsVisible decides whether an article is currently visible under the
// given effective window. Checks short-circuit in order: the temporary
// unpublish flag beats everything, then the permanent publish flag, then
// the time/day window.
func IsVisible(a *models.Article, w Window, now time.Time) bool {
	if a.TemporarilyUnpublished {
		return false
	}
	if !a.Published {
		return false
	}
	return w.IsAllowed(now)
}

// ArticleVisible resolves the effective window for the article and runs
// the visibility decision. Pass the parent for sub-articles, nil for main
// articles.
func ArticleVisible(a *models.Article, parent *models.Article, now time.Time) bool {
	return IsVisible(a, EffectiveWindow(a, parent), now)
}

// RowVisible decides aggregate visibility for a row. A project row shows
// while the main article or at least one sub-article is visible; a project
// with no visible content is treated as completed and hidden. A challenge
// row bypasses the window checks entirely and is gated only by its date
// range. Standard rows are exactly the engine result on the main article.
func RowVisible(main *models.Article, subs []*models.Article, now time.Time) bool {
	if main.IsChallenge {
		return main.ChallengeEndDate == nil || !now.After(*main.ChallengeEndDate)
	}
	if main.IsProject {
		if ArticleVisible(main, nil, now) {
			return true
		}
		for _, sub := range subs {
			if ArticleVisible(sub, main, now) {
				return true
			}
		}
		return false
	}
	return ArticleVisible(main, nil, now)
}

// VisibleSubArticles filters a row's sub-articles through the engine,
// each under its own effective window.
func VisibleSubArticles(main *models.Article, subs []*models.Article, now time.Time) []*models.Article {
	visible := make([]*models.Article, 0, len(subs))
	for _, sub := range subs {
		if ArticleVisible(sub, main, now) {
			visible = append(visible, sub)
		}
	}
	return visible
}
