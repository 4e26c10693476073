package ordering

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/repository"
)

// compactionEpsilon is the smallest neighbor gap tolerated before a
// sibling scope is renumbered to dense integers. Repeated midpoint
// insertion between the same neighbors halves the gap each time and
// would eventually exhaust float64 precision.
const compactionEpsilon = 1e-6

// Manager maintains order positions within sibling scopes: the main
// article list, or the sub-articles of one row. Positions are unique
// within a scope and carry no meaning across scopes.
type Manager struct {
	articles repository.ArticleRepository
	log      zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewManager creates an order-position manager
func NewManager(articles repository.ArticleRepository, log zerolog.Logger) *Manager {
	return &Manager{
		articles: articles,
		log:      log.With().Str("component", "ordering").Logger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Append returns the position for a new last sibling: max existing
// position plus one, or zero for an empty scope.
func (m *Manager) Append(ctx context.Context, parentID *string) (float64, error) {
	siblings, err := m.articles.ListSiblings(ctx, parentID)
	if err != nil {
		return 0, err
	}
	return NextPosition(positionsOf(siblings)), nil
}

// Reorder assigns dense positions 0..N-1 by list index and persists them
// as one atomic batch. The ordered list must be exactly the current
// sibling set.
func (m *Manager) Reorder(ctx context.Context, parentID *string, orderedIDs []string) (map[string]float64, error) {
	siblings, err := m.articles.ListSiblings(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if err := checkPermutation(siblings, orderedIDs); err != nil {
		return nil, err
	}

	positions := make(map[string]float64, len(orderedIDs))
	for i, id := range orderedIDs {
		positions[id] = float64(i)
	}

	if err := m.articles.UpdatePositions(ctx, positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// InsertAfter returns a position placing a new sibling immediately after
// the source article: the midpoint to the next sibling when one exists,
// source position plus one otherwise. The whole list is not renumbered;
// when the neighbor gap has collapsed below the precision threshold the
// scope is compacted first.
func (m *Manager) InsertAfter(ctx context.Context, source *models.Article) (float64, error) {
	siblings, err := m.articles.ListSiblings(ctx, source.ParentID)
	if err != nil {
		return 0, err
	}

	next, found := nextSibling(siblings, source.ID)
	if !found {
		return 0, fmt.Errorf("article %s not found in its sibling scope", source.ID)
	}
	if next == nil {
		return source.OrderPosition + 1, nil
	}

	if next.OrderPosition-source.OrderPosition < compactionEpsilon {
		m.log.Info().
			Str("parent_id", stringOrEmpty(source.ParentID)).
			Msg("Neighbor gap below precision threshold, compacting sibling scope")
		if err := m.Compact(ctx, source.ParentID); err != nil {
			return 0, err
		}
		return m.InsertAfter(ctx, source)
	}

	return Midpoint(source.OrderPosition, next.OrderPosition), nil
}

// Shuffle applies a uniform random permutation to a sibling scope and
// persists it via Reorder. Returns the new id order.
func (m *Manager) Shuffle(ctx context.Context, parentID *string) ([]string, error) {
	siblings, err := m.articles.ListSiblings(ctx, parentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(siblings))
	for i, s := range siblings {
		ids[i] = s.ID
	}

	m.mu.Lock()
	shuffleIDs(ids, m.rng)
	m.mu.Unlock()

	if _, err := m.Reorder(ctx, parentID, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Compact renumbers a sibling scope to dense integer positions,
// preserving the current order.
func (m *Manager) Compact(ctx context.Context, parentID *string) error {
	siblings, err := m.articles.ListSiblings(ctx, parentID)
	if err != nil {
		return err
	}

	positions := make(map[string]float64, len(siblings))
	for i, s := range siblings {
		positions[s.ID] = float64(i)
	}
	return m.articles.UpdatePositions(ctx, positions)
}

// NextPosition computes the append position for a scope with the given
// existing positions.
func NextPosition(positions []float64) float64 {
	if len(positions) == 0 {
		return 0
	}
	max := positions[0]
	for _, p := range positions[1:] {
		if p > max {
			max = p
		}
	}
	return max + 1
}

// Midpoint returns the position halfway between two neighbors. Fractional
// results are valid order positions.
func Midpoint(a, b float64) float64 {
	return a + (b-a)/2
}

// shuffleIDs performs an in-place Fisher-Yates shuffle: swap from the
// end, picking uniformly in [0, i] at each step.
func shuffleIDs(ids []string, rng *rand.Rand) {
	for i := len(ids) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

func positionsOf(siblings []*models.Article) []float64 {
	positions := make([]float64, len(siblings))
	for i, s := range siblings {
		positions[i] = s.OrderPosition
	}
	return positions
}

// nextSibling locates the sibling immediately after the given id in
// position order. The second return is false when the id is not in the
// scope at all.
func nextSibling(siblings []*models.Article, id string) (*models.Article, bool) {
	for i, s := range siblings {
		if s.ID == id {
			if i+1 < len(siblings) {
				return siblings[i+1], true
			}
			return nil, true
		}
	}
	return nil, false
}

func checkPermutation(siblings []*models.Article, orderedIDs []string) error {
	if len(orderedIDs) != len(siblings) {
		return fmt.Errorf("ordered list has %d ids, sibling scope has %d", len(orderedIDs), len(siblings))
	}
	current := make(map[string]bool, len(siblings))
	for _, s := range siblings {
		current[s.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] {
			return fmt.Errorf("id %s is not part of the sibling scope", id)
		}
		if seen[id] {
			return fmt.Errorf("id %s appears twice in the ordered list", id)
		}
		seen[id] = true
	}
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
