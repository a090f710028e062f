package feeds

import (
	"context"
	"math"
	"moltfeed/monitoring"
	"moltfeed/storage"
	"moltfeed/storage/models"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	TrendingWindow   = 48 * time.Hour
	TrendingDecay    = 1.5
	ForYouDecay      = 1.2
	DefaultFeedLimit = 25
)

// TrendingCache is read-through: a miss recomputes from the store. Concurrent
// misses may each recompute; the computation is side-effect-free so the last
// write wins.
type TrendingCache interface {
	Get(window time.Duration, limit int) ([]models.Post, bool)
	Set(window time.Duration, limit int, posts []models.Post)
}

type Scorer struct {
	store storage.Reader
	cache TrendingCache
}

func NewScorer(store storage.Reader, cache TrendingCache) *Scorer {
	return &Scorer{
		store: store,
		cache: cache,
	}
}

// Score decays engagement by elapsed time. The exponentiated denominator
// buries stale high-engagement posts faster than linear decay would.
func Score(post *models.Post, now time.Time, decay float64) float64 {
	hours := now.Sub(post.CreatedAt).Hours()
	return float64(post.Engagement()) / math.Pow(hours+2, decay)
}

// rankByScore orders posts by score descending, breaking ties on more recent
// createdAt and then on bytewise id order so equal inputs always rank
// identically.
func rankByScore(posts []models.Post, now time.Time, decay float64) {
	sort.SliceStable(posts, func(i, j int) bool {
		scoreI := Score(&posts[i], now, decay)
		scoreJ := Score(&posts[j], now, decay)
		if scoreI != scoreJ {
			return scoreI > scoreJ
		}
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return strings.Compare(posts[i].ID, posts[j].ID) < 0
	})
}

// Trending returns the top-limit posts in the window ranked by decayed
// engagement. Zero-engagement posts are excluded by the store query rather
// than scored as zero.
func (s *Scorer) Trending(ctx context.Context, window time.Duration, limit int, now time.Time) ([]models.Post, error) {
	if cached, ok := s.cache.Get(window, limit); ok {
		monitoring.TrendingCacheHits.Inc()
		return cached, nil
	}
	monitoring.TrendingCacheMisses.Inc()

	timer := prometheus.NewTimer(monitoring.TrendingComputeDuration)
	defer timer.ObserveDuration()

	posts, err := s.store.GetEngagedSince(ctx, now.Add(-window))
	if err != nil {
		return nil, unavailable(err)
	}

	rankByScore(posts, now, TrendingDecay)
	if len(posts) > limit {
		posts = posts[:limit]
	}

	s.cache.Set(window, limit, posts)
	return posts, nil
}
