package feeds

import (
	"context"
	"moltfeed/storage"
	"moltfeed/storage/models"
	"time"
)

const (
	blendFreshWindow    = 24 * time.Hour
	affinityLikeWindow  = 7 * 24 * time.Hour
	affinityAuthorLimit = 10
)

// Target share of the personalized feed per stream, applied as a per-stream
// candidate cap before interleaving.
var blendShares = [4]float64{0.4, 0.3, 0.2, 0.1}

// Blender assembles the "for you" feed from four capped candidate streams:
// followed authors, softened trending, affinity authors and discovery
// (followee-liked posts by unfollowed authors).
type Blender struct {
	store storage.Reader
}

func NewBlender(store storage.Reader) *Blender {
	return &Blender{
		store: store,
	}
}

func streamCap(limit int, share float64) int {
	return int(float64(limit) * share)
}

// ForYou is deterministic: the same store contents and the same now always
// produce the same sequence.
func (b *Blender) ForYou(ctx context.Context, viewerId string, limit int, now time.Time) ([]models.Post, error) {
	cutoffFresh := now.Add(-blendFreshWindow)

	followeeIds, err := b.store.GetFollowees(ctx, viewerId)
	if err != nil {
		return nil, unavailable(err)
	}

	followed, err := b.store.GetAuthorPostsSince(
		ctx, followeeIds, cutoffFresh, streamCap(limit, blendShares[0]),
	)
	if err != nil {
		return nil, unavailable(err)
	}

	trending, err := b.trendingStream(ctx, streamCap(limit, blendShares[1]), now)
	if err != nil {
		return nil, err
	}

	affinity, err := b.affinityStream(
		ctx, viewerId, now, cutoffFresh, streamCap(limit, blendShares[2]),
	)
	if err != nil {
		return nil, err
	}

	discovery, err := b.discoveryStream(ctx, viewerId, cutoffFresh, streamCap(limit, blendShares[3]))
	if err != nil {
		return nil, err
	}

	blended := interleave([4][]models.Post{followed, trending, affinity, discovery}, limit)
	return b.backfill(ctx, blended, limit)
}

// trendingStream reuses the scoring formula with a softer decay exponent and
// a lower engagement floor than the global trending view, to admit more
// breadth. It bypasses the trending cache: the exponent differs, so entries
// are not interchangeable.
func (b *Blender) trendingStream(ctx context.Context, size int, now time.Time) ([]models.Post, error) {
	engaged, err := b.store.GetEngagedSince(ctx, now.Add(-blendFreshWindow))
	if err != nil {
		return nil, unavailable(err)
	}

	eligible := make([]models.Post, 0, len(engaged))
	for _, post := range engaged {
		if post.LikeCount >= 2 || post.ReplyCount >= 1 || post.RepostCount >= 1 {
			eligible = append(eligible, post)
		}
	}

	rankByScore(eligible, now, ForYouDecay)
	if len(eligible) > size {
		eligible = eligible[:size]
	}
	return eligible, nil
}

func (b *Blender) affinityStream(
	ctx context.Context,
	viewerId string,
	now time.Time,
	cutoffFresh time.Time,
	size int,
) ([]models.Post, error) {
	authorIds, err := b.store.GetRecentLikedAuthors(
		ctx, viewerId, now.Add(-affinityLikeWindow), affinityAuthorLimit,
	)
	if err != nil {
		return nil, unavailable(err)
	}
	if len(authorIds) == 0 {
		return []models.Post{}, nil
	}

	posts, err := b.store.GetAuthorPostsSince(ctx, authorIds, cutoffFresh, size)
	if err != nil {
		return nil, unavailable(err)
	}
	return posts, nil
}

func (b *Blender) discoveryStream(
	ctx context.Context,
	viewerId string,
	cutoffFresh time.Time,
	size int,
) ([]models.Post, error) {
	posts, err := b.store.GetFolloweeLikedPosts(ctx, viewerId, cutoffFresh)
	if err != nil {
		return nil, unavailable(err)
	}
	if len(posts) > size {
		posts = posts[:size]
	}
	return posts, nil
}

// interleave round-robins the streams in fixed priority order. Every stream's
// cursor advances by one each round even when that position holds an
// already-seen post; duplicates are dropped, not substituted, so a stream
// front-loaded with duplicates under-contributes that round.
func interleave(streams [4][]models.Post, limit int) []models.Post {
	result := make([]models.Post, 0, limit)
	seen := make(map[string]bool, limit)
	var cursors [4]int

	for len(result) < limit {
		exhausted := true
		for i := range streams {
			if cursors[i] >= len(streams[i]) {
				continue
			}
			exhausted = false

			post := streams[i][cursors[i]]
			cursors[i]++

			if !seen[post.ID] {
				seen[post.ID] = true
				result = append(result, post)
				if len(result) >= limit {
					break
				}
			}
		}
		if exhausted {
			break
		}
	}
	return result
}

// backfill tops the blend up with the most recent global posts when the
// streams could not fill the target length.
func (b *Blender) backfill(ctx context.Context, blended []models.Post, limit int) ([]models.Post, error) {
	if len(blended) >= limit {
		return blended, nil
	}

	seen := make(map[string]bool, len(blended))
	for _, post := range blended {
		seen[post.ID] = true
	}

	// Fetch enough to survive dropping every already-seen id.
	fill, err := b.store.GetGlobalRecent(ctx, limit+len(blended))
	if err != nil {
		return nil, unavailable(err)
	}
	for _, post := range fill {
		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		blended = append(blended, post)
		if len(blended) >= limit {
			break
		}
	}
	return blended, nil
}
