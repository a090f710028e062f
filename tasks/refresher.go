package tasks

import (
	"context"
	"moltfeed/feeds"
	"time"

	log "github.com/sirupsen/logrus"
)

const refreshInterval = 1 * time.Minute

// RefreshTrending keeps the default trending view warm so most reads hit the
// cache. Recomputation past the TTL happens here instead of on a request.
func RefreshTrending(scorer *feeds.Scorer) {
	for {
		select {
		case <-time.After(refreshInterval):
			_, err := scorer.Trending(
				context.Background(),
				feeds.TrendingWindow,
				feeds.DefaultFeedLimit,
				time.Now(),
			)
			if err != nil {
				log.Errorf("Error refreshing trending feed: %v", err)
			}
		}
	}
}
