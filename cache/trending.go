package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"moltfeed/storage/models"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const trendingRedisKeyPrefix = "trending"

// TrendingCache holds ranked trending results for a few minutes so repeated
// reads within the TTL do not rescan the window. Values are keyed by
// (window, limit); a miss simply means the caller recomputes.
type TrendingCache struct {
	redisClient *redis.Client
	expiration  time.Duration
}

func NewTrendingCache(options *redis.Options, expiration time.Duration) *TrendingCache {
	return &TrendingCache{
		redisClient: redis.NewClient(options),
		expiration:  expiration,
	}
}

func (c *TrendingCache) Get(window time.Duration, limit int) ([]models.Post, bool) {
	val, err := c.redisClient.Get(
		context.Background(),
		c.getRedisKey(window, limit),
	).Result()
	if err != nil {
		return nil, false
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(val), &posts); err != nil {
		log.Errorf("Error unmarshalling trending entry: %s", err)
		return nil, false
	}
	return posts, true
}

func (c *TrendingCache) Set(window time.Duration, limit int, posts []models.Post) {
	bytes, err := json.Marshal(posts)
	if err != nil {
		log.Errorf("Error marshalling trending entry: %s", err)
		return
	}
	c.redisClient.Set(
		context.Background(),
		c.getRedisKey(window, limit),
		bytes,
		c.expiration,
	)
}

func (c *TrendingCache) getRedisKey(window time.Duration, limit int) string {
	return fmt.Sprintf("%s::%d::%d", trendingRedisKeyPrefix, int(window.Hours()), limit)
}
