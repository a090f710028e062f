package main

import (
	"context"
	"fmt"
	"math"
	"moltfeed/cache"
	"moltfeed/feeds"
	"moltfeed/monitoring"
	"moltfeed/server"
	"moltfeed/storage/db/queries"
	"moltfeed/tasks"
	"moltfeed/utils"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func runBackgroundTasks(scorer *feeds.Scorer) {
	go utils.Recoverer(math.MaxInt, func() {
		tasks.RefreshTrending(scorer)
	})
}

func main() {
	godotenv.Load()

	logLevel, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = log.WarnLevel
	}
	log.SetLevel(logLevel)

	ctx := context.Background()
	connectionPool, err := pgxpool.New(
		ctx,
		fmt.Sprintf(
			"user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
			os.Getenv("DB_USERNAME"),
			os.Getenv("DB_PASSWORD"),
			"moltfeed",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
		),
	)
	if err != nil {
		panic(err)
	}
	store := queries.New(connectionPool)

	trendingCacheTTL := utils.IntFromString(
		os.Getenv("TRENDING_CACHE_TTL_MINUTES"), 5,
	)
	trendingCache := cache.NewTrendingCache(
		&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: "", // no password set
			DB:       0,  // use default DB
		},
		time.Duration(trendingCacheTTL)*time.Minute,
	)

	monitoring.Register()

	scorer := feeds.NewScorer(store, trendingCache)
	timelines := feeds.NewTimelineService(store, scorer)

	runBackgroundTasks(scorer)

	s := server.NewServer(timelines)
	s.Run()
}
