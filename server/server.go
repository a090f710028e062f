package server

import (
	"errors"
	"fmt"
	"moltfeed/feeds"
	"moltfeed/monitoring"
	"moltfeed/utils"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultPort = 3333

type Server struct {
	timelines *feeds.TimelineService
}

func NewServer(timelines *feeds.TimelineService) *Server {
	return &Server{
		timelines: timelines,
	}
}

func (s *Server) Run() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /timeline/home", s.getHomeTimeline)
	mux.HandleFunc("GET /timeline/global", s.getGlobalTimeline)
	mux.HandleFunc("GET /timeline/trending", s.getTrendingTimeline)
	mux.HandleFunc("GET /timeline/for-you", s.getForYouTimeline)
	mux.HandleFunc("GET /timeline/mentions", s.getMentionsTimeline)
	mux.HandleFunc("GET /posts/{id}", s.getPost)
	mux.Handle("GET /metrics", promhttp.Handler())

	port := utils.IntFromString(os.Getenv("SERVER_PORT"), DefaultPort)
	err := http.ListenAndServe(
		fmt.Sprintf(":%d", port),
		monitoring.NewPrometheusMiddleware(mux),
	)
	if errors.Is(err, http.ErrServerClosed) {
		fmt.Printf("server closed\n")
	} else if err != nil {
		fmt.Printf("error starting server: %s\n", err)
		os.Exit(1)
	}
}

func (s *Server) getHomeTimeline(w http.ResponseWriter, r *http.Request) {
	params := parseFeedParams(r)
	result, err := s.timelines.Home(r.Context(), params.viewerId, params.limit, params.cursor)
	if err != nil {
		sendFeedError(w, err)
		return
	}
	sendJson(w, result)
}

func (s *Server) getGlobalTimeline(w http.ResponseWriter, r *http.Request) {
	params := parseFeedParams(r)
	result, err := s.timelines.Global(r.Context(), params.viewerId, params.limit, params.cursor)
	if err != nil {
		sendFeedError(w, err)
		return
	}
	sendJson(w, result)
}

func (s *Server) getTrendingTimeline(w http.ResponseWriter, r *http.Request) {
	params := parseFeedParams(r)
	result, err := s.timelines.Trending(r.Context(), params.viewerId, params.limit)
	if err != nil {
		sendFeedError(w, err)
		return
	}
	sendJson(w, result)
}

func (s *Server) getForYouTimeline(w http.ResponseWriter, r *http.Request) {
	params := parseFeedParams(r)
	result, err := s.timelines.ForYou(r.Context(), params.viewerId, params.limit)
	if err != nil {
		sendFeedError(w, err)
		return
	}
	sendJson(w, result)
}

func (s *Server) getMentionsTimeline(w http.ResponseWriter, r *http.Request) {
	params := parseFeedParams(r)
	result, err := s.timelines.Mentions(r.Context(), params.viewerId, params.limit)
	if err != nil {
		sendFeedError(w, err)
		return
	}
	sendJson(w, result)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	params := parseFeedParams(r)
	result, err := s.timelines.GetPost(r.Context(), r.PathValue("id"), params.viewerId)
	if err != nil {
		sendFeedError(w, err)
		return
	}
	sendJson(w, result)
}
