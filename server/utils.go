package server

import (
	"errors"
	"moltfeed/feeds"
	"moltfeed/utils"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// ViewerHeader carries the requesting identity. Token validation happens in
// the gateway in front of this service; an absent header means anonymous.
const ViewerHeader = "X-Viewer-Id"

type feedParams struct {
	viewerId string
	limit    int
	cursor   string
}

func parseFeedParams(r *http.Request) feedParams {
	queryParams := r.URL.Query()

	limit := feeds.DefaultFeedLimit
	if limitStr := queryParams.Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil {
			// Out-of-range, rejected downstream as InvalidArgument
			parsedLimit = -1
		}
		limit = parsedLimit
	}

	return feedParams{
		viewerId: r.Header.Get(ViewerHeader),
		limit:    limit,
		cursor:   queryParams.Get("cursor"),
	}
}

func sendFeedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feeds.ErrInvalidArgument):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, feeds.ErrNotFound):
		sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, feeds.ErrUnavailable):
		sendError(w, http.StatusServiceUnavailable, err.Error())
	default:
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}

func sendError(w http.ResponseWriter, errorCode int, message string) {
	log.Info(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorCode)
	resp := map[string]string{
		"error": message,
	}
	w.Write(utils.ToJson(resp))
}

func sendJson(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(utils.ToJson(value))
}
