package server

import (
	"net/http"
	"strconv"
	"time"

	"stocksurge/internal/model"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 50
	defaultMentionsLimit = 25
)

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", 24, 1, 24*7)
	limit := queryInt(r, "limit", defaultTrendingLimit, 1, maxTrendingLimit)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := s.reports.Trending(r.Context(), since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "trending query failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hours":    hours,
		"count":    len(rows),
		"trending": rows,
	})
}

func (s *Server) handleMentions(w http.ResponseWriter, r *http.Request) {
	ticker := normalizeTicker(r.PathValue("ticker"))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	hours := queryInt(r, "hours", 24, 1, 24*7)
	limit := queryInt(r, "limit", defaultMentionsLimit, 1, 100)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := s.reports.TickerMentions(r.Context(), ticker, since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "mentions query failed")
		return
	}
	if rows == nil {
		rows = []model.Mention{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ticker":   ticker,
		"hours":    hours,
		"count":    len(rows),
		"mentions": rows,
	})
}

// queryInt parses a query parameter with a default and clamp range.
func queryInt(r *http.Request, name string, def, min, max int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
