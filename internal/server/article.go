package server

import (
	"net/http"
	"strings"

	"stocksurge/internal/assistant"
	"stocksurge/internal/model"
)

type summarizeRequest struct {
	URL      string `json:"url"`
	MaxWords int    `json:"max_words"`
}

type summarizeResponse struct {
	Article *model.Article     `json:"article"`
	Summary *assistant.Summary `json:"summary"`
}

// handleSummarize scrapes the article at the given URL and runs it through
// the local model. Scrape failures are the caller's problem (bad URL,
// paywall); model failures mean the assistant is down.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		writeError(w, http.StatusBadRequest, "url must be absolute")
		return
	}

	article, err := s.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "could not scrape article: "+err.Error())
		return
	}
	if article.Content == "" {
		writeError(w, http.StatusUnprocessableEntity, "no readable content found at url")
		return
	}

	summary, err := s.llm.SummarizeArticle(r.Context(), article.Title, article.Content, req.MaxWords)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "summarization failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summarizeResponse{Article: article, Summary: summary})
}
