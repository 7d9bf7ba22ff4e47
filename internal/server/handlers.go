package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"stocksurge/internal/indicator"
	"stocksurge/internal/markethours"
	"stocksurge/internal/model"
	"stocksurge/internal/provider"
	"stocksurge/internal/worker"
)

const maxBatchTickers = 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMarketStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	open := markethours.IsMarketOpen(now)
	body := map[string]any{
		"open":      open,
		"status":    markethours.StatusString(now),
		"next_open": markethours.NextOpen(now).Format(time.RFC3339),
	}
	if open {
		body["closes_in_seconds"] = int(markethours.TimeUntilClose(now).Seconds())
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	ticker := normalizeTicker(r.PathValue("ticker"))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	key := "quote:" + ticker
	var cached model.Quote
	if s.cacheGet(r.Context(), key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	q, err := s.market.Quote(r.Context(), ticker)
	if err != nil {
		s.providerError()
		writeError(w, http.StatusNotFound, "quote unavailable for "+ticker)
		return
	}
	s.cache.Set(r.Context(), key, q, s.cacheTTL.Quote)
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	ticker := normalizeTicker(r.PathValue("ticker"))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	key := "info:" + ticker
	var cached model.CompanyInfo
	if s.cacheGet(r.Context(), key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	info, err := s.market.Info(r.Context(), ticker)
	if err != nil {
		s.providerError()
		writeError(w, http.StatusNotFound, "info unavailable for "+ticker)
		return
	}
	s.cache.Set(r.Context(), key, info, s.cacheTTL.Info)
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ticker := normalizeTicker(r.PathValue("ticker"))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	period, err := provider.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "history:" + ticker + ":" + string(period)
	var cached model.History
	if s.cacheGet(r.Context(), key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	bars, err := s.market.History(r.Context(), ticker, period)
	if err != nil {
		s.providerError()
		writeError(w, http.StatusBadGateway, "history fetch failed for "+ticker)
		return
	}
	if len(bars) == 0 {
		writeError(w, http.StatusNotFound, "no data for "+ticker)
		return
	}

	h := model.History{Ticker: ticker, Period: string(period), Count: len(bars), Bars: bars}
	s.cache.Set(r.Context(), key, h, s.cacheTTL.History)
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	ticker := normalizeTicker(r.PathValue("ticker"))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	period, err := provider.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.indicatorReport(r.Context(), ticker, period)
	if err != nil {
		s.providerError()
		writeError(w, http.StatusBadGateway, "history fetch failed for "+ticker)
		return
	}
	// A report-shaped error ("no data") is still a 200: the instrument
	// resolved, it just has no history.
	writeJSON(w, http.StatusOK, report)
}

type batchRequest struct {
	Tickers []string `json:"tickers"`
	Period  string   `json:"period"`
}

type batchResponse struct {
	Period  string                      `json:"period"`
	Count   int                         `json:"count"`
	Reports map[string]indicator.Report `json:"reports"`
}

func (s *Server) handleIndicatorsBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Tickers) == 0 {
		writeError(w, http.StatusBadRequest, "tickers is required")
		return
	}
	if len(req.Tickers) > maxBatchTickers {
		writeError(w, http.StatusBadRequest, "too many tickers (max 20)")
		return
	}
	period, err := provider.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tickers := make([]string, 0, len(req.Tickers))
	for _, t := range req.Tickers {
		if n := normalizeTicker(t); n != "" {
			tickers = append(tickers, n)
		}
	}

	results := worker.Map(r.Context(), s.workers, tickers,
		func(ctx context.Context, ticker string) (indicator.Report, error) {
			return s.indicatorReport(ctx, ticker, period)
		})

	reports := make(map[string]indicator.Report, len(results))
	for ticker, res := range results {
		if res.Err != nil {
			// Per-ticker failures degrade to the report-shaped error so one
			// bad symbol never sinks the batch.
			reports[ticker] = indicator.Report{
				Error:  "fetch failed",
				Ticker: ticker,
				Period: string(period),
			}
			continue
		}
		reports[ticker] = res.Value
	}
	writeJSON(w, http.StatusOK, batchResponse{
		Period:  string(period),
		Count:   len(reports),
		Reports: reports,
	})
}

// indicatorReport fetches history and computes (or recalls) the report for
// one ticker. Only provider transport failures surface as errors; an empty
// series produces the engine's error-shaped report.
func (s *Server) indicatorReport(ctx context.Context, ticker string, period provider.Period) (indicator.Report, error) {
	key := "indicators:" + ticker + ":" + string(period)
	var cached indicator.Report
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	bars, err := s.market.History(ctx, ticker, period)
	if err != nil {
		return indicator.Report{}, err
	}

	start := time.Now()
	report := s.engine.Compute(ticker, string(period), bars)
	if s.metrics != nil {
		s.metrics.ReportDur.Observe(time.Since(start).Seconds())
		s.metrics.ReportsComputed.Inc()
	}

	s.cache.Set(ctx, key, report, s.cacheTTL.History)
	return report, nil
}

// cacheGet wraps Store.Get with hit/miss accounting.
func (s *Server) cacheGet(ctx context.Context, key string, dest any) bool {
	hit := s.cache.Get(ctx, key, dest)
	if s.metrics != nil {
		if hit {
			s.metrics.CacheHits.Inc()
		} else {
			s.metrics.CacheMisses.Inc()
		}
	}
	return hit
}

func (s *Server) providerError() {
	if s.metrics != nil {
		s.metrics.ProviderErrors.Inc()
	}
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
