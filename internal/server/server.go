// Package server wires the HTTP API: stock data, indicator reports, Reddit
// sentiment, article summarization, and the live-price WebSocket feed.
package server

import (
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stocksurge/internal/assistant"
	"stocksurge/internal/cache"
	"stocksurge/internal/indicator"
	"stocksurge/internal/logger"
	"stocksurge/internal/metrics"
	"stocksurge/internal/provider"
	"stocksurge/internal/scraper"
	"stocksurge/internal/sentiment"
)

// Server holds the handler dependencies. Every field is an interface or a
// small struct so tests can swap in fakes.
type Server struct {
	market  provider.MarketData
	cache   cache.Store
	engine  *indicator.Engine
	reports *sentiment.Store
	scraper *scraper.Scraper
	llm     *assistant.Client
	metrics *metrics.Metrics

	workers  int
	wsPoll   time.Duration
	cacheTTL TTLs
}

// TTLs are the cache tiers for the different payload kinds.
type TTLs struct {
	Quote   time.Duration // real-time-ish price snapshots
	History time.Duration // daily bars and indicator reports
	Info    time.Duration // fundamentals
}

// Options configures a Server.
type Options struct {
	Market   provider.MarketData
	Cache    cache.Store
	Reports  *sentiment.Store // nil disables the reddit endpoints
	Scraper  *scraper.Scraper // nil disables article summarize
	LLM      *assistant.Client
	Metrics  *metrics.Metrics
	Workers  int
	WSPoll   time.Duration
	CacheTTL TTLs
}

// New creates a Server with defaults filled in.
func New(opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.WSPoll <= 0 {
		opts.WSPoll = 5 * time.Second
	}
	if opts.CacheTTL.Quote <= 0 {
		opts.CacheTTL.Quote = cache.TTLShort
	}
	if opts.CacheTTL.History <= 0 {
		opts.CacheTTL.History = cache.TTLMedium
	}
	if opts.CacheTTL.Info <= 0 {
		opts.CacheTTL.Info = cache.TTLLong
	}
	return &Server{
		market:   opts.Market,
		cache:    opts.Cache,
		engine:   indicator.NewEngine(),
		reports:  opts.Reports,
		scraper:  opts.Scraper,
		llm:      opts.LLM,
		metrics:  opts.Metrics,
		workers:  opts.Workers,
		wsPoll:   opts.WSPoll,
		cacheTTL: opts.CacheTTL,
	}
}

// Routes builds the ServeMux with all endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/market/status", s.handleMarketStatus)

	mux.Handle("GET /api/v1/stocks/{ticker}/price", s.instrument("price", s.handlePrice))
	mux.Handle("GET /api/v1/stocks/{ticker}/info", s.instrument("info", s.handleInfo))
	mux.Handle("GET /api/v1/stocks/{ticker}/history", s.instrument("history", s.handleHistory))
	mux.Handle("GET /api/v1/stocks/{ticker}/indicators", s.instrument("indicators", s.handleIndicators))
	mux.Handle("POST /api/v1/stocks/indicators/batch", s.instrument("indicators_batch", s.handleIndicatorsBatch))

	if s.reports != nil {
		mux.Handle("GET /api/v1/reddit/trending", s.instrument("reddit_trending", s.handleTrending))
		mux.Handle("GET /api/v1/reddit/mentions/{ticker}", s.instrument("reddit_mentions", s.handleMentions))
	}
	if s.scraper != nil && s.llm != nil {
		mux.Handle("POST /api/v1/articles/summarize", s.instrument("summarize", s.handleSummarize))
	}

	mux.HandleFunc("GET /ws/live/{tickers}", s.handleLive)
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// instrument wraps a handler with the access log, request counting, and
// latency observation. A request ID is planted in the context so handler
// log lines correlate.
func (s *Server) instrument(endpoint string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.NewRequestID(endpoint, start))
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		h(sw, r.WithContext(ctx))

		elapsed := time.Since(start)
		slog.Info("request",
			append(logger.Attrs(ctx),
				slog.String("endpoint", endpoint),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("elapsed", elapsed))...)
		if s.metrics != nil {
			s.metrics.RequestDur.Observe(elapsed.Seconds())
			s.metrics.RequestsTotal.WithLabelValues(endpoint, statusClass(sw.status)).Inc()
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] response encode: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
