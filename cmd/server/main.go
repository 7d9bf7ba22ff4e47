package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocksurge/config"
	"stocksurge/internal/assistant"
	"stocksurge/internal/cache"
	"stocksurge/internal/logger"
	"stocksurge/internal/metrics"
	"stocksurge/internal/provider"
	"stocksurge/internal/scraper"
	"stocksurge/internal/sentiment"
	"stocksurge/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Println("[server] starting...")
	logger.Init("api", slog.LevelInfo)

	cfg := config.Load()

	// Redis cache with in-memory fallback; the API serves either way.
	var store cache.Store
	if redis, err := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}); err != nil {
		log.Printf("[server] redis unavailable, using in-memory cache: %v", err)
		store = cache.NewMemory()
	} else {
		store = redis
	}

	reports, err := sentiment.OpenStore(cfg.SQLitePath)
	if err != nil {
		log.Printf("[server] mention store unavailable, reddit endpoints disabled: %v", err)
		reports = nil
	} else {
		defer reports.Close()
	}

	llm := assistant.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout)
	if !llm.Available(context.Background()) {
		log.Printf("[server] ollama not reachable at %s, summaries will fail until it is up", cfg.OllamaURL)
	}

	srv := server.New(server.Options{
		Market:  provider.NewGuarded(provider.NewYahoo(), 5, 30*time.Second),
		Cache:   store,
		Reports: reports,
		Scraper: scraper.New(cfg.UserAgent, 10*time.Second),
		LLM:     llm,
		Metrics: metrics.New(),
		Workers: cfg.WorkerPoolSize,
		CacheTTL: server.TTLs{
			Quote:   cfg.CacheTTLShort,
			History: cfg.CacheTTLMedium,
			Info:    cfg.CacheTTLLong,
		},
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[server] listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("[server] shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
	log.Println("[server] stopped")
}
