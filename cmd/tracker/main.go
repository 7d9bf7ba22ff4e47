package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"stocksurge/config"
	"stocksurge/internal/logger"
	"stocksurge/internal/notification"
	"stocksurge/internal/provider"
	"stocksurge/internal/sentiment"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Println("[tracker] starting...")
	logger.Init("tracker", slog.LevelInfo)

	cfg := config.Load()
	trackerCfg, err := config.LoadTracker(cfg.TrackerConfigPath)
	if err != nil {
		log.Fatalf("[tracker] config: %v", err)
	}
	log.Printf("[tracker] subreddits=%v min_score=%d schedule=%q",
		trackerCfg.Subreddits, trackerCfg.MinScore, trackerCfg.Cron)

	store, err := sentiment.OpenStore(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[tracker] mention store: %v", err)
	}
	defer store.Close()

	var notifier notification.Notifier = notification.NewLogNotifier()
	if cfg.TrackerWebhookURL != "" {
		notifier = notification.NewWebhookNotifier(cfg.TrackerWebhookURL)
		log.Printf("[tracker] activity alerts -> %s", cfg.TrackerWebhookURL)
	}

	tracker := sentiment.NewTracker(sentiment.TrackerOpts{
		Store:     store,
		Validator: sentiment.NewValidator(provider.NewYahoo(), trackerCfg.ExtraBlacklist),
		Notifier:  notifier,
		UserAgent: cfg.UserAgent,
		MinScore:  trackerCfg.MinScore,
		Limit:     trackerCfg.PostsPerScan,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanAll := func() {
		for _, sub := range trackerCfg.Subreddits {
			scanCtx, done := context.WithTimeout(ctx, 2*time.Minute)
			stored, err := tracker.ScanSubreddit(scanCtx, sub)
			done()
			if err != nil {
				log.Printf("[tracker] scan r/%s: %v", sub, err)
				continue
			}
			log.Printf("[tracker] scanned r/%s, %d new mentions", sub, stored)
		}
	}

	// One scan immediately, then on the schedule.
	scanAll()

	c := cron.New()
	if _, err := c.AddFunc(trackerCfg.Cron, scanAll); err != nil {
		log.Fatalf("[tracker] bad cron expression %q: %v", trackerCfg.Cron, err)
	}
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("[tracker] shutting down...")

	cancel()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("[tracker] stopped")
}
