package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTracker_Defaults(t *testing.T) {
	cfg, err := LoadTracker(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(cfg.Subreddits) == 0 || cfg.MinScore != 10 || cfg.Cron == "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadTracker_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	data := []byte("subreddits: [pennystocks]\nmin_score: 25\ncron: \"@every 5m\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTracker(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Subreddits) != 1 || cfg.Subreddits[0] != "pennystocks" {
		t.Errorf("yaml subreddits not applied: %v", cfg.Subreddits)
	}
	if cfg.MinScore != 25 || cfg.Cron != "@every 5m" {
		t.Errorf("yaml values not applied: %+v", cfg)
	}

	t.Setenv("REDDIT_SUBREDDITS", "stocks+options")
	t.Setenv("REDDIT_MIN_SCORE", "5")
	cfg, err = LoadTracker(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Subreddits) != 2 || cfg.Subreddits[1] != "options" {
		t.Errorf("env override not applied: %v", cfg.Subreddits)
	}
	if cfg.MinScore != 5 {
		t.Errorf("env min score not applied: %d", cfg.MinScore)
	}
}
