// Package config loads application configuration from the environment
// (with .env support) and the optional tracker YAML file.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings for the API server and tracker binaries.
type Config struct {
	// HTTP
	Addr string

	// Infrastructure
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string

	// Cache TTLs
	CacheTTLShort  time.Duration
	CacheTTLMedium time.Duration
	CacheTTLLong   time.Duration

	// Ollama assistant
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Outbound HTTP identity for Reddit / article fetches
	UserAgent string

	// Tracker
	TrackerConfigPath string
	TrackerWebhookURL string // empty = log-only alerts

	// Fan-out for batch indicator requests
	WorkerPoolSize int
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	return &Config{
		Addr: getEnv("ADDR", ":8000"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SQLitePath:    getEnv("SQLITE_PATH", "data/stocksurge.db"),

		CacheTTLShort:  getEnvDuration("CACHE_TTL_SHORT", 30*time.Second),
		CacheTTLMedium: getEnvDuration("CACHE_TTL_MEDIUM", 5*time.Minute),
		CacheTTLLong:   getEnvDuration("CACHE_TTL_LONG", time.Hour),

		OllamaURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2"),
		OllamaTimeout: getEnvDuration("OLLAMA_TIMEOUT", 60*time.Second),

		UserAgent: getEnv("HTTP_USER_AGENT", "stocksurge/1.0"),

		TrackerConfigPath: getEnv("TRACKER_CONFIG", "tracker.yaml"),
		TrackerWebhookURL: getEnv("TRACKER_WEBHOOK_URL", ""),

		WorkerPoolSize: getEnvInt("WORKER_POOL_SIZE", 4),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] ignoring invalid %s=%q", key, v)
		return fallback
	}
	return d
}
