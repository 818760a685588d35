package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	// Embedding provider
	EmbeddingProvider string // "hashing", "ollama" or "openai"
	EmbeddingURL      string // e.g. "http://localhost:11434" for ollama
	EmbeddingModel    string // reported by /health, e.g. "all-MiniLM-L6-v2"
	EmbeddingAPIKey   string
	EmbeddingTimeout  time.Duration
	EmbeddingDims     int // hashing provider only

	EmbeddingMaxConcurrency int
	EmbeddingCacheSize      int    // 0 disables the in-memory cache
	EmbeddingCachePath      string // empty disables the SQLite cache

	BatchWorkers int
	MaxBodyBytes int64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":5002"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getLogLevel("LOG_LEVEL", slog.LevelInfo),

		EmbeddingProvider: getenvDefault("EMBEDDING_PROVIDER", "hashing"),
		EmbeddingURL:      os.Getenv("EMBEDDING_URL"),
		EmbeddingModel:    getenvDefault("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
		EmbeddingAPIKey:   os.Getenv("EMBEDDING_API_KEY"),
		EmbeddingTimeout:  getDuration("EMBEDDING_TIMEOUT", 30*time.Second),
		EmbeddingDims:     getPositiveInt("EMBEDDING_DIMENSIONS", 384),

		EmbeddingMaxConcurrency: getPositiveInt("EMBEDDING_MAX_CONCURRENCY", 4),
		EmbeddingCacheSize:      getInt("EMBEDDING_CACHE_SIZE", 4096),
		EmbeddingCachePath:      os.Getenv("EMBEDDING_CACHE_PATH"),

		BatchWorkers: getPositiveInt("BATCH_WORKERS", 1),
		MaxBodyBytes: int64(getPositiveInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Fatalf("config: %s=%q is not a valid non-negative integer", k, v)
	}
	return n
}

func getPositiveInt(k string, fallback int) int {
	n := getInt(k, fallback)
	if n == 0 {
		log.Fatalf("config: %s must be greater than zero", k)
	}
	return n
}

func getLogLevel(k string, fallback slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		log.Fatalf("config: %s=%q is not a valid log level", k, v)
	}
	return level
}
