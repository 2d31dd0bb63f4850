package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBackendURL is where the scoring API listens in local development.
const DefaultBackendURL = "http://localhost:8003"

type Config struct {
	// Server
	Port int
	Env  string

	// PublicURL is the origin used when building shareable links.
	PublicURL string

	// CORS
	AllowedOrigins []string

	// Scoring backend
	BackendURL     string
	BackendTimeout time.Duration

	// Optional stores. Empty disables Redis (in-memory results) and history.
	RedisURL    string
	PostgresURL string

	// Result cache
	ResultTTL time.Duration

	// Analysis job pool
	WorkerCount int
	QueueSize   int
	JobTTL      time.Duration

	// Simulated progress
	ProgressInterval time.Duration
	ProgressStep     int

	// Intake
	MaxUploadBytes int64
}

// Load loads configuration from environment variables.
// It returns an error if a value is present but unusable.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnvInt("PORT", 8080),
		Env:       getEnv("ENV", "development"),
		PublicURL: getEnv("PUBLIC_URL", ""),

		BackendURL:     getEnv("BACKEND_URL", DefaultBackendURL),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 60*time.Second),

		RedisURL:    getEnv("REDIS_URL", ""),
		PostgresURL: getEnv("POSTGRES_URL", ""),

		ResultTTL: getEnvDuration("RESULT_TTL", 24*time.Hour),

		WorkerCount: getEnvInt("WORKER_COUNT", 4),
		QueueSize:   getEnvInt("QUEUE_SIZE", 100),
		JobTTL:      getEnvDuration("JOB_TTL", 10*time.Minute),

		ProgressInterval: getEnvDuration("PROGRESS_INTERVAL", 300*time.Millisecond),
		ProgressStep:     getEnvInt("PROGRESS_STEP", 5),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:8080")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if u, err := url.Parse(cfg.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid BACKEND_URL: %q", cfg.BackendURL)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("WORKER_COUNT must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.ProgressStep <= 0 {
		return nil, fmt.Errorf("PROGRESS_STEP must be positive, got %d", cfg.ProgressStep)
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
