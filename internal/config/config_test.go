package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("RESULT_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, DefaultBackendURL)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.ResultTTL != 24*time.Hour {
		t.Errorf("ResultTTL = %v, want 24h", cfg.ResultTTL)
	}
	if cfg.MaxUploadBytes != 5*1024*1024 {
		t.Errorf("MaxUploadBytes = %d, want 5MiB", cfg.MaxUploadBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com/")
	t.Setenv("PUBLIC_URL", "https://rizz.example.com/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("PROGRESS_INTERVAL", "50ms")
	t.Setenv("WORKER_COUNT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("BackendURL = %q, want trailing slash trimmed", cfg.BackendURL)
	}
	if cfg.PublicURL != "https://rizz.example.com" {
		t.Errorf("PublicURL = %q", cfg.PublicURL)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.ProgressInterval != 50*time.Millisecond {
		t.Errorf("ProgressInterval = %v", cfg.ProgressInterval)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want fallback 4", cfg.WorkerCount)
	}
}

func TestLoad_InvalidBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "localhost-without-scheme")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for BACKEND_URL without scheme")
	}
}
