package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DataDir      string
	DefaultLang  string
	DatabasePath string
	RunRetention time.Duration
	NotifyURLs   []string
}

// Load reads env vars and falls back to defaults so the server can boot with
// zero configuration. A .env file in the working directory is honored when
// present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:  getEnv("APP_ENV", "development"),
		HTTPPort:     getEnv("HTTP_PORT", "5000"),
		DataDir:      getEnv("DATA_DIR", "data"),
		DefaultLang:  getEnv("DEFAULT_LANG", "ru"),
		DatabasePath: getEnv("DB_PATH", filepath.Join("data", "runs.db")),
		NotifyURLs:   splitList(os.Getenv("NOTIFY_URLS")),
	}

	retention := getEnv("RUN_RETENTION", "720h")
	d, err := time.ParseDuration(retention)
	if err != nil {
		return Config{}, fmt.Errorf("parse RUN_RETENTION %q: %w", retention, err)
	}
	cfg.RunRetention = d

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
