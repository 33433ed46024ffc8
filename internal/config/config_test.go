package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "runs.db"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "ru", cfg.DefaultLang)
	assert.Equal(t, 720*time.Hour, cfg.RunRetention)
	assert.Empty(t, cfg.NotifyURLs)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("DEFAULT_LANG", "en")
	t.Setenv("DB_PATH", filepath.Join(dir, "runs.db"))
	t.Setenv("RUN_RETENTION", "24h")
	t.Setenv("NOTIFY_URLS", "discord://token@id , telegram://token@telegram?chats=1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, 24*time.Hour, cfg.RunRetention)
	assert.Equal(t, []string{"discord://token@id", "telegram://token@telegram?chats=1"}, cfg.NotifyURLs)
}

func TestLoadRejectsBadRetention(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "runs.db"))
	t.Setenv("RUN_RETENTION", "soon")

	_, err := Load()
	assert.Error(t, err)
}
