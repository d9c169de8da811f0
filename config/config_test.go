package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingAPIURL(t *testing.T) {
	t.Setenv("SEMINAR_API_URL", "")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrAPIURLMissing))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SEMINAR_API_URL", "https://api.example.com/seminars")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AWS_S3_PHOTOS_BUCKET", "")
	t.Setenv("DASHBOARD_PAGE_SIZE", "")
	t.Setenv("SEMINAR_API_TIMEOUT_SEC", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/seminars", cfg.Store.BaseURL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Dashboard.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.AWS.PhotosBucket)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEMINAR_API_URL", "  http://localhost:3001/seminars  ")
	t.Setenv("SEMINAR_API_TIMEOUT_SEC", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DASHBOARD_PAGE_SIZE", "notanumber")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/seminars", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Dashboard.PageSize)
}
