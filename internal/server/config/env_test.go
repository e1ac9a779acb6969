package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotenvFiles(t *testing.T, files ...string) {
	t.Helper()
	orig := dotenvFiles
	dotenvFiles = files
	t.Cleanup(func() { dotenvFiles = orig })
}

func TestParseEnv_OverlaysValues(t *testing.T) {
	withDotenvFiles(t)

	t.Setenv("DATABASE_URL", "postgres://env/papers")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("MAX_PDF_BYTES", "4096")
	t.Setenv("ALLOW_LOCAL_PDF_HOSTS", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "postgres://env/papers", c.DatabaseDSN)
	assert.Equal(t, "redis", c.CacheBackend)
	assert.Equal(t, "cache:6379", c.RedisAddr)
	assert.Equal(t, 20, c.RateLimit)
	assert.Equal(t, time.Minute, c.RateLimitWindow)
	assert.Equal(t, int64(4096), c.MaxPDFBytes)
	assert.True(t, c.AllowLocalPDFHosts)
	assert.Equal(t, "sk-test", c.OpenAIAPIKey)
}

func TestParseEnv_LoadsDotenvWithoutOverridingProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUMMARY_MODEL=from-file\nLOG_LEVEL=debug\n"), 0o600))
	withDotenvFiles(t, path)

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SUMMARY_MODEL", "")
	require.NoError(t, os.Unsetenv("SUMMARY_MODEL"))

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "from-file", c.SummaryModel)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestParseEnv_MissingDotenvIsIgnored(t *testing.T) {
	withDotenvFiles(t, filepath.Join(t.TempDir(), "absent.env"))

	var c Config
	c.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(&c) })
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	withDotenvFiles(t)
	t.Setenv("RATE_LIMIT", "ten")

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseEnv(&c) })
}
