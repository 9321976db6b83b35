package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
finnhub:
  api_key: "file-key"
  max_request_per_minute: 30
scanner:
  max_concurrent_symbols: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Finnhub.APIKey)
	assert.Equal(t, 30, cfg.Finnhub.MaxRequestPerMinute)
	assert.Equal(t, 8, cfg.Scanner.MaxConcurrentSymbols)

	// untouched keys keep their defaults
	assert.Equal(t, time.Minute, cfg.Finnhub.Window)
	assert.Equal(t, 3, cfg.Finnhub.MaxRetries)
	assert.Equal(t, time.Second, cfg.Finnhub.InitialBackoff)
	assert.Equal(t, 3600*time.Second, cfg.Finnhub.ProfileTTL)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "3mo", cfg.YahooFinance.Range)
}
