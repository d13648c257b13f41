package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.reclameaqui.com.br", cfg.ReclameAqui.SiteURL)
	assert.Equal(t, "https://iosearch.reclameaqui.com.br/raichu-io-site-search-v1", cfg.ReclameAqui.SearchAPIURL)
	assert.Equal(t, "https://iosite.reclameaqui.com.br/raichu-io-site-v1", cfg.ReclameAqui.CompanyAPIURL)
	assert.Equal(t, 30, cfg.ReclameAqui.TimeoutSecs)
	assert.Equal(t, 20, cfg.Collect.FetchTimeoutSecs)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
reclameaqui:
  site_url: http://localhost:9001
  timeout_secs: 10
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9001", cfg.ReclameAqui.SiteURL)
	assert.Equal(t, 10, cfg.ReclameAqui.TimeoutSecs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, 20, cfg.Collect.FetchTimeoutSecs)
	assert.Equal(t, "https://iosearch.reclameaqui.com.br/raichu-io-site-search-v1", cfg.ReclameAqui.SearchAPIURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("REPUTATION_LOG_LEVEL", "warn")
	t.Setenv("REPUTATION_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("REPUTATION_COLLECT_FETCH_TIMEOUT_SECS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Collect.FetchTimeoutSecs)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config that passes validation for every mode.
func validDefaults() *Config {
	return &Config{
		ReclameAqui: ReclameAquiConfig{
			SiteURL:       "https://www.reclameaqui.com.br",
			SearchAPIURL:  "https://iosearch.reclameaqui.com.br/raichu-io-site-search-v1",
			CompanyAPIURL: "https://iosite.reclameaqui.com.br/raichu-io-site-v1",
			TimeoutSecs:   30,
		},
		Collect: CollectConfig{FetchTimeoutSecs: 20},
		Server:  ServerConfig{Port: 8000},
	}
}

func TestValidateSearch_AllPresent(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("search"))
}

func TestValidateSearch_MissingURLs(t *testing.T) {
	cfg := validDefaults()
	cfg.ReclameAqui.SearchAPIURL = ""
	cfg.ReclameAqui.CompanyAPIURL = ""

	err := cfg.Validate("search")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reclameaqui.search_api_url is required")
	assert.Contains(t, err.Error(), "reclameaqui.company_api_url is required")
}

func TestValidateTimeoutBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.ReclameAqui.TimeoutSecs = 0
	err := cfg.Validate("search")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_secs must be between 1 and 300")

	cfg = validDefaults()
	cfg.Collect.FetchTimeoutSecs = 301
	err = cfg.Validate("search")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch_timeout_secs must be between 1 and 300")
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateSearch_IgnoresPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	assert.NoError(t, cfg.Validate("search"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
