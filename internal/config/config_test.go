package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Crawler.MaxDepth)
	assert.Equal(t, 4, cfg.Crawler.Concurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.Crawler.RequestInterval)
	assert.Equal(t, 10*time.Second, cfg.Crawler.RequestTimeout)
	assert.Equal(t, "crawn/1.0", cfg.Crawler.UserAgent)
	assert.Equal(t, int64(0), cfg.Crawler.MaxPages)
	assert.False(t, cfg.Crawler.IncludeSubdomains)
	assert.False(t, cfg.Output.IncludeText)
	assert.False(t, cfg.Output.IncludeContent)
	assert.False(t, cfg.Logging.Verbose)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
crawler:
  max_depth: 2
  concurrency: 8
  request_interval: 1s
  user_agent: custom-agent/2.0
output:
  path: out.ndjson
  include_text: true
logging:
  verbose: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Crawler.MaxDepth)
	assert.Equal(t, 8, cfg.Crawler.Concurrency)
	assert.Equal(t, time.Second, cfg.Crawler.RequestInterval)
	assert.Equal(t, "custom-agent/2.0", cfg.Crawler.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Crawler.RequestTimeout, "unset keys keep their defaults")
	assert.Equal(t, "out.ndjson", cfg.Output.Path)
	assert.True(t, cfg.Output.IncludeText)
	assert.True(t, cfg.Logging.Verbose)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err, "an explicitly named config file must exist")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CRAWN_CRAWLER_MAX_DEPTH", "7")
	t.Setenv("CRAWN_CRAWLER_USER_AGENT", "env-agent/1.0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Crawler.MaxDepth)
	assert.Equal(t, "env-agent/1.0", cfg.Crawler.UserAgent)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Crawler: CrawlerConfig{
				MaxDepth:        4,
				Concurrency:     4,
				RequestInterval: 250 * time.Millisecond,
				RequestTimeout:  10 * time.Second,
			},
			Output: OutputConfig{Path: "out.ndjson"},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative depth", func(c *Config) { c.Crawler.MaxDepth = -1 }},
		{"zero concurrency", func(c *Config) { c.Crawler.Concurrency = 0 }},
		{"zero interval", func(c *Config) { c.Crawler.RequestInterval = 0 }},
		{"zero timeout", func(c *Config) { c.Crawler.RequestTimeout = 0 }},
		{"negative page budget", func(c *Config) { c.Crawler.MaxPages = -1 }},
		{"missing output path", func(c *Config) { c.Output.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
