package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CrawlerConfig holds crawl engine settings.
type CrawlerConfig struct {
	MaxDepth          int           `mapstructure:"max_depth"`
	Concurrency       int           `mapstructure:"concurrency"`
	RequestInterval   time.Duration `mapstructure:"request_interval"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	MaxPages          int64         `mapstructure:"max_pages"`
	IncludeSubdomains bool          `mapstructure:"include_subdomains"`
}

// OutputConfig controls the NDJSON sink and optional record fields.
type OutputConfig struct {
	Path           string `mapstructure:"path"`
	IncludeText    bool   `mapstructure:"include_text"`
	IncludeContent bool   `mapstructure:"include_content"`
}

// LoggingConfig selects the log destination and verbosity.
type LoggingConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	File    string `mapstructure:"file"`
}

// Load reads configuration from an optional YAML file and CRAWN_* env
// variables, applying defaults for everything unset. A missing file is an
// error only when a path was given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.crawn")
	}

	setDefaults(v)

	v.SetEnvPrefix("CRAWN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.max_depth", 4)
	v.SetDefault("crawler.concurrency", 4)
	v.SetDefault("crawler.request_interval", "250ms")
	v.SetDefault("crawler.request_timeout", "10s")
	v.SetDefault("crawler.user_agent", "crawn/1.0")
	v.SetDefault("crawler.max_pages", 0)
	v.SetDefault("crawler.include_subdomains", false)
	v.SetDefault("output.include_text", false)
	v.SetDefault("output.include_content", false)
	v.SetDefault("logging.verbose", false)
	v.SetDefault("logging.file", "")
}

// Validate rejects configurations the crawler cannot run with.
func (c *Config) Validate() error {
	if c.Crawler.MaxDepth < 0 {
		return fmt.Errorf("crawler.max_depth must be non-negative")
	}
	if c.Crawler.Concurrency <= 0 {
		return fmt.Errorf("crawler.concurrency must be positive")
	}
	if c.Crawler.RequestInterval <= 0 {
		return fmt.Errorf("crawler.request_interval must be positive")
	}
	if c.Crawler.RequestTimeout <= 0 {
		return fmt.Errorf("crawler.request_timeout must be positive")
	}
	if c.Crawler.MaxPages < 0 {
		return fmt.Errorf("crawler.max_pages must be non-negative")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	return nil
}
