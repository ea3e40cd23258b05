// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Scraper       ScraperConfig       `yaml:"scraper"`
	Capacity      CapacityConfig      `yaml:"capacity"`
	Search        SearchConfig        `yaml:"search"`
	Report        ReportConfig        `yaml:"report"`
	Watch         WatchConfig         `yaml:"watch"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ScraperConfig defines eBay page fetching settings.
type ScraperConfig struct {
	BaseURL        string          `yaml:"base_url"`
	UserAgent      string          `yaml:"user_agent"`
	Timeout        time.Duration   `yaml:"timeout"`
	MaxPages       int             `yaml:"max_pages"`
	EmptyPageLimit int             `yaml:"empty_page_limit"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines polite-fetching limits.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
	MaxPerRun int64   `yaml:"max_per_run"`
}

// CapacityConfig defines the capacity plausibility band in terabytes.
type CapacityConfig struct {
	MinTB float64 `yaml:"min_tb"`
	MaxTB float64 `yaml:"max_tb"`
}

// SearchConfig defines default search criteria, overridable by CLI flags.
type SearchConfig struct {
	MinPerTB float64 `yaml:"min_per_tb"`
	MaxPerTB float64 `yaml:"max_per_tb"`
	Results  int     `yaml:"results"`
}

// ReportConfig defines report output settings.
type ReportConfig struct {
	LogPath    string `yaml:"log_path"`
	ChartsPath string `yaml:"charts_path"`
	ChartTopN  int    `yaml:"chart_top_n"`
}

// WatchConfig defines periodic re-run settings.
type WatchConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// Expand environment variables in the YAML content.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyScraperDefaults(&cfg.Scraper)
	applyCapacityDefaults(&cfg.Capacity)
	applySearchDefaults(&cfg.Search)
	applyReportDefaults(&cfg.Report)
	applyWatchDefaults(&cfg.Watch)
	applyLoggingDefaults(&cfg.Logging)
}

func applyScraperDefaults(s *ScraperConfig) {
	if s.BaseURL == "" {
		s.BaseURL = "https://www.ebay.com"
	}
	if s.UserAgent == "" {
		s.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:91.0) " +
			"Gecko/20100101 Firefox/91.0"
	}
	if s.Timeout == 0 {
		s.Timeout = 15 * time.Second
	}
	if s.MaxPages == 0 {
		s.MaxPages = 50
	}
	if s.EmptyPageLimit == 0 {
		s.EmptyPageLimit = 5
	}
	applyRateLimitDefaults(&s.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		// Roughly one request every three seconds, matching the polite
		// delay eBay tolerates without bot detection kicking in.
		r.PerSecond = 0.33
	}
	if r.Burst == 0 {
		r.Burst = 1
	}
	if r.MaxPerRun == 0 {
		r.MaxPerRun = 200
	}
}

func applyCapacityDefaults(c *CapacityConfig) {
	if c.MinTB == 0 {
		c.MinTB = 0.1
	}
	if c.MaxTB == 0 {
		c.MaxTB = 100
	}
}

func applySearchDefaults(s *SearchConfig) {
	if s.MinPerTB == 0 {
		s.MinPerTB = 20
	}
	if s.MaxPerTB == 0 {
		s.MaxPerTB = 100
	}
	if s.Results == 0 {
		s.Results = 10
	}
}

func applyReportDefaults(r *ReportConfig) {
	if r.LogPath == "" {
		r.LogPath = "analysis_log.md"
	}
	if r.ChartsPath == "" {
		r.ChartsPath = "analysis_charts.html"
	}
	if r.ChartTopN == 0 {
		r.ChartTopN = 20
	}
}

func applyWatchDefaults(w *WatchConfig) {
	if w.Interval == 0 {
		w.Interval = time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Capacity.MinTB <= 0 {
		errs = append(errs, fmt.Errorf("capacity.min_tb must be > 0"))
	}
	if cfg.Capacity.MaxTB <= cfg.Capacity.MinTB {
		errs = append(errs, fmt.Errorf("capacity.max_tb must exceed capacity.min_tb"))
	}

	if cfg.Search.MinPerTB <= 0 {
		errs = append(errs, fmt.Errorf("search.min_per_tb must be > 0"))
	}
	if cfg.Search.MaxPerTB < cfg.Search.MinPerTB {
		errs = append(errs, fmt.Errorf("search.max_per_tb must be >= search.min_per_tb"))
	}
	if cfg.Search.Results < 1 {
		errs = append(errs, fmt.Errorf("search.results must be >= 1"))
	}

	if cfg.Scraper.EmptyPageLimit < 1 {
		errs = append(errs, fmt.Errorf("scraper.empty_page_limit must be >= 1"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	return errors.Join(errs...)
}
