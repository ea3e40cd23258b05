// Package cmd implements the ebay-scraper CLI commands.
package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pip3-kill-me/ebay-scraper/internal/config"
	"github.com/pip3-kill-me/ebay-scraper/internal/ebay"
	"github.com/pip3-kill-me/ebay-scraper/internal/engine"
	"github.com/pip3-kill-me/ebay-scraper/pkg/extract"
	"github.com/pip3-kill-me/ebay-scraper/pkg/normalize"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ebay-scraper",
	Short: "Find storage deals on eBay by price per terabyte",
	Long: "ebay-scraper searches eBay for storage listings, extracts capacity\n" +
		"and price from the title text (expanding multi-variation listings\n" +
		"into their individual configurations), and ranks the results by\n" +
		"price per terabyte within a target range.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	viper.SetEnvPrefix("EBAY_SCRAPER")
	viper.AutomaticEnv()

	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func newLogger(cfg config.LoggingConfig) *log.Logger {
	opts := log.Options{Level: parseLogLevel(cfg.Level)}
	logger := log.NewWithOptions(os.Stderr, opts)
	if cfg.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// newSlog bridges the CLI logger into the slog-based internals.
func newSlog(l *log.Logger) *slog.Logger {
	return slog.New(l)
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// buildAnalyzer wires the fetch collaborator and pipeline from config. The
// rate limiter is returned alongside so watch mode can restore the request
// budget before each scheduled run.
func buildAnalyzer(cfg *config.Config, logger *log.Logger) (*engine.Analyzer, *ebay.RateLimiter) {
	limiter := ebay.NewRateLimiter(
		cfg.Scraper.RateLimit.PerSecond,
		cfg.Scraper.RateLimit.Burst,
		cfg.Scraper.RateLimit.MaxPerRun,
	)

	client := ebay.NewClient(
		ebay.WithBaseURL(cfg.Scraper.BaseURL),
		ebay.WithUserAgent(cfg.Scraper.UserAgent),
		ebay.WithHTTPClient(&http.Client{Timeout: cfg.Scraper.Timeout}),
		ebay.WithRateLimiter(limiter),
	)

	paginator := ebay.NewPaginator(
		client,
		ebay.WithMaxPages(cfg.Scraper.MaxPages),
		ebay.WithEmptyPageLimit(cfg.Scraper.EmptyPageLimit),
		ebay.WithPaginatorLogger(logger),
	)

	slogger := newSlog(logger)

	normalizer := normalize.New(
		normalize.WithCapacityParser(extract.NewCapacityParser(
			extract.WithPlausibleRange(cfg.Capacity.MinTB, cfg.Capacity.MaxTB),
		)),
		normalize.WithLogger(slogger),
	)

	analyzer := engine.NewAnalyzer(
		paginator,
		client,
		engine.WithNormalizer(normalizer),
		engine.WithLogger(slogger),
	)
	return analyzer, limiter
}
