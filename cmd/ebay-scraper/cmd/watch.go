package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pip3-kill-me/ebay-scraper/internal/config"
	"github.com/pip3-kill-me/ebay-scraper/internal/engine"
	"github.com/pip3-kill-me/ebay-scraper/internal/notify"
)

var watchCmd = &cobra.Command{
	Use:   "watch <query>",
	Short: "Re-run an analysis on a schedule and notify on hits",
	Long: "Runs the analysis immediately and then on the configured interval,\n" +
		"appending each run to the markdown log and sending the ranked deals\n" +
		"to the configured notification targets.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().
		Float64Var(&flagMinPerTB, "min-per-tb", 0, "minimum acceptable price per TB (default from config)")
	watchCmd.Flags().
		Float64Var(&flagMaxPerTB, "max-per-tb", 0, "maximum acceptable price per TB (default from config)")
	watchCmd.Flags().
		IntVar(&flagResults, "results", 0, "desired number of valid results (default from config)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging)
	analyzer, limiter := buildAnalyzer(cfg, logger)
	req := searchRequest(cfg, args[0])

	var notifier notify.Notifier
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(
			cfg.Notifications.Discord.WebhookURL,
			notify.WithBand(req.MinPerTB, req.MaxPerTB),
		)
	}

	if cfg.Watch.MetricsAddr != "" {
		startMetricsServer(cfg.Watch.MetricsAddr, logger)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	task := func() {
		limiter.Reset()
		runOnce(ctx, cfg, analyzer, notifier, req, logger)
	}

	scheduler, err := engine.NewScheduler(cfg.Watch.Interval, task, newSlog(logger))
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	// First run straight away; the schedule covers subsequent runs.
	task()
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	<-scheduler.Stop().Done()
	logger.Info("watch stopped")
	return nil
}

func runOnce(
	ctx context.Context,
	cfg *config.Config,
	analyzer *engine.Analyzer,
	notifier notify.Notifier,
	req engine.Request,
	logger *log.Logger,
) {
	result, err := analyzer.Run(ctx, req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("analysis run failed", "err", err)
		}
		return
	}

	if err := writeReports(cfg, result); err != nil {
		logger.Error("writing reports failed", "err", err)
	}

	if notifier == nil || len(result.Ranked) == 0 {
		return
	}

	notifyCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := notifier.SendDeals(notifyCtx, req.Query, result.Ranked); err != nil {
		logger.Error("notification failed", "err", err)
	}
}

func startMetricsServer(addr string, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "err", err)
		}
	}()
}
