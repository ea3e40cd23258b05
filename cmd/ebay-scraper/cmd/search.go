package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pip3-kill-me/ebay-scraper/internal/config"
	"github.com/pip3-kill-me/ebay-scraper/internal/engine"
	"github.com/pip3-kill-me/ebay-scraper/internal/report"
)

var (
	flagMinPerTB float64
	flagMaxPerTB float64
	flagResults  int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one price-per-TB analysis",
	Long: "Searches eBay for the query, extracts capacity and price from each\n" +
		"listing, and prints the deals ranked by price per terabyte. Appends a\n" +
		"run section to the markdown log and renders the charts page.",
	Example: `  ebay-scraper search "nvme ssd" --min-per-tb 20 --max-per-tb 100 --results 10
  ebay-scraper search "3.5 sata hdd" --max-per-tb 15`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().
		Float64Var(&flagMinPerTB, "min-per-tb", 0, "minimum acceptable price per TB (default from config)")
	searchCmd.Flags().
		Float64Var(&flagMaxPerTB, "max-per-tb", 0, "maximum acceptable price per TB (default from config)")
	searchCmd.Flags().
		IntVar(&flagResults, "results", 0, "desired number of valid results (default from config)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging)
	analyzer, _ := buildAnalyzer(cfg, logger)

	req := searchRequest(cfg, args[0])
	logger.Info("starting analysis",
		"query", req.Query,
		"min_per_tb", req.MinPerTB,
		"max_per_tb", req.MaxPerTB,
		"wanted", req.Wanted,
	)

	result, err := analyzer.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	return writeReports(cfg, result)
}

// searchRequest merges config defaults with any flags the user set.
func searchRequest(cfg *config.Config, query string) engine.Request {
	req := engine.Request{
		Query:    query,
		MinPerTB: cfg.Search.MinPerTB,
		MaxPerTB: cfg.Search.MaxPerTB,
		Wanted:   cfg.Search.Results,
	}
	if flagMinPerTB > 0 {
		req.MinPerTB = flagMinPerTB
	}
	if flagMaxPerTB > 0 {
		req.MaxPerTB = flagMaxPerTB
	}
	if flagResults > 0 {
		req.Wanted = flagResults
	}
	return req
}

func writeReports(cfg *config.Config, result *engine.RunResult) error {
	mdLog := report.NewMarkdownLog(cfg.Report.LogPath)
	if err := mdLog.Append(runInfo(result), result.Ranked, result.Drops); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}

	if len(result.Ranked) == 0 {
		fmt.Printf("No deals matched the $%.2f to $%.2f per-TB range (%d listings analyzed).\n",
			result.Request.MinPerTB, result.Request.MaxPerTB, result.TotalAnalyzed)
		return nil
	}

	if err := report.WriteCharts(
		cfg.Report.ChartsPath,
		result.Ranked,
		cfg.Report.ChartTopN,
	); err != nil {
		return fmt.Errorf("writing charts: %w", err)
	}

	if jsonOutput() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Ranked)
	}

	fmt.Printf("Found %d deals matching your criteria:\n\n", len(result.Ranked))
	if err := report.PrintDealsTable(os.Stdout, result.Ranked); err != nil {
		return err
	}
	fmt.Printf("\nRun log: %s, charts: %s\n", cfg.Report.LogPath, cfg.Report.ChartsPath)
	return nil
}

func runInfo(result *engine.RunResult) report.RunInfo {
	return report.RunInfo{
		RunID:         result.RunID,
		Query:         result.Request.Query,
		MinPerTB:      result.Request.MinPerTB,
		MaxPerTB:      result.Request.MaxPerTB,
		Wanted:        result.Request.Wanted,
		StartedAt:     result.StartedAt,
		StoppedAt:     result.StoppedAt,
		PagesWalked:   result.PagesWalked,
		TotalAnalyzed: result.TotalAnalyzed,
	}
}
