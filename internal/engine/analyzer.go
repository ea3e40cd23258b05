// Package engine drives the analysis pipeline: collecting listings from
// the fetch collaborator, normalizing them, and ranking the deals.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pip3-kill-me/ebay-scraper/internal/ebay"
	"github.com/pip3-kill-me/ebay-scraper/internal/metrics"
	"github.com/pip3-kill-me/ebay-scraper/pkg/normalize"
	"github.com/pip3-kill-me/ebay-scraper/pkg/rank"
	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// Pager walks search result pages, handing each page's listings to the
// callback until it reports done.
type Pager interface {
	Paginate(
		ctx context.Context,
		query string,
		onPage func(listings []domain.RawListing) bool,
	) (*ebay.PaginateResult, error)
}

// ItemFetcher fetches a single item page's HTML for variation payload
// extraction.
type ItemFetcher interface {
	FetchItemPage(ctx context.Context, itemURL string) (string, error)
}

// Request holds one analysis run's criteria. The keyword is opaque to the
// pipeline and passed through to the fetch collaborator.
type Request struct {
	Query    string
	MinPerTB float64
	MaxPerTB float64
	Wanted   int
}

func (r *Request) validate() error {
	if r.Query == "" {
		return fmt.Errorf("query must not be empty")
	}
	if r.MinPerTB <= 0 || r.MaxPerTB <= 0 {
		return fmt.Errorf("price-per-TB bounds must be > 0")
	}
	if r.MinPerTB > r.MaxPerTB {
		return fmt.Errorf("min price per TB %.2f exceeds max %.2f", r.MinPerTB, r.MaxPerTB)
	}
	if r.Wanted < 1 {
		return fmt.Errorf("wanted must be >= 1")
	}
	return nil
}

// RunResult is the outcome of one analysis run. Ranked holds the final
// ordered deal list; Drops every rejection with its reason. An empty
// Ranked slice is a normal outcome, not an error.
type RunResult struct {
	RunID         string
	Request       Request
	StartedAt     time.Time
	Duration      time.Duration
	Ranked        []domain.Deal
	Drops         []domain.Drop
	TotalAnalyzed int
	ListingsSeen  int
	PagesWalked   int
	StoppedAt     string
}

// Analyzer orchestrates one run of the pipeline: Collecting, Normalizing,
// Ranking. All pipeline state is threaded through the run explicitly;
// fetches are serial and the extraction core never blocks.
type Analyzer struct {
	pager      Pager
	items      ItemFetcher
	normalizer *normalize.Normalizer
	log        *slog.Logger
}

// AnalyzerOption configures the Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.log = l
	}
}

// WithNormalizer overrides the default normalizer.
func WithNormalizer(n *normalize.Normalizer) AnalyzerOption {
	return func(a *Analyzer) {
		a.normalizer = n
	}
}

// NewAnalyzer creates an Analyzer. items may be nil, in which case
// multi-variation listings are analyzed from their search-row text alone.
func NewAnalyzer(pager Pager, items ItemFetcher, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		pager:      pager,
		items:      items,
		normalizer: normalize.New(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one analysis. Collection stops as soon as the in-band,
// deduplicated deal count reaches Wanted, or the pager signals exhaustion.
// Only request validation and context cancellation produce errors; a run
// that finds nothing returns an empty ranked list.
func (a *Analyzer) Run(ctx context.Context, req Request) (*RunResult, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()
	result := &RunResult{
		RunID:     uuid.NewString(),
		Request:   req,
		StartedAt: start,
	}

	var analyzed []domain.Deal

	pageRes, err := a.pager.Paginate(ctx, req.Query, func(listings []domain.RawListing) bool {
		for i := range listings {
			metrics.ListingsSeenTotal.Inc()
			deals, drops := a.normalizer.Normalize(a.withVariations(ctx, listings[i]))

			analyzed = append(analyzed, deals...)
			result.Drops = append(result.Drops, drops...)
			metrics.DealsEmittedTotal.Add(float64(len(deals)))
			for _, d := range drops {
				metrics.ListingsDroppedTotal.WithLabelValues(string(d.Reason)).Inc()
			}
		}

		matched := rank.MatchCount(analyzed, req.MinPerTB, req.MaxPerTB)
		a.log.Info("page analyzed",
			"analyzed", len(analyzed),
			"matched", matched,
			"wanted", req.Wanted,
		)
		return matched >= req.Wanted
	})
	if err != nil {
		return nil, fmt.Errorf("collecting listings: %w", err)
	}

	result.Ranked = rank.Rank(analyzed, req.MinPerTB, req.MaxPerTB, req.Wanted)
	result.TotalAnalyzed = len(analyzed)
	result.ListingsSeen = pageRes.TotalSeen
	result.PagesWalked = pageRes.PagesUsed
	result.StoppedAt = pageRes.StoppedAt
	result.Duration = time.Since(start)

	metrics.RunsTotal.Inc()
	metrics.RunDuration.Observe(result.Duration.Seconds())

	return result, nil
}

// withVariations fetches the item page for multi-variation listings and
// attaches the opaque variation payload. Fetch or extraction failure leaves
// the listing as-is: the normalizer's search-row fallback still applies.
func (a *Analyzer) withVariations(ctx context.Context, l domain.RawListing) domain.RawListing {
	if a.items == nil || !l.IsMultiVariation() {
		return l
	}

	html, err := a.items.FetchItemPage(ctx, l.ItemURL)
	if err != nil {
		a.log.Warn("item page fetch failed",
			"title", l.Title,
			"err", err,
		)
		return l
	}

	if payload, ok := ebay.VariationPayload(html); ok {
		l.VariationPayload = payload
	}
	return l
}
