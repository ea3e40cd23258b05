package ebay

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

const (
	defaultMaxPages       = 50
	defaultEmptyPageLimit = 5
)

// SearchFetcher fetches one search results page of HTML.
type SearchFetcher interface {
	FetchSearchPage(ctx context.Context, query string, page int) (string, error)
}

// Paginator walks search result pages for a query, handing each page's raw
// listings to a callback until the callback reports it has enough, the
// consecutive-empty-page threshold trips, the page cap is reached, or the
// fetcher runs dry.
type Paginator struct {
	fetcher        SearchFetcher
	logger         *log.Logger
	maxPages       int
	emptyPageLimit int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithMaxPages overrides the page cap.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxPages = n
	}
}

// WithEmptyPageLimit overrides the consecutive-empty-page threshold.
func WithEmptyPageLimit(n int) PaginatorOption {
	return func(p *Paginator) {
		p.emptyPageLimit = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *log.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(fetcher SearchFetcher, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		fetcher:        fetcher,
		maxPages:       defaultMaxPages,
		emptyPageLimit: defaultEmptyPageLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult holds the outcome of a paginated search.
type PaginateResult struct {
	TotalSeen int
	PagesUsed int
	StoppedAt string // "enough_results", "empty_page_limit", "max_pages", "budget_exhausted", "fetch_error"
}

// Paginate walks pages 1..maxPages. A fetch failure or budget exhaustion
// ends collection as an input-ended signal rather than an error; only
// context cancellation is surfaced.
func (p *Paginator) Paginate(
	ctx context.Context,
	query string,
	onPage func(listings []domain.RawListing) (done bool),
) (*PaginateResult, error) {
	result := &PaginateResult{}
	consecutiveEmpty := 0

	for page := 1; page <= p.maxPages; page++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		html, err := p.fetcher.FetchSearchPage(ctx, query, page)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			if errors.Is(err, ErrBudgetExhausted) {
				result.StoppedAt = "budget_exhausted"
				return result, nil
			}
			if p.logger != nil {
				p.logger.Warn("search page fetch failed, stopping",
					"page", page,
					"err", err,
				)
			}
			result.StoppedAt = "fetch_error"
			return result, nil
		}

		result.PagesUsed++

		listings, err := ParseSearchPage(html)
		if err != nil || len(listings) == 0 {
			consecutiveEmpty++
			if p.logger != nil {
				p.logger.Info("no listings on page",
					"page", page,
					"empty_pages", consecutiveEmpty,
					"limit", p.emptyPageLimit,
				)
			}
			if consecutiveEmpty >= p.emptyPageLimit {
				result.StoppedAt = "empty_page_limit"
				return result, nil
			}
			continue
		}

		consecutiveEmpty = 0
		result.TotalSeen += len(listings)

		if onPage(listings) {
			result.StoppedAt = "enough_results"
			return result, nil
		}
	}

	result.StoppedAt = "max_pages"
	return result, nil
}
