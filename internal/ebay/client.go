// Package ebay implements the search-results and item-page fetch
// collaborators: polite HTTP fetching, HTML extraction of raw listings,
// and pagination over search result pages.
package ebay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pip3-kill-me/ebay-scraper/internal/metrics"
)

const (
	defaultBaseURL   = "https://www.ebay.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:91.0) " +
		"Gecko/20100101 Firefox/91.0"

	// sortLowestFirst is eBay's "price + shipping: lowest first" sort.
	sortLowestFirst = "15"
)

// Client fetches eBay search and item pages over plain HTTP with
// browser-like headers.
type Client struct {
	baseURL     string
	userAgent   string
	client      *http.Client
	rateLimiter *RateLimiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the default eBay base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that paces fetches and enforces
// the per-run request budget. When set, every fetch goes through Wait()
// first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a new page-fetching client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchURL builds the search results URL for a keyword and 1-based page
// number, sorted lowest price first.
func (c *Client) SearchURL(query string, page int) string {
	params := url.Values{}
	params.Set("_nkw", query)
	params.Set("_sop", sortLowestFirst)
	params.Set("_pgn", strconv.Itoa(page))
	return c.baseURL + "/sch/i.html?" + params.Encode()
}

// FetchSearchPage fetches one search results page and returns its HTML.
func (c *Client) FetchSearchPage(ctx context.Context, query string, page int) (string, error) {
	return c.fetch(ctx, c.SearchURL(query, page))
}

// FetchItemPage fetches a single item page and returns its HTML.
func (c *Client) FetchItemPage(ctx context.Context, itemURL string) (string, error) {
	return c.fetch(ctx, itemURL)
}

func (c *Client) fetch(ctx context.Context, u string) (string, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrBudgetExhausted) {
				metrics.RequestBudgetHits.Inc()
			}
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(
		"Accept",
		"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.FetchErrorsTotal.Inc()
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, u)
	}

	metrics.PagesFetchedTotal.Inc()
	return string(body), nil
}
