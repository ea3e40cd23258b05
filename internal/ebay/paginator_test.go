package ebay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// fakeFetcher serves canned HTML per page number; pages beyond the script
// return errors.
type fakeFetcher struct {
	pages   map[int]string
	errs    map[int]error
	fetched []int
}

func (f *fakeFetcher) FetchSearchPage(_ context.Context, _ string, page int) (string, error) {
	f.fetched = append(f.fetched, page)
	if err, ok := f.errs[page]; ok {
		return "", err
	}
	if html, ok := f.pages[page]; ok {
		return html, nil
	}
	return "", errors.New("no such page")
}

func resultsPage(rows int) string {
	page := `<ul class="srp-results">`
	for i := range rows {
		page += fmt.Sprintf(
			`<li class="s-item"><a class="s-item__link" href="https://www.ebay.com/itm/%d">`+
				`<div class="s-item__title">Disk %dTB</div></a>`+
				`<span class="s-item__price">$50.00</span></li>`,
			i+1, i+1,
		)
	}
	return page + `</ul>`
}

const emptyPage = `<ul class="srp-results"></ul>`

func TestPaginator_StopsWhenCallbackIsDone(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{pages: map[int]string{
		1: resultsPage(3),
		2: resultsPage(3),
		3: resultsPage(3),
	}}
	p := NewPaginator(f)

	var seen []domain.RawListing
	res, err := p.Paginate(context.Background(), "ssd", func(listings []domain.RawListing) bool {
		seen = append(seen, listings...)
		return len(seen) >= 5
	})

	require.NoError(t, err)
	assert.Equal(t, "enough_results", res.StoppedAt)
	assert.Equal(t, 6, res.TotalSeen)
	assert.Equal(t, 2, res.PagesUsed)
	assert.Equal(t, []int{1, 2}, f.fetched)
}

func TestPaginator_EmptyPageLimit(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{pages: map[int]string{
		1: resultsPage(2),
		2: emptyPage,
		3: emptyPage,
	}}
	p := NewPaginator(f, WithEmptyPageLimit(2), WithMaxPages(10))

	res, err := p.Paginate(context.Background(), "ssd", func([]domain.RawListing) bool {
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, "empty_page_limit", res.StoppedAt)
	assert.Equal(t, 2, res.TotalSeen)
	assert.Equal(t, 3, res.PagesUsed)
}

func TestPaginator_EmptyRunResetByResults(t *testing.T) {
	t.Parallel()

	// An interleaved non-empty page resets the consecutive-empty counter.
	f := &fakeFetcher{pages: map[int]string{
		1: emptyPage,
		2: resultsPage(1),
		3: emptyPage,
		4: emptyPage,
	}}
	p := NewPaginator(f, WithEmptyPageLimit(2), WithMaxPages(10))

	res, err := p.Paginate(context.Background(), "ssd", func([]domain.RawListing) bool {
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, "empty_page_limit", res.StoppedAt)
	assert.Equal(t, 4, res.PagesUsed)
}

func TestPaginator_MaxPages(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{pages: map[int]string{
		1: resultsPage(1),
		2: resultsPage(1),
	}}
	p := NewPaginator(f, WithMaxPages(2))

	res, err := p.Paginate(context.Background(), "ssd", func([]domain.RawListing) bool {
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, "max_pages", res.StoppedAt)
	assert.Equal(t, 2, res.TotalSeen)
}

func TestPaginator_BudgetExhaustedIsNotAnError(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		pages: map[int]string{1: resultsPage(2)},
		errs:  map[int]error{2: fmt.Errorf("rate limit: %w", ErrBudgetExhausted)},
	}
	p := NewPaginator(f)

	res, err := p.Paginate(context.Background(), "ssd", func([]domain.RawListing) bool {
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, "budget_exhausted", res.StoppedAt)
	assert.Equal(t, 2, res.TotalSeen)
}

func TestPaginator_FetchErrorEndsInput(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		pages: map[int]string{1: resultsPage(2)},
		errs:  map[int]error{2: errors.New("connection reset")},
	}
	p := NewPaginator(f)

	res, err := p.Paginate(context.Background(), "ssd", func([]domain.RawListing) bool {
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, "fetch_error", res.StoppedAt)
	assert.Equal(t, 2, res.TotalSeen)
}

func TestPaginator_ContextCancellationSurfaces(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{pages: map[int]string{1: resultsPage(1)}}
	p := NewPaginator(f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Paginate(ctx, "ssd", func([]domain.RawListing) bool {
		return false
	})
	assert.ErrorIs(t, err, context.Canceled)
}
