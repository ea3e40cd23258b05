package ebay

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// ParseSearchPage extracts raw listings from a search results page.
// Upstream markup changes are expected: a page whose result container
// cannot be located parses as empty, and individual rows missing a title
// or URL are skipped. The caller treats an empty page as a signal, never
// an error.
func ParseSearchPage(html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	container := doc.Find(`ul[class*="srp-results"]`)
	if container.Length() == 0 {
		return nil, nil
	}

	var listings []domain.RawListing
	container.Find(`li[class*="s-item"]`).Each(func(_ int, item *goquery.Selection) {
		title := itemTitle(item)
		itemURL, hasURL := item.Find(`a[class*="s-item__link"]`).First().Attr("href")
		if title == "" || !hasURL || itemURL == "" {
			return
		}

		price := strings.TrimSpace(
			item.Find(`span[class*="s-item__price"]`).First().Text(),
		)

		listings = append(listings, domain.RawListing{
			Title:        title,
			DisplayPrice: price,
			ItemURL:      itemURL,
		})
	})

	return listings, nil
}

// itemTitle reads the row title, which eBay renders either as a div or,
// on some layouts, an h3.
func itemTitle(item *goquery.Selection) string {
	title := strings.TrimSpace(item.Find(`div[class*="s-item__title"]`).First().Text())
	if title == "" {
		title = strings.TrimSpace(item.Find(`h3[class*="s-item__title"]`).First().Text())
	}
	return title
}
