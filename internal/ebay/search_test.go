package ebay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPageHTML = `<!DOCTYPE html>
<html><body>
<ul class="srp-results srp-list clearfix">
  <li class="s-item s-item__pl-on-bottom">
    <a class="s-item__link" href="https://www.ebay.com/itm/111">
      <div class="s-item__title"><span>Samsung 990 Pro 2TB NVMe SSD</span></div>
    </a>
    <span class="s-item__price">$129.99</span>
  </li>
  <li class="s-item">
    <a class="s-item__link" href="https://www.ebay.com/itm/222">
      <h3 class="s-item__title">Crucial MX500 1TB SSD</h3>
    </a>
    <span class="s-item__price">$45.00 to $89.00</span>
  </li>
  <li class="s-item">
    <div class="s-item__title">Listing without a link</div>
    <span class="s-item__price">$10.00</span>
  </li>
</ul>
</body></html>`

func TestParseSearchPage(t *testing.T) {
	t.Parallel()

	listings, err := ParseSearchPage(searchPageHTML)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "Samsung 990 Pro 2TB NVMe SSD", listings[0].Title)
	assert.Equal(t, "$129.99", listings[0].DisplayPrice)
	assert.Equal(t, "https://www.ebay.com/itm/111", listings[0].ItemURL)
	assert.False(t, listings[0].IsMultiVariation())

	// h3-styled title layout and a price range row.
	assert.Equal(t, "Crucial MX500 1TB SSD", listings[1].Title)
	assert.Equal(t, "$45.00 to $89.00", listings[1].DisplayPrice)
	assert.True(t, listings[1].IsMultiVariation())
}

func TestParseSearchPage_NoResultsContainer(t *testing.T) {
	t.Parallel()

	listings, err := ParseSearchPage(`<html><body><p>captcha wall</p></body></html>`)
	assert.NoError(t, err)
	assert.Empty(t, listings)
}

func TestParseSearchPage_EmptyContainer(t *testing.T) {
	t.Parallel()

	listings, err := ParseSearchPage(`<html><body><ul class="srp-results"></ul></body></html>`)
	assert.NoError(t, err)
	assert.Empty(t, listings)
}
