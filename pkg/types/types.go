// Package domain defines the core business types for the eBay price-per-TB
// deal analyzer.
package domain

import "strings"

// RawListing is a single search-result entry as delivered by the fetch
// collaborator. The text fields are already decoded; the variation payload,
// when present, is the opaque per-option JSON lifted from the item page.
type RawListing struct {
	Title            string `json:"title"`
	DisplayPrice     string `json:"display_price"`
	VariationPayload string `json:"variation_payload,omitempty"`
	ItemURL          string `json:"item_url"`
}

// IsMultiVariation reports whether the display price is a range
// ("$89.99 to $349.99"), which on eBay marks a listing with multiple
// purchasable configurations whose real prices live on the item page.
func (l *RawListing) IsMultiVariation() bool {
	return strings.Contains(strings.ToLower(l.DisplayPrice), " to ")
}

// Deal is a normalized listing configuration eligible for ranking.
// Invariants: CapacityTB > 0, Price >= 0, PricePerTB = Price / CapacityTB.
// A listing that cannot satisfy them is dropped, never emitted with a
// placeholder.
type Deal struct {
	Title      string  `json:"title"`
	CapacityTB float64 `json:"capacity_tb"`
	Price      float64 `json:"price"`
	PricePerTB float64 `json:"price_per_tb"`
	ItemURL    string  `json:"item_url"`
}

// Key identifies a deal for deduplication across paginated result fetches.
type Key struct {
	Title      string
	CapacityTB float64
	Price      float64
}

// DealKey returns the deduplication key for a deal.
func (d *Deal) DealKey() Key {
	return Key{Title: d.Title, CapacityTB: d.CapacityTB, Price: d.Price}
}

// DropReason classifies why a listing or variation option was rejected.
type DropReason string

// Drop reason constants.
const (
	DropNoCapacity       DropReason = "no_capacity"
	DropNoPrice          DropReason = "no_price"
	DropBadInvariant     DropReason = "bad_invariant"
	DropMalformedPayload DropReason = "malformed_payload"
	DropNoVariations     DropReason = "no_variations"
)

// Drop records a rejected listing or variation option together with the
// reason, for the run log. Rejections are an observable side effect, not
// errors surfaced to the caller.
type Drop struct {
	Title   string     `json:"title"`
	ItemURL string     `json:"item_url,omitempty"`
	Reason  DropReason `json:"reason"`
	Detail  string     `json:"detail,omitempty"`
}
