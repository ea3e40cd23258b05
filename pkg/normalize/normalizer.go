// Package normalize composes the capacity, price, and variation extractors
// to turn raw listings into normalized deals, applying the drop policy.
package normalize

import (
	"log/slog"

	"github.com/pip3-kill-me/ebay-scraper/pkg/extract"
	domain "github.com/pip3-kill-me/ebay-scraper/pkg/types"
)

// Normalizer turns one raw listing into zero or more Deal records,
// computing price-per-TB. It is a pure transformation over in-memory text;
// logging of drops is its only side effect.
type Normalizer struct {
	capacity   *extract.CapacityParser
	price      *extract.PriceParser
	variations *extract.VariationResolver
	log        *slog.Logger
}

// Option configures the Normalizer.
type Option func(*Normalizer)

// WithCapacityParser overrides the default capacity parser (e.g. to change
// the plausibility band).
func WithCapacityParser(p *extract.CapacityParser) Option {
	return func(n *Normalizer) {
		n.capacity = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		n.log = l
	}
}

// New creates a Normalizer with default parsers.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		capacity: extract.NewCapacityParser(),
		price:    extract.NewPriceParser(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.variations = extract.NewVariationResolver(n.capacity, n.price)
	return n
}

// Normalize converts a raw listing into deals plus drop records. A listing
// with a usable variation payload expands to one deal per configuration and
// its single display price is ignored (the variation data is authoritative);
// otherwise exactly one deal is emitted iff both title capacity and display
// price extract cleanly and the deal invariants hold.
func (n *Normalizer) Normalize(listing domain.RawListing) ([]domain.Deal, []domain.Drop) {
	if listing.VariationPayload != "" {
		deals, drops, resolved := n.fromVariations(listing)
		if resolved {
			return deals, drops
		}
		// Variation data unusable; fall back to the search-row text and
		// keep the payload drop record alongside whatever the fallback
		// produces.
		fallbackDeals, fallbackDrops := n.fromTitle(listing)
		return fallbackDeals, append(drops, fallbackDrops...)
	}

	return n.fromTitle(listing)
}

// fromVariations expands the variation payload. resolved is false when the
// payload was absent in effect (malformed or zero options) and the caller
// should fall back to the single-price path.
func (n *Normalizer) fromVariations(
	listing domain.RawListing,
) (deals []domain.Deal, drops []domain.Drop, resolved bool) {
	options, err := n.variations.Resolve(listing.VariationPayload, listing.Title)
	if err != nil {
		n.log.Debug("variation payload unreadable",
			"title", listing.Title,
			"err", err,
		)
		drops = append(drops, domain.Drop{
			Title:   listing.Title,
			ItemURL: listing.ItemURL,
			Reason:  domain.DropMalformedPayload,
			Detail:  err.Error(),
		})
		return nil, drops, false
	}

	if len(options) == 0 {
		drops = append(drops, domain.Drop{
			Title:   listing.Title,
			ItemURL: listing.ItemURL,
			Reason:  domain.DropNoVariations,
		})
		return nil, drops, false
	}

	for _, opt := range options {
		deal, ok := makeDeal(opt.Title, opt.CapacityTB, opt.Price, listing.ItemURL)
		if !ok {
			drops = append(drops, domain.Drop{
				Title:   opt.Title,
				ItemURL: listing.ItemURL,
				Reason:  domain.DropBadInvariant,
			})
			continue
		}
		deals = append(deals, deal)
	}

	return deals, drops, true
}

func (n *Normalizer) fromTitle(listing domain.RawListing) ([]domain.Deal, []domain.Drop) {
	capres := n.capacity.Parse(listing.Title)
	if !capres.Ok() {
		return nil, []domain.Drop{{
			Title:   listing.Title,
			ItemURL: listing.ItemURL,
			Reason:  domain.DropNoCapacity,
		}}
	}
	if capres.Kind == extract.KindAmbiguous {
		n.log.Debug("capacity ambiguous, took largest",
			"title", listing.Title,
			"candidates", capres.Candidates,
			"resolved_tb", capres.Value,
		)
	}

	priceres := n.price.Parse(listing.DisplayPrice)
	if !priceres.Ok() {
		return nil, []domain.Drop{{
			Title:   listing.Title,
			ItemURL: listing.ItemURL,
			Reason:  domain.DropNoPrice,
			Detail:  listing.DisplayPrice,
		}}
	}

	deal, ok := makeDeal(listing.Title, capres.Value, priceres.Value, listing.ItemURL)
	if !ok {
		return nil, []domain.Drop{{
			Title:   listing.Title,
			ItemURL: listing.ItemURL,
			Reason:  domain.DropBadInvariant,
		}}
	}

	return []domain.Deal{deal}, nil
}

// makeDeal builds a Deal, enforcing the invariants: CapacityTB > 0,
// Price >= 0, PricePerTB = Price / CapacityTB.
func makeDeal(title string, capacityTB, price float64, itemURL string) (domain.Deal, bool) {
	if capacityTB <= 0 || price < 0 {
		return domain.Deal{}, false
	}
	return domain.Deal{
		Title:      title,
		CapacityTB: capacityTB,
		Price:      price,
		PricePerTB: price / capacityTB,
		ItemURL:    itemURL,
	}, true
}
