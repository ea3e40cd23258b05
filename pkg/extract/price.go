package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// priceRangeRe matches "X to Y" display ranges ("$89.99 to $349.99").
	priceRangeRe = regexp.MustCompile(`(?i)\$?\s*(\d+(?:,\d{3})*(?:\.\d+)?)\s+to\s+\$?\s*(\d+(?:,\d{3})*(?:\.\d+)?)`)

	// priceTokenRe matches a single price token with optional thousands
	// separators ("1,299.99").
	priceTokenRe = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)
)

// PriceParser extracts a canonical numeric price from display text. Ranges
// collapse to their lower bound (the tool is deal-seeking); sentinel text
// with no numeric anchor ("Auction - no Buy It Now", bare "Best Offer")
// yields NotFound so the listing is dropped rather than priced
// synthetically.
type PriceParser struct{}

// NewPriceParser creates a PriceParser.
func NewPriceParser() *PriceParser {
	return &PriceParser{}
}

// Parse extracts the price from display text.
func (p *PriceParser) Parse(displayText string) Result[float64] {
	if m := priceRangeRe.FindStringSubmatch(displayText); m != nil {
		low, okLow := parsePriceToken(m[1])
		high, okHigh := parsePriceToken(m[2])
		if okLow && okHigh {
			return Found(min(low, high))
		}
	}

	var candidates []float64
	for _, tok := range priceTokenRe.FindAllString(displayText, -1) {
		if v, ok := parsePriceToken(tok); ok {
			candidates = append(candidates, v)
		}
	}

	switch len(candidates) {
	case 0:
		return NotFound[float64]()
	case 1:
		return Found(candidates[0])
	default:
		// Disjoint price tokens outside range form: take the lowest.
		lowest := candidates[0]
		for _, v := range candidates[1:] {
			lowest = min(lowest, v)
		}
		return Ambiguous(lowest, candidates)
	}
}

func parsePriceToken(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
