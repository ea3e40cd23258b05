package extract

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Plausibility band defaults. Values below the floor are typically flash
// drives or memory cards riding along in accessory titles; values above the
// ceiling are model numbers misread as capacities.
const (
	defaultMinTB = 0.1
	defaultMaxTB = 100.0
)

// gbPerTB is the decimal conversion factor (1 TB = 1000 GB, not 1024).
const gbPerTB = 1000.0

// unitAdjacentRe matches a numeric token whose unit marker is directly
// adjacent (at most one space). The leading word boundary keeps digits glued
// to model numbers ("WD10EZEX", "PM9A1TB-ish suffixes") from being misread;
// a bare number with no unit never matches.
var unitAdjacentRe = regexp.MustCompile(`\b(\d+(?:\.\d+)?) ?(tb|gb)\b`)

// CapacityParser extracts a canonical capacity in terabytes from free-form
// listing title text using an ordered list of pattern rules:
//
//  1. separator normalization ("2TB/1TB" scans as two tokens)
//  2. unit-adjacent numeric extraction (TB and GB, case-insensitive)
//  3. decimal GB→TB conversion
//  4. plausibility band filter
//  5. largest-value priority across the survivors
type CapacityParser struct {
	minTB float64
	maxTB float64
}

// CapacityOption configures the CapacityParser.
type CapacityOption func(*CapacityParser)

// WithPlausibleRange overrides the plausibility band, in terabytes.
func WithPlausibleRange(minTB, maxTB float64) CapacityOption {
	return func(p *CapacityParser) {
		p.minTB = minTB
		p.maxTB = maxTB
	}
}

// NewCapacityParser creates a CapacityParser with the default band.
func NewCapacityParser(opts ...CapacityOption) *CapacityParser {
	p := &CapacityParser{minTB: defaultMinTB, maxTB: defaultMaxTB}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the capacity advertised by a title. Multiple surviving
// candidates resolve to the largest value: multi-capacity titles advertise
// the largest configuration as the headline figure.
func (p *CapacityParser) Parse(title string) Result[float64] {
	candidates := p.plausible(scanUnitTokens(normalizeTitle(title)))

	switch len(candidates) {
	case 0:
		return NotFound[float64]()
	case 1:
		return Found(candidates[0])
	default:
		return Ambiguous(slices.Max(candidates), candidates)
	}
}

// normalizeTitle lowercases and flattens the separators sellers use to pack
// several capacities into one token ("2TB/1TB", "500GB-1TB", "1_TB").
func normalizeTitle(title string) string {
	r := strings.NewReplacer("/", " ", "-", " ", "_", " ")
	return strings.ToLower(r.Replace(title))
}

// scanUnitTokens returns every unit-adjacent numeric token converted to
// terabytes, in order of appearance. Duplicate values collapse so repeated
// mentions of the same capacity don't read as ambiguity.
func scanUnitTokens(normalized string) []float64 {
	var values []float64
	for _, m := range unitAdjacentRe.FindAllStringSubmatch(normalized, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if m[2] == "gb" {
			v /= gbPerTB
		}
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	return values
}

// plausible filters candidates to the configured band, inclusive.
func (p *CapacityParser) plausible(values []float64) []float64 {
	var kept []float64
	for _, v := range values {
		if v >= p.minTB && v <= p.maxTB {
			kept = append(kept, v)
		}
	}
	return kept
}
