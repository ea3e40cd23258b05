package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrMalformedPayload is returned when a variation payload is present but
// structurally unreadable. Callers treat it as an empty variation set:
// item-page markup drifts, so this is a normal outcome, not a bug.
var ErrMalformedPayload = errors.New("malformed variation payload")

// Option is one purchasable configuration resolved from a multi-variation
// listing, already normalized to the canonical units.
type Option struct {
	Title      string
	CapacityTB float64
	Price      float64
}

// variationModel mirrors the msku.JsonModel JSON embedded in eBay item
// pages: a menu of per-option entries keyed by variation ID.
type variationModel struct {
	Menu map[string]variationEntry `json:"menu"`
}

type variationEntry struct {
	PropVals map[string]variationProp `json:"propVals"`
	Price    variationPrice           `json:"price"`
}

type variationProp struct {
	ValueName string `json:"valueName"`
}

type variationPrice struct {
	Value any `json:"value"`
}

// VariationResolver expands a multi-option listing's variation payload into
// one (capacity, price) pair per purchasable configuration. Option labels
// are free text and go through the same capacity rules as titles.
type VariationResolver struct {
	capacity *CapacityParser
	price    *PriceParser
}

// NewVariationResolver creates a VariationResolver sharing the given
// parsers' normalization rules.
func NewVariationResolver(capacity *CapacityParser, price *PriceParser) *VariationResolver {
	return &VariationResolver{capacity: capacity, price: price}
}

// Resolve parses an opaque variation payload. An empty payload yields an
// empty set; a present but unreadable one yields ErrMalformedPayload.
// Options whose label has no extractable capacity fall back to the base
// title; options still missing capacity or price are skipped.
func (r *VariationResolver) Resolve(payload, baseTitle string) ([]Option, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, nil
	}

	var model variationModel
	if err := json.Unmarshal([]byte(payload), &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if model.Menu == nil {
		return nil, fmt.Errorf("%w: no variation menu", ErrMalformedPayload)
	}

	options := make([]Option, 0, len(model.Menu))
	for _, id := range sortedKeys(model.Menu) {
		entry := model.Menu[id]

		label := optionLabel(entry.PropVals)
		price, ok := priceValue(entry.Price.Value)
		if !ok {
			continue
		}

		capres := r.capacity.Parse(label)
		if !capres.Ok() {
			capres = r.capacity.Parse(baseTitle)
		}
		if !capres.Ok() {
			continue
		}

		title := baseTitle
		if label != "" {
			title = baseTitle + " - " + label
		}

		options = append(options, Option{
			Title:      title,
			CapacityTB: capres.Value,
			Price:      price,
		})
	}

	return options, nil
}

// optionLabel joins the option's property value names in a deterministic
// order (JSON map iteration order is not).
func optionLabel(props map[string]variationProp) string {
	names := make([]string, 0, len(props))
	for _, key := range sortedKeys(props) {
		if v := strings.TrimSpace(props[key].ValueName); v != "" {
			names = append(names, v)
		}
	}
	return strings.Join(names, " ")
}

// priceValue coerces the payload's price value, which eBay serializes as
// either a JSON number or a numeric string.
func priceValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, n >= 0
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(n, ",", ""), 64)
		return f, err == nil && f >= 0
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && f >= 0
	default:
		return 0, false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
