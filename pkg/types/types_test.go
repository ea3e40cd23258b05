package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawListing_IsMultiVariation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price string
		want  bool
	}{
		{name: "plain price", price: "$45.99", want: false},
		{name: "range", price: "$89.99 to $349.99", want: true},
		{name: "uppercase range", price: "$50.00 TO $80.00", want: true},
		{name: "word containing to", price: "$12.00 total", want: false},
		{name: "empty", price: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := RawListing{DisplayPrice: tt.price}
			assert.Equal(t, tt.want, l.IsMultiVariation())
		})
	}
}

func TestDealKey(t *testing.T) {
	t.Parallel()

	a := Deal{Title: "2TB SSD", CapacityTB: 2, Price: 70, PricePerTB: 35, ItemURL: "https://www.ebay.com/itm/1"}
	b := Deal{Title: "2TB SSD", CapacityTB: 2, Price: 70, PricePerTB: 35, ItemURL: "https://www.ebay.com/itm/2"}

	// The URL stays out of the key: the same listing resurfaces across
	// pages under shifting tracking URLs.
	assert.Equal(t, a.DealKey(), b.DealKey())

	c := Deal{Title: "2TB SSD", CapacityTB: 2, Price: 75}
	assert.NotEqual(t, a.DealKey(), c.DealKey())
}
