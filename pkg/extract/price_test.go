package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceParser_Parse(t *testing.T) {
	t.Parallel()

	p := NewPriceParser()

	tests := []struct {
		name     string
		text     string
		wantOk   bool
		want     float64
		wantKind Kind
	}{
		{
			name:     "plain price",
			text:     "$45.99",
			wantOk:   true,
			want:     45.99,
			wantKind: KindFound,
		},
		{
			name:     "range collapses to lower bound",
			text:     "$50 to $80",
			wantOk:   true,
			want:     50,
			wantKind: KindFound,
		},
		{
			name:     "range with cents",
			text:     "$89.99 to $349.99",
			wantOk:   true,
			want:     89.99,
			wantKind: KindFound,
		},
		{
			name:     "thousands separators stripped",
			text:     "$1,299.99",
			wantOk:   true,
			want:     1299.99,
			wantKind: KindFound,
		},
		{
			name:   "auction sentinel",
			text:   "Auction - no Buy It Now",
			wantOk: false,
		},
		{
			name:   "best offer sentinel",
			text:   "Best Offer",
			wantOk: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOk: false,
		},
		{
			name:     "disjoint tokens resolve to lowest",
			text:     "$19.99 each, was $39.99",
			wantOk:   true,
			want:     19.99,
			wantKind: KindAmbiguous,
		},
		{
			name:     "no currency symbol",
			text:     "120.00",
			wantOk:   true,
			want:     120,
			wantKind: KindFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := p.Parse(tt.text)
			assert.Equal(t, tt.wantOk, res.Ok())
			if !tt.wantOk {
				assert.Equal(t, KindNotFound, res.Kind)
				return
			}
			assert.InDelta(t, tt.want, res.Value, 1e-9)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, res.Kind)
			}
		})
	}
}
