package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeOptionPayload = `{
	"menu": {
		"0": {"propVals": {"p1": {"valueName": "1TB"}}, "price": {"value": 40}},
		"1": {"propVals": {"p1": {"valueName": "2TB"}}, "price": {"value": 70}},
		"2": {"propVals": {"p1": {"valueName": "4TB"}}, "price": {"value": "150"}}
	}
}`

func newResolver() *VariationResolver {
	return NewVariationResolver(NewCapacityParser(), NewPriceParser())
}

func TestVariationResolver_Resolve(t *testing.T) {
	t.Parallel()

	options, err := newResolver().Resolve(threeOptionPayload, "Fast NVMe SSD")
	require.NoError(t, err)
	require.Len(t, options, 3)

	assert.Equal(t, "Fast NVMe SSD - 1TB", options[0].Title)
	assert.InDelta(t, 1.0, options[0].CapacityTB, 1e-9)
	assert.InDelta(t, 40.0, options[0].Price, 1e-9)

	assert.InDelta(t, 2.0, options[1].CapacityTB, 1e-9)
	assert.InDelta(t, 70.0, options[1].Price, 1e-9)

	// String-typed price values parse too.
	assert.InDelta(t, 4.0, options[2].CapacityTB, 1e-9)
	assert.InDelta(t, 150.0, options[2].Price, 1e-9)
}

func TestVariationResolver_EmptyPayload(t *testing.T) {
	t.Parallel()

	options, err := newResolver().Resolve("", "title")
	assert.NoError(t, err)
	assert.Empty(t, options)

	options, err = newResolver().Resolve("   ", "title")
	assert.NoError(t, err)
	assert.Empty(t, options)
}

func TestVariationResolver_MalformedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not JSON", payload: "<html>not json</html>"},
		{name: "JSON without menu", payload: `{"foo": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			options, err := newResolver().Resolve(tt.payload, "title")
			assert.ErrorIs(t, err, ErrMalformedPayload)
			assert.Empty(t, options)
		})
	}
}

func TestVariationResolver_SkipsUnusableOptions(t *testing.T) {
	t.Parallel()

	payload := `{
		"menu": {
			"0": {"propVals": {"p1": {"valueName": "1TB"}}, "price": {"value": 40}},
			"1": {"propVals": {"p1": {"valueName": "2TB"}}, "price": {}},
			"2": {"propVals": {"p1": {"valueName": "Black"}}, "price": {"value": 25}}
		}
	}`

	// "Black" has no capacity of its own and the base title has none either,
	// so only the priced 1TB option survives.
	options, err := newResolver().Resolve(payload, "Portable SSD")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.InDelta(t, 1.0, options[0].CapacityTB, 1e-9)
}

func TestVariationResolver_LabelFallsBackToBaseTitle(t *testing.T) {
	t.Parallel()

	payload := `{
		"menu": {
			"0": {"propVals": {"p1": {"valueName": "Black"}}, "price": {"value": 55}}
		}
	}`

	options, err := newResolver().Resolve(payload, "Portable 2TB SSD")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Portable 2TB SSD - Black", options[0].Title)
	assert.InDelta(t, 2.0, options[0].CapacityTB, 1e-9)
	assert.InDelta(t, 55.0, options[0].Price, 1e-9)
}

func TestVariationResolver_MultiPropertyLabelOrderIsStable(t *testing.T) {
	t.Parallel()

	payload := `{
		"menu": {
			"0": {
				"propVals": {
					"b_color": {"valueName": "Black"},
					"a_size": {"valueName": "1TB"}
				},
				"price": {"value": 40}
			}
		}
	}`

	for range 5 {
		options, err := newResolver().Resolve(payload, "SSD")
		require.NoError(t, err)
		require.Len(t, options, 1)
		assert.Equal(t, "SSD - 1TB Black", options[0].Title)
	}
}
