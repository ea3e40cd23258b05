package ebay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariationPayload(t *testing.T) {
	t.Parallel()

	html := `<html><head>
<script>var unrelated = 1;</script>
<script>
  $MODS._init();
  msku.JsonModel = {"menu": {"0": {"propVals": {"p1": {"valueName": "1TB"}}, "price": {"value": 40}}}};
  msku.render();
</script>
</head><body></body></html>`

	payload, ok := VariationPayload(html)
	require.True(t, ok)
	assert.Contains(t, payload, `"valueName": "1TB"`)
	assert.True(t, payload[0] == '{' && payload[len(payload)-1] == '}')
}

func TestVariationPayload_Absent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
	}{
		{name: "no scripts", html: `<html><body><p>single SKU item</p></body></html>`},
		{name: "scripts without model", html: `<html><script>var a = {};</script></html>`},
		{name: "mention without assignment", html: `<html><script>// msku.JsonModel moved</script></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, ok := VariationPayload(tt.html)
			assert.False(t, ok)
			assert.Empty(t, payload)
		})
	}
}
