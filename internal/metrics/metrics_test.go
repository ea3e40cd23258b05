package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDropCounterLabels(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(ListingsDroppedTotal.WithLabelValues("no_capacity"))
	ListingsDroppedTotal.WithLabelValues("no_capacity").Inc()
	after := testutil.ToFloat64(ListingsDroppedTotal.WithLabelValues("no_capacity"))

	assert.Equal(t, before+1, after)
}

func TestCountersIncrement(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(ListingsSeenTotal)
	ListingsSeenTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ListingsSeenTotal))
}
