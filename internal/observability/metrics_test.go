package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	first.SubscriptionSyncs.WithLabelValues("sent").Inc()
	second.SubscriptionSyncs.WithLabelValues("sent").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(first.SubscriptionSyncs.WithLabelValues("sent")))
	assert.Same(t, first.SubscriptionSyncs, second.SubscriptionSyncs)
}
