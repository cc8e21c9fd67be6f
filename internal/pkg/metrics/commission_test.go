package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums every series of a counter family in the registry.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestCommissionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCommissionMetrics(reg)

	m.IncRecordCreated("Roofing")
	m.IncRecordCreated("Roofing")
	m.IncAdjustment()
	m.IncBatch("salesperson", "completed")
	m.AddPaidCents("salesperson", 45000)
	m.AddPaidCents("salesperson", -5)

	assert.Equal(t, 2.0, counterValue(t, reg, "commission_records_created_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "commission_adjustments_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "commission_payment_batches_total"))
	assert.Equal(t, 45000.0, counterValue(t, reg, "commission_payment_amount_cents_total"))
}

func TestCommissionMetrics_NilIsNoop(t *testing.T) {
	var m *CommissionMetrics
	assert.NotPanics(t, func() {
		m.IncRecordCreated("Roofing")
		m.IncAdjustment()
		m.IncBatch("corp", "failed")
		m.AddPaidCents("corp", 1)
	})
}
