package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommissionMetrics counts commission lifecycle events. A nil receiver is a no-op.
type CommissionMetrics struct {
	recordsCreated     *prometheus.CounterVec
	adjustments        prometheus.Counter
	paymentBatches     *prometheus.CounterVec
	paymentAmountCents *prometheus.CounterVec
}

var (
	commissionMetricsOnce sync.Once
	commissionMetrics     *CommissionMetrics
)

// Commission returns the process-wide metrics registered on the default registerer.
func Commission() *CommissionMetrics {
	commissionMetricsOnce.Do(func() {
		commissionMetrics = NewCommissionMetrics(prometheus.DefaultRegisterer)
	})
	return commissionMetrics
}

func NewCommissionMetrics(registerer prometheus.Registerer) *CommissionMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	recordsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commission_records_created_total",
			Help: "Commission records created, by service category.",
		},
		[]string{"service_category"},
	)

	adjustments := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "commission_adjustments_total",
			Help: "Adjustments applied to commission records.",
		},
	)

	paymentBatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commission_payment_batches_total",
			Help: "Payment batch transitions, by recipient type and resulting status.",
		},
		[]string{"recipient_type", "status"}, // pending | completed | failed
	)

	paymentAmountCents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commission_payment_amount_cents_total",
			Help: "Cents paid out through completed batches, by recipient type.",
		},
		[]string{"recipient_type"},
	)

	registerer.MustRegister(recordsCreated, adjustments, paymentBatches, paymentAmountCents)

	return &CommissionMetrics{
		recordsCreated:     recordsCreated,
		adjustments:        adjustments,
		paymentBatches:     paymentBatches,
		paymentAmountCents: paymentAmountCents,
	}
}

func (m *CommissionMetrics) IncRecordCreated(serviceCategory string) {
	if m == nil {
		return
	}
	m.recordsCreated.WithLabelValues(serviceCategory).Inc()
}

func (m *CommissionMetrics) IncAdjustment() {
	if m == nil {
		return
	}
	m.adjustments.Inc()
}

func (m *CommissionMetrics) IncBatch(recipientType, status string) {
	if m == nil {
		return
	}
	m.paymentBatches.WithLabelValues(recipientType, status).Inc()
}

func (m *CommissionMetrics) AddPaidCents(recipientType string, cents int64) {
	if m == nil || cents <= 0 {
		return
	}
	m.paymentAmountCents.WithLabelValues(recipientType).Add(float64(cents))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
