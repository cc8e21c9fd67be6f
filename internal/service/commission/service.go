package commission

import (
	"context"
	"log/slog"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/metrics"
)

// Options carries the business rules read from configuration.
type Options struct {
	Policy               commission.AdjustmentPolicy
	StrictRates          bool
	CorpAccountID        string
	DefaultPaymentMethod string
}

// Repositories groups the stores the service writes through.
type Repositories struct {
	Rates       commission.RateRepository
	Records     commission.RecordRepository
	Adjustments commission.AdjustmentRepository
	Payments    commission.PaymentRepository
	Leads       commission.LeadStatsRepository
}

type CommissionServiceImpl struct {
	tx             database.Transactor
	rateRepo       commission.RateRepository
	recordRepo     commission.RecordRepository
	adjustmentRepo commission.AdjustmentRepository
	paymentRepo    commission.PaymentRepository
	leadRepo       commission.LeadStatsRepository
	publisher      commission.EventPublisher
	metrics        *metrics.CommissionMetrics
	opts           Options
	logger         *slog.Logger
	now            func() time.Time
}

func NewCommissionService(
	tx database.Transactor,
	repos Repositories,
	publisher commission.EventPublisher,
	m *metrics.CommissionMetrics,
	opts Options,
	logger *slog.Logger,
) commission.Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Policy == "" {
		opts.Policy = commission.AdjustmentPolicyCorp
	}
	return &CommissionServiceImpl{
		tx:             tx,
		rateRepo:       repos.Rates,
		recordRepo:     repos.Records,
		adjustmentRepo: repos.Adjustments,
		paymentRepo:    repos.Payments,
		leadRepo:       repos.Leads,
		publisher:      publisher,
		metrics:        m,
		opts:           opts,
		logger:         logger.With("component", "commission_service"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// publish runs after commit. A broker outage must not undo a committed write.
func (s *CommissionServiceImpl) publish(ctx context.Context, routingKey string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.logger.Error("failed to publish commission event", "routing_key", routingKey, "error", err)
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func normalizePaging(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
