package commission

import (
	"context"
	"time"
)

// RecordFilter narrows ListRecords. Results are newest first unless SortOrder is "asc".
type RecordFilter struct {
	SalespersonID     *string
	OverrideManagerID *string
	Status            *RecordStatus
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	SortOrder         string
	Page              int
	Limit             int
}

// SummaryFilter scopes an aggregation. With no ids it covers the platform.
type SummaryFilter struct {
	SalespersonID     *string
	OverrideManagerID *string
	Share             RecipientType
}

// PaymentFilter narrows ListPayments.
type PaymentFilter struct {
	RecipientID   *string
	RecipientType *RecipientType
	Status        *BatchStatus
	Page          int
	Limit         int
}

type RateRepository interface {
	List(ctx context.Context) ([]ServiceRate, error)
	GetByCategory(ctx context.Context, category string) (ServiceRate, error)
	Upsert(ctx context.Context, rate ServiceRate) (ServiceRate, error)
	Count(ctx context.Context) (int64, error)
}

// RecordRepository persists commission records. Methods joining a transaction
// through ctx see the same snapshot; the ForUpdate variants lock rows until commit.
type RecordRepository interface {
	Create(ctx context.Context, rec CommissionRecord) (CommissionRecord, error)
	GetByID(ctx context.Context, id string) (CommissionRecord, error)
	GetByIDForUpdate(ctx context.Context, id string) (CommissionRecord, error)
	GetActiveByBidRequest(ctx context.Context, bidRequestID string) (CommissionRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]CommissionRecord, int64, error)
	Update(ctx context.Context, rec CommissionRecord) (CommissionRecord, error)

	// SelectUnpaidForUpdate locks every non-cancelled record whose share for
	// recipientType is unpaid, non-zero and owed to recipientID. Rows locked by
	// a concurrent batch are skipped.
	SelectUnpaidForUpdate(ctx context.Context, recipientType RecipientType, recipientID string, corpAccountID string) ([]CommissionRecord, error)
	// SetSharePaymentStatus moves the share of the given records from one
	// payment status to another and returns how many rows changed.
	SetSharePaymentStatus(ctx context.Context, ids []string, share RecipientType, from, to PaymentStatus, at *time.Time) (int64, error)
	// MarkPaid moves pending or adjusted records to paid.
	MarkPaid(ctx context.Context, ids []string) error
	// ListUnpaidRecipients returns the distinct recipients that have an unpaid share.
	ListUnpaidRecipients(ctx context.Context, share RecipientType) ([]string, error)
	Aggregate(ctx context.Context, filter SummaryFilter) (Totals, error)
}

type AdjustmentRepository interface {
	Create(ctx context.Context, adj CommissionAdjustment) (CommissionAdjustment, error)
	ListByRecord(ctx context.Context, recordID string) ([]CommissionAdjustment, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p CommissionPayment) (CommissionPayment, error)
	GetByID(ctx context.Context, id string) (CommissionPayment, error)
	GetByIDForUpdate(ctx context.Context, id string) (CommissionPayment, error)
	List(ctx context.Context, filter PaymentFilter) ([]CommissionPayment, int64, error)
	UpdateStatus(ctx context.Context, p CommissionPayment) (CommissionPayment, error)
}

type LeadStatsRepository interface {
	IncrementBidRequests(ctx context.Context, salespersonID string) error
	IncrementPageVisits(ctx context.Context, salespersonID string) error
	// Get returns the counts for one salesperson, or platform totals when salespersonID is nil.
	Get(ctx context.Context, salespersonID *string) (LeadStats, error)
}

// EventPublisher announces committed commission changes to other services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
