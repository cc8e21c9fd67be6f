package commission

import "context"

type Service interface {
	// Service rates
	ListRates(ctx context.Context) ([]ServiceRateResponse, error)
	GetRate(ctx context.Context, category string) (ServiceRateResponse, error)
	UpsertRate(ctx context.Context, req UpsertServiceRateRequest) (ServiceRateResponse, error)
	SeedDefaultRates(ctx context.Context, rates []ServiceRate) (int, error)

	// Records
	CreateRecord(ctx context.Context, in CreateRecordInput) (RecordResponse, error)
	// RecordBidWon reports created=false when the bid request already had this record.
	RecordBidWon(ctx context.Context, req BidWonRequest) (rec RecordResponse, created bool, err error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (RecordResponse, error)
	CancelByBidRequest(ctx context.Context, bidRequestID string, reason string) (RecordResponse, error)

	// Adjustments
	Adjust(ctx context.Context, req AdjustRequest) (AdjustResponse, error)
	ListAdjustments(ctx context.Context, recordID string) ([]AdjustmentResponse, error)

	// Payment batches
	CreateBatch(ctx context.Context, req CreateBatchRequest) (PaymentResponse, error)
	CompleteBatch(ctx context.Context, req CompleteBatchRequest) (PaymentResponse, error)
	FailBatch(ctx context.Context, req FailBatchRequest) (PaymentResponse, error)
	GetBatch(ctx context.Context, id string) (PaymentResponse, error)
	ListBatches(ctx context.Context, filter PaymentFilter) (ListPaymentResponse, error)
	AutoBatch(ctx context.Context) (AutoBatchResult, error)

	// Reporting
	Summarize(ctx context.Context, filter SummaryFilter) (SummaryResponse, error)
	RecordBidRequest(ctx context.Context, salespersonID string) error
	RecordProfileVisit(ctx context.Context, salespersonID string) error
}
