package commission

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/money"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SERVICE RATE DTOs ==========

type UpsertServiceRateRequest struct {
	ServiceCategory    string          `json:"-"`
	BaseCost           decimal.Decimal `json:"base_cost"`
	SalesmanCommission decimal.Decimal `json:"salesman_commission"`
	OverrideCommission decimal.Decimal `json:"override_commission"`
	CorpCommission     decimal.Decimal `json:"corp_commission"`
}

func (r *UpsertServiceRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidServiceCategory(r.ServiceCategory) {
		errs.Add("service_category", "must be 2-64 letters, digits, spaces, '&', '/' or '-'")
	}
	checkAmount(&errs, "base_cost", r.BaseCost)
	checkAmount(&errs, "salesman_commission", r.SalesmanCommission)
	checkAmount(&errs, "override_commission", r.OverrideCommission)
	checkAmount(&errs, "corp_commission", r.CorpCommission)

	return errs.Err()
}

// ToRate converts the request to cents. Call Validate first.
func (r *UpsertServiceRateRequest) ToRate() (ServiceRate, error) {
	base, err := money.ToCents(r.BaseCost)
	if err != nil {
		return ServiceRate{}, err
	}
	salesman, err := money.ToCents(r.SalesmanCommission)
	if err != nil {
		return ServiceRate{}, err
	}
	override, err := money.ToCents(r.OverrideCommission)
	if err != nil {
		return ServiceRate{}, err
	}
	corp, err := money.ToCents(r.CorpCommission)
	if err != nil {
		return ServiceRate{}, err
	}
	return ServiceRate{
		ServiceCategory:    r.ServiceCategory,
		BaseCost:           base,
		SalesmanCommission: salesman,
		OverrideCommission: override,
		CorpCommission:     corp,
	}, nil
}

type ServiceRateResponse struct {
	ServiceCategory    string          `json:"service_category"`
	BaseCost           decimal.Decimal `json:"base_cost"`
	SalesmanCommission decimal.Decimal `json:"salesman_commission"`
	OverrideCommission decimal.Decimal `json:"override_commission"`
	CorpCommission     decimal.Decimal `json:"corp_commission"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func ToServiceRateResponse(r ServiceRate) ServiceRateResponse {
	return ServiceRateResponse{
		ServiceCategory:    r.ServiceCategory,
		BaseCost:           money.FromCents(r.BaseCost),
		SalesmanCommission: money.FromCents(r.SalesmanCommission),
		OverrideCommission: money.FromCents(r.OverrideCommission),
		CorpCommission:     money.FromCents(r.CorpCommission),
		UpdatedAt:          r.UpdatedAt,
	}
}

// ========== RECORD DTOs ==========

// CreateRecordInput carries a precomputed split. Amounts are cents.
type CreateRecordInput struct {
	BidRequestID      string
	SalespersonID     string
	OverrideManagerID *string
	ServiceCategory   string
	Amounts           Amounts
	Notes             *string
}

func (in *CreateRecordInput) Validate() error {
	var errs validator.ValidationErrors

	checkBidRequestID(&errs, in.BidRequestID)
	if !validator.IsValidUUID(in.SalespersonID) {
		errs.Add("salesperson_id", "must be a valid UUID")
	}
	if in.OverrideManagerID != nil && !validator.IsValidUUID(*in.OverrideManagerID) {
		errs.Add("override_manager_id", "must be a valid UUID")
	}
	if validator.IsEmpty(in.ServiceCategory) {
		errs.Add("service_category", "is required")
	}

	return errs.Err()
}

// BidWonRequest is the "bid request won" signal from the bid request lifecycle.
type BidWonRequest struct {
	BidRequestID      string  `json:"bid_request_id"`
	SalespersonID     string  `json:"salesperson_id"`
	OverrideManagerID *string `json:"override_manager_id,omitempty"`
	ServiceCategory   string  `json:"service_category"`
	Notes             *string `json:"notes,omitempty"`
}

func (r *BidWonRequest) Validate() error {
	var errs validator.ValidationErrors

	checkBidRequestID(&errs, r.BidRequestID)
	if !validator.IsValidUUID(r.SalespersonID) {
		errs.Add("salesperson_id", "must be a valid UUID")
	}
	if r.OverrideManagerID != nil && *r.OverrideManagerID != "" && !validator.IsValidUUID(*r.OverrideManagerID) {
		errs.Add("override_manager_id", "must be a valid UUID")
	}
	if validator.IsEmpty(r.ServiceCategory) {
		errs.Add("service_category", "is required")
	}

	return errs.Err()
}

// MaxBidRequestIDLength matches the bid_request_id column width.
const MaxBidRequestIDLength = 64

func checkBidRequestID(errs *validator.ValidationErrors, id string) {
	switch {
	case validator.IsEmpty(id):
		errs.Add("bid_request_id", "is required")
	case len(id) > MaxBidRequestIDLength:
		errs.Add("bid_request_id", fmt.Sprintf("must be at most %d characters", MaxBidRequestIDLength))
	}
}

type UpdateStatusRequest struct {
	ID     string  `json:"-"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !RecordStatus(r.Status).IsValid() {
		errs.Add("status", "must be one of pending, adjusted, paid, cancelled")
	}

	return errs.Err()
}

type RecordResponse struct {
	ID                    string           `json:"id"`
	BidRequestID          string           `json:"bid_request_id"`
	SalespersonID         string           `json:"salesperson_id"`
	OverrideManagerID     *string          `json:"override_manager_id,omitempty"`
	ServiceCategory       string           `json:"service_category"`
	TotalCommission       decimal.Decimal  `json:"total_commission"`
	SalesmanAmount        decimal.Decimal  `json:"salesman_amount"`
	OverrideAmount        decimal.Decimal  `json:"override_amount"`
	CorpAmount            decimal.Decimal  `json:"corp_amount"`
	OriginalAmount        *decimal.Decimal `json:"original_amount,omitempty"`
	Status                string           `json:"status"`
	PaymentStatus         string           `json:"payment_status"`
	PaidAt                *time.Time       `json:"paid_at,omitempty"`
	OverridePaymentStatus string           `json:"override_payment_status"`
	CorpPaymentStatus     string           `json:"corp_payment_status"`
	Notes                 *string          `json:"notes,omitempty"`
	AdjustmentReason      *string          `json:"adjustment_reason,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
}

func ToRecordResponse(r CommissionRecord) RecordResponse {
	resp := RecordResponse{
		ID:                    r.ID,
		BidRequestID:          r.BidRequestID,
		SalespersonID:         r.SalespersonID,
		OverrideManagerID:     r.OverrideManagerID,
		ServiceCategory:       r.ServiceCategory,
		TotalCommission:       money.FromCents(r.TotalCommission),
		SalesmanAmount:        money.FromCents(r.SalesmanAmount),
		OverrideAmount:        money.FromCents(r.OverrideAmount),
		CorpAmount:            money.FromCents(r.CorpAmount),
		Status:                string(r.Status),
		PaymentStatus:         string(r.PaymentStatus),
		PaidAt:                r.PaidAt,
		OverridePaymentStatus: string(r.OverridePaymentStatus),
		CorpPaymentStatus:     string(r.CorpPaymentStatus),
		Notes:                 r.Notes,
		AdjustmentReason:      r.AdjustmentReason,
		CreatedAt:             r.CreatedAt,
	}
	if r.OriginalAmount != nil {
		original := money.FromCents(*r.OriginalAmount)
		resp.OriginalAmount = &original
	}
	return resp
}

func ToRecordResponses(records []CommissionRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToRecordResponse(r))
	}
	return out
}

type ListRecordResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ========== ADJUSTMENT DTOs ==========

type AdjustRequest struct {
	RecordID          string          `json:"-"`
	AdjustedBy        string          `json:"-"`
	NewSalesmanAmount decimal.Decimal `json:"new_salesman_amount"`
	Reason            string          `json:"reason"`
	Notes             *string         `json:"notes,omitempty"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs.Add("id", "is required")
	}
	if validator.IsEmpty(r.AdjustedBy) {
		errs.Add("adjusted_by", "is required")
	}
	checkAmount(&errs, "new_salesman_amount", r.NewSalesmanAmount)
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "is required")
	}

	return errs.Err()
}

type AdjustmentResponse struct {
	ID                 string          `json:"id"`
	CommissionRecordID string          `json:"commission_record_id"`
	AdjustedBy         string          `json:"adjusted_by"`
	PreviousAmount     decimal.Decimal `json:"previous_amount"`
	NewAmount          decimal.Decimal `json:"new_amount"`
	AdjustmentAmount   decimal.Decimal `json:"adjustment_amount"`
	Reason             string          `json:"reason"`
	Notes              *string         `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

func ToAdjustmentResponse(a CommissionAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:                 a.ID,
		CommissionRecordID: a.CommissionRecordID,
		AdjustedBy:         a.AdjustedBy,
		PreviousAmount:     money.FromCents(a.PreviousAmount),
		NewAmount:          money.FromCents(a.NewAmount),
		AdjustmentAmount:   money.FromCents(a.AdjustmentAmount),
		Reason:             a.Reason,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
	}
}

type AdjustResponse struct {
	Record     RecordResponse     `json:"record"`
	Adjustment AdjustmentResponse `json:"adjustment"`
}

// ========== PAYMENT DTOs ==========

type CreateBatchRequest struct {
	RecipientID   string  `json:"recipient_id"`
	RecipientType string  `json:"recipient_type"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	scheduledAt *time.Time
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	share := RecipientType(r.RecipientType)
	switch {
	case validator.IsEmpty(r.RecipientID):
		errs.Add("recipient_id", "is required")
	case share != RecipientCorp && !validator.IsValidUUID(r.RecipientID):
		errs.Add("recipient_id", "must be a valid UUID")
	}
	if !share.IsValid() {
		errs.Add("recipient_type", "must be one of salesperson, override, corp")
	}
	if r.ScheduledDate != nil {
		date, ok := validator.IsValidDate(*r.ScheduledDate)
		if !ok {
			errs.Add("scheduled_date", "must be in YYYY-MM-DD format")
		} else {
			r.scheduledAt = &date
		}
	}

	return errs.Err()
}

// ScheduledAt is the parsed scheduled date, set by Validate.
func (r *CreateBatchRequest) ScheduledAt() *time.Time {
	return r.scheduledAt
}

type CompleteBatchRequest struct {
	ID               string `json:"-"`
	PaymentReference string `json:"payment_reference"`
}

func (r *CompleteBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if validator.IsEmpty(r.PaymentReference) {
		errs.Add("payment_reference", "is required")
	}

	return errs.Err()
}

type FailBatchRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *FailBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "must be a valid UUID")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "is required")
	}

	return errs.Err()
}

type PaymentResponse struct {
	ID                  string          `json:"id"`
	RecipientID         string          `json:"recipient_id"`
	RecipientType       string          `json:"recipient_type"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	CommissionRecordIDs []string        `json:"commission_record_ids"`
	PaymentMethod       *string         `json:"payment_method,omitempty"`
	PaymentReference    *string         `json:"payment_reference,omitempty"`
	Status              string          `json:"status"`
	FailureReason       *string         `json:"failure_reason,omitempty"`
	ScheduledDate       *string         `json:"scheduled_date,omitempty"`
	ProcessedAt         *time.Time      `json:"processed_at,omitempty"`
	Notes               *string         `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

func ToPaymentResponse(p CommissionPayment) PaymentResponse {
	resp := PaymentResponse{
		ID:                  p.ID,
		RecipientID:         p.RecipientID,
		RecipientType:       string(p.RecipientType),
		TotalAmount:         money.FromCents(p.TotalAmount),
		CommissionRecordIDs: p.CommissionRecordIDs,
		PaymentMethod:       p.PaymentMethod,
		PaymentReference:    p.PaymentReference,
		Status:              string(p.Status),
		FailureReason:       p.FailureReason,
		ProcessedAt:         p.ProcessedAt,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
	}
	if p.ScheduledDate != nil {
		date := p.ScheduledDate.Format("2006-01-02")
		resp.ScheduledDate = &date
	}
	return resp
}

type ListPaymentResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// CreateBatchResponse wraps a batch; Batch is nil when nothing was eligible.
type CreateBatchResponse struct {
	Batch   *PaymentResponse `json:"batch"`
	Message string           `json:"message,omitempty"`
}

type AutoBatchResult struct {
	Created []PaymentResponse `json:"created"`
	Skipped int               `json:"skipped"`
	Failed  int               `json:"failed"`
}

// ========== WEBHOOK DTOs ==========

// PayoutWebhookPayload is the payment rail callback for a batch.
type PayoutWebhookPayload struct {
	BatchID       string `json:"batch_id"`
	Status        string `json:"status"`
	Reference     string `json:"reference"`
	FailureReason string `json:"failure_reason"`
}

func (p *PayoutWebhookPayload) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(p.BatchID) {
		errs.Add("batch_id", "must be a valid UUID")
	}
	switch BatchStatus(p.Status) {
	case BatchStatusCompleted:
		if validator.IsEmpty(p.Reference) {
			errs.Add("reference", "is required for completed payouts")
		}
	case BatchStatusFailed:
	default:
		errs.Add("status", "must be 'completed' or 'failed'")
	}

	return errs.Err()
}

// ========== SUMMARY DTOs ==========

type SummaryResponse struct {
	Share              string          `json:"share"`
	TotalEarned        decimal.Decimal `json:"total_earned"`
	PendingCommissions decimal.Decimal `json:"pending_commissions"`
	PaidCommissions    decimal.Decimal `json:"paid_commissions"`
	TotalRecords       int64           `json:"total_records"`
	ConversionRate     decimal.Decimal `json:"conversion_rate"`
	AverageCommission  decimal.Decimal `json:"average_commission"`
	BidRequests        int64           `json:"bid_requests"`
	PageVisits         int64           `json:"page_visits"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		Share:              string(s.Share),
		TotalEarned:        money.FromCents(s.TotalEarned),
		PendingCommissions: money.FromCents(s.PendingCommissions),
		PaidCommissions:    money.FromCents(s.PaidCommissions),
		TotalRecords:       s.TotalRecords,
		ConversionRate:     s.ConversionRate,
		AverageCommission:  money.FromCents(s.AverageCommission),
		BidRequests:        s.BidRequests,
		PageVisits:         s.PageVisits,
	}
}

func checkAmount(errs *validator.ValidationErrors, field string, amount decimal.Decimal) {
	if amount.IsNegative() {
		errs.Add(field, "must be non-negative")
		return
	}
	if _, err := money.ToCents(amount); err != nil {
		errs.Add(field, strings.TrimSpace(err.Error()))
	}
}
