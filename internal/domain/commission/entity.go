package commission

import "time"

// ServiceRate - configured commission amounts for one service category.
// All amounts are integer cents.
type ServiceRate struct {
	ServiceCategory    string
	BaseCost           int64
	SalesmanCommission int64
	OverrideCommission int64
	CorpCommission     int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SplitTotal is the sum of the three configured shares.
func (r ServiceRate) SplitTotal() int64 {
	return r.SalesmanCommission + r.OverrideCommission + r.CorpCommission
}

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusPending   RecordStatus = "pending"
	RecordStatusAdjusted  RecordStatus = "adjusted"
	RecordStatusPaid      RecordStatus = "paid"
	RecordStatusCancelled RecordStatus = "cancelled"
)

func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusPending, RecordStatusAdjusted, RecordStatusPaid, RecordStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus enum, tracked per share.
type PaymentStatus string

const (
	PaymentStatusUnpaid     PaymentStatus = "unpaid"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
)

// RecipientType enum. Also names the share of a record a payment covers.
type RecipientType string

const (
	RecipientSalesperson RecipientType = "salesperson"
	RecipientOverride    RecipientType = "override"
	RecipientCorp        RecipientType = "corp"
)

func (t RecipientType) IsValid() bool {
	switch t {
	case RecipientSalesperson, RecipientOverride, RecipientCorp:
		return true
	}
	return false
}

// RecipientTypes lists every share in batching order.
var RecipientTypes = []RecipientType{RecipientSalesperson, RecipientOverride, RecipientCorp}

// Amounts - the three-way split of one commission, in cents.
type Amounts struct {
	Total    int64
	Salesman int64
	Override int64
	Corp     int64
}

// Balanced reports whether the shares add up to the total exactly.
func (a Amounts) Balanced() bool {
	return a.Salesman+a.Override+a.Corp == a.Total
}

// CommissionRecord - the split computed for one qualifying bid request.
// PaymentStatus and PaidAt track the salesperson share; the override and
// corp shares carry their own payment state.
type CommissionRecord struct {
	ID                string
	BidRequestID      string
	SalespersonID     string
	OverrideManagerID *string
	ServiceCategory   string

	TotalCommission int64
	SalesmanAmount  int64
	OverrideAmount  int64
	CorpAmount      int64
	OriginalAmount  *int64

	Status                RecordStatus
	PaymentStatus         PaymentStatus
	PaidAt                *time.Time
	OverridePaymentStatus PaymentStatus
	OverridePaidAt        *time.Time
	CorpPaymentStatus     PaymentStatus
	CorpPaidAt            *time.Time

	Notes            *string
	AdjustmentReason *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r CommissionRecord) Amounts() Amounts {
	return Amounts{
		Total:    r.TotalCommission,
		Salesman: r.SalesmanAmount,
		Override: r.OverrideAmount,
		Corp:     r.CorpAmount,
	}
}

// ShareAmount returns the amount owed to the given recipient type.
func (r CommissionRecord) ShareAmount(t RecipientType) int64 {
	switch t {
	case RecipientSalesperson:
		return r.SalesmanAmount
	case RecipientOverride:
		return r.OverrideAmount
	case RecipientCorp:
		return r.CorpAmount
	}
	return 0
}

// SharePaymentStatus returns the payment state of the given share.
func (r CommissionRecord) SharePaymentStatus(t RecipientType) PaymentStatus {
	switch t {
	case RecipientOverride:
		return r.OverridePaymentStatus
	case RecipientCorp:
		return r.CorpPaymentStatus
	default:
		return r.PaymentStatus
	}
}

// ShareRecipient resolves who the given share is paid to. The override
// share has no recipient when the record has no override manager.
func (r CommissionRecord) ShareRecipient(t RecipientType, corpAccountID string) (string, bool) {
	switch t {
	case RecipientSalesperson:
		return r.SalespersonID, true
	case RecipientOverride:
		if r.OverrideManagerID == nil || *r.OverrideManagerID == "" {
			return "", false
		}
		return *r.OverrideManagerID, true
	case RecipientCorp:
		return corpAccountID, corpAccountID != ""
	}
	return "", false
}

// AnyShareProcessing reports whether some payment batch currently holds a share.
func (r CommissionRecord) AnyShareProcessing() bool {
	return r.PaymentStatus == PaymentStatusProcessing ||
		r.OverridePaymentStatus == PaymentStatusProcessing ||
		r.CorpPaymentStatus == PaymentStatusProcessing
}

// AnySharePaid reports whether money has already gone out for some share.
func (r CommissionRecord) AnySharePaid() bool {
	return r.PaymentStatus == PaymentStatusPaid ||
		r.OverridePaymentStatus == PaymentStatusPaid ||
		r.CorpPaymentStatus == PaymentStatusPaid
}

// CommissionAdjustment - append-only audit entry for an amount change.
type CommissionAdjustment struct {
	ID                 string
	CommissionRecordID string
	AdjustedBy         string
	PreviousAmount     int64
	NewAmount          int64
	AdjustmentAmount   int64
	Reason             string
	Notes              *string
	CreatedAt          time.Time
}

// BatchStatus enum
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusFailed    BatchStatus = "failed"
)

func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusCompleted || s == BatchStatusFailed
}

// CommissionPayment - one payout batch to one recipient.
type CommissionPayment struct {
	ID                  string
	RecipientID         string
	RecipientType       RecipientType
	TotalAmount         int64
	CommissionRecordIDs []string
	PaymentMethod       *string
	PaymentReference    *string
	Status              BatchStatus
	FailureReason       *string
	ScheduledDate       *time.Time
	ProcessedAt         *time.Time
	Notes               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LeadStats - lead funnel counts for one salesperson, or the platform.
type LeadStats struct {
	SalespersonID string
	BidRequests   int64
	PageVisits    int64
	UpdatedAt     time.Time
}

// Totals - raw aggregates over non-cancelled commission records for one share.
type Totals struct {
	Records int64
	Earned  int64
	Pending int64
	Paid    int64
}
