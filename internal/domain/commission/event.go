package commission

import "time"

// Routing keys published on the commission exchange.
const (
	EventRecordCreated       = "commission.created"
	EventRecordAdjusted      = "commission.adjusted"
	EventRecordStatusChanged = "commission.status_changed"
	EventPaymentCreated      = "commission_payment.created"
	EventPaymentCompleted    = "commission_payment.completed"
	EventPaymentFailed       = "commission_payment.failed"
)

// Routing keys consumed from the bid request exchange.
const (
	EventBidRequestCreated = "bid_request.created"
	EventBidRequestWon     = "bid_request.won"
	EventProfileVisited    = "profile.visited"
	EventProjectCancelled  = "project.cancelled"
)

// RecordEvent is the payload of every commission.* event. Amounts are cents.
type RecordEvent struct {
	RecordID         string       `json:"record_id"`
	BidRequestID     string       `json:"bid_request_id"`
	SalespersonID    string       `json:"salesperson_id"`
	ServiceCategory  string       `json:"service_category"`
	Status           RecordStatus `json:"status"`
	TotalCommission  int64        `json:"total_commission"`
	SalesmanAmount   int64        `json:"salesman_amount"`
	AdjustmentAmount *int64       `json:"adjustment_amount,omitempty"`
	OccurredAt       time.Time    `json:"occurred_at"`
}

func NewRecordEvent(r CommissionRecord, at time.Time) RecordEvent {
	return RecordEvent{
		RecordID:        r.ID,
		BidRequestID:    r.BidRequestID,
		SalespersonID:   r.SalespersonID,
		ServiceCategory: r.ServiceCategory,
		Status:          r.Status,
		TotalCommission: r.TotalCommission,
		SalesmanAmount:  r.SalesmanAmount,
		OccurredAt:      at,
	}
}

// PaymentEvent is the payload of every commission_payment.* event.
type PaymentEvent struct {
	PaymentID     string        `json:"payment_id"`
	RecipientID   string        `json:"recipient_id"`
	RecipientType RecipientType `json:"recipient_type"`
	TotalAmount   int64         `json:"total_amount"`
	RecordCount   int           `json:"record_count"`
	Status        BatchStatus   `json:"status"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

func NewPaymentEvent(p CommissionPayment, at time.Time) PaymentEvent {
	return PaymentEvent{
		PaymentID:     p.ID,
		RecipientID:   p.RecipientID,
		RecipientType: p.RecipientType,
		TotalAmount:   p.TotalAmount,
		RecordCount:   len(p.CommissionRecordIDs),
		Status:        p.Status,
		OccurredAt:    at,
	}
}

// BidRequestEvent is the inbound payload for bid_request.* and profile.visited.
type BidRequestEvent struct {
	BidRequestID      string  `json:"bid_request_id"`
	SalespersonID     string  `json:"salesperson_id"`
	OverrideManagerID *string `json:"override_manager_id,omitempty"`
	ServiceCategory   string  `json:"service_category"`
}

// ProjectCancelledEvent is the inbound payload for project.cancelled.
type ProjectCancelledEvent struct {
	BidRequestID string `json:"bid_request_id"`
	Reason       string `json:"reason"`
}
