package commission

import (
	"fmt"
	"strings"
)

// AdjustmentPolicy decides which figure absorbs a change to the salesperson share.
type AdjustmentPolicy string

const (
	// AdjustmentPolicyCorp moves the delta into the corporate share; the total is unchanged.
	AdjustmentPolicyCorp AdjustmentPolicy = "corp"
	// AdjustmentPolicyTotal moves the total with the salesperson share; other shares are unchanged.
	AdjustmentPolicyTotal AdjustmentPolicy = "total"
)

func ParseAdjustmentPolicy(s string) (AdjustmentPolicy, error) {
	switch p := AdjustmentPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case AdjustmentPolicyCorp, AdjustmentPolicyTotal:
		return p, nil
	case "":
		return AdjustmentPolicyCorp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAdjustmentPolicy, s)
}

// ApplyAdjustment returns the record with its salesperson share set to
// newSalesmanAmount and the audit entry describing the change. It performs
// every rule check up front and never touches storage.
func ApplyAdjustment(rec CommissionRecord, newSalesmanAmount int64, reason string, adjustedBy string, policy AdjustmentPolicy) (CommissionRecord, CommissionAdjustment, error) {
	if strings.TrimSpace(reason) == "" {
		return rec, CommissionAdjustment{}, ErrReasonRequired
	}
	if newSalesmanAmount < 0 {
		return rec, CommissionAdjustment{}, ErrNegativeAmount
	}
	switch rec.Status {
	case RecordStatusPending, RecordStatusAdjusted, RecordStatusPaid:
	default:
		return rec, CommissionAdjustment{}, fmt.Errorf("%w: record is %s", ErrInvalidState, rec.Status)
	}
	if rec.AnyShareProcessing() {
		return rec, CommissionAdjustment{}, ErrRecordLocked
	}

	previous := rec.SalesmanAmount
	delta := newSalesmanAmount - previous

	updated := rec
	switch policy {
	case AdjustmentPolicyCorp, "":
		if rec.CorpAmount-delta < 0 {
			return rec, CommissionAdjustment{}, fmt.Errorf("%w: corp share %d, increase %d", ErrAdjustmentExceedsCorp, rec.CorpAmount, delta)
		}
		updated.CorpAmount = rec.CorpAmount - delta
	case AdjustmentPolicyTotal:
		updated.TotalCommission = rec.TotalCommission + delta
	default:
		return rec, CommissionAdjustment{}, fmt.Errorf("%w: %q", ErrUnknownAdjustmentPolicy, policy)
	}
	updated.SalesmanAmount = newSalesmanAmount

	if updated.OriginalAmount == nil {
		original := previous
		updated.OriginalAmount = &original
	}
	trimmed := strings.TrimSpace(reason)
	updated.AdjustmentReason = &trimmed

	// paid is terminal; a post-payment correction keeps the status.
	if rec.Status != RecordStatusPaid {
		updated.Status = RecordStatusAdjusted
	}

	adj := CommissionAdjustment{
		CommissionRecordID: rec.ID,
		AdjustedBy:         adjustedBy,
		PreviousAmount:     previous,
		NewAmount:          newSalesmanAmount,
		AdjustmentAmount:   delta,
		Reason:             trimmed,
	}
	return updated, adj, nil
}
