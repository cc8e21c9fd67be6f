package commission

import (
	"context"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/money"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
)

// Adjust changes the salesperson share of a record. The record row stays
// locked from read to commit so concurrent adjustments apply one after the other,
// and the audit entry is written in the same transaction.
func (s *CommissionServiceImpl) Adjust(ctx context.Context, req commission.AdjustRequest) (commission.AdjustResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.AdjustResponse{}, err
	}
	if !validator.IsValidUUID(req.RecordID) {
		return commission.AdjustResponse{}, commission.ErrRecordNotFound
	}
	newAmount, err := money.ToCents(req.NewSalesmanAmount)
	if err != nil {
		return commission.AdjustResponse{}, err
	}

	var (
		saved commission.CommissionRecord
		entry commission.CommissionAdjustment
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := s.recordRepo.GetByIDForUpdate(ctx, req.RecordID)
		if err != nil {
			return err
		}

		updated, adj, err := commission.ApplyAdjustment(rec, newAmount, req.Reason, req.AdjustedBy, s.opts.Policy)
		if err != nil {
			return err
		}
		adj.Notes = req.Notes

		if saved, err = s.recordRepo.Update(ctx, updated); err != nil {
			return err
		}
		entry, err = s.adjustmentRepo.Create(ctx, adj)
		return err
	})
	if err != nil {
		return commission.AdjustResponse{}, err
	}

	s.metrics.IncAdjustment()
	s.logger.Info("commission record adjusted",
		"record_id", saved.ID,
		"adjusted_by", entry.AdjustedBy,
		"previous_amount", entry.PreviousAmount,
		"new_amount", entry.NewAmount,
		"policy", s.opts.Policy,
	)

	event := commission.NewRecordEvent(saved, s.now())
	delta := entry.AdjustmentAmount
	event.AdjustmentAmount = &delta
	s.publish(ctx, commission.EventRecordAdjusted, event)

	return commission.AdjustResponse{
		Record:     commission.ToRecordResponse(saved),
		Adjustment: commission.ToAdjustmentResponse(entry),
	}, nil
}

// ListAdjustments returns the audit trail of a record, oldest first.
func (s *CommissionServiceImpl) ListAdjustments(ctx context.Context, recordID string) ([]commission.AdjustmentResponse, error) {
	if !validator.IsValidUUID(recordID) {
		return nil, commission.ErrRecordNotFound
	}
	if _, err := s.recordRepo.GetByID(ctx, recordID); err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	out := make([]commission.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, commission.ToAdjustmentResponse(a))
	}
	return out, nil
}
