package commission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
)

// CreateBatch groups every unpaid share owed to one recipient into a pending
// payment. The selected shares move to processing in the same transaction,
// so a concurrent batch for the same recipient cannot pick them up again.
func (s *CommissionServiceImpl) CreateBatch(ctx context.Context, req commission.CreateBatchRequest) (commission.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.PaymentResponse{}, err
	}

	share := commission.RecipientType(req.RecipientType)
	if share == commission.RecipientCorp && req.RecipientID != s.opts.CorpAccountID {
		return commission.PaymentResponse{}, fmt.Errorf("%w: corp payouts go to %q", commission.ErrInvalidRecipient, s.opts.CorpAccountID)
	}

	method := req.PaymentMethod
	if method == nil && s.opts.DefaultPaymentMethod != "" {
		m := s.opts.DefaultPaymentMethod
		method = &m
	}

	var batch commission.CommissionPayment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		candidates, err := s.recordRepo.SelectUnpaidForUpdate(ctx, share, req.RecipientID, s.opts.CorpAccountID)
		if err != nil {
			return err
		}

		var (
			ids   []string
			total int64
		)
		for _, rec := range candidates {
			if !eligible(rec, share, req.RecipientID, s.opts.CorpAccountID) {
				continue
			}
			ids = append(ids, rec.ID)
			total += rec.ShareAmount(share)
		}
		if len(ids) == 0 {
			return commission.ErrNoEligibleRecords
		}

		moved, err := s.recordRepo.SetSharePaymentStatus(ctx, ids, share, commission.PaymentStatusUnpaid, commission.PaymentStatusProcessing, nil)
		if err != nil {
			return err
		}
		if moved != int64(len(ids)) {
			return fmt.Errorf("%w: %d of %d shares changed while batching", commission.ErrRecordLocked, int64(len(ids))-moved, len(ids))
		}

		batch, err = s.paymentRepo.Create(ctx, commission.CommissionPayment{
			RecipientID:         req.RecipientID,
			RecipientType:       share,
			TotalAmount:         total,
			CommissionRecordIDs: ids,
			PaymentMethod:       method,
			ScheduledDate:       req.ScheduledAt(),
			Notes:               req.Notes,
		})
		return err
	})
	if err != nil {
		return commission.PaymentResponse{}, err
	}

	s.metrics.IncBatch(string(share), string(commission.BatchStatusPending))
	s.logger.Info("payment batch created",
		"batch_id", batch.ID,
		"recipient_id", batch.RecipientID,
		"recipient_type", batch.RecipientType,
		"records", len(batch.CommissionRecordIDs),
		"total_amount", batch.TotalAmount,
	)
	s.publish(ctx, commission.EventPaymentCreated, commission.NewPaymentEvent(batch, s.now()))

	return commission.ToPaymentResponse(batch), nil
}

// eligible re-checks what SelectUnpaidForUpdate promises. Cancelled records
// and zero shares are never paid.
func eligible(rec commission.CommissionRecord, share commission.RecipientType, recipientID, corpAccountID string) bool {
	if rec.Status == commission.RecordStatusCancelled {
		return false
	}
	if rec.SharePaymentStatus(share) != commission.PaymentStatusUnpaid || rec.ShareAmount(share) <= 0 {
		return false
	}
	owner, ok := rec.ShareRecipient(share, corpAccountID)
	return ok && owner == recipientID
}

// CompleteBatch settles a pending batch. Completing a batch that already
// reached a terminal status returns it unchanged.
func (s *CommissionServiceImpl) CompleteBatch(ctx context.Context, req commission.CompleteBatchRequest) (commission.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.PaymentResponse{}, err
	}

	var (
		batch   commission.CommissionPayment
		changed bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		batch, err = s.paymentRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if batch.Status.IsTerminal() {
			return nil
		}

		now := s.now()
		if _, err := s.recordRepo.SetSharePaymentStatus(ctx, batch.CommissionRecordIDs, batch.RecipientType, commission.PaymentStatusProcessing, commission.PaymentStatusPaid, &now); err != nil {
			return err
		}
		if batch.RecipientType == commission.RecipientSalesperson {
			if err := s.recordRepo.MarkPaid(ctx, batch.CommissionRecordIDs); err != nil {
				return err
			}
		}

		reference := strings.TrimSpace(req.PaymentReference)
		batch.Status = commission.BatchStatusCompleted
		batch.PaymentReference = &reference
		batch.ProcessedAt = &now
		batch, err = s.paymentRepo.UpdateStatus(ctx, batch)
		changed = err == nil
		return err
	})
	if err != nil {
		return commission.PaymentResponse{}, err
	}

	if !changed {
		s.logger.Info("payment batch already settled", "batch_id", batch.ID, "status", batch.Status)
		return commission.ToPaymentResponse(batch), nil
	}

	s.metrics.IncBatch(string(batch.RecipientType), string(commission.BatchStatusCompleted))
	s.metrics.AddPaidCents(string(batch.RecipientType), batch.TotalAmount)
	s.logger.Info("payment batch completed", "batch_id", batch.ID, "payment_reference", req.PaymentReference)
	s.publish(ctx, commission.EventPaymentCompleted, commission.NewPaymentEvent(batch, s.now()))

	return commission.ToPaymentResponse(batch), nil
}

// FailBatch releases the shares of a pending batch so they can be batched again.
func (s *CommissionServiceImpl) FailBatch(ctx context.Context, req commission.FailBatchRequest) (commission.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.PaymentResponse{}, err
	}

	var (
		batch   commission.CommissionPayment
		changed bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		batch, err = s.paymentRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if batch.Status.IsTerminal() {
			return nil
		}

		if _, err := s.recordRepo.SetSharePaymentStatus(ctx, batch.CommissionRecordIDs, batch.RecipientType, commission.PaymentStatusProcessing, commission.PaymentStatusUnpaid, nil); err != nil {
			return err
		}

		now := s.now()
		reason := strings.TrimSpace(req.Reason)
		batch.Status = commission.BatchStatusFailed
		batch.FailureReason = &reason
		batch.ProcessedAt = &now
		batch, err = s.paymentRepo.UpdateStatus(ctx, batch)
		changed = err == nil
		return err
	})
	if err != nil {
		return commission.PaymentResponse{}, err
	}

	if !changed {
		s.logger.Info("payment batch already settled", "batch_id", batch.ID, "status", batch.Status)
		return commission.ToPaymentResponse(batch), nil
	}

	s.metrics.IncBatch(string(batch.RecipientType), string(commission.BatchStatusFailed))
	s.logger.Warn("payment batch failed", "batch_id", batch.ID, "reason", req.Reason)
	s.publish(ctx, commission.EventPaymentFailed, commission.NewPaymentEvent(batch, s.now()))

	return commission.ToPaymentResponse(batch), nil
}

func (s *CommissionServiceImpl) GetBatch(ctx context.Context, id string) (commission.PaymentResponse, error) {
	if !validator.IsValidUUID(id) {
		return commission.PaymentResponse{}, commission.ErrPaymentNotFound
	}
	batch, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return commission.PaymentResponse{}, err
	}
	return commission.ToPaymentResponse(batch), nil
}

func (s *CommissionServiceImpl) ListBatches(ctx context.Context, filter commission.PaymentFilter) (commission.ListPaymentResponse, error) {
	filter.Page, filter.Limit = normalizePaging(filter.Page, filter.Limit)

	payments, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return commission.ListPaymentResponse{}, err
	}

	out := make([]commission.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, commission.ToPaymentResponse(p))
	}

	return commission.ListPaymentResponse{
		Payments:   out,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// AutoBatch opens one batch for every recipient that is owed an unpaid share.
// A failure for one recipient is counted and does not stop the others.
func (s *CommissionServiceImpl) AutoBatch(ctx context.Context) (commission.AutoBatchResult, error) {
	result := commission.AutoBatchResult{Created: []commission.PaymentResponse{}}

	for _, share := range commission.RecipientTypes {
		recipients, err := s.recordRepo.ListUnpaidRecipients(ctx, share)
		if err != nil {
			return result, fmt.Errorf("list %s recipients: %w", share, err)
		}
		if share == commission.RecipientCorp && len(recipients) > 0 {
			recipients = []string{s.opts.CorpAccountID}
		}

		for _, recipientID := range recipients {
			batch, err := s.CreateBatch(ctx, commission.CreateBatchRequest{
				RecipientID:   recipientID,
				RecipientType: string(share),
			})
			switch {
			case err == nil:
				result.Created = append(result.Created, batch)
			case errors.Is(err, commission.ErrNoEligibleRecords):
				result.Skipped++
			default:
				result.Failed++
				s.logger.Error("automatic payout batch failed", "recipient_id", recipientID, "recipient_type", share, "error", err)
			}
		}
	}

	return result, nil
}
