package commission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
)

func (s *CommissionServiceImpl) CreateRecord(ctx context.Context, in commission.CreateRecordInput) (commission.RecordResponse, error) {
	rec, err := s.createRecord(ctx, in)
	if err != nil {
		return commission.RecordResponse{}, err
	}
	return commission.ToRecordResponse(rec), nil
}

func (s *CommissionServiceImpl) createRecord(ctx context.Context, in commission.CreateRecordInput) (commission.CommissionRecord, error) {
	if in.OverrideManagerID != nil && *in.OverrideManagerID == "" {
		in.OverrideManagerID = nil
	}
	if err := in.Validate(); err != nil {
		return commission.CommissionRecord{}, err
	}
	if err := commission.ValidateAmounts(in.Amounts); err != nil {
		return commission.CommissionRecord{}, err
	}

	created, err := s.recordRepo.Create(ctx, commission.CommissionRecord{
		BidRequestID:      in.BidRequestID,
		SalespersonID:     in.SalespersonID,
		OverrideManagerID: in.OverrideManagerID,
		ServiceCategory:   in.ServiceCategory,
		TotalCommission:   in.Amounts.Total,
		SalesmanAmount:    in.Amounts.Salesman,
		OverrideAmount:    in.Amounts.Override,
		CorpAmount:        in.Amounts.Corp,
		Notes:             in.Notes,
	})
	if err != nil {
		return commission.CommissionRecord{}, err
	}

	s.metrics.IncRecordCreated(created.ServiceCategory)
	s.logger.Info("commission record created",
		"record_id", created.ID,
		"bid_request_id", created.BidRequestID,
		"salesperson_id", created.SalespersonID,
		"total_commission", created.TotalCommission,
	)
	s.publish(ctx, commission.EventRecordCreated, commission.NewRecordEvent(created, s.now()))

	return created, nil
}

// RecordBidWon snapshots the current rate for the category into a new record.
// A repeat of the same signal returns the record created the first time.
func (s *CommissionServiceImpl) RecordBidWon(ctx context.Context, req commission.BidWonRequest) (commission.RecordResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return commission.RecordResponse{}, false, err
	}

	rate, err := s.rateRepo.GetByCategory(ctx, req.ServiceCategory)
	if err != nil {
		if errors.Is(err, commission.ErrServiceRateNotFound) {
			return commission.RecordResponse{}, false, fmt.Errorf("%w: %q", commission.ErrUnknownServiceCategory, req.ServiceCategory)
		}
		return commission.RecordResponse{}, false, err
	}

	amounts, err := commission.ComputeCommission(req.ServiceCategory, commission.NewRateTable([]commission.ServiceRate{rate}))
	if err != nil {
		return commission.RecordResponse{}, false, err
	}

	rec, err := s.createRecord(ctx, commission.CreateRecordInput{
		BidRequestID:      req.BidRequestID,
		SalespersonID:     req.SalespersonID,
		OverrideManagerID: req.OverrideManagerID,
		ServiceCategory:   req.ServiceCategory,
		Amounts:           amounts,
		Notes:             req.Notes,
	})
	if err == nil {
		return commission.ToRecordResponse(rec), true, nil
	}
	if !errors.Is(err, commission.ErrDuplicateRecord) {
		return commission.RecordResponse{}, false, err
	}

	existing, getErr := s.recordRepo.GetActiveByBidRequest(ctx, req.BidRequestID)
	if getErr != nil {
		return commission.RecordResponse{}, false, err
	}
	if existing.SalespersonID != req.SalespersonID || existing.ServiceCategory != req.ServiceCategory {
		return commission.RecordResponse{}, false, fmt.Errorf("%w: bid request %s belongs to record %s", commission.ErrDuplicateRecord, req.BidRequestID, existing.ID)
	}

	s.logger.Debug("bid request already has a commission record", "bid_request_id", req.BidRequestID, "record_id", existing.ID)
	return commission.ToRecordResponse(existing), false, nil
}

func (s *CommissionServiceImpl) GetRecord(ctx context.Context, id string) (commission.RecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return commission.RecordResponse{}, commission.ErrRecordNotFound
	}
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return commission.RecordResponse{}, err
	}
	return commission.ToRecordResponse(rec), nil
}

func (s *CommissionServiceImpl) ListRecords(ctx context.Context, filter commission.RecordFilter) (commission.ListRecordResponse, error) {
	filter.Page, filter.Limit = normalizePaging(filter.Page, filter.Limit)

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return commission.ListRecordResponse{}, err
	}

	return commission.ListRecordResponse{
		Records:    commission.ToRecordResponses(records),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// UpdateStatus applies an administrative status change. "adjusted" is only
// reachable through Adjust and "paid" only once the salesperson share is paid.
func (s *CommissionServiceImpl) UpdateStatus(ctx context.Context, req commission.UpdateStatusRequest) (commission.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.RecordResponse{}, err
	}
	if !validator.IsValidUUID(req.ID) {
		return commission.RecordResponse{}, commission.ErrRecordNotFound
	}

	var updated commission.CommissionRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := s.recordRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		updated, err = s.transition(ctx, rec, commission.RecordStatus(req.Status), req.Notes)
		return err
	})
	if err != nil {
		return commission.RecordResponse{}, err
	}

	s.afterTransition(ctx, updated)
	return commission.ToRecordResponse(updated), nil
}

// CancelByBidRequest cancels the live record of a bid request whose project fell through.
func (s *CommissionServiceImpl) CancelByBidRequest(ctx context.Context, bidRequestID string, reason string) (commission.RecordResponse, error) {
	var notes *string
	if r := strings.TrimSpace(reason); r != "" {
		notes = &r
	}

	var updated commission.CommissionRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.recordRepo.GetActiveByBidRequest(ctx, bidRequestID)
		if err != nil {
			return err
		}
		rec, err := s.recordRepo.GetByIDForUpdate(ctx, active.ID)
		if err != nil {
			return err
		}
		updated, err = s.transition(ctx, rec, commission.RecordStatusCancelled, notes)
		return err
	})
	if err != nil {
		return commission.RecordResponse{}, err
	}

	s.afterTransition(ctx, updated)
	return commission.ToRecordResponse(updated), nil
}

// transition must run with rec locked.
func (s *CommissionServiceImpl) transition(ctx context.Context, rec commission.CommissionRecord, to commission.RecordStatus, notes *string) (commission.CommissionRecord, error) {
	if to == commission.RecordStatusAdjusted {
		return commission.CommissionRecord{}, fmt.Errorf("%w: use an adjustment to change amounts", commission.ErrInvalidStateTransition)
	}
	if err := commission.CheckTransition(rec.Status, to); err != nil {
		return commission.CommissionRecord{}, err
	}

	switch to {
	case commission.RecordStatusPaid:
		if rec.PaymentStatus != commission.PaymentStatusPaid {
			return commission.CommissionRecord{}, fmt.Errorf("%w: salesperson share is %s", commission.ErrInvalidState, rec.PaymentStatus)
		}
	case commission.RecordStatusCancelled:
		if rec.AnyShareProcessing() {
			return commission.CommissionRecord{}, commission.ErrRecordLocked
		}
		if rec.AnySharePaid() {
			return commission.CommissionRecord{}, fmt.Errorf("%w: a share of this record has already been paid", commission.ErrInvalidState)
		}
	}

	rec.Status = to
	if notes != nil {
		rec.Notes = notes
	}
	return s.recordRepo.Update(ctx, rec)
}

func (s *CommissionServiceImpl) afterTransition(ctx context.Context, rec commission.CommissionRecord) {
	s.logger.Info("commission record status changed", "record_id", rec.ID, "status", rec.Status)
	s.publish(ctx, commission.EventRecordStatusChanged, commission.NewRecordEvent(rec, s.now()))
}
