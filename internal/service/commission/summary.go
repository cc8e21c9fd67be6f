package commission

import (
	"context"
	"fmt"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// Summarize aggregates the dashboard cards. Commission totals and lead counts
// are read concurrently; neither read writes.
func (s *CommissionServiceImpl) Summarize(ctx context.Context, filter commission.SummaryFilter) (commission.SummaryResponse, error) {
	if filter.Share == "" {
		filter.Share = commission.RecipientSalesperson
	}
	if !filter.Share.IsValid() {
		return commission.SummaryResponse{}, fmt.Errorf("%w: %q", commission.ErrInvalidRecipient, filter.Share)
	}

	var (
		totals commission.Totals
		leads  commission.LeadStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.recordRepo.Aggregate(gctx, filter)
		return err
	})
	// lead counts are kept per salesperson; an override manager view has none
	if filter.SalespersonID != nil || filter.OverrideManagerID == nil {
		g.Go(func() error {
			var err error
			leads, err = s.leadRepo.Get(gctx, filter.SalespersonID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return commission.SummaryResponse{}, err
	}

	return commission.ToSummaryResponse(commission.BuildSummary(filter.Share, totals, leads)), nil
}

func (s *CommissionServiceImpl) RecordBidRequest(ctx context.Context, salespersonID string) error {
	if err := validateSalesperson(salespersonID); err != nil {
		return err
	}
	return s.leadRepo.IncrementBidRequests(ctx, salespersonID)
}

func (s *CommissionServiceImpl) RecordProfileVisit(ctx context.Context, salespersonID string) error {
	if err := validateSalesperson(salespersonID); err != nil {
		return err
	}
	return s.leadRepo.IncrementPageVisits(ctx, salespersonID)
}

func validateSalesperson(id string) error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(id) {
		errs.Add("salesperson_id", "must be a valid UUID")
	}
	return errs.Err()
}
