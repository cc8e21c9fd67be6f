package commission

import (
	"context"
	"fmt"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
)

func (s *CommissionServiceImpl) ListRates(ctx context.Context) ([]commission.ServiceRateResponse, error) {
	rates, err := s.rateRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]commission.ServiceRateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, commission.ToServiceRateResponse(r))
	}
	return out, nil
}

func (s *CommissionServiceImpl) GetRate(ctx context.Context, category string) (commission.ServiceRateResponse, error) {
	rate, err := s.rateRepo.GetByCategory(ctx, category)
	if err != nil {
		return commission.ServiceRateResponse{}, err
	}
	return commission.ToServiceRateResponse(rate), nil
}

// UpsertRate changes the rate used for records created from now on.
// Existing records keep the split they were created with.
func (s *CommissionServiceImpl) UpsertRate(ctx context.Context, req commission.UpsertServiceRateRequest) (commission.ServiceRateResponse, error) {
	if err := req.Validate(); err != nil {
		return commission.ServiceRateResponse{}, err
	}

	rate, err := req.ToRate()
	if err != nil {
		return commission.ServiceRateResponse{}, err
	}
	if err := commission.ValidateRate(rate, s.opts.StrictRates); err != nil {
		return commission.ServiceRateResponse{}, err
	}

	saved, err := s.rateRepo.Upsert(ctx, rate)
	if err != nil {
		return commission.ServiceRateResponse{}, err
	}

	s.logger.Info("service rate updated",
		"service_category", saved.ServiceCategory,
		"salesman_commission", saved.SalesmanCommission,
		"override_commission", saved.OverrideCommission,
		"corp_commission", saved.CorpCommission,
	)
	return commission.ToServiceRateResponse(saved), nil
}

// SeedDefaultRates fills an empty rate table. It returns how many rates were written.
func (s *CommissionServiceImpl) SeedDefaultRates(ctx context.Context, rates []commission.ServiceRate) (int, error) {
	for _, rate := range rates {
		if err := commission.ValidateRate(rate, s.opts.StrictRates); err != nil {
			return 0, fmt.Errorf("default rate %q: %w", rate.ServiceCategory, err)
		}
	}

	seeded := 0
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		count, err := s.rateRepo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, rate := range rates {
			if _, err := s.rateRepo.Upsert(ctx, rate); err != nil {
				return err
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if seeded > 0 {
		s.logger.Info("seeded default service rates", "count", seeded)
	}
	return seeded, nil
}
