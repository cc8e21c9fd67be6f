package postgresql

import (
	"context"
	"fmt"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type serviceRateRepository struct {
	db *database.DB
}

func NewServiceRateRepository(db *database.DB) commission.RateRepository {
	return &serviceRateRepository{db: db}
}

func (r *serviceRateRepository) List(ctx context.Context) ([]commission.ServiceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT service_category, base_cost, salesman_commission, override_commission,
			   corp_commission, created_at, updated_at
		FROM service_rates
		ORDER BY service_category
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list service rates: %w", err)
	}
	defer rows.Close()

	rates := []commission.ServiceRate{}
	for rows.Next() {
		var s commission.ServiceRate
		if err := rows.Scan(
			&s.ServiceCategory, &s.BaseCost, &s.SalesmanCommission, &s.OverrideCommission,
			&s.CorpCommission, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan service rate: %w", err)
		}
		rates = append(rates, s)
	}

	return rates, rows.Err()
}

func (r *serviceRateRepository) GetByCategory(ctx context.Context, category string) (commission.ServiceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT service_category, base_cost, salesman_commission, override_commission,
			   corp_commission, created_at, updated_at
		FROM service_rates
		WHERE service_category = $1
	`

	var s commission.ServiceRate
	err := q.QueryRow(ctx, query, category).Scan(
		&s.ServiceCategory, &s.BaseCost, &s.SalesmanCommission, &s.OverrideCommission,
		&s.CorpCommission, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return commission.ServiceRate{}, commission.ErrServiceRateNotFound
		}
		return commission.ServiceRate{}, fmt.Errorf("failed to get service rate: %w", err)
	}

	return s, nil
}

func (r *serviceRateRepository) Upsert(ctx context.Context, rate commission.ServiceRate) (commission.ServiceRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO service_rates (
			service_category, base_cost, salesman_commission, override_commission, corp_commission
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (service_category) DO UPDATE SET
			base_cost = EXCLUDED.base_cost,
			salesman_commission = EXCLUDED.salesman_commission,
			override_commission = EXCLUDED.override_commission,
			corp_commission = EXCLUDED.corp_commission,
			updated_at = NOW()
		RETURNING service_category, base_cost, salesman_commission, override_commission,
			corp_commission, created_at, updated_at
	`

	var s commission.ServiceRate
	err := q.QueryRow(ctx, query,
		rate.ServiceCategory, rate.BaseCost, rate.SalesmanCommission, rate.OverrideCommission, rate.CorpCommission,
	).Scan(
		&s.ServiceCategory, &s.BaseCost, &s.SalesmanCommission, &s.OverrideCommission,
		&s.CorpCommission, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return commission.ServiceRate{}, fmt.Errorf("failed to upsert service rate: %w", err)
	}

	return s, nil
}

func (r *serviceRateRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM service_rates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count service rates: %w", err)
	}
	return count, nil
}
