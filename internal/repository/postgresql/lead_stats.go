package postgresql

import (
	"context"
	"fmt"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leadStatsRepository struct {
	db *database.DB
}

func NewLeadStatsRepository(db *database.DB) commission.LeadStatsRepository {
	return &leadStatsRepository{db: db}
}

func (r *leadStatsRepository) IncrementBidRequests(ctx context.Context, salespersonID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salesperson_lead_stats (salesperson_id, bid_requests)
		VALUES ($1, 1)
		ON CONFLICT (salesperson_id) DO UPDATE SET
			bid_requests = salesperson_lead_stats.bid_requests + 1,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, salespersonID); err != nil {
		return fmt.Errorf("failed to increment bid requests: %w", err)
	}
	return nil
}

func (r *leadStatsRepository) IncrementPageVisits(ctx context.Context, salespersonID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salesperson_lead_stats (salesperson_id, page_visits)
		VALUES ($1, 1)
		ON CONFLICT (salesperson_id) DO UPDATE SET
			page_visits = salesperson_lead_stats.page_visits + 1,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, salespersonID); err != nil {
		return fmt.Errorf("failed to increment page visits: %w", err)
	}
	return nil
}

// Get returns zero counts for a salesperson with no recorded activity.
func (r *leadStatsRepository) Get(ctx context.Context, salespersonID *string) (commission.LeadStats, error) {
	q := GetQuerier(ctx, r.db)

	var s commission.LeadStats
	if salespersonID == nil {
		query := `
			SELECT COALESCE(SUM(bid_requests), 0), COALESCE(SUM(page_visits), 0), COALESCE(MAX(updated_at), NOW())
			FROM salesperson_lead_stats
		`
		if err := q.QueryRow(ctx, query).Scan(&s.BidRequests, &s.PageVisits, &s.UpdatedAt); err != nil {
			return commission.LeadStats{}, fmt.Errorf("failed to sum lead stats: %w", err)
		}
		return s, nil
	}

	query := `
		SELECT salesperson_id, bid_requests, page_visits, updated_at
		FROM salesperson_lead_stats
		WHERE salesperson_id = $1
	`
	err := q.QueryRow(ctx, query, *salespersonID).Scan(&s.SalespersonID, &s.BidRequests, &s.PageVisits, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return commission.LeadStats{SalespersonID: *salespersonID}, nil
		}
		return commission.LeadStats{}, fmt.Errorf("failed to get lead stats: %w", err)
	}

	return s, nil
}
