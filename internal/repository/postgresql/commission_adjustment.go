package postgresql

import (
	"context"
	"fmt"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/google/uuid"
)

type commissionAdjustmentRepository struct {
	db *database.DB
}

func NewCommissionAdjustmentRepository(db *database.DB) commission.AdjustmentRepository {
	return &commissionAdjustmentRepository{db: db}
}

func (r *commissionAdjustmentRepository) Create(ctx context.Context, adj commission.CommissionAdjustment) (commission.CommissionAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return commission.CommissionAdjustment{}, fmt.Errorf("failed to generate adjustment id: %w", err)
	}

	query := `
		INSERT INTO commission_adjustments (
			id, commission_record_id, adjusted_by, previous_amount, new_amount,
			adjustment_amount, reason, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, commission_record_id, adjusted_by, previous_amount, new_amount,
			adjustment_amount, reason, notes, created_at
	`

	var a commission.CommissionAdjustment
	err = q.QueryRow(ctx, query,
		id.String(), adj.CommissionRecordID, adj.AdjustedBy, adj.PreviousAmount, adj.NewAmount,
		adj.AdjustmentAmount, adj.Reason, adj.Notes,
	).Scan(
		&a.ID, &a.CommissionRecordID, &a.AdjustedBy, &a.PreviousAmount, &a.NewAmount,
		&a.AdjustmentAmount, &a.Reason, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		return commission.CommissionAdjustment{}, fmt.Errorf("failed to create commission adjustment: %w", err)
	}

	return a, nil
}

// ListByRecord returns the audit trail oldest first.
func (r *commissionAdjustmentRepository) ListByRecord(ctx context.Context, recordID string) ([]commission.CommissionAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, commission_record_id, adjusted_by, previous_amount, new_amount,
			   adjustment_amount, reason, notes, created_at
		FROM commission_adjustments
		WHERE commission_record_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := []commission.CommissionAdjustment{}
	for rows.Next() {
		var a commission.CommissionAdjustment
		if err := rows.Scan(
			&a.ID, &a.CommissionRecordID, &a.AdjustedBy, &a.PreviousAmount, &a.NewAmount,
			&a.AdjustmentAmount, &a.Reason, &a.Notes, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan commission adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}

	return adjustments, rows.Err()
}
