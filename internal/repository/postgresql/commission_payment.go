package postgresql

import (
	"context"
	"fmt"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `
	id, recipient_id, recipient_type, total_amount, commission_record_ids::text[],
	payment_method, payment_reference, status, failure_reason, scheduled_date,
	processed_at, notes, created_at, updated_at
`

type commissionPaymentRepository struct {
	db *database.DB
}

func NewCommissionPaymentRepository(db *database.DB) commission.PaymentRepository {
	return &commissionPaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (commission.CommissionPayment, error) {
	var p commission.CommissionPayment
	err := row.Scan(
		&p.ID, &p.RecipientID, &p.RecipientType, &p.TotalAmount, &p.CommissionRecordIDs,
		&p.PaymentMethod, &p.PaymentReference, &p.Status, &p.FailureReason, &p.ScheduledDate,
		&p.ProcessedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *commissionPaymentRepository) Create(ctx context.Context, p commission.CommissionPayment) (commission.CommissionPayment, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return commission.CommissionPayment{}, fmt.Errorf("failed to generate payment id: %w", err)
	}

	query := `
		INSERT INTO commission_payments (
			id, recipient_id, recipient_type, total_amount, commission_record_ids,
			payment_method, status, scheduled_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $8)
		RETURNING ` + paymentColumns

	created, err := scanPayment(q.QueryRow(ctx, query,
		id.String(), p.RecipientID, p.RecipientType, p.TotalAmount, p.CommissionRecordIDs,
		p.PaymentMethod, p.ScheduledDate, p.Notes,
	))
	if err != nil {
		return commission.CommissionPayment{}, fmt.Errorf("failed to create commission payment: %w", err)
	}

	return created, nil
}

func (r *commissionPaymentRepository) getOne(ctx context.Context, query string, id string) (commission.CommissionPayment, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows || isMalformedID(err) {
			return commission.CommissionPayment{}, commission.ErrPaymentNotFound
		}
		return commission.CommissionPayment{}, fmt.Errorf("failed to get commission payment: %w", err)
	}
	return p, nil
}

func (r *commissionPaymentRepository) GetByID(ctx context.Context, id string) (commission.CommissionPayment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM commission_payments WHERE id = $1`, id)
}

func (r *commissionPaymentRepository) GetByIDForUpdate(ctx context.Context, id string) (commission.CommissionPayment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM commission_payments WHERE id = $1 FOR UPDATE`, id)
}

func (r *commissionPaymentRepository) List(ctx context.Context, filter commission.PaymentFilter) ([]commission.CommissionPayment, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM commission_payments WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.RecipientID != nil {
		baseQuery += fmt.Sprintf(" AND recipient_id = $%d", argIdx)
		args = append(args, *filter.RecipientID)
		argIdx++
	}
	if filter.RecipientType != nil {
		baseQuery += fmt.Sprintf(" AND recipient_type = $%d", argIdx)
		args = append(args, *filter.RecipientType)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count commission payments: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commission payments: %w", err)
	}
	defer rows.Close()

	payments := []commission.CommissionPayment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan commission payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate commission payments: %w", err)
	}

	return payments, totalCount, nil
}

// UpdateStatus records the outcome of a batch.
func (r *commissionPaymentRepository) UpdateStatus(ctx context.Context, p commission.CommissionPayment) (commission.CommissionPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE commission_payments SET
			status = $2, payment_reference = $3, failure_reason = $4,
			processed_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + paymentColumns

	updated, err := scanPayment(q.QueryRow(ctx, query,
		p.ID, p.Status, p.PaymentReference, p.FailureReason, p.ProcessedAt,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return commission.CommissionPayment{}, commission.ErrPaymentNotFound
		}
		return commission.CommissionPayment{}, fmt.Errorf("failed to update commission payment: %w", err)
	}

	return updated, nil
}
