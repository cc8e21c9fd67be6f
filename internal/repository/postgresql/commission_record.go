package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// isMalformedID reports a lookup whose id Postgres could not parse as a UUID.
// Such an id cannot name a row.
func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

const recordColumns = `
	id, bid_request_id, salesperson_id, override_manager_id, service_category,
	total_commission, salesman_amount, override_amount, corp_amount, original_amount,
	status, payment_status, paid_at,
	override_payment_status, override_paid_at, corp_payment_status, corp_paid_at,
	notes, adjustment_reason, created_at, updated_at
`

type commissionRecordRepository struct {
	db *database.DB
}

func NewCommissionRecordRepository(db *database.DB) commission.RecordRepository {
	return &commissionRecordRepository{db: db}
}

func scanRecord(row pgx.Row) (commission.CommissionRecord, error) {
	var rec commission.CommissionRecord
	err := row.Scan(
		&rec.ID, &rec.BidRequestID, &rec.SalespersonID, &rec.OverrideManagerID, &rec.ServiceCategory,
		&rec.TotalCommission, &rec.SalesmanAmount, &rec.OverrideAmount, &rec.CorpAmount, &rec.OriginalAmount,
		&rec.Status, &rec.PaymentStatus, &rec.PaidAt,
		&rec.OverridePaymentStatus, &rec.OverridePaidAt, &rec.CorpPaymentStatus, &rec.CorpPaidAt,
		&rec.Notes, &rec.AdjustmentReason, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func collectRecords(rows pgx.Rows) ([]commission.CommissionRecord, error) {
	defer rows.Close()

	records := []commission.CommissionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commission records: %w", err)
	}
	return records, nil
}

func (r *commissionRecordRepository) Create(ctx context.Context, rec commission.CommissionRecord) (commission.CommissionRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return commission.CommissionRecord{}, fmt.Errorf("failed to generate commission record id: %w", err)
	}

	query := `
		INSERT INTO commission_records (
			id, bid_request_id, salesperson_id, override_manager_id, service_category,
			total_commission, salesman_amount, override_amount, corp_amount,
			status, payment_status, override_payment_status, corp_payment_status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', 'unpaid', 'unpaid', 'unpaid', $10)
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		id.String(), rec.BidRequestID, rec.SalespersonID, rec.OverrideManagerID, rec.ServiceCategory,
		rec.TotalCommission, rec.SalesmanAmount, rec.OverrideAmount, rec.CorpAmount, rec.Notes,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "uk_commission_records_active_bid" {
			return commission.CommissionRecord{}, commission.ErrDuplicateRecord
		}
		return commission.CommissionRecord{}, fmt.Errorf("failed to create commission record: %w", err)
	}

	return created, nil
}

func (r *commissionRecordRepository) getOne(ctx context.Context, query string, args ...interface{}) (commission.CommissionRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return commission.CommissionRecord{}, commission.ErrRecordNotFound
		}
		return commission.CommissionRecord{}, fmt.Errorf("failed to get commission record: %w", err)
	}
	return rec, nil
}

func (r *commissionRecordRepository) GetByID(ctx context.Context, id string) (commission.CommissionRecord, error) {
	return r.getOne(ctx, `SELECT `+recordColumns+` FROM commission_records WHERE id = $1`, id)
}

// GetByIDForUpdate must run inside a transaction; the row stays locked until it ends.
func (r *commissionRecordRepository) GetByIDForUpdate(ctx context.Context, id string) (commission.CommissionRecord, error) {
	return r.getOne(ctx, `SELECT `+recordColumns+` FROM commission_records WHERE id = $1 FOR UPDATE`, id)
}

func (r *commissionRecordRepository) GetActiveByBidRequest(ctx context.Context, bidRequestID string) (commission.CommissionRecord, error) {
	return r.getOne(ctx, `
		SELECT `+recordColumns+`
		FROM commission_records
		WHERE bid_request_id = $1 AND status <> 'cancelled'
	`, bidRequestID)
}

func (r *commissionRecordRepository) List(ctx context.Context, filter commission.RecordFilter) ([]commission.CommissionRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM commission_records WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.SalespersonID != nil {
		baseQuery += fmt.Sprintf(" AND salesperson_id = $%d", argIdx)
		args = append(args, *filter.SalespersonID)
		argIdx++
	}
	if filter.OverrideManagerID != nil {
		baseQuery += fmt.Sprintf(" AND override_manager_id = $%d", argIdx)
		args = append(args, *filter.OverrideManagerID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.CreatedFrom != nil {
		baseQuery += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.CreatedFrom)
		argIdx++
	}
	if filter.CreatedTo != nil {
		baseQuery += fmt.Sprintf(" AND created_at < $%d", argIdx)
		args = append(args, *filter.CreatedTo)
		argIdx++
	}

	// Count query
	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count commission records: %w", err)
	}

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY created_at %s, id %s LIMIT $%d OFFSET $%d`,
		recordColumns, baseQuery, sortOrder, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commission records: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

// Update writes every mutable column of rec.
func (r *commissionRecordRepository) Update(ctx context.Context, rec commission.CommissionRecord) (commission.CommissionRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE commission_records SET
			total_commission = $2, salesman_amount = $3, override_amount = $4, corp_amount = $5,
			original_amount = $6, status = $7, notes = $8, adjustment_reason = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + recordColumns

	updated, err := scanRecord(q.QueryRow(ctx, query,
		rec.ID, rec.TotalCommission, rec.SalesmanAmount, rec.OverrideAmount, rec.CorpAmount,
		rec.OriginalAmount, rec.Status, rec.Notes, rec.AdjustmentReason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commission.CommissionRecord{}, commission.ErrRecordNotFound
		}
		return commission.CommissionRecord{}, fmt.Errorf("failed to update commission record: %w", err)
	}
	return updated, nil
}

// shareColumns maps a share to its payment status and paid-at columns and the
// predicate selecting rows owed to one recipient of that share.
func shareColumns(share commission.RecipientType) (status, paidAt, amount string, err error) {
	switch share {
	case commission.RecipientSalesperson:
		return "payment_status", "paid_at", "salesman_amount", nil
	case commission.RecipientOverride:
		return "override_payment_status", "override_paid_at", "override_amount", nil
	case commission.RecipientCorp:
		return "corp_payment_status", "corp_paid_at", "corp_amount", nil
	}
	return "", "", "", fmt.Errorf("%w: %q", commission.ErrInvalidRecipient, share)
}

func (r *commissionRecordRepository) SelectUnpaidForUpdate(ctx context.Context, recipientType commission.RecipientType, recipientID string, corpAccountID string) ([]commission.CommissionRecord, error) {
	q := GetQuerier(ctx, r.db)

	statusCol, _, amountCol, err := shareColumns(recipientType)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM commission_records
		WHERE status <> 'cancelled' AND %s = 'unpaid' AND %s > 0`, recordColumns, statusCol, amountCol)
	args := []interface{}{}

	switch recipientType {
	case commission.RecipientSalesperson:
		query += ` AND salesperson_id = $1`
		args = append(args, recipientID)
	case commission.RecipientOverride:
		query += ` AND override_manager_id = $1`
		args = append(args, recipientID)
	case commission.RecipientCorp:
		if recipientID != corpAccountID {
			return []commission.CommissionRecord{}, nil
		}
	}
	query += ` ORDER BY created_at, id FOR UPDATE SKIP LOCKED`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select unpaid commission records: %w", err)
	}
	return collectRecords(rows)
}

func (r *commissionRecordRepository) SetSharePaymentStatus(ctx context.Context, ids []string, share commission.RecipientType, from, to commission.PaymentStatus, at *time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	statusCol, paidAtCol, _, err := shareColumns(share)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		UPDATE commission_records
		SET %s = $1, %s = $2, updated_at = NOW()
		WHERE id = ANY($3) AND %s = $4
	`, statusCol, paidAtCol, statusCol)

	tag, err := q.Exec(ctx, query, to, at, ids, from)
	if err != nil {
		return 0, fmt.Errorf("failed to set %s payment status: %w", share, err)
	}
	return tag.RowsAffected(), nil
}

func (r *commissionRecordRepository) MarkPaid(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE commission_records
		SET status = 'paid', updated_at = NOW()
		WHERE id = ANY($1) AND status IN ('pending', 'adjusted')
	`

	if _, err := q.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to mark commission records paid: %w", err)
	}
	return nil
}

func (r *commissionRecordRepository) ListUnpaidRecipients(ctx context.Context, share commission.RecipientType) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	statusCol, _, amountCol, err := shareColumns(share)
	if err != nil {
		return nil, err
	}

	var recipientCol string
	switch share {
	case commission.RecipientSalesperson:
		recipientCol = "salesperson_id::text"
	case commission.RecipientOverride:
		recipientCol = "override_manager_id::text"
	case commission.RecipientCorp:
		// the corp share always has one recipient; report whether anything is owed
		recipientCol = "'corp'::text"
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM commission_records
		WHERE status <> 'cancelled' AND %s = 'unpaid' AND %s > 0 AND %s IS NOT NULL
	`, recipientCol, statusCol, amountCol, recipientCol)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid recipients: %w", err)
	}
	defer rows.Close()

	recipients := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, id)
	}
	return recipients, rows.Err()
}

func (r *commissionRecordRepository) Aggregate(ctx context.Context, filter commission.SummaryFilter) (commission.Totals, error) {
	q := GetQuerier(ctx, r.db)

	statusCol, _, amountCol, err := shareColumns(filter.Share)
	if err != nil {
		return commission.Totals{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE status <> 'cancelled'),
			COALESCE(SUM(%[1]s) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM(%[1]s) FILTER (WHERE status <> 'cancelled' AND %[2]s <> 'paid'), 0),
			COALESCE(SUM(%[1]s) FILTER (WHERE %[2]s = 'paid'), 0)
		FROM commission_records
		WHERE TRUE`, amountCol, statusCol)
	args := []interface{}{}
	argIdx := 1

	if filter.SalespersonID != nil {
		query += fmt.Sprintf(" AND salesperson_id = $%d", argIdx)
		args = append(args, *filter.SalespersonID)
		argIdx++
	}
	if filter.OverrideManagerID != nil {
		query += fmt.Sprintf(" AND override_manager_id = $%d", argIdx)
		args = append(args, *filter.OverrideManagerID)
	}

	var t commission.Totals
	if err := q.QueryRow(ctx, query, args...).Scan(&t.Records, &t.Earned, &t.Pending, &t.Paid); err != nil {
		return commission.Totals{}, fmt.Errorf("failed to aggregate commission records: %w", err)
	}
	return t, nil
}
