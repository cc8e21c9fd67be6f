package commission

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/google/uuid"
)

// memStore backs every repository stub. Whole transactions are serialised by
// memTransactor, which mirrors the row locks the postgres repositories take.
type memStore struct {
	mu          sync.Mutex
	seq         int
	base        time.Time
	rates       map[string]commission.ServiceRate
	records     map[string]commission.CommissionRecord
	adjustments []commission.CommissionAdjustment
	payments    map[string]commission.CommissionPayment
	leads       map[string]commission.LeadStats
}

func newMemStore() *memStore {
	return &memStore{
		base:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		rates:    map[string]commission.ServiceRate{},
		records:  map[string]commission.CommissionRecord{},
		payments: map[string]commission.CommissionPayment{},
		leads:    map[string]commission.LeadStats{},
	}
}

// tick returns a strictly increasing timestamp. Callers hold mu.
func (m *memStore) tick() time.Time {
	m.seq++
	return m.base.Add(time.Duration(m.seq) * time.Second)
}

type memSnapshot struct {
	rates       map[string]commission.ServiceRate
	records     map[string]commission.CommissionRecord
	adjustments []commission.CommissionAdjustment
	payments    map[string]commission.CommissionPayment
	leads       map[string]commission.LeadStats
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := memSnapshot{
		rates:       make(map[string]commission.ServiceRate, len(m.rates)),
		records:     make(map[string]commission.CommissionRecord, len(m.records)),
		adjustments: append([]commission.CommissionAdjustment(nil), m.adjustments...),
		payments:    make(map[string]commission.CommissionPayment, len(m.payments)),
		leads:       make(map[string]commission.LeadStats, len(m.leads)),
	}
	for k, v := range m.rates {
		s.rates[k] = v
	}
	for k, v := range m.records {
		s.records[k] = v
	}
	for k, v := range m.payments {
		v.CommissionRecordIDs = append([]string(nil), v.CommissionRecordIDs...)
		s.payments[k] = v
	}
	for k, v := range m.leads {
		s.leads[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rates = s.rates
	m.records = s.records
	m.adjustments = s.adjustments
	m.payments = s.payments
	m.leads = s.leads
}

func (m *memStore) recordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *memStore) adjustmentCount(recordID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, a := range m.adjustments {
		if a.CommissionRecordID == recordID {
			n++
		}
	}
	return n
}

func (m *memStore) record(id string) commission.CommissionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

func (m *memStore) paymentList() []commission.CommissionPayment {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]commission.CommissionPayment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, p)
	}
	return out
}

// sortedRecords returns records oldest first. Callers hold mu.
func (m *memStore) sortedRecords() []commission.CommissionRecord {
	out := make([]commission.CommissionRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type txMarker struct{}

type memTransactor struct {
	mu    sync.Mutex
	store *memStore
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ========== RATES ==========

type memRateRepo struct{ *memStore }

func (r memRateRepo) List(ctx context.Context) ([]commission.ServiceRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]commission.ServiceRate, 0, len(r.rates))
	for _, rate := range r.rates {
		out = append(out, rate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceCategory < out[j].ServiceCategory })
	return out, nil
}

func (r memRateRepo) GetByCategory(ctx context.Context, category string) (commission.ServiceRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rate, ok := r.rates[category]
	if !ok {
		return commission.ServiceRate{}, commission.ErrServiceRateNotFound
	}
	return rate, nil
}

func (r memRateRepo) Upsert(ctx context.Context, rate commission.ServiceRate) (commission.ServiceRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()
	if existing, ok := r.rates[rate.ServiceCategory]; ok {
		rate.CreatedAt = existing.CreatedAt
	} else {
		rate.CreatedAt = now
	}
	rate.UpdatedAt = now
	r.rates[rate.ServiceCategory] = rate
	return rate, nil
}

func (r memRateRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rates)), nil
}

// ========== RECORDS ==========

type memRecordRepo struct{ *memStore }

func (r memRecordRepo) Create(ctx context.Context, rec commission.CommissionRecord) (commission.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.BidRequestID == rec.BidRequestID && existing.Status != commission.RecordStatusCancelled {
			return commission.CommissionRecord{}, commission.ErrDuplicateRecord
		}
	}

	rec.ID = uuid.NewString()
	rec.Status = commission.RecordStatusPending
	rec.PaymentStatus = commission.PaymentStatusUnpaid
	rec.OverridePaymentStatus = commission.PaymentStatusUnpaid
	rec.CorpPaymentStatus = commission.PaymentStatusUnpaid
	rec.CreatedAt = r.tick()
	rec.UpdatedAt = rec.CreatedAt
	r.records[rec.ID] = rec
	return rec, nil
}

func (r memRecordRepo) GetByID(ctx context.Context, id string) (commission.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return commission.CommissionRecord{}, commission.ErrRecordNotFound
	}
	return rec, nil
}

func (r memRecordRepo) GetByIDForUpdate(ctx context.Context, id string) (commission.CommissionRecord, error) {
	return r.GetByID(ctx, id)
}

func (r memRecordRepo) GetActiveByBidRequest(ctx context.Context, bidRequestID string) (commission.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.BidRequestID == bidRequestID && rec.Status != commission.RecordStatusCancelled {
			return rec, nil
		}
	}
	return commission.CommissionRecord{}, commission.ErrRecordNotFound
}

func (r memRecordRepo) List(ctx context.Context, filter commission.RecordFilter) ([]commission.CommissionRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []commission.CommissionRecord
	for _, rec := range r.sortedRecords() {
		if filter.SalespersonID != nil && rec.SalespersonID != *filter.SalespersonID {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		matched = append(matched, rec)
	}
	if filter.SortOrder != "asc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return append([]commission.CommissionRecord{}, matched[start:end]...), total, nil
}

func (r memRecordRepo) Update(ctx context.Context, rec commission.CommissionRecord) (commission.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; !ok {
		return commission.CommissionRecord{}, commission.ErrRecordNotFound
	}
	if !rec.Amounts().Balanced() {
		return commission.CommissionRecord{}, errors.New("split check violated")
	}
	rec.UpdatedAt = r.tick()
	r.records[rec.ID] = rec
	return rec, nil
}

func (r memRecordRepo) SelectUnpaidForUpdate(ctx context.Context, recipientType commission.RecipientType, recipientID string, corpAccountID string) ([]commission.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []commission.CommissionRecord
	for _, rec := range r.sortedRecords() {
		if rec.Status == commission.RecordStatusCancelled {
			continue
		}
		if rec.SharePaymentStatus(recipientType) != commission.PaymentStatusUnpaid || rec.ShareAmount(recipientType) <= 0 {
			continue
		}
		if owner, ok := rec.ShareRecipient(recipientType, corpAccountID); ok && owner == recipientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func setShare(rec *commission.CommissionRecord, share commission.RecipientType, to commission.PaymentStatus, at *time.Time) {
	switch share {
	case commission.RecipientSalesperson:
		rec.PaymentStatus, rec.PaidAt = to, at
	case commission.RecipientOverride:
		rec.OverridePaymentStatus, rec.OverridePaidAt = to, at
	case commission.RecipientCorp:
		rec.CorpPaymentStatus, rec.CorpPaidAt = to, at
	}
}

func (r memRecordRepo) SetSharePaymentStatus(ctx context.Context, ids []string, share commission.RecipientType, from, to commission.PaymentStatus, at *time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range ids {
		rec, ok := r.records[id]
		if !ok || rec.SharePaymentStatus(share) != from {
			continue
		}
		setShare(&rec, share, to, at)
		r.records[id] = rec
		n++
	}
	return n, nil
}

func (r memRecordRepo) MarkPaid(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		rec := r.records[id]
		if rec.Status == commission.RecordStatusPending || rec.Status == commission.RecordStatusAdjusted {
			rec.Status = commission.RecordStatusPaid
			r.records[id] = rec
		}
	}
	return nil
}

func (r memRecordRepo) ListUnpaidRecipients(ctx context.Context, share commission.RecipientType) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{}
	var out []string
	for _, rec := range r.sortedRecords() {
		if rec.Status == commission.RecordStatusCancelled || rec.SharePaymentStatus(share) != commission.PaymentStatusUnpaid || rec.ShareAmount(share) <= 0 {
			continue
		}
		owner, ok := rec.ShareRecipient(share, "corp")
		if !ok || seen[owner] {
			continue
		}
		seen[owner] = true
		out = append(out, owner)
	}
	return out, nil
}

func (r memRecordRepo) Aggregate(ctx context.Context, filter commission.SummaryFilter) (commission.Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var t commission.Totals
	for _, rec := range r.records {
		if filter.SalespersonID != nil && rec.SalespersonID != *filter.SalespersonID {
			continue
		}
		if filter.OverrideManagerID != nil && (rec.OverrideManagerID == nil || *rec.OverrideManagerID != *filter.OverrideManagerID) {
			continue
		}
		amount := rec.ShareAmount(filter.Share)
		// money already paid out stays in the paid total
		if rec.SharePaymentStatus(filter.Share) == commission.PaymentStatusPaid {
			t.Paid += amount
		}
		if rec.Status == commission.RecordStatusCancelled {
			continue
		}
		t.Records++
		t.Earned += amount
		if rec.SharePaymentStatus(filter.Share) != commission.PaymentStatusPaid {
			t.Pending += amount
		}
	}
	return t, nil
}

// ========== ADJUSTMENTS ==========

type memAdjustmentRepo struct{ *memStore }

func (r memAdjustmentRepo) Create(ctx context.Context, adj commission.CommissionAdjustment) (commission.CommissionAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	adj.ID = uuid.NewString()
	adj.CreatedAt = r.tick()
	r.adjustments = append(r.adjustments, adj)
	return adj, nil
}

func (r memAdjustmentRepo) ListByRecord(ctx context.Context, recordID string) ([]commission.CommissionAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []commission.CommissionAdjustment{}
	for _, a := range r.adjustments {
		if a.CommissionRecordID == recordID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ========== PAYMENTS ==========

type memPaymentRepo struct{ *memStore }

func (r memPaymentRepo) Create(ctx context.Context, p commission.CommissionPayment) (commission.CommissionPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = uuid.NewString()
	p.Status = commission.BatchStatusPending
	p.CommissionRecordIDs = append([]string(nil), p.CommissionRecordIDs...)
	p.CreatedAt = r.tick()
	p.UpdatedAt = p.CreatedAt
	r.payments[p.ID] = p
	return p, nil
}

func (r memPaymentRepo) GetByID(ctx context.Context, id string) (commission.CommissionPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return commission.CommissionPayment{}, commission.ErrPaymentNotFound
	}
	return p, nil
}

func (r memPaymentRepo) GetByIDForUpdate(ctx context.Context, id string) (commission.CommissionPayment, error) {
	return r.GetByID(ctx, id)
}

func (r memPaymentRepo) List(ctx context.Context, filter commission.PaymentFilter) ([]commission.CommissionPayment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []commission.CommissionPayment{}
	for _, p := range r.payments {
		if filter.RecipientID != nil && p.RecipientID != *filter.RecipientID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r memPaymentRepo) UpdateStatus(ctx context.Context, p commission.CommissionPayment) (commission.CommissionPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[p.ID]; !ok {
		return commission.CommissionPayment{}, commission.ErrPaymentNotFound
	}
	p.UpdatedAt = r.tick()
	r.payments[p.ID] = p
	return p, nil
}

// ========== LEADS ==========

type memLeadRepo struct{ *memStore }

func (r memLeadRepo) IncrementBidRequests(ctx context.Context, salespersonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.leads[salespersonID]
	s.SalespersonID = salespersonID
	s.BidRequests++
	r.leads[salespersonID] = s
	return nil
}

func (r memLeadRepo) IncrementPageVisits(ctx context.Context, salespersonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.leads[salespersonID]
	s.SalespersonID = salespersonID
	s.PageVisits++
	r.leads[salespersonID] = s
	return nil
}

func (r memLeadRepo) Get(ctx context.Context, salespersonID *string) (commission.LeadStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if salespersonID != nil {
		s := r.leads[*salespersonID]
		s.SalespersonID = *salespersonID
		return s, nil
	}
	var total commission.LeadStats
	for _, s := range r.leads {
		total.BidRequests += s.BidRequests
		total.PageVisits += s.PageVisits
	}
	return total, nil
}

// ========== EVENTS ==========

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// ========== FIXTURE ==========

type fixture struct {
	store     *memStore
	publisher *recordingPublisher
	svc       commission.Service
}

func newFixture(opts Options) *fixture {
	store := newMemStore()
	publisher := &recordingPublisher{}
	if opts.CorpAccountID == "" {
		opts.CorpAccountID = "corp"
	}

	svc := NewCommissionService(
		&memTransactor{store: store},
		Repositories{
			Rates:       memRateRepo{store},
			Records:     memRecordRepo{store},
			Adjustments: memAdjustmentRepo{store},
			Payments:    memPaymentRepo{store},
			Leads:       memLeadRepo{store},
		},
		publisher,
		nil,
		opts,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return &fixture{store: store, publisher: publisher, svc: svc}
}
