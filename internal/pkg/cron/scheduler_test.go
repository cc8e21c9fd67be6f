package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_AddJobRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(testLogger())
	err := s.AddJob("broken", "every tuesday", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(testLogger())
	calls := 0
	require.NoError(t, s.AddJob("count", "@weekly", func(ctx context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, s.AddJob("fails", "0 3 * * 1", func(ctx context.Context) error {
		return errors.New("boom")
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, 1, calls)
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 2 * * 1"))
	assert.NoError(t, ValidateSchedule("@weekly"))
	assert.Error(t, ValidateSchedule("* * *"))
}

type autoBatchStub struct {
	commission.Service
	called bool
	err    error
}

func (s *autoBatchStub) AutoBatch(ctx context.Context) (commission.AutoBatchResult, error) {
	s.called = true
	return commission.AutoBatchResult{Skipped: 2}, s.err
}

func TestPayoutJobs_CreatePayoutBatches(t *testing.T) {
	svc := &autoBatchStub{}
	jobs := NewPayoutJobs(svc, "@weekly", testLogger())

	s := NewScheduler(testLogger())
	require.NoError(t, jobs.RegisterJobs(s))
	s.RunOnce(context.Background())

	assert.True(t, svc.called)
}

func TestPayoutJobs_PropagatesError(t *testing.T) {
	svc := &autoBatchStub{err: errors.New("db down")}
	jobs := NewPayoutJobs(svc, "@weekly", testLogger())

	assert.Error(t, jobs.CreatePayoutBatches(context.Background()))
}
