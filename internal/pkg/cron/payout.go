package cron

import (
	"context"
	"log/slog"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
)

// PayoutJobs batches unpaid commission shares on a schedule
type PayoutJobs struct {
	commissionService commission.Service
	schedule          string
	logger            *slog.Logger
}

func NewPayoutJobs(commissionService commission.Service, schedule string, logger *slog.Logger) *PayoutJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayoutJobs{
		commissionService: commissionService,
		schedule:          schedule,
		logger:            logger,
	}
}

// RegisterJobs registers the payout batching job
func (j *PayoutJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("create_payout_batches", j.schedule, j.CreatePayoutBatches)
}

// CreatePayoutBatches opens one batch per recipient with unpaid shares
func (j *PayoutJobs) CreatePayoutBatches(ctx context.Context) error {
	result, err := j.commissionService.AutoBatch(ctx)
	if err != nil {
		return err
	}
	j.logger.Info("payout batching finished", "created", len(result.Created), "skipped", result.Skipped, "failed", result.Failed)
	return nil
}
