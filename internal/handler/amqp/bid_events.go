package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/rabbitmq"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
)

const handleTimeout = 15 * time.Second

// BidEventConsumer turns bid request lifecycle events into commission writes.
type BidEventConsumer struct {
	commissionService commission.Service
	logger            *slog.Logger
}

func NewBidEventConsumer(commissionService commission.Service, logger *slog.Logger) *BidEventConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &BidEventConsumer{
		commissionService: commissionService,
		logger:            logger.With("component", "bid_event_consumer"),
	}
}

// Bindings maps each routing key to its handler.
func (c *BidEventConsumer) Bindings() map[string]rabbitmq.HandlerFunc {
	return map[string]rabbitmq.HandlerFunc{
		commission.EventBidRequestCreated: c.HandleBidRequestCreated,
		commission.EventBidRequestWon:     c.HandleBidRequestWon,
		commission.EventProfileVisited:    c.HandleProfileVisited,
		commission.EventProjectCancelled:  c.HandleProjectCancelled,
	}
}

func (c *BidEventConsumer) HandleBidRequestCreated(body []byte) bool {
	var event commission.BidRequestEvent
	if !c.decode(commission.EventBidRequestCreated, body, &event) {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	return c.settle(commission.EventBidRequestCreated, c.commissionService.RecordBidRequest(ctx, event.SalespersonID),
		"salesperson_id", event.SalespersonID)
}

func (c *BidEventConsumer) HandleProfileVisited(body []byte) bool {
	var event commission.BidRequestEvent
	if !c.decode(commission.EventProfileVisited, body, &event) {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	return c.settle(commission.EventProfileVisited, c.commissionService.RecordProfileVisit(ctx, event.SalespersonID),
		"salesperson_id", event.SalespersonID)
}

func (c *BidEventConsumer) HandleBidRequestWon(body []byte) bool {
	var event commission.BidRequestEvent
	if !c.decode(commission.EventBidRequestWon, body, &event) {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	rec, created, err := c.commissionService.RecordBidWon(ctx, commission.BidWonRequest{
		BidRequestID:      event.BidRequestID,
		SalespersonID:     event.SalespersonID,
		OverrideManagerID: event.OverrideManagerID,
		ServiceCategory:   event.ServiceCategory,
	})
	if err == nil {
		if created {
			c.logger.Info("commission recorded for won bid request", "bid_request_id", event.BidRequestID, "record_id", rec.ID)
		}
		return true
	}
	return c.settle(commission.EventBidRequestWon, err, "bid_request_id", event.BidRequestID)
}

func (c *BidEventConsumer) HandleProjectCancelled(body []byte) bool {
	var event commission.ProjectCancelledEvent
	if !c.decode(commission.EventProjectCancelled, body, &event) {
		return true
	}
	if event.BidRequestID == "" {
		c.logger.Warn("dropping event without bid_request_id", "routing_key", commission.EventProjectCancelled)
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	_, err := c.commissionService.CancelByBidRequest(ctx, event.BidRequestID, event.Reason)
	return c.settle(commission.EventProjectCancelled, err, "bid_request_id", event.BidRequestID)
}

func (c *BidEventConsumer) decode(routingKey string, body []byte, v interface{}) bool {
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Warn("dropping malformed event", "routing_key", routingKey, "error", err)
		return false
	}
	return true
}

// settle decides between ack and requeue. Business rejections will never
// succeed on redelivery, so they are logged and acked.
func (c *BidEventConsumer) settle(routingKey string, err error, attrs ...any) bool {
	if err == nil {
		return true
	}

	attrs = append(attrs, "routing_key", routingKey, "error", err)
	if isPermanent(err) {
		c.logger.Warn("event rejected", attrs...)
		return true
	}

	c.logger.Error("event processing failed, requeueing", attrs...)
	return false
}

func isPermanent(err error) bool {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}
	for _, target := range []error{
		commission.ErrUnknownServiceCategory,
		commission.ErrDuplicateRecord,
		commission.ErrRecordNotFound,
		commission.ErrInvalidState,
		commission.ErrInvalidStateTransition,
		commission.ErrNegativeAmount,
		commission.ErrUnbalancedAmounts,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
