package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/auth"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/response"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/webhook"
)

const maxWebhookBody = 64 << 10

type PayoutWebhookHandler interface {
	HandlePayout(w http.ResponseWriter, r *http.Request)
}

type payoutWebhookHandlerImpl struct {
	commissionService commission.Service
	verifier          *webhook.Verifier
}

func NewPayoutWebhookHandler(commissionService commission.Service, verifier *webhook.Verifier) PayoutWebhookHandler {
	return &payoutWebhookHandlerImpl{
		commissionService: commissionService,
		verifier:          verifier,
	}
}

// HandlePayout settles a batch from the payment rail callback. The rail
// retries until it gets a 2xx, and settling an already settled batch is a no-op.
// POST /api/v1/webhooks/payouts - Public (token or signature verified)
func (h *payoutWebhookHandlerImpl) HandlePayout(w http.ResponseWriter, r *http.Request) {
	// Read the raw body for signature verification
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "failed to read request body", nil)
		return
	}

	signature := r.Header.Get(webhook.HeaderCallbackSignature)
	token := r.Header.Get(webhook.HeaderCallbackToken)
	verified := false
	if signature != "" {
		verified = h.verifier.VerifySignature(body, signature)
	} else if token != "" {
		verified = h.verifier.VerifyToken(token)
	}
	if !verified {
		response.HandleError(w, auth.ErrInvalidWebhookToken)
		return
	}

	var payload commission.PayoutWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BadRequest(w, "invalid webhook payload", nil)
		return
	}
	if err := payload.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var result commission.PaymentResponse
	if commission.BatchStatus(payload.Status) == commission.BatchStatusCompleted {
		result, err = h.commissionService.CompleteBatch(r.Context(), commission.CompleteBatchRequest{
			ID:               payload.BatchID,
			PaymentReference: payload.Reference,
		})
	} else {
		reason := payload.FailureReason
		if reason == "" {
			reason = "payout rejected by payment provider"
		}
		result, err = h.commissionService.FailBatch(r.Context(), commission.FailBatchRequest{
			ID:     payload.BatchID,
			Reason: reason,
		})
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{
		"status":   "received",
		"batch_id": result.ID,
		"state":    result.Status,
	})
}
