package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/response"
)

type PaymentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	AutoBatch(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Fail(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	commissionService commission.Service
}

func NewPaymentHandler(commissionService commission.Service) PaymentHandler {
	return &paymentHandlerImpl{commissionService: commissionService}
}

func (h *paymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := commission.PaymentFilter{
		Page:  1,
		Limit: 20,
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if recipientID := query.Get("recipient_id"); recipientID != "" {
		filter.RecipientID = &recipientID
	}
	if recipientType := query.Get("recipient_type"); recipientType != "" {
		t := commission.RecipientType(recipientType)
		filter.RecipientType = &t
	}
	if status := query.Get("status"); status != "" {
		s := commission.BatchStatus(status)
		filter.Status = &s
	}

	result, err := h.commissionService.ListBatches(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Payments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Create opens a batch. Having nothing to pay is not an error: the response
// carries a null batch.
func (h *paymentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req commission.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.commissionService.CreateBatch(r.Context(), req)
	if errors.Is(err, commission.ErrNoEligibleRecords) {
		response.Success(w, commission.CreateBatchResponse{Message: "No eligible commission records to pay"})
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment batch created", commission.CreateBatchResponse{Batch: &result})
}

func (h *paymentHandlerImpl) AutoBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.commissionService.AutoBatch(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrPaymentNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commissionService.GetBatch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrPaymentNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req commission.CompleteBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.commissionService.CompleteBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment batch completed", result)
}

func (h *paymentHandlerImpl) Fail(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrPaymentNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req commission.FailBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.commissionService.FailBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment batch marked as failed", result)
}
