package http

import (
	"encoding/json"
	"net/http"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RateHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type rateHandlerImpl struct {
	commissionService commission.Service
}

func NewRateHandler(commissionService commission.Service) RateHandler {
	return &rateHandlerImpl{commissionService: commissionService}
}

func (h *rateHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.commissionService.ListRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		response.BadRequest(w, "Service category is required", nil)
		return
	}

	result, err := h.commissionService.GetRate(r.Context(), category)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		response.BadRequest(w, "Service category is required", nil)
		return
	}

	var req commission.UpsertServiceRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ServiceCategory = category

	result, err := h.commissionService.UpsertRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Service rate saved", result)
}
