package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/user"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/handler/http/response"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/jwt"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CommissionHandler interface {
	// Records
	ListRecords(w http.ResponseWriter, r *http.Request)
	CreateRecord(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)

	// Adjustments
	Adjust(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)

	// Summary
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type commissionHandlerImpl struct {
	commissionService commission.Service
}

func NewCommissionHandler(commissionService commission.Service) CommissionHandler {
	return &commissionHandlerImpl{commissionService: commissionService}
}

// ========== RECORDS ==========

func (h *commissionHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	principal, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := commission.RecordFilter{
		Page:      1,
		Limit:     20,
		SortOrder: "desc",
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
	if sortOrder := query.Get("sort_order"); sortOrder == "asc" {
		filter.SortOrder = sortOrder
	}

	var errs validator.ValidationErrors
	if status := query.Get("status"); status != "" {
		s := commission.RecordStatus(status)
		if !s.IsValid() {
			errs.Add("status", "must be one of pending, adjusted, paid, cancelled")
		}
		filter.Status = &s
	}
	if from := query.Get("from"); from != "" {
		date, ok := validator.IsValidDate(from)
		if !ok {
			errs.Add("from", "must be in YYYY-MM-DD format")
		}
		filter.CreatedFrom = &date
	}
	if to := query.Get("to"); to != "" {
		date, ok := validator.IsValidDate(to)
		if !ok {
			errs.Add("to", "must be in YYYY-MM-DD format")
		}
		// inclusive of the whole day
		end := date.Add(24 * time.Hour)
		filter.CreatedTo = &end
	}

	switch {
	case principal.Can(user.PermissionCommissionViewAll):
		filter.SalespersonID = uuidQuery(query, "salesperson_id", &errs)
		filter.OverrideManagerID = uuidQuery(query, "override_manager_id", &errs)
	case principal.Role == user.RoleOverrideManager:
		filter.OverrideManagerID = &principal.ID
	default:
		filter.SalespersonID = &principal.ID
	}

	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commissionService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// CreateRecord records a won bid request entered by an administrator. The
// split comes from the current service rate table.
func (h *commissionHandlerImpl) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req commission.BidWonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, created, err := h.commissionService.RecordBidWon(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !created {
		response.SuccessWithMessage(w, "Commission record already exists", result)
		return
	}
	response.Created(w, "Commission record created", result)
}

func (h *commissionHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrRecordNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.visibleRecord(r, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *commissionHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrRecordNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req commission.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.commissionService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Commission status updated", result)
}

// ========== ADJUSTMENTS ==========

func (h *commissionHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrRecordNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	principal, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req commission.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RecordID = id
	req.AdjustedBy = principal.ID

	result, err := h.commissionService.Adjust(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Commission adjusted", result)
}

func (h *commissionHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, commission.ErrRecordNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if _, err := h.visibleRecord(r, id); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commissionService.ListAdjustments(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SUMMARY ==========

func (h *commissionHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	principal, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter commission.SummaryFilter
	query := r.URL.Query()

	var errs validator.ValidationErrors
	switch {
	case principal.Can(user.PermissionCommissionViewAll):
		filter.SalespersonID = uuidQuery(query, "salesperson_id", &errs)
		filter.OverrideManagerID = uuidQuery(query, "override_manager_id", &errs)
		filter.Share = commission.RecipientType(query.Get("share"))
	case principal.Role == user.RoleOverrideManager:
		filter.OverrideManagerID = &principal.ID
		filter.Share = commission.RecipientOverride
	default:
		filter.SalespersonID = &principal.ID
		filter.Share = commission.RecipientSalesperson
	}

	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commissionService.Summarize(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// visibleRecord loads a record and checks the caller may see it. Without
// view_all a caller sees only records where they earn a share.
func (h *commissionHandlerImpl) visibleRecord(r *http.Request, id string) (commission.RecordResponse, error) {
	principal, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		return commission.RecordResponse{}, err
	}

	record, err := h.commissionService.GetRecord(r.Context(), id)
	if err != nil {
		return commission.RecordResponse{}, err
	}

	if principal.Can(user.PermissionCommissionViewAll) {
		return record, nil
	}
	if record.SalespersonID == principal.ID {
		return record, nil
	}
	if record.OverrideManagerID != nil && *record.OverrideManagerID == principal.ID {
		return record, nil
	}
	return commission.RecordResponse{}, user.ErrForeignRecord
}

// pathUUID reads the id path parameter. An id that is not a UUID cannot
// name a stored row, so it is reported as notFound.
func pathUUID(r *http.Request, notFound error) (string, error) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		return "", notFound
	}
	return id, nil
}

// uuidQuery reads an optional id filter from the query string.
func uuidQuery(query url.Values, key string, errs *validator.ValidationErrors) *string {
	id := query.Get(key)
	if id == "" {
		return nil
	}
	if !validator.IsValidUUID(id) {
		errs.Add(key, "must be a valid UUID")
		return nil
	}
	return &id
}
