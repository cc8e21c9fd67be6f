package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/auth"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/user"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/money"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidWebhookToken):
		Unauthorized(w, "Invalid callback token")
	case errors.Is(err, user.ErrPrincipalMissing):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrInvalidRole):
		Forbidden(w, "Unknown role")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrForeignRecord):
		Forbidden(w, "Commission record belongs to another salesperson")

	// Commission domain errors
	case errors.Is(err, commission.ErrRecordNotFound):
		NotFound(w, "Commission record not found")
	case errors.Is(err, commission.ErrPaymentNotFound):
		NotFound(w, "Commission payment not found")
	case errors.Is(err, commission.ErrServiceRateNotFound):
		NotFound(w, "Service rate not found")
	case errors.Is(err, commission.ErrUnknownServiceCategory):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, commission.ErrDuplicateRecord):
		Conflict(w, "Commission record already exists for this bid request")
	case errors.Is(err, commission.ErrInvalidStateTransition):
		Conflict(w, err.Error())
	case errors.Is(err, commission.ErrInvalidState):
		Conflict(w, err.Error())
	case errors.Is(err, commission.ErrRecordLocked):
		Locked(w, "Commission record is held by a payment batch in progress, retry shortly")
	case errors.Is(err, commission.ErrAdjustmentExceedsCorp):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, commission.ErrReasonRequired),
		errors.Is(err, commission.ErrNegativeAmount),
		errors.Is(err, commission.ErrUnbalancedAmounts),
		errors.Is(err, commission.ErrUnbalancedRate),
		errors.Is(err, commission.ErrInvalidRecipient),
		errors.Is(err, money.ErrFractionalCents),
		errors.Is(err, money.ErrOutOfRange):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
