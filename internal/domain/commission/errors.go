package commission

import "errors"

var (
	ErrUnknownServiceCategory  = errors.New("unknown service category")
	ErrServiceRateNotFound     = errors.New("service rate not found")
	ErrUnbalancedRate          = errors.New("service rate split does not sum to base cost")
	ErrNegativeAmount          = errors.New("commission amounts must be non-negative")
	ErrUnbalancedAmounts       = errors.New("commission shares do not sum to total")
	ErrDuplicateRecord         = errors.New("commission record already exists for this bid request")
	ErrRecordNotFound          = errors.New("commission record not found")
	ErrInvalidState            = errors.New("commission record state does not allow this operation")
	ErrInvalidStateTransition  = errors.New("invalid commission status transition")
	ErrRecordLocked            = errors.New("commission record is locked by a payment batch in progress")
	ErrAdjustmentExceedsCorp   = errors.New("adjustment exceeds the corporate share")
	ErrReasonRequired          = errors.New("adjustment reason is required")
	ErrNoEligibleRecords       = errors.New("no eligible commission records to pay")
	ErrPaymentNotFound         = errors.New("commission payment not found")
	ErrInvalidRecipient        = errors.New("invalid payment recipient")
	ErrUnknownAdjustmentPolicy = errors.New("unknown adjustment policy")
)
