package service

import "errors"

// Validation errors surface to the caller with a 4xx status and never leave
// partial wallet state behind. Anything else is an internal error.
var (
	ErrMissingID              = errors.New("transaction id is required")
	ErrNotFound               = errors.New("transaction not found")
	ErrAlreadyApproved        = errors.New("transaction already approved")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrInvalidOwnerType       = errors.New("owner type must be model or customer")
	ErrMissingOwner           = errors.New("transaction has no owner of the requested type")
	ErrInsufficientBalance    = errors.New("insufficient wallet balance")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrNotHoldTransaction     = errors.New("transaction is not a booking hold")
	ErrAlreadyRefunded        = errors.New("transaction already refunded")
	ErrInvalidBookingState    = errors.New("booking state does not allow this action")
	ErrMissingBooking         = errors.New("no booking could be resolved for this transaction")
	ErrMissingCustomer        = errors.New("customer not found for this transaction")
	ErrMissingWallet          = errors.New("customer wallet not found")
)

var validationErrs = []error{
	ErrMissingID, ErrNotFound, ErrAlreadyApproved, ErrInvalidTransition,
	ErrInvalidOwnerType, ErrMissingOwner, ErrInsufficientBalance,
	ErrUnknownTransactionType, ErrNotHoldTransaction, ErrAlreadyRefunded,
	ErrInvalidBookingState, ErrMissingBooking, ErrMissingCustomer, ErrMissingWallet,
}

// IsValidation reports whether err is a caller-facing validation error.
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
