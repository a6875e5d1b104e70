package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to check out")
	ErrMissingAddress       = errors.New("delivery requires an address")
	ErrInvalidSchedule      = errors.New("scheduled time must be in the future")
	ErrMissingPaymentMethod = errors.New("no payment method selected")
)
