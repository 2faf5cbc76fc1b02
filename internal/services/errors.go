package services

import "errors"

// Error kinds the presentation layer maps to user notices or ITN responses.
var (
	ErrEmptyCart           = errors.New("cart is empty or invalid")
	ErrMissingFields       = errors.New("required fields missing")
	ErrInvalidNotification = errors.New("notification failed gateway validation")
	ErrMerchantMismatch    = errors.New("merchant id mismatch")
	ErrMissingReference    = errors.New("notification has no payment reference")
	ErrOrderNotFound       = errors.New("order not found")
	ErrAmountMismatch      = errors.New("notification amount does not match order total")
	ErrPaymentNotComplete  = errors.New("payment not complete")
	ErrFeeUnpaid           = errors.New("admission fee not confirmed")
	ErrBadCreds            = errors.New("invalid username or password")
)
