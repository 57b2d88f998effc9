package billing

import "errors"

// Validation errors returned by the calculator. All are sentinels so
// callers can match with errors.Is and map them to field-level messages.
var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
	ErrInvalidDate     = errors.New("invalid date")
)

// Warning is a non-fatal condition detected during a computation.
// Warnings are surfaced to the caller alongside the result — they must
// never be swallowed, but they do not abort the computation either.
type Warning string

const (
	// WarningNegativeTotal means discounts exceeded the subtotal and the
	// invoice total was clamped to zero.
	WarningNegativeTotal Warning = "negative_total_clamped"
	// WarningOverpayment means completed payments exceed the invoice total.
	WarningOverpayment Warning = "overpayment_detected"
)
