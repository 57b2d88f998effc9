package service

import "errors"

// Sentinel errors shared across services so handlers can map them to
// HTTP status codes with errors.Is instead of string matching.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInactive           = errors.New("record is inactive")
	ErrDraftOnly          = errors.New("only draft invoices can be edited")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrScheduleConflict   = errors.New("doctor already has an appointment in that slot")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
