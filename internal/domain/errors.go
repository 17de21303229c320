package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")

	// Billing.
	ErrPriceNotFound    = errors.New("no price entry matches")
	ErrPriceAmbiguous   = errors.New("multiple price entries share the same effective date")
	ErrNumberConflict   = errors.New("invoice number already taken, retry")
	ErrTakeoffNotBilled = errors.New("takeoff is not ready to be invoiced")
	ErrBadStatusChange  = errors.New("illegal invoice status transition")
	ErrTooManyJobs      = errors.New("an invoice covers between 1 and 5 jobs")
)
