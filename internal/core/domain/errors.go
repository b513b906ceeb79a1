package domain

import "errors"

// Error taxonomy shared by the core surfaces. Every rejection is
// all-or-nothing: an operation that returns one of these made no state
// change and emitted no event.
var (
	ErrUnauthorized         = errors.New("caller not authorized")
	ErrNotFound             = errors.New("record not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidPayment       = errors.New("invalid payment")
	ErrNotListed            = errors.New("entry not listed for sale")
	ErrReentrancy           = errors.New("reentrant call rejected")
	ErrDuplicateRequest     = errors.New("duplicate request")
)
