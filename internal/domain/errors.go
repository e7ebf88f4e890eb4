package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure the service reports unwraps to exactly one of these.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrSubscriptionFailed = errors.New("subscription failed")
)

// Error is a domain failure of a known kind with a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

// Error returns the caller-facing message
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind so callers can match it with errors.Is
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError creates a validation failure with a formatted message
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrProductNotFound        = &Error{Kind: ErrNotFound, Message: "product does not exist"}
	ErrProductAlreadyExists   = &Error{Kind: ErrAlreadyExists, Message: "product already exists"}
	ErrCannotDeleteProduct    = &Error{Kind: ErrNotFound, Message: "cannot delete product: product does not exist"}
	ErrSellerProductsNotFound = &Error{Kind: ErrNotFound, Message: "no product found with the given seller id"}
	ErrNoProducts             = &Error{Kind: ErrNotFound, Message: "there are no products to be shown"}
	ErrSubscriptionNotFound   = &Error{Kind: ErrNotFound, Message: "subscription not found"}
	ErrInvalidStock           = &Error{Kind: ErrValidation, Message: "invalid stock value: minimum stock must be 10"}
	ErrBuyerNotPrivileged     = &Error{Kind: ErrSubscriptionFailed, Message: "subscription failed: buyer is not privileged"}
)
