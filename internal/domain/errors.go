package domain

import "errors"

// Business rule failures. Anything else returned from the store layer is a store error.
var (
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrPinMismatch          = errors.New("pin mismatch")
	ErrActorNotFound        = errors.New("account not found")
	ErrInvalidRole          = errors.New("receiver is not an agent")
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrDuplicateIdentity    = errors.New("identity already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrSelfTransfer         = errors.New("cannot transfer to yourself")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
)
