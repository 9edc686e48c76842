package domain

import "errors"

// Sentinel errors returned by services and repositories. Controllers map
// these to HTTP status codes; anything else is treated as an internal error.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidID     = errors.New("invalid id")
	ErrConflict      = errors.New("already exists")
	ErrQuotaExceeded = errors.New("coupon limit reached")
)
