// Package domain errors.go contains sentinel errors
package domain

import "errors"

// Sentinel domain-level errors reused by higher layers.
var (
	ErrInvalidCode     = errors.New("invalid secret code")
	ErrSecretEmpty     = errors.New("secret must not be empty")
	ErrSecretTooLarge  = errors.New("secret too large")
	ErrExpiryNotFuture = errors.New("expiration must be in the future")
	ErrExpiryTooSoon   = errors.New("expiration is below the minimum time-to-live")
	ErrExpiryTooFar    = errors.New("expiration exceeds the maximum time-to-live")
	ErrHitLimitInvalid = errors.New("hit limit must be a positive integer")
)
