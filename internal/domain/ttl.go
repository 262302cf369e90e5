// Package domain ttl.go derives and validates the time-to-live sent upstream.
package domain

import "time"

// DeriveTTL computes the upstream TTL in whole seconds from the chosen
// absolute expiration and the submission instant. The duration is rounded to
// the nearest second. Returns ErrExpiryNotFuture unless expiresAt is strictly
// after now; a successful result is therefore always >= 1.
func DeriveTTL(expiresAt, now time.Time) (int64, error) {
	if !expiresAt.After(now) {
		return 0, ErrExpiryNotFuture
	}
	secs := int64(expiresAt.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		// Sub-second expiries round down to zero; still strictly future,
		// but a zero TTL would expire server-side immediately.
		secs = 1
	}
	return secs, nil
}

// ValidateTTLSeconds checks ttl against the inclusive range [min, max],
// both expressed as durations. A zero bound disables that side of the check.
// The ttl itself is never adjusted: the value sent upstream is exactly the
// derived expiry distance, and out-of-range requests are rejected instead.
func ValidateTTLSeconds(ttl int64, minTTL, maxTTL time.Duration) error {
	if minTTL > 0 && ttl < int64(minTTL/time.Second) {
		return ErrExpiryTooSoon
	}
	if maxTTL > 0 && ttl > int64(maxTTL/time.Second) {
		return ErrExpiryTooFar
	}
	return nil
}
