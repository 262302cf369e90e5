// Package domain creation.go models a validated secret-creation request.
package domain

import (
	"strings"
	"time"
)

// Creation is a locally validated secret-creation request. Construct via
// NewCreation; a zero value carries no guarantees.
type Creation struct {
	Secret     string
	TTLSeconds int64
	HitLimit   int
	Password   string // empty means no password gate
}

// Limits carries the locally enforced bounds for a creation request.
type Limits struct {
	MaxSecretBytes int64
	MinTTL         time.Duration
	MaxTTL         time.Duration
}

// NewCreation validates raw form input and derives the upstream TTL.
// Enforced here, before any network call:
//   - secret text non-empty (leading/trailing whitespace alone is empty)
//   - secret within the configured byte limit
//   - expiration strictly after now
//   - hit limit a positive integer
//
// The password is optional and free-form. The derived TTL is exactly the
// rounded distance from now to the expiration; expirations whose TTL falls
// outside the configured bounds are rejected, never silently adjusted.
func NewCreation(secret string, expiresAt time.Time, hitLimit int, password string, now time.Time, lim Limits) (Creation, error) {
	if strings.TrimSpace(secret) == "" {
		return Creation{}, ErrSecretEmpty
	}
	if lim.MaxSecretBytes > 0 && int64(len(secret)) > lim.MaxSecretBytes {
		return Creation{}, ErrSecretTooLarge
	}
	if hitLimit <= 0 {
		return Creation{}, ErrHitLimitInvalid
	}
	ttl, err := DeriveTTL(expiresAt, now)
	if err != nil {
		return Creation{}, err
	}
	if err := ValidateTTLSeconds(ttl, lim.MinTTL, lim.MaxTTL); err != nil {
		return Creation{}, err
	}
	return Creation{Secret: secret, TTLSeconds: ttl, HitLimit: hitLimit, Password: password}, nil
}
