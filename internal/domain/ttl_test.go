package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDeriveTTL(t *testing.T) {
	t.Parallel()
	now := time.Unix(1700000000, 0)
	tests := []struct {
		name      string
		expiresAt time.Time
		want      int64
		wantErr   error
	}{
		{name: "one hour ahead", expiresAt: now.Add(time.Hour), want: 3600},
		{name: "rounds half up", expiresAt: now.Add(90*time.Second + 500*time.Millisecond), want: 91},
		{name: "rounds down below half", expiresAt: now.Add(90*time.Second + 400*time.Millisecond), want: 90},
		{name: "sub-second future floors to one", expiresAt: now.Add(300 * time.Millisecond), want: 1},
		{name: "exactly now rejected", expiresAt: now, wantErr: ErrExpiryNotFuture},
		{name: "past rejected", expiresAt: now.Add(-time.Minute), wantErr: ErrExpiryNotFuture},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := DeriveTTL(tc.expiresAt, now)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d seconds, got %d", tc.want, got)
			}
		})
	}
}

func TestValidateTTLSeconds(t *testing.T) {
	t.Parallel()
	minTTL, maxTTL := time.Minute, 24*time.Hour
	if err := ValidateTTLSeconds(30, minTTL, maxTTL); !errors.Is(err, ErrExpiryTooSoon) {
		t.Fatalf("below min: got %v", err)
	}
	if err := ValidateTTLSeconds(90000, minTTL, maxTTL); !errors.Is(err, ErrExpiryTooFar) {
		t.Fatalf("above max: got %v", err)
	}
	if err := ValidateTTLSeconds(3600, minTTL, maxTTL); err != nil {
		t.Fatalf("in range: got %v", err)
	}
	// Boundary values are inclusive.
	if err := ValidateTTLSeconds(60, minTTL, maxTTL); err != nil {
		t.Fatalf("at min: got %v", err)
	}
	if err := ValidateTTLSeconds(86400, minTTL, maxTTL); err != nil {
		t.Fatalf("at max: got %v", err)
	}
	// Zero bounds disable the respective check.
	if err := ValidateTTLSeconds(1, 0, 0); err != nil {
		t.Fatalf("unbounded: got %v", err)
	}
}
