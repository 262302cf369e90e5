// Package domain code.go contains functions to parse and validate secret codes.
package domain

// SecretCode identifies a secret on the upstream service. Codes are minted by
// the upstream API and opaque to this frontend; we only enforce that they are
// safe to embed in a URL path segment before forwarding them.
type SecretCode string

// maxCodeLen bounds codes defensively; upstream codes are far shorter.
const maxCodeLen = 128

// ParseCode validates s and returns it as a SecretCode. It enforces:
// - non-empty
// - length <= 128
// - only [0-9A-Za-z_-]
// Returns ErrInvalidCode on failure.
func ParseCode(s string) (SecretCode, error) {
	if !isValidCode(s) {
		return "", ErrInvalidCode
	}
	return SecretCode(s), nil
}

// String returns the string form of the SecretCode.
func (c SecretCode) String() string { return string(c) }

// Valid reports whether the code satisfies the same rules as ParseCode.
func (c SecretCode) Valid() bool { return isValidCode(string(c)) }

// isValidCode performs validation without allocating errors.
func isValidCode(s string) bool {
	if len(s) == 0 || len(s) > maxCodeLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
