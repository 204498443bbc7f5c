// Package ids mints and validates entity identifiers. Every collection uses
// ULIDs in their canonical uppercase form; Normalize is applied once at the
// API boundary so that all comparisons use the same representation.
package ids

import (
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidRegex = regexp.MustCompile(`(?i)^[0-9A-HJKMNP-TV-Z]{26}$`)

	ErrInvalidULID = errors.New("invalid ULID")
)

// NewULID generates a new ULID string.
func NewULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// IsULID returns true when value is a valid ULID (case-insensitive Crockford Base32).
func IsULID(value string) bool {
	return ulidRegex.MatchString(strings.TrimSpace(value))
}

// ValidateULID validates a ULID string.
func ValidateULID(value string) error {
	if !IsULID(value) {
		return ErrInvalidULID
	}
	return nil
}

// Normalize returns the canonical spelling of an id: trimmed, uppercase.
// Seed documents and clients may carry lowercase ULIDs; after Normalize every
// comparison in the store and the services sees the same form.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
