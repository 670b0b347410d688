// Package bookingcode generates the human-shareable booking reference that
// also serves as the M-Pesa account number.
//
// A code looks like V20240315-K3ZQ7MNA2XBC: a fixed letter, the creation date
// and twelve random base32 characters (60 bits taken from a v4 UUID).
package bookingcode

import (
	"encoding/base32"
	"regexp"
	"time"

	"tourismrelay/shared/constant"

	"github.com/google/uuid"
)

const (
	Prefix       = "V"
	separator    = "-"
	suffixLength = 12
)

var (
	encoding = base32.StdEncoding.WithPadding(base32.NoPadding)
	pattern  = regexp.MustCompile(`^V\d{8}-[A-Z0-9]{4,16}$`)
)

// New returns a fresh code stamped with now.
func New(now time.Time) string {
	return Generate(now, uuid.New())
}

// Generate builds a code from a date and a UUID. The version and variant
// bytes of the UUID are skipped so every suffix character is random.
func Generate(now time.Time, id uuid.UUID) string {
	random := make([]byte, 0, len(id)-2)
	random = append(random, id[0:6]...)
	random = append(random, id[7:8]...)
	random = append(random, id[9:]...)

	suffix := encoding.EncodeToString(random)[:suffixLength]

	return Prefix + now.Format(constant.CompactDateFormat) + separator + suffix
}

// Valid reports whether code has the shape of a booking code.
func Valid(code string) bool {
	return pattern.MatchString(code)
}
