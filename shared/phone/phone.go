package phone

import (
	"strings"

	"tourismrelay/shared/failure"
)

const (
	CountryCode  = "254"
	SuffixLength = 9

	normalizedLength = len(CountryCode) + SuffixLength
)

// Digits drops everything but ASCII 0-9.
func Digits(raw string) string {
	return strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}

		return -1
	}, raw)
}

// Normalize converts local formats (07..., 7..., +254 7...) to the 2547XXXXXXXX form the provider expects.
func Normalize(raw string) (string, error) {
	digits := Digits(raw)

	if !strings.HasPrefix(digits, CountryCode) {
		digits = CountryCode + strings.TrimLeft(digits, "0")
	}

	if len(digits) != normalizedLength {
		return "", failure.InvalidFormat("phone number must have 9 digits after the country code") //nolint:wrapcheck
	}

	return digits, nil
}

// Suffix returns the last nine digits, the part that survives any country-code formatting.
func Suffix(raw string) string {
	digits := Digits(raw)
	if len(digits) <= SuffixLength {
		return digits
	}

	return digits[len(digits)-SuffixLength:]
}

// SameSubscriber reports whether two numbers share the nine-digit suffix.
func SameSubscriber(a, b string) bool {
	sa, sb := Suffix(a), Suffix(b)

	return len(sa) == SuffixLength && sa == sb
}
