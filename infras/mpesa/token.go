package mpesa

import (
	"time"
)

const (
	defaultTokenLifetime = time.Hour
	tokenRefreshMargin   = time.Minute
	// maskVisible caps how much of a token diagnostics may show.
	maskVisible = 20
)

// Token is a Daraja OAuth access token together with the instant it
// should no longer be used.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// NewToken stamps a token issued at issuedAt with the given lifetime, less a
// refresh margin so a token is never presented right at its expiry. The
// margin never exceeds a tenth of the lifetime.
func NewToken(value string, lifetime time.Duration, issuedAt time.Time) Token {
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	margin := min(tokenRefreshMargin, lifetime/10)

	return Token{
		Value:     value,
		ExpiresAt: issuedAt.Add(lifetime - margin),
	}
}

// Fresh reports whether the token can still be used at now.
func (t Token) Fresh(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// Masked returns at most half of the token, never the whole of it.
func (t Token) Masked() string {
	if t.Value == "" {
		return ""
	}

	visible := min(maskVisible, len(t.Value)/2)

	return t.Value[:visible] + "..."
}
