package mpesa_test

import (
	"testing"
	"time"

	"tourismrelay/infras/mpesa"

	"github.com/stretchr/testify/assert"
)

func TestToken_Fresh(t *testing.T) {
	issued := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	token := mpesa.NewToken("abc", time.Hour, issued)

	tests := []struct {
		name     string
		token    mpesa.Token
		now      time.Time
		expected bool
	}{
		{name: "just issued", token: token, now: issued, expected: true},
		{name: "inside refresh margin", token: token, now: issued.Add(59*time.Minute + 30*time.Second), expected: false},
		{name: "before margin", token: token, now: issued.Add(58 * time.Minute), expected: true},
		{name: "empty value", token: mpesa.Token{ExpiresAt: issued.Add(time.Hour)}, now: issued, expected: false},
		{name: "zero token", token: mpesa.Token{}, now: issued, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.Fresh(tt.now))
		})
	}
}

func TestNewToken_DefaultLifetime(t *testing.T) {
	issued := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	token := mpesa.NewToken("abc", 0, issued)

	assert.Equal(t, issued.Add(59*time.Minute), token.ExpiresAt)
}

func TestNewToken_ShortLifetime(t *testing.T) {
	issued := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	token := mpesa.NewToken("abc", 30*time.Second, issued)

	assert.Equal(t, issued.Add(27*time.Second), token.ExpiresAt)
	assert.True(t, token.Fresh(issued.Add(20*time.Second)))
	assert.False(t, token.Fresh(issued.Add(28*time.Second)))
}

func TestToken_Masked(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "empty", value: "", expected: ""},
		{name: "single character", value: "x", expected: "..."},
		{name: "short", value: "short", expected: "sh..."},
		{name: "twenty characters", value: "abcdefghijklmnopqrst", expected: "abcdefghij..."},
		{name: "long", value: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMN", expected: "abcdefghijklmnopqrst..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := mpesa.Token{Value: tt.value}.Masked()

			assert.Equal(t, tt.expected, masked)

			if tt.value != "" {
				assert.NotEqual(t, tt.value, masked)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	at := time.Date(2024, 3, 14, 9, 5, 7, 0, time.UTC)

	password, timestamp := mpesa.Password("174379", "passkey", at)

	assert.Equal(t, "20240314090507", timestamp)
	// base64("174379passkey20240314090507")
	assert.Equal(t, "MTc0Mzc5cGFzc2tleTIwMjQwMzE0MDkwNTA3", password)
}
