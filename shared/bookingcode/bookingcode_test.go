package bookingcode_test

import (
	"strings"
	"testing"
	"time"

	"tourismrelay/shared/bookingcode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNew_Unique(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	seen := make(map[string]struct{}, 10000)

	for range 10000 {
		code := bookingcode.New(now)

		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %s", code)

		seen[code] = struct{}{}
	}

	assert.Len(t, seen, 10000)
}

func TestNew_Shape(t *testing.T) {
	now := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)

	code := bookingcode.New(now)

	assert.True(t, strings.HasPrefix(code, "V20240315-"))
	assert.Len(t, code, len("V20240315-")+12)
	assert.NotContains(t, code, " ")
	assert.True(t, bookingcode.Valid(code))
}

func TestGenerate_Deterministic(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := bookingcode.Generate(now, id)
	second := bookingcode.Generate(now, id)

	assert.Equal(t, first, second)
	assert.True(t, bookingcode.Valid(first))
}

func TestGenerate_SortsByDate(t *testing.T) {
	id := uuid.New()

	earlier := bookingcode.Generate(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), id)
	later := bookingcode.Generate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), id)

	assert.Less(t, earlier, later)
}

func TestValid(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{code: "V20240101-ABCD1234", valid: true},
		{code: "V20240315-K3ZQ7MNA2XBC", valid: true},
		{code: "v20240101-ABCD1234", valid: false},
		{code: "V2024011-ABCD1234", valid: false},
		{code: "V20240101ABCD1234", valid: false},
		{code: "V20240101-ABC", valid: false},
		{code: "V20240101-abcd1234", valid: false},
		{code: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, bookingcode.Valid(tt.code))
		})
	}
}
