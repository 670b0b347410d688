package reply_test

import (
	"net/http"
	"testing"

	"tourismrelay/internal/domains/booking/reply"
	"tourismrelay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		code     string
		accepted []string
		declined []string
	}{
		{
			name:     "short aliases",
			message:  "CONFIRM V20240101-ABCD1234 WALK YES HOME NO",
			code:     "V20240101-ABCD1234",
			accepted: []string{"guided_walk"},
			declined: []string{"homestay"},
		},
		{
			name:     "lower case and long aliases",
			message:  "  confirm v20240101-abcd1234 homestay yes rhino_sanctuary yes ",
			code:     "V20240101-ABCD1234",
			accepted: []string{"homestay", "rhino_sanctuary"},
			declined: []string{},
		},
		{
			name:     "unknown tokens skipped",
			message:  "CONFIRM V20240101-ABCD1234 THANKS WALK YES SAFARI YES BEADING MAYBE BREAKFAST NO",
			code:     "V20240101-ABCD1234",
			accepted: []string{"guided_walk"},
			declined: []string{"bush_breakfast"},
		},
		{
			name:     "last answer wins",
			message:  "CONFIRM V20240101-ABCD1234 WALK YES GUIDED_WALK NO",
			code:     "V20240101-ABCD1234",
			accepted: []string{},
			declined: []string{"guided_walk"},
		},
		{
			name:     "code only",
			message:  "CONFIRM V20240101-ABCD1234",
			code:     "V20240101-ABCD1234",
			accepted: []string{},
			declined: []string{},
		},
		{
			name:     "every service",
			message:  "CONFIRM V20240101-ABCD1234 BEADING YES CULTURAL YES WALK YES HOME YES BREAKFAST YES RHINO YES",
			code:     "V20240101-ABCD1234",
			accepted: []string{"guided_walk", "homestay", "cultural_evening", "bush_breakfast", "rhino_sanctuary", "beading_workshop"},
			declined: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reply.Parse(tt.message)
			require.NoError(t, err)

			assert.Equal(t, tt.code, res.Code)
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, tt.declined, res.Declined)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, message := range []string{
		"",
		"   ",
		"YES",
		"CANCEL V20240101-ABCD1234",
		"CONFIRM",
		"CONFIRM WALK YES",
		"CONFIRM 20240101-ABCD1234 WALK YES",
	} {
		t.Run(message, func(t *testing.T) {
			_, err := reply.Parse(message)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}
