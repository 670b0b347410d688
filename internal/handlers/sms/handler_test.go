package sms_test

import (
	"net/http"
	"testing"

	"tourismrelay/infras/mpesa"
	"tourismrelay/internal/domains/booking/model"
	"tourismrelay/internal/domains/booking/model/dto"
	"tourismrelay/internal/testutil/apitest"
	"tourismrelay/internal/testutil/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncoming(t *testing.T) {
	srv := apitest.New(apitest.Config(), mpesa.NewDisabled())

	rec := srv.Do(t, http.MethodPost, "/v1/bookings", map[string]any{
		"touristName":   "Jane Doe",
		"touristEmail":  "jane@example.com",
		"touristPhone":  "+254712345678",
		"arrivalDate":   "2024-02-14",
		"numVisitors":   2,
		"services":      []string{"guided_walk", "homestay"},
		"totalAmount":   1500,
		"paymentMethod": "mpesa",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	code := apitest.Decode[dto.CreateBookingResponse](t, rec).BookingCode
	reply := map[string]string{"from": memstore.IlNgwesi.StewardPhone, "message": "CONFIRM " + code + " WALK YES HOME NO"}

	t.Run("confirms the accepted services", func(t *testing.T) {
		rec := srv.Do(t, http.MethodPost, "/v1/sms/incoming", reply)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		assert.True(t, apitest.Decode[dto.IncomingSMSResponse](t, rec).Success)

		booking, ok := srv.Store.Booking(code)
		require.True(t, ok)
		assert.Equal(t, model.StatusConfirmed, booking.Status)
		require.NotNil(t, booking.ConfirmedServices)
		assert.Equal(t, []string{"guided_walk"}, []string(*booking.ConfirmedServices))
	})

	t.Run("second reply conflicts", func(t *testing.T) {
		rec := srv.Do(t, http.MethodPost, "/v1/sms/incoming", reply)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	tests := []struct {
		name     string
		body     any
		expected int
	}{
		{name: "unknown booking", body: map[string]string{"from": "+254741770540", "message": "CONFIRM V20991231-NOPE0000 WALK YES"}, expected: http.StatusNotFound},
		{name: "not a confirmation", body: map[string]string{"from": "+254741770540", "message": "hello"}, expected: http.StatusBadRequest},
		{name: "empty message", body: map[string]string{"from": "+254741770540"}, expected: http.StatusBadRequest},
		{name: "malformed body", body: "{", expected: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.Do(t, http.MethodPost, "/v1/sms/incoming", tc.body)

			assert.Equal(t, tc.expected, rec.Code, rec.Body.String())
		})
	}
}
