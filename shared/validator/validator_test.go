package validator_test

import (
	"strings"
	"testing"

	"tourismrelay/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type bookingRequest struct {
	TouristName  string          `json:"touristName"  validate:"required"`
	TouristEmail string          `json:"touristEmail" validate:"required,email"`
	TouristPhone string          `json:"touristPhone" validate:"required,phone"`
	NumVisitors  int             `json:"numVisitors"  validate:"required,gte=1"`
	TotalAmount  decimal.Decimal `json:"totalAmount"  validate:"required,gt=0"`
}

func validRequest() bookingRequest {
	return bookingRequest{
		TouristName:  "Jane Doe",
		TouristEmail: "jane@example.com",
		TouristPhone: "0712345678",
		NumVisitors:  2,
		TotalAmount:  decimal.NewFromInt(2500),
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *bookingRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(_ *bookingRequest) {}},
		{name: "missing name", mutate: func(r *bookingRequest) { r.TouristName = "" }, wantMsg: "touristName is required"},
		{name: "invalid email", mutate: func(r *bookingRequest) { r.TouristEmail = "nope" }, wantMsg: "touristEmail must be a valid email address"},
		{name: "invalid phone", mutate: func(r *bookingRequest) { r.TouristPhone = "123" }, wantMsg: "touristPhone must be a valid phone number"},
		{name: "zero amount", mutate: func(r *bookingRequest) { r.TotalAmount = decimal.Zero }, wantMsg: "totalAmount is required"},
		{name: "negative amount", mutate: func(r *bookingRequest) { r.TotalAmount = decimal.NewFromInt(-5) }, wantMsg: "totalAmount must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("V20240101-ABCD1234", "bookingcode"))
	assert.Error(t, validator.ValidateVar("booking-1", "bookingcode"))
	assert.NoError(t, validator.ValidateVar("+254712345678", "phone"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"touristName":"Jane","touristEmail":"jane@example.com","touristPhone":"0712345678","numVisitors":2,"totalAmount":2500}`,
		},
		{
			name:        "amount as string",
			jsonBody:    `{"touristName":"Jane","touristEmail":"jane@example.com","touristPhone":"0712345678","numVisitors":2,"totalAmount":"2500.50"}`,
			expectError: false,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"touristName":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var data bookingRequest

	assert.NoError(t, validator.Decode(strings.NewReader(`{}`), &data))
	assert.Error(t, validator.Decode(strings.NewReader(`not json`), &data))
}
