package model

import (
	"time"

	"tourismrelay/shared"
	gModel "tourismrelay/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldCode               = "code"
	FieldStatus             = "status"
	FieldConfirmedServices  = "confirmed_services"
	FieldPaymentStatus      = "payment_status"
	FieldAmountPaid         = "amount_paid"
	FieldPushSessionID      = "push_session_id"
	FieldPushPhoneSuffix    = "push_phone_suffix"
	FieldTouristPhoneSuffix = "tourist_phone_suffix"
	FieldCreatedAt          = "created_at"
)

const cacheGetBooking = "booking:get"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

const (
	PaymentStatusPending     = "pending"
	PaymentStatusPendingPush = "pending_push"
	PaymentStatusPaid        = "paid"
)

const (
	PaymentMethodMpesa  = "mpesa"
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
)

type Booking struct {
	Code               string              `db:"code"`
	CommunityID        string              `db:"community_id"`
	TouristName        string              `db:"tourist_name"`
	TouristContact     string              `db:"tourist_contact"`
	TouristEmail       string              `db:"tourist_email"`
	TouristPhoneSuffix string              `db:"tourist_phone_suffix"`
	ArrivalDate        time.Time           `db:"arrival_date"`
	NumVisitors        int                 `db:"num_visitors"`
	RequestedServices  gModel.StringList   `db:"requested_services"`
	SpecialRequests    string              `db:"special_requests"`
	StewardContact     string              `db:"steward_contact"`
	Status             string              `db:"status"`
	ConfirmedServices  *gModel.StringList  `db:"confirmed_services"`
	PaymentStatus      string              `db:"payment_status"`
	PaymentMethod      string              `db:"payment_method"`
	PaymentDetails     gModel.JSONMap      `db:"payment_details"`
	TotalAmount        decimal.Decimal     `db:"total_amount"`
	AmountPaid         decimal.NullDecimal `db:"amount_paid"`
	PushSessionID      string              `db:"push_session_id"`
	PushPhoneSuffix    string              `db:"push_phone_suffix"`
	gModel.Metadata
}

func (b Booking) Exists() bool {
	return b.Code != ""
}

func (b Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

func (b Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CacheKey is where the booking projection for code is cached.
func CacheKey(code string) string {
	return shared.BuildCacheKey(cacheGetBooking, code)
}
