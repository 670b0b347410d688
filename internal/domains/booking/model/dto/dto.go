package dto

import (
	"strings"
	"time"

	"tourismrelay/internal/domains/booking/model"
	communityModel "tourismrelay/internal/domains/community/model"
	"tourismrelay/shared/constant"
	gModel "tourismrelay/shared/model"
	"tourismrelay/shared/phone"
	"tourismrelay/shared/timezone"

	"github.com/shopspring/decimal"
)

const cardLast4 = 4

type CreateBookingRequest struct {
	TouristName     string          `json:"touristName"     validate:"required,max=100"`
	TouristEmail    string          `json:"touristEmail"    validate:"required,email,max=100"`
	TouristPhone    string          `json:"touristPhone"    validate:"required,max=20"`
	ArrivalDate     string          `json:"arrivalDate"     validate:"required,datetime=2006-01-02"`
	NumVisitors     int             `json:"numVisitors"     validate:"required,gt=0"`
	Services        []string        `json:"services"        validate:"required,min=1,dive,required"`
	SpecialRequests string          `json:"specialRequests" validate:"omitempty,max=500"`
	TotalAmount     decimal.Decimal `json:"totalAmount"     validate:"required,gt=0"`
	PaymentMethod   string          `json:"paymentMethod"   validate:"required,oneof=mpesa card paypal"`
	CardNumber      string          `json:"cardNumber"      validate:"required_if=PaymentMethod card"`
	CardExpiry      string          `json:"cardExpiry"      validate:"required_if=PaymentMethod card"`
	CardCVC         string          `json:"cardCVC"         validate:"required_if=PaymentMethod card"`
	CardName        string          `json:"cardName"        validate:"required_if=PaymentMethod card"`
}

// PaymentDetails keeps what is safe to store about the chosen method. The
// card number is reduced to its last four digits and the CVC is dropped.
func (c *CreateBookingRequest) PaymentDetails() gModel.JSONMap {
	switch c.PaymentMethod {
	case model.PaymentMethodCard:
		number := strings.ReplaceAll(c.CardNumber, " ", "")

		last4 := ""
		if len(number) >= cardLast4 {
			last4 = number[len(number)-cardLast4:]
		}

		return gModel.JSONMap{
			"card_last4":  last4,
			"card_expiry": c.CardExpiry,
			"card_name":   c.CardName,
		}
	case model.PaymentMethodPaypal:
		return gModel.JSONMap{"paypal_ready": true}
	default:
		return gModel.JSONMap{}
	}
}

func (c *CreateBookingRequest) ToModel(code string, community communityModel.Community, actor string, now time.Time) (model.Booking, error) {
	arrival, err := timezone.ParseDate(c.ArrivalDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		Code:               code,
		CommunityID:        community.ID,
		TouristName:        c.TouristName,
		TouristContact:     c.TouristPhone,
		TouristEmail:       c.TouristEmail,
		TouristPhoneSuffix: phone.Suffix(c.TouristPhone),
		ArrivalDate:        arrival,
		NumVisitors:        c.NumVisitors,
		RequestedServices:  gModel.StringList(c.Services),
		SpecialRequests:    c.SpecialRequests,
		StewardContact:     community.StewardPhone,
		Status:             model.StatusPending,
		PaymentStatus:      model.PaymentStatusPending,
		PaymentMethod:      c.PaymentMethod,
		PaymentDetails:     c.PaymentDetails(),
		TotalAmount:        c.TotalAmount.Round(2),
		Metadata:           gModel.NewMetadata(actor, now),
	}, nil
}

type CreateBookingResponse struct {
	Success     bool   `json:"success"`
	BookingCode string `json:"booking_code"`
	Message     string `json:"message"`
}

type BookingResponse struct {
	BookingCode       string   `json:"booking_code"`
	TouristName       string   `json:"tourist_name"`
	ArrivalDate       string   `json:"arrival_date"`
	NumVisitors       int      `json:"num_visitors"`
	RequestedServices []string `json:"requested_services"`
	Status            string   `json:"status"`
	PaymentStatus     string   `json:"payment_status"`
	PaymentMethod     string   `json:"payment_method"`
	TotalAmount       float64  `json:"total_amount"`
	AmountPaid        *float64 `json:"amount_paid"`
	ConfirmedServices []string `json:"confirmed_services"`
	CreatedAt         string   `json:"created_at"`
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.BookingCode = mod.Code
	r.TouristName = mod.TouristName
	r.ArrivalDate = mod.ArrivalDate.Format(constant.DateOnlyFormat)
	r.NumVisitors = mod.NumVisitors
	r.RequestedServices = append([]string{}, mod.RequestedServices...)
	r.Status = mod.Status
	r.PaymentStatus = mod.PaymentStatus
	r.PaymentMethod = mod.PaymentMethod
	r.TotalAmount = mod.TotalAmount.InexactFloat64()
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)

	r.AmountPaid = nil
	if mod.AmountPaid.Valid {
		paid := mod.AmountPaid.Decimal.InexactFloat64()
		r.AmountPaid = &paid
	}

	r.ConfirmedServices = nil
	if mod.ConfirmedServices != nil {
		r.ConfirmedServices = append([]string{}, *mod.ConfirmedServices...)
	}
}

type IncomingSMSRequest struct {
	From    string `json:"from"`
	Message string `json:"message" validate:"required"`
}

type IncomingSMSResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
