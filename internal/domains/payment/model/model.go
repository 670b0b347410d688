package model

import (
	"time"

	bookingModel "tourismrelay/internal/domains/booking/model"
	gModel "tourismrelay/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FieldID                = "id"
	FieldBookingCode       = "booking_code"
	FieldProviderReference = "provider_reference"
	FieldTimestamp         = "timestamp"
)

// Channel names the provider notification that produced a transaction.
const (
	ChannelConfirmation = "confirmation"
	ChannelPush         = "push"
)

const StatusCompleted = "completed"

// FailedPushPolicy decides what a failed push result does to the booking.
type FailedPushPolicy string

const (
	FailedPushHold   FailedPushPolicy = "hold"
	FailedPushRevert FailedPushPolicy = "revert"
)

func ParseFailedPushPolicy(s string) FailedPushPolicy {
	if FailedPushPolicy(s) == FailedPushRevert {
		return FailedPushRevert
	}

	return FailedPushHold
}

type Transaction struct {
	ID                  string          `db:"id"`
	BookingCode         string          `db:"booking_code"`
	ProviderReference   string          `db:"provider_reference"`
	Channel             string          `db:"channel"`
	Amount              decimal.Decimal `db:"amount"`
	Status              string          `db:"status"`
	DistributionDetails gModel.JSONMap  `db:"distribution_details"`
	Timestamp           time.Time       `db:"timestamp"`
	gModel.Metadata
}

// SettleResult describes what one settlement attempt changed.
type SettleResult struct {
	// BookingFound is false when the account reference resolves to nothing.
	BookingFound bool
	// Recorded is false when a transaction with the same provider reference
	// already existed.
	Recorded bool
	// Applied is true when this attempt moved the booking to paid.
	Applied bool
	// Booking is the row as read under lock, before this attempt.
	Booking bookingModel.Booking
}

// Settlement is a payment event normalized to major units.
type Settlement struct {
	BookingCode       string
	ProviderReference string
	Channel           string
	Amount            decimal.Decimal
	Payer             gModel.JSONMap
}

// Validation result codes the provider understands.
const (
	ResultCodeAccepted       = "0"
	ResultCodeInvalidAccount = "C2B00012"
	ResultCodeInvalidAmount  = "C2B00013"
	ResultCodeRejected       = "C2B00016"
)

type ValidationResult struct {
	Code        string
	Description string
}

var (
	ValidationAccepted       = ValidationResult{Code: ResultCodeAccepted, Description: "Accepted"}
	ValidationUnknownAccount = ValidationResult{Code: ResultCodeInvalidAccount, Description: "Rejected - Invalid Account Number"}
	ValidationAmountMismatch = ValidationResult{Code: ResultCodeInvalidAmount, Description: "Rejected - Invalid Amount"}

	// The provider has no dedicated code for these two; both use its generic
	// rejection and only Description tells them apart.
	ValidationAlreadyPaid = ValidationResult{Code: ResultCodeRejected, Description: "Rejected - Payment already received"}
	ValidationMalformed   = ValidationResult{Code: ResultCodeRejected, Description: "Rejected - Malformed request"}
)

func (v ValidationResult) Accepted() bool {
	return v.Code == ResultCodeAccepted
}
