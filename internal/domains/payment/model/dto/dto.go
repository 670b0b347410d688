package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"tourismrelay/infras/mpesa"
	"tourismrelay/internal/domains/payment/model"
	"tourismrelay/shared/constant"
	gModel "tourismrelay/shared/model"
	"tourismrelay/shared/timezone"

	"github.com/shopspring/decimal"
)

// C2BRequest is the body of both the validation and the confirmation callback.
type C2BRequest struct {
	TransactionType   string          `json:"TransactionType"`
	TransID           string          `json:"TransID"`
	TransTime         string          `json:"TransTime"`
	TransAmount       decimal.Decimal `json:"TransAmount"`
	BusinessShortCode string          `json:"BusinessShortCode"`
	BillRefNumber     string          `json:"BillRefNumber"`
	InvoiceNumber     string          `json:"InvoiceNumber"`
	OrgAccountBalance string          `json:"OrgAccountBalance"`
	ThirdPartyTransID string          `json:"ThirdPartyTransID"`
	MSISDN            string          `json:"MSISDN"`
	FirstName         string          `json:"FirstName"`
	MiddleName        string          `json:"MiddleName"`
	LastName          string          `json:"LastName"`
}

// AccountReference is the booking code the payer typed. Payers often add spaces or lower case.
func (r *C2BRequest) AccountReference() string {
	return strings.ToUpper(strings.TrimSpace(r.BillRefNumber))
}

func (r *C2BRequest) CustomerName() string {
	return strings.Join(strings.Fields(r.FirstName+" "+r.MiddleName+" "+r.LastName), " ")
}

func (r *C2BRequest) Payer() gModel.JSONMap {
	return gModel.JSONMap{
		"trans_id":            r.TransID,
		"trans_time":          r.TransTime,
		"transaction_type":    r.TransactionType,
		"business_short_code": r.BusinessShortCode,
		"msisdn":              r.MSISDN,
		"customer_name":       r.CustomerName(),
		"org_balance":         r.OrgAccountBalance,
	}
}

// C2BResponse is the fixed acknowledgement shape of the C2B callbacks.
type C2BResponse struct {
	ResultCode string `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

func NewC2BResponse(result model.ValidationResult) C2BResponse {
	return C2BResponse{ResultCode: result.Code, ResultDesc: result.Description}
}

type PushCallbackItem struct {
	Name  string          `json:"Name"`
	Value json.RawMessage `json:"Value"`
}

type PushCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []PushCallbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

const (
	PushItemReceipt         = "MpesaReceiptNumber"
	PushItemAmount          = "Amount"
	PushItemPhoneNumber     = "PhoneNumber"
	PushItemTransactionDate = "TransactionDate"
)

// Item returns the named metadata value as text, whether the provider sent it
// as a JSON string or a number.
func (c *PushCallback) Item(name string) (string, bool) {
	for _, item := range c.Body.StkCallback.CallbackMetadata.Item {
		if item.Name != name {
			continue
		}

		raw := bytes.TrimSpace(item.Value)
		if len(raw) == 0 || string(raw) == "null" {
			return "", false
		}

		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return "", false
			}

			return s, s != ""
		}

		return string(raw), true
	}

	return "", false
}

func (c *PushCallback) Succeeded() bool {
	return c.Body.StkCallback.ResultCode == 0
}

func (c *PushCallback) Payer() gModel.JSONMap {
	payer := gModel.JSONMap{
		"checkout_request_id": c.Body.StkCallback.CheckoutRequestID,
		"merchant_request_id": c.Body.StkCallback.MerchantRequestID,
		"result_code":         c.Body.StkCallback.ResultCode,
		"result_desc":         c.Body.StkCallback.ResultDesc,
	}

	if phone, ok := c.Item(PushItemPhoneNumber); ok {
		payer["phone_number"] = phone
	}

	if date, ok := c.Item(PushItemTransactionDate); ok {
		payer["transaction_date"] = date
	}

	return payer
}

// PushAck is the acknowledgement of the push result callback.
type PushAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

type PushRequest struct {
	BookingCode string `json:"booking_code" validate:"required,bookingcode"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
}

type PushResponse struct {
	Success           bool   `json:"success"`
	CheckoutRequestID string `json:"checkout_request_id"`
	CustomerMessage   string `json:"customer_message"`
	Message           string `json:"message"`
}

type PushStatusResponse struct {
	CheckoutRequestID string `json:"checkout_request_id"`
	ResultCode        string `json:"result_code"`
	ResultDesc        string `json:"result_desc"`
	ResponseCode      string `json:"response_code"`
}

func (r *PushStatusResponse) FromProvider(status mpesa.PushStatus) {
	r.CheckoutRequestID = status.CheckoutRequestID
	r.ResultCode = status.ResultCode
	r.ResultDesc = status.ResultDesc
	r.ResponseCode = status.ResponseCode
}

type RegisterURLsResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    mpesa.RegisterResponse `json:"data"`
}

type TokenResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
	Message     string `json:"message"`
}

func (r *TokenResponse) FromToken(token mpesa.Token) {
	r.Success = true
	r.AccessToken = token.Masked()
	r.ExpiresAt = timezone.Format(token.ExpiresAt, constant.DateFormat)
	r.Message = "Token generated successfully"
}

type TransactionResponse struct {
	ID                  string         `json:"id"`
	BookingCode         string         `json:"booking_code"`
	ProviderReference   string         `json:"provider_reference"`
	Channel             string         `json:"channel"`
	Amount              float64        `json:"amount"`
	Status              string         `json:"status"`
	DistributionDetails map[string]any `json:"distribution_details"`
	Timestamp           string         `json:"timestamp"`
}

func (r *TransactionResponse) FromModel(mod model.Transaction) {
	r.ID = mod.ID
	r.BookingCode = mod.BookingCode
	r.ProviderReference = mod.ProviderReference
	r.Channel = mod.Channel
	r.Amount = mod.Amount.InexactFloat64()
	r.Status = mod.Status
	r.DistributionDetails = mod.DistributionDetails
	r.Timestamp = timezone.Format(mod.Timestamp, constant.DateFormat)
}

type TransactionsResponse struct {
	BookingCode  string                `json:"booking_code"`
	Transactions []TransactionResponse `json:"transactions"`
	TotalData    int                   `json:"total_data"`
}

func (r *TransactionsResponse) FromModels(code string, models []model.Transaction) {
	r.BookingCode = code
	r.TotalData = len(models)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}
