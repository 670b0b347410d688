// Package mpesa talks to Safaricom's Daraja API: OAuth tokens, C2B URL
// registration and Lipa na M-Pesa Online (STK) push requests.
package mpesa

//go:generate go run go.uber.org/mock/mockgen -source=./mpesa.go -destination=./mocks/mpesa_mock.go -package=mocks

import (
	"context"
	"net/http"
	"time"

	"tourismrelay/config"
	"tourismrelay/infras/otel"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"

	SandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	ProductionBaseURL = "https://api.safaricom.co.ke"

	// SandboxPasskey is the public Lipa na M-Pesa Online passkey for short code 600984.
	SandboxPasskey = "bfb279f9aa9bdbcf158e97dd71a467cd2e0c893059b10f78e6b72ada1ed2c919"

	TransactionTypePayBill = "CustomerPayBillOnline"

	// ResultCodeSuccess is what Daraja reports for an accepted request or a settled push.
	ResultCodeSuccess = "0"
)

// Callback paths registered with Daraja, relative to the public base URL.
const (
	PathValidation   = "/v1/mpesa/validation"
	PathConfirmation = "/v1/mpesa/confirmation"
	PathPushCallback = "/v1/mpesa/stk-callback"
)

type PushRequest struct {
	Phone            string
	Amount           decimal.Decimal
	AccountReference string
	Description      string
}

type PushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type PushStatus struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

type RegisterResponse struct {
	OriginatorCoversationID string `json:"OriginatorCoversationID"`
	ResponseCode            string `json:"ResponseCode"`
	ResponseDescription     string `json:"ResponseDescription"`
}

// Provider is the payment capability. It is chosen once at start-up: a
// Daraja client when the integration is configured, otherwise one that
// refuses every call.
type Provider interface {
	Token(ctx context.Context) (Token, error)
	RegisterURLs(ctx context.Context) (RegisterResponse, error)
	InitiatePush(ctx context.Context, req PushRequest) (PushResponse, error)
	QueryPush(ctx context.Context, checkoutRequestID string) (PushStatus, error)
}

func New(config *config.Config, otel otel.Otel) Provider {
	mpesaCfg := config.External.Mpesa

	if !mpesaCfg.Enable || mpesaCfg.ConsumerKey == "" || mpesaCfg.ConsumerSecret == "" {
		log.Warn().Msg("M-Pesa integration not configured, payment provider disabled")

		return NewDisabled()
	}

	settings := Settings{
		BaseURL:         BaseURL(mpesaCfg.Environment),
		ConsumerKey:     mpesaCfg.ConsumerKey,
		ConsumerSecret:  mpesaCfg.ConsumerSecret,
		ShortCode:       mpesaCfg.ShortCode,
		Passkey:         mpesaCfg.Passkey,
		CallbackBaseURL: mpesaCfg.CallbackBaseURL,
		ResponseType:    mpesaCfg.ResponseType,
	}

	if settings.Passkey == "" && mpesaCfg.Environment != EnvironmentProduction {
		settings.Passkey = SandboxPasskey
	}

	timeout := time.Duration(mpesaCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log.Info().Str("environment", mpesaCfg.Environment).Str("short_code", settings.ShortCode).Msg("M-Pesa client initialized")

	return NewClient(settings, &http.Client{Timeout: timeout}, otel)
}

// BaseURL maps the configured environment to the Daraja host.
func BaseURL(environment string) string {
	if environment == EnvironmentProduction {
		return ProductionBaseURL
	}

	return SandboxBaseURL
}
