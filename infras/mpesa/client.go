package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"tourismrelay/infras/otel"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/failure"
	"tourismrelay/shared/phone"
	"tourismrelay/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 30 * time.Second

	pathOAuth        = "/oauth/v1/generate?grant_type=client_credentials"
	pathRegisterURLs = "/mpesa/c2b/v2/registerurl"
	pathPush         = "/mpesa/stkpush/v1/processrequest"
	pathPushQuery    = "/mpesa/stkpushquery/v1/query"

	timestampLayout = "20060102150405"

	otelAttrEndpoint = "mpesa.endpoint"
	otelAttrStatus   = "mpesa.status_code"

	maxErrorBody = 1 << 12
)

var errProviderResponse = errors.New("unexpected response from M-Pesa")

// Settings is everything the Daraja client needs, resolved from config.
type Settings struct {
	BaseURL         string
	ConsumerKey     string
	ConsumerSecret  string
	ShortCode       string
	Passkey         string
	CallbackBaseURL string
	ResponseType    string
}

type client struct {
	settings Settings
	http     *http.Client
	otel     otel.Otel
	now      func() time.Time

	mu    sync.Mutex
	token Token
}

func NewClient(settings Settings, httpClient *http.Client, otel otel.Otel) Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &client{
		settings: settings,
		http:     httpClient,
		otel:     otel,
		now:      timezone.Now,
	}
}

// Password builds the STK password: base64(shortCode + passkey + timestamp).
func Password(shortCode, passkey string, at time.Time) (password, timestamp string) {
	timestamp = at.Format(timestampLayout)
	password = base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))

	return password, timestamp
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
}

// Token returns the cached token while it is fresh and fetches a new one otherwise.
func (c *client) Token(ctx context.Context) (res Token, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelMpesaScopeName, constant.OtelMpesaScopeName+".Token")
	defer scope.End()
	defer scope.TraceIfError(err)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Fresh(c.now()) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.settings.BaseURL+pathOAuth, nil)
	if err != nil {
		return res, fmt.Errorf("failed to build token request: %w", err)
	}

	req.SetBasicAuth(c.settings.ConsumerKey, c.settings.ConsumerSecret)

	body := tokenResponse{}
	if err = c.do(req, &body); err != nil {
		log.Error().Err(err).Msg("failed to generate M-Pesa access token")

		return res, err
	}

	if body.AccessToken == "" {
		return res, failure.Unavailable("M-Pesa returned an empty access token", errProviderResponse) //nolint:wrapcheck
	}

	seconds, _ := strconv.Atoi(body.ExpiresIn.String())

	c.token = NewToken(body.AccessToken, time.Duration(seconds)*time.Second, c.now())

	return c.token, nil
}

func (c *client) RegisterURLs(ctx context.Context) (res RegisterResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelMpesaScopeName, constant.OtelMpesaScopeName+".RegisterURLs")
	defer scope.End()
	defer scope.TraceIfError(err)

	base := strings.TrimRight(c.settings.CallbackBaseURL, "/")
	if base == "" {
		return res, failure.BadRequestFromString("callback base URL is not configured") //nolint:wrapcheck
	}

	payload := map[string]string{
		"ShortCode":       c.settings.ShortCode,
		"ResponseType":    c.settings.ResponseType,
		"ConfirmationURL": base + PathConfirmation,
		"ValidationURL":   base + PathValidation,
	}

	if err = c.post(ctx, pathRegisterURLs, payload, &res); err != nil {
		log.Error().Err(err).Msg("failed to register C2B URLs")

		return res, err
	}

	log.Info().Str("response", res.ResponseDescription).Msg("C2B URLs registered")

	return res, nil
}

type pushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            int64  `json:"PartyA"`
	PartyB            int64  `json:"PartyB"`
	PhoneNumber       int64  `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// InitiatePush asks Daraja to prompt the payer's handset. Amounts are sent
// as whole shillings, rounded up.
func (c *client) InitiatePush(ctx context.Context, req PushRequest) (res PushResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelMpesaScopeName, constant.OtelMpesaScopeName+".InitiatePush")
	defer scope.End()
	defer scope.TraceIfError(err)

	msisdn, err := phone.Normalize(req.Phone)
	if err != nil {
		return res, err
	}

	payer, _ := strconv.ParseInt(msisdn, 10, 64)
	shortCode, _ := strconv.ParseInt(c.settings.ShortCode, 10, 64)
	password, timestamp := Password(c.settings.ShortCode, c.settings.Passkey, c.now())

	description := req.Description
	if description == "" {
		description = "Payment"
	}

	payload := pushPayload{
		BusinessShortCode: c.settings.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   TransactionTypePayBill,
		Amount:            req.Amount.Ceil().IntPart(),
		PartyA:            payer,
		PartyB:            shortCode,
		PhoneNumber:       payer,
		CallBackURL:       strings.TrimRight(c.settings.CallbackBaseURL, "/") + PathPushCallback,
		AccountReference:  req.AccountReference,
		TransactionDesc:   description,
	}

	if err = c.post(ctx, pathPush, payload, &res); err != nil {
		log.Error().Err(err).Str("account_reference", req.AccountReference).Msg("failed to initiate STK push")

		return res, err
	}

	if res.ResponseCode != ResultCodeSuccess {
		return res, failure.Unavailable(fmt.Sprintf("M-Pesa rejected the push request: %s", res.ResponseDescription), errProviderResponse) //nolint:wrapcheck
	}

	return res, nil
}

func (c *client) QueryPush(ctx context.Context, checkoutRequestID string) (res PushStatus, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelMpesaScopeName, constant.OtelMpesaScopeName+".QueryPush")
	defer scope.End()
	defer scope.TraceIfError(err)

	password, timestamp := Password(c.settings.ShortCode, c.settings.Passkey, c.now())

	payload := map[string]string{
		"BusinessShortCode": c.settings.ShortCode,
		"Password":          password,
		"Timestamp":         timestamp,
		"CheckoutRequestID": checkoutRequestID,
	}

	if err = c.post(ctx, pathPushQuery, payload, &res); err != nil {
		log.Error().Err(err).Str("checkout_request_id", checkoutRequestID).Msg("failed to query STK push")

		return res, err
	}

	return res, nil
}

func (c *client) post(ctx context.Context, path string, payload, out any) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token.Value)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	_, scope := c.otel.NewScope(req.Context(), constant.OtelMpesaScopeName, constant.OtelMpesaScopeName+".do")
	defer scope.End()

	scope.SetAttribute(otelAttrEndpoint, req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		scope.TraceError(err)

		return failure.Unavailable("M-Pesa is unreachable", err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	scope.SetAttribute(otelAttrStatus, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err = fmt.Errorf("%w: status %d: %s", errProviderResponse, resp.StatusCode, strings.TrimSpace(string(raw)))
		scope.TraceError(err)

		return failure.Unavailable("M-Pesa request failed", err) //nolint:wrapcheck
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		scope.TraceError(err)

		return failure.Unavailable("M-Pesa returned an unreadable response", err) //nolint:wrapcheck
	}

	return nil
}
