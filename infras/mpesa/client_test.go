package mpesa_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tourismrelay/infras/mpesa"
	"tourismrelay/infras/otel/mocks"
	"tourismrelay/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDaraja struct {
	tokenCalls atomic.Int32
	lastPush   map[string]any
	register   map[string]any
}

func (f *fakeDaraja) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		f.tokenCalls.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":"3599"}`))
	})

	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastPush))

		_, _ = w.Write([]byte(`{"MerchantRequestID":"m-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing","CustomerMessage":"Success. Request accepted for processing"}`))
	})

	mux.HandleFunc("/mpesa/stkpushquery/v1/query", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ResponseCode":"0","CheckoutRequestID":"ws_CO_1","ResultCode":"1032","ResultDesc":"Request cancelled by user"}`))
	})

	mux.HandleFunc("/mpesa/c2b/v2/registerurl", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.register))

		_, _ = w.Write([]byte(`{"OriginatorCoversationID":"o-1","ResponseCode":"0","ResponseDescription":"Success"}`))
	})

	return mux
}

func newTestClient(t *testing.T, fake *fakeDaraja) mpesa.Provider {
	t.Helper()

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	return mpesa.NewClient(mpesa.Settings{
		BaseURL:         server.URL,
		ConsumerKey:     "key",
		ConsumerSecret:  "secret",
		ShortCode:       "600984",
		Passkey:         mpesa.SandboxPasskey,
		CallbackBaseURL: "https://relay.example.com/",
		ResponseType:    "Completed",
	}, server.Client(), mocks.NewOtel())
}

func TestClient_TokenIsCached(t *testing.T) {
	fake := &fakeDaraja{}
	client := newTestClient(t, fake)

	first, err := client.Token(context.Background())
	require.NoError(t, err)

	second, err := client.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-123", first.Value)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fake.tokenCalls.Load())
}

func TestClient_InitiatePush(t *testing.T) {
	fake := &fakeDaraja{}
	client := newTestClient(t, fake)

	res, err := client.InitiatePush(context.Background(), mpesa.PushRequest{
		Phone:            "0712 345 678",
		Amount:           decimal.RequireFromString("2500.40"),
		AccountReference: "V20240101-ABCD1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "ws_CO_1", res.CheckoutRequestID)
	assert.Equal(t, "CustomerPayBillOnline", fake.lastPush["TransactionType"])
	assert.Equal(t, float64(2501), fake.lastPush["Amount"])
	assert.Equal(t, float64(254712345678), fake.lastPush["PhoneNumber"])
	assert.Equal(t, float64(600984), fake.lastPush["PartyB"])
	assert.Equal(t, "600984", fake.lastPush["BusinessShortCode"])
	assert.Equal(t, "https://relay.example.com/v1/mpesa/stk-callback", fake.lastPush["CallBackURL"])
	assert.Equal(t, "V20240101-ABCD1234", fake.lastPush["AccountReference"])
	assert.Len(t, fake.lastPush["Timestamp"], 14)
}

func TestClient_InitiatePushRejectsBadPhone(t *testing.T) {
	client := newTestClient(t, &fakeDaraja{})

	_, err := client.InitiatePush(context.Background(), mpesa.PushRequest{Phone: "12", Amount: decimal.NewFromInt(10)})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestClient_QueryPush(t *testing.T) {
	client := newTestClient(t, &fakeDaraja{})

	status, err := client.QueryPush(context.Background(), "ws_CO_1")
	require.NoError(t, err)

	assert.Equal(t, "1032", status.ResultCode)
	assert.Equal(t, "Request cancelled by user", status.ResultDesc)
}

func TestClient_RegisterURLs(t *testing.T) {
	fake := &fakeDaraja{}
	client := newTestClient(t, fake)

	res, err := client.RegisterURLs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0", res.ResponseCode)
	assert.Equal(t, "https://relay.example.com/v1/mpesa/confirmation", fake.register["ConfirmationURL"])
	assert.Equal(t, "https://relay.example.com/v1/mpesa/validation", fake.register["ValidationURL"])
	assert.Equal(t, "600984", fake.register["ShortCode"])
}

func TestClient_ProviderErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errorCode":"400.008.01","errorMessage":"Invalid Authentication passed"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := mpesa.NewClient(mpesa.Settings{BaseURL: server.URL, ConsumerKey: "k", ConsumerSecret: "s"}, server.Client(), mocks.NewOtel())

	_, err := client.Token(context.Background())

	assert.True(t, failure.IsUnavailable(err))
}

func TestDisabledProvider(t *testing.T) {
	provider := mpesa.NewDisabled()
	ctx := context.Background()

	_, err := provider.Token(ctx)
	assert.True(t, errors.Is(err, failure.ErrProviderNotConfigured))

	_, err = provider.InitiatePush(ctx, mpesa.PushRequest{})
	assert.True(t, errors.Is(err, failure.ErrProviderNotConfigured))

	_, err = provider.QueryPush(ctx, "ws_CO_1")
	assert.True(t, errors.Is(err, failure.ErrProviderNotConfigured))

	_, err = provider.RegisterURLs(ctx)
	assert.True(t, errors.Is(err, failure.ErrProviderNotConfigured))
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, mpesa.ProductionBaseURL, mpesa.BaseURL("production"))
	assert.Equal(t, mpesa.SandboxBaseURL, mpesa.BaseURL("sandbox"))
	assert.Equal(t, mpesa.SandboxBaseURL, mpesa.BaseURL(""))
}
