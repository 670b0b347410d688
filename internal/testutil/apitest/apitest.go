// Package apitest assembles the full HTTP stack over the in-memory store so
// handler tests can drive real routes end to end.
package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourismrelay/config"
	"tourismrelay/infras/mpesa"
	otelMocks "tourismrelay/infras/otel/mocks"
	"tourismrelay/infras/s3"
	bookingService "tourismrelay/internal/domains/booking/service"
	communityService "tourismrelay/internal/domains/community/service"
	"tourismrelay/internal/domains/payment/archive"
	paymentService "tourismrelay/internal/domains/payment/service"
	bookingHandler "tourismrelay/internal/handlers/booking"
	mpesaHandler "tourismrelay/internal/handlers/mpesa"
	smsHandler "tourismrelay/internal/handlers/sms"
	"tourismrelay/internal/testutil/memstore"
	transport "tourismrelay/transport/http"
	"tourismrelay/transport/http/middleware"
	"tourismrelay/transport/http/router"

	"github.com/stretchr/testify/require"
)

const APIKey = "operator-secret"

type Server struct {
	Store  *memstore.Store
	Cache  *memstore.Cache
	Outbox *memstore.Outbox
	Config *config.Config

	handler http.Handler
}

// Config returns the settings the stack runs with unless a test overrides them.
func Config() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "tourismrelay"
	cfg.App.Community = memstore.IlNgwesi.Name
	cfg.App.APIKey = APIKey
	cfg.Cache.TTL = 60

	return cfg
}

func New(cfg *config.Config, provider mpesa.Provider) *Server {
	srv := &Server{
		Store:  memstore.New(),
		Cache:  memstore.NewCache(),
		Outbox: memstore.NewOutbox(),
		Config: cfg,
	}

	otel := otelMocks.NewOtel()

	community := communityService.New(srv.Store, cfg, srv.Cache, otel)
	booking := bookingService.New(srv.Store, community, srv.Outbox, cfg, srv.Cache, otel)
	payment := paymentService.New(srv.Store, provider, srv.Outbox, srv.Cache, cfg, otel)

	auth := middleware.NewAuthMiddleware(otel, cfg)
	app := middleware.NewAppMiddleware(otel, cfg, srv.Cache)

	handlers := router.DomainHandlers{
		Booking: bookingHandler.New(booking, payment, auth, otel),
		SMS:     smsHandler.New(booking, otel),
		Mpesa:   mpesaHandler.New(payment, archive.New(s3.New(cfg, otel)), auth, otel),
	}

	srv.handler = transport.New(cfg, router.New(handlers, app), app).Handler()

	return srv
}

// Do sends body as JSON and returns the recorded response. headers are
// name/value pairs.
func (s *Server) Do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

// Decode unmarshals a recorded JSON body into T.
func Decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}
