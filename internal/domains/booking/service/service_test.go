package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"tourismrelay/config"
	"tourismrelay/infras/notifier"
	otelMocks "tourismrelay/infras/otel/mocks"
	"tourismrelay/internal/domains/booking/model"
	"tourismrelay/internal/domains/booking/model/dto"
	"tourismrelay/internal/domains/booking/service"
	communityModel "tourismrelay/internal/domains/community/model"
	communityService "tourismrelay/internal/domains/community/service"
	communityMocks "tourismrelay/internal/domains/community/service/mocks"
	"tourismrelay/internal/testutil/memstore"
	"tourismrelay/shared/bookingcode"
	"tourismrelay/shared/failure"
	gModel "tourismrelay/shared/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const notifyTimeout = time.Second

type fixture struct {
	store  *memstore.Store
	cache  *memstore.Cache
	outbox *memstore.Outbox
	svc    service.Booking
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Community = memstore.IlNgwesi.Name
	cfg.Cache.TTL = 60

	return cfg
}

func newFixture() *fixture {
	return newFixtureWith(newConfig())
}

func newFixtureWith(cfg *config.Config) *fixture {
	f := &fixture{
		store:  memstore.New(),
		cache:  memstore.NewCache(),
		outbox: memstore.NewOutbox(),
	}

	community := communityService.New(f.store, cfg, f.cache, otelMocks.NewOtel())
	f.svc = service.New(f.store, community, f.outbox, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		TouristName:     "Jane Doe",
		TouristEmail:    "jane@example.com",
		TouristPhone:    "+254712345678",
		ArrivalDate:     "2024-02-14",
		NumVisitors:     2,
		Services:        []string{"guided_walk", "homestay"},
		SpecialRequests: "Vegetarian meals",
		TotalAmount:     decimal.RequireFromString("1500"),
		PaymentMethod:   model.PaymentMethodMpesa,
	}
}

func TestCreate(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, service.MessageBookingSubmitted, res.Message)
	assert.True(t, bookingcode.Valid(res.BookingCode))

	booking, ok := f.store.Booking(res.BookingCode)
	require.True(t, ok)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, memstore.IlNgwesi.ID, booking.CommunityID)
	assert.Equal(t, memstore.IlNgwesi.StewardPhone, booking.StewardContact)
	assert.Equal(t, "712345678", booking.TouristPhoneSuffix)
	assert.Nil(t, booking.ConfirmedServices)
	assert.False(t, booking.AmountPaid.Valid)

	require.True(t, f.outbox.Wait(2, notifyTimeout))

	sms := f.outbox.To(notifier.ChannelSMS)
	require.Len(t, sms, 1)
	assert.Equal(t, memstore.IlNgwesi.StewardPhone, sms[0].Recipient.Address)
	assert.True(t, strings.HasPrefix(sms[0].Message, "VISITOR ALERT\n"))
	assert.Contains(t, sms[0].Message, "Reply: CONFIRM "+res.BookingCode)

	email := f.outbox.To(notifier.ChannelEmail)
	require.Len(t, email, 1)
	assert.Equal(t, "jane@example.com", email[0].Recipient.Address)
	assert.Contains(t, email[0].Message, res.BookingCode)
}

func TestCreate_Rejects(t *testing.T) {
	t.Run("service not offered", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.Services = []string{"skydiving"}

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unparseable date", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.ArrivalDate = "14/02/2024"

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("community missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		community := communityMocks.NewMockCommunity(ctrl)
		community.EXPECT().Default(gomock.Any()).Return(communityModel.Community{}, failure.NotFound("community not found"))

		svc := service.New(memstore.New(), community, memstore.NewOutbox(), newConfig(), memstore.NewCache(), otelMocks.NewOtel())

		_, err := svc.Create(context.Background(), validRequest())

		assert.True(t, failure.IsUnavailable(err))
	})

	t.Run("store down", func(t *testing.T) {
		refused := errors.New("connection refused")

		f := newFixture()
		f.store.Fail(refused)

		_, err := f.svc.Create(context.Background(), validRequest())

		assert.True(t, failure.IsUnavailable(err))
		assert.ErrorIs(t, err, refused)
	})
}

func TestStoreTimeout(t *testing.T) {
	cfg := newConfig()
	cfg.Reconciliation.StoreTimeoutSeconds = 1

	f := newFixtureWith(cfg)

	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	f.store.Delay(4 * time.Second)
	defer f.store.Delay(0)

	calls := map[string]func() error{
		"get": func() error {
			_, err := f.svc.Get(context.Background(), created.BookingCode)
			return err
		},
		"create": func() error {
			_, err := f.svc.Create(context.Background(), validRequest())
			return err
		},
		"confirm": func() error {
			_, err := f.svc.Confirm(context.Background(), dto.IncomingSMSRequest{
				Message: "CONFIRM " + created.BookingCode + " WALK YES",
			})
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			err := call()

			assert.True(t, failure.IsUnavailable(err), "got %v", err)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Less(t, time.Since(start), 3*time.Second)
		})
	}
}

func TestGet(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), "V20240101-NOPE")
	assert.True(t, errors.Is(err, failure.ErrBookingNotFound))

	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	res, err := f.svc.Get(context.Background(), created.BookingCode)
	require.NoError(t, err)

	assert.Equal(t, created.BookingCode, res.BookingCode)
	assert.Equal(t, "2024-02-14", res.ArrivalDate)
	assert.Equal(t, []string{"guided_walk", "homestay"}, res.RequestedServices)
	assert.InDelta(t, 1500.0, res.TotalAmount, 0.001)
	assert.Nil(t, res.AmountPaid)
	assert.Nil(t, res.ConfirmedServices)

	assert.Eventually(t, func() bool { return f.cache.Has(model.CacheKey(created.BookingCode)) }, notifyTimeout, 5*time.Millisecond)

	cached, err := f.svc.Get(context.Background(), created.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, res, cached)
}

func TestConfirm(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, f.outbox.Wait(2, notifyTimeout))

	_, err = f.svc.Get(context.Background(), created.BookingCode)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.cache.Has(model.CacheKey(created.BookingCode)) }, notifyTimeout, 5*time.Millisecond)

	res, err := f.svc.Confirm(context.Background(), dto.IncomingSMSRequest{
		From:    "0741770540",
		Message: "confirm " + created.BookingCode + " walk yes home no",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, service.MessageBookingConfirmed, res.Message)

	booking, _ := f.store.Booking(created.BookingCode)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	require.NotNil(t, booking.ConfirmedServices)
	assert.Equal(t, gModel.StringList{"guided_walk"}, *booking.ConfirmedServices)

	require.True(t, f.outbox.Wait(3, notifyTimeout))
	assert.Len(t, f.outbox.To(notifier.ChannelEmail), 2)

	assert.Eventually(t, func() bool { return !f.cache.Has(model.CacheKey(created.BookingCode)) }, notifyTimeout, 5*time.Millisecond)

	t.Run("second reply", func(t *testing.T) {
		_, err := f.svc.Confirm(context.Background(), dto.IncomingSMSRequest{Message: "CONFIRM " + created.BookingCode + " HOME YES"})

		assert.True(t, errors.Is(err, failure.ErrAlreadyConfirmed))

		again, _ := f.store.Booking(created.BookingCode)
		assert.Equal(t, gModel.StringList{"guided_walk"}, *again.ConfirmedServices)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := f.svc.Confirm(context.Background(), dto.IncomingSMSRequest{Message: "CONFIRM V20240101-NOPE WALK YES"})

		assert.True(t, errors.Is(err, failure.ErrBookingNotFound))
	})

	t.Run("not a confirmation", func(t *testing.T) {
		_, err := f.svc.Confirm(context.Background(), dto.IncomingSMSRequest{Message: "hello there"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestConfirm_AllDeclined(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), dto.IncomingSMSRequest{Message: "CONFIRM " + created.BookingCode + " WALK NO HOME NO"})
	require.NoError(t, err)

	booking, _ := f.store.Booking(created.BookingCode)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	require.NotNil(t, booking.ConfirmedServices)
	assert.Empty(t, *booking.ConfirmedServices)
}

func TestAvailability(t *testing.T) {
	res := newFixture().svc.Availability(context.Background())

	assert.True(t, res.Available)
	assert.Equal(t, service.MessageAvailability, res.Message)
}

func TestStewardAlert(t *testing.T) {
	booking := model.Booking{
		Code:              "V20240101-ABCD1234",
		TouristContact:    "+254712345678",
		TouristEmail:      "jane@example.com",
		ArrivalDate:       time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		NumVisitors:       1,
		RequestedServices: gModel.StringList{"guided_walk", "homestay"},
	}

	expected := "VISITOR ALERT\n" +
		"Date: 2024-02-14\n" +
		"Visitors: 1 person\n" +
		"Requested: Guided Walk, Homestay\n" +
		"Contact: +254712345678\n" +
		"Email: jane@example.com\n" +
		"Reply: CONFIRM V20240101-ABCD1234 [YES/NO for each service]\n" +
		"Code: V20240101-ABCD1234"

	assert.Equal(t, expected, service.StewardAlert(booking))

	booking.NumVisitors = 3
	booking.SpecialRequests = "Vegetarian"

	alert := service.StewardAlert(booking)
	assert.Contains(t, alert, "Visitors: 3 people")
	assert.True(t, strings.HasSuffix(alert, "\nNotes: Vegetarian"))
}
