package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"tourismrelay/config"
	"tourismrelay/infras/mpesa"
	mpesaMocks "tourismrelay/infras/mpesa/mocks"
	"tourismrelay/infras/notifier"
	otelMocks "tourismrelay/infras/otel/mocks"
	bookingModel "tourismrelay/internal/domains/booking/model"
	"tourismrelay/internal/domains/payment/model"
	"tourismrelay/internal/domains/payment/model/dto"
	"tourismrelay/internal/domains/payment/service"
	"tourismrelay/internal/testutil/memstore"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/failure"
	gModel "tourismrelay/shared/model"
	"tourismrelay/shared/money"
	"tourismrelay/shared/phone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	code          = "V20240101-QAX1"
	touristPhone  = "+254712345678"
	stewardPhone  = "+254741770540"
	notifyTimeout = time.Second
)

var created = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	cache    *memstore.Cache
	outbox   *memstore.Outbox
	provider *mpesaMocks.MockProvider
	svc      service.Payment
}

func newFixture(t *testing.T, settings service.Settings) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		store:    memstore.New(),
		cache:    memstore.NewCache(),
		outbox:   memstore.NewOutbox(),
		provider: mpesaMocks.NewMockProvider(ctrl),
	}

	f.svc = service.NewWithSettings(f.store, f.provider, f.outbox, f.cache, otelMocks.NewOtel(), settings)

	return f
}

func newBooking(code, total string) bookingModel.Booking {
	return bookingModel.Booking{
		Code:               code,
		CommunityID:        memstore.IlNgwesi.ID,
		TouristName:        "Jane Doe",
		TouristContact:     touristPhone,
		TouristEmail:       "jane@example.com",
		TouristPhoneSuffix: phone.Suffix(touristPhone),
		ArrivalDate:        time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		NumVisitors:        2,
		RequestedServices:  gModel.StringList{"guided_walk"},
		StewardContact:     stewardPhone,
		Status:             bookingModel.StatusPending,
		PaymentStatus:      bookingModel.PaymentStatusPending,
		PaymentMethod:      bookingModel.PaymentMethodMpesa,
		PaymentDetails:     gModel.JSONMap{},
		TotalAmount:        decimal.RequireFromString(total),
		Metadata:           gModel.NewMetadata(constant.ContextTourist, created),
	}
}

func c2b(ref, transID, amount string) dto.C2BRequest {
	return dto.C2BRequest{
		TransactionType: "Pay Bill",
		TransID:         transID,
		TransTime:       "20240101120000",
		TransAmount:     decimal.RequireFromString(amount),
		BillRefNumber:   ref,
		MSISDN:          "254712345678",
		FirstName:       "Jane",
	}
}

func pushCallback(t *testing.T, sessionID string, resultCode int, items string) dto.PushCallback {
	t.Helper()

	body := fmt.Sprintf(`{"Body":{"stkCallback":{"MerchantRequestID":"m-1","CheckoutRequestID":%q,"ResultCode":%d,"ResultDesc":"desc","CallbackMetadata":{"Item":[%s]}}}}`,
		sessionID, resultCode, items)

	var cb dto.PushCallback
	require.NoError(t, json.Unmarshal([]byte(body), &cb))

	return cb
}

func paidAmount(t *testing.T, b bookingModel.Booking) string {
	t.Helper()

	require.True(t, b.AmountPaid.Valid)

	return b.AmountPaid.Decimal.StringFixed(money.Places)
}

func TestPreAuthorize(t *testing.T) {
	f := newFixture(t, service.Settings{})
	f.store.Put(newBooking(code, "1500.00"))

	paid := newBooking("V20240101-PAID", "1500.00")
	paid.PaymentStatus = bookingModel.PaymentStatusPaid
	paid.AmountPaid = decimal.NewNullDecimal(decimal.RequireFromString("1500.00"))
	f.store.Put(paid)

	tests := []struct {
		name   string
		req    dto.C2BRequest
		expect model.ValidationResult
	}{
		{name: "exact amount", req: c2b(code, "", "1500.00"), expect: model.ValidationAccepted},
		{name: "one over", req: c2b(code, "", "1501.00"), expect: model.ValidationAccepted},
		{name: "one under", req: c2b(code, "", "1499.00"), expect: model.ValidationAccepted},
		{name: "just outside tolerance", req: c2b(code, "", "1501.01"), expect: model.ValidationAmountMismatch},
		{name: "far under", req: c2b(code, "", "100"), expect: model.ValidationAmountMismatch},
		{name: "reference is trimmed and upper-cased", req: c2b(" v20240101-qax1 ", "", "1500"), expect: model.ValidationAccepted},
		{name: "unknown account", req: c2b("V20240101-NOPE", "", "1500"), expect: model.ValidationUnknownAccount},
		{name: "already paid", req: c2b("V20240101-PAID", "", "1500"), expect: model.ValidationAlreadyPaid},
		{name: "missing account", req: c2b("", "", "1500"), expect: model.ValidationMalformed},
		{name: "zero amount", req: c2b(code, "", "0"), expect: model.ValidationMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, f.svc.PreAuthorize(context.Background(), tt.req))
		})
	}

	booking, _ := f.store.Booking(code)
	assert.Equal(t, bookingModel.PaymentStatusPending, booking.PaymentStatus)
	assert.Zero(t, f.store.TransactionCount(code))
}

func TestPreAuthorize_FailsOpen(t *testing.T) {
	t.Run("deadline", func(t *testing.T) {
		f := newFixture(t, service.Settings{ValidationDeadline: 20 * time.Millisecond})
		f.store.Delay(500 * time.Millisecond)

		start := time.Now()
		res := f.svc.PreAuthorize(context.Background(), c2b("V20240101-NOPE", "", "1500"))

		assert.Equal(t, model.ValidationAccepted, res)
		assert.Less(t, time.Since(start), 400*time.Millisecond)
	})

	t.Run("store error", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Fail(errors.New("connection refused"))

		res := f.svc.PreAuthorize(context.Background(), c2b("V20240101-NOPE", "", "1500"))

		assert.Equal(t, model.ValidationAccepted, res)
	})
}

func TestSettleConfirmed(t *testing.T) {
	f := newFixture(t, service.Settings{})
	f.store.Put(newBooking(code, "1500.00"))
	require.NoError(t, f.cache.Save(context.Background(), bookingModel.CacheKey(code), "stale", 60))

	err := f.svc.SettleConfirmed(context.Background(), c2b(code, "QAX1RCPT", "1500"))
	require.NoError(t, err)

	booking, _ := f.store.Booking(code)
	assert.Equal(t, bookingModel.PaymentStatusPaid, booking.PaymentStatus)
	assert.Equal(t, "1500.00", paidAmount(t, booking))
	assert.Equal(t, 1, f.store.TransactionCount(code))

	require.True(t, f.outbox.Wait(2, notifyTimeout))
	assert.Len(t, f.outbox.To(notifier.ChannelEmail), 1)

	sms := f.outbox.To(notifier.ChannelSMS)
	require.Len(t, sms, 1)
	assert.Equal(t, stewardPhone, sms[0].Recipient.Address)
	assert.Contains(t, sms[0].Message, "KES 1500.00")

	assert.Eventually(t, func() bool { return !f.cache.Has(bookingModel.CacheKey(code)) }, notifyTimeout, 5*time.Millisecond)

	t.Run("replay is acknowledged without change", func(t *testing.T) {
		err := f.svc.SettleConfirmed(context.Background(), c2b(code, "QAX1RCPT", "1500"))
		require.NoError(t, err)

		assert.Equal(t, 1, f.store.TransactionCount(code))

		again, _ := f.store.Booking(code)
		assert.Equal(t, booking, again)
	})

	t.Run("distinct reference on a paid booking is recorded only", func(t *testing.T) {
		err := f.svc.SettleConfirmed(context.Background(), c2b(code, "QAX1OTHER", "200"))
		require.NoError(t, err)

		assert.Equal(t, 2, f.store.TransactionCount(code))

		again, _ := f.store.Booking(code)
		assert.Equal(t, "1500.00", paidAmount(t, again))
	})
}

func TestSettleConfirmed_Rejects(t *testing.T) {
	f := newFixture(t, service.Settings{})

	err := f.svc.SettleConfirmed(context.Background(), c2b("V20240101-NOPE", "R1", "1500"))
	assert.True(t, errors.Is(err, failure.ErrBookingNotFound))

	err = f.svc.SettleConfirmed(context.Background(), c2b(code, "", "1500"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	f.store.Fail(errors.New("connection refused"))

	err = f.svc.SettleConfirmed(context.Background(), c2b(code, "R2", "1500"))
	assert.True(t, failure.IsUnavailable(err))
}

func TestSettleConfirmed_ConcurrentDeliveries(t *testing.T) {
	t.Run("same reference", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(newBooking(code, "1500.00"))

		var wg sync.WaitGroup

		for range 10 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				assert.NoError(t, f.svc.SettleConfirmed(context.Background(), c2b(code, "SAMEREF", "1500")))
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, f.store.TransactionCount(code))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPaid, booking.PaymentStatus)
	})

	t.Run("distinct references", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(newBooking(code, "1500.00"))

		var wg sync.WaitGroup

		for i := range 10 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				amount := decimal.NewFromInt(int64(1500 + i)).String()
				assert.NoError(t, f.svc.SettleConfirmed(context.Background(), c2b(code, fmt.Sprintf("REF%02d", i), amount)))
			}()
		}

		wg.Wait()

		assert.Equal(t, 10, f.store.TransactionCount(code))

		require.True(t, f.outbox.Wait(2, notifyTimeout))
		time.Sleep(50 * time.Millisecond)
		assert.Len(t, f.outbox.Sent(), 2)

		res, err := f.svc.Transactions(context.Background(), code)
		require.NoError(t, err)

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPaid, booking.PaymentStatus)

		paid := paidAmount(t, booking)
		matches := 0

		for _, tx := range res.Transactions {
			if decimal.NewFromFloat(tx.Amount).StringFixed(money.Places) == paid {
				matches++
			}
		}

		assert.Equal(t, 1, matches)
	})
}

func TestSettlePushResult(t *testing.T) {
	pending := func(code, sessionID string, at time.Time) bookingModel.Booking {
		b := newBooking(code, "1500.00")
		b.PaymentStatus = bookingModel.PaymentStatusPendingPush
		b.PushSessionID = sessionID
		b.PushPhoneSuffix = phone.Suffix(touristPhone)
		b.CreatedAt = at

		return b
	}

	t.Run("minor units are normalized", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(pending(code, "ws_CO_1", created))

		cb := pushCallback(t, "ws_CO_1", 0, `{"Name":"Amount","Value":150000},{"Name":"MpesaReceiptNumber","Value":"QAX1PUSH"},{"Name":"PhoneNumber","Value":254712345678}`)
		require.NoError(t, f.svc.SettlePushResult(context.Background(), cb))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPaid, booking.PaymentStatus)
		assert.Equal(t, "1500.00", paidAmount(t, booking))
		assert.Equal(t, 1, f.store.TransactionCount(code))
	})

	t.Run("major units when configured", func(t *testing.T) {
		f := newFixture(t, service.Settings{PushAmountUnit: money.UnitMajor})
		f.store.Put(pending(code, "ws_CO_1", created))

		cb := pushCallback(t, "ws_CO_1", 0, `{"Name":"Amount","Value":"1500.00"},{"Name":"MpesaReceiptNumber","Value":"QAX1PUSH"}`)
		require.NoError(t, f.svc.SettlePushResult(context.Background(), cb))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, "1500.00", paidAmount(t, booking))
	})

	t.Run("missing amount falls back to total", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(pending(code, "ws_CO_1", created))

		cb := pushCallback(t, "ws_CO_1", 0, `{"Name":"MpesaReceiptNumber","Value":"QAX1PUSH"}`)
		require.NoError(t, f.svc.SettlePushResult(context.Background(), cb))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, "1500.00", paidAmount(t, booking))
	})

	t.Run("falls back to newest booking for the phone", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(pending("V20240101-OLD1", "ws_CO_old", created))
		f.store.Put(pending("V20240102-NEW1", "ws_CO_new", created.Add(time.Hour)))

		cb := pushCallback(t, "ws_CO_unknown", 0, `{"Name":"Amount","Value":150000},{"Name":"MpesaReceiptNumber","Value":"QAX1PUSH"},{"Name":"PhoneNumber","Value":"0712345678"}`)
		require.NoError(t, f.svc.SettlePushResult(context.Background(), cb))

		newer, _ := f.store.Booking("V20240102-NEW1")
		older, _ := f.store.Booking("V20240101-OLD1")
		assert.True(t, newer.IsPaid())
		assert.False(t, older.IsPaid())
	})

	t.Run("no match", func(t *testing.T) {
		f := newFixture(t, service.Settings{})

		cb := pushCallback(t, "ws_CO_unknown", 0, `{"Name":"MpesaReceiptNumber","Value":"QAX1PUSH"},{"Name":"PhoneNumber","Value":254700000000}`)
		err := f.svc.SettlePushResult(context.Background(), cb)

		assert.True(t, errors.Is(err, failure.ErrBookingNotFound))
	})

	t.Run("success without receipt", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(pending(code, "ws_CO_1", created))

		err := f.svc.SettlePushResult(context.Background(), pushCallback(t, "ws_CO_1", 0, ""))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("push after confirmation does not pay twice", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(pending(code, "ws_CO_1", created))

		require.NoError(t, f.svc.SettleConfirmed(context.Background(), c2b(code, "QAX1PUSH", "1500")))

		cb := pushCallback(t, "ws_CO_1", 0, `{"Name":"Amount","Value":150000},{"Name":"MpesaReceiptNumber","Value":"QAX1PUSH"}`)
		require.NoError(t, f.svc.SettlePushResult(context.Background(), cb))

		assert.Equal(t, 1, f.store.TransactionCount(code))
	})
}

func TestSettlePushResult_Failed(t *testing.T) {
	pending := func() bookingModel.Booking {
		b := newBooking(code, "1500.00")
		b.PaymentStatus = bookingModel.PaymentStatusPendingPush
		b.PushSessionID = "ws_CO_1"

		return b
	}

	t.Run("hold", func(t *testing.T) {
		f := newFixture(t, service.Settings{FailedPushPolicy: model.FailedPushHold})
		f.store.Put(pending())

		require.NoError(t, f.svc.SettlePushResult(context.Background(), pushCallback(t, "ws_CO_1", 1032, "")))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPendingPush, booking.PaymentStatus)
		assert.Zero(t, f.store.TransactionCount(code))
	})

	t.Run("revert", func(t *testing.T) {
		f := newFixture(t, service.Settings{FailedPushPolicy: model.FailedPushRevert})
		f.store.Put(pending())

		require.NoError(t, f.svc.SettlePushResult(context.Background(), pushCallback(t, "ws_CO_1", 1032, "")))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPending, booking.PaymentStatus)
	})

	t.Run("late success after revert is abandoned", func(t *testing.T) {
		f := newFixture(t, service.Settings{FailedPushPolicy: model.FailedPushRevert})
		f.store.Put(pending())

		require.NoError(t, f.svc.SettlePushResult(context.Background(), pushCallback(t, "ws_CO_1", 1032, "")))

		late := pushCallback(t, "ws_CO_1", 0, `{"Name":"Amount","Value":150000},{"Name":"MpesaReceiptNumber","Value":"QAXLATE"},{"Name":"PhoneNumber","Value":254712345678}`)
		err := f.svc.SettlePushResult(context.Background(), late)

		assert.True(t, errors.Is(err, failure.ErrBookingNotFound))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPending, booking.PaymentStatus)
		assert.False(t, booking.AmountPaid.Valid)
		assert.Zero(t, f.store.TransactionCount(code))
	})

	t.Run("revert leaves a paid booking alone", func(t *testing.T) {
		f := newFixture(t, service.Settings{FailedPushPolicy: model.FailedPushRevert})

		b := pending()
		b.PaymentStatus = bookingModel.PaymentStatusPaid
		b.AmountPaid = decimal.NewNullDecimal(b.TotalAmount)
		f.store.Put(b)

		require.NoError(t, f.svc.SettlePushResult(context.Background(), pushCallback(t, "ws_CO_1", 1032, "")))

		booking, _ := f.store.Booking(code)
		assert.True(t, booking.IsPaid())
	})
}

func TestRequestPush(t *testing.T) {
	req := dto.PushRequest{BookingCode: code, PhoneNumber: "0712 345 678"}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(newBooking(code, "1500.00"))

		f.provider.EXPECT().
			InitiatePush(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r mpesa.PushRequest) (mpesa.PushResponse, error) {
				assert.Equal(t, "254712345678", r.Phone)
				assert.Equal(t, code, r.AccountReference)
				assert.True(t, r.Amount.Equal(decimal.NewFromInt(1500)))

				return mpesa.PushResponse{CheckoutRequestID: "ws_CO_1", CustomerMessage: "Success"}, nil
			})

		res, err := f.svc.RequestPush(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, "ws_CO_1", res.CheckoutRequestID)
		assert.Equal(t, service.MessagePushInitiated, res.Message)

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPendingPush, booking.PaymentStatus)
		assert.Equal(t, "ws_CO_1", booking.PushSessionID)
		assert.Equal(t, "712345678", booking.PushPhoneSuffix)
	})

	t.Run("retry while pending push", func(t *testing.T) {
		f := newFixture(t, service.Settings{})

		b := newBooking(code, "1500.00")
		b.PaymentStatus = bookingModel.PaymentStatusPendingPush
		b.PushSessionID = "ws_CO_1"
		f.store.Put(b)

		f.provider.EXPECT().InitiatePush(gomock.Any(), gomock.Any()).Return(mpesa.PushResponse{CheckoutRequestID: "ws_CO_2"}, nil)

		_, err := f.svc.RequestPush(context.Background(), req)
		require.NoError(t, err)

		booking, _ := f.store.Booking(code)
		assert.Equal(t, "ws_CO_2", booking.PushSessionID)
	})

	t.Run("provider failure leaves booking untouched", func(t *testing.T) {
		f := newFixture(t, service.Settings{})
		f.store.Put(newBooking(code, "1500.00"))

		f.provider.EXPECT().InitiatePush(gomock.Any(), gomock.Any()).Return(mpesa.PushResponse{}, failure.Unavailable("provider down", nil))

		_, err := f.svc.RequestPush(context.Background(), req)
		assert.True(t, failure.IsUnavailable(err))

		booking, _ := f.store.Booking(code)
		assert.Equal(t, bookingModel.PaymentStatusPending, booking.PaymentStatus)
	})

	t.Run("rejections", func(t *testing.T) {
		f := newFixture(t, service.Settings{})

		paid := newBooking("V20240101-PAID", "1500.00")
		paid.PaymentStatus = bookingModel.PaymentStatusPaid
		paid.AmountPaid = decimal.NewNullDecimal(paid.TotalAmount)
		f.store.Put(paid)
		f.store.Put(newBooking("V20240101-ZERO", "0"))

		_, err := f.svc.RequestPush(context.Background(), dto.PushRequest{BookingCode: "V20240101-NOPE", PhoneNumber: touristPhone})
		assert.True(t, errors.Is(err, failure.ErrBookingNotFound))

		_, err = f.svc.RequestPush(context.Background(), dto.PushRequest{BookingCode: "V20240101-PAID", PhoneNumber: touristPhone})
		assert.True(t, errors.Is(err, failure.ErrAlreadyPaid))

		_, err = f.svc.RequestPush(context.Background(), dto.PushRequest{BookingCode: "V20240101-ZERO", PhoneNumber: touristPhone})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

		_, err = f.svc.RequestPush(context.Background(), dto.PushRequest{BookingCode: code, PhoneNumber: "12"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestTransactions(t *testing.T) {
	f := newFixture(t, service.Settings{})

	_, err := f.svc.Transactions(context.Background(), code)
	assert.True(t, errors.Is(err, failure.ErrBookingNotFound))

	f.store.Put(newBooking(code, "1500.00"))
	require.NoError(t, f.svc.SettleConfirmed(context.Background(), c2b(code, "QAX1RCPT", "1500")))

	res, err := f.svc.Transactions(context.Background(), code)
	require.NoError(t, err)

	require.Equal(t, 1, res.TotalData)
	assert.Equal(t, "QAX1RCPT", res.Transactions[0].ProviderReference)
	assert.Equal(t, model.ChannelConfirmation, res.Transactions[0].Channel)
	assert.InDelta(t, 1500.0, res.Transactions[0].Amount, 0.001)
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Reconciliation.AmountTolerance = "not-a-number"
	cfg.Reconciliation.ValidationDeadlineMillis = 9000

	settings := service.SettingsFromConfig(cfg)

	assert.True(t, settings.Tolerance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, model.FailedPushHold, settings.FailedPushPolicy)
	assert.Equal(t, money.UnitMinor, settings.PushAmountUnit)
	assert.Equal(t, 5*time.Second, settings.StoreTimeout)
	assert.Equal(t, 7*time.Second, settings.ValidationDeadline)

	cfg.Reconciliation.AmountTolerance = "0.50"
	cfg.Reconciliation.FailedPushPolicy = "revert"
	cfg.Reconciliation.PushAmountUnit = "major"
	cfg.Reconciliation.ValidationDeadlineMillis = 3000

	settings = service.SettingsFromConfig(cfg)

	assert.Equal(t, "0.50", settings.Tolerance.StringFixed(money.Places))
	assert.Equal(t, model.FailedPushRevert, settings.FailedPushPolicy)
	assert.Equal(t, money.UnitMajor, settings.PushAmountUnit)
	assert.Equal(t, 3*time.Second, settings.ValidationDeadline)
}
