package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"tourismrelay/config"
	"tourismrelay/infras/mpesa"
	"tourismrelay/infras/notifier"
	"tourismrelay/infras/otel"
	bookingModel "tourismrelay/internal/domains/booking/model"
	"tourismrelay/internal/domains/payment/model"
	"tourismrelay/internal/domains/payment/model/dto"
	"tourismrelay/internal/domains/payment/repository"
	"tourismrelay/shared/cache"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/failure"
	gModel "tourismrelay/shared/model"
	"tourismrelay/shared/money"
	"tourismrelay/shared/phone"
	gRepository "tourismrelay/shared/repository"
	"tourismrelay/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	MessagePushInitiated  = "STK Push initiated. Please check your phone."
	MessageURLsRegistered = "C2B URLs registered successfully"
)

// Payment reconciles provider notifications against bookings. Provider
// callbacks may arrive duplicated, out of order or concurrently.
type Payment interface {
	// RequestPush prompts the payer's phone for the booking total.
	RequestPush(ctx context.Context, req dto.PushRequest) (dto.PushResponse, error)
	// PreAuthorize answers the validation callback. It never mutates and
	// accepts when it cannot decide within the deadline.
	PreAuthorize(ctx context.Context, req dto.C2BRequest) model.ValidationResult
	SettleConfirmed(ctx context.Context, req dto.C2BRequest) error
	SettlePushResult(ctx context.Context, req dto.PushCallback) error

	Transactions(ctx context.Context, code string) (dto.TransactionsResponse, error)
	QueryPush(ctx context.Context, checkoutRequestID string) (dto.PushStatusResponse, error)
	RegisterURLs(ctx context.Context) (dto.RegisterURLsResponse, error)
	TestToken(ctx context.Context) (dto.TokenResponse, error)
}

type serviceImpl struct {
	repo     repository.Payment
	provider mpesa.Provider
	notifier notifier.Notifier
	cache    cache.RedisCache
	otel     otel.Otel
	settings Settings
}

func New(
	repo repository.Payment,
	provider mpesa.Provider,
	notifier notifier.Notifier,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return NewWithSettings(repo, provider, notifier, cache, otel, SettingsFromConfig(cfg))
}

func NewWithSettings(
	repo repository.Payment,
	provider mpesa.Provider,
	notifier notifier.Notifier,
	cache cache.RedisCache,
	otel otel.Otel,
	settings Settings,
) Payment {
	return &serviceImpl{
		repo:     repo,
		provider: provider,
		notifier: notifier,
		cache:    cache,
		otel:     otel,
		settings: settings.withDefaults(),
	}
}

func store[T any](ctx context.Context, s *serviceImpl, fn func(ctx context.Context) (T, error)) (T, error) {
	return gRepository.Call(ctx, s.settings.StoreTimeout, fn)
}

func (s *serviceImpl) invalidate(ctx context.Context, code string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, bookingModel.CacheKey(code)); err != nil {
			log.Error().Err(err).Str("booking_code", code).Msg("failed to invalidate booking cache")
		}
	}()
}

func (s *serviceImpl) RequestPush(ctx context.Context, req dto.PushRequest) (res dto.PushResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.RequestPush")
	defer scope.End()
	defer scope.TraceIfError(err)

	normalized, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		return res, err
	}

	booking, err := store(ctx, s, func(c context.Context) (bookingModel.Booking, error) {
		return s.repo.GetBooking(c, req.BookingCode)
	})
	if err != nil {
		return res, err
	}

	switch {
	case !booking.Exists():
		return res, failure.ErrBookingNotFound // nolint:wrapcheck
	case booking.IsPaid():
		return res, failure.ErrAlreadyPaid // nolint:wrapcheck
	case !booking.TotalAmount.IsPositive():
		return res, failure.InvalidFormat("booking total must be greater than zero") // nolint:wrapcheck
	}

	push, err := s.provider.InitiatePush(ctx, mpesa.PushRequest{
		Phone:            normalized,
		Amount:           booking.TotalAmount,
		AccountReference: booking.Code,
		Description:      "Payment for booking " + booking.Code,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_code", booking.Code).Msg("failed to initiate push payment")

		return res, err
	}

	marked, err := store(ctx, s, func(c context.Context) (bool, error) {
		return s.repo.MarkPushPending(c, booking.Code, push.CheckoutRequestID, phone.Suffix(normalized), timezone.Now())
	})
	if err != nil {
		return res, err
	}

	if !marked {
		log.Warn().Str("booking_code", booking.Code).Str("checkout_request_id", push.CheckoutRequestID).
			Msg("booking was paid while the push was being initiated")

		return res, failure.ErrAlreadyPaid // nolint:wrapcheck
	}

	s.invalidate(ctx, booking.Code)

	log.Info().
		Str("booking_code", booking.Code).
		Str("checkout_request_id", push.CheckoutRequestID).
		Msg("push payment requested")

	return dto.PushResponse{
		Success:           true,
		CheckoutRequestID: push.CheckoutRequestID,
		CustomerMessage:   push.CustomerMessage,
		Message:           MessagePushInitiated,
	}, nil
}

// checkClaim maps a validation attempt to the failure that rejects it.
func (s *serviceImpl) checkClaim(booking bookingModel.Booking, amount decimal.Decimal) error {
	switch {
	case !booking.Exists():
		return failure.ErrBookingNotFound
	case booking.IsPaid():
		return failure.ErrAlreadyPaid
	case !money.WithinTolerance(amount, booking.TotalAmount, s.settings.Tolerance):
		return failure.ErrAmountMismatch
	default:
		return nil
	}
}

func validationResult(err error) model.ValidationResult {
	switch {
	case err == nil:
		return model.ValidationAccepted
	case errors.Is(err, failure.ErrBookingNotFound):
		return model.ValidationUnknownAccount
	case errors.Is(err, failure.ErrAlreadyPaid):
		return model.ValidationAlreadyPaid
	case errors.Is(err, failure.ErrAmountMismatch):
		return model.ValidationAmountMismatch
	default:
		return model.ValidationAccepted
	}
}

type bookingLookup struct {
	booking bookingModel.Booking
	err     error
}

func (s *serviceImpl) PreAuthorize(ctx context.Context, req dto.C2BRequest) (res model.ValidationResult) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.PreAuthorize")
	defer scope.End()

	code := req.AccountReference()
	amount := money.Normalize(req.TransAmount, money.UnitMajor)

	defer func() {
		log.Info().
			Str("channel", "validation").
			Str("booking_code", code).
			Str("amount", amount.StringFixed(money.Places)).
			Str("result_code", res.Code).
			Msg(res.Description)
	}()

	if code == "" || !amount.IsPositive() {
		return model.ValidationMalformed
	}

	ctx, cancel := context.WithTimeout(ctx, s.settings.ValidationDeadline)
	defer cancel()

	lookup := make(chan bookingLookup, 1)

	go func() {
		booking, err := s.repo.GetBooking(ctx, code)
		lookup <- bookingLookup{booking: booking, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Warn().Str("booking_code", code).Msg("validation deadline reached, accepting")

		return model.ValidationAccepted
	case found := <-lookup:
		if found.err != nil {
			log.Error().Err(found.err).Str("booking_code", code).Msg("validation lookup failed, accepting")
			scope.TraceError(found.err)

			return model.ValidationAccepted
		}

		return validationResult(s.checkClaim(found.booking, amount))
	}
}

func (s *serviceImpl) SettleConfirmed(ctx context.Context, req dto.C2BRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.SettleConfirmed")
	defer scope.End()
	defer scope.TraceIfError(err)

	settlement := model.Settlement{
		BookingCode:       req.AccountReference(),
		ProviderReference: req.TransID,
		Channel:           model.ChannelConfirmation,
		Amount:            money.Normalize(req.TransAmount, money.UnitMajor),
		Payer:             req.Payer(),
	}

	if settlement.BookingCode == "" || settlement.ProviderReference == "" {
		log.Warn().Str("channel", model.ChannelConfirmation).Str("trans_id", req.TransID).Msg("confirmation without account or reference")

		return failure.InvalidFormat("confirmation requires TransID and BillRefNumber") // nolint:wrapcheck
	}

	return s.settle(ctx, settlement)
}

func (s *serviceImpl) SettlePushResult(ctx context.Context, req dto.PushCallback) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.SettlePushResult")
	defer scope.End()
	defer scope.TraceIfError(err)

	callback := req.Body.StkCallback
	payerPhone, _ := req.Item(dto.PushItemPhoneNumber)

	if !req.Succeeded() {
		return s.failPush(ctx, callback.CheckoutRequestID, callback.ResultCode, callback.ResultDesc)
	}

	receipt, _ := req.Item(dto.PushItemReceipt)
	if receipt == "" {
		log.Warn().Str("channel", model.ChannelPush).Str("checkout_request_id", callback.CheckoutRequestID).Msg("successful push result without receipt")

		return failure.InvalidFormat("push result has no receipt number") // nolint:wrapcheck
	}

	booking, err := store(ctx, s, func(c context.Context) (bookingModel.Booking, error) {
		return s.repo.FindPushCandidate(c, callback.CheckoutRequestID, phone.Suffix(payerPhone))
	})
	if err != nil {
		return err
	}

	if !booking.Exists() {
		log.Warn().
			Str("channel", model.ChannelPush).
			Str("checkout_request_id", callback.CheckoutRequestID).
			Str("receipt", receipt).
			Msg("no booking matches push result")

		return failure.ErrBookingNotFound // nolint:wrapcheck
	}

	amount := booking.TotalAmount
	if raw, ok := req.Item(dto.PushItemAmount); ok {
		reported, err := money.Parse(raw)
		if err != nil {
			log.Warn().Err(err).Str("booking_code", booking.Code).Msg("unreadable push amount, using booking total")
		} else {
			amount = money.Normalize(reported, s.settings.PushAmountUnit)
		}
	}

	return s.settle(ctx, model.Settlement{
		BookingCode:       booking.Code,
		ProviderReference: receipt,
		Channel:           model.ChannelPush,
		Amount:            amount,
		Payer:             req.Payer(),
	})
}

func (s *serviceImpl) failPush(ctx context.Context, sessionID string, resultCode int, resultDesc string) error {
	logger := log.With().
		Str("channel", model.ChannelPush).
		Str("checkout_request_id", sessionID).
		Int("result_code", resultCode).
		Str("result_desc", resultDesc).
		Str("policy", string(s.settings.FailedPushPolicy)).
		Logger()

	if sessionID == "" {
		logger.Warn().Msg("failed push result without session id")

		return nil
	}

	booking, err := store(ctx, s, func(c context.Context) (bookingModel.Booking, error) {
		return s.repo.FindPushCandidate(c, sessionID, "")
	})
	if err != nil {
		return err
	}

	if !booking.Exists() || booking.PaymentStatus != bookingModel.PaymentStatusPendingPush {
		logger.Info().Str("booking_code", booking.Code).Msg("failed push result needs no change")

		return nil
	}

	if s.settings.FailedPushPolicy != model.FailedPushRevert {
		logger.Info().Str("booking_code", booking.Code).Msg("push failed, booking held in pending_push")

		return nil
	}

	reverted, err := store(ctx, s, func(c context.Context) (bool, error) {
		return s.repo.RevertPush(c, booking.Code, timezone.Now())
	})
	if err != nil {
		return err
	}

	if reverted {
		s.invalidate(ctx, booking.Code)
	}

	logger.Info().Str("booking_code", booking.Code).Bool("reverted", reverted).Msg("push failed, booking returned to pending")

	return nil
}

// settle records one payment event exactly once. A provider reference seen
// before is acknowledged without touching the booking.
func (s *serviceImpl) settle(ctx context.Context, settlement model.Settlement) error {
	logger := log.With().
		Str("channel", settlement.Channel).
		Str("booking_code", settlement.BookingCode).
		Str("provider_reference", settlement.ProviderReference).
		Str("amount", settlement.Amount.StringFixed(money.Places)).
		Logger()

	seen, err := store(ctx, s, func(c context.Context) (bool, error) {
		return s.repo.TransactionExists(c, settlement.ProviderReference)
	})
	if err != nil {
		return err
	}

	if seen {
		logger.Info().Msg("payment already recorded")

		return nil
	}

	now := timezone.Now()

	result, err := store(ctx, s, func(c context.Context) (model.SettleResult, error) {
		return s.repo.Settle(c, model.Transaction{
			ID:                  uuid.NewString(),
			BookingCode:         settlement.BookingCode,
			ProviderReference:   settlement.ProviderReference,
			Channel:             settlement.Channel,
			Amount:              settlement.Amount,
			Status:              model.StatusCompleted,
			DistributionDetails: settlement.Payer,
			Timestamp:           now,
			Metadata:            gModel.NewMetadata(constant.ContextSystem, now),
		})
	})
	if err != nil {
		return err
	}

	switch {
	case !result.BookingFound:
		logger.Warn().Msg("payment for unknown booking")

		return failure.ErrBookingNotFound // nolint:wrapcheck
	case !result.Recorded:
		logger.Info().Msg("payment already recorded")
	case !result.Applied:
		logger.Warn().Msg("payment recorded against a booking that was already paid")
	default:
		logger.Info().Msg("booking paid")

		s.invalidate(ctx, settlement.BookingCode)
		s.notifyPaid(ctx, result.Booking, settlement.Amount)
	}

	return nil
}

func (s *serviceImpl) notifyPaid(ctx context.Context, booking bookingModel.Booking, amount decimal.Decimal) {
	paid := money.Format(constant.CurrencyKES, amount)

	if booking.TouristEmail != "" {
		notifier.Send(ctx, s.notifier, notifier.Email(booking.TouristEmail, "Payment received for "+booking.Code),
			fmt.Sprintf("We received your payment of %s for booking %s. See you on %s!",
				paid, booking.Code, booking.ArrivalDate.Format(constant.DateOnlyFormat)))
	}

	if booking.StewardContact != "" {
		notifier.Send(ctx, s.notifier, notifier.SMS(booking.StewardContact),
			fmt.Sprintf("PAYMENT RECEIVED\nCode: %s\nAmount: %s\nDate: %s\nVisitors: %d",
				booking.Code, paid, booking.ArrivalDate.Format(constant.DateOnlyFormat), booking.NumVisitors))
	}
}

func (s *serviceImpl) Transactions(ctx context.Context, code string) (res dto.TransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Transactions")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := store(ctx, s, func(c context.Context) (bookingModel.Booking, error) {
		return s.repo.GetBooking(c, code)
	})
	if err != nil {
		return res, err
	}

	if !booking.Exists() {
		return res, failure.ErrBookingNotFound // nolint:wrapcheck
	}

	transactions, err := store(ctx, s, func(c context.Context) ([]model.Transaction, error) {
		return s.repo.ListTransactions(c, code)
	})
	if err != nil {
		return res, err
	}

	res.FromModels(code, transactions)

	return res, nil
}

func (s *serviceImpl) QueryPush(ctx context.Context, checkoutRequestID string) (res dto.PushStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.QueryPush")
	defer scope.End()
	defer scope.TraceIfError(err)

	status, err := s.provider.QueryPush(ctx, checkoutRequestID)
	if err != nil {
		return res, err
	}

	res.FromProvider(status)

	return res, nil
}

func (s *serviceImpl) RegisterURLs(ctx context.Context) (res dto.RegisterURLsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.RegisterURLs")
	defer scope.End()
	defer scope.TraceIfError(err)

	registered, err := s.provider.RegisterURLs(ctx)
	if err != nil {
		return res, err
	}

	log.Info().Str("response_code", registered.ResponseCode).Msg("C2B URLs registered")

	return dto.RegisterURLsResponse{Success: true, Message: MessageURLsRegistered, Data: registered}, nil
}

func (s *serviceImpl) TestToken(ctx context.Context) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.TestToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := s.provider.Token(ctx)
	if err != nil {
		return res, err
	}

	res.FromToken(token)

	return res, nil
}
