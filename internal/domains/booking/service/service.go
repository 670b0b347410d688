package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourismrelay/config"
	"tourismrelay/infras/notifier"
	"tourismrelay/infras/otel"
	"tourismrelay/internal/domains/booking/model"
	"tourismrelay/internal/domains/booking/model/dto"
	"tourismrelay/internal/domains/booking/reply"
	"tourismrelay/internal/domains/booking/repository"
	communityModel "tourismrelay/internal/domains/community/model"
	communityService "tourismrelay/internal/domains/community/service"
	"tourismrelay/shared/bookingcode"
	"tourismrelay/shared/cache"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/failure"
	"tourismrelay/shared/money"
	"tourismrelay/shared/phone"
	gRepository "tourismrelay/shared/repository"
	"tourismrelay/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	MessageBookingSubmitted = "Booking request submitted successfully"
	MessageBookingConfirmed = "Booking confirmed"
	MessageAvailability     = "Contact steward for current availability"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, code string) (dto.BookingResponse, error)
	// Confirm applies a steward SMS reply to the booking it names.
	Confirm(ctx context.Context, req dto.IncomingSMSRequest) (dto.IncomingSMSResponse, error)
	Availability(ctx context.Context) dto.AvailabilityResponse
}

type serviceImpl struct {
	repo      repository.Booking
	community communityService.Community
	notifier  notifier.Notifier
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	timeout   time.Duration
}

func New(
	repo repository.Booking,
	community communityService.Community,
	notifier notifier.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		community: community,
		notifier:  notifier,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		timeout:   gRepository.CallTimeout(cfg.Reconciliation.StoreTimeoutSeconds),
	}
}

func actor(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(constant.ContextKeyActor).(string); ok && v != "" {
		return v
	}

	return fallback
}

func (s *serviceImpl) lookup(ctx context.Context, code string) (model.Booking, error) {
	return gRepository.Call(ctx, s.timeout, func(c context.Context) (model.Booking, error) {
		return s.repo.GetByCode(c, code)
	})
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	community, err := s.community.Default(ctx)
	if err != nil {
		log.Error().Err(err).Str("community", s.cfg.App.Community).Msg("failed to resolve community for booking")

		return res, failure.Unavailable("community not configured", err) // nolint:wrapcheck
	}

	for _, service := range req.Services {
		if !community.Offers(service) {
			return res, failure.BadRequestFromString(fmt.Sprintf("service %s is not offered by %s", service, community.Name)) // nolint:wrapcheck
		}
	}

	now := timezone.Now()
	code := bookingcode.New(now)

	booking, err := req.ToModel(code, community, actor(ctx, constant.ContextTourist), now)
	if err != nil {
		return res, failure.InvalidFormat(fmt.Sprintf("arrivalDate must be a date formatted as %s", constant.DateOnlyFormat)) // nolint:wrapcheck
	}

	_, err = gRepository.Call(ctx, s.timeout, func(c context.Context) (struct{}, error) {
		return struct{}{}, s.repo.Insert(c, booking)
	})
	if err != nil {
		return res, err
	}

	log.Info().Str("booking_code", code).Str("community", community.Name).Msg("booking created")

	notifier.Send(ctx, s.notifier, notifier.SMS(community.StewardPhone), StewardAlert(booking))
	notifier.Send(ctx, s.notifier, notifier.Email(booking.TouristEmail, "Booking "+code), TouristReceipt(booking, community.Name))

	return dto.CreateBookingResponse{
		Success:     true,
		BookingCode: code,
		Message:     MessageBookingSubmitted,
	}, nil
}

func (s *serviceImpl) Get(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := model.CacheKey(code)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.lookup(ctx, code)
	if err != nil {
		return res, err
	}

	if !booking.Exists() {
		return res, failure.ErrBookingNotFound // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, req dto.IncomingSMSRequest) (res dto.IncomingSMSResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	parsed, err := reply.Parse(req.Message)
	if err != nil {
		log.Warn().Err(err).Str("from", req.From).Msg("unparseable steward reply")

		return res, err
	}

	booking, err := s.lookup(ctx, parsed.Code)
	if err != nil {
		return res, err
	}

	if !booking.Exists() {
		return res, failure.ErrBookingNotFound // nolint:wrapcheck
	}

	if req.From != "" && booking.StewardContact != "" && !phone.SameSubscriber(req.From, booking.StewardContact) {
		log.Warn().Str("booking_code", booking.Code).Str("from", req.From).Msg("steward reply from unexpected number")
	}

	applied, err := gRepository.Call(ctx, s.timeout, func(c context.Context) (bool, error) {
		return s.repo.Confirm(c, booking.Code, parsed.Accepted, actor(ctx, constant.ContextSteward), timezone.Now())
	})
	if err != nil {
		return res, err
	}

	if !applied {
		return res, failure.ErrAlreadyConfirmed // nolint:wrapcheck
	}

	log.Info().
		Str("booking_code", booking.Code).
		Strs("accepted", parsed.Accepted).
		Strs("declined", parsed.Declined).
		Msg("booking confirmed by steward")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, model.CacheKey(booking.Code)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate booking cache")
		}
	}()

	notifier.Send(ctx, s.notifier, notifier.Email(booking.TouristEmail, "Booking "+booking.Code+" confirmed"), TouristConfirmation(booking, parsed.Accepted))

	return dto.IncomingSMSResponse{Success: true, Message: MessageBookingConfirmed}, nil
}

func (s *serviceImpl) Availability(_ context.Context) dto.AvailabilityResponse {
	return dto.AvailabilityResponse{Available: true, Message: MessageAvailability}
}

// StewardAlert is the SMS a steward receives for a new booking.
func StewardAlert(b model.Booking) string {
	people := "people"
	if b.NumVisitors == 1 {
		people = "person"
	}

	var sb strings.Builder

	sb.WriteString("VISITOR ALERT\n")
	fmt.Fprintf(&sb, "Date: %s\n", b.ArrivalDate.Format(constant.DateOnlyFormat))
	fmt.Fprintf(&sb, "Visitors: %d %s\n", b.NumVisitors, people)
	fmt.Fprintf(&sb, "Requested: %s\n", communityModel.DisplayNames(b.RequestedServices))
	fmt.Fprintf(&sb, "Contact: %s\n", b.TouristContact)
	fmt.Fprintf(&sb, "Email: %s\n", b.TouristEmail)
	fmt.Fprintf(&sb, "Reply: CONFIRM %s [YES/NO for each service]\n", b.Code)
	fmt.Fprintf(&sb, "Code: %s", b.Code)

	if b.SpecialRequests != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", b.SpecialRequests)
	}

	return sb.String()
}

func TouristReceipt(b model.Booking, community string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Thank you for your booking request with %s!\n\n", community)
	fmt.Fprintf(&sb, "Your booking code is: %s\n\n", b.Code)
	sb.WriteString("Booking Details:\n")
	fmt.Fprintf(&sb, "- Arrival Date: %s\n", b.ArrivalDate.Format(constant.DateOnlyFormat))
	fmt.Fprintf(&sb, "- Number of Visitors: %d\n", b.NumVisitors)
	fmt.Fprintf(&sb, "- Services Requested: %s\n", communityModel.DisplayNames(b.RequestedServices))
	fmt.Fprintf(&sb, "- Total Amount: %s\n\n", money.Format(constant.CurrencyKES, b.TotalAmount))
	sb.WriteString("Our tourism steward will confirm availability by SMS. ")
	sb.WriteString("Use your booking code as the M-Pesa account number when you pay.")

	return sb.String()
}

func TouristConfirmation(b model.Booking, accepted []string) string {
	if len(accepted) == 0 {
		return fmt.Sprintf("Your booking %s was reviewed by the steward, but none of the requested services are available on %s.",
			b.Code, b.ArrivalDate.Format(constant.DateOnlyFormat))
	}

	return fmt.Sprintf("Your booking %s is confirmed for %s. Confirmed services: %s.",
		b.Code, b.ArrivalDate.Format(constant.DateOnlyFormat), communityModel.DisplayNames(accepted))
}
