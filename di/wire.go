//go:build wireinject
// +build wireinject

package di

import (
	"tourismrelay/config"
	"tourismrelay/infras/kafka"
	"tourismrelay/infras/mpesa"
	"tourismrelay/infras/notifier"
	"tourismrelay/infras/otel"
	"tourismrelay/infras/postgres"
	"tourismrelay/infras/redis"
	"tourismrelay/infras/s3"
	"tourismrelay/shared/cache"
	"tourismrelay/transport/http"
	"tourismrelay/transport/http/middleware"
	"tourismrelay/transport/http/router"

	bookingRepository "tourismrelay/internal/domains/booking/repository"
	bookingService "tourismrelay/internal/domains/booking/service"
	communityRepository "tourismrelay/internal/domains/community/repository"
	communityService "tourismrelay/internal/domains/community/service"
	paymentArchive "tourismrelay/internal/domains/payment/archive"
	paymentRepository "tourismrelay/internal/domains/payment/repository"
	paymentService "tourismrelay/internal/domains/payment/service"

	bookingHandler "tourismrelay/internal/handlers/booking"
	mpesaHandler "tourismrelay/internal/handlers/mpesa"
	smsHandler "tourismrelay/internal/handlers/sms"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	mpesa.New,
	notifier.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var communityDomain = wire.NewSet(
	communityRepository.New,
	communityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
	paymentArchive.New,
)

var domains = wire.NewSet(
	communityDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	smsHandler.New,
	mpesaHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
