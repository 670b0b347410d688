package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"tourismrelay/config"
	"tourismrelay/infras/otel"
	"tourismrelay/internal/domains/community/model"
	"tourismrelay/internal/domains/community/repository"
	"tourismrelay/shared"
	"tourismrelay/shared/cache"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/failure"
	gRepository "tourismrelay/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCommunity = "community:get"
)

type Community interface {
	// Default returns the community bookings are routed to.
	Default(ctx context.Context) (model.Community, error)
	Get(ctx context.Context, id string) (model.Community, error)
}

type serviceImpl struct {
	repo    repository.Community
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	timeout time.Duration
}

func New(repo repository.Community, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Community {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		timeout: gRepository.CallTimeout(cfg.Reconciliation.StoreTimeoutSeconds),
	}
}

func (s *serviceImpl) Default(ctx context.Context) (res model.Community, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".community.Default")
	defer scope.End()
	defer scope.TraceIfError(err)

	name := s.cfg.App.Community

	return s.cached(ctx, shared.BuildCacheKey(cacheGetCommunity, "name", name), func(c context.Context) (model.Community, error) {
		return s.repo.GetByName(c, name)
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res model.Community, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".community.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.cached(ctx, shared.BuildCacheKey(cacheGetCommunity, "id", id), func(c context.Context) (model.Community, error) {
		return s.repo.GetByID(c, id)
	})
}

func (s *serviceImpl) cached(ctx context.Context, cacheKey string, load func(ctx context.Context) (model.Community, error)) (res model.Community, err error) {
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for community")

		return res, nil
	}

	res, err = gRepository.Call(ctx, s.timeout, load)
	if err != nil {
		return res, err
	}

	if !res.Exists() {
		return res, failure.NotFound("community not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save community to cache")
		}
	}()

	return res, nil
}
