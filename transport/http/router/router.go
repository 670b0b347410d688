package router

import (
	"tourismrelay/internal/handlers/booking"
	"tourismrelay/internal/handlers/mpesa"
	"tourismrelay/internal/handlers/sms"
	"tourismrelay/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking booking.Handler
	SMS     sms.Handler
	Mpesa   mpesa.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Group(func(public chi.Router) {
			public.Use(r.App.RateLimit())
			r.DomainHandlers.Booking.Router(public)
		})

		r.DomainHandlers.SMS.Router(routerGroup)
		r.DomainHandlers.Mpesa.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
	}
}
