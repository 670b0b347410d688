package booking

import (
	"net/http"

	"tourismrelay/infras/otel"
	"tourismrelay/internal/domains/booking/model/dto"
	"tourismrelay/internal/domains/booking/service"
	paymentService "tourismrelay/internal/domains/payment/service"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/validator"
	"tourismrelay/transport/http/middleware"
	"tourismrelay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	payment paymentService.Payment
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Booking, payment paymentService.Payment, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		payment: payment,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/{code}", handler.GetBooking)
		routerGroup.With(handler.auth.APIKey).Get("/{code}/transactions", handler.GetTransactions)
	})

	router.Get("/availability", handler.GetAvailability)
}

// CreateBooking handles a tourist booking request.
// @Summary Create a booking
// @Description Store a booking request, alert the community steward by SMS and email the tourist a receipt.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate booking request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + res.BookingCode)

	response.WithRaw(writer, http.StatusCreated, res)
}

// GetBooking returns the booking projection.
// @Summary Get a booking by code
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{code} [get]
func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	booking, err := handler.service.Get(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_code", code).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithRaw(w, http.StatusOK, booking)
}

// GetTransactions lists payments recorded against a booking.
// @Summary List booking transactions
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} response.Data[dto.TransactionsResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{code}/transactions [get]
// @Security ApiKeyAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	transactions, err := handler.payment.Transactions(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_code", code).Msg("failed to list transactions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, transactions)
}

// GetAvailability
// @Summary Availability placeholder
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.AvailabilityResponse
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	response.WithRaw(w, http.StatusOK, handler.service.Availability(r.Context()))
}
