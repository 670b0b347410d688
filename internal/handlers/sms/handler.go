package sms

import (
	"context"
	"net/http"

	"tourismrelay/infras/otel"
	"tourismrelay/internal/domains/booking/model/dto"
	"tourismrelay/internal/domains/booking/service"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/logger"
	"tourismrelay/shared/validator"
	"tourismrelay/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const channel = "sms"

// Handler receives steward replies forwarded by the SMS gateway.
type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/sms/incoming", handler.Incoming)
}

// Incoming applies a steward reply such as "CONFIRM V20240101-ABCD1234 WALK YES HOME NO".
// @Summary Steward SMS reply
// @Tags SMS
// @Accept json
// @Produce json
// @Param request body dto.IncomingSMSRequest true "Incoming SMS"
// @Success 200 {object} dto.IncomingSMSResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/sms/incoming [post]
func (handler *Handler) Incoming(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IncomingSMS")
	defer scope.End()

	log := logger.Channel(channel)
	req := dto.IncomingSMSRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid incoming sms")

		response.WithError(w, err)

		return
	}

	ctx = context.WithValue(ctx, constant.ContextKeyActor, constant.ContextSteward)

	res, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("from", req.From).Msg("steward reply not applied")

		response.WithError(w, err)

		return
	}

	log.Info().Str("from", req.From).Msg(res.Message)

	response.WithRaw(w, http.StatusOK, res)
}
