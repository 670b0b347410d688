package mpesa

import (
	"bytes"
	"io"
	"net/http"

	"tourismrelay/infras/otel"
	"tourismrelay/internal/domains/payment/archive"
	"tourismrelay/internal/domains/payment/model"
	"tourismrelay/internal/domains/payment/model/dto"
	"tourismrelay/internal/domains/payment/service"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/logger"
	"tourismrelay/shared/validator"
	"tourismrelay/transport/http/middleware"
	"tourismrelay/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const (
	channelValidation = "validation"
	maxCallbackBytes  = 1 << 20
)

// pushAck is what the provider expects back for every push result.
var pushAck = dto.PushAck{ResultCode: 0, ResultDesc: "Success"}

// Handler serves the M-Pesa callbacks and the operator tools around them.
// Callback routes answer 200 whatever happens inside so the provider does not
// retry storms against a failing store.
type Handler struct {
	service service.Payment
	archive archive.Archive
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Payment, archive archive.Archive, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		archive: archive,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/mpesa", func(routerGroup chi.Router) {
		routerGroup.Post("/validation", handler.Validation)
		routerGroup.Post("/confirmation", handler.Confirmation)
		routerGroup.Post("/callback", handler.Confirmation)
		routerGroup.Post("/stk-push", handler.RequestPush)
		routerGroup.Post("/stk-callback", handler.PushCallback)

		routerGroup.Group(func(operator chi.Router) {
			operator.Use(handler.auth.APIKey)
			operator.Get("/stk-push/{checkoutRequestID}", handler.QueryPush)
			operator.Post("/register-urls", handler.RegisterURLs)
			operator.Get("/test-token", handler.TestToken)
		})
	})
}

// readBody keeps a copy of the raw callback for the archive before decoding it.
func (handler *Handler) readBody(w http.ResponseWriter, r *http.Request, channel string) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallbackBytes))
	if err != nil {
		return nil, err
	}

	handler.archive.Store(r.Context(), channel, body)

	return body, nil
}

// Validation answers the C2B validation callback.
// @Summary C2B validation
// @Tags M-Pesa
// @Accept json
// @Produce json
// @Param request body dto.C2BRequest true "Validation request"
// @Success 200 {object} dto.C2BResponse
// @Router /v1/mpesa/validation [post]
func (handler *Handler) Validation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaValidation")
	defer scope.End()

	log := logger.Channel(channelValidation)

	req := dto.C2BRequest{}

	body, err := handler.readBody(w, r, channelValidation)
	if err == nil {
		err = validator.Decode(bytes.NewReader(body), &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("malformed validation request")

		response.WithRaw(w, http.StatusOK, dto.NewC2BResponse(model.ValidationMalformed))

		return
	}

	result := handler.service.PreAuthorize(ctx, req)

	response.WithRaw(w, http.StatusOK, dto.NewC2BResponse(result))
}

// Confirmation records a completed C2B payment. /callback is the older name of the same route.
// @Summary C2B confirmation
// @Tags M-Pesa
// @Accept json
// @Produce json
// @Param request body dto.C2BRequest true "Confirmation request"
// @Success 200 {object} dto.C2BResponse
// @Router /v1/mpesa/confirmation [post]
func (handler *Handler) Confirmation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaConfirmation")
	defer scope.End()

	log := logger.Channel(model.ChannelConfirmation)
	defer response.WithRaw(w, http.StatusOK, dto.NewC2BResponse(model.ValidationAccepted))

	req := dto.C2BRequest{}

	body, err := handler.readBody(w, r, model.ChannelConfirmation)
	if err == nil {
		err = validator.Decode(bytes.NewReader(body), &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("malformed confirmation acknowledged")

		return
	}

	if err = handler.service.SettleConfirmed(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("trans_id", req.TransID).Str("booking_code", req.AccountReference()).Msg("confirmation acknowledged without settling")
	}
}

// PushCallback records the outcome of a push prompt.
// @Summary STK push result
// @Tags M-Pesa
// @Accept json
// @Produce json
// @Param request body dto.PushCallback true "Push result"
// @Success 200 {object} dto.PushAck
// @Router /v1/mpesa/stk-callback [post]
func (handler *Handler) PushCallback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaPushCallback")
	defer scope.End()

	log := logger.Channel(model.ChannelPush)
	defer response.WithRaw(w, http.StatusOK, pushAck)

	req := dto.PushCallback{}

	body, err := handler.readBody(w, r, model.ChannelPush)
	if err == nil {
		err = validator.Decode(bytes.NewReader(body), &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("malformed push result acknowledged")

		return
	}

	if err = handler.service.SettlePushResult(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("checkout_request_id", req.Body.StkCallback.CheckoutRequestID).Msg("push result acknowledged without settling")
	}
}

// RequestPush prompts the payer's phone for the booking total.
// @Summary Initiate STK push
// @Tags M-Pesa
// @Accept json
// @Produce json
// @Param request body dto.PushRequest true "Push request"
// @Success 200 {object} dto.PushResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/mpesa/stk-push [post]
func (handler *Handler) RequestPush(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaRequestPush")
	defer scope.End()

	log := logger.Channel(model.ChannelPush)
	req := dto.PushRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid push request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RequestPush(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_code", req.BookingCode).Msg("failed to request push")

		response.WithError(w, err)

		return
	}

	response.WithRaw(w, http.StatusOK, res)
}

// QueryPush asks the provider for the state of a push prompt.
// @Summary Query STK push status
// @Tags M-Pesa
// @Produce json
// @Param checkoutRequestID path string true "Checkout request id"
// @Success 200 {object} response.Data[dto.PushStatusResponse]
// @Router /v1/mpesa/stk-push/{checkoutRequestID} [get]
// @Security ApiKeyAuth
func (handler *Handler) QueryPush(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaQueryPush")
	defer scope.End()

	status, err := handler.service.QueryPush(ctx, chi.URLParam(r, constant.RequestParamCheckoutRequestID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// RegisterURLs registers the validation and confirmation URLs with the provider.
// @Summary Register C2B URLs
// @Tags M-Pesa
// @Produce json
// @Success 200 {object} dto.RegisterURLsResponse
// @Router /v1/mpesa/register-urls [post]
// @Security ApiKeyAuth
func (handler *Handler) RegisterURLs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaRegisterURLs")
	defer scope.End()

	res, err := handler.service.RegisterURLs(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithRaw(w, http.StatusOK, res)
}

// TestToken
// @Summary Provider credential check
// @Tags M-Pesa
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Router /v1/mpesa/test-token [get]
// @Security ApiKeyAuth
func (handler *Handler) TestToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MpesaTestToken")
	defer scope.End()

	res, err := handler.service.TestToken(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithRaw(w, http.StatusOK, res)
}
