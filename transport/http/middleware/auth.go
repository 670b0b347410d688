package middleware

import (
	"crypto/subtle"
	"net/http"

	"tourismrelay/config"
	"tourismrelay/infras/otel"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/failure"
	"tourismrelay/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth guards operator routes. Tourists, stewards and the payment provider
// reach their routes without credentials.
type Auth interface {
	APIKey(http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey admits requests whose X-API-Key header equals APP_API_KEY. With no
// key configured every operator request is refused.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		scope.SetAttributes(map[string]any{
			"middleware.type": "api_key",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		var err error

		switch {
		case m.cfg.App.APIKey == "":
			log.Warn().Str("path", request.URL.Path).Msg("operator route called but no API key is configured")

			err = failure.ForbiddenError
		case apiKey == "":
			err = failure.Unauthorized("Missing API key")
		case subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1:
			err = failure.ForbiddenError
		}

		if err != nil {
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
