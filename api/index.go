package handler

import (
	"net/http"
	"sync"

	"tourismrelay/config"
	"tourismrelay/di"
	"tourismrelay/shared/logger"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler is the serverless entrypoint. The service graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitFromConfig(config.Get())

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
