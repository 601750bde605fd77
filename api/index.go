package handler

import (
	"net/http"
	"roombook/config"
	"roombook/di"
	"roombook/shared/logger"
	"sync"
)

var (
	serverless http.Handler
	initOnce   sync.Once
)

// Handler is the serverless entry point. The dependency graph is built on
// the first invocation and reused by warm instances.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		serverless = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	serverless.ServeHTTP(w, r)
}
