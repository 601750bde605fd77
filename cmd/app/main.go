package main

import (
	"roombook/config"
	"roombook/di"
	"roombook/helper"
	"roombook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Room Booking API
// @version 1.0
// @description Meeting room reservations with guest details, time extensions and lifecycle tracking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
