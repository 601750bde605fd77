package main

import (
	"context"
	"roombook/config"
	"roombook/di"
	"roombook/internal/seed"
	"roombook/shared/constant"
	"roombook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	seeder := seed.New(di.InitializeRoomService(), di.InitializeAuthService())

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "seed")

	res, err := seeder.Run(ctx, cfg.App.Admin.Email, cfg.App.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Int("rooms_created", res.RoomsCreated).
		Int("rooms_skipped", res.RoomsSkipped).
		Bool("admin_created", res.AdminCreated).
		Msg("Seeding completed")
}
