package main

import (
	"os"
	"roombook/config"
	"roombook/helper"
	"roombook/shared/logger"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	argLength      = 2
	forceArgLength = 3
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action (up/down/drop/step-up/version/force) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	action := os.Args[1]

	if action == "force" {
		if len(os.Args) < forceArgLength {
			log.Fatal().Msg("force requires a target version")
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Str("version", os.Args[2]).Msg("Invalid migration version")
		}

		if err = helper.Force(cfg, version); err != nil {
			log.Fatal().Err(err).Msg("Failed to force migration version")
		}

		return
	}

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
	}
}
