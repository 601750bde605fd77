package logger

import (
	"io"
	"os"
	"roombook/config"
	"roombook/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger at trace level.
// SetLogLevel narrows it once configuration is known.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(consoleWriter(os.Stdout))
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies the configured level. Outside development the logger
// switches to JSON lines tagged with the app name.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)

	if config.Server.Env == constant.ServerEnvProduction {
		log.Logger = New(os.Stdout, config.App.Name)
	}
}

// New returns a JSON logger writing to out with the service name attached.
func New(out io.Writer, service string) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("service", service).Logger()
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
