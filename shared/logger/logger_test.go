package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"roombook/config"
	"roombook/shared/constant"
	"roombook/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preserve(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	preserve(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	preserve(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("room R101 lock failed"))

	assert.Contains(t, buf.String(), "room R101 lock failed")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "info", logLevel: "info", expectedLevel: zerolog.InfoLevel},
		{name: "warn", logLevel: "warn", expectedLevel: zerolog.WarnLevel},
		{name: "error", logLevel: "error", expectedLevel: zerolog.ErrorLevel},
		{name: "disabled", logLevel: "disabled", expectedLevel: zerolog.Disabled},
		{name: "invalid level defaults to trace", logLevel: "loud", expectedLevel: zerolog.TraceLevel},
		// ParseLevel("") returns NoLevel without error
		{name: "empty level", logLevel: "", expectedLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preserve(t)

			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetLogLevelProductionSwitchesToJSON(t *testing.T) {
	preserve(t)

	logger.InitLogger()

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "roombook"

	logger.SetLogLevel(cfg)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)

	log.Info().Str("code", "R101").Msg("room created")

	line := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "roombook", line["service"])
	assert.Equal(t, "R101", line["code"])
	assert.Equal(t, "room created", line["message"])
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, "roombook")
	l.Warn().Msg("booking conflict")

	line := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "roombook", line["service"])
	assert.Contains(t, line, "time")
}
