package logger

import (
	"io"
	"os"
	"time"

	"tourismrelay/config"
	"tourismrelay/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	InitLoggerWithOutput(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// InitLoggerWithOutput installs w as the global log sink.
func InitLoggerWithOutput(w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(w)
	log.Trace().Msg("Zerolog initialized.")
}

// InitFromConfig picks plain JSON lines in production and the console writer elsewhere.
func InitFromConfig(cfg *config.Config) {
	if cfg.Server.Env == constant.ServerEnvProduction {
		InitLoggerWithOutput(os.Stdout)
	} else {
		InitLogger()
	}

	SetLogLevel(cfg)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Channel returns a sub-logger tagged with the inbound notification channel.
func Channel(channel string) zerolog.Logger {
	return log.With().Str("channel", channel).Logger()
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
