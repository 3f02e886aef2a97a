package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger: a human readable console writer
// in DEV, JSON lines everywhere else. Unknown levels fall back to info.
func Setup(env, level string) zerolog.Logger {
	return SetupWriter(os.Stderr, env, level)
}

func SetupWriter(w io.Writer, env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	out := w
	if env == "DEV" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}
