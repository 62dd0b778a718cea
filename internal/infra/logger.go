package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so packages outside infra depend on the
// logging contract rather than the module.
type Logger = zerolog.Logger

// NewLogger builds the process logger. Development gets debug level and a
// console writer; every other environment writes JSON at info level.
func NewLogger(appEnv, component string) Logger {
	return newLogger(os.Stdout, appEnv, component)
}

func newLogger(out io.Writer, appEnv, component string) Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if component != "" {
		ctx = ctx.Str("component", component)
	}
	return ctx.Logger()
}
