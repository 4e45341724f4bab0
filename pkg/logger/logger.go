// Package logx configures the process-global zerolog logger. Import
// pkg/logger/autoload for env-driven initialization at startup.
package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

// Init replaces the global logger. With no arguments it produces JSON at
// info level, the production default.
func Init(opts ...Config) {
	var conf Config
	if len(opts) > 0 {
		conf = opts[0]
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.New(os.Stdout)
	if conf.PrettyFormat {
		out = zerolog.New(zerolog.NewConsoleWriter())
	}

	log.Logger = out.Level(level).With().
		Timestamp().
		Str("service", "quote-agent").
		Caller().
		Logger()
}
