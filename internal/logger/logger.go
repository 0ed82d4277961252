package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New constructs the process-wide logger. Development gets a human-readable
// console writer; everything else logs JSON to stdout.
func New(environment string) zerolog.Logger {
	if environment == "dev" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
