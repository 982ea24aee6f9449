package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Unknown levels fall back to info rather
// than failing startup over a cosmetic setting.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}
