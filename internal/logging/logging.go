package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects how the global logger writes.
type Config struct {
	Level   string
	Format  string
	NoColor bool

	// Output defaults to stderr.
	Output io.Writer
}

// InitDefault sets up a console logger at info level. It is used before flags are parsed.
func InitDefault() {
	_ = Init(Config{Level: "info", Format: FormatConsole})
}

// Init configures the global zerolog logger.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: time.Kitchen,
		}
	case FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (one of: %s, %s)", cfg.Format, FormatConsole, FormatJSON)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
