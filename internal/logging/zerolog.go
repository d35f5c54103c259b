package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// ZerologConfig configures the zerolog logger used by the recorders.
type ZerologConfig struct {
	Level string
	// Console receives coloured output; nil means stdout.
	Console io.Writer
	// File receives uncoloured output when set.
	File io.Writer
	// GraylogAddress enables a GELF UDP writer when non-empty.
	GraylogAddress string
	Facility       string
}

// ParseZerologLevel maps a config level to zerolog. Unknown values mean info.
func ParseZerologLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewZerolog builds a zerolog.Logger writing to the console, an optional
// file and optional Graylog. The returned closer releases the GELF writer.
func NewZerolog(cfg ZerologConfig) (zerolog.Logger, io.Closer, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
		},
	}
	if cfg.File != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.File,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	var closer io.Closer = nopCloser{}
	if cfg.GraylogAddress != "" {
		gw, err := gelf.NewWriter(cfg.GraylogAddress)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("creating GELF writer for %s: %w", cfg.GraylogAddress, err)
		}
		if cfg.Facility != "" {
			gw.Facility = cfg.Facility
		}
		writers = append(writers, gw)
		closer = gw
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseZerologLevel(cfg.Level)).
		With().Timestamp().Logger()

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
