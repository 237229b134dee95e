package app

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// ParseLogLevel parses a level name. Unknown names yield info.
func ParseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger opens a logger writing JSON lines to path. The terminal belongs
// to the UI, so an empty path disables logging. The returned closer releases
// the file.
func NewLogger(fs afero.Fs, path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), errors.Errorf("opening log file %s: %w", path, err)
	}
	logger := zerolog.New(f).
		Level(ParseLogLevel(level)).
		With().
		Timestamp().
		Str("app", "quickdoc").
		Logger()
	return logger, f, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
}
