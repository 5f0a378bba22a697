package util

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	logMu  sync.RWMutex
)

func init() {
	InitLogger("info", "json", os.Stderr)
}

// InitLogger configures the process logger. format is "json" or "console".
func InitLogger(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logMu.Lock()
	defer logMu.Unlock()
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "stylist").Logger()
}

func Logger() *zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	l := logger
	return &l
}

// LogError logs an error with context
func LogError(message string, err error) {
	if err != nil {
		Logger().Error().Err(err).Msg(message)
	}
}

// LogInfo logs an informational message
func LogInfo(message string) {
	Logger().Info().Msg(message)
}

// LogWarning logs a warning message
func LogWarning(message string) {
	Logger().Warn().Msg(message)
}
