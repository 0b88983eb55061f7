package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a zerolog.Logger that may own its output file.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// FileConfig controls size-based rotation of a log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (c FileConfig) withDefaults() FileConfig {
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 50
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 3
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 14
	}
	return c
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	l := &Logger{Logger: zerolog.New(w).With().Timestamp().Logger()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Console returns the human-readable writer used on terminals. Logs go to
// stderr so command output on stdout stays clean.
func Console() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		FormatLevel: func(i any) string {
			return strings.ToUpper(fmt.Sprintf("%-5s", i))
		},
	}
}

// New returns a console logger.
func New(opts ...Option) *Logger {
	return newLogger(Console(), opts...)
}

// NewWriter returns a JSON logger writing to w.
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile returns a logger writing JSON lines to a rotating file and
// mirroring them to the console.
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	if c.Path == "" {
		return nil, fmt.Errorf("log file: empty path")
	}
	c = c.withDefaults()
	fw := &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
	}
	l := newLogger(zerolog.MultiLevelWriter(fw, Console()), opts...)
	l.closer = fw
	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// ParseLevel maps a config string such as "debug" to a zerolog level. An
// empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
