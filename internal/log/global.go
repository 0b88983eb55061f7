package log

import "github.com/rs/zerolog"

// G is the process-wide logger.
var G = New(WithLevel(zerolog.InfoLevel))

// SetGlobalLogger replaces G.
func SetGlobalLogger(l *Logger) { G = l }

// SetGlobalLevel changes the level of G.
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

// Debug starts a debug event on G.
func Debug() *zerolog.Event { return G.Debug() }

// Info starts an info event on G.
func Info() *zerolog.Event { return G.Info() }

// Warn starts a warn event on G.
func Warn() *zerolog.Event { return G.Warn() }

// Error starts an error event on G, with a stack when the error carries one.
func Error() *zerolog.Event { return G.Error().Stack() }
