// Package logger provides the structured logger used by long lived signing components.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger.
//
// The zero value is not usable, use New or Nop.
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string

	// Output is where logs are written (default: os.Stderr)
	Output io.Writer

	// Pretty enables human-readable console output
	Pretty bool

	// TimeFormat for timestamps (default: RFC3339)
	TimeFormat string
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// New creates a new logger with the given configuration.
//
// Unlike zerolog.SetGlobalLevel, the level only applies to this logger and its children.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	zlog := zerolog.New(output).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return &Logger{zlog: zlog}
}

// Nop returns a logger discarding everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// parseLevel converts string level to zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With creates a child logger with additional context
func (l *Logger) With() *Context {
	return &Context{zctx: l.zlog.With()}
}

// Debug starts a new event at debug level.
func (l *Logger) Debug() *Event {
	return &Event{zevent: l.zlog.Debug()}
}

// Info starts a new event at info level.
func (l *Logger) Info() *Event {
	return &Event{zevent: l.zlog.Info()}
}

// Warn starts a new event at warn level.
func (l *Logger) Warn() *Event {
	return &Event{zevent: l.zlog.Warn()}
}

// Error starts a new event at error level.
func (l *Logger) Error() *Event {
	return &Event{zevent: l.zlog.Error()}
}

// Context provides fluent API for adding fields to logs
type Context struct {
	zctx zerolog.Context
}

// Str adds a string field
func (c *Context) Str(key, val string) *Context {
	c.zctx = c.zctx.Str(key, val)
	return c
}

// Int adds an int field
func (c *Context) Int(key string, val int) *Context {
	c.zctx = c.zctx.Int(key, val)
	return c
}

// Logger returns the configured logger
func (c *Context) Logger() *Logger {
	return &Logger{zlog: c.zctx.Logger()}
}

// Event represents a log event.
//
// Events of a disabled level are no-ops, so fields may be added unconditionally.
type Event struct {
	zevent *zerolog.Event
}

// Str adds a string field to the event
func (e *Event) Str(key, val string) *Event {
	e.zevent.Str(key, val)
	return e
}

// Int adds an int field to the event
func (e *Event) Int(key string, val int) *Event {
	e.zevent.Int(key, val)
	return e
}

// Hex adds a byte slice field, hex encoded.
func (e *Event) Hex(key string, val []byte) *Event {
	e.zevent.Hex(key, val)
	return e
}

// Err adds an error field to the event
func (e *Event) Err(err error) *Event {
	e.zevent.AnErr("error", err)
	return e
}

// Msg sends the event with msg as message.
func (e *Event) Msg(msg string) {
	e.zevent.Msg(msg)
}
