// Package usblog is a diagnostic logging pipeline that writes color-tagged
// lines over a serial transport.
//
// A Logger filters records by severity against a process-wide maximum and
// by target against an optional filter table, then renders each admitted
// record as a single line and hands it to the transport in one write.
// Logging is best-effort: transport backpressure never surfaces to the
// caller.
//
// Construct loggers explicitly with New and pass them where needed, or
// install one package-wide default with Init. Init succeeds exactly once;
// the installed default serves the package-level Errorf..Tracef helpers
// for the rest of the process lifetime.
package usblog

import (
	"errors"
	"fmt"

	"github.com/DusterTheFirst/arduino/ansi"
	"github.com/DusterTheFirst/arduino/serial"
)

// ErrAlreadyActive is returned by Init when a default logger has already
// been installed.
var ErrAlreadyActive = errors.New("usblog: default logger already active")

// Filter enables logging for one target. A zero Level admits every record
// whose target matches; a set Level additionally requires the record to be
// at least that severe.
type Filter struct {
	Target string `toml:"target"`
	Level  Level  `toml:"level,omitempty"`
}

// Config selects what a Logger lets through.
//
// MaxLevel is the process-wide severity ceiling. Filters, when non-empty,
// restricts logging to the listed targets by exact match: a record whose
// target is absent from the table is silenced.
type Config struct {
	MaxLevel Level    `toml:"max_level"`
	Filters  []Filter `toml:"filter,omitempty"`
}

// DefaultConfig admits every target at Info and below-in-verbosity.
func DefaultConfig() Config {
	return Config{MaxLevel: LevelInfo}
}

// Record is one diagnostic event. Millis is the monotonic millisecond
// timestamp stamped by the producer.
type Record struct {
	Level   Level
	Target  string
	Millis  uint32
	Message string
}

// Logger formats and writes diagnostic records over a serial transport.
// Like the transport it writes to, a Logger assumes a single cooperative
// caller and performs no internal locking.
type Logger struct {
	tr       *serial.Transport
	now      func() uint32
	maxLevel Level
	filters  []Filter
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock replaces the monotonic clock used to stamp records created by
// the leveled helpers.
func WithClock(now func() uint32) Option {
	return func(l *Logger) { l.now = now }
}

// New returns a Logger writing through tr with the given config.
func New(tr *serial.Transport, cfg Config, opts ...Option) *Logger {
	l := &Logger{
		tr:       tr,
		now:      serial.Millis,
		maxLevel: cfg.MaxLevel,
		filters:  cfg.Filters,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// MaxLevel returns the severity ceiling.
func (l *Logger) MaxLevel() Level {
	return l.maxLevel
}

// Enabled reports whether a record at the given level and target would be
// written. The level must pass the ceiling, and when any filters are
// configured the target must appear among them, passing its override
// level if one is set. Unknown targets fail closed.
func (l *Logger) Enabled(level Level, target string) bool {
	if level > l.maxLevel {
		return false
	}
	if len(l.filters) == 0 {
		return true
	}
	for _, f := range l.filters {
		if f.Target != target {
			continue
		}
		return f.Level == 0 || level <= f.Level
	}
	return false
}

// levelColor tags each severity for terminal output.
func levelColor(level Level) ansi.Color {
	switch level {
	case LevelError:
		return ansi.LightRed
	case LevelWarn:
		return ansi.LightYellow
	case LevelInfo:
		return ansi.LightBlue
	case LevelDebug:
		return ansi.Magenta
	}
	return ansi.LightBlack
}

// Log writes rec if it passes the filters. The line is rendered in full
// and handed to the transport as one write; a short or failed write is
// dropped on the floor, never reported.
func (l *Logger) Log(rec Record) {
	if !l.Enabled(rec.Level, rec.Target) {
		return
	}
	line := fmt.Sprintf("[%s%s%s %s %d]: %s\n",
		ansi.New().Fg(levelColor(rec.Level)),
		rec.Level,
		ansi.New().Styles(ansi.Clear),
		rec.Target,
		rec.Millis,
		rec.Message,
	)
	l.tr.WriteString(line)
}

// Flush pushes any buffered transport output toward the host.
func (l *Logger) Flush() {
	l.tr.SendNow()
}

func (l *Logger) logf(level Level, target, format string, args ...any) {
	// Enabled is checked again inside Log; checking here first skips the
	// Sprintf for silenced records.
	if !l.Enabled(level, target) {
		return
	}
	l.Log(Record{
		Level:   level,
		Target:  target,
		Millis:  l.now(),
		Message: fmt.Sprintf(format, args...),
	})
}

// Errorf logs a formatted message at the Error level.
func (l *Logger) Errorf(target, format string, args ...any) {
	l.logf(LevelError, target, format, args...)
}

// Warnf logs a formatted message at the Warn level.
func (l *Logger) Warnf(target, format string, args ...any) {
	l.logf(LevelWarn, target, format, args...)
}

// Infof logs a formatted message at the Info level.
func (l *Logger) Infof(target, format string, args ...any) {
	l.logf(LevelInfo, target, format, args...)
}

// Debugf logs a formatted message at the Debug level.
func (l *Logger) Debugf(target, format string, args ...any) {
	l.logf(LevelDebug, target, format, args...)
}

// Tracef logs a formatted message at the Trace level.
func (l *Logger) Tracef(target, format string, args ...any) {
	l.logf(LevelTrace, target, format, args...)
}

// std is the package default. It stays nil until Init succeeds.
var std *Logger

// Init installs a default logger for the package-level helpers. It
// succeeds exactly once per process; later calls return ErrAlreadyActive
// and leave the installed logger untouched.
func Init(tr *serial.Transport, cfg Config, opts ...Option) error {
	if std != nil {
		return ErrAlreadyActive
	}
	std = New(tr, cfg, opts...)
	return nil
}

// Default returns the installed default logger, or nil before Init.
func Default() *Logger {
	return std
}

// Errorf logs through the default logger, if one is installed.
func Errorf(target, format string, args ...any) {
	if std != nil {
		std.Errorf(target, format, args...)
	}
}

// Warnf logs through the default logger, if one is installed.
func Warnf(target, format string, args ...any) {
	if std != nil {
		std.Warnf(target, format, args...)
	}
}

// Infof logs through the default logger, if one is installed.
func Infof(target, format string, args ...any) {
	if std != nil {
		std.Infof(target, format, args...)
	}
}

// Debugf logs through the default logger, if one is installed.
func Debugf(target, format string, args ...any) {
	if std != nil {
		std.Debugf(target, format, args...)
	}
}

// Tracef logs through the default logger, if one is installed.
func Tracef(target, format string, args ...any) {
	if std != nil {
		std.Tracef(target, format, args...)
	}
}

// Flush flushes the default logger, if one is installed.
func Flush() {
	if std != nil {
		std.Flush()
	}
}
