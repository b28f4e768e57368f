package usblog

import (
	"fmt"
	"strings"
)

// Level is a diagnostic severity. Smaller values are more severe; a
// record at level L passes a threshold T when L <= T.
//
// The zero value is not a valid level. Filter uses it to mean "no
// override".
type Level int

const (
	// LevelError designates very serious failures.
	LevelError Level = iota + 1
	// LevelWarn designates hazardous situations.
	LevelWarn
	// LevelInfo designates useful information.
	LevelInfo
	// LevelDebug designates lower-priority information.
	LevelDebug
	// LevelTrace designates very low priority, often very verbose,
	// information.
	LevelTrace
)

// String returns the uppercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses a level name (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "err":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	}
	return 0, fmt.Errorf("usblog: unknown level %q", s)
}

// MarshalText implements encoding.TextMarshaler for config files.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
