package ansi

import (
	"os"

	"github.com/mattn/go-isatty"
)

// enabled gates all rendering. On by default; firmware-style consumers
// writing to a serial terminal have no tty to probe.
var enabled = true

// SetEnabled turns rendering on or off for every sequence in the process.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled reports whether sequences currently render.
func Enabled() bool {
	return enabled
}

// Detect sets the enable flag from the capabilities of f, for consumers
// whose output may be piped rather than wired to a terminal. Color is
// suppressed when NO_COLOR is set (https://no-color.org), when TERM=dumb,
// or when f is not a terminal.
func Detect(f *os.File) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		enabled = false
		return
	}
	fd := f.Fd()
	enabled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
