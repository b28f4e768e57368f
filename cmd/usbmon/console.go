package main

import (
	"os"

	"github.com/DusterTheFirst/arduino/serial"
)

// consolePort adapts a local console file to the serial.Port interface so
// the logging pipeline can write usbmon's own diagnostics the same way
// firmware writes them over USB. The input side is permanently empty.
type consolePort struct {
	out *os.File
}

var _ serial.Port = (*consolePort)(nil)

func newConsolePort(out *os.File) *consolePort {
	return &consolePort{out: out}
}

func (p *consolePort) Available() int         { return 0 }
func (p *consolePort) ClearInput()            {}
func (p *consolePort) PeekByte() (byte, bool) { return 0, false }
func (p *consolePort) ReadByte() (byte, bool) { return 0, false }
func (p *consolePort) Read(buf []byte) int    { return 0 }
func (p *consolePort) WriteBufferFree() int   { return 1 << 16 }
func (p *consolePort) FlushOutput()           { p.out.Sync() }

func (p *consolePort) Write(buf []byte) int {
	n, _ := p.out.Write(buf)
	return n
}

func (p *consolePort) LineCoding() serial.LineCoding {
	return serial.LineCoding{StopBits: 1, DataBits: 8}
}

func (p *consolePort) ControlLines() serial.ControlLines {
	return 0
}
