// Package serialtest provides an in-memory serial.Port and a manual clock
// for exercising the transport and logging layers without hardware.
package serialtest

import "github.com/DusterTheFirst/arduino/serial"

// Port is a scripted in-memory implementation of serial.Port.
//
// Input is fed with Feed and handed out by Read in chunks of at most
// ReadChunk bytes, which models a device trickling data in across polls.
// The OnRead hook runs before every Read and may feed more input or
// advance a fake clock, letting tests drive the bounded-read loop
// deterministically.
type Port struct {
	// ReadChunk caps how many bytes a single Read call returns.
	// Zero means unlimited.
	ReadChunk int
	// WriteLimit caps how many total bytes Write will accept.
	// Negative means unlimited.
	WriteLimit int
	// OnRead, if set, runs at the start of every Read call.
	OnRead func()
	// Coding and Lines are returned verbatim by the snapshot methods.
	Coding serial.LineCoding
	Lines  serial.ControlLines

	input   []byte
	written []byte
	flushes int
}

var _ serial.Port = (*Port)(nil)

// NewPort returns a Port with unlimited read chunks and write acceptance
// and an 115200 8N1 line coding.
func NewPort() *Port {
	return &Port{
		WriteLimit: -1,
		Coding:     serial.LineCoding{Baud: 115200, StopBits: 1, DataBits: 8},
	}
}

// Feed appends bytes to the pending input.
func (p *Port) Feed(b []byte) {
	p.input = append(p.input, b...)
}

// FeedString appends the bytes of s to the pending input.
func (p *Port) FeedString(s string) {
	p.Feed([]byte(s))
}

// Written returns everything accepted by Write so far.
func (p *Port) Written() []byte {
	return p.written
}

// Flushes returns how many times FlushOutput has been called.
func (p *Port) Flushes() int {
	return p.flushes
}

func (p *Port) Available() int {
	return len(p.input)
}

func (p *Port) ClearInput() {
	p.input = nil
}

func (p *Port) PeekByte() (byte, bool) {
	if len(p.input) == 0 {
		return 0, false
	}
	return p.input[0], true
}

func (p *Port) ReadByte() (byte, bool) {
	if len(p.input) == 0 {
		return 0, false
	}
	b := p.input[0]
	p.input = p.input[1:]
	return b, true
}

func (p *Port) Read(buf []byte) int {
	if p.OnRead != nil {
		p.OnRead()
	}
	n := len(p.input)
	if n > len(buf) {
		n = len(buf)
	}
	if p.ReadChunk > 0 && n > p.ReadChunk {
		n = p.ReadChunk
	}
	copy(buf, p.input[:n])
	p.input = p.input[n:]
	return n
}

func (p *Port) Write(buf []byte) int {
	n := len(buf)
	if p.WriteLimit >= 0 {
		remaining := p.WriteLimit - len(p.written)
		if remaining < 0 {
			remaining = 0
		}
		if n > remaining {
			n = remaining
		}
	}
	p.written = append(p.written, buf[:n]...)
	return n
}

func (p *Port) WriteBufferFree() int {
	if p.WriteLimit < 0 {
		return 1 << 16
	}
	free := p.WriteLimit - len(p.written)
	if free < 0 {
		return 0
	}
	return free
}

func (p *Port) FlushOutput() {
	p.flushes++
}

func (p *Port) LineCoding() serial.LineCoding {
	return p.Coding
}

func (p *Port) ControlLines() serial.ControlLines {
	return p.Lines
}

// Clock is a manual millisecond counter for driving bounded-read timeouts.
type Clock struct {
	ms uint32
}

// Now returns the current fake time in milliseconds. Pass it to
// serial.WithClock.
func (c *Clock) Now() uint32 {
	return c.ms
}

// Advance moves the fake time forward.
func (c *Clock) Advance(ms uint32) {
	c.ms += ms
}
