package serial

import (
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

// scratchSize is the capacity of the text-read scratch buffer, matching the
// 256-byte receive chunk of the USB CDC driver.
const scratchSize = 256

// DefaultTimeout is the bounded-read timeout a new Transport starts with,
// in milliseconds.
const DefaultTimeout uint32 = 1000

var (
	// ErrNoData is returned by the text reads when no bytes were buffered.
	ErrNoData = errors.New("serial: no data")
	// ErrInvalidUTF8 is returned when captured bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("serial: invalid utf-8 in read buffer")
)

var processStart = time.Now()

// Millis returns the number of milliseconds elapsed since process start.
// It is monotonic and never decreases.
func Millis() uint32 {
	return uint32(time.Since(processStart).Milliseconds())
}

// Transport wraps a Port with a configurable read timeout and the
// accumulating read strategy the raw hardware cannot provide on its own.
//
// A Transport is not safe for concurrent use. The bounded reads busy-poll
// the calling goroutine until the buffer fills or the timeout elapses, and
// the text reads share one scratch buffer per Transport.
type Transport struct {
	port    Port
	now     func() uint32
	timeout uint32
	scratch [scratchSize]byte
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the initial bounded-read timeout in milliseconds.
func WithTimeout(ms uint32) Option {
	return func(t *Transport) { t.timeout = ms }
}

// WithClock replaces the monotonic millisecond clock used by the bounded
// reads. Tests use this to drive the timeout deterministically.
func WithClock(now func() uint32) Option {
	return func(t *Transport) { t.now = now }
}

// New returns a Transport over port with a 1000ms read timeout unless
// overridden by options.
func New(port Port, opts ...Option) *Transport {
	t := &Transport{
		port:    port,
		now:     Millis,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetTimeout sets the bounded-read timeout in milliseconds.
func (t *Transport) SetTimeout(ms uint32) {
	t.timeout = ms
}

// Timeout returns the current bounded-read timeout in milliseconds.
func (t *Transport) Timeout() uint32 {
	return t.timeout
}

// Available reports the number of bytes buffered and ready to read.
func (t *Transport) Available() int {
	return t.port.Available()
}

// AvailableForWrite reports how many bytes can be written without any
// being dropped.
func (t *Transport) AvailableForWrite() int {
	return t.port.WriteBufferFree()
}

// Clear discards buffered unread input.
func (t *Transport) Clear() {
	t.port.ClearInput()
}

// SendNow pushes any buffered output toward the host immediately. This is
// the flush hook the logging pipeline uses.
func (t *Transport) SendNow() {
	t.port.FlushOutput()
}

// Peek returns the next buffered byte without consuming it.
func (t *Transport) Peek() (byte, bool) {
	return t.port.PeekByte()
}

// ReadByte consumes and returns the next buffered byte.
func (t *Transport) ReadByte() (byte, bool) {
	return t.port.ReadByte()
}

// ReadBytes performs a single-shot read: it copies at most
// min(Available(), len(buf)) bytes into buf and returns the count. It
// never waits for more data.
func (t *Transport) ReadBytes(buf []byte) int {
	n := t.port.Available()
	if n > len(buf) {
		n = len(buf)
	}
	return t.port.Read(buf[:n])
}

// ReadBytesTimeout reads into buf until it is full or the configured
// timeout has elapsed, accumulating across repeated port reads. A single
// port read only returns bytes buffered at the instant of the call, so the
// loop is what lets a multi-byte request be satisfied by data that trickles
// in during the window. The poll is tight; it never sleeps. Returns the
// number of bytes copied, at most len(buf).
func (t *Transport) ReadBytesTimeout(buf []byte) int {
	count := 0
	start := t.now()
	for {
		count += t.port.Read(buf[count:])
		if count >= len(buf) {
			return count
		}
		if t.now()-start >= t.timeout {
			return count
		}
	}
}

// ReadString performs a single-shot read of up to 256 bytes and decodes
// the result as UTF-8. It returns ErrNoData when nothing was buffered and
// ErrInvalidUTF8 when the captured bytes do not decode.
func (t *Transport) ReadString() (string, error) {
	return t.decodeScratch(t.ReadBytes(t.scratch[:]))
}

// ReadStringTimeout is ReadString over a bounded read: it keeps polling
// for up to the configured timeout to fill the 256-byte scratch buffer.
func (t *Transport) ReadStringTimeout() (string, error) {
	return t.decodeScratch(t.ReadBytesTimeout(t.scratch[:]))
}

func (t *Transport) decodeScratch(n int) (string, error) {
	if n == 0 {
		return "", ErrNoData
	}
	if !utf8.Valid(t.scratch[:n]) {
		return "", ErrInvalidUTF8
	}
	return string(t.scratch[:n]), nil
}

// WriteByte writes one byte, reporting whether the port accepted it.
func (t *Transport) WriteByte(b byte) bool {
	return t.port.Write([]byte{b}) == 1
}

// WriteString writes the bytes of s and returns however many the port
// accepted, which may be fewer than len(s) under backpressure. Short
// writes are not retried.
func (t *Transport) WriteString(s string) int {
	return t.port.Write([]byte(s))
}

// Write implements io.Writer over the port. A short accept is reported as
// io.ErrShortWrite; it is not retried.
func (t *Transport) Write(p []byte) (int, error) {
	n := t.port.Write(p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Baud returns the baud rate requested by the host. USB transfers always
// run at full bus speed; the value matters when bridging to a real UART.
func (t *Transport) Baud() uint32 {
	return t.port.LineCoding().Baud
}

// StopBits returns the stop-bits setting requested by the host. A raw zero
// in the register reads as one stop bit.
func (t *Transport) StopBits() byte {
	b := t.port.LineCoding().StopBits
	if b == 0 {
		return 1
	}
	return b
}

// Parity returns the parity setting requested by the host. Panics if the
// port reports a value outside the CDC-defined range.
func (t *Transport) Parity() Parity {
	return decodeParity(t.port.LineCoding().Parity)
}

// NumBits returns the data-bits setting requested by the host.
func (t *Transport) NumBits() byte {
	return t.port.LineCoding().DataBits
}

// DTR reports the host's data-terminal-ready signal.
func (t *Transport) DTR() bool {
	return t.port.ControlLines().DTR()
}

// RTS reports the host's request-to-send signal.
func (t *Transport) RTS() bool {
	return t.port.ControlLines().RTS()
}
