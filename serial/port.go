package serial

import "fmt"

// Port is the raw byte-stream primitive a Transport is layered over. The
// methods mirror the USB CDC driver surface of the Teensy serial stack:
// counts in, counts out, no error returns. Read and Write only ever touch
// bytes that are buffered at the instant of the call; a short count is not
// an error, it is how the hardware reports backpressure or an empty
// receive buffer.
type Port interface {
	// Available reports the number of bytes buffered and ready to read.
	Available() int
	// ClearInput discards any buffered unread input. Output is unaffected.
	ClearInput()
	// PeekByte returns the next byte without consuming it. Repeated calls
	// return the same byte until ReadByte or Read consumes it.
	PeekByte() (byte, bool)
	// ReadByte consumes and returns the next buffered byte.
	ReadByte() (byte, bool)
	// Read copies already-buffered bytes into p and returns how many were
	// copied. It never waits for more data to arrive.
	Read(p []byte) int
	// Write accepts as many bytes of p as the output buffer has room for
	// and returns the accepted count.
	Write(p []byte) int
	// WriteBufferFree reports how many bytes Write can accept without
	// dropping any.
	WriteBufferFree() int
	// FlushOutput pushes any buffered output toward the host immediately.
	FlushOutput()
	// LineCoding returns the current line-coding register snapshot.
	LineCoding() LineCoding
	// ControlLines returns the current control-line register snapshot.
	ControlLines() ControlLines
}

// LineCoding is a raw snapshot of the CDC line-coding registers as set by
// the host: the requested baud rate and the packed stop-bits/parity/data-
// bits fields. Values are undecoded; Transport interprets them.
type LineCoding struct {
	Baud     uint32
	StopBits byte
	Parity   byte
	DataBits byte
}

// ControlLines is a snapshot of the CDC control-line register.
type ControlLines byte

const (
	lineDTR ControlLines = 0x01
	lineRTS ControlLines = 0x02
)

// DTR reports whether the host asserts data-terminal-ready. Host software
// normally raises DTR when it opens the port.
func (c ControlLines) DTR() bool { return c&lineDTR != 0 }

// RTS reports whether the host asserts request-to-send.
func (c ControlLines) RTS() bool { return c&lineRTS != 0 }

// Parity is the parity setting requested by the host. USB CDC transports
// never apply parity on the wire, but bridges forward the host's request.
type Parity byte

const (
	ParityNone Parity = 0
	ParityOdd  Parity = 1
	ParityEven Parity = 2
)

// String returns the conventional single-letter parity name.
func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "N"
	case ParityOdd:
		return "O"
	case ParityEven:
		return "E"
	}
	return fmt.Sprintf("Parity(%d)", byte(p))
}

// decodeParity maps the raw 2-bit line-coding field to a Parity. The CDC
// specification defines only 0..2; anything else means the port handed us
// a corrupt register, which is a contract violation, not an error state.
func decodeParity(raw byte) Parity {
	switch raw {
	case 0:
		return ParityNone
	case 1:
		return ParityOdd
	case 2:
		return ParityEven
	}
	panic(fmt.Sprintf("serial: invalid parity value %d in line coding", raw))
}
