//go:build linux

package serial

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// outQueueSize is the kernel output buffer size HostPort assumes when
// computing WriteBufferFree. The true depth is driver-dependent; 4096
// matches the default tty write buffer.
const outQueueSize = 4096

// HostPort implements Port over a raw Linux tty file descriptor. It exists
// so the transport and logging layers can run against a real serial device
// (or a pty in tests) instead of microcontroller firmware.
//
// The Port contract is count-based: syscall failures surface as zero
// counts, the same way the CDC driver reports an empty or full buffer.
type HostPort struct {
	fd     int
	device string

	// one-byte pushback backing PeekByte; ttys cannot peek natively
	peeked   byte
	hasPeek  bool
	lastBaud uint32
}

var _ Port = (*HostPort)(nil)

// OpenHost opens device as a raw, non-blocking serial port at the given
// baud rate and returns a HostPort over it.
func OpenHost(device string, baud int) (*HostPort, error) {
	fd, err := syscall.Open(device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	// Baud rate
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baudToUnix(baud)

	// VMIN=0, VTIME=0: reads return only what is already buffered, which
	// is exactly the Port.Read contract.
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	return &HostPort{fd: fd, device: device, lastBaud: uint32(baud)}, nil
}

// Device returns the path the port was opened with.
func (p *HostPort) Device() string { return p.device }

// Close closes the underlying file descriptor.
func (p *HostPort) Close() error {
	return syscall.Close(p.fd)
}

// Available reports the number of bytes in the kernel receive queue, plus
// a pending peeked byte.
func (p *HostPort) Available() int {
	n, err := unix.IoctlGetInt(p.fd, unix.TIOCINQ)
	if err != nil {
		n = 0
	}
	if p.hasPeek {
		n++
	}
	return n
}

// ClearInput discards the kernel receive queue and any peeked byte.
func (p *HostPort) ClearInput() {
	p.hasPeek = false
	unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// PeekByte returns the next byte without consuming it, pulling one byte
// out of the kernel queue into a pushback slot if needed.
func (p *HostPort) PeekByte() (byte, bool) {
	if p.hasPeek {
		return p.peeked, true
	}
	var b [1]byte
	n, err := unix.Read(p.fd, b[:])
	if err != nil || n != 1 {
		return 0, false
	}
	p.peeked = b[0]
	p.hasPeek = true
	return p.peeked, true
}

// ReadByte consumes and returns the next buffered byte.
func (p *HostPort) ReadByte() (byte, bool) {
	if p.hasPeek {
		p.hasPeek = false
		return p.peeked, true
	}
	var b [1]byte
	n, err := unix.Read(p.fd, b[:])
	if err != nil || n != 1 {
		return 0, false
	}
	return b[0], true
}

// Read copies already-buffered bytes into buf and returns the count. The
// descriptor is non-blocking, so the call never waits for data.
func (p *HostPort) Read(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	count := 0
	if p.hasPeek {
		buf[0] = p.peeked
		p.hasPeek = false
		count = 1
		buf = buf[1:]
		if len(buf) == 0 {
			return count
		}
	}
	n, err := unix.Read(p.fd, buf)
	if err != nil || n < 0 {
		return count
	}
	return count + n
}

// Write hands buf to the kernel and returns the accepted count.
func (p *HostPort) Write(buf []byte) int {
	n, err := unix.Write(p.fd, buf)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// WriteBufferFree estimates writable space from the kernel output-queue
// depth.
func (p *HostPort) WriteBufferFree() int {
	used, err := unix.IoctlGetInt(p.fd, unix.TIOCOUTQ)
	if err != nil || used > outQueueSize {
		return 0
	}
	return outQueueSize - used
}

// FlushOutput drains the kernel output queue (tcdrain).
func (p *HostPort) FlushOutput() {
	unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}

// LineCoding decodes the current termios settings into a raw CDC-style
// line-coding snapshot, re-read from the kernel on every call.
func (p *HostPort) LineCoding() LineCoding {
	termios, err := unix.IoctlGetTermios(p.fd, unix.TCGETS)
	if err != nil {
		return LineCoding{Baud: p.lastBaud, StopBits: 1, DataBits: 8}
	}

	coding := LineCoding{Baud: unixToBaud(termios.Cflag & unix.CBAUD)}
	if coding.Baud == 0 {
		coding.Baud = p.lastBaud
	}

	if termios.Cflag&unix.CSTOPB != 0 {
		coding.StopBits = 2
	} else {
		coding.StopBits = 1
	}

	if termios.Cflag&unix.PARENB != 0 {
		if termios.Cflag&unix.PARODD != 0 {
			coding.Parity = byte(ParityOdd)
		} else {
			coding.Parity = byte(ParityEven)
		}
	}

	switch termios.Cflag & unix.CSIZE {
	case unix.CS5:
		coding.DataBits = 5
	case unix.CS6:
		coding.DataBits = 6
	case unix.CS7:
		coding.DataBits = 7
	default:
		coding.DataBits = 8
	}
	return coding
}

// ControlLines reads the modem-control register. Ptys and some USB
// adapters reject TIOCMGET; that reads as all lines deasserted.
func (p *HostPort) ControlLines() ControlLines {
	bits, err := unix.IoctlGetInt(p.fd, unix.TIOCMGET)
	if err != nil {
		return 0
	}
	var lines ControlLines
	if bits&unix.TIOCM_DTR != 0 {
		lines |= lineDTR
	}
	if bits&unix.TIOCM_RTS != 0 {
		lines |= lineRTS
	}
	return lines
}

func baudToUnix(baud int) uint32 {
	switch baud {
	case 9600:
		return unix.B9600
	case 19200:
		return unix.B19200
	case 38400:
		return unix.B38400
	case 57600:
		return unix.B57600
	case 115200:
		return unix.B115200
	case 230400:
		return unix.B230400
	default:
		return unix.B115200 // fallback
	}
}

func unixToBaud(flag uint32) uint32 {
	switch flag {
	case unix.B9600:
		return 9600
	case unix.B19200:
		return 19200
	case unix.B38400:
		return 38400
	case unix.B57600:
		return 57600
	case unix.B115200:
		return 115200
	case unix.B230400:
		return 230400
	default:
		return 0
	}
}
