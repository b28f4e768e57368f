// Package serial provides a byte transport over a USB CDC serial link,
// modelled on the Arduino/Teensy Serial class and aimed at Go programs
// running on small embedded-Linux boards.
//
// The hardware side is abstracted behind the narrow Port interface: an
// available-byte count, single-byte peek/read, bulk read/write that only
// ever touch bytes already buffered, output flush, and raw line-coding and
// control-line snapshots. Transport layers the interesting behaviour on
// top: a timeout-bounded accumulating read, UTF-8 text reads, and decoded
// line-coding introspection (baud, stop bits, parity, DTR/RTS).
//
// Features:
//   - Bounded-time reads that keep polling the port until the destination
//     buffer fills or the configured timeout elapses
//   - Single-shot reads capped at what is already buffered
//   - UTF-8 text reads over an internal 256-byte scratch buffer
//   - Line-coding and control-line introspection re-read from the hardware
//     on every access, never cached
//   - A HostPort implementation over raw termios for Linux ttys, and an
//     in-memory fake in serial/serialtest for hardware-free tests
//
// The package performs no internal locking. A Transport assumes a single
// cooperative caller: invoking its read or text-decode operations
// concurrently is undefined and must be prevented by the caller.
//
// Example usage:
//
//	port, err := serial.OpenHost("/dev/ttyACM0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	tr := serial.New(port, serial.WithTimeout(500))
//	buf := make([]byte, 64)
//	n := tr.ReadBytesTimeout(buf)
//	fmt.Printf("read %d bytes at %d baud\n", n, tr.Baud())
package serial
