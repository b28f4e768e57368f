// usbmon is a diagnostic monitor for USB CDC serial devices: it tails
// decoded text from a device, pushes bytes to it, and inspects the line
// coding and control signals the host negotiated.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "usbmon: %v\n", err)
		os.Exit(1)
	}
}
