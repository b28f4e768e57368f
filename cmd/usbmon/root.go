package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DusterTheFirst/arduino/ansi"
	"github.com/DusterTheFirst/arduino/serial"
	"github.com/DusterTheFirst/arduino/usblog"
)

type commandContext struct {
	device  string
	baud    int
	timeout uint32
	config  string
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "usbmon",
		Short:         "Monitor and poke USB CDC serial devices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ansi.Detect(os.Stderr)
			return ctx.initLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.device, "device", "d", "/dev/ttyACM0", "Serial device path")
	rootCmd.PersistentFlags().IntVarP(&ctx.baud, "baud", "b", 115200, "Baud rate")
	rootCmd.PersistentFlags().Uint32Var(&ctx.timeout, "timeout", 500, "Bounded-read timeout in milliseconds")
	rootCmd.PersistentFlags().StringVarP(&ctx.config, "config", "c", "", "Logging configuration file (TOML)")

	rootCmd.AddCommand(newMonitorCommand(ctx))
	rootCmd.AddCommand(newSendCommand(ctx))
	rootCmd.AddCommand(newInfoCommand(ctx))
	rootCmd.AddCommand(newTempCommand())

	return rootCmd
}

// initLogging routes usbmon's own diagnostics through the usblog pipeline
// over a console-backed transport, colorized when stderr is a terminal.
func (ctx *commandContext) initLogging() error {
	cfg := usblog.DefaultConfig()
	if ctx.config != "" {
		loaded, err := usblog.LoadConfig(ctx.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	tr := serial.New(newConsolePort(os.Stderr))
	if err := usblog.Init(tr, cfg); err != nil {
		return err
	}
	return nil
}

// openTransport opens the configured device and wraps it in a transport.
func (ctx *commandContext) openTransport() (*serial.Transport, *serial.HostPort, error) {
	port, err := serial.OpenHost(ctx.device, ctx.baud)
	if err != nil {
		return nil, nil, fmt.Errorf("open device: %w", err)
	}
	tr := serial.New(port, serial.WithTimeout(ctx.timeout))
	return tr, port, nil
}
