package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DusterTheFirst/arduino/serial"
	"github.com/DusterTheFirst/arduino/tempmon"
	"github.com/DusterTheFirst/arduino/usblog"
)

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Tail decoded text from the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, port, err := ctx.openTransport()
			if err != nil {
				return err
			}
			defer port.Close()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(interrupt)

			usblog.Infof("monitor", "reading %s at %d baud", port.Device(), tr.Baud())
			for {
				select {
				case <-interrupt:
					usblog.Infof("monitor", "stopped")
					return nil
				default:
				}
				text, err := tr.ReadStringTimeout()
				switch {
				case errors.Is(err, serial.ErrNoData):
					continue
				case err != nil:
					usblog.Warnf("monitor", "dropped chunk: %v", err)
					continue
				}
				fmt.Print(text)
			}
		},
	}
}

func newSendCommand(ctx *commandContext) *cobra.Command {
	var newline bool
	cmd := &cobra.Command{
		Use:   "send <text>...",
		Short: "Write text to the device",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, port, err := ctx.openTransport()
			if err != nil {
				return err
			}
			defer port.Close()

			payload := strings.Join(args, " ")
			if newline {
				payload += "\n"
			}
			written := tr.WriteString(payload)
			tr.SendNow()
			if written < len(payload) {
				return fmt.Errorf("device accepted %d of %d bytes", written, len(payload))
			}
			usblog.Debugf("send", "wrote %d bytes", written)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&newline, "newline", "n", true, "Append a trailing newline")
	return cmd
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the negotiated line coding and control signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, port, err := ctx.openTransport()
			if err != nil {
				return err
			}
			defer port.Close()

			rows := [][]string{
				{"Device", port.Device()},
				{"Baud", strconv.FormatUint(uint64(tr.Baud()), 10)},
				{"Stop bits", strconv.Itoa(int(tr.StopBits()))},
				{"Parity", tr.Parity().String()},
				{"Data bits", strconv.Itoa(int(tr.NumBits()))},
				{"DTR", strconv.FormatBool(tr.DTR())},
				{"RTS", strconv.FormatBool(tr.RTS())},
			}
			fmt.Println(renderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func newTempCommand() *cobra.Command {
	var zone string
	cmd := &cobra.Command{
		Use:   "temp",
		Short: "Read the board temperature",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sensor tempmon.Sensor
			if zone != "" {
				sensor = tempmon.ZoneSensor{Path: zone}
			} else {
				found, err := tempmon.Default()
				if err != nil {
					return err
				}
				sensor = found
			}
			celsius, err := sensor.Temperature()
			if err != nil {
				return err
			}
			fmt.Printf("%.1f°C\n", celsius)
			return nil
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "Thermal zone temp file to read")
	return cmd
}
