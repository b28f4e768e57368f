// Package tempmon reads the board temperature.
//
// On the original hardware this is a single pass-through call into the
// on-die temperature monitor; on embedded Linux the equivalent source is
// the sysfs thermal zone, which reports millidegrees Celsius.
package tempmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const thermalGlob = "/sys/class/thermal/thermal_zone*/temp"

// Sensor yields a temperature in degrees Celsius.
type Sensor interface {
	Temperature() (float64, error)
}

// ZoneSensor reads one sysfs thermal-zone temp file.
type ZoneSensor struct {
	Path string
}

// Temperature reads and decodes the zone file.
func (s ZoneSensor) Temperature() (float64, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return 0, fmt.Errorf("read thermal zone: %w", err)
	}
	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse thermal zone %s: %w", s.Path, err)
	}
	return float64(raw) / 1000, nil
}

// Default returns a sensor over the first thermal zone present, or an
// error when the platform exposes none.
func Default() (Sensor, error) {
	matches, err := filepath.Glob(thermalGlob)
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("no thermal zone found under /sys/class/thermal")
	}
	return ZoneSensor{Path: matches[0]}, nil
}
