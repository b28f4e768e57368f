package tempmon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeZone(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestZoneSensor_Temperature(t *testing.T) {
	sensor := ZoneSensor{Path: writeZone(t, "48650\n")}
	celsius, err := sensor.Temperature()
	require.NoError(t, err)
	require.InDelta(t, 48.65, celsius, 0.001)
}

func TestZoneSensor_Garbage(t *testing.T) {
	sensor := ZoneSensor{Path: writeZone(t, "not a number\n")}
	_, err := sensor.Temperature()
	require.Error(t, err)
}

func TestZoneSensor_MissingFile(t *testing.T) {
	sensor := ZoneSensor{Path: filepath.Join(t.TempDir(), "gone")}
	_, err := sensor.Temperature()
	require.Error(t, err)
}
