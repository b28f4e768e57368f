package usblog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DusterTheFirst/arduino/ansi"
	"github.com/DusterTheFirst/arduino/serial"
	"github.com/DusterTheFirst/arduino/serial/serialtest"
)

func newTestLogger(cfg Config) (*Logger, *serialtest.Port, *serialtest.Clock) {
	port := serialtest.NewPort()
	clock := &serialtest.Clock{}
	logger := New(serial.New(port), cfg, WithClock(clock.Now))
	return logger, port, clock
}

func TestEnabled_EmptyFilterTable(t *testing.T) {
	logger, _, _ := newTestLogger(Config{MaxLevel: LevelInfo})

	for _, target := range []string{"motor", "sensor", "", "anything"} {
		require.True(t, logger.Enabled(LevelError, target))
		require.True(t, logger.Enabled(LevelWarn, target))
		require.True(t, logger.Enabled(LevelInfo, target))
		require.False(t, logger.Enabled(LevelDebug, target))
		require.False(t, logger.Enabled(LevelTrace, target))
	}
}

func TestEnabled_FilterOverride(t *testing.T) {
	logger, _, _ := newTestLogger(Config{
		MaxLevel: LevelTrace,
		Filters:  []Filter{{Target: "motor", Level: LevelWarn}},
	})

	// Info is less severe than the motor override.
	require.False(t, logger.Enabled(LevelInfo, "motor"))
	require.True(t, logger.Enabled(LevelError, "motor"))
	require.True(t, logger.Enabled(LevelWarn, "motor"))
	// Unknown targets fail closed once any filter exists.
	require.False(t, logger.Enabled(LevelError, "sensor"))
}

func TestEnabled_FilterWithoutOverride(t *testing.T) {
	logger, _, _ := newTestLogger(Config{
		MaxLevel: LevelDebug,
		Filters:  []Filter{{Target: "sensor"}},
	})

	// No override: any level up to the process maximum is admitted.
	require.True(t, logger.Enabled(LevelDebug, "sensor"))
	require.True(t, logger.Enabled(LevelError, "sensor"))
	require.False(t, logger.Enabled(LevelTrace, "sensor"))
}

func TestEnabled_SeverityOrdering(t *testing.T) {
	logger, _, _ := newTestLogger(Config{MaxLevel: LevelInfo})
	require.False(t, logger.Enabled(LevelDebug, "app"))

	logger, _, _ = newTestLogger(Config{MaxLevel: LevelDebug})
	require.True(t, logger.Enabled(LevelDebug, "app"))

	logger, _, _ = newTestLogger(Config{MaxLevel: LevelTrace})
	require.True(t, logger.Enabled(LevelDebug, "app"))
}

func TestLog_LineFormat(t *testing.T) {
	logger, port, _ := newTestLogger(Config{MaxLevel: LevelTrace})

	logger.Log(Record{Level: LevelWarn, Target: "motor", Millis: 1234, Message: "over current"})

	want := fmt.Sprintf("[%sWARN%s motor 1234]: over current\n",
		ansi.New().Fg(ansi.LightYellow),
		ansi.New().Styles(ansi.Clear),
	)
	require.Equal(t, want, string(port.Written()))
}

func TestLog_LevelColors(t *testing.T) {
	cases := []struct {
		level Level
		color ansi.Named
	}{
		{LevelError, ansi.LightRed},
		{LevelWarn, ansi.LightYellow},
		{LevelInfo, ansi.LightBlue},
		{LevelDebug, ansi.Magenta},
		{LevelTrace, ansi.LightBlack},
	}
	for _, tc := range cases {
		logger, port, _ := newTestLogger(Config{MaxLevel: LevelTrace})
		logger.Log(Record{Level: tc.level, Target: "t", Message: "m"})
		require.True(t, strings.HasPrefix(string(port.Written()), "["+ansi.New().Fg(tc.color).String()+tc.level.String()),
			"level %s", tc.level)
	}
}

func TestLog_ColorDisabled(t *testing.T) {
	ansi.SetEnabled(false)
	t.Cleanup(func() { ansi.SetEnabled(true) })

	logger, port, _ := newTestLogger(Config{MaxLevel: LevelTrace})
	logger.Log(Record{Level: LevelInfo, Target: "app", Millis: 7, Message: "hi"})

	require.Equal(t, "[INFO app 7]: hi\n", string(port.Written()))
}

func TestLog_SilencedRecordWritesNothing(t *testing.T) {
	logger, port, _ := newTestLogger(Config{MaxLevel: LevelError})

	logger.Log(Record{Level: LevelInfo, Target: "app", Message: "dropped"})
	require.Empty(t, port.Written())
}

func TestLog_WriteFailureIsSwallowed(t *testing.T) {
	logger, port, _ := newTestLogger(Config{MaxLevel: LevelTrace})
	port.WriteLimit = 4

	require.NotPanics(t, func() {
		logger.Log(Record{Level: LevelInfo, Target: "app", Message: "truncated"})
		logger.Log(Record{Level: LevelInfo, Target: "app", Message: "fully dropped"})
	})
	require.Len(t, port.Written(), 4)
}

func TestLog_OneWritePerLine(t *testing.T) {
	logger, port, clock := newTestLogger(Config{MaxLevel: LevelTrace})

	writes := 0
	// Each line arrives as one contiguous chunk ending in a newline.
	clock.Advance(42)
	logger.Infof("app", "first %d", 1)
	logger.Infof("app", "second")
	for _, line := range strings.SplitAfter(string(port.Written()), "\n") {
		if line == "" {
			continue
		}
		writes++
		require.True(t, strings.HasSuffix(line, "\n"))
		require.NotContains(t, line, "\r")
	}
	require.Equal(t, 2, writes)
	require.Contains(t, ansi.Strip(string(port.Written())), "[INFO app 42]: first 1\n")
}

func TestLeveledHelpersStampClock(t *testing.T) {
	logger, port, clock := newTestLogger(Config{MaxLevel: LevelTrace})
	clock.Advance(99)

	logger.Tracef("app", "tick")
	require.Contains(t, ansi.Strip(string(port.Written())), "[TRACE app 99]: tick\n")
}

func TestFlush(t *testing.T) {
	logger, port, _ := newTestLogger(Config{MaxLevel: LevelError})
	logger.Flush()
	require.Equal(t, 1, port.Flushes())
}

func TestInit_SecondCallFails(t *testing.T) {
	std = nil
	t.Cleanup(func() { std = nil })

	port := serialtest.NewPort()
	require.NoError(t, Init(serial.New(port), Config{MaxLevel: LevelDebug}))
	first := Default()
	require.NotNil(t, first)

	err := Init(serial.New(serialtest.NewPort()), Config{MaxLevel: LevelError})
	require.ErrorIs(t, err, ErrAlreadyActive)

	// The installed logger is untouched by the failed call.
	require.Same(t, first, Default())
	require.Equal(t, LevelDebug, Default().MaxLevel())
	require.True(t, Default().Enabled(LevelDebug, "app"))
}

func TestPackageHelpersBeforeInit(t *testing.T) {
	std = nil
	t.Cleanup(func() { std = nil })

	require.NotPanics(t, func() {
		Errorf("app", "nowhere to go")
		Warnf("app", "nowhere to go")
		Infof("app", "nowhere to go")
		Debugf("app", "nowhere to go")
		Tracef("app", "nowhere to go")
		Flush()
	})
	require.Nil(t, Default())
}

func TestPackageHelpersAfterInit(t *testing.T) {
	std = nil
	t.Cleanup(func() { std = nil })

	port := serialtest.NewPort()
	require.NoError(t, Init(serial.New(port), Config{MaxLevel: LevelInfo}))

	Infof("app", "hello")
	Debugf("app", "silenced")
	out := ansi.Strip(string(port.Written()))
	require.Contains(t, out, "]: hello\n")
	require.NotContains(t, out, "silenced")
}

func TestLevelStrings(t *testing.T) {
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "TRACE", LevelTrace.String())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"error": LevelError, "ERR": LevelError,
		"Warn": LevelWarn, "warning": LevelWarn,
		"info": LevelInfo, "debug": LevelDebug, "trace": LevelTrace,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}
