package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// QuietTest silences the global logger until the returned func is called.
//
//	defer logging.QuietTest(t)()
func QuietTest(t testing.TB) func() {
	old := GetLogLevel()
	SetLogLevel(LogLevelOff)
	return func() { SetLogLevel(old) }
}

// CaptureLog routes the global logger into a buffer at level until the
// returned func is called.
func CaptureLog(t testing.TB, level LogLevel) (*bytes.Buffer, func()) {
	buf := &bytes.Buffer{}
	old := SetDefault(NewLogger(buf, level))
	return buf, func() { SetDefault(old) }
}

func AssertLogContains(t testing.TB, logs string, expected string) bool {
	t.Helper()
	return assert.Contains(t, logs, expected, "expected log message not found")
}

// AssertNoLogErrors fails when any ERROR line was logged.
func AssertNoLogErrors(t testing.TB, logs string) bool {
	t.Helper()
	return assert.NotContains(t, logs, "[ERROR]", "unexpected error logs")
}
