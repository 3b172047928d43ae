// Package logging is a small leveled logger shared by the engine, the
// viewer and the CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel orders messages by severity. A logger drops messages below its level.
type LogLevel int32

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// EnvLogLevel names the environment variable read at startup to set the global level.
const EnvLogLevel = "TREND_LOG_LEVEL"

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

var levelAliases = map[string]LogLevel{"WARNING": LogLevelWarn, "NONE": LogLevelOff}

func (l LogLevel) String() string {
	if l < LogLevelDebug || l > LogLevelOff {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel accepts a level name in any case, plus WARNING and NONE.
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i), nil
		}
	}
	if l, ok := levelAliases[name]; ok {
		return l, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes "[LEVEL] message" lines. Its level may change while other
// goroutines are logging.
type Logger struct {
	level atomic.Int32
	out   *log.Logger
}

func NewLogger(w io.Writer, level LogLevel) *Logger {
	l := &Logger{out: log.New(w, "", log.LstdFlags)}
	l.SetLevel(level)
	return l
}

func (l *Logger) SetLevel(level LogLevel) { l.level.Store(int32(level)) }
func (l *Logger) Level() LogLevel         { return LogLevel(l.level.Load()) }

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return level < LogLevelOff && level >= l.Level()
}

// Logf formats and writes one message at level.
func (l *Logger) Logf(level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.out.Print("[" + level.String() + "] " + fmt.Sprintf(format, args...))
}

var global atomic.Pointer[Logger]

// Default returns the process wide logger.
func Default() *Logger {
	return global.Load()
}

// SetDefault replaces the process wide logger and returns the previous one.
func SetDefault(l *Logger) *Logger {
	return global.Swap(l)
}

func SetLogLevel(level LogLevel) { Default().SetLevel(level) }
func GetLogLevel() LogLevel      { return Default().Level() }

func Debug(format string, args ...any) { Default().Logf(LogLevelDebug, format, args...) }
func Info(format string, args ...any)  { Default().Logf(LogLevelInfo, format, args...) }
func Warn(format string, args ...any)  { Default().Logf(LogLevelWarn, format, args...) }
func Error(format string, args ...any) { Default().Logf(LogLevelError, format, args...) }

func init() {
	level := LogLevelInfo
	if l, err := ParseLogLevel(os.Getenv(EnvLogLevel)); err == nil {
		level = l
	}
	// test binaries only report errors unless a test asks for more
	if strings.HasSuffix(os.Args[0], ".test") {
		level = LogLevelError
	}
	global.Store(NewLogger(os.Stderr, level))
}
