package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel is the minimum severity that reaches the log file.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps a config string to a level. Unknown input means INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l LogLevel) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

var (
	mu      sync.Mutex
	current = LevelOff
	logger  *logrus.Logger
	logFile *os.File
)

// Setup points logging at filePath (default ~/.relampago/relampago.log).
// The terminal belongs to the UI, so nothing is ever written to stdout/stderr.
func Setup(level LogLevel, filePath string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	current = level
	if level == LevelOff {
		return nil
	}

	if filePath == "" {
		home, _ := os.UserHomeDir()
		filePath = filepath.Join(home, ".relampago", "relampago.log")
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", filePath, err)
	}
	logFile = f
	logger = newLogger(f, level)
	return nil
}

// SetOutput routes logs to w. Used by tests.
func SetOutput(w io.Writer, level LogLevel) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	current = level
	if level != LevelOff {
		logger = newLogger(w, level)
	}
}

func newLogger(w io.Writer, level LogLevel) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level.logrus())
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

func currentLevel() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return current
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	logger = nil
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func entry(fields map[string]interface{}) *logrus.Entry {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return nil
	}
	return l.WithFields(logrus.Fields(fields))
}

func Debugf(format string, args ...any) { WithFields(nil).Debugf(format, args...) }
func Infof(format string, args ...any)  { WithFields(nil).Infof(format, args...) }
func Warnf(format string, args ...any)  { WithFields(nil).Warnf(format, args...) }
func Errorf(format string, args ...any) { WithFields(nil).Errorf(format, args...) }

// FieldLogger attaches key/value context to every line it writes.
type FieldLogger struct {
	fields map[string]interface{}
}

func WithFields(fields map[string]interface{}) *FieldLogger {
	return &FieldLogger{fields: fields}
}

func (fl *FieldLogger) Debugf(format string, args ...any) {
	if e := entry(fl.fields); e != nil {
		e.Debugf(format, args...)
	}
}

func (fl *FieldLogger) Infof(format string, args ...any) {
	if e := entry(fl.fields); e != nil {
		e.Infof(format, args...)
	}
}

func (fl *FieldLogger) Warnf(format string, args ...any) {
	if e := entry(fl.fields); e != nil {
		e.Warnf(format, args...)
	}
}

func (fl *FieldLogger) Errorf(format string, args ...any) {
	if e := entry(fl.fields); e != nil {
		e.Errorf(format, args...)
	}
}
