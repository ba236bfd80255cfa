package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents the logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Config controls logger construction.
type Config struct {
	// Filename is the log file. Empty, "-" or "stdout" logs to stdout.
	Filename string

	// MaxSize is the max size in MB before rotation
	MaxSize int

	// MaxBackups is the number of rotated files to keep
	MaxBackups int

	// MaxAge is the max age in days of a rotated file
	MaxAge int

	// Level is the minimum logging level
	Level Level

	// Output allows a custom writer (for testing)
	Output io.Writer
}

// DefaultConfig returns sensible defaults for a file-backed logger.
func DefaultConfig(filename string) Config {
	return Config{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      INFO,
	}
}

// Logger provides leveled logging with structured fields and file rotation.
type Logger struct {
	logger *log.Logger
	level  Level
	fields map[string]any

	// Writer is the destination in use (stdout, rotator or custom).
	Writer io.Writer
}

// NewWithConfig creates a logger from an explicit configuration.
func NewWithConfig(cfg Config) (*Logger, error) {
	var writer io.Writer

	switch {
	case cfg.Output != nil:
		writer = cfg.Output
	case cfg.Filename == "" || cfg.Filename == "-" || cfg.Filename == "stdout":
		writer = os.Stdout
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
			LocalTime:  true,
		}
	}

	return &Logger{
		logger: log.New(writer, "", 0),
		level:  cfg.Level,
		fields: make(map[string]any),
		Writer: writer,
	}, nil
}

// New creates a logger with default rotation settings, falling back to
// stdout when the log file cannot be created.
func New(logfile string) *Logger {
	l, err := NewWithConfig(DefaultConfig(logfile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create log file %s: %v. Falling back to stdout.\n", logfile, err)
		l, _ = NewWithConfig(Config{Output: os.Stdout, Level: INFO})
	}
	return l
}

// SetLevel sets the minimum logging level.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// WithField returns a copy of the logger carrying an extra field.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{logger: l.logger, level: l.level, fields: fields, Writer: l.Writer}
}

// WithError returns a copy of the logger carrying the error as a field.
func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(ERROR, msg, args...) }

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}

	message := fmt.Sprintf(msg, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	entry := fmt.Sprintf("[%s] %s: %s", timestamp, level.String(), message)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fields := make([]string, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, fmt.Sprintf("%s=%s", k, formatValue(l.fields[k])))
		}
		entry += " | " + strings.Join(fields, " | ")
	}

	l.logger.Println(entry)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Global default logger

var defaultLogger *Logger

func init() {
	defaultLogger, _ = NewWithConfig(Config{Output: os.Stdout, Level: INFO})
}

// SetDefault sets the default global logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
