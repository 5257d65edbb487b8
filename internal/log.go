package internal

import (
	"log"
	"os"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging with a fixed component tag, so pipeline
// internals show up as e.g. "[Cascade] narrowed to 412 rows".
type Logger struct {
	level LogLevel
	tag   string
}

// NewLogger creates a new logger with the specified level and component tag
func NewLogger(level LogLevel, tag string) *Logger {
	return &Logger{level: level, tag: tag}
}

// NewComponentLogger creates a logger for a component, reading the level
// from the LOG_LEVEL environment variable (default INFO)
func NewComponentLogger(tag string) *Logger {
	return &Logger{level: LevelFromEnv(), tag: tag}
}

// LevelFromEnv resolves the LOG_LEVEL environment variable
func LevelFromEnv() LogLevel {
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		return LogLevelError
	case "WARN":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		l.printf("ERROR", format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		l.printf("WARN", format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.printf("INFO", format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.printf("DEBUG", format, args...)
	}
}

func (l *Logger) printf(level, format string, args ...interface{}) {
	if l.tag != "" {
		log.Printf("[%s] %s "+format, append([]interface{}{l.tag, level}, args...)...)
		return
	}
	log.Printf("[%s] "+format, append([]interface{}{level}, args...)...)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}
