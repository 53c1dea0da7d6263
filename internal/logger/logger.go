// Package logger provides levelled console and file logging for boxprov.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

var levelPrefixes = map[Level]string{
	LevelDebug:   "[DEBUG] ",
	LevelInfo:    "[INFO] ",
	LevelSuccess: "[DONE] ",
	LevelWarning: "[WARNING] ",
	LevelError:   "[ERROR] ",
}

// Logger writes prefixed log lines per severity. Debug lines are dropped unless debug is set.
type Logger struct {
	loggers map[Level]*log.Logger
	debug   bool
	logFile *os.File
}

// New creates a Logger writing to stderr.
func New(debug bool) *Logger {
	return NewWithWriter(debug, os.Stderr)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(debug bool, w io.Writer) *Logger {
	flags := log.Ldate | log.Ltime
	loggers := make(map[Level]*log.Logger, len(levelPrefixes))
	for level, prefix := range levelPrefixes {
		loggers[level] = log.New(w, prefix, flags)
	}
	return &Logger{loggers: loggers, debug: debug}
}

// NewWithFile creates a Logger that writes to both stderr and the given file.
func NewWithFile(debug bool, logFilePath string) (*Logger, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	l := NewWithWriter(debug, io.MultiWriter(os.Stderr, logFile))
	l.logFile = logFile
	return l, nil
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// DebugEnabled reports whether debug lines are written.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

func (l *Logger) println(level Level, msg string) {
	if level == LevelDebug && !l.debug {
		return
	}
	l.loggers[level].Println(msg)
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if level == LevelDebug && !l.debug {
		return
	}
	l.loggers[level].Printf(format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.println(LevelInfo, msg) }

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...interface{}) { l.printf(LevelInfo, format, args...) }

// Success logs a success message.
func (l *Logger) Success(msg string) { l.println(LevelSuccess, msg) }

// Successf logs a formatted success message.
func (l *Logger) Successf(format string, args ...interface{}) { l.printf(LevelSuccess, format, args...) }

// Warning logs a warning message.
func (l *Logger) Warning(msg string) { l.println(LevelWarning, msg) }

// Warningf logs a formatted warning message.
func (l *Logger) Warningf(format string, args ...interface{}) { l.printf(LevelWarning, format, args...) }

// Error logs an error message.
func (l *Logger) Error(msg string) { l.println(LevelError, msg) }

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) { l.printf(LevelError, format, args...) }

// Debug logs a debug message.
func (l *Logger) Debug(msg string) { l.println(LevelDebug, msg) }

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) { l.printf(LevelDebug, format, args...) }

// Step logs a banner for a numbered workflow step.
func (l *Logger) Step(stepNum int, description string) {
	l.Info("")
	l.Info("=========================================")
	l.Infof("Step %d: %s", stepNum, description)
	l.Info("=========================================")
}

// GetTimestamp returns a timestamp string in the format YYYYMMDD-HHMMSS.
func GetTimestamp() string {
	return time.Now().Format("20060102-150405")
}
