// Package logger provides the leveled logging used by the simulation engine and the CLI.
package logger

import (
	"io"
	"log"
)

// Logger writes prefixed info, warning and error lines to a single writer
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger writing every level to w
func New(w io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		infoLogger:  log.New(w, "[LIFE-INFO] ", flags),
		warnLogger:  log.New(w, "[LIFE-WARN] ", flags),
		errorLogger: log.New(w, "[LIFE-ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLogger.Printf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warnLogger.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLogger.Printf(format, v...)
}

// Event logs an engine lifecycle event, e.g. Event("START", "epoch 3")
func (l *Logger) Event(kind string, details string) {
	l.infoLogger.Printf("[EVENT:%s] %s", kind, details)
}
