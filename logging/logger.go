// Package logging provides the structured logger used across taskflow.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Field represents a structured logging field
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger defines the interface for logging within taskflow
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	With(fields ...Field) Logger
}

// stdLogger writes one line per event through a stdlib *log.Logger
type stdLogger struct {
	out    *log.Logger
	fields []Field
}

// New creates a logger writing to w with timestamps.
func New(w io.Writer) Logger {
	return &stdLogger{out: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
}

// Info logs an informational message with the provided fields
func (l *stdLogger) Info(msg string, fields ...Field) {
	l.out.Println(l.format("INFO", msg, nil, fields))
}

// Error logs an error message with the provided error and fields
func (l *stdLogger) Error(msg string, err error, fields ...Field) {
	l.out.Println(l.format("ERROR", msg, err, fields))
}

// With returns a new logger instance with the provided fields added
func (l *stdLogger) With(fields ...Field) Logger {
	combined := make([]Field, 0, len(l.fields)+len(fields))
	combined = append(combined, l.fields...)
	combined = append(combined, fields...)
	return &stdLogger{out: l.out, fields: combined}
}

func (l *stdLogger) format(level, msg string, err error, fields []Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)
	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}
	for _, f := range l.fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Info(string, ...Field)         {}
func (nopLogger) Error(string, error, ...Field) {}
func (n nopLogger) With(...Field) Logger        { return n }
