// Package logging defines the structured logging abstraction used across
// the extraction pipeline, with a logrus-backed adapter and a capturing
// mock for tests.
package logging

// Field is one key-value pair of structured log context.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the logging interface the rest of the codebase depends on.
// The With* methods return derived loggers; they never mutate the
// receiver, so a logger can be shared across goroutines.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a derived logger with an error attached.
	WithError(err error) Logger
	// WithField returns a derived logger with one extra field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a derived logger with extra fields.
	WithFields(fields ...Field) Logger

	// Fatal logs at fatal level and exits the program.
	Fatal(msg string, fields ...Field)
	// Fatalf logs a formatted fatal message and exits the program.
	Fatalf(msg string, args ...interface{})
}
