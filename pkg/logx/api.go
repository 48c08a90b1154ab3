package logx

// defaultLogger is the global logger instance
var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger(LoadFromEnv())
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the default logger
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// SetLevel sets the log level for the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// Debug logs a debug level message on the default logger
func Debug(msg string) { defaultLogger.Debug(msg) }

// Info logs an info level message on the default logger
func Info(msg string) { defaultLogger.Info(msg) }

// Warn logs a warning level message on the default logger
func Warn(msg string) { defaultLogger.Warn(msg) }

// Error logs an error level message on the default logger
func Error(msg string) { defaultLogger.Error(msg) }

// Debugf logs a formatted debug message on the default logger
func Debugf(format string, args ...any) { defaultLogger.Debugf(format, args...) }

// Infof logs a formatted info message on the default logger
func Infof(format string, args ...any) { defaultLogger.Infof(format, args...) }

// Warnf logs a formatted warning message on the default logger
func Warnf(format string, args ...any) { defaultLogger.Warnf(format, args...) }

// Errorf logs a formatted error message on the default logger
func Errorf(format string, args ...any) { defaultLogger.Errorf(format, args...) }

// WithField creates a new logger entry with a single field
func WithField(key string, value any) *Entry {
	return defaultLogger.WithField(key, value)
}

// WithFields creates a new logger entry with fields
func WithFields(fields Fields) *Entry {
	return defaultLogger.WithFields(fields)
}

// WithError creates a new logger entry with an error field
func WithError(err error) *Entry {
	return defaultLogger.WithError(err)
}
