// Package log is the leveled logger used across mvtread. Call sites use the
// package level helpers (log.Debugf, log.Errorf, ...); the backend is logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields is an alias so callers do not need to import logrus directly.
type Fields = logrus.Fields

var std = logrus.New()

func init() {
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	std.SetLevel(logrus.InfoLevel)
}

// SetLevel sets the minimum level that is written. Valid values are
// "trace", "debug", "info", "warn", "error" and "fatal".
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// SetOutput redirects the log output.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// IsDebug reports whether debug messages are being written.
func IsDebug() bool { return std.IsLevelEnabled(logrus.DebugLevel) }

// WithFields returns an entry carrying the given structured fields.
func WithFields(fields Fields) *logrus.Entry { return std.WithFields(fields) }

func Debug(args ...interface{})                 { std.Debug(args...) }
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(args ...interface{})                  { std.Info(args...) }
func Infof(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(args ...interface{})                  { std.Warn(args...) }
func Warnf(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(args ...interface{})                 { std.Error(args...) }
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }
func Fatal(args ...interface{})                 { std.Fatal(args...) }
func Fatalf(format string, args ...interface{}) { std.Fatalf(format, args...) }
