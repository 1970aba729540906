// Package log provides categorized, leveled logging for alphawork.
// Call sites tag every record with a category so operators can filter
// storage noise from service-level events. The backend is logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Category labels the subsystem a record originates from.
type Category string

// Known categories.
const (
	CatDB      Category = "db"
	CatService Category = "service"
	CatAudit   Category = "audit"
	CatHTTP    Category = "http"
	CatConfig  Category = "config"
	CatTracing Category = "tracing"
)

var logger = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel adjusts the global log level. Unknown names fall back to info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debug logs a debug record with alternating key/value pairs.
func Debug(cat Category, msg string, kv ...any) {
	entry(cat, kv).Debug(msg)
}

// Info logs an info record.
func Info(cat Category, msg string, kv ...any) {
	entry(cat, kv).Info(msg)
}

// Warn logs a warning record.
func Warn(cat Category, msg string, kv ...any) {
	entry(cat, kv).Warn(msg)
}

// Error logs an error record without an attached error value.
func Error(cat Category, msg string, kv ...any) {
	entry(cat, kv).Error(msg)
}

// ErrorErr logs an error record with the error attached as a field.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	entry(cat, kv).WithError(err).Error(msg)
}

func entry(cat Category, kv []any) *logrus.Entry {
	fields := logrus.Fields{"category": string(cat)}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	return logger.WithFields(fields)
}
