package main

import (
	"github.com/sirupsen/logrus"

	"github.com/kbsolver/cdclsat/internal/sat"
)

// logrusAdapter satisfies sat.FieldLogger over a *logrus.Entry. It exists
// because logrus.Entry.WithField returns a concrete *logrus.Entry rather
// than the FieldLogger interface, so it cannot satisfy sat.FieldLogger on
// its own: Go interface satisfaction requires the exact return type.
type logrusAdapter struct {
	entry *logrus.Entry
}

func newLogrusAdapter(l *logrus.Logger) sat.FieldLogger {
	return logrusAdapter{entry: logrus.NewEntry(l)}
}

func (a logrusAdapter) WithField(key string, value interface{}) sat.FieldLogger {
	return logrusAdapter{entry: a.entry.WithField(key, value)}
}

func (a logrusAdapter) Debugf(format string, args ...interface{}) {
	a.entry.Debugf(format, args...)
}

func (a logrusAdapter) Infof(format string, args ...interface{}) {
	a.entry.Infof(format, args...)
}
