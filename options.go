package chash

import "github.com/sirupsen/logrus"

// Observer is notified synchronously after every completed resize
type Observer interface {
	ObserveResize(oldCapacity, newCapacity, size int)
}

// Option configures a Table in New
type Option func(*Table)

// WithLogger sets the logger resize events are written to. A nil logger
// leaves the default logrus standard logger in place.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Table) {
		if log != nil {
			t.log = log
		}
	}
}

// WithObserver registers o to be told about resizes
func WithObserver(o Observer) Option {
	return func(t *Table) {
		if o != nil {
			t.observer = o
		}
	}
}
