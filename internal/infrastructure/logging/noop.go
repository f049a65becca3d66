package logging

import (
	"context"

	"github.com/rajshekhar/folio/internal/ports"
)

// NoOpLogger discards entries but keeps the fields attached through With.
type NoOpLogger struct {
	fields []interface{}
}

// NewNoOpLogger returns a ports.Logger that discards all log entries.
func NewNoOpLogger() ports.Logger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) Debug(context.Context, string, ...interface{}) {}
func (n *NoOpLogger) Info(context.Context, string, ...interface{})  {}
func (n *NoOpLogger) Warn(context.Context, string, ...interface{})  {}
func (n *NoOpLogger) Error(context.Context, string, ...interface{}) {}

// With returns a derived logger. Pairs merge like Logger.With: later values
// win and malformed pairs are dropped.
func (n *NoOpLogger) With(fields ...interface{}) ports.Logger {
	var base []interface{}
	if n != nil {
		base = n.fields
	}
	merged := mergeFields(base, fields)
	next := make([]interface{}, 0, len(merged)*2)
	for _, f := range merged {
		next = append(next, f.key, f.value)
	}
	return &NoOpLogger{fields: next}
}

// Fields returns the persistent key/value pairs in first-seen order.
func (n *NoOpLogger) Fields() []interface{} {
	if n == nil {
		return nil
	}
	return append([]interface{}(nil), n.fields...)
}

var _ ports.Logger = (*NoOpLogger)(nil)
