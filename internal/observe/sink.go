// Package observe provides the structured event sink the pipeline reports
// progress to. Components call the sink at defined points (extraction
// hits/misses, resolver stage transitions, enrichment batch sizes); whether
// anything listens never changes pipeline behavior.
package observe

import "github.com/sirupsen/logrus"

// Fields carries structured event attributes.
type Fields map[string]interface{}

// Sink receives pipeline progress events.
type Sink interface {
	Event(name string, fields Fields)
}

// NopSink discards all events. Components fall back to it when no sink is
// injected.
type NopSink struct{}

// Event implements Sink.
func (NopSink) Event(string, Fields) {}

// LogrusSink forwards events to a logrus logger as structured info entries.
type LogrusSink struct {
	logger *logrus.Logger
}

// NewLogrusSink creates a sink writing to the given logger.
func NewLogrusSink(logger *logrus.Logger) *LogrusSink {
	return &LogrusSink{logger: logger}
}

// Event implements Sink.
func (s *LogrusSink) Event(name string, fields Fields) {
	s.logger.WithFields(logrus.Fields(fields)).Info(name)
}

// OrNop returns sink, or a NopSink when sink is nil.
func OrNop(sink Sink) Sink {
	if sink == nil {
		return NopSink{}
	}
	return sink
}
