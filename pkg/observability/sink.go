package observability

import (
	"sync"
)

// EventKind classifies events emitted while filling, serializing or
// dispatching callbacks on a schema tree.
type EventKind string

const (
	EventSerialize         EventKind = "serialize"
	EventFill              EventKind = "fill"
	EventCallbackInvoked   EventKind = "callback.invoked"
	EventCallbackMissing   EventKind = "callback.missing"
	EventFieldNotFound     EventKind = "field.not_found"
	EventRepeaterNotFound  EventKind = "repeater.not_found"
	EventRepeaterItemEmpty EventKind = "repeater.item_not_found"
	EventPredicateFailed   EventKind = "predicate.failed"
)

// Event carries the details of a single observation. Attrs holds optional
// structured values (changed field value, data snapshot sizes, errors).
type Event struct {
	Kind     EventKind
	Schema   string
	Field    string
	Repeater string
	Index    int
	Message  string
	Err      error
	Attrs    map[string]any
}

// Sink receives events. Implementations must not retain the Attrs map past
// the call unless they copy it.
type Sink interface {
	Record(event Event)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(event Event)

// Record delegates to the underlying function.
func (fn SinkFunc) Record(event Event) {
	fn(event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Record(Event) {}

// Multi fans events out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	switch len(filtered) {
	case 0:
		return NopSink{}
	case 1:
		return filtered[0]
	}
	return multiSink(filtered)
}

type multiSink []Sink

func (m multiSink) Record(event Event) {
	for _, sink := range m {
		sink.Record(event)
	}
}

// Recorder keeps events in memory. Useful in tests and for debugging
// endpoints that echo what happened during a request.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in arrival order.
func (r *Recorder) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Kind)
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
