package observability

import (
	"context"
	"log/slog"
)

// SlogSink writes events to a slog.Logger. Lookups that miss (unknown field,
// repeater or index) and predicate failures are logged at warn level, the
// rest at debug.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink wraps logger. A nil logger falls back to slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Record(event Event) {
	if s == nil || s.logger == nil {
		return
	}
	attrs := make([]slog.Attr, 0, 6+len(event.Attrs))
	attrs = append(attrs, slog.String("kind", string(event.Kind)))
	if event.Schema != "" {
		attrs = append(attrs, slog.String("schema", event.Schema))
	}
	if event.Field != "" {
		attrs = append(attrs, slog.String("field", event.Field))
	}
	if event.Repeater != "" {
		attrs = append(attrs, slog.String("repeater", event.Repeater), slog.Int("index", event.Index))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("err", event.Err))
	}
	for key, value := range event.Attrs {
		attrs = append(attrs, slog.Any(key, value))
	}

	msg := event.Message
	if msg == "" {
		msg = "formschema: " + string(event.Kind)
	}
	s.logger.LogAttrs(context.Background(), levelFor(event.Kind), msg, attrs...)
}

func levelFor(kind EventKind) slog.Level {
	switch kind {
	case EventFieldNotFound, EventRepeaterNotFound, EventRepeaterItemEmpty, EventPredicateFailed:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}
