package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink counts events per kind and schema.
type PrometheusSink struct {
	events *prometheus.CounterVec
}

// NewPrometheusSink creates the counter and registers it with reg. A nil
// registerer skips registration, leaving the caller to collect the sink.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formschema",
		Name:      "events_total",
		Help:      "Events recorded while filling, serializing and dispatching schema callbacks.",
	}, []string{"kind", "schema"})

	if reg != nil {
		if err := reg.Register(counter); err != nil {
			return nil, err
		}
	}
	return &PrometheusSink{events: counter}, nil
}

func (s *PrometheusSink) Record(event Event) {
	if s == nil || s.events == nil {
		return
	}
	s.events.WithLabelValues(string(event.Kind), event.Schema).Inc()
}

// Describe implements prometheus.Collector.
func (s *PrometheusSink) Describe(ch chan<- *prometheus.Desc) {
	s.events.Describe(ch)
}

// Collect implements prometheus.Collector.
func (s *PrometheusSink) Collect(ch chan<- prometheus.Metric) {
	s.events.Collect(ch)
}
