package schema

import (
	"github.com/goliatone/go-formschema/pkg/i18n"
	"github.com/goliatone/go-formschema/pkg/observability"
	"github.com/goliatone/go-formschema/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-formschema/pkg/visibility/expr"
)

var defaultEvaluator visibility.Evaluator = visibilityexpr.New()

// EvaluationContext is the shared context pushed into every node before
// serialization. Data aliases the map passed to ToProps.
type EvaluationContext struct {
	Schema     string
	Data       map[string]any
	Record     any
	Model      string
	Resource   string
	Locale     string
	Extras     map[string]any
	Evaluator  visibility.Evaluator
	Translator i18n.Translator
	Sink       observability.Sink
}

// Get reads a dotted path from Data.
func (c *EvaluationContext) Get(path string) any {
	if c == nil {
		return nil
	}
	value, _ := lookupPath(c.Data, path)
	return value
}

// Translate resolves key with the configured translator, falling back to
// fallback.
func (c *EvaluationContext) Translate(key, fallback string) string {
	if c == nil {
		return i18n.Translate(nil, "", key, fallback)
	}
	return i18n.Translate(c.Translator, c.Locale, key, fallback)
}

func (c *EvaluationContext) evaluator() visibility.Evaluator {
	if c == nil || c.Evaluator == nil {
		return defaultEvaluator
	}
	return c.Evaluator
}

func (c *EvaluationContext) sink() observability.Sink {
	if c == nil || c.Sink == nil {
		return observability.NopSink{}
	}
	return c.Sink
}

func (c *EvaluationContext) visibility() visibility.Context {
	if c == nil {
		return visibility.Context{}
	}
	return visibility.Context{Values: c.Data, Record: c.Record, Extras: c.Extras}
}
