package loader

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalYAMLLoadsBack(t *testing.T) {
	t.Parallel()

	store := loadTestdata(t)
	order, ok := store.Definition("order")
	require.True(t, ok)

	out, err := MarshalYAML(map[string]Definition{"order": order})
	require.NoError(t, err)

	var doc struct {
		Schemas map[string]map[string]any `yaml:"schemas"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Contains(t, doc.Schemas, "order")
	require.NotContains(t, doc.Schemas["order"], "source")
	require.NotContains(t, doc.Schemas["order"], "name")
	require.Equal(t, "orders", doc.Schemas["order"]["resource"])

	reloaded, err := LoadFS(fstest.MapFS{"out.yaml": {Data: out}},
		WithCallbacks(NewCallbackRegistry().Register("order.line_total", lineTotal)))
	require.NoError(t, err)

	got, ok := reloaded.Definition("order")
	require.True(t, ok)
	if diff := cmp.Diff(rulesByName(order.Components), rulesByName(got.Components)); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	_, err = reloaded.Build("order")
	require.NoError(t, err)
}

func rulesByName(defs []NodeDef) map[string][]string {
	out := map[string][]string{}
	var walk func([]NodeDef)
	walk = func(defs []NodeDef) {
		for _, def := range defs {
			if def.Name != "" {
				out[def.Name] = def.Rules
			}
			walk(def.Schema)
			walk(def.Start)
			walk(def.End)
			walk(def.Tabs)
		}
	}
	walk(defs)
	return out
}
