package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules", "contact", "--dir", "testdata/schemas")
	require.NoError(t, err)

	var rules struct {
		Rules map[string][]string `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Equal(t, []string{"required", "email"}, rules.Rules["email"])
	require.Contains(t, rules.Rules, "company")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "contact", "--dir", "testdata/schemas", "--data", "testdata/invalid.json")
	require.ErrorIs(t, err, errInvalid)
	require.Contains(t, out, "contact: 2 field(s) failed")
	require.Contains(t, out, "  company\n")

	out, err = run(t, "validate", "contact", "--dir", "testdata/schemas", "--data", "testdata/valid.json")
	require.NoError(t, err)
	require.Contains(t, out, "contact: data is valid")
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", "contact", "--dir", "testdata/schemas", "--data", "testdata/valid.json")
	require.NoError(t, err)

	var result struct {
		Props map[string]any `json:"props"`
		Data  map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, "Contact", result.Props["label"])
	require.Equal(t, "person", result.Data["kind"])
}

func TestDocsCommandPlain(t *testing.T) {
	out, err := run(t, "docs", "--plain", "visibility")
	require.NoError(t, err)
	require.Contains(t, out, "# Documentation search: visibility")
}

func TestUnknownSchema(t *testing.T) {
	_, err := run(t, "rules", "missing", "--dir", "testdata/schemas")
	require.ErrorContains(t, err, "schema not found")
}

func TestImportJSONSchemaCommand(t *testing.T) {
	out, err := run(t, "import", "testdata/terms.schema.json", "--jsonschema", "terms")
	require.NoError(t, err)
	require.Contains(t, out, "schemas:")
	require.Contains(t, out, "terms:")
	require.Contains(t, out, "label: Terms")
	require.NotContains(t, out, "source:")
}
