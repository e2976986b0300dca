package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema/components/timezones"
	httpadapter "github.com/goliatone/go-formschema/pkg/adapters/http"
	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/observability"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
)

const contactYAML = `
schemas:
  contact:
    label: Contact
    components:
      - type: text_input
        name: email
        inputType: email
        required: true
      - type: repeater
        name: lines
        schema:
          - type: text_input
            name: qty
            inputType: number
            afterStateUpdated: double
`

func newServer(t *testing.T, opts ...httpadapter.Option) *httptest.Server {
	t.Helper()

	callbacks := loader.NewCallbackRegistry().Register("double", func(u *schema.StateUpdate) {
		qty, _ := u.Value.(float64)
		u.Set("double", qty*2)
	})
	store, err := loader.LoadFS(fstest.MapFS{"contact.yaml": {Data: []byte(contactYAML)}}, loader.WithCallbacks(callbacks))
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	sink, err := observability.NewPrometheusSink(registry)
	require.NoError(t, err)

	orch := orchestrator.New(orchestrator.WithStore(store), orchestrator.WithSink(sink))
	opts = append([]httpadapter.Option{httpadapter.WithMetrics(registry)}, opts...)
	srv := httptest.NewServer(httpadapter.NewHandler(orch, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestListAndGetSchemas(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/schemas", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []any{"contact"}, body["schemas"])

	resp, body = do(t, http.MethodGet, srv.URL+"/schemas/contact", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "contact", body["name"])
	require.Len(t, body["components"], 2)

	resp, body = do(t, http.MethodGet, srv.URL+"/schemas/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, body["error"], "schema not found")
}

func TestPropsRunsRepeaterCallback(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	resp, body := do(t, http.MethodPost, srv.URL+"/schemas/contact/props", `{
		"data": {"email": "a@b.co", "lines": [{"qty": 4}]},
		"repeater": {"repeater": "lines", "index": 0, "field": "qty"}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	line := data["lines"].([]any)[0].(map[string]any)
	require.Equal(t, 8.0, line["double"])
	require.Equal(t, map[string]any{"lines": []any{map[string]any{"qty": 4.0, "double": 8.0}}}, body["patch"])

	props := body["props"].(map[string]any)
	require.Equal(t, "Contact", props["label"])

	resp, _ = do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateStatus(t *testing.T) {
	t.Parallel()

	srv := newServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/schemas/contact/validate", `{"data": {"email": "a@b.co"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["valid"])

	resp, body = do(t, http.MethodPost, srv.URL+"/schemas/contact/validate", `{"data": {"email": "nope"}}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, false, body["valid"])
	require.Contains(t, body["errors"], "email")

	resp, _ = do(t, http.MethodPost, srv.URL+"/schemas/contact/validate", `{"dta": {}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRules(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	resp, body := do(t, http.MethodGet, srv.URL+"/schemas/contact/rules", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rules := body["rules"].(map[string]any)
	require.Equal(t, []any{"required", "email"}, rules["email"])
	require.Equal(t, []any{"array"}, rules["lines"])
}

func TestCORS(t *testing.T) {
	t.Parallel()

	srv := newServer(t, httpadapter.WithCORSOrigins("https://app.example"))

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/schemas", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestOptionSource(t *testing.T) {
	t.Parallel()

	srv := newServer(t, httpadapter.WithOptionSource("timezones",
		timezones.Handler(timezones.WithZones([]string{"Europe/Paris", "UTC"}))))

	resp, body := do(t, http.MethodGet, srv.URL+"/options/timezones?q=paris", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []any{map[string]any{"value": "Europe/Paris", "label": "Europe / Paris"}}, body["options"])

	resp, _ = do(t, http.MethodGet, srv.URL+"/options/unknown", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMapErrors(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	resp, body := do(t, http.MethodPost, srv.URL+"/schemas/contact/errors",
		`{"errors":{"body.email":["taken"],"lines[2].qty":["too many"],"other":["boom"]}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, map[string]any{
		"email":       []any{"taken"},
		"lines.2.qty": []any{"too many"},
	}, body["fields"])
	require.Equal(t, []any{"boom"}, body["form"])
}
