package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

const ordersAPI = `
openapi: 3.0.3
info:
  title: Orders
  version: "1.0"
paths:
  /orders:
    post:
      operationId: createOrder
      summary: New order
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Order'
      responses:
        "201":
          description: created
  /ping:
    get:
      responses:
        "200":
          description: ok
  /users/{id}:
    put:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "204":
          description: updated
components:
  schemas:
    Order:
      type: object
      required: [email, items]
      properties:
        id:
          type: integer
          readOnly: true
        email:
          type: string
          format: email
          title: Contact email
        channel:
          type: string
          enum: [web, phone]
        notes:
          type: string
          maxLength: 1000
          x-formschema:
            placeholder: Anything else?
            order: 9
        gift:
          type: boolean
          default: false
        address:
          type: object
          properties:
            city:
              type: string
              minLength: 2
        items:
          type: array
          minItems: 1
          items:
            type: object
            required: [qty]
            properties:
              sku:
                type: string
                pattern: '^[A-Z]+(-[0-9]+)?$'
              qty:
                type: integer
                minimum: 1
        tags:
          type: array
          items:
            type: string
            enum: [rush, fragile]
`

func TestImportOperations(t *testing.T) {
	t.Parallel()

	defs, err := Import(context.Background(), []byte(ordersAPI))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	users, ok := defs["put_users_id"]
	require.True(t, ok)
	require.Equal(t, "PUT /users/{id}", users.Source)
	require.Equal(t, []loader.NodeDef{{
		Type:  schema.KindTextInput,
		Name:  "name",
		Rules: []string{"string"},
	}}, users.Components)

	order := defs["createOrder"]
	require.Equal(t, "New order", order.Label)
	require.Equal(t, "orders", order.Resource)

	var names []string
	for _, def := range order.Components {
		names = append(names, def.Name)
	}
	// sorted by name, readOnly dropped, ordered extension last
	require.Equal(t, []string{"Address", "channel", "email", "gift", "items", "tags", "notes"}, names)
}

func TestImportGolden(t *testing.T) {
	t.Parallel()

	defs, err := Import(testsupport.Context(), []byte(ordersAPI), WithOperations("put_users_id"))
	require.NoError(t, err)
	testsupport.AssertJSONGolden(t, "testdata/put_users_id.golden.json", defs["put_users_id"])
}

func TestImportPropertyMapping(t *testing.T) {
	t.Parallel()

	defs, err := Import(context.Background(), []byte(ordersAPI), WithOperations("createOrder"))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	byName := map[string]loader.NodeDef{}
	for _, def := range defs["createOrder"].Components {
		byName[def.Name] = def
	}

	tests := []struct {
		name string
		want loader.NodeDef
	}{
		{"email", loader.NodeDef{Type: schema.KindTextInput, Name: "email", Label: "Contact email", InputType: "email", Required: true, Rules: []string{"string"}}},
		{"channel", loader.NodeDef{Type: schema.KindSelect, Name: "channel", Rules: []string{"in:web,phone"}, Options: []any{
			map[string]any{"value": "web", "label": "Web"},
			map[string]any{"value": "phone", "label": "Phone"},
		}}},
		{"notes", loader.NodeDef{Type: schema.KindTextarea, Name: "notes", Placeholder: "Anything else?", Rules: []string{"string", "max:1000"}}},
		{"gift", loader.NodeDef{Type: schema.KindToggle, Name: "gift", Default: false}},
		{"tags", loader.NodeDef{Type: schema.KindSelect, Name: "tags", Multiple: true, Rules: []string{"array"}, Options: []any{
			map[string]any{"value": "rush", "label": "Rush"},
			map[string]any{"value": "fragile", "label": "Fragile"},
		}}},
		{"Address", loader.NodeDef{Type: schema.KindSection, Name: "Address", Schema: []loader.NodeDef{
			{Type: schema.KindTextInput, Name: "address.city", Rules: []string{"string", "min:2"}},
		}}},
		{"items", loader.NodeDef{Type: schema.KindRepeater, Name: "items", Required: true, MinItems: 1, Schema: []loader.NodeDef{
			{Type: schema.KindTextInput, Name: "qty", InputType: "number", Required: true, Rules: []string{"integer", "min:1"}},
			{Type: schema.KindTextInput, Name: "sku", Rules: []string{"string", "regex:/^[A-Z]+(-[0-9]+)?$/"}},
		}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := byName[tc.name]
			require.True(t, ok)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("node mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportedDefinitionBuildsAndValidates(t *testing.T) {
	t.Parallel()

	defs, err := Import(context.Background(), []byte(ordersAPI))
	require.NoError(t, err)

	store := loader.NewStore()
	require.NoError(t, store.Put(defs["createOrder"]))
	require.Error(t, store.Put(defs["createOrder"]))

	s, err := store.Build("createOrder")
	require.NoError(t, err)

	rules := s.CollectValidation()
	require.Equal(t, []string{"required", "array", "min:1"}, rules.Rules["items"])
	require.Equal(t, []string{"required", "numeric", "integer", "min:1"}, rules.Rules["items.*.qty"])
	require.Equal(t, []string{"required", "email", "string"}, rules.Rules["email"])
	require.Equal(t, []string{"string", "regex:/^[A-Z]+(-[0-9]+)?$/"}, rules.Rules["items.*.sku"])
	require.Equal(t, "Contact email", rules.Attributes["email"])
}

func TestImportErrors(t *testing.T) {
	t.Parallel()

	_, err := Import(context.Background(), nil)
	require.Error(t, err)

	_, err = Import(context.Background(), []byte("openapi: [broken"))
	require.ErrorContains(t, err, "openapi: load document")

	_, err = Import(context.Background(), []byte(ordersAPI), WithOperations("missing"))
	require.True(t, errors.Is(err, ErrNoForms))
}

func TestFetch(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"specs/orders.yaml": {Data: []byte(ordersAPI)}}
	raw, err := Fetch(context.Background(), "specs/orders.yaml", FetchOptions{FileSystem: fsys})
	require.NoError(t, err)
	require.Equal(t, ordersAPI, string(raw))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(ordersAPI))
	}))
	defer server.Close()

	_, err = Fetch(context.Background(), server.URL+"/openapi.yaml", FetchOptions{})
	require.Error(t, err, "remote loading is disabled without a client")

	raw, err = Fetch(context.Background(), server.URL+"/openapi.yaml", FetchOptions{HTTPClient: server.Client()})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	_, err = Fetch(context.Background(), server.URL+"/missing", FetchOptions{HTTPClient: server.Client()})
	require.Error(t, err)
}
