package formschema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestOpenServesDirectory(t *testing.T) {
	t.Parallel()

	callbacks := formschema.NewCallbacks().Register("order.line_total", func(u *schema.StateUpdate) {
		price, _ := u.Get("price").(float64)
		qty, _ := u.Value.(float64)
		u.Set("total", price*qty)
	})
	orch, err := formschema.Open("pkg/loader/testdata", callbacks)
	require.NoError(t, err)
	require.Equal(t, []string{"order", "profile"}, orch.Schemas())

	data := map[string]any{"items": []any{map[string]any{"price": 2.5, "qty": 4.0}}}
	_, err = orch.Render(context.Background(), orchestrator.RenderRequest{
		Schema:   "order",
		Data:     data,
		Repeater: &schema.RepeaterChange{Repeater: "items", Index: 0, Field: "qty"},
	})
	require.NoError(t, err)
	require.Equal(t, 10.0, data["items"].([]any)[0].(map[string]any)["total"])
}

func TestOpenMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := formschema.Open("does-not-exist", nil)
	require.Error(t, err)
}

func TestNewBuildsInCode(t *testing.T) {
	t.Parallel()

	s := formschema.New("signup").Schema(
		schema.NewTextInput("email").Email().Required(true),
	)
	rules := s.CollectValidation()
	require.Equal(t, []string{"required", "email"}, rules.Rules["email"])
}
