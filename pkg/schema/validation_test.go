package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectValidation(t *testing.T) {
	t.Parallel()

	s := New("signup").Schema(
		NewSection("Account").Schema(
			NewTextInput("username").Required(true),
			NewTextInput("age").Required(true).Rules("numeric"),
			NewTextInput("nickname").Rules("nullable|string|max:20"),
			NewTextInput("email").Required(true).Rules("required", "email").ValidationMessage("email", "Give us a real address"),
		),
		NewTabs("t").Tab(NewTab("Web").Schema(
			NewTextInput("website").URL().Prefix("https://"),
			NewTextInput("handle").Prefix("@"),
		)),
		NewRepeater("links").Required(true).MaxItems(3).Schema(
			NewTextInput("href").Label("Link").Required(true).Rules("url").Prefix("https://"),
		),
		NewAction("save"),
	)

	got := s.CollectValidation()
	want := Validation{
		Rules: map[string][]string{
			"username":     {"required"},
			"age":          {"required", "numeric"},
			"nickname":     {"nullable", "string", "max:20"},
			"email":        {"required", "email"},
			"website":      {"url"},
			"links":        {"required", "array", "max:3"},
			"links.*.href": {"required", "url"},
		},
		Messages: map[string]string{
			"email.email": "Give us a real address",
		},
		Attributes: map[string]string{
			"username":     "Username",
			"age":          "Age",
			"nickname":     "Nickname",
			"email":        "Email",
			"website":      "Website",
			"handle":       "Handle",
			"links":        "Links",
			"links.*.href": "Link",
		},
		Prefixes: map[string]string{
			"website":      "https://",
			"links.*.href": "https://",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectValidationLastWriterWins(t *testing.T) {
	t.Parallel()

	got := CollectValidation([]Node{
		NewTextInput("code").Rules("string"),
		NewTextInput("code").Rules("integer"),
	})
	if diff := cmp.Diff([]string{"integer"}, got.Rules["code"]); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredIsPrependedOnce(t *testing.T) {
	t.Parallel()

	field := NewTextInput("qty").Rules("numeric|required").Required(true)
	if diff := cmp.Diff([]string{"required", "numeric"}, field.ValidationRules().Rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	field = NewTextInput("qty").Rules("numeric", "required", "min:1").Required(true)
	if diff := cmp.Diff([]string{"required", "numeric", "min:1"}, field.Props()["rules"]); diff != "" {
		t.Fatalf("props rules mismatch (-want +got):\n%s", diff)
	}

	field = NewTextInput("qty").Rules("numeric|required")
	if diff := cmp.Diff([]string{"numeric", "required"}, field.ValidationRules().Rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	field = NewTextInput("qty").Numeric().Required(true)
	if diff := cmp.Diff([]string{"required", "numeric"}, field.ValidationRules().Rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleName(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"min:3":       "min",
		" required ":  "required",
		"regex:/a:b/": "regex",
	} {
		if got := RuleName(in); got != want {
			t.Fatalf("RuleName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidationForSkipsHiddenNodes(t *testing.T) {
	t.Parallel()

	notCompany := func(ctx *EvaluationContext) bool { return ctx.Data["kind"] != "company" }
	s := New("customer").Schema(
		NewSelect("kind").Required(true),
		NewSection("Company").HiddenFunc(notCompany).Schema(
			NewTextInput("vat").Required(true),
		),
		NewTextInput("phone").Required(true).HiddenFunc(func(ctx *EvaluationContext) bool {
			return ctx.Data["contact"] == "email"
		}),
	)

	person := s.ValidationFor(map[string]any{"kind": "person", "contact": "email"}, nil)
	if diff := cmp.Diff(map[string][]string{"kind": {"required"}}, person.Rules); diff != "" {
		t.Fatalf("person rules mismatch (-want +got):\n%s", diff)
	}

	company := s.ValidationFor(map[string]any{"kind": "company"}, nil)
	want := map[string][]string{"kind": {"required"}, "vat": {"required"}, "phone": {"required"}}
	if diff := cmp.Diff(want, company.Rules); diff != "" {
		t.Fatalf("company rules mismatch (-want +got):\n%s", diff)
	}

	if got := len(s.CollectValidation().Rules); got != 3 {
		t.Fatalf("CollectValidation ignores visibility, got %d keys", got)
	}
}
