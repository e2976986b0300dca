package schema

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formschema/pkg/i18n"
	"github.com/google/go-cmp/cmp"
)

func labels(t *testing.T, props Props, key string) []string {
	t.Helper()
	children, ok := props[key].([]Props)
	if !ok {
		t.Fatalf("expected %s to be []Props, got %T", key, props[key])
	}
	out := make([]string, 0, len(children))
	for _, child := range children {
		out = append(out, child["label"].(string))
	}
	return out
}

func TestSectionDefaults(t *testing.T) {
	t.Parallel()

	section := NewSection("Contact Details")
	if got := section.GetHeading(); got != "Contact Details" {
		t.Fatalf("heading = %q, want name", got)
	}
	if got := section.GetID(); got != "contact_details" {
		t.Fatalf("id = %q, want contact_details", got)
	}
	if section.IsCollapsible() || section.IsCollapsed() {
		t.Fatalf("expected section to be expanded and not collapsible by default")
	}
}

func TestSectionProps(t *testing.T) {
	t.Parallel()

	section := NewSection("Profile").
		Collapsible(true).
		Collapsed(true).
		Schema(NewTextInput("email").Label("Email"))

	props := section.Props()
	if props["heading"] != "Profile" || props["collapsible"] != true || props["collapsed"] != true {
		t.Fatalf("unexpected section props: %+v", props)
	}
	children := props["schema"].([]Props)
	if len(children) != 1 || children[0]["name"] != "email" {
		t.Fatalf("expected single email child, got %+v", children)
	}
	if _, ok := props["expandLabel"]; ok {
		t.Fatalf("expandLabel should only be emitted with a translator")
	}
}

func TestSectionClosuresAndIcon(t *testing.T) {
	t.Parallel()

	section := NewSection("test").
		HeadingFunc(func(*EvaluationContext) string { return "Dynamic Heading" }).
		DescriptionFunc(func(*EvaluationContext) string { return "Dynamic Description" }).
		Icon("heroicon-o-user")

	if got := section.GetHeading(); got != "Dynamic Heading" {
		t.Fatalf("heading = %q", got)
	}
	if got := section.GetDescription(); got != "Dynamic Description" {
		t.Fatalf("description = %q", got)
	}
	if got := section.GetIcon(); got != "heroicon-o-user" {
		t.Fatalf("icon = %q", got)
	}
}

func TestSectionIconMarkupIsSanitized(t *testing.T) {
	t.Parallel()

	section := NewSection("icons").Icon(`<svg viewBox="0 0 24 24" onload="alert(1)"><script>alert(1)</script><path d="M0 0h24"/></svg>`)
	got := section.GetIcon()
	if got == "" {
		t.Fatalf("expected sanitized svg to survive")
	}
	for _, bad := range []string{"onload", "<script", "alert"} {
		if strings.Contains(got, bad) {
			t.Fatalf("sanitized icon still contains %q: %s", bad, got)
		}
	}
}

func TestSectionTranslatedToggleLabels(t *testing.T) {
	t.Parallel()

	catalog := i18n.NewCatalog("en")
	catalog.Add("en", map[string]string{"section.expand": "Show", "section.collapse": "Hide"})

	section := NewSection("Profile")
	section.SetEvaluationContext(&EvaluationContext{Translator: catalog, Locale: "en"})

	props := section.Props()
	if props["expandLabel"] != "Show" || props["collapseLabel"] != "Hide" {
		t.Fatalf("unexpected toggle labels: %v / %v", props["expandLabel"], props["collapseLabel"])
	}
}

func TestGridColumns(t *testing.T) {
	t.Parallel()

	grid := NewGrid("test-grid")
	if got := grid.GetColumns().Value(); got != 1 {
		t.Fatalf("default columns = %v, want 1", got)
	}

	grid.Columns(2).Schema(NewTextInput("child").Label("Child Component"))
	props := grid.Props()
	if props["columns"] != 2 {
		t.Fatalf("columns = %v, want 2", props["columns"])
	}
	if diff := cmp.Diff([]string{"Child Component"}, labels(t, props, "schema")); diff != "" {
		t.Fatalf("schema labels mismatch (-want +got):\n%s", diff)
	}
}

func TestGridResponsiveColumns(t *testing.T) {
	t.Parallel()

	columns := map[string]int{"default": 1, "md": 3}
	props := NewGrid("").ResponsiveColumns(columns).Props()

	if props["name"] != "grid" {
		t.Fatalf("expected default grid name, got %v", props["name"])
	}
	if diff := cmp.Diff(columns, props["columns"]); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}

	columns["md"] = 9
	if got := props["columns"].(map[string]int)["md"]; got != 3 {
		t.Fatalf("serialized columns alias caller map, md = %d", got)
	}
}

func TestSplitDefaults(t *testing.T) {
	t.Parallel()

	split := NewSplit("test-split")
	props := split.Props()

	if split.GetFromBreakpoint() != "md" {
		t.Fatalf("fromBreakpoint = %q", split.GetFromBreakpoint())
	}
	if props["startColumnSpan"] != "md:col-span-6" || props["endColumnSpan"] != "md:col-span-6" {
		t.Fatalf("unexpected default spans: %v / %v", props["startColumnSpan"], props["endColumnSpan"])
	}
}

func TestSplitSchemasAndAliases(t *testing.T) {
	t.Parallel()

	split := NewSplit("test-split").
		LeftSchema(NewTextInput("start").Label("Start Component")).
		RightSchema(NewTextInput("end").Label("End Component")).
		FromBreakpoint("lg").
		StartColumnSpan(4).
		EndColumnSpan(8)

	if len(split.GetStartSchema()) != 1 || len(split.GetEndSchema()) != 1 {
		t.Fatalf("aliases did not populate start/end schemas")
	}

	props := split.Props()
	for key, want := range map[string][]string{
		"startSchema": {"Start Component"},
		"leftSchema":  {"Start Component"},
		"endSchema":   {"End Component"},
		"rightSchema": {"End Component"},
	} {
		if diff := cmp.Diff(want, labels(t, props, key)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
	if props["fromBreakpoint"] != "lg" || props["startColumnSpan"] != 4 || props["endColumnSpan"] != 8 {
		t.Fatalf("unexpected split props: %+v", props)
	}
	if got := len(split.Children()); got != 2 {
		t.Fatalf("children = %d, want start and end", got)
	}
}

func TestFieldsetLegendAliasesLabel(t *testing.T) {
	t.Parallel()

	fieldset := NewFieldset("test-fieldset").
		Legend("Fieldset Legend").
		Schema(NewTextInput("child").Label("Child Component"))

	if fieldset.GetLabel() != "Fieldset Legend" || fieldset.GetLegend() != "Fieldset Legend" {
		t.Fatalf("legend is not an alias for label")
	}

	props := fieldset.Props()
	if props["label"] != "Fieldset Legend" || props["legend"] != "Fieldset Legend" {
		t.Fatalf("unexpected fieldset props: %+v", props)
	}
	if diff := cmp.Diff([]string{"Child Component"}, labels(t, props, "schema")); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}

	fieldset.LegendFunc(func(*EvaluationContext) string { return "Dynamic Legend" })
	if fieldset.GetLabel() != "Dynamic Legend" {
		t.Fatalf("expected dynamic legend, got %q", fieldset.GetLabel())
	}
}

func TestColumnsInheritsComponentSetters(t *testing.T) {
	t.Parallel()

	columns := NewColumns("test-columns").
		Label("Test Columns").
		HelperText("Helper text").
		Disabled(true).
		Schema(
			NewTextInput("child1").Label("First Component"),
			NewTextInput("child2").Label("Second Component"),
		)

	if columns.GetLabel() != "Test Columns" || columns.GetHelperText() != "Helper text" || !columns.IsDisabled() {
		t.Fatalf("component setters not applied")
	}

	props := columns.Props()
	if props["component"] != KindColumns {
		t.Fatalf("component = %v", props["component"])
	}
	if diff := cmp.Diff([]string{"First Component", "Second Component"}, labels(t, props, "schema")); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestTabsProps(t *testing.T) {
	t.Parallel()

	tabs := NewTabs("settings").Tab(
		NewTab("General Info").Icon("heroicon-o-cog").Badge("3").Schema(NewTextInput("name")),
		NewTab("Hidden").Hidden(true),
		NewTab("Advanced"),
	)

	props := tabs.Props()
	if props["activeTab"] != 1 {
		t.Fatalf("activeTab = %v, want 1", props["activeTab"])
	}
	list := props["tabs"].([]Props)
	if len(list) != 2 {
		t.Fatalf("expected hidden tab to be excluded, got %d tabs", len(list))
	}
	first := list[0]
	if first["label"] != "General Info" || first["id"] != "general_info" || first["badge"] != "3" || first["icon"] != "heroicon-o-cog" {
		t.Fatalf("unexpected tab props: %+v", first)
	}
	if got := len(first["schema"].([]Props)); got != 1 {
		t.Fatalf("tab schema = %d children", got)
	}

	if NewTabs("t").ActiveTab(0).GetActiveTab() != 1 {
		t.Fatalf("active tab should clamp to 1")
	}
}

func TestActionProps(t *testing.T) {
	t.Parallel()

	action := NewAction("open_invoice").
		Color("danger").
		URLFunc(func(ctx *EvaluationContext) string { return "/invoices/" + ctx.Get("id").(string) }).
		OpenInNewTab(true)
	action.SetEvaluationContext(&EvaluationContext{Data: map[string]any{"id": "42"}})

	props := action.Props()
	want := Props{
		"component":    KindAction,
		"name":         "open_invoice",
		"id":           "",
		"label":        "Open invoice",
		"hidden":       false,
		"disabled":     false,
		"color":        "danger",
		"icon":         "",
		"url":          "/invoices/42",
		"openInNewTab": true,
	}
	if diff := cmp.Diff(want, props); diff != "" {
		t.Fatalf("action props mismatch (-want +got):\n%s", diff)
	}
}

func TestRepeaterProps(t *testing.T) {
	t.Parallel()

	repeater := NewRepeater("items").
		MinItems(1).
		MaxItems(5).
		Schema(NewTextInput("sku"), NewTextInput("qty").Numeric())
	repeater.Fill([]any{map[string]any{"sku": "A"}}, true)

	props := repeater.Props()
	if diff := cmp.Diff([]string{"array", "min:1", "max:5"}, props["rules"]); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if props["addActionLabel"] != "Add item" {
		t.Fatalf("addActionLabel = %v", props["addActionLabel"])
	}
	if got := len(props["schema"].([]Props)); got != 2 {
		t.Fatalf("template children = %d", got)
	}
	if got := len(repeater.Items()); got != 1 {
		t.Fatalf("items = %d", got)
	}
}

func TestSelectChoices(t *testing.T) {
	t.Parallel()

	field := NewSelect("plan").Options(
		Choice{Value: "free", Label: "Free"},
		Choice{Value: "pro", Label: "Pro"},
	)
	if diff := cmp.Diff([]Choice{{Value: "free", Label: "Free"}, {Value: "pro", Label: "Pro"}}, field.Props()["options"]); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	field = NewSelect("channel").OptionsMap(map[string]string{"web": "Web shop", "phone": "Phone"})
	if diff := cmp.Diff([]Choice{{Value: "phone", Label: "Phone"}, {Value: "web", Label: "Web shop"}}, field.GetOptions()); diff != "" {
		t.Fatalf("options map mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]Choice{}, NewSelect("empty").Props()["options"]); diff != "" {
		t.Fatalf("empty options mismatch (-want +got):\n%s", diff)
	}

	s := New("checkout", WithLocale("en")).Schema(NewSelect("plan"))
	if s.FindField("plan") == nil {
		t.Fatal("expected plan field")
	}
}
