package docs

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestSearchSections(t *testing.T) {
	t.Parallel()

	files, err := Load(fstest.MapFS{
		"a.md":        {Data: []byte("# Intro\n\nnothing here\n\n## Repeater\n\nitems repeat\n\n## Grid\n\ncolumns\n")},
		"b.md":        {Data: []byte("# Rules\n\nrepeater rules use min and max\n")},
		"notes.txt":   {Data: []byte("repeater")},
		"nested/c.md": {Data: []byte("# Other\n\nunrelated\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 markdown files, got %d", len(files))
	}

	got := Search(files, "Repeater max")
	want := []Result{
		{File: "b.md", Content: "# Rules\n\nrepeater rules use min and max", Relevance: 2},
		{File: "a.md", Content: "## Repeater\n\nitems repeat", Relevance: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	if got := Search(files, "   "); got != nil {
		t.Fatalf("blank query should match nothing, got %v", got)
	}
}

func TestSearchCapsResults(t *testing.T) {
	t.Parallel()

	var doc strings.Builder
	for i := 0; i < 8; i++ {
		doc.WriteString("## Section\n\ngrid text\n\n")
	}
	got := Search([]File{{Name: "many.md", Content: doc.String()}}, "grid")
	if len(got) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(got))
	}
}

func TestEmbeddedDocs(t *testing.T) {
	t.Parallel()

	files := Files()
	if len(files) == 0 {
		t.Fatal("no embedded docs")
	}
	results := Search(files, "collapsible")
	if len(results) == 0 || results[0].File != "components.md" {
		t.Fatalf("expected components.md first, got %#v", results)
	}

	report := Markdown("collapsible", results)
	if !strings.Contains(report, "## Section") {
		t.Fatalf("section heading not demoted:\n%s", report)
	}
	if got := Markdown("zzz", nil); got != "No documentation found matching 'zzz'.\n" {
		t.Fatalf("unexpected empty report %q", got)
	}
}
