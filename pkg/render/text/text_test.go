package text

import (
	"strings"
	"testing"

	"github.com/objscope/objscope/pkg/inspect"
)

func TestRenderPlain(t *testing.T) {
	f := inspect.NewFactory(inspect.NewRegistry())
	root, err := f.New(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out := Render(root, Options{Plain: true, MaxDepth: 1})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected root plus entries, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "> ") {
		t.Errorf("root line should be expandable: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"a": 1`) {
		t.Errorf("first entry should be a: 1, got %q", lines[1])
	}
	if !strings.Contains(lines[2], `"b": 2`) {
		t.Errorf("second entry should be b: 2, got %q", lines[2])
	}

	// Entries are indented under the root.
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("entries should be indented: %q", lines[1])
	}
}

func TestRenderDepthBound(t *testing.T) {
	f := inspect.NewFactory(inspect.NewRegistry())
	root, _ := f.New(map[string][]int{"xs": {1, 2, 3}})

	shallow := Render(root, Options{Plain: true, MaxDepth: 1})
	deep := Render(root, Options{Plain: true, MaxDepth: 3})

	if strings.Count(deep, "\n") <= strings.Count(shallow, "\n") {
		t.Error("deeper rendering should emit more lines")
	}
}

func TestRenderLeaf(t *testing.T) {
	f := inspect.NewFactory(inspect.NewRegistry())
	n, _ := f.NewNamed(7, "count")

	out := Render(n, Options{Plain: true})
	if strings.TrimSpace(out) != "- count: 7" {
		t.Errorf("leaf rendering = %q", out)
	}
}
