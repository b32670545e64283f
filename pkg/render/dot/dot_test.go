package dot

import (
	"strings"
	"testing"

	"github.com/objscope/objscope/pkg/inspect"
)

func TestToDOT(t *testing.T) {
	f := inspect.NewFactory(inspect.NewRegistry())
	root, err := f.New(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dot := ToDOT(root, Options{MaxDepth: 1})

	if !strings.HasPrefix(dot, "digraph inspection {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `"`+root.ID+`"`) {
		t.Error("root node missing from DOT output")
	}
	if !strings.Contains(dot, `\"a\": 1`) {
		t.Errorf("entry label missing:\n%s", dot)
	}
	if !strings.Contains(dot, "->") {
		t.Error("edges missing from DOT output")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("DOT output should be closed")
	}
}

func TestToDOTSubsectionStyle(t *testing.T) {
	f := inspect.NewFactory(inspect.NewRegistry())
	root, _ := f.New(struct{ X int }{1})

	dot := ToDOT(root, Options{MaxDepth: 2})
	// Synthesized metadata attributes produce a Special attributes grouping.
	if !strings.Contains(dot, "dashed") {
		t.Errorf("subsection nodes should be dashed:\n%s", dot)
	}
}

func TestToDOTDepthBound(t *testing.T) {
	f := inspect.NewFactory(inspect.NewRegistry())
	root, _ := f.New(map[string][]int{"xs": {1, 2}})

	shallow := ToDOT(root, Options{MaxDepth: 1})
	deep := ToDOT(root, Options{MaxDepth: 3})

	if strings.Count(deep, "\n") <= strings.Count(shallow, "\n") {
		t.Error("deeper export should emit more nodes")
	}
}
