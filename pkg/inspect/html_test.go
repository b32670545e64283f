package inspect

import (
	"strings"
	"testing"
)

func TestStaticHTMLNestsChildren(t *testing.T) {
	f := newTestFactory(t)
	n, _ := f.New(map[string]int{"a": 1})

	out := StaticHTML(n, 2)

	if !strings.HasPrefix(out, `<ul class="collapsible">`) {
		t.Errorf("output should start with the collapsible wrapper:\n%s", out)
	}
	if !strings.Contains(out, "&#34;a&#34;") {
		t.Errorf("entry key missing:\n%s", out)
	}
	if !strings.Contains(out, n.ID) {
		t.Fatal("root id missing")
	}
	// The child list is nested inside the root's <li>.
	if strings.Count(out, `<ul class="collapsible">`) < 2 {
		t.Error("expanded root should contain a nested list")
	}
}

func TestStaticHTMLDepthZero(t *testing.T) {
	f := newTestFactory(t)
	n, _ := f.New(map[string]int{"a": 1})

	out := StaticHTML(n, 0)
	if strings.Count(out, `<ul class="collapsible">`) != 1 {
		t.Errorf("depth 0 should render only the root header:\n%s", out)
	}
}

func TestStaticHTMLLeaf(t *testing.T) {
	f := newTestFactory(t)
	n, _ := f.NewNamed(7, "count")

	out := StaticHTML(n, 4)
	if strings.Count(out, "<li") != 1 {
		t.Errorf("leaf export should contain one item:\n%s", out)
	}
}
