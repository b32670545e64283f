package inspect

import (
	"fmt"
	"strings"
	"testing"

	"github.com/objscope/objscope/pkg/arrayspec"
	"github.com/objscope/objscope/pkg/inspect/attrs"
)

// panicky explodes when its representation is computed.
type panicky struct{}

func (panicky) String() string { panic("unprintable") }

func TestTypedReprTags(t *testing.T) {
	tests := []struct {
		name  string
		value any
		tag   Tag
		body  string
	}{
		{"nil", nil, TagNull, "nil"},
		{"ellipsis", Ellipsis, TagNull, "..."},
		{"int", 42, TagNumber, "42"},
		{"float", 2.5, TagNumber, "2.5"},
		{"bool", true, TagBoolean, "true"},
		{"error", attrs.Wrap(fmt.Errorf("boom")), TagError, "boom"},
	}

	for _, tt := range tests {
		got := typedRepr(tt.value)
		want := fmt.Sprintf(`<span class="%s">%s</span>`, tt.tag, tt.body)
		if got != want {
			t.Errorf("%s: typedRepr = %q, want %q", tt.name, got, want)
		}
	}
}

func TestTypedReprString(t *testing.T) {
	got := typedRepr("a<b")
	if !strings.HasPrefix(got, `<span class="string">`) {
		t.Errorf("string tag missing: %s", got)
	}
	if !strings.Contains(got, "a&lt;b") {
		t.Errorf("content should be escaped: %s", got)
	}

	got = typedRepr([]byte("raw"))
	if !strings.HasPrefix(got, `<span class="string">`) {
		t.Errorf("bytes should use the string tag: %s", got)
	}
}

func TestTypedReprArraySummary(t *testing.T) {
	a := arrayspec.NewNDArray(arrayspec.DTypeF32, 2, 3)
	got := typedRepr(a)
	if got != `<span class="number">f32[2 3]</span>` {
		t.Errorf("array repr = %q", got)
	}
}

func TestTypedReprPreview(t *testing.T) {
	got := typedRepr(struct{ X int }{7})
	if !strings.HasPrefix(got, `<span class="preview">`) {
		t.Errorf("fallback should use the preview tag: %s", got)
	}
	if !strings.Contains(got, "7") {
		t.Errorf("preview should show the default representation: %s", got)
	}
}

func TestTypedReprPanicRecovered(t *testing.T) {
	got := typedRepr(panicky{})
	if !strings.HasPrefix(got, `<span class="error">`) {
		t.Errorf("panicking repr should degrade to an error fragment: %s", got)
	}
	if !strings.Contains(got, "unprintable") {
		t.Errorf("error fragment should name the failure: %s", got)
	}
}

func TestTruncationFragment(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := typedRepr(long)

	if !strings.Contains(got, classVersionShort) {
		t.Error("long strings need a short version")
	}
	if !strings.Contains(got, classVersionLong) {
		t.Error("long strings need a full version")
	}
	if !strings.Contains(got, classSwitchExpand) {
		t.Error("short version needs the expand affordance")
	}
	// The full escaped content is present somewhere in the output.
	if !strings.Contains(got, strings.Repeat("x", 200)) {
		t.Error("full content should be preserved")
	}
}

func TestShortStringNotTruncated(t *testing.T) {
	got := typedRepr("short")
	if strings.Contains(got, classSwitch) {
		t.Errorf("short strings should not grow a switch fragment: %s", got)
	}
}

// The length budget counts visible runes before escaping, so a string whose
// escape entities inflate it past the budget stays untruncated, and a cut
// never lands inside an entity.
func TestTruncationBudgetCountsUnescapedRunes(t *testing.T) {
	angles := strings.Repeat("<", 70)
	got := typedRepr(angles)
	if strings.Contains(got, classSwitch) {
		t.Errorf("70 visible runes should not be truncated: %s", got)
	}
	if !strings.Contains(got, strings.Repeat("&lt;", 70)) {
		t.Error("escaped content should be intact")
	}

	long := strings.Repeat("<", 100)
	got = typedRepr(long)
	if !strings.Contains(got, classSwitch) {
		t.Error("100 visible runes should be truncated")
	}
	if strings.Contains(got, "&l;") || strings.Contains(got, "&t;") {
		t.Error("cut must not split an escape entity")
	}
}

func TestPlainRepr(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "nil"},
		{Ellipsis, "..."},
		{42, "42"},
		{"s", `"s"`},
		{arrayspec.NewNDArray(arrayspec.DTypeU32, 2), "u32[2]"},
	}
	for _, tt := range tests {
		if got := plainRepr(tt.value); got != tt.want {
			t.Errorf("plainRepr(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}

	if got := plainRepr(panicky{}); !strings.HasPrefix(got, "error:") {
		t.Errorf("plainRepr should recover panics: %q", got)
	}

	long := plainRepr(strings.Repeat("y", 200))
	if len([]rune(long)) != truncateLen+3 {
		t.Errorf("plain repr should clip long values, len = %d", len([]rune(long)))
	}
}
