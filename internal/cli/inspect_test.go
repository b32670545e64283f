package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/objscope/objscope/pkg/errors"
)

func writeInput(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"html", "text", "dot", "svg"} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	if err := validateFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("validateFormat(pdf) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestLoadValue(t *testing.T) {
	path := writeInput(t, `{"a": 1, "b": [true, null]}`)

	v, err := loadValue(path)
	if err != nil {
		t.Fatalf("loadValue: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("value = %T, want map", v)
	}
	if obj["a"] != float64(1) {
		t.Errorf("a = %v", obj["a"])
	}
}

func TestLoadValueMissingFile(t *testing.T) {
	_, err := loadValue(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadValueBadJSON(t *testing.T) {
	path := writeInput(t, "{not json")

	_, err := loadValue(path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestRunInspectText(t *testing.T) {
	input := writeInput(t, `{"a": 1}`)
	output := filepath.Join(t.TempDir(), "out.txt")

	opts := &inspectOpts{output: output, format: formatText, depth: 2}
	if err := runInspect(context.Background(), input, opts); err != nil {
		t.Fatalf("runInspect: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"a": 1`) {
		t.Errorf("text output missing entry:\n%s", data)
	}
}

func TestRunInspectHTML(t *testing.T) {
	input := writeInput(t, `{"a": 1}`)
	output := filepath.Join(t.TempDir(), "out.html")

	opts := &inspectOpts{output: output, format: formatHTML, depth: 2}
	if err := runInspect(context.Background(), input, opts); err != nil {
		t.Fatalf("runInspect: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	if !strings.Contains(page, `class="collapsible"`) {
		t.Error("html output missing collapsible list")
	}
	if !strings.Contains(page, "&#34;a&#34;") {
		t.Errorf("html output missing entry key:\n%s", page)
	}
}

func TestRunInspectDOT(t *testing.T) {
	input := writeInput(t, `[1, 2]`)
	output := filepath.Join(t.TempDir(), "out.dot")

	opts := &inspectOpts{output: output, format: formatDOT, depth: 2}
	if err := runInspect(context.Background(), input, opts); err != nil {
		t.Fatalf("runInspect: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph inspection {") {
		t.Errorf("dot output missing header:\n%s", data)
	}
}
