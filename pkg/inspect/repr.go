package inspect

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/objscope/objscope/pkg/arrayspec"
	"github.com/objscope/objscope/pkg/inspect/attrs"
)

// Tag is the semantic type of a rendered leaf value. Tags are a fixed
// vocabulary and are emitted as CSS classes without escaping.
type Tag string

// Semantic type tags.
const (
	TagNull    Tag = "null"
	TagNumber  Tag = "number"
	TagBoolean Tag = "boolean"
	TagString  Tag = "string"
	TagError   Tag = "error"
	TagPreview Tag = "preview"
)

// ellipsisSentinel is the type of [Ellipsis].
type ellipsisSentinel struct{}

func (ellipsisSentinel) String() string { return "..." }

// Ellipsis is a placeholder sentinel rendered as a null-tagged fragment,
// mirroring the `...` literal of the inspected ecosystem.
var Ellipsis = ellipsisSentinel{}

// truncateLen is the visible length budget for string representations.
const truncateLen = 80

// typedRepr renders a leaf value as a typed, escaped, possibly truncated
// HTML span. It never fails: a panic while computing a representation is
// recovered into an error-tagged fragment.
//
// Classification order: null, number, boolean, string, array summary,
// wrapped error, preview. Unlike the inspected ecosystem, bool is not a
// numeric type here, so booleans genuinely reach the boolean tag.
func typedRepr(v any) string {
	if v == nil {
		return span(string(TagNull), "nil")
	}
	if _, ok := v.(ellipsisSentinel); ok {
		return span(string(TagNull), "...")
	}
	if w, ok := v.(*attrs.ErrWrapper); ok && w != nil {
		v = *w
	}
	if w, ok := v.(attrs.ErrWrapper); ok {
		return span(string(TagError), escape(w.Error()))
	}
	if a, ok := v.(arrayspec.Array); ok {
		// Shape/dtype summary only, never the contents.
		return span(string(TagNumber), escape(arrayspec.FromArray(a).String()))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return span(string(TagNumber), escape(fmt.Sprintf("%v", v)))
	case reflect.Bool:
		return span(string(TagBoolean), escape(fmt.Sprintf("%v", v)))
	case reflect.String:
		return span(string(TagString), truncate(strconv.Quote(rv.String())))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return span(string(TagString), truncate(fmt.Sprintf("%q", rv.Bytes())))
		}
	}

	s, err := safeRepr(v)
	if err != nil {
		return typedRepr(attrs.Wrap(err))
	}
	return span(string(TagPreview), truncate(s))
}

// safeRepr computes a default representation, converting panics in Stringer
// or error implementations into an error return. fmt would swallow such
// panics into a "%!v(PANIC=...)" string; calling the methods directly keeps
// the failure visible so it can be rendered with the error tag.
func safeRepr(v any) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("repr failed: %v", r)
		}
	}()

	switch t := v.(type) {
	case fmt.Stringer:
		return t.String(), nil
	case error:
		return t.Error(), nil
	}
	return fmt.Sprintf("%v", v), nil
}

// plainRepr renders a leaf value as unescaped plain text for terminal and
// graph sinks, truncated with a bare ellipsis instead of a switch fragment.
func plainRepr(v any) string {
	if v == nil {
		return "nil"
	}
	if _, ok := v.(ellipsisSentinel); ok {
		return "..."
	}
	if w, ok := v.(attrs.ErrWrapper); ok {
		return "error: " + w.Error()
	}
	if a, ok := v.(arrayspec.Array); ok {
		return arrayspec.FromArray(a).String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return clip(strconv.Quote(rv.String()))
	}

	s, err := safeRepr(v)
	if err != nil {
		return "error: " + err.Error()
	}
	return clip(s)
}

// clip bounds a plain string to the display budget.
func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= truncateLen {
		return s
	}
	return string(runes[:truncateLen]) + "..."
}

// truncate escapes value and, when it exceeds the length budget, wraps it as
// a two-part content-switch fragment: a short version with an expand
// affordance and the full version. Client-side script toggles visibility.
func truncate(value string) string {
	runes := []rune(value)
	if len(runes) <= truncateLen {
		return escape(value)
	}

	// Cut before escaping so an escape entity is never split.
	short := escape(string(runes[:truncateLen])) + span(classSwitchExpand+" "+classOnClickSwitch, "...")
	return span(classSwitch,
		span(classVersionShort, short)+
			span(classVersionLong+" "+classOnClickSwitch, escape(value)))
}
