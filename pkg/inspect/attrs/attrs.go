// Package attrs enumerates the inspectable attributes of arbitrary Go values.
//
// The inspector core consumes this package through the [Get] function and
// does not care how the enumeration is produced. Attributes are returned in
// a stable order: exported struct fields (declaration order), readable
// unexported fields (prefixed with "_"), methods, then synthesized
// "__dunder__" metadata attributes.
//
// [ErrWrapper] marks a value that could not be produced or formatted; the
// inspector renders wrapped errors as error-tagged leaves instead of
// propagating the failure.
package attrs

import (
	"fmt"
	"reflect"
	"sort"
)

// Attr is one named attribute of an inspected value.
type Attr struct {
	Name  string
	Value any
}

// ErrWrapper wraps an error so it can be rendered as an error-tagged leaf.
// It is also produced by the formatter when computing a representation panics.
type ErrWrapper struct {
	Err error
}

// Wrap returns an ErrWrapper around err.
func Wrap(err error) ErrWrapper { return ErrWrapper{Err: err} }

// Error implements the error interface.
func (w ErrWrapper) Error() string {
	if w.Err == nil {
		return "unknown error"
	}
	return w.Err.Error()
}

// Unwrap returns the wrapped error.
func (w ErrWrapper) Unwrap() error { return w.Err }

// Get returns the inspectable attributes of v.
//
// For structs (and pointers to structs) the result contains the fields;
// unexported fields are included under a leading-underscore name when their
// value is readable without unsafe, and skipped otherwise. Exported methods
// are included as callable values. Two synthesized attributes, __type__ and
// __kind__, carry reflection metadata and land in the "Special attributes"
// bucket of the rendered tree.
//
// Get never panics; a panic during enumeration truncates the result with an
// ErrWrapper attribute.
func Get(v any) (out []Attr) {
	if v == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			out = append(out, Attr{
				Name:  "__error__",
				Value: Wrap(fmt.Errorf("attribute enumeration failed: %v", r)),
			})
		}
	}()

	rv := reflect.ValueOf(v)
	out = append(out, fieldAttrs(rv)...)
	out = append(out, methodAttrs(rv)...)

	out = append(out,
		Attr{Name: "__type__", Value: rv.Type().String()},
		Attr{Name: "__kind__", Value: rv.Kind().String()},
	)
	return out
}

// fieldAttrs extracts struct fields, following pointers and interfaces.
func fieldAttrs(rv reflect.Value) []Attr {
	elem := rv
	for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return nil
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil
	}

	t := elem.Type()
	var exported, private []Attr
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := elem.Field(i)
		if f.IsExported() {
			exported = append(exported, Attr{Name: f.Name, Value: fv.Interface()})
			continue
		}
		if val, ok := readBasic(fv); ok {
			private = append(private, Attr{Name: "_" + f.Name, Value: val})
		}
	}
	return append(exported, private...)
}

// methodAttrs extracts the exported method set of the value's type.
func methodAttrs(rv reflect.Value) []Attr {
	t := rv.Type()
	n := t.NumMethod()
	if n == 0 {
		return nil
	}
	attrs := make([]Attr, 0, n)
	for i := 0; i < n; i++ {
		m := t.Method(i)
		attrs = append(attrs, Attr{Name: m.Name, Value: rv.Method(i).Interface()})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	return attrs
}

// readBasic reads an unexported field value for basic kinds, which reflect
// permits without unsafe. Composite unexported fields are not readable.
func readBasic(fv reflect.Value) (any, bool) {
	switch fv.Kind() {
	case reflect.Bool:
		return fv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return fv.Float(), true
	case reflect.Complex64, reflect.Complex128:
		return fv.Complex(), true
	case reflect.String:
		return fv.String(), true
	default:
		return nil, false
	}
}
