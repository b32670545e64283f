package cli

import (
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/objscope/objscope/pkg/arrayspec"
	"github.com/objscope/objscope/pkg/errors"
	"github.com/objscope/objscope/pkg/inspect/attrs"
)

// loadValue decodes a JSON file into a generic value tree.
// Objects become maps, arrays become slices, numbers become float64.
func loadValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", path)
	}
	return v, nil
}

// demoValue builds the value served when no input file is given. It covers
// each node variant: scalars, collections, sets, arrays, types, functions,
// and a wrapped error.
func demoValue() any {
	return map[string]any{
		"name":    "objscope demo",
		"answer":  42,
		"enabled": true,
		"ratio":   0.125,
		"tags":    map[string]struct{}{"alpha": {}, "beta": {}},
		"series":  []int{1, 1, 2, 3, 5, 8},
		"matrix":  arrayspec.NewNDArray(arrayspec.DTypeF32, 2, 3),
		"type":    reflect.TypeOf(time.Time{}),
		"upper":   strings.ToUpper,
		"failure": attrs.Wrap(errors.New(errors.ErrCodeInternal, "simulated failure")),
	}
}
