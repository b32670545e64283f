// Package arrayspec provides typed shape/dtype descriptors for array-like values.
//
// A [Spec] is a lightweight summary of an array (element type plus shape)
// that can be produced without materializing or copying data. [Alias] values
// describe families of arrays ("any f32 array", "a u32 array of shape [2]")
// and can be matched against concrete arrays.
//
// The inspector's value formatter renders arrays through this package so that
// a large tensor shows up as a compact "f32[2 3]" summary instead of its raw
// contents.
package arrayspec

import (
	"fmt"
	"strings"
)

// DType identifies the element type of an array.
// The set is closed; Matches treats DTypeAny as a wildcard.
type DType string

// Supported element types.
const (
	DTypeBool DType = "bool"
	DTypeU8   DType = "u8"
	DTypeU16  DType = "u16"
	DTypeU32  DType = "u32"
	DTypeU64  DType = "u64"
	DTypeI8   DType = "i8"
	DTypeI16  DType = "i16"
	DTypeI32  DType = "i32"
	DTypeI64  DType = "i64"
	DTypeF16  DType = "f16"
	DTypeF32  DType = "f32"
	DTypeF64  DType = "f64"
	DTypeC64  DType = "c64"
	DTypeC128 DType = "c128"
	DTypeStr  DType = "str"
	DTypeAny  DType = "any"
)

// Array is any value that can describe itself as shape plus dtype.
// Implementations must not copy or materialize data to answer either query.
type Array interface {
	Shape() []int
	DType() DType
}

// =============================================================================
// Spec - Compact Array Summary
// =============================================================================

// Spec describes a concrete array: its element type and shape.
type Spec struct {
	DType DType
	Shape []int
}

// FromArray builds a Spec from any Array without touching its data.
func FromArray(a Array) Spec {
	return Spec{DType: a.DType(), Shape: a.Shape()}
}

// String renders the compact summary, e.g. "f32[2 3]".
// A scalar (rank 0) renders as "f32[]".
func (s Spec) String() string {
	dims := make([]string, len(s.Shape))
	for i, d := range s.Shape {
		dims[i] = fmt.Sprintf("%d", d)
	}
	return fmt.Sprintf("%s[%s]", s.DType, strings.Join(dims, " "))
}

// =============================================================================
// Alias - Declarative Array Type Families
// =============================================================================

// Alias declares a family of arrays by dtype and optional shape.
// A nil Shape matches any rank; DTypeAny matches any element type.
type Alias struct {
	DType DType
	Shape []int // nil means any shape
}

// Of returns a copy of the alias constrained to the given shape.
// Example: U32.Of(2) describes a u32 array of shape [2].
func (a Alias) Of(shape ...int) Alias {
	return Alias{DType: a.DType, Shape: shape}
}

// Matches reports whether arr satisfies the alias constraints.
func (a Alias) Matches(arr Array) bool {
	if a.DType != DTypeAny && a.DType != arr.DType() {
		return false
	}
	if a.Shape == nil {
		return true
	}
	shape := arr.Shape()
	if len(shape) != len(a.Shape) {
		return false
	}
	for i, d := range a.Shape {
		if d != shape[i] {
			return false
		}
	}
	return true
}

// String renders the alias, e.g. "f32[...]" for an unconstrained shape.
func (a Alias) String() string {
	if a.Shape == nil {
		return fmt.Sprintf("%s[...]", a.DType)
	}
	return Spec{DType: a.DType, Shape: a.Shape}.String()
}

// Declarative alias table.
var (
	// AnyArray matches every array regardless of dtype or shape.
	AnyArray = Alias{DType: DTypeAny}

	FloatArray = Alias{DType: DTypeF32}
	IntArray   = Alias{DType: DTypeI32}
	BoolArray  = Alias{DType: DTypeBool}
	StrArray   = Alias{DType: DTypeStr}

	U8  = Alias{DType: DTypeU8}
	U16 = Alias{DType: DTypeU16}
	U32 = Alias{DType: DTypeU32}
	U64 = Alias{DType: DTypeU64}
	I8  = Alias{DType: DTypeI8}
	I16 = Alias{DType: DTypeI16}
	I32 = Alias{DType: DTypeI32}
	I64 = Alias{DType: DTypeI64}
	F16 = Alias{DType: DTypeF16}
	F32 = Alias{DType: DTypeF32}
	F64 = Alias{DType: DTypeF64}

	C64  = Alias{DType: DTypeC64}
	C128 = Alias{DType: DTypeC128}

	// PRNGKey is a jax-style random number generator key: two u32 words.
	PRNGKey = U32.Of(2)
)

// =============================================================================
// NDArray - Minimal Concrete Array
// =============================================================================

// NDArray is a minimal dense array carrying only shape and dtype metadata.
// It exists so demos and tests have a concrete Array; real numeric libraries
// plug in by implementing the Array interface.
type NDArray struct {
	shape []int
	dtype DType
}

// NewNDArray creates an NDArray descriptor with the given dtype and shape.
func NewNDArray(dtype DType, shape ...int) *NDArray {
	return &NDArray{shape: shape, dtype: dtype}
}

// Shape returns the array dimensions.
func (a *NDArray) Shape() []int { return a.shape }

// DType returns the element type.
func (a *NDArray) DType() DType { return a.dtype }

// Len returns the total element count.
func (a *NDArray) Len() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// String renders the compact spec summary.
func (a *NDArray) String() string { return FromArray(a).String() }

// Ensure NDArray implements Array.
var _ Array = (*NDArray)(nil)
