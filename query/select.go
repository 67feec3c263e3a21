package query

import (
	"fmt"

	"github.com/creachadair/ejson/ast"
)

// Slice selects the elements of an array from offset lo up to but not
// including offset hi. Negative offsets count back from the end of the array,
// and hi == 0 denotes the end of the array.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := asArray(v)
	if err != nil {
		return nil, err
	}
	n := len(arr)
	lo, hi := q.lo, q.hi
	if lo < 0 {
		lo += n
	}
	if hi <= 0 {
		hi += n
	}
	if lo < 0 || hi > n || lo > hi {
		return nil, fmt.Errorf("slice [%d:%d] of %d: %w", q.lo, q.hi, n, ErrNotFound)
	}
	return arr[lo:hi], nil
}

// Pick selects the elements of an array at the given offsets, in the order
// given. Negative offsets count back from the end of the array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := asArray(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, len(q))
	for i, off := range q {
		j, err := offset(off, len(arr))
		if err != nil {
			return nil, err
		}
		out[i] = arr[j]
	}
	return out, nil
}

// Len yields the length of its input as an integer: the number of members of
// an object, the number of elements of an array, or the number of bytes in a
// string. The length of null is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v ast.Value) (ast.Value, error) {
	if v == ast.Null {
		return ast.Int(0), nil
	}
	if t, ok := v.(interface{ Len() int }); ok {
		return ast.Int(t.Len()), nil
	}
	return nil, typeError(v, "object, array or string")
}

// Glob yields an array of the member values of an object, or the elements of
// an array.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return t, nil
	case ast.Object:
		vals := make(ast.Array, len(t))
		for i, m := range t {
			vals[i] = m.Value
		}
		return vals, nil
	}
	return nil, typeError(v, "object or array")
}
