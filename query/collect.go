package query

import (
	"fmt"
	"maps"
	"slices"

	"github.com/creachadair/ejson/ast"
)

// Each applies the path given by keys to every element of an array, and
// yields an array of the results. It fails if any element fails. The keys are
// as for Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ q Query }

func (e eachQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := asArray(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, len(arr))
	for i, elt := range arr {
		if out[i], err = e.q.eval(elt); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

// Recur applies the path given by keys to its input and to each of its
// descendants, in document order, and yields an array of the results that
// succeed. It fails with ErrNotFound if none succeeds. The keys are as for
// Path.
func Recur(keys ...any) Query { return recurQuery{Path(keys...)} }

type recurQuery struct{ q Query }

func (r recurQuery) eval(v ast.Value) (ast.Value, error) {
	var out ast.Array
	walk(v, func(node ast.Value) {
		if w, err := r.q.eval(node); err == nil {
			out = append(out, w)
		}
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no descendant matches: %w", ErrNotFound)
	}
	return out, nil
}

// walk calls f for v and then for each descendant of v, parents before
// children and siblings in order.
func walk(v ast.Value, f func(ast.Value)) {
	f(v)
	switch t := v.(type) {
	case ast.Object:
		for _, m := range t {
			walk(m.Value, f)
		}
	case ast.Array:
		for _, elt := range t {
			walk(elt, f)
		}
	}
}

// A Selection yields an array of the elements of its input array for which
// the function reports true.
type Selection func(ast.Value) bool

func (s Selection) eval(v ast.Value) (ast.Value, error) {
	arr, err := asArray(v)
	if err != nil {
		return nil, err
	}
	out := ast.Array{}
	for _, elt := range arr {
		if s(elt) {
			out = append(out, elt)
		}
	}
	return out, nil
}

// A Mapping yields an array of the results of applying the function to each
// element of its input array.
type Mapping func(ast.Value) ast.Value

func (m Mapping) eval(v ast.Value) (ast.Value, error) {
	arr, err := asArray(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, len(arr))
	for i, elt := range arr {
		out[i] = m(elt)
	}
	return out, nil
}

// An Object query yields an object whose members map each key to the result
// of evaluating the corresponding query against the input. Members are in
// lexicographic order by key.
type Object map[string]Query

func (o Object) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.Object, 0, len(o))
	for _, key := range slices.Sorted(maps.Keys(o)) {
		w, err := o[key].eval(v)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		out = append(out, &ast.Member{Key: key, Value: w})
	}
	return out, nil
}

// An Array query yields an array of the results of evaluating each of its
// queries against the input.
type Array []Query

func (a Array) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.Array, len(a))
	for i, q := range a {
		w, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = w
	}
	return out, nil
}
