// Package query implements structural queries over EJSON values.
//
// A query describes a substructure of a value tree, such as an object member,
// an array element, or a path through the tree. Evaluating a query against a
// value traverses the structure the query describes and returns the value it
// finds there.
//
// The simplest query is a path, a sequence of object keys and array offsets
// leading down from the root. Given the configuration
//
//	{ inputs [ {port "system:capture_1"}, {port "system:capture_2"} ] }
//
// the query
//
//	query.Path("inputs", 1, "port")
//
// yields the string "system:capture_2". The same path written as a selector
// string can be compiled with ParsePath:
//
//	q, err := query.ParsePath("inputs[1].port")
//
// A query that fails because a key or offset is absent reports an error
// wrapping ErrNotFound. A query applied to a value of the wrong shape reports
// an error wrapping ErrType. Default uses this distinction to supply values
// for optional settings without hiding mistakes in the settings that are
// present.
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/ejson/ast"
)

var (
	// ErrNotFound is wrapped by errors reporting an absent key or offset.
	ErrNotFound = errors.New("not found")

	// ErrType is wrapped by errors reporting a value of the wrong type.
	ErrType = errors.New("wrong value type")
)

// A Query describes a traversal of a value tree.
type Query interface {
	eval(ast.Value) (ast.Value, error)
}

// Eval evaluates q starting from root.
func Eval(root ast.Value, q Query) (ast.Value, error) { return q.eval(root) }

// Path traverses a sequence of nested object keys (string), array offsets
// (int), or other queries from the root. With no keys, it selects the root.
func Path(keys ...any) Query {
	var seq Seq
	for _, key := range keys {
		q := step(key)
		if sub, ok := q.(Seq); ok {
			seq = append(seq, sub...)
		} else {
			seq = append(seq, q)
		}
	}
	if len(seq) == 1 {
		return seq[0]
	}
	return seq
}

func step(key any) Query {
	switch t := key.(type) {
	case string:
		return Key(t)
	case int:
		return Index(t)
	case Query:
		return t
	}
	panic(fmt.Sprintf("query: invalid path element %T", key))
}

// Key selects the value of the object member with the given key.
func Key(key string) Query { return keyQuery(key) }

type keyQuery string

func (k keyQuery) eval(v ast.Value) (ast.Value, error) {
	obj, err := asObject(v)
	if err != nil {
		return nil, err
	}
	if m := obj.Find(string(k)); m != nil {
		return m.Value, nil
	}
	return nil, fmt.Errorf("key %q: %w", string(k), ErrNotFound)
}

// Index selects the array element at offset i. Negative offsets count back
// from the end of the array.
func Index(i int) Query { return indexQuery(i) }

type indexQuery int

func (q indexQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := asArray(v)
	if err != nil {
		return nil, err
	}
	i, err := offset(int(q), len(arr))
	if err != nil {
		return nil, err
	}
	return arr[i], nil
}

// Seq applies its queries in order, each to the result of the one before.
// An empty Seq selects the root.
type Seq []Query

func (q Seq) eval(v ast.Value) (ast.Value, error) {
	for _, sub := range q {
		next, err := sub.eval(v)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

// Alt selects the result of the first of its queries that succeeds. If none
// succeeds, Alt reports the error from the last one.
type Alt []Query

func (q Alt) eval(v ast.Value) (ast.Value, error) {
	err := errors.New("no alternatives")
	for _, alt := range q {
		var w ast.Value
		if w, err = alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, err
}

// Default evaluates q, and if q fails with ErrNotFound returns def instead.
// The value def may be an ast.Value or any type accepted by ast.ToValue.
// Other failures of q, such as a type mismatch, are reported as errors.
func Default(q Query, def any) Query { return defaultQuery{q, ast.ToValue(def)} }

type defaultQuery struct {
	q   Query
	def ast.Value
}

func (d defaultQuery) eval(v ast.Value) (ast.Value, error) {
	w, err := d.q.eval(v)
	if errors.Is(err, ErrNotFound) {
		return d.def, nil
	}
	return w, err
}

// A Value query ignores its input and returns v.
func Value(v ast.Value) Query { return constQuery{v} }

// String returns a query that ignores its input and yields s.
func String(s string) Query { return Value(ast.String(s)) }

// Float returns a query that ignores its input and yields n.
func Float(n float64) Query { return Value(ast.Float(n)) }

// Int returns a query that ignores its input and yields z.
func Int(z int64) Query { return Value(ast.Int(z)) }

// Bool returns a query that ignores its input and yields b.
func Bool(b bool) Query { return Value(ast.Bool(b)) }

// Null returns a query that ignores its input and yields null.
func Null() Query { return Value(ast.Null) }

type constQuery struct{ v ast.Value }

func (c constQuery) eval(ast.Value) (ast.Value, error) { return c.v, nil }

func asObject(v ast.Value) (ast.Object, error) {
	if obj, ok := v.(ast.Object); ok {
		return obj, nil
	}
	return nil, typeError(v, "object")
}

func asArray(v ast.Value) (ast.Array, error) {
	if arr, ok := v.(ast.Array); ok {
		return arr, nil
	}
	return nil, typeError(v, "array")
}

// offset resolves i against an array of length n.
func offset(i, n int) (int, error) {
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, fmt.Errorf("offset %d of %d: %w", i, n, ErrNotFound)
	}
	return j, nil
}

func typeError(v ast.Value, want string) error {
	return fmt.Errorf("%w: got %s, want %s", ErrType, typeName(v), want)
}

// typeName describes the type of v for error messages.
func typeName(v ast.Value) string {
	if v == ast.Null {
		return "null"
	}
	switch v.(type) {
	case ast.Object:
		return "object"
	case ast.Array:
		return "array"
	case ast.String:
		return "string"
	case ast.Int, ast.Float:
		return "number"
	case ast.Bool:
		return "bool"
	case nil:
		return "no value"
	}
	return fmt.Sprintf("%T", v)
}
