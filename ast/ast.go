// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree of generic values for EJSON documents, and a
// parser that constructs such trees from EJSON source.
package ast

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/ejson"
)

// A Value is an arbitrary EJSON value. The concrete type of a Value is one of
// Object, Array, String, Int, Float, Bool, or the type of Null.
//
// A Value is plain data: it has no cycles, and once returned by the parser it
// is owned by the caller.
type Value interface {
	// JSON renders the value as compact JSON text. Parsing the result yields a
	// value equal to the original.
	JSON() string
}

// An Object is a collection of key-value members, in order of the first
// appearance of each key.
type Object []*Member

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Set sets the value of key in o to v. If o already has a member with that
// key, its value is replaced and its position is unchanged; otherwise a new
// member is added at the end.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	*o = append(*o, &Member{Key: key, Value: v})
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value. The value
// must be a Value or one of the types accepted by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// JSON renders the member as a quoted key, a colon, and a value.
func (m Member) JSON() string { return ejson.Quote(m.Key) + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// A String is a string value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return ejson.Quote(string(s)) }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Int is an integer value.
type Int int64

// JSON satisfies the Value interface.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a floating-point value.
type Float float64

// JSON satisfies the Value interface. The result always includes a decimal
// point or an exponent, so that it reads back as a Float and not an Int.
func (f Float) JSON() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

type null struct{}

// JSON satisfies the Value interface.
func (null) JSON() string { return "null" }

// Null represents the null constant.
var Null Value = null{}

// ToValue converts a native Go value into a Value. It accepts nil, Value,
// bool, string, all integer and floating-point types, []any, []Value,
// []string, and map[string]any. Map keys are ordered lexicographically.
// ToValue panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case []Value:
		return Array(t)
	case []string:
		out := make(Array, len(t))
		for i, s := range t {
			out[i] = String(s)
		}
		return out
	case map[string]any:
		out := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			out = append(out, &Member{Key: key, Value: ToValue(t[key])})
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Int(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	}
	panic(fmt.Sprintf("ast: unsupported value type %T", v))
}

// ToNative converts v into plain Go data: nil for Null, and bool, int64,
// float64, string, []any, or map[string]any for the other types.
func ToNative(v Value) any {
	switch t := v.(type) {
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			out[m.Key] = ToNative(m.Value)
		}
		return out
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = ToNative(elt)
		}
		return out
	case String:
		return string(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case Bool:
		return bool(t)
	}
	return nil
}
