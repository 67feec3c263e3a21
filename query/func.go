package query

import "github.com/creachadair/ejson/ast"

// Exists returns a selection that reports whether the path given by keys can
// be evaluated against its argument. The keys are as for Path.
func Exists(keys ...any) Selection {
	q := Path(keys...)
	return func(v ast.Value) bool {
		_, err := q.eval(v)
		return err == nil
	}
}

// Filter returns a selection that keeps the values of type T for which f
// reports true, and discards all others.
func Filter[T ast.Value](f func(T) bool) Selection {
	return func(v ast.Value) bool {
		t, ok := v.(T)
		return ok && f(t)
	}
}

// Is returns a selection that keeps the values of type T.
func Is[T ast.Value]() Selection { return Filter(func(T) bool { return true }) }

// IsNot returns a selection that discards the values of type T.
func IsNot[T ast.Value]() Selection {
	is := Is[T]()
	return func(v ast.Value) bool { return !is(v) }
}

// Map returns a mapping that applies f to the values of type T, and leaves
// all other values unchanged.
func Map[T, U ast.Value](f func(T) U) Mapping {
	return func(v ast.Value) ast.Value {
		if t, ok := v.(T); ok {
			return f(t)
		}
		return v
	}
}

// As evaluates q against root and reports the result as a value of type T.
// If the result has some other type, As reports an error wrapping ErrType.
func As[T ast.Value](root ast.Value, q Query) (T, error) {
	var zero T
	v, err := q.eval(root)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, typeError(v, typeName(zero))
	}
	return t, nil
}
