package query_test

import (
	"errors"
	"testing"

	"github.com/creachadair/ejson/ast"
	"github.com/creachadair/ejson/query"
	"github.com/google/go-cmp/cmp"
)

func mustParseFile(t *testing.T, path string) ast.Value {
	t.Helper()
	v, err := ast.ParseFile(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return v
}

func TestQuery(t *testing.T) {
	val := mustParseFile(t, "../testdata/radio-observer.json")

	tests := []struct {
		name  string
		query query.Query
		want  ast.Value
	}{
		{"Root", query.Path(), val},
		{"Key", query.Key("jack_left_port"), ast.String("system:capture_1")},
		{"Path", query.Path("frontends", 1, "fft_size"), ast.Int(4096)},
		{"NegIndex", query.Path("frontends", -1, "type"), ast.String("waterfall")},
		{"Seq", query.Seq{
			query.Key("station"),
			query.Key("elevation"),
		}, ast.Int(500)},
		{"Each", query.Path("frontends", query.Each("type")), ast.Array{
			ast.String("jack_input"), ast.String("waterfall"),
		}},
		{"Recur", query.Recur("port"), ast.Array{ast.String("system:capture_1")}},
		{"Alt", query.Alt{
			query.Key("nonesuch"),
			query.Path("station", "name"),
		}, ast.String("svakov-r6")},
		{"Default/Missing", query.Default(query.Key("sample_rate"), 48000), ast.Int(48000)},
		{"Default/Present", query.Default(query.Path("station", "lat"), 0.0), ast.Float(49.2617)},
		{"Len/Object", query.Seq{query.Key("station"), query.Len()}, ast.Int(4)},
		{"Len/Array", query.Seq{query.Key("frontends"), query.Len()}, ast.Int(2)},
		{"Len/String", query.Seq{query.Key("output_dir"), query.Len()}, ast.Int(23)},
		{"Len/Null", query.Seq{query.Key("metadata"), query.Len()}, ast.Int(0)},
		{"Glob/Object", query.Seq{query.Key("station"), query.Glob()}, ast.Array{
			ast.String("svakov-r6"), ast.Float(49.2617), ast.Float(14.6963), ast.Int(500),
		}},
		{"Selection", query.Seq{
			query.Key("frontends"),
			query.Exists("enabled"),
			query.Each("type"),
		}, ast.Array{ast.String("waterfall")}},
		{"Selection/Empty", query.Seq{
			query.Key("frontends"),
			query.Filter(func(o ast.Object) bool { return o.Len() > 10 }),
		}, ast.Array{}},
		{"Mapping", query.Seq{
			query.Key("frontends"),
			query.Each("type"),
			query.Map(func(s ast.String) ast.Int { return ast.Int(len(s)) }),
		}, ast.Array{ast.Int(10), ast.Int(9)}},
		{"Object", query.Object{
			"name": query.Path("station", "name"),
			"left": query.Key("jack_left_port"),
		}, ast.Object{
			ast.Field("left", "system:capture_1"),
			ast.Field("name", "svakov-r6"),
		}},
		{"Array", query.Array{
			query.Key("jack_right_port"),
			query.Int(3),
			query.Null(),
		}, ast.Array{ast.String("system:capture_2"), ast.Int(3), ast.Null}},
		{"Constant", query.String("x"), ast.String("x")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := query.Eval(val, test.query)
			if err != nil {
				t.Fatalf("Eval failed: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Result (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestQuery_errors(t *testing.T) {
	val := mustParseFile(t, "../testdata/radio-observer.json")

	tests := []struct {
		name  string
		query query.Query
		want  error // if non-nil, the error must wrap this
	}{
		{"MissingKey", query.Key("nonesuch"), query.ErrNotFound},
		{"KeyOfArray", query.Path("frontends", "type"), query.ErrType},
		{"IndexOfObject", query.Path("station", 0), query.ErrType},
		{"IndexRange", query.Path("frontends", 2), query.ErrNotFound},
		{"EachMissing", query.Path("frontends", query.Each("port")), query.ErrNotFound},
		{"NoAlternatives", query.Alt{}, nil},
		{"LenOfNumber", query.Path("station", "lat", query.Len()), query.ErrType},
		{"GlobOfString", query.Path("output_dir", query.Glob()), query.ErrType},
		{"RecurNoMatch", query.Recur("nonesuch"), query.ErrNotFound},
		{"DefaultWrongType", query.Default(query.Path("station", 0), 1), query.ErrType},
		{"AltLast", query.Alt{query.Key("nonesuch"), query.Path("station", 0)}, query.ErrType},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := query.Eval(val, test.query)
			if err == nil {
				t.Fatalf("Eval: got %v, want error", got.JSON())
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Errorf("Eval: got error %v, want %v", err, test.want)
			}
			t.Logf("Eval: got expected error: %v", err)
		})
	}
}

func TestAs(t *testing.T) {
	val := mustParseFile(t, "../testdata/radio-observer.json")

	name, err := query.As[ast.String](val, query.Path("station", "name"))
	if err != nil {
		t.Errorf("As string: unexpected error: %v", err)
	} else if name == "" {
		t.Error("As string: got empty name")
	}

	size, err := query.As[ast.Int](val, query.Path("frontends", 1, "fft_size"))
	if err != nil || size != 4096 {
		t.Errorf("As int: got (%v, %v), want 4096", size, err)
	}

	if got, err := query.As[ast.Array](val, query.Key("station")); !errors.Is(err, query.ErrType) {
		t.Errorf("As array: got (%v, %v), want %v", got, err, query.ErrType)
	} else if want := "wrong value type: got object, want array"; err.Error() != want {
		t.Errorf("As array: got error %q, want %q", err, want)
	}

	if got, err := query.As[ast.String](val, query.Key("nonesuch")); !errors.Is(err, query.ErrNotFound) {
		t.Errorf("As missing: got (%v, %v), want %v", got, err, query.ErrNotFound)
	}
}

func TestSlicePick(t *testing.T) {
	arr := ast.Array{ast.Int(0), ast.Int(1), ast.Int(2), ast.Int(3), ast.Int(4)}

	tests := []struct {
		name  string
		query query.Query
		want  ast.Value
	}{
		{"Slice/All", query.Slice(0, 0), arr},
		{"Slice/Middle", query.Slice(1, 3), ast.Array{ast.Int(1), ast.Int(2)}},
		{"Slice/Neg", query.Slice(-2, 0), ast.Array{ast.Int(3), ast.Int(4)}},
		{"Slice/NegEnd", query.Slice(0, -3), ast.Array{ast.Int(0), ast.Int(1)}},
		{"Slice/Empty", query.Slice(5, 0), ast.Array{}},
		{"Pick", query.Pick(4, 0, -2), ast.Array{ast.Int(4), ast.Int(0), ast.Int(3)}},
		{"Pick/None", query.Pick(), ast.Array{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := query.Eval(arr, test.query)
			if err != nil {
				t.Fatalf("Eval failed: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Result (-want, +got):\n%s", diff)
			}
		})
	}

	for _, bad := range []query.Query{
		query.Slice(6, 0), query.Slice(3, 2), query.Slice(0, 9), query.Pick(5),
	} {
		if got, err := query.Eval(arr, bad); err == nil {
			t.Errorf("Eval %v: got %v, want error", bad, got.JSON())
		}
	}
}
