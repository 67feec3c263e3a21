// Package build constructs application objects from EJSON values.
//
// A Builder walks a value tree and rebuilds it as plain Go data. Arrays become
// []any and scalars become nil, bool, int64, float64, or string. Objects are
// rebuilt member by member, and then examined for a factory key ("type" or
// "factory"). An object with no factory key becomes a map[string]any. An
// object with a factory key is passed to the Factory registered under that
// name, and the result of the factory replaces the object:
//
//	b := build.New()
//	b.Register("jack_input", func(c build.Config) (any, error) {
//	   return &JackInput{Port: c.Built["port"].(string)}, nil
//	})
//	v, err := b.Build(root) // {type: jack_input, port: "system:capture_1"}
//
// If no factory is registered under the name, the object is replaced by a
// *Placeholder recording the name and the configuration.
package build

import (
	"errors"
	"fmt"
	"sync"

	"github.com/creachadair/ejson/ast"
	"github.com/creachadair/ejson/query"

	"github.com/ghodss/yaml"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("build")

// FactoryKeys are the object keys that name a factory, in order of
// precedence. If an object has more than one, the first one listed wins.
var FactoryKeys = []string{"type", "factory"}

// Config is the input to a Factory.
type Config struct {
	// Name is the name under which the factory was found.
	Name string

	// Raw is the original object, before any of its values were built.
	Raw ast.Object

	// Built maps each key of Raw to its built value. It includes the
	// factory key itself.
	Built map[string]any
}

// Decode unpacks the raw configuration into the value pointed to by dst,
// usually a struct with json field tags. Keys with no matching field are
// ignored.
func (c Config) Decode(dst any) error {
	if err := yaml.Unmarshal([]byte(c.Raw.JSON()), dst); err != nil {
		return fmt.Errorf("decode %q config: %w", c.Name, err)
	}
	return nil
}

// Get returns the raw configuration value at the given selector path, for
// example "window.size" or "taps[0]". The syntax is that of query.ParsePath.
// If no value exists at path, Get reports an error wrapping query.ErrNotFound.
func (c Config) Get(path string) (ast.Value, error) {
	q, err := query.ParsePath(path)
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", c.Name, err)
	}
	return c.eval(path, q)
}

// Lookup is as Get, but returns def if no value exists at path. The value def
// may be an ast.Value or any type accepted by ast.ToValue. A value of the
// wrong shape along path is still reported as an error.
func (c Config) Lookup(path string, def any) (ast.Value, error) {
	q, err := query.ParsePath(path)
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", c.Name, err)
	}
	return c.eval(path, query.Default(q, def))
}

func (c Config) eval(path string, q query.Query) (ast.Value, error) {
	v, err := query.Eval(c.Raw, q)
	if err != nil {
		return nil, fmt.Errorf("%s config %s: %w", c.Name, path, err)
	}
	return v, nil
}

// A Factory constructs an application object from its configuration.
type Factory func(Config) (any, error)

// A Placeholder stands in for an object whose factory is not registered.
type Placeholder struct {
	Factory string
	Config  map[string]any
}

// Get returns the configuration value for key, and reports whether it exists.
func (p *Placeholder) Get(key string) (any, bool) {
	v, ok := p.Config[key]
	return v, ok
}

func (p *Placeholder) String() string {
	return fmt.Sprintf("Placeholder(%q, %d keys)", p.Factory, len(p.Config))
}

// A Builder turns value trees into application objects using a registry of
// factories. A Builder is safe for concurrent use by multiple goroutines.
type Builder struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New constructs a new Builder with no registered factories.
func New() *Builder { return &Builder{factories: make(map[string]Factory)} }

// Register adds f to the registry under the given name, replacing any factory
// previously registered with that name.
func (b *Builder) Register(name string, f Factory) {
	if f == nil {
		panic("build: nil factory")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.factories[name] = f
}

// Lookup returns the factory registered under name, or nil.
func (b *Builder) Lookup(name string) Factory {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.factories[name]
}

// Build constructs application objects from v. Errors reported by factories
// are wrapped in a *PathError giving the location of the object.
func (b *Builder) Build(v ast.Value) (any, error) {
	return b.build(v, nil)
}

func (b *Builder) build(v ast.Value, path []any) (any, error) {
	switch t := v.(type) {
	case ast.Array:
		out := make([]any, len(t))
		for i, elt := range t {
			bv, err := b.build(elt, append(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = bv
		}
		return out, nil

	case ast.Object:
		built := make(map[string]any, len(t))
		for _, m := range t {
			bv, err := b.build(m.Value, append(path, m.Key))
			if err != nil {
				return nil, err
			}
			built[m.Key] = bv
		}

		// The factory name comes from the original object.
		name, ok, err := factoryName(t)
		if err != nil {
			return nil, &PathError{Path: pathCopy(path), Err: err}
		} else if !ok {
			return built, nil
		}
		f := b.Lookup(name)
		if f == nil {
			log.Warningf("No factory registered for %q at %s; using a placeholder",
				name, query.FormatPath(path...))
			return &Placeholder{Factory: name, Config: built}, nil
		}
		log.Debugf("Building %q at %s", name, query.FormatPath(path...))
		obj, err := f(Config{Name: name, Raw: t, Built: built})
		if err != nil {
			return nil, &PathError{Path: pathCopy(path), Factory: name, Err: err}
		}
		return obj, nil

	default:
		return ast.ToNative(v), nil
	}
}

// factoryName reports the factory name given by o, if any.
func factoryName(o ast.Object) (string, bool, error) {
	for _, key := range FactoryKeys {
		s, err := query.As[ast.String](o, query.Key(key))
		if errors.Is(err, query.ErrNotFound) {
			continue
		} else if err != nil {
			return "", false, fmt.Errorf("factory key %q: %w", key, err)
		}
		return string(s), true, nil
	}
	return "", false, nil
}

func pathCopy(path []any) []any { return append([]any(nil), path...) }

// ErrFactory is wrapped by errors reported from a Factory.
var ErrFactory = errors.New("factory failed")

// PathError records an error building the object at a location in a value
// tree.
type PathError struct {
	Path    []any  // object keys (string) and array offsets (int)
	Factory string // the factory name, if a factory reported the error
	Err     error
}

// Error satisfies the error interface.
func (e *PathError) Error() string {
	loc := query.FormatPath(e.Path...)
	if e.Factory != "" {
		return fmt.Sprintf("build %s: %s: %v", loc, e.Factory, e.Err)
	}
	return fmt.Sprintf("build %s: %v", loc, e.Err)
}

// Unwrap supports error wrapping. An error reported by a factory also
// satisfies errors.Is(err, ErrFactory).
func (e *PathError) Unwrap() []error {
	if e.Factory != "" {
		return []error{ErrFactory, e.Err}
	}
	return []error{e.Err}
}
