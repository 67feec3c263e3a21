package build

import "github.com/creachadair/ejson/ast"

// Default is the Builder used by the package-level functions.
var Default = New()

// Register adds f to the Default builder under the given name.
func Register(name string, f Factory) { Default.Register(name, f) }

// Build constructs application objects from v using the Default builder.
func Build(v ast.Value) (any, error) { return Default.Build(v) }

// LoadFile parses the named EJSON file and builds application objects from
// its contents using b. Errors reading or parsing the file are reported as
// returned by ast.ParseFile.
func (b *Builder) LoadFile(path string) (any, error) {
	v, err := ast.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return b.Build(v)
}

// LoadFile parses the named EJSON file and builds application objects from its
// contents using the Default builder.
func LoadFile(path string) (any, error) { return Default.LoadFile(path) }
