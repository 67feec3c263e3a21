// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/ejson"
)

// ErrExtraInput is reported (wrapped in a *ejson.SyntaxError) when input
// remains after a complete value has been parsed.
var ErrExtraInput = errors.New("extra input after value")

// valueStart lists the kinds of token that can begin a value.
var valueStart = []ejson.Kind{
	ejson.LSquare, ejson.LBrace, ejson.Number, ejson.String, ejson.Keyword,
}

// A Parser parses EJSON text into values. The zero value is ready for use, and
// parses with the default (lenient) settings.
type Parser struct {
	strict bool // require closing brackets and braces
}

// NewParser constructs a new Parser with default settings.
func NewParser() *Parser { return new(Parser) }

// RequireClose configures the parser to require (true) or not require (false)
// the closing "]" of an array and "}" of an object.
//
// By default, when an array or object is not followed by its closing
// delimiter, the collection ends where its elements end, and the stray token
// is left for the enclosing production. At the top level, any such token is
// reported as extra input.
func (p *Parser) RequireClose(ok bool) { p.strict = ok }

// ParseString parses a single value from text. It reports an error if the
// text does not contain exactly one value, apart from whitespace, comments,
// and separators in collections. In case of a syntax error, the returned
// error has type *ejson.SyntaxError.
func (p *Parser) ParseString(text string) (Value, error) {
	ps := &parseState{
		ts:     ejson.NewTokenStream(ejson.NewLexer(text)),
		strict: p.strict,
	}
	v, ok := ps.expression()
	if ps.err != nil {
		return nil, ps.err
	} else if !ok {
		return nil, ejson.Unexpected(ps.ts.Peek(), valueStart...)
	}
	if tok := ps.ts.Peek(); tok.Kind != ejson.EOF {
		return nil, ejson.Unexpected(tok, ejson.EOF).Wrap(ErrExtraInput, "extra input")
	}
	return v, nil
}

// Parse reads all of r and parses a single value from it.
func (p *Parser) Parse(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseString(string(data))
}

// ParseFile reads the contents of the named file and parses a single value
// from it. Errors reading the file are returned as reported by the os package.
func (p *Parser) ParseFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := p.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ParseString parses a single value from text with the default settings.
func ParseString(text string) (Value, error) { return new(Parser).ParseString(text) }

// Parse parses a single value from the contents of r with the default
// settings.
func Parse(r io.Reader) (Value, error) { return new(Parser).Parse(r) }

// ParseFile parses a single value from the contents of the named file with
// the default settings.
func ParseFile(path string) (Value, error) { return new(Parser).ParseFile(path) }

// parseState is the state of a single parse. Each production reports whether
// it matched the input. A production that does not match consumes no input,
// and the caller may try another alternative. Once a production has consumed
// input, a failure is recorded in err and every caller returns immediately.
type parseState struct {
	ts     *ejson.TokenStream
	strict bool
	err    error
}

// expression := list | dict | number | string
func (ps *parseState) expression() (Value, bool) {
	if v, ok := ps.list(); ok || ps.err != nil {
		return v, ok
	}
	if v, ok := ps.dict(); ok || ps.err != nil {
		return v, ok
	}
	if v, ok := ps.number(); ok {
		return v, ok
	}
	return ps.str()
}

// list := '[' (expression separator*)* ']'
func (ps *parseState) list() (Value, bool) {
	if ps.ts.Peek().Kind != ejson.LSquare {
		return nil, false
	}
	ps.ts.Next()

	out := Array{}
	for {
		v, ok := ps.expression()
		if ps.err != nil {
			return nil, false
		} else if !ok {
			break
		}
		out = append(out, v)
		ps.separators()
	}
	if !ps.close(ejson.RSquare, valueStart...) {
		return nil, false
	}
	return out, true
}

// dict       := '{' dict_items '}'
// dict_items := (key (':' | '=')? expression separator*)*
func (ps *parseState) dict() (Value, bool) {
	if ps.ts.Peek().Kind != ejson.LBrace {
		return nil, false
	}
	ps.ts.Next()

	out := Object{}
	for {
		key, ok := ps.key()
		if !ok {
			break
		}
		if k := ps.ts.Peek().Kind; k == ejson.Colon || k == ejson.Equals {
			ps.ts.Next()
		}

		v, ok := ps.expression()
		if ps.err != nil {
			return nil, false
		} else if !ok {
			serr := ejson.Unexpected(ps.ts.Peek(), valueStart...)
			serr.Message = fmt.Sprintf("value of %q: %s", key, serr.Message)
			ps.err = serr
			return nil, false
		}
		out.Set(key, v)
		ps.separators()
	}
	if !ps.close(ejson.RBrace, ejson.String, ejson.Keyword) {
		return nil, false
	}
	return out, true
}

// key := STRING | KEYWORD
//
// The key of a string token is its unescaped value; the key of a keyword is
// its text as written, including true, false, and null.
func (ps *parseState) key() (string, bool) {
	switch tok := ps.ts.Peek(); tok.Kind {
	case ejson.String:
		ps.ts.Next()
		return tok.Value.(string), true
	case ejson.Keyword:
		ps.ts.Next()
		return tok.Text, true
	}
	return "", false
}

// number := NUMBER
func (ps *parseState) number() (Value, bool) {
	tok := ps.ts.Peek()
	if tok.Kind != ejson.Number {
		return nil, false
	}
	ps.ts.Next()
	switch v := tok.Value.(type) {
	case int64:
		return Int(v), true
	case float64:
		return Float(v), true
	}
	panic(fmt.Sprintf("ast: invalid number value %T", tok.Value))
}

// string := STRING | KEYWORD
//
// A keyword denotes a Bool if it is true or false, Null if it is null (in any
// letter case), and otherwise a String with the text of the keyword.
func (ps *parseState) str() (Value, bool) {
	tok := ps.ts.Peek()
	switch tok.Kind {
	case ejson.String:
		ps.ts.Next()
		return String(tok.Value.(string)), true
	case ejson.Keyword:
		ps.ts.Next()
		switch v := tok.Value.(type) {
		case bool:
			return Bool(v), true
		case nil:
			return Null, true
		default:
			return String(tok.Text), true
		}
	}
	return nil, false
}

// separators consumes any run of separators.
//
// separator := ',' | ';'
func (ps *parseState) separators() { ps.ts.Skip(ejson.Comma, ejson.Semicolon) }

// close consumes the closing delimiter of a collection, if it is next.  If
// not, close reports an error in strict mode, and otherwise leaves the input
// unchanged. The other kinds are those that could have continued the
// collection, and are included in the error.
func (ps *parseState) close(closer ejson.Kind, other ...ejson.Kind) bool {
	if ps.ts.Peek().Kind == closer {
		ps.ts.Next()
		return true
	} else if ps.strict {
		ps.err = ejson.Unexpected(ps.ts.Peek(), append([]ejson.Kind{closer}, other...)...)
		return false
	}
	return true
}
