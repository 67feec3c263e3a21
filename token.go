// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import "fmt"

// Kind is the type of a lexical token in the EJSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Unknown   Kind = iota // unrecognized input
	EOF                   // end of input
	Keyword               // bare word, including true, false, and null
	Number                // number: integer or floating-point
	String                // quoted string
	LParen                // left parenthesis "("
	RParen                // right parenthesis ")"
	LSquare               // left square bracket "["
	RSquare               // right square bracket "]"
	LBrace                // left brace "{"
	RBrace                // right brace "}"
	Comma                 // comma ","
	Semicolon             // semicolon ";"
	Colon                 // colon ":"
	Equals                // equals sign "="
	Comment               // comment: /* ... */ or // ... <LF>
)

var kindStr = [...]string{
	Unknown:   "unknown input",
	EOF:       "end of input",
	Keyword:   "keyword",
	Number:    "number",
	String:    "string",
	LParen:    `"("`,
	RParen:    `")"`,
	LSquare:   `"["`,
	RSquare:   `"]"`,
	LBrace:    `"{"`,
	RBrace:    `"}"`,
	Comma:     `","`,
	Semicolon: `";"`,
	Colon:     `":"`,
	Equals:    `"="`,
	Comment:   "comment",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Unknown]
	}
	return kindStr[v]
}

// A Token is a classified, located unit of lexical input. Tokens are values
// and are not modified after the lexer produces them.
type Token struct {
	Kind     Kind
	Location Location

	// Text is the exact source text matched for the token.
	Text string

	// Value is the decoded value of the token:
	//
	//	Kind     | Value
	//	-------- | ----------------------------------------------------
	//	Keyword  | bool for true/false, nil for null, otherwise Text
	//	Number   | int64 if integral and in range, otherwise float64
	//	String   | the unescaped contents (string)
	//	others   | Text
	Value any
}

// Span returns the location span of the token.
func (t Token) Span() Span {
	return Span{Pos: t.Location.Offset, End: t.Location.Offset + len(t.Text)}
}

// IsNull reports whether t is a null keyword (in any letter case).
func (t Token) IsNull() bool { return t.Kind == Keyword && t.Value == nil }

// String renders the token kind and text, for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return t.Kind.String()
	case Keyword, Number, String, Unknown, Comment:
		return fmt.Sprintf("%v %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
