// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/ejson/internal/escape"

	"go4.org/mem"
)

// A rule is a single entry of the lexical rule table. The pattern of a rule
// is anchored at the current scan offset. The decode function computes the
// token value from its text, or reports false if the text cannot be decoded.
type rule struct {
	kind    Kind
	pattern *regexp.Regexp
	decode  func(text string) (any, bool)
}

// ignorePattern matches whitespace. It is checked before the rule table on
// every iteration, and its matches are always discarded.
var ignorePattern = regexp.MustCompile(`^\s+`)

// rules is the lexical rule table, in priority order. The first rule whose
// pattern matches at the current offset determines the token.
var rules = []rule{
	{Keyword, regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`), decodeKeyword},
	{Number, regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][-+]?[0-9]*)?`), decodeNumber},
	{String, regexp.MustCompile(`^"(?:\\.|[^"\\\n])*"`), decodeString},
	{LParen, regexp.MustCompile(`^\(`), decodeText},
	{RParen, regexp.MustCompile(`^\)`), decodeText},
	{LSquare, regexp.MustCompile(`^\[`), decodeText},
	{RSquare, regexp.MustCompile(`^\]`), decodeText},
	{LBrace, regexp.MustCompile(`^\{`), decodeText},
	{RBrace, regexp.MustCompile(`^\}`), decodeText},
	{Comma, regexp.MustCompile(`^,`), decodeText},
	{Semicolon, regexp.MustCompile(`^;`), decodeText},
	{Colon, regexp.MustCompile(`^:`), decodeText},
	{Equals, regexp.MustCompile(`^=`), decodeText},
	{Comment, regexp.MustCompile(`^(?s://[^\n]*|/\*.*?\*/)`), decodeText},
}

// A Lexer converts a text buffer into a sequence of tokens. Each call to Next
// returns the next token of the input. At the end of the input, and after an
// Unknown token has been reported, Next returns EOF tokens forever.
type Lexer struct {
	text     string
	loc      Location
	comments bool // report comments
	dead     bool // no rule matched; the input is finished
}

// NewLexer constructs a new lexer that consumes text.
func NewLexer(text string) *Lexer { return &Lexer{text: text, loc: startLocation} }

// KeepComments configures the lexer to report (true) or discard (false)
// comment tokens. By default comments are discarded.
func (lx *Lexer) KeepComments(ok bool) { lx.comments = ok }

// Location returns the current scan location of lx.
func (lx *Lexer) Location() Location { return lx.loc }

// Next returns the next token of the input.
//
// If no rule matches at the current offset, Next returns a single Unknown
// token spanning the remainder of the input, and EOF thereafter.
func (lx *Lexer) Next() Token {
	for !lx.dead && lx.loc.Offset < len(lx.text) {
		rest := lx.text[lx.loc.Offset:]

		// Discard whitespace.
		if m := ignorePattern.FindStringIndex(rest); m != nil {
			lx.loc = lx.loc.advance(rest[:m[1]])
			continue
		}

		tok, ok := lx.match(rest)
		if !ok {
			tok = Token{Kind: Unknown, Location: lx.loc, Text: rest, Value: rest}
			lx.loc = lx.loc.advance(rest)
			lx.dead = true
			return tok
		}
		lx.loc = lx.loc.advance(tok.Text)
		if tok.Kind == Comment && !lx.comments {
			continue
		}
		return tok
	}
	return Token{Kind: EOF, Location: lx.loc, Value: ""}
}

// match finds the first rule of the table matching at the front of rest, and
// returns the corresponding token at the current location.
func (lx *Lexer) match(rest string) (Token, bool) {
	for _, r := range rules {
		m := r.pattern.FindStringIndex(rest)
		if m == nil || m[1] == 0 {
			continue
		}
		text := rest[:m[1]]
		v, ok := r.decode(text)
		if !ok {
			return Token{}, false
		}
		return Token{Kind: r.kind, Location: lx.loc, Text: text, Value: v}, true
	}
	return Token{}, false
}

func decodeText(text string) (any, bool) { return text, true }

func decodeKeyword(text string) (any, bool) {
	switch strings.ToLower(text) {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true
	}
	return text, true
}

// decodeNumber decodes the text of a number token. Integral values that fit
// in an int64 decode as int64, all others as float64. An exponent marker with
// no digits is ignored, and the mantissa is decoded as a float64. A value too
// large for a float64 does not decode.
func decodeNumber(text string) (any, bool) {
	if !strings.ContainsAny(text, ".eE") {
		if z, err := strconv.ParseInt(text, 10, 64); err == nil {
			return z, true
		}
	}
	mant := strings.TrimRight(text, "eE+-")
	f, err := strconv.ParseFloat(mant, 64)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func decodeString(text string) (any, bool) {
	dec, err := escape.Unquote(mem.S(text[1 : len(text)-1]))
	if err != nil {
		return nil, false
	}
	return string(dec), true
}
