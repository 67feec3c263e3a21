// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/mds/queue"
)

// A TokenStream wraps a Lexer with a buffer of pending tokens, so that a
// parser can look ahead one or more tokens before committing to a
// production. Tokens are delivered in exactly the order the lexer produced
// them. Once the input is exhausted, the stream reports EOF forever.
type TokenStream struct {
	lx  *Lexer
	buf *queue.Queue[Token]
}

// NewTokenStream constructs a new TokenStream that reads tokens from lx.
func NewTokenStream(lx *Lexer) *TokenStream {
	return &TokenStream{lx: lx, buf: queue.New[Token]()}
}

// fill ensures at least n tokens are buffered.
func (ts *TokenStream) fill(n int) {
	for ts.buf.Len() < n {
		ts.buf.Add(ts.lx.Next())
	}
}

// Peek returns the next token without consuming it.
func (ts *TokenStream) Peek() Token {
	ts.fill(1)
	tok, _ := ts.buf.Peek(0)
	return tok
}

// PeekN returns the next n tokens without consuming them.
func (ts *TokenStream) PeekN(n int) []Token {
	ts.fill(n)
	out := make([]Token, n)
	for i := range out {
		out[i], _ = ts.buf.Peek(i)
	}
	return out
}

// Next consumes and returns the next token.
func (ts *TokenStream) Next() Token {
	ts.fill(1)
	tok, _ := ts.buf.Pop()
	return tok
}

// Buffered reports the number of tokens read from the lexer but not yet
// consumed.
func (ts *TokenStream) Buffered() int { return ts.buf.Len() }

// Expect consumes and returns the next token if its kind is one of kinds.
// Otherwise it returns a *SyntaxError describing the token, which is left
// unconsumed.
func (ts *TokenStream) Expect(kinds ...Kind) (Token, error) {
	tok := ts.Peek()
	if !slices.Contains(kinds, tok.Kind) {
		return tok, Unexpected(tok, kinds...)
	}
	return ts.Next(), nil
}

// Skip consumes any run of tokens whose kinds are among kinds, and reports
// how many were consumed.
func (ts *TokenStream) Skip(kinds ...Kind) int {
	var n int
	for slices.Contains(kinds, ts.Peek().Kind) {
		ts.Next()
		n++
	}
	return n
}

// ErrUnknownInput is reported (wrapped in a *SyntaxError) when the parser
// reaches input that no lexical rule recognizes.
var ErrUnknownInput = errors.New("unrecognized input")

// SyntaxError is the concrete type of errors reported for invalid input.
type SyntaxError struct {
	Location Location
	Found    Token  // the offending token
	Want     []Kind // the token kinds acceptable at Location, if known
	Message  string

	err error
}

// Unexpected returns a *SyntaxError reporting that tok was found where one of
// the want kinds was expected.
func Unexpected(tok Token, want ...Kind) *SyntaxError {
	serr := &SyntaxError{
		Location: tok.Location,
		Found:    tok,
		Want:     want,
		Message:  kindLabel(want, tok),
	}
	if tok.Kind == Unknown {
		serr.err = ErrUnknownInput
	}
	return serr
}

// Wrap returns a copy of e whose message is prefixed by msg, and which wraps
// err in addition to the original cause.
func (e *SyntaxError) Wrap(err error, msg string) *SyntaxError {
	cp := *e
	cp.Message = msg + ": " + e.Message
	cp.err = errors.Join(err, e.err)
	return &cp
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// kindLabel makes a human-readable summary string for the given token kinds.
func kindLabel(kinds []Kind, got Token) string {
	if got.Kind == Unknown {
		text := got.Text
		if len(text) > 16 {
			text = text[:16] + "..."
		}
		return fmt.Sprintf("unrecognized input %q", text)
	}
	if len(kinds) == 0 {
		return fmt.Sprintf("unexpected %v", got)
	}
	var exp string
	if len(kinds) == 1 {
		exp = kinds[0].String()
	} else {
		last := len(kinds) - 1
		ss := make([]string, last)
		for i, k := range kinds[:last] {
			ss[i] = k.String()
		}
		exp = strings.Join(ss, ", ") + " or " + kinds[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
