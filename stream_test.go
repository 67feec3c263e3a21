// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson_test

import (
	"errors"
	"testing"

	"github.com/creachadair/ejson"
	"github.com/google/go-cmp/cmp"
)

func kindsOf(toks []ejson.Token) []ejson.Kind {
	out := make([]ejson.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenStream(t *testing.T) {
	ts := ejson.NewTokenStream(ejson.NewLexer(`[a, 1]`))

	if got := ts.Buffered(); got != 0 {
		t.Errorf("Buffered: got %d, want 0", got)
	}
	if got := ts.Peek(); got.Kind != ejson.LSquare {
		t.Errorf("Peek: got %v, want %v", got, ejson.LSquare)
	}
	if got := ts.Peek(); got.Kind != ejson.LSquare {
		t.Errorf("Peek again: got %v, want %v", got, ejson.LSquare)
	}
	if got := ts.Buffered(); got != 1 {
		t.Errorf("Buffered: got %d, want 1", got)
	}

	// Peeking past the end of the input reports EOF.
	got := kindsOf(ts.PeekN(7))
	want := []ejson.Kind{
		ejson.LSquare, ejson.Keyword, ejson.Comma, ejson.Number, ejson.RSquare, ejson.EOF, ejson.EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PeekN (-want, +got):\n%s", diff)
	}

	// Consuming tokens delivers them in the same order.
	var next []ejson.Kind
	for range want {
		next = append(next, ts.Next().Kind)
	}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("Next (-want, +got):\n%s", diff)
	}
	if tok := ts.Next(); tok.Kind != ejson.EOF {
		t.Errorf("Next after end: got %v, want EOF", tok)
	}
}

func TestTokenStream_interleaved(t *testing.T) {
	const input = `{x = "y"; z: [1 2]}`
	var want []ejson.Token
	lx := ejson.NewLexer(input)
	for tok := lx.Next(); tok.Kind != ejson.EOF; tok = lx.Next() {
		want = append(want, tok)
	}

	// Mixing peeks of various sizes with consumption must not reorder or drop
	// any tokens.
	ts := ejson.NewTokenStream(ejson.NewLexer(input))
	var got []ejson.Token
	for i := 0; ts.Peek().Kind != ejson.EOF; i++ {
		ahead := ts.PeekN(i%3 + 1)
		tok := ts.Next()
		if diff := cmp.Diff(ahead[0], tok); diff != "" {
			t.Errorf("Next vs. PeekN (-want, +got):\n%s", diff)
		}
		got = append(got, tok)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
}

func TestTokenStream_expect(t *testing.T) {
	ts := ejson.NewTokenStream(ejson.NewLexer(`{ ,,;, } ]`))

	if tok, err := ts.Expect(ejson.LBrace); err != nil {
		t.Fatalf("Expect: unexpected error: %v", err)
	} else if tok.Kind != ejson.LBrace {
		t.Errorf("Expect: got %v, want %v", tok, ejson.LBrace)
	}
	if n := ts.Skip(ejson.Comma, ejson.Semicolon); n != 4 {
		t.Errorf("Skip: got %d, want 4", n)
	}
	if n := ts.Skip(ejson.Comma, ejson.Semicolon); n != 0 {
		t.Errorf("Skip again: got %d, want 0", n)
	}

	_, err := ts.Expect(ejson.RSquare, ejson.Comma)
	var serr *ejson.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Expect: got %v, want *SyntaxError", err)
	}
	if got, want := serr.Error(), `at 1:8: expected "]" or ",", got "}"`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if got := ts.Peek().Kind; got != ejson.RBrace {
		t.Errorf("After failed Expect: got %v, want %v", got, ejson.RBrace)
	}
}

func TestSyntaxError(t *testing.T) {
	t.Run("Unknown", func(t *testing.T) {
		lx := ejson.NewLexer("\n  @@@")
		err := ejson.Unexpected(lx.Next(), ejson.LBrace)
		if !errors.Is(err, ejson.ErrUnknownInput) {
			t.Errorf("Error %v: want ErrUnknownInput", err)
		}
		if got, want := err.Error(), `at 2:3: unrecognized input "@@@"`; got != want {
			t.Errorf("Error: got %q, want %q", got, want)
		}
	})
	t.Run("Keyword", func(t *testing.T) {
		err := ejson.Unexpected(ejson.NewLexer("word").Next(), ejson.Number, ejson.String, ejson.EOF)
		if got, want := err.Error(), `at 1:1: expected number, string or end of input, got keyword "word"`; got != want {
			t.Errorf("Error: got %q, want %q", got, want)
		}
		if errors.Is(err, ejson.ErrUnknownInput) {
			t.Errorf("Error %v: should not be ErrUnknownInput", err)
		}
	})
	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("bad things")
		base := ejson.Unexpected(ejson.NewLexer("}").Next())
		err := base.Wrap(cause, "trouble")
		if !errors.Is(err, cause) {
			t.Errorf("Error %v: want %v", err, cause)
		}
		if got, want := err.Error(), `at 1:1: trouble: unexpected "}"`; got != want {
			t.Errorf("Error: got %q, want %q", got, want)
		}
		if base.Message != `unexpected "}"` {
			t.Errorf("Wrap modified its receiver: %q", base.Message)
		}
	})
}
