// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ejson implements a lexer for EJSON, a relaxed dialect of JSON.
//
// EJSON accepts everything a configuration author is likely to type:
//
//	// Line comments and /* block comments */ are ignored.
//	{
//	  name = "radio-observer"      // "=" or ":" separates keys from values
//	  jack_left_port: "system:capture_1";
//	  channels [1, 2,, 3]          // separators are optional and repeatable
//	  enabled TRUE                 // keywords are case-insensitive
//	}
//
// Keys need not be quoted, and a bare word in value position is a string.
//
// # Lexing
//
// The Lexer type converts a text buffer into tokens. Construct a lexer from a
// string and call its Next method to iterate over the tokens:
//
//	lx := ejson.NewLexer(input)
//	for tok := lx.Next(); tok.Kind != ejson.EOF; tok = lx.Next() {
//	   log.Printf("Next token: %v at %v", tok, tok.Location)
//	}
//
// Whitespace and comments are discarded. If the lexer finds input it does not
// recognize, it reports a single Unknown token covering the rest of the input.
// After the end of the input, Next reports EOF forever.
//
// # Lookahead
//
// The TokenStream type buffers the tokens of a lexer so that a parser can
// peek at one or more tokens before consuming them:
//
//	ts := ejson.NewTokenStream(ejson.NewLexer(input))
//	if ts.Peek().Kind == ejson.LBrace {
//	   ...
//	}
//
// # Parsing
//
// The ast package parses EJSON text into a tree of values, and the build
// package turns such trees into application objects.
package ejson
