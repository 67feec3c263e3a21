// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A Location describes the position of a token in source text. A Location is
// a snapshot taken where the token begins.
type Location struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 1-based
}

// String renders the location as line:column.
func (loc Location) String() string { return fmt.Sprintf("%d:%d", loc.Line, loc.Column) }

// startLocation is the location of the first byte of an input.
var startLocation = Location{Offset: 0, Line: 1, Column: 1}

// advance returns the location reached from loc after consuming text.
func (loc Location) advance(text string) Location {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			loc.Line++
			loc.Column = 1
		} else {
			loc.Column++
		}
	}
	loc.Offset += len(text)
	return loc
}
