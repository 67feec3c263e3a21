// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

const hexDigit = "0123456789abcdef"

// Quote encodes src as the body of a string literal. Double quotes and
// backslashes are escaped, as are the C0 and C1 control characters, DEL, the
// line and paragraph separators, and the noncharacters U+FFFE and U+FFFF, so
// that the result is printable as YAML as well as JSON. The enclosing
// quotation marks are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch {
		case r == '"' || r == '\\':
			buf = append(buf, '\\', byte(r))
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case 0x7f <= r && r <= 0x9f, r == utf8.RuneError,
			r == '\u2028', r == '\u2029', r == '\ufffe', r == '\uffff':
			buf = append(buf, '\\', 'u',
				hexDigit[r>>12&15], hexDigit[r>>8&15], hexDigit[r>>4&15], hexDigit[r&15])
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}
