// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles backslash escapes in EJSON string literals.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the body of a string literal, with the enclosing double
// quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a pair
// of \u escapes forming a UTF-16 surrogate pair is combined into one rune.
// Unknown escapes and invalid \u escapes are replaced by the Unicode
// replacement rune. Unquote reports an error for an incomplete escape.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/', '\'':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := readHex4(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if utf16.IsSurrogate(v) {
				// Combine with a following low surrogate, if there is one.
				if lo, rest, ok := lowSurrogate(src); ok {
					if c := utf16.DecodeRune(v, lo); c != utf8.RuneError {
						v, src = c, rest
					}
				}
			}
			dec = utf8.AppendRune(dec, v)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

// readHex4 decodes the four hex digits at the front of src. Invalid digits
// decode as the replacement rune.
func readHex4(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	v, err := parseHex(src.SliceTo(4))
	if err != nil {
		return utf8.RuneError, src.SliceFrom(4), nil
	}
	return rune(v), src.SliceFrom(4), nil
}

// lowSurrogate reports whether src begins with a \u escape for a low
// surrogate, and if so returns its value and the remaining input.
func lowSurrogate(src mem.RO) (rune, mem.RO, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, false
	}
	v, err := parseHex(src.Slice(2, 6))
	if err != nil || v < 0xdc00 || v > 0xdfff {
		return 0, src, false
	}
	return rune(v), src.SliceFrom(6), true
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
