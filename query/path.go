package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Selector grammar:

  path = ["$"] [name] steps
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" INDEX "]"
  step = "[" "'" QTEXT "'" "]"
  step = "[" "*" "]"
  name = WORD
  name = "*"

  WORD = RE `[A-Za-z_][A-Za-z0-9_]*`
 QTEXT = RE `([^'\\]|\\.)*`
 INDEX = RE `-?\d+`

A name selects an object member, an index selects an array element, "*"
selects all the values of an object or array (Glob), and ".." applies the
following name to every descendant (Recur).
*/

// ParsePath parses s as a selector and returns the equivalent query.
// For example, "servers[0].listen" is equivalent to Path("servers", 0,
// "listen"), and "$..port" to Recur("port").
func ParsePath(s string) (Query, error) {
	rest, _ := strings.CutPrefix(s, "$")
	var out Seq

	// The first name may omit its leading dot.
	if m := wordRE.FindString(rest); m != "" {
		out = append(out, Key(m))
		rest = rest[len(m):]
	}
	for rest != "" {
		q, tail, err := parseStep(rest)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(rest), err)
		}
		out = append(out, q)
		rest = tail
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return out, nil
}

// MustParsePath is as ParsePath, but panics if s is invalid.
func MustParsePath(s string) Query {
	q, err := ParsePath(s)
	if err != nil {
		panic(fmt.Sprintf("query: invalid path %q: %v", s, err))
	}
	return q
}

func parseStep(s string) (_ Query, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		q, u, err := parseName(t)
		if err != nil {
			return nil, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return Recur(q), u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		q, u, err := parseName(t)
		if err != nil {
			return nil, s, fmt.Errorf("invalid .name: %w", err)
		}
		return q, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		q, u, err := parseBracket(t)
		if err != nil {
			return nil, s, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return nil, s, errors.New("missing close bracket")
		}
		return q, u, nil
	}
	return nil, s, errors.New("invalid path step")
}

func parseName(s string) (Query, string, error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Glob(), t, nil
	}
	if m := wordRE.FindString(s); m != "" {
		return Key(m), s[len(m):], nil
	}
	return nil, s, errors.New("invalid name")
}

func parseBracket(s string) (Query, string, error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Glob(), t, nil
	}
	if m := indexRE.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil, s, fmt.Errorf("invalid index: %w", err)
		}
		return Index(n), s[len(m):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return Key(unquoteName(m[1])), s[len(m[0]):], nil
	}
	return nil, s, fmt.Errorf("invalid value: %q", s)
}

var (
	wordRE  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)
)

// FormatPath renders a sequence of object keys (strings) and array offsets
// (ints) as a selector string that ParsePath accepts.
func FormatPath(keys ...any) string {
	var sb strings.Builder
	for _, key := range keys {
		switch t := key.(type) {
		case string:
			if wordRE.FindString(t) == t && t != "" {
				if sb.Len() != 0 {
					sb.WriteByte('.')
				}
				sb.WriteString(t)
			} else {
				fmt.Fprintf(&sb, "['%s']", quoteName(t))
			}
		case int:
			fmt.Fprintf(&sb, "[%d]", t)
		default:
			panic(fmt.Sprintf("invalid path element %T", key))
		}
	}
	if sb.Len() == 0 {
		return "$"
	}
	return sb.String()
}

var nameQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteName(s string) string { return nameQuoter.Replace(s) }

func unquoteName(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
