package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

var keywords = map[string]bool{
	"null":  true,
	"true":  true,
	"false": true,
	"nan":   true,
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// IsIdentifier reports whether v has identifier syntax.
func IsIdentifier(v string) bool {
	if v == "" || !isIdentStart(v[0]) {
		return false
	}
	for i := 1; i < len(v); i++ {
		if !isIdentPart(v[i]) {
			return false
		}
	}
	return true
}

// IsSymbolID reports whether v has the form $<digits>.
func IsSymbolID(v string) bool {
	if len(v) < 2 || v[0] != '$' {
		return false
	}
	for i := 1; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

// NeedsQuote reports whether symbol text v must be single quoted.
func NeedsQuote(v string) bool {
	return !IsIdentifier(v) || keywords[v] || IsSymbolID(v)
}

// QuoteSymbol returns v as symbol text, single quoted when needed.
func QuoteSymbol(v string) string {
	if !NeedsQuote(v) {
		return v
	}
	return quote(v, '\'')
}

// QuoteString returns v as a double quoted Ion string.
func QuoteString(v string) string {
	return quote(v, '"')
}

func quote(v string, q byte) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = q
	for _, r := range v {
		switch r {
		case rune(q):
			d = append(d, '\\', q)
		case '\\':
			d = append(d, '\\', '\\')
		case 0:
			d = append(d, '\\', '0')
		case '\a':
			d = append(d, '\\', 'a')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		case '\v':
			d = append(d, '\\', 'v')
		default:
			if unicode.IsControl(r) || r == utf8.RuneError {
				d = fmt.Appendf(d, "\\u%04x", r)
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, q)
	return string(d)
}

// QuoteClob returns v as the double quoted body of a clob. Bytes outside
// printable ASCII are written as \xHH.
func QuoteClob(v []byte) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	for _, c := range v {
		switch {
		case c == '"':
			d = append(d, '\\', '"')
		case c == '\\':
			d = append(d, '\\', '\\')
		case c == '\n':
			d = append(d, '\\', 'n')
		case c == '\t':
			d = append(d, '\\', 't')
		case c == '\r':
			d = append(d, '\\', 'r')
		case c < 0x20 || c >= 0x7f:
			d = fmt.Appendf(d, "\\x%02x", c)
		default:
			d = append(d, c)
		}
	}
	d = append(d, '"')
	return string(d)
}
