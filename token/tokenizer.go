package token

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// Tokenizer splits Ion text into tokens. Whitespace and comments are
// skipped. Operator tokens are produced only while InSexp is set.
type Tokenizer struct {
	d   []byte
	i   int
	doc *PosDoc

	InSexp bool
}

func NewTokenizer(d []byte) *Tokenizer {
	return &Tokenizer{d: d, doc: NewPosDoc(d)}
}

// NewTokenizerFromReader reads all of r and tokenizes it.
func NewTokenizerFromReader(r io.Reader) (*Tokenizer, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewTokenizer(d), nil
}

// Offset returns the byte offset of the next unread input.
func (t *Tokenizer) Offset() int {
	return t.i
}

// Pos returns the position of byte offset i.
func (t *Tokenizer) Pos(i int) *Pos {
	return t.doc.Pos(i)
}

// Next returns the next token, or io.EOF at the end of input.
func (t *Tokenizer) Next() (Token, error) {
	if err := t.skip(); err != nil {
		return Token{}, err
	}
	if t.i >= len(t.d) {
		return Token{}, io.EOF
	}
	start := t.i
	c := t.d[t.i]
	switch c {
	case '{':
		if t.hasPrefix("{{") {
			return t.lob()
		}
		return t.punct(TLCurl)
	case '}':
		return t.punct(TRCurl)
	case '[':
		return t.punct(TLSquare)
	case ']':
		return t.punct(TRSquare)
	case '(':
		return t.punct(TLParen)
	case ')':
		return t.punct(TRParen)
	case ',':
		return t.punct(TComma)
	case ':':
		if t.hasPrefix("::") {
			return Token{}, UnexpectedErr("'::'", t.doc.Pos(start))
		}
		return t.punct(TColon)
	case '"':
		t.i++
		s, err := t.shortString(false)
		if err != nil {
			return Token{}, err
		}
		return t.tok(TString, start, s), nil
	case '\'':
		if t.hasPrefix("'''") {
			s, err := t.longStrings(false)
			if err != nil {
				return Token{}, err
			}
			return t.tok(TString, start, s), nil
		}
		t.i++
		s, err := t.quotedSymbol()
		if err != nil {
			return Token{}, err
		}
		return t.symbolOrAnnotation(TSymbol, start, s), nil
	}
	if isIdentStart(c) {
		return t.identifier(start)
	}
	if isDigit(c) || (c == '-' && t.i+1 < len(t.d) && isDigit(t.d[t.i+1])) {
		return t.number(start)
	}
	if (c == '+' || c == '-') && t.hasPrefixAt(t.i+1, "inf") && t.delimitedAt(t.i+4) {
		t.i += 4
		return t.tok(TFloat, start, t.d[start:t.i]), nil
	}
	if isOperator(c) {
		if !t.InSexp {
			return Token{}, NewTokenizeErr(ErrOperator, t.doc.Pos(start))
		}
		for t.i < len(t.d) && isOperator(t.d[t.i]) && !t.hasPrefix("//") && !t.hasPrefix("/*") {
			t.i++
		}
		return t.tok(TOperator, start, t.d[start:t.i]), nil
	}
	r, _ := utf8.DecodeRune(t.d[t.i:])
	return Token{}, UnexpectedErr(strconv.QuoteRune(r), t.doc.Pos(start))
}

func (t *Tokenizer) punct(tt TokenType) (Token, error) {
	start := t.i
	t.i++
	return t.tok(tt, start, t.d[start:t.i]), nil
}

func (t *Tokenizer) tok(tt TokenType, start int, b []byte) Token {
	return Token{Type: tt, Pos: t.doc.Pos(start), Bytes: b}
}

func (t *Tokenizer) hasPrefix(p string) bool {
	return t.hasPrefixAt(t.i, p)
}

func (t *Tokenizer) hasPrefixAt(i int, p string) bool {
	return i <= len(t.d) && bytes.HasPrefix(t.d[i:], []byte(p))
}

// delimitedAt reports whether a value may end at offset i.
func (t *Tokenizer) delimitedAt(i int) bool {
	if i >= len(t.d) {
		return true
	}
	switch t.d[i] {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',', ']', '}', ')', '[', '{', '(', '"', '\'', ':':
		return true
	case '/':
		return t.hasPrefixAt(i, "//") || t.hasPrefixAt(i, "/*")
	}
	return false
}

func (t *Tokenizer) skip() error {
	for t.i < len(t.d) {
		switch t.d[t.i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			t.i++
			continue
		case '/':
			if t.hasPrefix("//") {
				j := bytes.IndexByte(t.d[t.i:], '\n')
				if j < 0 {
					t.i = len(t.d)
				} else {
					t.i += j + 1
				}
				continue
			}
			if t.hasPrefix("/*") {
				j := bytes.Index(t.d[t.i+2:], []byte("*/"))
				if j < 0 {
					return NewTokenizeErr(fmt.Errorf("%w comment", ErrUnterminated), t.doc.Pos(t.i))
				}
				t.i += j + 4
				continue
			}
		}
		return nil
	}
	return nil
}

func (t *Tokenizer) skipSpace() {
	for t.i < len(t.d) {
		switch t.d[t.i] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			t.i++
		default:
			return
		}
	}
}

func (t *Tokenizer) identifier(start int) (Token, error) {
	for t.i < len(t.d) && isIdentPart(t.d[t.i]) {
		t.i++
	}
	text := t.d[start:t.i]
	switch string(text) {
	case "null":
		if t.i+1 < len(t.d) && t.d[t.i] == '.' && isIdentStart(t.d[t.i+1]) {
			t.i++
			for t.i < len(t.d) && isIdentPart(t.d[t.i]) {
				t.i++
			}
		}
		return t.tok(TNull, start, t.d[start:t.i]), nil
	case "true":
		return t.tok(TTrue, start, text), nil
	case "false":
		return t.tok(TFalse, start, text), nil
	case "nan":
		return t.tok(TFloat, start, text), nil
	}
	if IsSymbolID(string(text)) {
		return t.symbolOrAnnotation(TSymbolID, start, text[1:]), nil
	}
	return t.symbolOrAnnotation(TSymbol, start, text), nil
}

// symbolOrAnnotation returns an annotation token when the symbol just read
// is followed by "::".
func (t *Tokenizer) symbolOrAnnotation(tt TokenType, start int, text []byte) Token {
	save := t.i
	if err := t.skip(); err == nil && t.hasPrefix("::") {
		t.i += 2
		if tt == TSymbolID {
			text = append([]byte{'$'}, text...)
		}
		return t.tok(TAnnotation, start, text)
	}
	t.i = save
	return t.tok(tt, start, text)
}

func (t *Tokenizer) number(start int) (Token, error) {
	tsLike := func() bool {
		run := t.d[start:t.i]
		if len(run) < 5 {
			return false
		}
		for _, c := range run[:4] {
			if !isDigit(c) {
				return false
			}
		}
		return run[4] == '-' || run[4] == 'T'
	}
loop:
	for t.i < len(t.d) {
		c := t.d[t.i]
		switch {
		case isIdentPart(c), c == '.', c == '-':
		case c == '+':
			p := t.d[t.i-1]
			if p != 'e' && p != 'E' && !tsLike() {
				break loop
			}
		case c == ':':
			if !tsLike() || t.i+1 >= len(t.d) || !isDigit(t.d[t.i+1]) {
				break loop
			}
		default:
			break loop
		}
		t.i++
	}
	run := t.d[start:t.i]
	if !t.delimitedAt(t.i) {
		return Token{}, NewTokenizeErr(fmt.Errorf("%w: %q", ErrNumber, run), t.doc.Pos(start))
	}
	if tsLike() {
		return t.tok(TTimestamp, start, run), nil
	}
	body := bytes.TrimPrefix(run, []byte{'-'})
	switch {
	case bytes.HasPrefix(body, []byte("0x")), bytes.HasPrefix(body, []byte("0X")),
		bytes.HasPrefix(body, []byte("0b")), bytes.HasPrefix(body, []byte("0B")):
		return t.tok(TInteger, start, run), nil
	case bytes.ContainsAny(body, "eE"):
		return t.tok(TFloat, start, run), nil
	case bytes.ContainsAny(body, "dD."):
		return t.tok(TDecimal, start, run), nil
	}
	for _, c := range body {
		if !isDigit(c) && c != '_' {
			return Token{}, NewTokenizeErr(fmt.Errorf("%w: %q", ErrNumber, run), t.doc.Pos(start))
		}
	}
	return t.tok(TInteger, start, run), nil
}

// shortString reads up to the closing double quote; the opening quote has
// been consumed.
func (t *Tokenizer) shortString(clob bool) ([]byte, error) {
	start := t.i - 1
	var res []byte
	for t.i < len(t.d) {
		c := t.d[t.i]
		switch {
		case c == '"':
			t.i++
			return t.checkText(res, clob, start)
		case c == '\\':
			var err error
			t.i++
			if res, err = t.escape(res, clob); err != nil {
				return nil, err
			}
		case c == '\n':
			return nil, NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), t.doc.Pos(start))
		case clob && c >= 0x80:
			return nil, NewTokenizeErr(ErrClobByte, t.doc.Pos(t.i))
		default:
			res = append(res, c)
			t.i++
		}
	}
	return nil, NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), t.doc.Pos(start))
}

// longStrings reads one or more adjacent long strings and joins them.
func (t *Tokenizer) longStrings(clob bool) ([]byte, error) {
	res := []byte{}
	for {
		start := t.i
		t.i += 3
		closed := false
		for t.i < len(t.d) && !closed {
			c := t.d[t.i]
			switch {
			case t.hasPrefix("'''"):
				t.i += 3
				closed = true
			case c == '\\':
				var err error
				t.i++
				if res, err = t.escape(res, clob); err != nil {
					return nil, err
				}
			case clob && c >= 0x80:
				return nil, NewTokenizeErr(ErrClobByte, t.doc.Pos(t.i))
			default:
				res = append(res, c)
				t.i++
			}
		}
		if !closed {
			return nil, NewTokenizeErr(fmt.Errorf("%w long string", ErrUnterminated), t.doc.Pos(start))
		}
		save := t.i
		if clob {
			t.skipSpace()
		} else if err := t.skip(); err != nil {
			t.i = save
			return t.checkText(res, clob, start)
		}
		if !t.hasPrefix("'''") {
			t.i = save
			return t.checkText(res, clob, start)
		}
	}
}

func (t *Tokenizer) checkText(res []byte, clob bool, start int) ([]byte, error) {
	if clob {
		return res, nil
	}
	if !utf8.Valid(res) {
		return nil, NewTokenizeErr(ErrBadUTF8, t.doc.Pos(start))
	}
	if res == nil {
		res = []byte{}
	}
	return res, nil
}

func (t *Tokenizer) quotedSymbol() ([]byte, error) {
	start := t.i - 1
	res := []byte{}
	for t.i < len(t.d) {
		c := t.d[t.i]
		switch {
		case c == '\'':
			t.i++
			if !utf8.Valid(res) {
				return nil, NewTokenizeErr(ErrBadUTF8, t.doc.Pos(start))
			}
			return res, nil
		case c == '\\':
			var err error
			t.i++
			if res, err = t.escape(res, false); err != nil {
				return nil, err
			}
		case c == '\n':
			return nil, NewTokenizeErr(fmt.Errorf("%w symbol", ErrUnterminated), t.doc.Pos(start))
		default:
			res = append(res, c)
			t.i++
		}
	}
	return nil, NewTokenizeErr(fmt.Errorf("%w symbol", ErrUnterminated), t.doc.Pos(start))
}

// escape decodes the escape sequence after a backslash. In clobs \x
// yields a raw byte and \u, \U are not allowed.
func (t *Tokenizer) escape(dst []byte, clob bool) ([]byte, error) {
	if t.i >= len(t.d) {
		return nil, NewTokenizeErr(ErrBadEscape, t.doc.Pos(t.i-1))
	}
	pos := t.doc.Pos(t.i - 1)
	c := t.d[t.i]
	t.i++
	if b, ok := simpleEscapes[c]; ok {
		return append(dst, b), nil
	}
	switch c {
	case '\n':
		return dst, nil
	case '\r':
		if t.i < len(t.d) && t.d[t.i] == '\n' {
			t.i++
		}
		return dst, nil
	case 'x':
		v, err := t.hex(2, pos)
		if err != nil {
			return nil, err
		}
		if clob {
			return append(dst, byte(v)), nil
		}
		return utf8.AppendRune(dst, rune(v)), nil
	case 'u', 'U':
		if clob {
			return nil, NewTokenizeErr(ErrBadEscape, pos)
		}
		n := 4
		if c == 'U' {
			n = 8
		}
		v, err := t.hex(n, pos)
		if err != nil {
			return nil, err
		}
		if !utf8.ValidRune(rune(v)) {
			return nil, NewTokenizeErr(ErrBadUnicode, pos)
		}
		return utf8.AppendRune(dst, rune(v)), nil
	}
	return nil, NewTokenizeErr(ErrBadEscape, pos)
}

func (t *Tokenizer) hex(n int, pos *Pos) (uint64, error) {
	if t.i+n > len(t.d) {
		return 0, NewTokenizeErr(ErrBadEscape, pos)
	}
	v, err := strconv.ParseUint(string(t.d[t.i:t.i+n]), 16, 32)
	if err != nil {
		return 0, NewTokenizeErr(ErrBadEscape, pos)
	}
	t.i += n
	return v, nil
}

func (t *Tokenizer) lob() (Token, error) {
	start := t.i
	t.i += 2
	t.skipSpace()
	if t.i < len(t.d) && (t.d[t.i] == '"' || t.hasPrefix("'''")) {
		var (
			body []byte
			err  error
		)
		if t.d[t.i] == '"' {
			t.i++
			body, err = t.shortString(true)
		} else {
			body, err = t.longStrings(true)
		}
		if err != nil {
			return Token{}, err
		}
		t.skipSpace()
		if !t.hasPrefix("}}") {
			return Token{}, ExpectedErr("'}}'", t.doc.Pos(t.i))
		}
		t.i += 2
		if body == nil {
			body = []byte{}
		}
		return t.tok(TClob, start, body), nil
	}
	end := bytes.Index(t.d[t.i:], []byte("}}"))
	if end < 0 {
		return Token{}, NewTokenizeErr(fmt.Errorf("%w blob", ErrUnterminated), t.doc.Pos(start))
	}
	enc := bytes.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return -1
		}
		return r
	}, t.d[t.i:t.i+end])
	t.i += end + 2
	body := make([]byte, base64.StdEncoding.DecodedLen(len(enc)))
	n, err := base64.StdEncoding.Decode(body, enc)
	if err != nil {
		return Token{}, NewTokenizeErr(fmt.Errorf("%w: %w", ErrBadBase64, err), t.doc.Pos(start))
	}
	return t.tok(TBlob, start, body[:n]), nil
}

var simpleEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 't': '\t', 'n': '\n', 'f': '\f', 'r': '\r', 'v': '\v',
	'?': '?', '0': 0, '\'': '\'', '"': '"', '/': '/', '\\': '\\',
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	switch c {
	case '!', '#', '%', '&', '*', '+', '-', '.', '/', ';', '<', '=', '>', '?', '@', '^', '`', '|', '~':
		return true
	}
	return false
}
