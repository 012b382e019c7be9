package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/token"
)

// versionMarker is dropped when it appears as a bare top level symbol.
const versionMarker = "$ion_1_0"

// Decoder reads Ion text as a stream of events. It implements ion.Reader
// with one event of lookahead.
type Decoder struct {
	tz    *token.Tokenizer
	state *State

	peeked  *ion.Event
	peekErr error
}

var _ ion.Reader = (*Decoder)(nil)

// NewDecoder creates a new Decoder reading all of r.
func NewDecoder(r io.Reader) (*Decoder, error) {
	tz, err := token.NewTokenizerFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Decoder{tz: tz, state: NewState()}, nil
}

// NewDecoderBytes creates a new Decoder over d.
func NewDecoderBytes(d []byte) *Decoder {
	return &Decoder{tz: token.NewTokenizer(d), state: NewState()}
}

// Depth returns the current nesting depth (0 = top level).
func (d *Decoder) Depth() int {
	return d.state.Depth()
}

// CurrentPath returns the path of the most recently read value.
func (d *Decoder) CurrentPath() string {
	return d.state.CurrentPath()
}

// ReadEvent reads the next event. Commas and colons are elided; field
// names and annotations are attached to the event of the value they
// precede. Returns io.EOF when the stream is exhausted.
func (d *Decoder) ReadEvent() (*Event, error) {
	ev, err := d.PeekEvent()
	if err != nil {
		return nil, err
	}
	d.peeked = nil
	return ev, nil
}

// PeekEvent returns the next event without consuming it.
func (d *Decoder) PeekEvent() (*Event, error) {
	if d.peeked != nil || d.peekErr != nil {
		return d.peeked, d.peekErr
	}
	ev, err := d.readEvent()
	if err != nil {
		d.peekErr = err
		return nil, err
	}
	if err := d.state.ProcessEvent(ev); err != nil {
		d.peekErr = err
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("decode: %s %s at %q\n", ev.Type, ev.Kind, d.state.CurrentPath())
	}
	d.peeked = ev
	return ev, nil
}

// Event is the event type produced by the Decoder.
type Event = ion.Event

func (d *Decoder) next() (token.Token, error) {
	d.tz.InSexp = d.state.Kind() == ion.SexpType
	return d.tz.Next()
}

func (d *Decoder) readEvent() (*Event, error) {
	kind := d.state.Kind()
	for {
		tok, err := d.next()
		if err != nil {
			if errors.Is(err, io.EOF) && kind != ion.NoType {
				return nil, &Error{Msg: "unexpected end of input in " + kind.String(), Path: d.state.CurrentPath()}
			}
			return nil, err
		}
		switch tok.Type {
		case token.TRSquare, token.TRParen, token.TRCurl:
			want := map[ion.Type]token.TokenType{
				ion.ListType:   token.TRSquare,
				ion.SexpType:   token.TRParen,
				ion.StructType: token.TRCurl,
			}[kind]
			if kind == ion.NoType || tok.Type != want {
				return nil, token.UnexpectedErr(string(tok.Bytes), tok.Pos)
			}
			return &Event{Type: ion.EventEnd, Kind: kind}, nil
		case token.TComma:
			if kind == ion.ListType || kind == ion.StructType {
				continue
			}
			return nil, token.UnexpectedErr("','", tok.Pos)
		}
		if kind != ion.StructType {
			ev, err := d.value(tok)
			if err != nil {
				return nil, err
			}
			if kind == ion.NoType && ev.Type == ion.EventValue && ev.Kind == ion.SymbolType &&
				len(ev.Annotations) == 0 && ev.Symbol.Text == versionMarker {
				continue
			}
			return ev, nil
		}
		field, err := fieldName(tok)
		if err != nil {
			return nil, err
		}
		colon, err := d.next()
		if err != nil {
			return nil, unexpectedEOF(err, "':'", tok.Pos)
		}
		if colon.Type != token.TColon {
			return nil, token.ExpectedErr("':'", colon.Pos)
		}
		vtok, err := d.next()
		if err != nil {
			return nil, unexpectedEOF(err, "value", colon.Pos)
		}
		ev, err := d.value(vtok)
		if err != nil {
			return nil, err
		}
		ev.Field = &field
		return ev, nil
	}
}

func unexpectedEOF(err error, what string, p *token.Pos) error {
	if errors.Is(err, io.EOF) {
		return token.ExpectedErr(what, p)
	}
	return err
}

func fieldName(tok token.Token) (ion.SymbolToken, error) {
	switch tok.Type {
	case token.TSymbol, token.TString:
		return ion.NewSymbolToken(string(tok.Bytes)), nil
	case token.TSymbolID:
		sid, err := strconv.ParseInt(string(tok.Bytes), 10, 64)
		if err != nil {
			return ion.SymbolToken{}, token.NewTokenizeErr(err, tok.Pos)
		}
		return ion.SymbolToken{SID: sid}, nil
	}
	return ion.SymbolToken{}, token.ExpectedErr("field name", tok.Pos)
}

// value reads the annotations starting at tok and the value after them.
func (d *Decoder) value(tok token.Token) (*Event, error) {
	ev := &Event{Type: ion.EventValue}
	for tok.Type == token.TAnnotation {
		ev.Annotations = append(ev.Annotations, string(tok.Bytes))
		pos := tok.Pos
		var err error
		if tok, err = d.next(); err != nil {
			return nil, unexpectedEOF(err, "value after annotation", pos)
		}
	}
	bad := func(err error) (*Event, error) {
		return nil, token.NewTokenizeErr(err, tok.Pos)
	}
	text := string(tok.Bytes)
	switch tok.Type {
	case token.TLCurl:
		ev.Type, ev.Kind = ion.EventBegin, ion.StructType
	case token.TLSquare:
		ev.Type, ev.Kind = ion.EventBegin, ion.ListType
	case token.TLParen:
		ev.Type, ev.Kind = ion.EventBegin, ion.SexpType
	case token.TNull:
		ev.IsNull = true
		ev.Kind = ion.NullType
		if t, ok := strings.CutPrefix(text, "null."); ok {
			if err := ev.Kind.UnmarshalText([]byte(t)); err != nil {
				return bad(err)
			}
		}
	case token.TTrue, token.TFalse:
		ev.Kind = ion.BoolType
		ev.Bool = tok.Type == token.TTrue
	case token.TInteger:
		ev.Kind = ion.IntType
		v, err := ParseInt(text)
		if err != nil {
			return bad(err)
		}
		ev.Int = v
	case token.TFloat:
		ev.Kind = ion.FloatType
		v, err := ParseFloat(text)
		if err != nil {
			return bad(err)
		}
		ev.Float = v
	case token.TDecimal:
		ev.Kind = ion.DecimalType
		v, err := ion.ParseDecimal(text)
		if err != nil {
			return bad(err)
		}
		ev.Decimal = v
	case token.TTimestamp:
		ev.Kind = ion.TimestampType
		v, err := ion.ParseTimestamp(text)
		if err != nil {
			return bad(err)
		}
		ev.Timestamp = v
	case token.TSymbol, token.TOperator:
		ev.Kind = ion.SymbolType
		ev.Symbol = ion.NewSymbolToken(text)
	case token.TSymbolID:
		ev.Kind = ion.SymbolType
		sym, err := fieldName(tok)
		if err != nil {
			return nil, err
		}
		ev.Symbol = sym
	case token.TString:
		ev.Kind = ion.StringType
		ev.String = text
	case token.TBlob:
		ev.Kind = ion.BlobType
		ev.Bytes = tok.Bytes
	case token.TClob:
		ev.Kind = ion.ClobType
		ev.Bytes = tok.Bytes
	default:
		return nil, token.UnexpectedErr(tok.Type.String(), tok.Pos)
	}
	return ev, nil
}

// ParseInt parses Ion integer text: decimal, 0x hex or 0b binary digits
// with optional underscores and a leading minus.
func ParseInt(s string) (*big.Int, error) {
	body, neg := strings.CutPrefix(s, "-")
	base := 10
	if len(body) > 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X':
			base, body = 16, body[2:]
		case 'b', 'B':
			base, body = 2, body[2:]
		}
	}
	if strings.HasPrefix(body, "_") || strings.HasSuffix(body, "_") || strings.Contains(body, "__") {
		return nil, fmt.Errorf("%w: int %q", ion.ErrParse, s)
	}
	if base == 10 && len(body) > 1 && body[0] == '0' {
		return nil, fmt.Errorf("%w: int %q has leading zeros", ion.ErrParse, s)
	}
	v, ok := new(big.Int).SetString(strings.ReplaceAll(body, "_", ""), base)
	if !ok {
		return nil, fmt.Errorf("%w: int %q", ion.ErrParse, s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// ParseFloat parses Ion float text, including nan and +inf, -inf.
func ParseFloat(s string) (float64, error) {
	switch s {
	case "nan":
		return math.NaN(), nil
	case "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("%w: float %q", ion.ErrParse, s)
	}
	return v, nil
}
