package stream

import (
	"encoding/base64"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/token"
)

// Encoder writes compact Ion text. Top level values are separated by
// newlines. Every call is validated against a State before any output is
// produced, so a rejected call writes nothing.
type Encoder struct {
	writer   io.Writer
	state    *State
	offset   int64
	opts     *streamOpts
	finished bool
}

var _ ion.Writer = (*Encoder)(nil)

// NewEncoder creates a new Encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	streamOpts := &streamOpts{}
	for _, opt := range opts {
		opt(streamOpts)
	}
	return &Encoder{
		writer: w,
		state:  NewState(),
		opts:   streamOpts,
	}
}

// Depth returns the current nesting depth (0 = top level).
func (e *Encoder) Depth() int {
	return e.state.Depth()
}

// CurrentPath returns the path of the most recently started value.
func (e *Encoder) CurrentPath() string {
	return e.state.CurrentPath()
}

// Offset returns the byte offset in the output stream.
func (e *Encoder) Offset() int64 {
	return e.offset
}

func (e *Encoder) FieldName(name string) error {
	return e.state.SetField(ion.NewSymbolToken(name))
}

func (e *Encoder) FieldNameSymbol(tok ion.SymbolToken) error {
	return e.state.SetField(tok)
}

func (e *Encoder) Annotations(anns ...string) error {
	return e.state.SetAnnotations(anns)
}

func (e *Encoder) Begin(t ion.Type) error {
	pre, err := e.prefix(t, true)
	if err != nil {
		return err
	}
	open := map[ion.Type]string{ion.ListType: "[", ion.SexpType: "(", ion.StructType: "{"}[t]
	if debug.Stream() {
		debug.Logf("stream: begin %s at %q\n", t, e.state.CurrentPath())
	}
	return e.writeString(pre + e.color(t, SepColor, open))
}

func (e *Encoder) End() error {
	kind := e.state.Kind()
	if err := e.state.End(); err != nil {
		return err
	}
	if debug.Stream() {
		debug.Logf("stream: end %s\n", kind)
	}
	closer := map[ion.Type]string{ion.ListType: "]", ion.SexpType: ")", ion.StructType: "}"}[kind]
	return e.writeString(e.color(kind, SepColor, closer))
}

func (e *Encoder) WriteNull() error {
	return e.scalar(ion.NullType, "null")
}

func (e *Encoder) WriteNullType(t ion.Type) error {
	if t == ion.NoType {
		return &Error{Msg: "null of no type", Path: e.state.CurrentPath()}
	}
	return e.scalar(ion.NullType, "null."+t.String())
}

func (e *Encoder) WriteBool(v bool) error {
	return e.scalar(ion.BoolType, strconv.FormatBool(v))
}

func (e *Encoder) WriteInt(v int64) error {
	return e.scalar(ion.IntType, strconv.FormatInt(v, 10))
}

func (e *Encoder) WriteBigInt(v *big.Int) error {
	if v == nil {
		return &Error{Msg: "nil big.Int", Path: e.state.CurrentPath()}
	}
	return e.scalar(ion.IntType, v.String())
}

func (e *Encoder) WriteFloat(v float64) error {
	return e.scalar(ion.FloatType, FormatFloat(v))
}

func (e *Encoder) WriteDecimal(v ion.Decimal) error {
	return e.scalar(ion.DecimalType, v.String())
}

func (e *Encoder) WriteString(v string) error {
	return e.scalar(ion.StringType, token.QuoteString(v))
}

func (e *Encoder) WriteTimestamp(v ion.Timestamp) error {
	return e.scalar(ion.TimestampType, v.String())
}

func (e *Encoder) WriteBlob(v []byte) error {
	return e.scalar(ion.BlobType, "{{"+base64.StdEncoding.EncodeToString(v)+"}}")
}

func (e *Encoder) WriteClob(v []byte) error {
	return e.scalar(ion.ClobType, "{{"+token.QuoteClob(v)+"}}")
}

func (e *Encoder) WriteSymbol(v string) error {
	return e.scalar(ion.SymbolType, token.QuoteSymbol(v))
}

func (e *Encoder) WriteSymbolToken(v ion.SymbolToken) error {
	return e.scalar(ion.SymbolType, pathField(v))
}

func (e *Encoder) WriteValue(r ion.Reader) error {
	return ion.CopyValue(e, r)
}

func (e *Encoder) WriteValues(r ion.Reader) error {
	return ion.CopyValues(e, r)
}

// Finish checks that all containers are closed and terminates the last
// top level value with a newline.
func (e *Encoder) Finish() error {
	if err := e.state.Finish(); err != nil {
		return err
	}
	if e.finished || e.state.Index() == 0 {
		return nil
	}
	e.finished = true
	return e.writeString("\n")
}

func (e *Encoder) scalar(t ion.Type, text string) error {
	pre, err := e.prefix(t, false)
	if err != nil {
		return err
	}
	return e.writeString(pre + e.color(t, ValueColor, text))
}

// prefix validates the next value and renders what precedes it: the
// separator from the previous sibling, the field name and the annotations.
func (e *Encoder) prefix(t ion.Type, begin bool) (string, error) {
	parent := e.state.Kind()
	idx := e.state.Index()
	field, anns := e.state.Pending()
	var err error
	if begin {
		err = e.state.Begin(t)
	} else {
		err = e.state.Value()
	}
	if err != nil {
		return "", err
	}
	e.finished = false
	b := &strings.Builder{}
	if idx > 0 {
		switch parent {
		case ion.NoType:
			b.WriteString("\n")
		case ion.SexpType:
			b.WriteString(" ")
		default:
			b.WriteString(e.color(parent, SepColor, ","))
			if e.opts.spacing {
				b.WriteString(" ")
			}
		}
	}
	if parent == ion.StructType {
		b.WriteString(e.color(ion.StructType, FieldColor, pathField(*field)))
		b.WriteString(e.color(ion.StructType, SepColor, ":"))
		if e.opts.spacing {
			b.WriteString(" ")
		}
	}
	for _, a := range anns {
		b.WriteString(e.color(t, AnnotationColor, token.QuoteSymbol(a)+"::"))
	}
	return b.String(), nil
}

func (e *Encoder) color(t ion.Type, a ColorAttr, s string) string {
	if e.opts.colors == nil {
		return s
	}
	return e.opts.colors.Color(t, a, s)
}

func (e *Encoder) writeString(s string) error {
	n, err := io.WriteString(e.writer, s)
	e.offset += int64(n)
	return err
}

// FormatFloat renders v as Ion float text, which always carries an
// exponent: 1e0, -2.5e-3, nan, +inf.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	n, _ := strconv.Atoi(exp)
	return mant + "e" + strconv.Itoa(n)
}
