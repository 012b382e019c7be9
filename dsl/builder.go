package dsl

import (
	"fmt"
	"math/big"

	"github.com/signadot/iondsl/debug"
	"github.com/signadot/iondsl/ion"
)

// seq implements Sequence. When member is set every operation first
// stages field, which is how Fields delegates to the Sequence logic.
type seq struct {
	w      ion.Writer
	field  Field
	member bool
}

var _ Sequence = seq{}

// emit is the only place values are written: field, then annotations,
// then the value.
func (s seq) emit(anns []string, write func(ion.Writer) error) error {
	if s.member {
		if s.field == nil {
			return ErrMissingField
		}
		if err := s.field.stage(s.w); err != nil {
			return err
		}
	}
	if len(anns) > 0 {
		if err := s.w.Annotations(anns...); err != nil {
			return err
		}
	}
	return write(s.w)
}

func (s seq) container(kind ion.Type, anns []string, body func(ion.Writer) error) error {
	return s.emit(anns, func(w ion.Writer) (err error) {
		if err := w.Begin(kind); err != nil {
			return err
		}
		if debug.Containers() {
			debug.Logf("dsl: begin %s\n", kind)
		}
		defer func() {
			endErr := w.End()
			if debug.Containers() {
				debug.Logf("dsl: end %s (body err=%v, end err=%v)\n", kind, err, endErr)
			}
			if err == nil {
				err = endErr
			}
		}()
		return body(w)
	})
}

func (s seq) Null(anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteNull() })
}

func (s seq) NullType(t ion.Type, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteNullType(t) })
}

func (s seq) Bool(v bool, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteBool(v) })
}

func (s seq) Int(v int64, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteInt(v) })
}

func (s seq) BigInt(v *big.Int, anns ...string) error {
	if v == nil {
		return fmt.Errorf("%w: nil big.Int", ErrInvalidArgument)
	}
	return s.emit(anns, func(w ion.Writer) error { return w.WriteBigInt(v) })
}

func (s seq) Float(v float64, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteFloat(v) })
}

func (s seq) Decimal(v ion.Decimal, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteDecimal(v) })
}

func (s seq) String(v string, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteString(v) })
}

func (s seq) Timestamp(v ion.Timestamp, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteTimestamp(v) })
}

func (s seq) Blob(v []byte, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteBlob(v) })
}

func (s seq) BlobRange(v []byte, off, n int, anns ...string) error {
	b, err := span(v, off, n)
	if err != nil {
		return err
	}
	return s.Blob(b, anns...)
}

func (s seq) Clob(v []byte, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteClob(v) })
}

func (s seq) ClobRange(v []byte, off, n int, anns ...string) error {
	b, err := span(v, off, n)
	if err != nil {
		return err
	}
	return s.Clob(b, anns...)
}

func (s seq) Symbol(v string, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteSymbol(v) })
}

func (s seq) SymbolToken(v ion.SymbolToken, anns ...string) error {
	return s.emit(anns, func(w ion.Writer) error { return w.WriteSymbolToken(v) })
}

func (s seq) List(fn func(Sequence) error, anns ...string) error {
	return s.Seq(ion.ListType, fn, anns...)
}

func (s seq) Sexp(fn func(Sequence) error, anns ...string) error {
	return s.Seq(ion.SexpType, fn, anns...)
}

func (s seq) Seq(kind ion.Type, fn func(Sequence) error, anns ...string) error {
	if !kind.IsSequence() {
		return fmt.Errorf("%w: %w: %s is not a list or sexp", ErrInvalidArgument, ErrInvalidKind, kind)
	}
	return s.container(kind, anns, func(w ion.Writer) error {
		if fn == nil {
			return nil
		}
		return fn(seq{w: w})
	})
}

func (s seq) Struct(fn func(Fields) error, anns ...string) error {
	return s.container(ion.StructType, anns, func(w ion.Writer) error {
		if fn == nil {
			return nil
		}
		return fn(fields{w: w})
	})
}

func (s seq) ValueFrom(r ion.Reader) error {
	return s.emit(nil, func(w ion.Writer) error { return w.WriteValue(r) })
}

func (s seq) Node(n *ion.Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	return s.emit(nil, n.WriteTo)
}

func (s seq) ValuesFrom(r ion.Reader) error {
	return s.emit(nil, func(w ion.Writer) error { return w.WriteValues(r) })
}

func span(v []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(v) || n > len(v)-off {
		return nil, fmt.Errorf("%w: range off=%d n=%d of %d bytes", ErrInvalidArgument, off, n, len(v))
	}
	return v[off : off+n : off+n], nil
}
