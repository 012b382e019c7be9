package ion

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Writer is the primitive streaming surface. Implementations keep a single
// cursor: a field name must be set before each value written inside a
// struct and must not be set anywhere else. Annotations apply to the next
// value or container only.
type Writer interface {
	Begin(t Type) error
	End() error

	FieldName(name string) error
	FieldNameSymbol(tok SymbolToken) error
	Annotations(anns ...string) error

	WriteNull() error
	WriteNullType(t Type) error
	WriteBool(v bool) error
	WriteInt(v int64) error
	WriteBigInt(v *big.Int) error
	WriteFloat(v float64) error
	WriteDecimal(v Decimal) error
	WriteString(v string) error
	WriteTimestamp(v Timestamp) error
	WriteBlob(v []byte) error
	WriteClob(v []byte) error
	WriteSymbol(v string) error
	WriteSymbolToken(v SymbolToken) error

	// WriteValue copies the value the reader is positioned on.
	WriteValue(r Reader) error
	// WriteValues copies every remaining value at the reader's depth.
	WriteValues(r Reader) error

	// Finish checks that all containers are closed and flushes output.
	Finish() error
}

// Reader is a cursor over a value stream. ReadEvent and PeekEvent return
// io.EOF once the stream is exhausted.
type Reader interface {
	ReadEvent() (*Event, error)
	PeekEvent() (*Event, error)
}

// ErrNoField is returned when a value copied as a struct member has no
// field name.
var ErrNoField = errors.New("value has no field name")

// CopyValue copies the value r is positioned on into w. The value's own
// field name, if any, is not copied; nested struct members keep theirs.
func CopyValue(w Writer, r Reader) error {
	ev, err := r.PeekEvent()
	if errors.Is(err, io.EOF) {
		return ErrNoValue
	}
	if err != nil {
		return err
	}
	if !ev.IsValueStart() {
		return ErrNoValue
	}
	ev, err = r.ReadEvent()
	if err != nil {
		return err
	}
	return copyEvent(w, r, ev, false)
}

// CopyValues copies values from r into w until r is exhausted or reaches
// the end of the container it is positioned in. The end event is left
// unread.
func CopyValues(w Writer, r Reader) error {
	return copyAll(w, r, false)
}

// CopyMembers is CopyValues for a reader positioned inside a struct: each
// value is written under its own field name.
func CopyMembers(w Writer, r Reader) error {
	return copyAll(w, r, true)
}

func copyAll(w Writer, r Reader, field bool) error {
	for {
		ev, err := r.PeekEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !ev.IsValueStart() {
			return nil
		}
		if ev, err = r.ReadEvent(); err != nil {
			return err
		}
		if err := copyEvent(w, r, ev, field); err != nil {
			return err
		}
	}
}

func copyEvent(w Writer, r Reader, ev *Event, field bool) error {
	if field {
		if ev.Field == nil {
			return ErrNoField
		}
		if err := stageField(w, *ev.Field); err != nil {
			return err
		}
	}
	if len(ev.Annotations) > 0 {
		if err := w.Annotations(ev.Annotations...); err != nil {
			return err
		}
	}
	if ev.Type == EventValue {
		return writeEventScalar(w, ev)
	}
	if err := w.Begin(ev.Kind); err != nil {
		return err
	}
	inStruct := ev.Kind == StructType
	for {
		child, err := r.ReadEvent()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s not closed", ErrUnbalanced, ev.Kind)
		}
		if err != nil {
			return err
		}
		if child.Type == EventEnd {
			return w.End()
		}
		if err := copyEvent(w, r, child, inStruct); err != nil {
			return err
		}
	}
}

func stageField(w Writer, tok SymbolToken) error {
	if tok.SID == SymbolIDUnknown {
		return w.FieldName(tok.Text)
	}
	return w.FieldNameSymbol(tok)
}

func writeEventScalar(w Writer, ev *Event) error {
	if ev.IsNull {
		if ev.Kind == NullType {
			return w.WriteNull()
		}
		return w.WriteNullType(ev.Kind)
	}
	switch ev.Kind {
	case NullType:
		return w.WriteNull()
	case BoolType:
		return w.WriteBool(ev.Bool)
	case IntType:
		return writeInt(w, ev.Int)
	case FloatType:
		return w.WriteFloat(ev.Float)
	case DecimalType:
		return w.WriteDecimal(ev.Decimal)
	case TimestampType:
		return w.WriteTimestamp(ev.Timestamp)
	case SymbolType:
		return w.WriteSymbolToken(ev.Symbol)
	case StringType:
		return w.WriteString(ev.String)
	case ClobType:
		return w.WriteClob(ev.Bytes)
	case BlobType:
		return w.WriteBlob(ev.Bytes)
	default:
		return fmt.Errorf("cannot write %s as a scalar", ev.Kind)
	}
}

func writeInt(w Writer, v *big.Int) error {
	if v == nil {
		return ErrNilInt
	}
	if v.IsInt64() {
		return w.WriteInt(v.Int64())
	}
	return w.WriteBigInt(v)
}
