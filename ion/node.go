package ion

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Node is an in-memory Ion value. Children of a struct carry their field
// name in Field. A null of any type has IsNull set and Type naming the
// null's type (NullType for a plain null).
type Node struct {
	Type        Type
	IsNull      bool
	Annotations []string
	Field       *SymbolToken
	Values      []*Node

	Bool      bool
	Int       *big.Int
	Float     float64
	Decimal   Decimal
	Timestamp Timestamp
	String    string
	Symbol    SymbolToken
	Bytes     []byte
}

func Null() *Node {
	return &Node{Type: NullType, IsNull: true}
}

func TypedNull(t Type) *Node {
	return &Node{Type: t, IsNull: true}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int: big.NewInt(v)}
}

func FromBigInt(v *big.Int) *Node {
	return &Node{Type: IntType, Int: new(big.Int).Set(v)}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float: v}
}

func FromDecimal(v Decimal) *Node {
	return &Node{Type: DecimalType, Decimal: v}
}

func FromTimestamp(v Timestamp) *Node {
	return &Node{Type: TimestampType, Timestamp: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromSymbol(v string) *Node {
	return &Node{Type: SymbolType, Symbol: NewSymbolToken(v)}
}

func FromSymbolToken(v SymbolToken) *Node {
	return &Node{Type: SymbolType, Symbol: v}
}

func FromBlob(v []byte) *Node {
	return &Node{Type: BlobType, Bytes: slices.Clone(v)}
}

func FromClob(v []byte) *Node {
	return &Node{Type: ClobType, Bytes: slices.Clone(v)}
}

func FromList(vs ...*Node) *Node {
	return &Node{Type: ListType, Values: orEmpty(vs)}
}

func FromSexp(vs ...*Node) *Node {
	return &Node{Type: SexpType, Values: orEmpty(vs)}
}

// FromFields returns a struct whose members are fs. Each member must have
// been named with WithField.
func FromFields(fs ...*Node) *Node {
	return &Node{Type: StructType, Values: orEmpty(fs)}
}

func orEmpty(vs []*Node) []*Node {
	if vs == nil {
		return []*Node{}
	}
	return vs
}

// WithField names n as a struct member and returns n.
func (n *Node) WithField(name string) *Node {
	tok := NewSymbolToken(name)
	n.Field = &tok
	return n
}

// WithAnnotations sets n's annotations and returns n.
func (n *Node) WithAnnotations(anns ...string) *Node {
	n.Annotations = anns
	return n
}

// WriteTo writes n to w. n's own field name is not written, the caller
// stages it when n is a struct member.
func (n *Node) WriteTo(w Writer) error {
	if len(n.Annotations) > 0 {
		if err := w.Annotations(n.Annotations...); err != nil {
			return err
		}
	}
	if n.IsNull {
		if n.Type == NullType {
			return w.WriteNull()
		}
		return w.WriteNullType(n.Type)
	}
	switch n.Type {
	case NullType:
		return w.WriteNull()
	case BoolType:
		return w.WriteBool(n.Bool)
	case IntType:
		return writeInt(w, n.Int)
	case FloatType:
		return w.WriteFloat(n.Float)
	case DecimalType:
		return w.WriteDecimal(n.Decimal)
	case TimestampType:
		return w.WriteTimestamp(n.Timestamp)
	case SymbolType:
		return w.WriteSymbolToken(n.Symbol)
	case StringType:
		return w.WriteString(n.String)
	case ClobType:
		return w.WriteClob(n.Bytes)
	case BlobType:
		return w.WriteBlob(n.Bytes)
	case ListType, SexpType, StructType:
	default:
		return fmt.Errorf("cannot write node of type %s", n.Type)
	}
	if err := w.Begin(n.Type); err != nil {
		return err
	}
	for _, v := range n.Values {
		if n.Type == StructType {
			if v.Field == nil {
				return ErrNoField
			}
			if err := stageField(w, *v.Field); err != nil {
				return err
			}
		}
		if err := v.WriteTo(w); err != nil {
			return err
		}
	}
	return w.End()
}

// Equal reports whether n and o are equivalent Ion values. Struct members
// are compared as unordered multisets, NaN equals NaN.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.IsNull != o.IsNull || !slices.Equal(n.Annotations, o.Annotations) {
		return false
	}
	if n.IsNull {
		return true
	}
	switch n.Type {
	case NullType:
		return true
	case BoolType:
		return n.Bool == o.Bool
	case IntType:
		return bigOrZero(n.Int).Cmp(bigOrZero(o.Int)) == 0
	case FloatType:
		if math.IsNaN(n.Float) {
			return math.IsNaN(o.Float)
		}
		return n.Float == o.Float && math.Signbit(n.Float) == math.Signbit(o.Float)
	case DecimalType:
		return n.Decimal.Equal(o.Decimal)
	case TimestampType:
		return n.Timestamp.Equal(o.Timestamp)
	case SymbolType:
		return n.Symbol.Equal(o.Symbol)
	case StringType:
		return n.String == o.String
	case ClobType, BlobType:
		return bytes.Equal(n.Bytes, o.Bytes)
	case ListType, SexpType:
		return slices.EqualFunc(n.Values, o.Values, (*Node).Equal)
	case StructType:
		return equalMembers(n.Values, o.Values)
	}
	return false
}

func equalMembers(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, x := range a {
		for j, y := range b {
			if used[j] || !sameField(x.Field, y.Field) || !x.Equal(y) {
				continue
			}
			used[j] = true
			continue outer
		}
		return false
	}
	return true
}

func sameField(a, b *SymbolToken) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// Interface returns n as plain Go values: nil, bool, int64 or *big.Int,
// float64, string, time.Time, []byte, []any and map[string]any. Decimals
// become float64. Annotations are dropped and repeated struct fields keep
// the last value.
func (n *Node) Interface() any {
	if n.IsNull {
		return nil
	}
	switch n.Type {
	case BoolType:
		return n.Bool
	case IntType:
		v := bigOrZero(n.Int)
		if v.IsInt64() {
			return v.Int64()
		}
		return new(big.Int).Set(v)
	case FloatType:
		return n.Float
	case DecimalType:
		f, _ := strconv.ParseFloat(strings.Replace(n.Decimal.String(), "d", "e", 1), 64)
		return f
	case TimestampType:
		return n.Timestamp.Time()
	case SymbolType:
		return n.Symbol.String()
	case StringType:
		return n.String
	case ClobType, BlobType:
		return slices.Clone(n.Bytes)
	case ListType, SexpType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = v.Interface()
		}
		return res
	case StructType:
		res := make(map[string]any, len(n.Values))
		for _, v := range n.Values {
			if v.Field == nil {
				continue
			}
			res[v.Field.String()] = v.Interface()
		}
		return res
	}
	return nil
}
