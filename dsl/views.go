package dsl

import (
	"math/big"

	"github.com/signadot/iondsl/ion"
)

// Sequence is the view at top level and inside lists and sexps. Every
// scalar and container operation takes an optional list of annotations
// which apply to that value only.
type Sequence interface {
	Null(anns ...string) error
	// NullType writes a typed null such as null.int.
	NullType(t ion.Type, anns ...string) error
	Bool(v bool, anns ...string) error
	Int(v int64, anns ...string) error
	BigInt(v *big.Int, anns ...string) error
	Float(v float64, anns ...string) error
	Decimal(v ion.Decimal, anns ...string) error
	String(v string, anns ...string) error
	Timestamp(v ion.Timestamp, anns ...string) error
	Blob(v []byte, anns ...string) error
	// BlobRange writes the n bytes of v starting at off.
	BlobRange(v []byte, off, n int, anns ...string) error
	Clob(v []byte, anns ...string) error
	// ClobRange writes the n bytes of v starting at off.
	ClobRange(v []byte, off, n int, anns ...string) error
	Symbol(v string, anns ...string) error
	SymbolToken(v ion.SymbolToken, anns ...string) error

	List(fn func(Sequence) error, anns ...string) error
	Sexp(fn func(Sequence) error, anns ...string) error
	// Seq writes a list or a sexp according to kind. Any other kind
	// fails with ErrInvalidKind, which also matches ErrInvalidArgument,
	// before anything is written.
	Seq(kind ion.Type, fn func(Sequence) error, anns ...string) error
	Struct(fn func(Fields) error, anns ...string) error

	// ValueFrom copies the value r is positioned on.
	ValueFrom(r ion.Reader) error
	// Node copies a whole in-memory value, annotations included.
	Node(n *ion.Node) error
	// ValuesFrom copies every remaining value at r's depth.
	ValuesFrom(r ion.Reader) error
}

// Fields is the view inside a struct. It mirrors Sequence with a leading
// Field on every operation.
type Fields interface {
	Null(f Field, anns ...string) error
	NullType(f Field, t ion.Type, anns ...string) error
	Bool(f Field, v bool, anns ...string) error
	Int(f Field, v int64, anns ...string) error
	BigInt(f Field, v *big.Int, anns ...string) error
	Float(f Field, v float64, anns ...string) error
	Decimal(f Field, v ion.Decimal, anns ...string) error
	String(f Field, v string, anns ...string) error
	Timestamp(f Field, v ion.Timestamp, anns ...string) error
	Blob(f Field, v []byte, anns ...string) error
	BlobRange(f Field, v []byte, off, n int, anns ...string) error
	Clob(f Field, v []byte, anns ...string) error
	ClobRange(f Field, v []byte, off, n int, anns ...string) error
	Symbol(f Field, v string, anns ...string) error
	SymbolToken(f Field, v ion.SymbolToken, anns ...string) error

	List(f Field, fn func(Sequence) error, anns ...string) error
	Sexp(f Field, fn func(Sequence) error, anns ...string) error
	Seq(f Field, kind ion.Type, fn func(Sequence) error, anns ...string) error
	Struct(f Field, fn func(Fields) error, anns ...string) error

	ValueFrom(f Field, r ion.Reader) error
	Node(f Field, n *ion.Node) error
	// FieldsFrom copies every remaining member of the struct r is
	// positioned in, each under its own field name.
	FieldsFrom(r ion.Reader) error
}
