package dsl

import (
	"math/big"

	"github.com/signadot/iondsl/ion"
)

// fields implements Fields by staging the field on a member view of the
// same writer and delegating to seq.
type fields struct {
	w ion.Writer
}

var _ Fields = fields{}

func (f fields) at(fd Field) seq {
	return seq{w: f.w, field: fd, member: true}
}

func (f fields) Null(fd Field, anns ...string) error {
	return f.at(fd).Null(anns...)
}

func (f fields) NullType(fd Field, t ion.Type, anns ...string) error {
	return f.at(fd).NullType(t, anns...)
}

func (f fields) Bool(fd Field, v bool, anns ...string) error {
	return f.at(fd).Bool(v, anns...)
}

func (f fields) Int(fd Field, v int64, anns ...string) error {
	return f.at(fd).Int(v, anns...)
}

func (f fields) BigInt(fd Field, v *big.Int, anns ...string) error {
	return f.at(fd).BigInt(v, anns...)
}

func (f fields) Float(fd Field, v float64, anns ...string) error {
	return f.at(fd).Float(v, anns...)
}

func (f fields) Decimal(fd Field, v ion.Decimal, anns ...string) error {
	return f.at(fd).Decimal(v, anns...)
}

func (f fields) String(fd Field, v string, anns ...string) error {
	return f.at(fd).String(v, anns...)
}

func (f fields) Timestamp(fd Field, v ion.Timestamp, anns ...string) error {
	return f.at(fd).Timestamp(v, anns...)
}

func (f fields) Blob(fd Field, v []byte, anns ...string) error {
	return f.at(fd).Blob(v, anns...)
}

func (f fields) BlobRange(fd Field, v []byte, off, n int, anns ...string) error {
	return f.at(fd).BlobRange(v, off, n, anns...)
}

func (f fields) Clob(fd Field, v []byte, anns ...string) error {
	return f.at(fd).Clob(v, anns...)
}

func (f fields) ClobRange(fd Field, v []byte, off, n int, anns ...string) error {
	return f.at(fd).ClobRange(v, off, n, anns...)
}

func (f fields) Symbol(fd Field, v string, anns ...string) error {
	return f.at(fd).Symbol(v, anns...)
}

func (f fields) SymbolToken(fd Field, v ion.SymbolToken, anns ...string) error {
	return f.at(fd).SymbolToken(v, anns...)
}

func (f fields) List(fd Field, fn func(Sequence) error, anns ...string) error {
	return f.at(fd).List(fn, anns...)
}

func (f fields) Sexp(fd Field, fn func(Sequence) error, anns ...string) error {
	return f.at(fd).Sexp(fn, anns...)
}

func (f fields) Seq(fd Field, kind ion.Type, fn func(Sequence) error, anns ...string) error {
	return f.at(fd).Seq(kind, fn, anns...)
}

func (f fields) Struct(fd Field, fn func(Fields) error, anns ...string) error {
	return f.at(fd).Struct(fn, anns...)
}

func (f fields) ValueFrom(fd Field, r ion.Reader) error {
	return f.at(fd).ValueFrom(r)
}

func (f fields) Node(fd Field, n *ion.Node) error {
	return f.at(fd).Node(n)
}

func (f fields) FieldsFrom(r ion.Reader) error {
	return ion.CopyMembers(f.w, r)
}
