package convert

import (
	"math/big"

	"github.com/signadot/iondsl/dsl"
	"github.com/signadot/iondsl/ion"
)

// target is where a converted value goes: the next value of a sequence,
// or the member named by field of a struct.
type target struct {
	s     dsl.Sequence
	f     dsl.Fields
	field dsl.Field
}

func inSeq(s dsl.Sequence) target {
	return target{s: s}
}

func member(f dsl.Fields, name string) target {
	return target{f: f, field: dsl.Name(name)}
}

func (t target) null(anns []string) error {
	if t.f != nil {
		return t.f.Null(t.field, anns...)
	}
	return t.s.Null(anns...)
}

func (t target) bool(v bool, anns []string) error {
	if t.f != nil {
		return t.f.Bool(t.field, v, anns...)
	}
	return t.s.Bool(v, anns...)
}

func (t target) int(v int64, anns []string) error {
	if t.f != nil {
		return t.f.Int(t.field, v, anns...)
	}
	return t.s.Int(v, anns...)
}

func (t target) bigInt(v *big.Int, anns []string) error {
	if t.f != nil {
		return t.f.BigInt(t.field, v, anns...)
	}
	return t.s.BigInt(v, anns...)
}

func (t target) float(v float64, anns []string) error {
	if t.f != nil {
		return t.f.Float(t.field, v, anns...)
	}
	return t.s.Float(v, anns...)
}

func (t target) decimal(v ion.Decimal, anns []string) error {
	if t.f != nil {
		return t.f.Decimal(t.field, v, anns...)
	}
	return t.s.Decimal(v, anns...)
}

func (t target) string(v string, anns []string) error {
	if t.f != nil {
		return t.f.String(t.field, v, anns...)
	}
	return t.s.String(v, anns...)
}

func (t target) timestamp(v ion.Timestamp, anns []string) error {
	if t.f != nil {
		return t.f.Timestamp(t.field, v, anns...)
	}
	return t.s.Timestamp(v, anns...)
}

func (t target) blob(v []byte, anns []string) error {
	if t.f != nil {
		return t.f.Blob(t.field, v, anns...)
	}
	return t.s.Blob(v, anns...)
}

func (t target) list(fn func(dsl.Sequence) error, anns []string) error {
	if t.f != nil {
		return t.f.List(t.field, fn, anns...)
	}
	return t.s.List(fn, anns...)
}

func (t target) strct(fn func(dsl.Fields) error, anns []string) error {
	if t.f != nil {
		return t.f.Struct(t.field, fn, anns...)
	}
	return t.s.Struct(fn, anns...)
}
