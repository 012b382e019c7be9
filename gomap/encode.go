// Package gomap maps Go values to and from Ion values.
package gomap

import (
	"encoding"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"slices"
	"time"

	"github.com/signadot/iondsl/dsl"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

// Marshaler is implemented by types that render themselves as a value.
type Marshaler interface {
	MarshalIon() (*ion.Node, error)
}

var (
	nodeType      = reflect.TypeFor[ion.Node]()
	decimalType   = reflect.TypeFor[ion.Decimal]()
	timestampType = reflect.TypeFor[ion.Timestamp]()
	symbolType    = reflect.TypeFor[ion.SymbolToken]()
	timeType      = reflect.TypeFor[time.Time]()
	bigIntType    = reflect.TypeFor[big.Int]()
	marshalerType = reflect.TypeFor[Marshaler]()
	textType      = reflect.TypeFor[encoding.TextMarshaler]()
)

// FromGo returns v as a value. Structs map to structs using `ion` field
// tags, maps with string keys to structs with sorted fields, slices and
// arrays to lists and []byte to blobs. Nil pointers, slices, maps and
// interfaces are null.
func FromGo(v any) (*ion.Node, error) {
	if v == nil {
		return ion.Null(), nil
	}
	e := &encoder{visiting: map[any]bool{}}
	return e.fromValue(reflect.ValueOf(v))
}

// Write copies v to s.
func Write(s dsl.Sequence, v any) error {
	n, err := FromGo(v)
	if err != nil {
		return err
	}
	return s.Node(n)
}

// Encode writes each of vs as a top level value of Ion text to w.
func Encode(w io.Writer, vs []any, opts ...stream.Option) error {
	return dsl.Encode(w, func(s dsl.Sequence) error {
		for _, v := range vs {
			if err := Write(s, v); err != nil {
				return err
			}
		}
		return nil
	}, opts...)
}

// encoder tracks the pointers, maps and slices on the current path so a
// value reachable from itself is an error instead of unbounded recursion.
type encoder struct {
	visiting map[any]bool
}

type sliceKey struct {
	ptr uintptr
	len int
}

// enter marks v as being encoded, returning a func to unmark it.
func (e *encoder) enter(v reflect.Value) (func(), error) {
	var key any
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		key = v.Pointer()
	case reflect.Slice:
		key = sliceKey{ptr: v.Pointer(), len: v.Len()}
	default:
		return func() {}, nil
	}
	if e.visiting[key] {
		return nil, fmt.Errorf("%w: cycle through %s", ErrUnsupported, v.Type())
	}
	e.visiting[key] = true
	return func() { delete(e.visiting, key) }, nil
}

func (e *encoder) fromValue(v reflect.Value) (*ion.Node, error) {
	ty := v.Type()
	if ty.Implements(marshalerType) && (ty.Kind() != reflect.Pointer || !v.IsNil()) {
		return v.Interface().(Marshaler).MarshalIon()
	}
	switch ty {
	case nodeType:
		n := v.Interface().(ion.Node)
		return &n, nil
	case decimalType:
		return ion.FromDecimal(v.Interface().(ion.Decimal)), nil
	case timestampType:
		return ion.FromTimestamp(v.Interface().(ion.Timestamp)), nil
	case symbolType:
		return ion.FromSymbolToken(v.Interface().(ion.SymbolToken)), nil
	case timeType:
		return fromTime(v.Interface().(time.Time)), nil
	case bigIntType:
		b := v.Interface().(big.Int)
		return ion.FromBigInt(new(big.Int).Set(&b)), nil
	}
	switch ty.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return ion.Null(), nil
		}
		if ty.Kind() == reflect.Interface {
			return e.fromValue(v.Elem())
		}
		leave, err := e.enter(v)
		if err != nil {
			return nil, err
		}
		defer leave()
		return e.fromValue(v.Elem())
	case reflect.Bool:
		return ion.FromBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ion.FromInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ion.FromBigInt(new(big.Int).SetUint64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return ion.FromFloat(v.Float()), nil
	case reflect.String:
		return ion.FromString(v.String()), nil
	case reflect.Slice:
		if v.IsNil() {
			return ion.TypedNull(ion.ListType), nil
		}
		if ty.Elem().Kind() == reflect.Uint8 {
			return ion.FromBlob(slices.Clone(v.Bytes())), nil
		}
		leave, err := e.enter(v)
		if err != nil {
			return nil, err
		}
		defer leave()
		return e.fromSeq(v)
	case reflect.Array:
		return e.fromSeq(v)
	case reflect.Map:
		if v.IsNil() {
			return ion.TypedNull(ion.StructType), nil
		}
		leave, err := e.enter(v)
		if err != nil {
			return nil, err
		}
		defer leave()
		return e.fromMap(v)
	case reflect.Struct:
		return e.fromStruct(v)
	}
	if ty.Implements(textType) {
		d, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return ion.FromString(string(d)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, ty)
}

func fromTime(t time.Time) *ion.Node {
	p := ion.Second
	if t.Nanosecond() != 0 {
		p = ion.Fraction
	}
	return ion.FromTimestamp(ion.NewTimestamp(t, p))
}

func (e *encoder) fromSeq(v reflect.Value) (*ion.Node, error) {
	res := make([]*ion.Node, v.Len())
	for i := range res {
		n, err := e.fromValue(v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		res[i] = n
	}
	return ion.FromList(res...), nil
}

func (e *encoder) fromMap(v reflect.Value) (*ion.Node, error) {
	if v.IsNil() {
		return ion.TypedNull(ion.StructType), nil
	}
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: map key type %s", ErrUnsupported, v.Type().Key())
	}
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	res := make([]*ion.Node, len(keys))
	for i, k := range keys {
		n, err := e.fromValue(v.MapIndex(k))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.String(), err)
		}
		res[i] = n.WithField(k.String())
	}
	return ion.FromFields(res...), nil
}

func (e *encoder) fromStruct(v reflect.Value) (*ion.Node, error) {
	fs := fields(v.Type())
	var (
		anns []string
		res  = []*ion.Node{}
	)
	for i := range fs {
		fd := &fs[i]
		fv, ok := fieldByIndex(v, fd.index)
		if !ok {
			continue
		}
		if fd.annotations {
			if a, ok := fv.Interface().([]string); ok {
				anns = a
			}
			continue
		}
		if fd.omitEmpty && fv.IsZero() {
			continue
		}
		var (
			n   *ion.Node
			err error
		)
		if fd.symbol && fv.Kind() == reflect.String {
			n = ion.FromSymbol(fv.String())
		} else {
			n, err = e.fromValue(fv)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fd.name, err)
		}
		res = append(res, n.WithField(fd.name))
	}
	n := ion.FromFields(res...)
	if len(anns) > 0 {
		n.Annotations = slices.Clone(anns)
	}
	return n, nil
}

// fieldByIndex is reflect.Value.FieldByIndex, reporting false for a field
// behind a nil embedded pointer.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
