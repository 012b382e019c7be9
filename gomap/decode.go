package gomap

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"slices"

	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

var (
	ErrUnsupported = errors.New("unsupported type")
	ErrMismatch    = errors.New("type mismatch")
	ErrTarget      = errors.New("target must be a non-nil pointer")
)

// Unmarshaler is implemented by types that load themselves from a value.
type Unmarshaler interface {
	UnmarshalIon(*ion.Node) error
}

var unmarshalerType = reflect.TypeFor[Unmarshaler]()

// Unmarshal parses d, which must hold exactly one value, into p.
func Unmarshal(d []byte, p any) error {
	nodes, err := stream.Parse(d)
	if err != nil {
		return err
	}
	if len(nodes) != 1 {
		return fmt.Errorf("expected 1 value, got %d", len(nodes))
	}
	return Load(nodes[0], p)
}

// Load stores n in the value p points to, following the mapping of
// FromGo. Struct members without a matching Go field are ignored. Null
// sets the target to its zero value.
func Load(n *ion.Node, p any) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w, got %T", ErrTarget, p)
	}
	return toValue(n, v.Elem())
}

func mismatch(n *ion.Node, ty reflect.Type) error {
	return fmt.Errorf("%w: cannot load %s into %s", ErrMismatch, n.Type, ty)
}

func toValue(n *ion.Node, v reflect.Value) error {
	ty := v.Type()
	if v.CanAddr() && reflect.PointerTo(ty).Implements(unmarshalerType) {
		return v.Addr().Interface().(Unmarshaler).UnmarshalIon(n)
	}
	if ty.Kind() == reflect.Pointer {
		if n.IsNull {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(ty.Elem()))
		}
		return toValue(n, v.Elem())
	}
	if ty == nodeType {
		v.Set(reflect.ValueOf(*n))
		return nil
	}
	if n.IsNull {
		v.SetZero()
		return nil
	}
	switch ty {
	case decimalType:
		if n.Type != ion.DecimalType {
			return mismatch(n, ty)
		}
		v.Set(reflect.ValueOf(n.Decimal))
		return nil
	case timestampType, timeType:
		if n.Type != ion.TimestampType {
			return mismatch(n, ty)
		}
		if ty == timeType {
			v.Set(reflect.ValueOf(n.Timestamp.Time()))
		} else {
			v.Set(reflect.ValueOf(n.Timestamp))
		}
		return nil
	case symbolType:
		switch n.Type {
		case ion.SymbolType:
			v.Set(reflect.ValueOf(n.Symbol))
		case ion.StringType:
			v.Set(reflect.ValueOf(ion.NewSymbolToken(n.String)))
		default:
			return mismatch(n, ty)
		}
		return nil
	case bigIntType:
		if n.Type != ion.IntType {
			return mismatch(n, ty)
		}
		v.Set(reflect.ValueOf(*new(big.Int).Set(intOf(n))))
		return nil
	}
	switch ty.Kind() {
	case reflect.Interface:
		if ty.NumMethod() != 0 {
			return fmt.Errorf("%w: %s", ErrUnsupported, ty)
		}
		v.Set(reflect.ValueOf(n.Interface()))
		return nil
	case reflect.Bool:
		if n.Type != ion.BoolType {
			return mismatch(n, ty)
		}
		v.SetBool(n.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n.Type != ion.IntType {
			return mismatch(n, ty)
		}
		i := intOf(n)
		if !i.IsInt64() || v.OverflowInt(i.Int64()) {
			return fmt.Errorf("%w: %s overflows %s", ErrMismatch, i, ty)
		}
		v.SetInt(i.Int64())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n.Type != ion.IntType {
			return mismatch(n, ty)
		}
		i := intOf(n)
		if !i.IsUint64() || v.OverflowUint(i.Uint64()) {
			return fmt.Errorf("%w: %s overflows %s", ErrMismatch, i, ty)
		}
		v.SetUint(i.Uint64())
		return nil
	case reflect.Float32, reflect.Float64:
		switch n.Type {
		case ion.FloatType, ion.DecimalType, ion.IntType:
			f, _ := n.Interface().(float64)
			if n.Type == ion.IntType {
				f, _ = new(big.Float).SetInt(intOf(n)).Float64()
			}
			v.SetFloat(f)
			return nil
		}
		return mismatch(n, ty)
	case reflect.String:
		switch n.Type {
		case ion.StringType:
			v.SetString(n.String)
		case ion.SymbolType:
			v.SetString(n.Symbol.String())
		default:
			return mismatch(n, ty)
		}
		return nil
	case reflect.Slice:
		if ty.Elem().Kind() == reflect.Uint8 && (n.Type == ion.BlobType || n.Type == ion.ClobType) {
			v.SetBytes(slices.Clone(n.Bytes))
			return nil
		}
		if !n.Type.IsSequence() {
			return mismatch(n, ty)
		}
		res := reflect.MakeSlice(ty, len(n.Values), len(n.Values))
		for i, e := range n.Values {
			if err := toValue(e, res.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		v.Set(res)
		return nil
	case reflect.Array:
		if !n.Type.IsSequence() {
			return mismatch(n, ty)
		}
		if len(n.Values) > v.Len() {
			return fmt.Errorf("%w: %d values do not fit in %s", ErrMismatch, len(n.Values), ty)
		}
		v.SetZero()
		for i, e := range n.Values {
			if err := toValue(e, v.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	case reflect.Map:
		if ty.Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrUnsupported, ty.Key())
		}
		if n.Type != ion.StructType {
			return mismatch(n, ty)
		}
		res := reflect.MakeMapWithSize(ty, len(n.Values))
		for _, m := range n.Values {
			if m.Field == nil {
				continue
			}
			e := reflect.New(ty.Elem()).Elem()
			if err := toValue(m, e); err != nil {
				return fmt.Errorf("%s: %w", m.Field, err)
			}
			res.SetMapIndex(reflect.ValueOf(m.Field.String()).Convert(ty.Key()), e)
		}
		v.Set(res)
		return nil
	case reflect.Struct:
		if n.Type != ion.StructType {
			return mismatch(n, ty)
		}
		fs := fields(ty)
		for i := range fs {
			if !fs[i].annotations {
				continue
			}
			if fv := allocField(v, fs[i].index); fv.Type() == reflect.TypeFor[[]string]() {
				fv.Set(reflect.ValueOf(slices.Clone(n.Annotations)))
			}
		}
		named := byName(fs)
		for _, m := range n.Values {
			if m.Field == nil {
				continue
			}
			fd := named[m.Field.String()]
			if fd == nil || fd.annotations {
				continue
			}
			if err := toValue(m, allocField(v, fd.index)); err != nil {
				return fmt.Errorf("%s: %w", fd.name, err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, ty)
}

func intOf(n *ion.Node) *big.Int {
	if n.Int == nil {
		return new(big.Int)
	}
	return n.Int
}

// allocField is reflect.Value.FieldByIndex, allocating nil embedded
// pointers on the way.
func allocField(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
