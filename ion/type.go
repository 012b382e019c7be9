package ion

import "fmt"

// Type is the type of an Ion value.
type Type int

const (
	NoType Type = iota
	NullType
	BoolType
	IntType
	FloatType
	DecimalType
	TimestampType
	SymbolType
	StringType
	ClobType
	BlobType
	ListType
	SexpType
	StructType
)

var typeNames = map[Type]string{
	NoType:        "none",
	NullType:      "null",
	BoolType:      "bool",
	IntType:       "int",
	FloatType:     "float",
	DecimalType:   "decimal",
	TimestampType: "timestamp",
	SymbolType:    "symbol",
	StringType:    "string",
	ClobType:      "clob",
	BlobType:      "blob",
	ListType:      "list",
	SexpType:      "sexp",
	StructType:    "struct",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// IsContainer reports whether t is List, Sexp or Struct.
func (t Type) IsContainer() bool {
	return t == ListType || t == SexpType || t == StructType
}

// IsSequence reports whether t is List or Sexp.
func (t Type) IsSequence() bool {
	return t == ListType || t == SexpType
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, name := range typeNames {
		if name == string(d) && tt != NoType {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

// Types returns all value types in declaration order.
func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		FloatType,
		DecimalType,
		TimestampType,
		SymbolType,
		StringType,
		ClobType,
		BlobType,
		ListType,
		SexpType,
		StructType,
	}
}
