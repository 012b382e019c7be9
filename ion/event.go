package ion

import (
	"fmt"
	"math/big"
)

// EventType is the kind of a structural event read from a Reader.
type EventType int

const (
	// EventValue carries a scalar or a null of any type.
	EventValue EventType = iota
	// EventBegin opens a list, sexp or struct.
	EventBegin
	// EventEnd closes the innermost open container.
	EventEnd
)

func (t EventType) String() string {
	switch t {
	case EventValue:
		return "Value"
	case EventBegin:
		return "Begin"
	case EventEnd:
		return "End"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	et, ok := map[string]EventType{
		"Value": EventValue,
		"Begin": EventBegin,
		"End":   EventEnd,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unknown event type %q", d)
	}
	*t = et
	return nil
}

// Event is one step of a value stream. Begin and Value events carry the
// field name (inside a struct) and annotations of the value they start.
// Only the payload field matching Kind is set.
type Event struct {
	Type EventType
	Kind Type

	Field       *SymbolToken
	Annotations []string

	IsNull    bool
	Bool      bool
	Int       *big.Int
	Float     float64
	Decimal   Decimal
	Timestamp Timestamp
	String    string
	Symbol    SymbolToken
	Bytes     []byte
}

// IsValueStart reports whether e starts a value.
func (e *Event) IsValueStart() bool {
	return e.Type == EventValue || e.Type == EventBegin
}
