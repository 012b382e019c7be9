package eval

import (
	"github.com/signadot/iondsl/gomap"
	"github.com/signadot/iondsl/ion"
)

// FromAny converts the plain Go values produced by expressions into a
// value. Maps become structs with their keys sorted.
func FromAny(v any) (*ion.Node, error) {
	return gomap.FromGo(v)
}
