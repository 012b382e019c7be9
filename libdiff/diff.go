package libdiff

import (
	"slices"

	"github.com/signadot/iondsl/ion"
)

// DiffFunc computes the diff of two values, nil when they are equal.
type DiffFunc func(from, to *ion.Node) *ion.Node

// Diff returns an Ion document describing how to turn from into to, or nil
// if the two are equal. Containers of the same type are diffed member by
// member, long strings character by character, and everything else is
// replaced wholesale.
func Diff(from, to *ion.Node) *ion.Node {
	if from.Equal(to) {
		return nil
	}
	if from.Type != to.Type || from.IsNull || to.IsNull ||
		!slices.Equal(from.Annotations, to.Annotations) {
		return MakeDiff(from, to)
	}
	switch from.Type {
	case ion.StructType:
		return DiffStruct(from, to, Diff)
	case ion.ListType, ion.SexpType:
		return DiffArray(from, to, Diff)
	case ion.StringType:
		return DiffString(from, to)
	}
	return MakeDiff(from, to)
}

// DiffAll diffs two datagrams as top level lists. It returns nil when they
// hold equal values in the same order.
func DiffAll(from, to []*ion.Node) *ion.Node {
	return Diff(ion.FromList(from...), ion.FromList(to...))
}
