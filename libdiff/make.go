package libdiff

import (
	"slices"

	"github.com/signadot/iondsl/ion"
)

// MakeDiff returns the diff replacing from with to. A nil from is an
// insertion, a nil to is a deletion.
func MakeDiff(from, to *ion.Node) *ion.Node {
	switch {
	case from == nil && to == nil:
		return nil
	case from == nil:
		return annotate(to, InsertAnnotation)
	case to == nil:
		return annotate(from, DeleteAnnotation)
	}
	return ion.FromFields(
		detach(from).WithField("from"),
		detach(to).WithField("to"),
	).WithAnnotations(ReplaceAnnotation)
}

// annotate returns a detached copy of n with ann in front of its own
// annotations.
func annotate(n *ion.Node, ann string) *ion.Node {
	res := detach(n)
	res.Annotations = append([]string{ann}, n.Annotations...)
	return res
}

// detach returns a shallow copy of n without its field name, so that it
// can be placed under a new parent.
func detach(n *ion.Node) *ion.Node {
	res := *n
	res.Field = nil
	res.Annotations = slices.Clone(n.Annotations)
	return &res
}
