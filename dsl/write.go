package dsl

import (
	"io"

	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

// Write runs fn once against a top level view of w. It neither opens nor
// finishes w.
func Write(w ion.Writer, fn func(Sequence) error) error {
	return fn(seq{w: w})
}

// Encode writes the values produced by fn to out as Ion text and finishes
// the encoder.
func Encode(out io.Writer, fn func(Sequence) error, opts ...stream.Option) error {
	enc := stream.NewEncoder(out, opts...)
	if err := Write(enc, fn); err != nil {
		return err
	}
	return enc.Finish()
}

// Nodes returns the values produced by fn as in-memory nodes.
func Nodes(fn func(Sequence) error) ([]*ion.Node, error) {
	nw := stream.NewNodeWriter()
	if err := Write(nw, fn); err != nil {
		return nil, err
	}
	if err := nw.Finish(); err != nil {
		return nil, err
	}
	return nw.Nodes(), nil
}
