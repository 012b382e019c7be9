package stream

import (
	"bytes"

	"github.com/signadot/iondsl/ion"
)

// Parse decodes every top level value of d.
func Parse(d []byte) ([]*ion.Node, error) {
	return ion.Load(NewDecoderBytes(d))
}

// Marshal encodes nodes as Ion text, one top level value per line.
func Marshal(nodes []*ion.Node, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf, opts...)
	for _, n := range nodes {
		if err := n.WriteTo(enc); err != nil {
			return nil, err
		}
	}
	if err := enc.Finish(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
