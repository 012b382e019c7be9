package stream

import (
	"math/big"

	"github.com/signadot/iondsl/ion"
)

// NodeWriter is an ion.Writer that builds an in-memory datagram.
type NodeWriter struct {
	state *State
	stack []*ion.Node
	nodes []*ion.Node
}

var _ ion.Writer = (*NodeWriter)(nil)

func NewNodeWriter() *NodeWriter {
	return &NodeWriter{state: NewState(), nodes: []*ion.Node{}}
}

// Nodes returns the top level values written so far.
func (nw *NodeWriter) Nodes() []*ion.Node {
	return nw.nodes
}

func (nw *NodeWriter) add(n *ion.Node) error {
	field, anns := nw.state.Pending()
	var err error
	if n.Type.IsContainer() && !n.IsNull {
		err = nw.state.Begin(n.Type)
	} else {
		err = nw.state.Value()
	}
	if err != nil {
		return err
	}
	n.Annotations = anns
	if len(nw.stack) == 0 {
		nw.nodes = append(nw.nodes, n)
	} else {
		parent := nw.stack[len(nw.stack)-1]
		if parent.Type == ion.StructType {
			n.Field = field
		}
		parent.Values = append(parent.Values, n)
	}
	if n.Type.IsContainer() && !n.IsNull {
		nw.stack = append(nw.stack, n)
	}
	return nil
}

func (nw *NodeWriter) FieldName(name string) error {
	return nw.state.SetField(ion.NewSymbolToken(name))
}

func (nw *NodeWriter) FieldNameSymbol(tok ion.SymbolToken) error {
	return nw.state.SetField(tok)
}

func (nw *NodeWriter) Annotations(anns ...string) error {
	return nw.state.SetAnnotations(anns)
}

func (nw *NodeWriter) Begin(t ion.Type) error {
	return nw.add(&ion.Node{Type: t, Values: []*ion.Node{}})
}

func (nw *NodeWriter) End() error {
	if err := nw.state.End(); err != nil {
		return err
	}
	nw.stack = nw.stack[:len(nw.stack)-1]
	return nil
}

func (nw *NodeWriter) WriteNull() error {
	return nw.add(ion.Null())
}

func (nw *NodeWriter) WriteNullType(t ion.Type) error {
	if t == ion.NoType {
		return &Error{Msg: "null of no type", Path: nw.state.CurrentPath()}
	}
	return nw.add(ion.TypedNull(t))
}

func (nw *NodeWriter) WriteBool(v bool) error {
	return nw.add(ion.FromBool(v))
}

func (nw *NodeWriter) WriteInt(v int64) error {
	return nw.add(ion.FromInt(v))
}

func (nw *NodeWriter) WriteBigInt(v *big.Int) error {
	if v == nil {
		return &Error{Msg: "nil big.Int", Path: nw.state.CurrentPath()}
	}
	return nw.add(ion.FromBigInt(v))
}

func (nw *NodeWriter) WriteFloat(v float64) error {
	return nw.add(ion.FromFloat(v))
}

func (nw *NodeWriter) WriteDecimal(v ion.Decimal) error {
	return nw.add(ion.FromDecimal(v))
}

func (nw *NodeWriter) WriteString(v string) error {
	return nw.add(ion.FromString(v))
}

func (nw *NodeWriter) WriteTimestamp(v ion.Timestamp) error {
	return nw.add(ion.FromTimestamp(v))
}

func (nw *NodeWriter) WriteBlob(v []byte) error {
	return nw.add(ion.FromBlob(v))
}

func (nw *NodeWriter) WriteClob(v []byte) error {
	return nw.add(ion.FromClob(v))
}

func (nw *NodeWriter) WriteSymbol(v string) error {
	return nw.add(ion.FromSymbol(v))
}

func (nw *NodeWriter) WriteSymbolToken(v ion.SymbolToken) error {
	return nw.add(ion.FromSymbolToken(v))
}

func (nw *NodeWriter) WriteValue(r ion.Reader) error {
	return ion.CopyValue(nw, r)
}

func (nw *NodeWriter) WriteValues(r ion.Reader) error {
	return ion.CopyValues(nw, r)
}

func (nw *NodeWriter) Finish() error {
	return nw.state.Finish()
}
