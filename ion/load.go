package ion

import (
	"errors"
	"fmt"
	"io"
)

// Load reads every remaining value at r's depth into nodes.
func Load(r Reader) ([]*Node, error) {
	res := []*Node{}
	for {
		ev, err := r.PeekEvent()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		if !ev.IsValueStart() {
			return res, nil
		}
		if ev, err = r.ReadEvent(); err != nil {
			return nil, err
		}
		n, err := loadEvent(r, ev)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
}

func loadEvent(r Reader, ev *Event) (*Node, error) {
	n := &Node{
		Type:        ev.Kind,
		IsNull:      ev.IsNull,
		Annotations: ev.Annotations,
		Field:       ev.Field,
	}
	if ev.Type == EventValue {
		n.Bool = ev.Bool
		n.Int = ev.Int
		n.Float = ev.Float
		n.Decimal = ev.Decimal
		n.Timestamp = ev.Timestamp
		n.String = ev.String
		n.Symbol = ev.Symbol
		n.Bytes = ev.Bytes
		return n, nil
	}
	n.Values = []*Node{}
	for {
		child, err := r.ReadEvent()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s not closed", ErrUnbalanced, ev.Kind)
		}
		if err != nil {
			return nil, err
		}
		if child.Type == EventEnd {
			return n, nil
		}
		c, err := loadEvent(r, child)
		if err != nil {
			return nil, err
		}
		n.Values = append(n.Values, c)
	}
}
