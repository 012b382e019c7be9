package stream

import (
	"strconv"

	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/token"
)

// State tracks the container stack and the field name and annotations
// staged for the next value. It holds no output, the Encoder and
// NodeWriter use it to validate the call sequence and the Decoder to
// report paths.
type State struct {
	stack []item
	top   int

	field *ion.SymbolToken
	anns  []string
}

type item struct {
	kind  ion.Type
	n     int
	field *ion.SymbolToken
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) current() *item {
	return &s.stack[len(s.stack)-1]
}

func (s *State) errorf(msg string) error {
	return &Error{Msg: msg, Path: s.CurrentPath()}
}

// SetField stages the field name of the next value.
func (s *State) SetField(tok ion.SymbolToken) error {
	if !s.IsInStruct() {
		return s.errorf("field name outside struct")
	}
	if s.field != nil {
		return s.errorf("field name after field name")
	}
	if len(s.anns) > 0 {
		return s.errorf("field name after annotations")
	}
	s.field = &tok
	return nil
}

// SetAnnotations stages the annotations of the next value.
func (s *State) SetAnnotations(anns []string) error {
	if len(s.anns) > 0 {
		return s.errorf("annotations already pending")
	}
	s.anns = append([]string{}, anns...)
	return nil
}

// Pending returns the staged field name and annotations.
func (s *State) Pending() (*ion.SymbolToken, []string) {
	return s.field, s.anns
}

// Index returns the number of values already started in the current
// container, or at top level.
func (s *State) Index() int {
	if len(s.stack) == 0 {
		return s.top
	}
	return s.current().n
}

// Value consumes the staged field name and annotations for a scalar.
func (s *State) Value() error {
	if s.IsInStruct() && s.field == nil {
		return s.errorf("value in struct without field name")
	}
	if len(s.stack) == 0 {
		s.top++
	} else {
		cur := s.current()
		cur.n++
		cur.field = s.field
	}
	s.field = nil
	s.anns = nil
	return nil
}

// Begin is Value for a container of the given kind, which becomes current.
func (s *State) Begin(kind ion.Type) error {
	if !kind.IsContainer() {
		return s.errorf("begin of non container type " + kind.String())
	}
	if err := s.Value(); err != nil {
		return err
	}
	s.stack = append(s.stack, item{kind: kind})
	return nil
}

// End closes the current container.
func (s *State) End() error {
	if len(s.stack) == 0 {
		return s.errorf("end with no open container")
	}
	if s.field != nil {
		return s.errorf("dangling field name at end of " + s.current().kind.String())
	}
	if len(s.anns) > 0 {
		return s.errorf("dangling annotations at end of " + s.current().kind.String())
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// Finish checks that all containers are closed and nothing is staged.
func (s *State) Finish() error {
	if len(s.stack) > 0 {
		return s.errorf(s.current().kind.String() + " not closed")
	}
	if len(s.anns) > 0 {
		return s.errorf("dangling annotations at finish")
	}
	return nil
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order.
func (s *State) ProcessEvent(ev *ion.Event) error {
	if ev.Type == ion.EventEnd {
		return s.End()
	}
	if ev.Field != nil {
		if err := s.SetField(*ev.Field); err != nil {
			return err
		}
	}
	if len(ev.Annotations) > 0 {
		if err := s.SetAnnotations(ev.Annotations); err != nil {
			return err
		}
	}
	if ev.Type == ion.EventBegin {
		return s.Begin(ev.Kind)
	}
	return s.Value()
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// Kind returns the type of the current container, or NoType at top level.
func (s *State) Kind() ion.Type {
	if len(s.stack) == 0 {
		return ion.NoType
	}
	return s.current().kind
}

// IsInStruct returns true if currently inside a struct.
func (s *State) IsInStruct() bool {
	return s.Kind() == ion.StructType
}

// IsInSequence returns true if currently inside a list or sexp.
func (s *State) IsInSequence() bool {
	return s.Kind().IsSequence()
}

// CurrentPath returns the path of the most recently started value within
// the current top level value, e.g. "a.b[2]".
func (s *State) CurrentPath() string {
	res := ""
	for i := range s.stack {
		it := &s.stack[i]
		if it.n == 0 {
			break
		}
		if it.kind == ion.StructType {
			if it.field == nil {
				break
			}
			if res != "" {
				res += "."
			}
			res += pathField(*it.field)
			continue
		}
		res += "[" + strconv.Itoa(it.n-1) + "]"
	}
	return res
}

func pathField(tok ion.SymbolToken) string {
	if !tok.HasText() {
		return tok.String()
	}
	return token.QuoteSymbol(tok.Text)
}
