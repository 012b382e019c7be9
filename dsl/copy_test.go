package dsl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

func encodeString(t *testing.T, fn func(Sequence) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

func TestValueFrom(t *testing.T) {
	dec := stream.NewDecoderBytes([]byte("a::[1,{x:2}] 3 4"))
	out := encodeString(t, func(s Sequence) error {
		return s.Struct(func(f Fields) error {
			if err := f.ValueFrom(Name("first"), dec); err != nil {
				return err
			}
			return f.ValueFrom(Name("second"), dec)
		})
	})
	expected := "{first:a::[1,{x:2}],second:3}\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
	ev, err := dec.ReadEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Int.Int64() != 4 {
		t.Errorf("expected reader positioned on 4, got %v", ev.Int)
	}
}

func TestValueFromExhausted(t *testing.T) {
	dec := stream.NewDecoderBytes(nil)
	err := Write(&recorder{}, func(s Sequence) error {
		return s.ValueFrom(dec)
	})
	if !errors.Is(err, ion.ErrNoValue) {
		t.Errorf("expected ErrNoValue, got %v", err)
	}
}

func TestValuesFrom(t *testing.T) {
	dec := stream.NewDecoderBytes([]byte("[1, b::two, {c:3}] tail"))
	if _, err := dec.ReadEvent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := encodeString(t, func(s Sequence) error {
		return s.Sexp(func(s Sequence) error {
			return s.ValuesFrom(dec)
		})
	})
	expected := "(1 b::two {c:3})\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
	ev, err := dec.ReadEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != ion.EventEnd {
		t.Errorf("expected the list end to be left unread, got %s", ev.Type)
	}
}

func TestFieldsFrom(t *testing.T) {
	dec := stream.NewDecoderBytes([]byte("{a:1,$9:x::'b',c:[]}"))
	if _, err := dec.ReadEvent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := encodeString(t, func(s Sequence) error {
		return s.Struct(func(f Fields) error {
			if err := f.Bool(Name("z"), true); err != nil {
				return err
			}
			return f.FieldsFrom(dec)
		})
	})
	expected := "{z:true,a:1,$9:x::b,c:[]}\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestNode(t *testing.T) {
	n := ion.FromFields(
		ion.FromInt(1).WithField("a"),
		ion.FromList(ion.FromString("s"), ion.Null()).WithField("b").WithAnnotations("t"),
	).WithAnnotations("top")
	out := encodeString(t, func(s Sequence) error {
		return s.List(func(s Sequence) error {
			if err := s.Node(n); err != nil {
				return err
			}
			return s.Struct(func(f Fields) error {
				return f.Node(Name("copy"), n)
			})
		})
	})
	expected := `[top::{a:1,b:t::["s",null]},{copy:top::{a:1,b:t::["s",null]}}]` + "\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestNodesRoundTrip(t *testing.T) {
	src := `x::{a:[1,2.5e0,"s"],b:(c d),e:null.int,f:{{AQID}}}` + "\n"
	parsed, err := stream.Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	built, err := Nodes(func(s Sequence) error {
		return s.Struct(func(f Fields) error {
			return errors.Join(
				f.List(Name("a"), func(s Sequence) error {
					return errors.Join(s.Int(1), s.Float(2.5), s.String("s"))
				}),
				f.Sexp(Name("b"), func(s Sequence) error {
					return errors.Join(s.Symbol("c"), s.Symbol("d"))
				}),
				f.NullType(Name("e"), ion.IntType),
				f.Blob(Name("f"), []byte{1, 2, 3}),
			)
		}, "x")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(built) != 1 || !built[0].Equal(parsed[0]) {
		out, _ := stream.Marshal(built)
		t.Errorf("built value differs from parsed:\n%s", cmp.Diff(src, string(out)))
	}
}
