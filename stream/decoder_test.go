package stream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/token"
)

type evSummary struct {
	Type  ion.EventType
	Kind  ion.Type
	Field string
	Anns  []string
}

func summarize(t *testing.T, src string) []evSummary {
	t.Helper()
	dec := NewDecoderBytes([]byte(src))
	res := []evSummary{}
	for {
		ev, err := dec.ReadEvent()
		if err == io.EOF {
			return res
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := evSummary{Type: ev.Type, Kind: ev.Kind, Anns: ev.Annotations}
		if ev.Field != nil {
			s.Field = ev.Field.String()
		}
		res = append(res, s)
	}
}

func TestDecoderEvents(t *testing.T) {
	got := summarize(t, `$ion_1_0 a::{x: [1, 2], 'y':b::c::(+ 1), "z": null.int} // end`)
	want := []evSummary{
		{Type: ion.EventBegin, Kind: ion.StructType, Anns: []string{"a"}},
		{Type: ion.EventBegin, Kind: ion.ListType, Field: "x"},
		{Type: ion.EventValue, Kind: ion.IntType},
		{Type: ion.EventValue, Kind: ion.IntType},
		{Type: ion.EventEnd, Kind: ion.ListType},
		{Type: ion.EventBegin, Kind: ion.SexpType, Field: "y", Anns: []string{"b", "c"}},
		{Type: ion.EventValue, Kind: ion.SymbolType},
		{Type: ion.EventValue, Kind: ion.IntType},
		{Type: ion.EventEnd, Kind: ion.SexpType},
		{Type: ion.EventValue, Kind: ion.IntType, Field: "z"},
		{Type: ion.EventEnd, Kind: ion.StructType},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderPeek(t *testing.T) {
	dec := NewDecoderBytes([]byte("1 2"))
	p, err := dec.PeekEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := dec.ReadEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != r {
		t.Error("peeked event differs from read event")
	}
	r, err = dec.ReadEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Int.Int64() != 2 {
		t.Errorf("expected 2, got %v", r.Int)
	}
	if _, err := dec.PeekEvent(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestDecoderErrors(t *testing.T) {
	cases := []string{
		"[1,2",
		"{a 1}",
		"{a:}",
		"]",
		"(1,2)",
		"[1 2 ,, ]x]",
		"1 , 2",
		"{1:2}",
		"a::",
		"007",
		"2019-13-01",
		"null.foo",
	}
	for _, c := range cases {
		_, err := Parse([]byte(c))
		if err == nil {
			t.Errorf("%q: expected error", c)
		}
	}
}

func TestDecoderErrorPosition(t *testing.T) {
	_, err := Parse([]byte("[1,\n  2019-13-01]"))
	var te *token.TokenizeErr
	if !errors.As(err, &te) {
		t.Fatalf("expected *token.TokenizeErr, got %v", err)
	}
	if te.Pos.Line() != 1 {
		t.Errorf("expected line 1, got %d", te.Pos.Line())
	}
	if !errors.Is(err, ion.ErrParse) {
		t.Errorf("expected ion.ErrParse, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"null",
		"null.struct",
		"true",
		"-7",
		"123456789012345678901234567890",
		"2.5e0",
		"nan",
		"+inf",
		"1.50",
		"12d3",
		`"sé\n"`,
		"2019T",
		"2019-01-02T03:04:05.123-08:00",
		"2019-01-02T03:04-00:00",
		"sym",
		"'quoted sym'",
		"$7",
		"{{aGVsbG8=}}",
		`{{"c\x01"}}`,
		"a::b::[1,(x y),{f:g::1,$3:''}]",
	}, "\n") + "\n"
	nodes, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := Marshal(nodes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(src, string(out)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != len(nodes) {
		t.Fatalf("expected %d nodes, got %d", len(nodes), len(again))
	}
	for i := range nodes {
		if !nodes[i].Equal(again[i]) {
			t.Errorf("node %d differs after round trip", i)
		}
	}
}

func TestDecoderScalarValues(t *testing.T) {
	nodes, err := Parse([]byte("0x1F -0b101 1_000 -0.25 1e-3 nan 2019-01-02T03:04:05Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := nodes[0].Int.Int64(); got != 31 {
		t.Errorf("expected 31, got %d", got)
	}
	if got := nodes[1].Int.Int64(); got != -5 {
		t.Errorf("expected -5, got %d", got)
	}
	if got := nodes[2].Int.Int64(); got != 1000 {
		t.Errorf("expected 1000, got %d", got)
	}
	if !nodes[3].Decimal.Equal(ion.MustParseDecimal("-0.25")) {
		t.Errorf("unexpected decimal %s", nodes[3].Decimal)
	}
	if got := nodes[4].Float; got != 1e-3 {
		t.Errorf("expected 1e-3, got %v", got)
	}
	if !math.IsNaN(nodes[5].Float) {
		t.Errorf("expected nan, got %v", nodes[5].Float)
	}
	want := time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC)
	if !nodes[6].Timestamp.Time().Equal(want) {
		t.Errorf("expected %v, got %v", want, nodes[6].Timestamp.Time())
	}
}

func TestNodeWriterMatchesEncoder(t *testing.T) {
	nodes, err := Parse([]byte("a::{x:[1,2.5e0],y:null.int}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nw := NewNodeWriter()
	for _, n := range nodes {
		if err := n.WriteTo(nw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := nw.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := nw.Nodes()
	if len(got) != 1 || !got[0].Equal(nodes[0]) {
		t.Errorf("node writer produced a different datagram")
	}
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteValues(NewDecoderBytes([]byte("a::{x:[1,2.5e0],y:null.int}"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "a::{x:[1,2.5e0],y:null.int}\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
