package libdiff

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

func parseOne(t *testing.T, src string) *ion.Node {
	t.Helper()
	nodes, err := stream.Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 value, got %d", len(nodes))
	}
	return nodes[0]
}

func TestDiff(t *testing.T) {
	cases := []struct {
		from, to string
		want     string
	}{
		{from: `1`, to: `2`, want: `replace::{from:1,to:2}`},
		{from: `a::1`, to: `b::1`, want: `replace::{from:a::1,to:b::1}`},
		{from: `1`, to: `"1"`, want: `replace::{from:1,to:"1"}`},
		{from: `null.int`, to: `3`, want: `replace::{from:null.int,to:3}`},
		{
			from: `{a:1,b:2,c:3}`,
			to:   `{a:1,b:5,d:4}`,
			want: `structdiff::{b:replace::{from:2,to:5},c:delete::3,d:insert::4}`,
		},
		{from: `[1,2,3]`, to: `[1,4,3]`, want: `arraydiff::{'1':replace::{from:2,to:4}}`},
		{from: `[1]`, to: `[1,2]`, want: `arraydiff::{'1':insert::2}`},
		{from: `(a b)`, to: `(a)`, want: `arraydiff::{'1':delete::b}`},
		{
			from: `[{a:1}]`,
			to:   `[{a:2}]`,
			want: `arraydiff::{'0':structdiff::{a:replace::{from:1,to:2}}}`,
		},
		{from: `"abcdefgh"`, to: `"abcXdefgh"`, want: `strdiff::{'3':insert::"X"}`},
		{from: `"abcdefgh"`, to: `"abdefgh"`, want: `strdiff::{'2':delete::"c"}`},
		{from: `"ab"`, to: `"xy"`, want: `replace::{from:"ab",to:"xy"}`},
	}
	for _, c := range cases {
		d := Diff(parseOne(t, c.from), parseOne(t, c.to))
		if d == nil {
			t.Fatalf("%s -> %s: expected a diff", c.from, c.to)
		}
		got, err := stream.Marshal([]*ion.Node{d})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != c.want+"\n" {
			t.Errorf("%s -> %s: got %q want %q", c.from, c.to, got, c.want+"\n")
		}
	}
}

func TestDiffEqual(t *testing.T) {
	for _, src := range []string{`1`, `a::[1,2]`, `{a:1,b:2}`, `"x"`} {
		if d := Diff(parseOne(t, src), parseOne(t, src)); d != nil {
			t.Errorf("%s: expected no diff, got %v", src, d)
		}
	}
	if d := Diff(parseOne(t, `{a:1,b:2}`), parseOne(t, `{b:2,a:1}`)); d != nil {
		t.Errorf("field order: expected no diff")
	}
}

func TestDiffAll(t *testing.T) {
	from, err := stream.Parse([]byte("1 2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	to, err := stream.Parse([]byte("1 2 3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := DiffAll(from, from); d != nil {
		t.Fatalf("expected no diff")
	}
	got, err := stream.Marshal([]*ion.Node{DiffAll(from, to)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "arraydiff::{'2':insert::3}\n" {
		t.Errorf("got %q", got)
	}
}

func TestMakeDiff(t *testing.T) {
	if MakeDiff(nil, nil) != nil {
		t.Fatalf("expected nil")
	}
	n := ion.FromInt(1).WithField("f").WithAnnotations("a")
	d := MakeDiff(n, nil)
	if d.Field != nil {
		t.Errorf("field was not detached")
	}
	if diff := cmp.Diff([]string{DeleteAnnotation, "a"}, d.Annotations); diff != "" {
		t.Errorf("annotations (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, n.Annotations); diff != "" {
		t.Errorf("source modified (-want +got):\n%s", diff)
	}
}

func TestTextLines(t *testing.T) {
	got := TextLines("a\nb\nc\n", "a\nx\nc\n")
	want := []Line{
		{Op: Equal, Text: "a"},
		{Op: Delete, Text: "b"},
		{Op: Insert, Text: "x"},
		{Op: Equal, Text: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Errorf("expected a change")
	}
	if Changed(TextLines("a\n", "a\n")) {
		t.Errorf("expected no change")
	}
}

func TestLines(t *testing.T) {
	from, err := stream.Parse([]byte(`{a:1} [1, 2]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	to, err := stream.Parse([]byte(`{a:1} [1,3]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := Lines(from, to, stream.WithSpacing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf := &bytes.Buffer{}
	if err := WriteLines(buf, lines, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := " {a: 1}\n-[1, 2]\n+[1, 3]\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
	buf.Reset()
	if err := WriteLines(buf, lines, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\x1b[")) {
		t.Errorf("expected colored output, got %q", buf.String())
	}
}
