package gomap

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

type Base struct {
	ID int `ion:"id"`
}

type Item struct {
	Base
	Anns    []string          `ion:",annotations"`
	Name    string            `ion:"name"`
	Kind    string            `ion:"kind,symbol"`
	Tags    []string          `ion:"tags,omitempty"`
	Attrs   map[string]int    `ion:"attrs,omitempty"`
	Data    []byte            `ion:"data,omitempty"`
	Price   ion.Decimal       `ion:"price"`
	Next    *Item             `ion:"next,omitempty"`
	Skipped string            `ion:"-"`
	Extra   map[string]string `ion:"extra"`
	hidden  int
}

func marshal(t *testing.T, n *ion.Node) string {
	t.Helper()
	d, err := stream.Marshal([]*ion.Node{n})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return string(d)
}

func testItem(t *testing.T) Item {
	t.Helper()
	price, err := ion.ParseDecimal("9.95")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return Item{
		Base:    Base{ID: 7},
		Anns:    []string{"item"},
		Name:    "box",
		Kind:    "thing",
		Tags:    []string{"a", "b"},
		Attrs:   map[string]int{"w": 2, "h": 1},
		Data:    []byte("hi"),
		Price:   price,
		Next:    &Item{Name: "lid"},
		Skipped: "x",
		hidden:  3,
	}
}

func TestFromGo(t *testing.T) {
	n, err := FromGo(testItem(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `item::{id:7,name:"box",kind:thing,tags:["a","b"],attrs:{h:1,w:2},data:{{aGk=}},` +
		`price:9.95,next:{id:0,name:"lid",kind:'',price:0.,extra:null.struct},extra:null.struct}` + "\n"
	if got := marshal(t, n); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestFromGoScalars(t *testing.T) {
	ts := time.Date(2020, 1, 2, 3, 4, 5, 600_000_000, time.UTC)
	for _, tc := range []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{-3, "-3"},
		{uint64(1 << 63), "9223372036854775808"},
		{2.5, "2.5e0"},
		{"s", `"s"`},
		{ts, "2020-01-02T03:04:05.6Z"},
		{big.NewInt(12), "12"},
		{[2]bool{true, false}, "[true,false]"},
		{[]int(nil), "null.list"},
		{(*Item)(nil), "null"},
		{ion.NewSymbolToken("sym"), "sym"},
		{ion.FromList(ion.FromInt(1)), "[1]"},
	} {
		n, err := FromGo(tc.in)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tc.in, err)
		}
		if got := marshal(t, n); got != tc.want+"\n" {
			t.Errorf("%v: got %q want %q", tc.in, got, tc.want+"\n")
		}
	}
}

func TestFromGoUnsupported(t *testing.T) {
	for _, v := range []any{make(chan int), map[int]string{1: "a"}, func() {}} {
		if _, err := FromGo(v); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%T: expected ErrUnsupported, got %v", v, err)
		}
	}
}

func TestFromGoCycle(t *testing.T) {
	loop := &Item{Name: "loop"}
	loop.Next = loop
	self := map[string]any{}
	self["self"] = self
	list := []any{nil}
	list[0] = list
	for _, v := range []any{loop, self, list} {
		if _, err := FromGo(v); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%T: expected ErrUnsupported, got %v", v, err)
		}
	}

	shared := &Item{Name: "shared"}
	n, err := FromGo([]*Item{shared, shared})
	if err != nil {
		t.Fatalf("unexpected error for a shared pointer: %v", err)
	}
	if len(n.Values) != 2 {
		t.Errorf("expected 2 elements, got %d", len(n.Values))
	}
}

type point struct{ x, y int }

func (p point) MarshalIon() (*ion.Node, error) {
	return ion.FromSexp(ion.FromInt(int64(p.x)), ion.FromInt(int64(p.y))).WithAnnotations("point"), nil
}

func (p *point) UnmarshalIon(n *ion.Node) error {
	if n.Type != ion.SexpType || len(n.Values) != 2 {
		return errors.New("bad point")
	}
	p.x = int(n.Values[0].Int.Int64())
	p.y = int(n.Values[1].Int.Int64())
	return nil
}

func TestMarshaler(t *testing.T) {
	n, err := FromGo(map[string]point{"p": {1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := marshal(t, n); got != "{p:point::(1 2)}\n" {
		t.Errorf("got %q", got)
	}
	var res map[string]point
	if err := Load(n, &res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res["p"] != (point{1, 2}) {
		t.Errorf("got %v", res)
	}
}

func TestRoundTrip(t *testing.T) {
	in := testItem(t)
	buf := &bytes.Buffer{}
	if err := Encode(buf, []any{in}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out Item
	if err := Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.Skipped = ""
	in.hidden = 0
	opts := cmp.Options{
		cmp.AllowUnexported(Item{}),
		cmpopts.EquateEmpty(),
		cmp.Comparer(func(a, b ion.Decimal) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(in, out, opts); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	var v struct {
		A  int8             `ion:"a"`
		B  float64          `ion:"b"`
		C  []any            `ion:"c"`
		D  *string          `ion:"d"`
		E  ion.Node         `ion:"e"`
		F  time.Time        `ion:"f"`
		G  [3]int           `ion:"g"`
		H  string           `ion:"h"`
		I  ion.SymbolToken  `ion:"i"`
		J  map[string]*bool `ion:"j"`
		NS string
	}
	v.NS = "keep"
	src := `{a:-5,b:1.25,c:[1,"x",null],d:"dee",e:x::[1],f:2001-02-03T,g:[1,2],h:sym,i:"txt",j:{t:true,n:null},zz:1}`
	if err := Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.A != -5 || v.B != 1.25 || v.H != "sym" || v.I.Text != "txt" || v.NS != "keep" {
		t.Errorf("unexpected scalars: %+v", v)
	}
	if diff := cmp.Diff([]any{int64(1), "x", nil}, v.C); diff != "" {
		t.Errorf("c (-want +got):\n%s", diff)
	}
	if v.D == nil || *v.D != "dee" {
		t.Errorf("d: got %v", v.D)
	}
	if got := marshal(t, &v.E); got != "x::[1]\n" {
		t.Errorf("e: got %q", got)
	}
	if !v.F.Equal(time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("f: got %v", v.F)
	}
	if v.G != [3]int{1, 2, 0} {
		t.Errorf("g: got %v", v.G)
	}
	if v.J["t"] == nil || !*v.J["t"] || v.J["n"] != nil {
		t.Errorf("j: got %v", v.J)
	}
}

func TestLoadErrors(t *testing.T) {
	var i int8
	for _, tc := range []struct {
		src  string
		p    any
		want error
	}{
		{`300`, &i, ErrMismatch},
		{`"x"`, &i, ErrMismatch},
		{`[1,2]`, &[1]int{}, ErrMismatch},
		{`1`, i, ErrTarget},
		{`{a:1}`, &map[int]int{}, ErrUnsupported},
	} {
		if err := Unmarshal([]byte(tc.src), tc.p); !errors.Is(err, tc.want) {
			t.Errorf("%s into %T: expected %v, got %v", tc.src, tc.p, tc.want, err)
		}
	}
	if err := Unmarshal([]byte(`1 2`), &i); err == nil {
		t.Errorf("expected an error for 2 values")
	}
}
