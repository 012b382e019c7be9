package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/iondsl/eval"
	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

func parse(t *testing.T, src string) []*ion.Node {
	t.Helper()
	nodes, err := stream.Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return nodes
}

func TestFormatReader(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  MainConfig
		in   string
		want string
	}{
		{"ion", MainConfig{}, "a::{b:[1, 2]} 3", "a::{b:[1,2]}\n3\n"},
		{"spacing", MainConfig{S: true}, "{b:[1,2]}", "{b: [1, 2]}\n"},
		{"json out", MainConfig{JSONOut: true}, "a::{b:[1,2]} 3", "{\"b\":[1,2]}\n3\n"},
		{"json in", MainConfig{J: true}, `{"x": 1.5, "y": [true, null]}`, "{x:1.5,y:[true,null]}\n"},
		{"yaml in", MainConfig{Y: true}, "x: 1\ny: [a]\n", "{x:1,y:[\"a\"]}\n"},
		{"empty", MainConfig{}, "", ""},
	} {
		mCfg := tc.cfg
		cfg := &FmtConfig{MainConfig: &mCfg}
		buf := &bytes.Buffer{}
		if err := formatReader(cfg, buf, strings.NewReader(tc.in)); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if buf.String() != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, buf.String(), tc.want)
		}
	}
}

func TestConvertReader(t *testing.T) {
	cfg := &ConvertConfig{MainConfig: &MainConfig{}}
	buf := &bytes.Buffer{}
	patch := []byte(`[{"op": "add", "path": "/b", "value": true}]`)
	if err := convertReader(cfg, buf, strings.NewReader(`{"a": 1}`), patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{a:1,b:true}\n" {
		t.Errorf("got %q", buf.String())
	}
	buf.Reset()
	if err := convertReader(cfg, buf, strings.NewReader(`[1, "x"]`), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "[1,\"x\"]\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFilterNodes(t *testing.T) {
	pred, err := eval.Compile(`kind == "struct"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mapper, err := eval.Compile(`getpath("n")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nodes := parse(t, `{n:1} 2 {n:3}`)
	res, err := filterNodes(pred, mapper, nodes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := stream.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "1\n3\n" {
		t.Errorf("got %q", got)
	}
	res, err = filterNodes(pred, nil, nodes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 2 {
		t.Errorf("expected 2 values, got %d", len(res))
	}
}

func TestGetPath(t *testing.T) {
	res, err := getPath(parse(t, `{a:[1,2]} {a:[3]} 4`), "a[1]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := stream.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "2\n" {
		t.Errorf("got %q", got)
	}
	if _, err := getPath(parse(t, `{a:1}`), "a[x]"); err == nil {
		t.Errorf("expected an error")
	}
}

func TestCount(t *testing.T) {
	if n := count(true, false, true); n != 2 {
		t.Errorf("got %d", n)
	}
}
