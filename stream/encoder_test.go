package stream

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/signadot/iondsl/ion"
)

func encode(t *testing.T, fn func(enc *Encoder) error, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := fn(enc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.String()
}

func TestEncoderEmptyContainers(t *testing.T) {
	out := encode(t, func(enc *Encoder) error {
		for _, k := range []ion.Type{ion.ListType, ion.SexpType, ion.StructType} {
			if err := enc.Begin(k); err != nil {
				return err
			}
			if err := enc.End(); err != nil {
				return err
			}
		}
		return nil
	})
	expected := "[]\n()\n{}\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestEncoderScalars(t *testing.T) {
	ts := ion.NewTimestamp(time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC), ion.Second)
	cases := []struct {
		name  string
		write func(enc *Encoder) error
		want  string
	}{
		{"null", func(enc *Encoder) error { return enc.WriteNull() }, "null"},
		{"typed null", func(enc *Encoder) error { return enc.WriteNullType(ion.StringType) }, "null.string"},
		{"bool", func(enc *Encoder) error { return enc.WriteBool(true) }, "true"},
		{"int", func(enc *Encoder) error { return enc.WriteInt(-42) }, "-42"},
		{"big int", func(enc *Encoder) error {
			v, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
			return enc.WriteBigInt(v)
		}, "123456789012345678901234567890"},
		{"float", func(enc *Encoder) error { return enc.WriteFloat(2.5) }, "2.5e0"},
		{"float exp", func(enc *Encoder) error { return enc.WriteFloat(1e-7) }, "1e-7"},
		{"nan", func(enc *Encoder) error { return enc.WriteFloat(math.NaN()) }, "nan"},
		{"-inf", func(enc *Encoder) error { return enc.WriteFloat(math.Inf(-1)) }, "-inf"},
		{"decimal", func(enc *Encoder) error { return enc.WriteDecimal(ion.MustParseDecimal("1.50")) }, "1.50"},
		{"string", func(enc *Encoder) error { return enc.WriteString("a\"b\n") }, `"a\"b\n"`},
		{"timestamp", func(enc *Encoder) error { return enc.WriteTimestamp(ts) }, "2019-01-02T03:04:05Z"},
		{"blob", func(enc *Encoder) error { return enc.WriteBlob([]byte("hello")) }, "{{aGVsbG8=}}"},
		{"clob", func(enc *Encoder) error { return enc.WriteClob([]byte("hi")) }, `{{"hi"}}`},
		{"symbol", func(enc *Encoder) error { return enc.WriteSymbol("abc") }, "abc"},
		{"quoted symbol", func(enc *Encoder) error { return enc.WriteSymbol("a b") }, "'a b'"},
		{"keyword symbol", func(enc *Encoder) error { return enc.WriteSymbol("null") }, "'null'"},
		{"symbol id", func(enc *Encoder) error { return enc.WriteSymbolToken(ion.SymbolToken{SID: 10}) }, "$10"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := encode(t, c.write)
			if out != c.want+"\n" {
				t.Errorf("expected %q, got %q", c.want+"\n", out)
			}
		})
	}
}

func TestEncoderNested(t *testing.T) {
	write := func(enc *Encoder) error {
		steps := []func() error{
			func() error { return enc.Annotations("x", "y z") },
			func() error { return enc.Begin(ion.StructType) },
			func() error { return enc.FieldName("a") },
			func() error { return enc.Begin(ion.ListType) },
			func() error { return enc.WriteInt(1) },
			func() error { return enc.WriteInt(2) },
			func() error { return enc.End() },
			func() error { return enc.FieldNameSymbol(ion.SymbolToken{SID: 4}) },
			func() error { return enc.Annotations("t") },
			func() error { return enc.Begin(ion.SexpType) },
			func() error { return enc.WriteSymbol("+") },
			func() error { return enc.WriteInt(1) },
			func() error { return enc.End() },
			func() error { return enc.End() },
		}
		for _, s := range steps {
			if err := s(); err != nil {
				return err
			}
		}
		return nil
	}
	out := encode(t, write)
	expected := "x::'y z'::{a:[1,2],$4:t::('+' 1)}\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
	out = encode(t, write, WithSpacing())
	expected = "x::'y z'::{a: [1, 2], $4: t::('+' 1)}\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestEncoderGrammarErrors(t *testing.T) {
	cases := []struct {
		name string
		fn   func(enc *Encoder) error
	}{
		{"field at top level", func(enc *Encoder) error { return enc.FieldName("a") }},
		{"field in list", func(enc *Encoder) error {
			enc.Begin(ion.ListType)
			return enc.FieldName("a")
		}},
		{"value without field", func(enc *Encoder) error {
			enc.Begin(ion.StructType)
			return enc.WriteInt(1)
		}},
		{"dangling field", func(enc *Encoder) error {
			enc.Begin(ion.StructType)
			enc.FieldName("a")
			return enc.End()
		}},
		{"dangling annotations", func(enc *Encoder) error {
			enc.Begin(ion.ListType)
			enc.Annotations("a")
			return enc.End()
		}},
		{"unbalanced end", func(enc *Encoder) error { return enc.End() }},
		{"unclosed", func(enc *Encoder) error {
			enc.Begin(ion.ListType)
			return enc.Finish()
		}},
		{"begin scalar", func(enc *Encoder) error { return enc.Begin(ion.IntType) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf)
			err := c.fn(enc)
			var se *Error
			if !errors.As(err, &se) {
				t.Fatalf("expected *Error, got %v", err)
			}
		})
	}
}

func TestEncoderRejectedCallWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Begin(ion.StructType); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := buf.Len()
	if err := enc.WriteString("x"); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != n {
		t.Errorf("rejected write produced output %q", buf.String()[n:])
	}
}

func TestEncoderColors(t *testing.T) {
	colors := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ion.IntType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	out := encode(t, func(enc *Encoder) error {
		if err := enc.WriteInt(1); err != nil {
			return err
		}
		return enc.WriteString("s")
	}, WithColors(colors))
	expected := "<1>\n\"s\"\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		0:           "0e0",
		1:           "1e0",
		-2.5:        "-2.5e0",
		123456:      "1.23456e5",
		math.Inf(1): "+inf",
	}
	for v, want := range cases {
		if got := FormatFloat(v); got != want {
			t.Errorf("%v: expected %q, got %q", v, want, got)
		}
	}
}
