package dsl

import (
	"io"
	"testing"

	"github.com/signadot/iondsl/ion"
	"github.com/signadot/iondsl/stream"
)

func writeValuesDsl(s Sequence) error {
	s.Int(1)
	s.String("text")
	return s.Struct(func(f Fields) error {
		f.Bool(Name("b"), true)
		return f.List(Name("l"), func(s Sequence) error {
			s.Float(1.5)
			return s.Symbol("x", "a", "b")
		})
	})
}

func writeValuesStreaming(w ion.Writer) error {
	w.WriteInt(1)
	w.WriteString("text")
	w.Begin(ion.StructType)
	w.FieldName("b")
	w.WriteBool(true)
	w.FieldName("l")
	w.Begin(ion.ListType)
	w.WriteFloat(1.5)
	w.Annotations("a", "b")
	w.WriteSymbol("x")
	w.End()
	return w.End()
}

func BenchmarkSingleScalarDsl(b *testing.B) {
	for b.Loop() {
		enc := stream.NewEncoder(io.Discard)
		Write(enc, func(s Sequence) error { return s.Int(1) })
		enc.Finish()
	}
}

func BenchmarkSingleScalarStreaming(b *testing.B) {
	for b.Loop() {
		enc := stream.NewEncoder(io.Discard)
		enc.WriteInt(1)
		enc.Finish()
	}
}

func BenchmarkMultipleValuesDsl(b *testing.B) {
	for b.Loop() {
		enc := stream.NewEncoder(io.Discard)
		Write(enc, writeValuesDsl)
		enc.Finish()
	}
}

func BenchmarkMultipleValuesStreaming(b *testing.B) {
	for b.Loop() {
		enc := stream.NewEncoder(io.Discard)
		writeValuesStreaming(enc)
		enc.Finish()
	}
}
