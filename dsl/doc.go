// Package dsl writes Ion values through an ion.Writer with the shape of
// the call sequence enforced by the API itself.
//
// Two views are offered. A Sequence is available at top level and inside
// lists and sexps; its operations take no field name. A Fields view is
// available inside structs; every operation takes a leading Field, so a
// struct member without a name cannot be expressed.
//
// Every operation stages, in order, the field name (Fields only), the
// annotations (when non-empty) and then writes the value or opens the
// container. Containers run the nested function synchronously and are
// always closed before the call returns, including when the function
// returns an error or panics.
//
// # Example
//
//	err := dsl.Encode(os.Stdout, func(s dsl.Sequence) error {
//	    s.Int(1)
//	    s.String("text")
//	    s.Symbol("a_symbol")
//	    return s.List(func(s dsl.Sequence) error {
//	        s.Decimal(ion.MustParseDecimal("1."))
//	        return s.Struct(func(f dsl.Fields) error {
//	            f.String(dsl.Name("foo"), "bar")
//	            return f.Timestamp(dsl.Name("t"), ion.MustParseTimestamp("2019T"), "a", "b")
//	        })
//	    })
//	})
//
// Output:
//
//	1
//	"text"
//	a_symbol
//	[1.,{foo:"bar",t:a::b::2019T}]
//
// Errors from the writer are returned unchanged; the first error of a
// nested function is returned by the enclosing container operation. A
// view must not be used concurrently or after the function it was passed
// to has returned.
package dsl
