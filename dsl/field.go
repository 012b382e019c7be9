package dsl

import "github.com/signadot/iondsl/ion"

// Field designates a struct member. It is implemented by Name and Symbol.
type Field interface {
	stage(w ion.Writer) error
}

// Name designates a struct member by text.
type Name string

func (n Name) stage(w ion.Writer) error {
	return w.FieldName(string(n))
}

// Symbol designates a struct member by a pre-resolved symbol token.
type Symbol ion.SymbolToken

func (s Symbol) stage(w ion.Writer) error {
	return w.FieldNameSymbol(ion.SymbolToken(s))
}
