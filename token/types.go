package token

import "fmt"

type TokenType int

const (
	TLCurl TokenType = iota
	TRCurl
	TLSquare
	TRSquare
	TLParen
	TRParen
	TComma
	TColon
	// TAnnotation is a symbol followed by "::"; Bytes holds its text.
	TAnnotation
	// TNull is "null" or a typed null; Bytes holds e.g. "null.int".
	TNull
	TTrue
	TFalse
	TInteger
	TFloat
	TDecimal
	TTimestamp
	// TSymbol is an identifier or a quoted symbol; Bytes holds its text.
	TSymbol
	// TSymbolID is $<digits>; Bytes holds the digits.
	TSymbolID
	// TOperator is a run of operator characters inside a sexp.
	TOperator
	// TString holds the unescaped text; adjacent long strings are joined.
	TString
	// TBlob holds the decoded bytes.
	TBlob
	// TClob holds the decoded bytes.
	TClob
)

func (t TokenType) String() string {
	s, ok := map[TokenType]string{
		TLCurl:      "TLCurl",
		TRCurl:      "TRCurl",
		TLSquare:    "TLSquare",
		TRSquare:    "TRSquare",
		TLParen:     "TLParen",
		TRParen:     "TRParen",
		TComma:      "TComma",
		TColon:      "TColon",
		TAnnotation: "TAnnotation",
		TNull:       "TNull",
		TTrue:       "TTrue",
		TFalse:      "TFalse",
		TInteger:    "TInteger",
		TFloat:      "TFloat",
		TDecimal:    "TDecimal",
		TTimestamp:  "TTimestamp",
		TSymbol:     "TSymbol",
		TSymbolID:   "TSymbolID",
		TOperator:   "TOperator",
		TString:     "TString",
		TBlob:       "TBlob",
		TClob:       "TClob",
	}[t]
	if !ok {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return s
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	return string(t.Bytes)
}
