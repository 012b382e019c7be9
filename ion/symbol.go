package ion

import "strconv"

// SymbolIDUnknown marks a SymbolToken whose local symbol ID is not known.
const SymbolIDUnknown int64 = -1

// SymbolToken is an interned symbol: its text, its local symbol ID, or both.
// A token with empty Text and a known SID denotes a symbol whose text is
// only available through a symbol table, written as $<sid>.
type SymbolToken struct {
	Text string
	SID  int64
}

// NewSymbolToken returns a token carrying only text.
func NewSymbolToken(text string) SymbolToken {
	return SymbolToken{Text: text, SID: SymbolIDUnknown}
}

// HasText reports whether the token's text is known.
func (s SymbolToken) HasText() bool {
	return s.Text != "" || s.SID == SymbolIDUnknown
}

func (s SymbolToken) String() string {
	if s.HasText() {
		return s.Text
	}
	return "$" + strconv.FormatInt(s.SID, 10)
}

// Equal compares symbol tokens by text when both have text, and by SID
// otherwise.
func (s SymbolToken) Equal(o SymbolToken) bool {
	if s.HasText() && o.HasText() {
		return s.Text == o.Text
	}
	return s.SID == o.SID && s.Text == o.Text
}
