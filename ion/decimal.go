package ion

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	iongo "github.com/amazon-ion/ion-go/ion"
)

// Decimal is an arbitrary precision decimal: coefficient * 10^exponent.
// Precision is significant, 1.0 and 1.00 are distinct values.
// The zero value is 0d0.
type Decimal struct {
	coef *big.Int
	exp  int32
}

// NewDecimal returns coef * 10^exp. coef is copied.
func NewDecimal(coef *big.Int, exp int32) Decimal {
	c := new(big.Int)
	if coef != nil {
		c.Set(coef)
	}
	return Decimal{coef: c, exp: exp}
}

// NewDecimalInt returns the decimal with coefficient v and exponent 0.
func NewDecimalInt(v int64) Decimal {
	return Decimal{coef: big.NewInt(v)}
}

// Coefficient returns a copy of the coefficient.
func (d Decimal) Coefficient() *big.Int {
	if d.coef == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.coef)
}

// Exponent returns the base 10 exponent.
func (d Decimal) Exponent() int32 {
	return d.exp
}

// Equal reports whether d and o have the same coefficient and exponent.
func (d Decimal) Equal(o Decimal) bool {
	return d.exp == o.exp && d.Coefficient().Cmp(o.Coefficient()) == 0
}

// String renders d in Ion text notation, e.g. "1.", "1.50", "12d3".
func (d Decimal) String() string {
	return iongo.NewDecimal(d.Coefficient(), d.exp, false).String()
}

var decimalText = regexp.MustCompile(`^-?[0-9]+(\.[0-9]*)?([dD][+-]?[0-9]+)?$`)

// ParseDecimal parses Ion decimal text such as "1.", "-0.25", "15d-1" or
// "1.5D3". Underscores between digits are ignored.
func ParseDecimal(s string) (Decimal, error) {
	text := strings.ReplaceAll(s, "_", "")
	if !decimalText.MatchString(text) {
		return Decimal{}, fmt.Errorf("%w: decimal %q", ErrParse, s)
	}
	v, err := iongo.ParseDecimal(strings.Replace(text, "D", "d", 1))
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: decimal %q: %w", ErrParse, s, err)
	}
	coef, exp := v.CoEx()
	return Decimal{coef: coef, exp: exp}, nil
}

// MustParseDecimal is ParseDecimal that panics on error.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}
