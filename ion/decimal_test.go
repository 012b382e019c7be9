package ion

import (
	"errors"
	"math/big"
	"testing"

	iongo "github.com/amazon-ion/ion-go/ion"
)

func TestDecimalString(t *testing.T) {
	cases := []struct {
		coef int64
		exp  int32
		want string
	}{
		{1, 0, "1."},
		{150, -2, "1.50"},
		{12, 3, "12d3"},
		{0, 0, "0."},
	}
	for _, c := range cases {
		d := NewDecimal(big.NewInt(c.coef), c.exp)
		if got := d.String(); got != c.want {
			t.Errorf("%dd%d: expected %q, got %q", c.coef, c.exp, c.want, got)
		}
	}
	for _, d := range []Decimal{NewDecimal(big.NewInt(-25), -2), NewDecimal(big.NewInt(5), -3)} {
		back, err := ParseDecimal(d.String())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d, err)
		}
		if !back.Equal(d) {
			t.Errorf("expected %s to read back unchanged, got %s", d, back)
		}
	}
	var zero Decimal
	if zero.String() != "0." {
		t.Errorf("expected zero value to render 0., got %q", zero.String())
	}
}

func TestParseDecimal(t *testing.T) {
	cases := map[string]Decimal{
		"1.":     NewDecimal(big.NewInt(1), 0),
		"1.0":    NewDecimal(big.NewInt(10), -1),
		"-0.25":  NewDecimal(big.NewInt(-25), -2),
		"15d-1":  NewDecimal(big.NewInt(15), -1),
		"1.5D3":  NewDecimal(big.NewInt(15), 2),
		"1_000.": NewDecimal(big.NewInt(1000), 0),
	}
	for s, want := range cases {
		got, err := ParseDecimal(s)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}
		if !got.Equal(want) {
			t.Errorf("%q: expected %s, got %s", s, want, got)
		}
	}
	for _, s := range []string{"", "abc", "1.x", "1d", "-"} {
		if _, err := ParseDecimal(s); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", s, err)
		}
	}
}

func TestDecimalPrecisionSignificant(t *testing.T) {
	if MustParseDecimal("1.0").Equal(MustParseDecimal("1.00")) {
		t.Error("1.0 and 1.00 must differ")
	}
}

func TestDecimalReadsWithIonGo(t *testing.T) {
	for _, s := range []string{"1.", "1.50", "-0.25", "12d3", "15d-1"} {
		d := MustParseDecimal(s)
		v, err := iongo.ParseDecimal(d.String())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d, err)
		}
		coef, exp := v.CoEx()
		if exp != d.Exponent() || coef.Cmp(d.Coefficient()) != 0 {
			t.Errorf("%s: ion-go read %sd%d", d, coef, exp)
		}
	}
}
