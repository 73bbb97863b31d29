package vm

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"cobrust/internal/ast"
)

// textDigits is how many trailing digits the numeric reading of text keeps.
const textDigits = 36

var (
	ten         = big.NewInt(10)
	textModulus = pow10(textDigits)
)

func pow10(n int) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}

// slot is the storage of one declared item.
type slot struct {
	typ     ast.PicType
	modulus *big.Int
	num     *big.Int // numeric: magnitude in [0, 10^W)
	text    string   // alphanumeric: exactly W runes
}

func newSlot(t ast.PicType) *slot {
	s := &slot{typ: t}
	if t.IsNumeric() {
		s.modulus = pow10(t.Width)
		s.num, _ = new(big.Int).SetString(strings.Repeat("1", t.Width), 10)
		return s
	}
	s.text = strings.Repeat("0", t.Width)
	return s
}

// reading returns the numeric value of the slot.
func (s *slot) reading() *big.Int {
	if s.typ.IsNumeric() {
		return new(big.Int).Set(s.num)
	}
	return digits(s.text)
}

// String renders the slot the way println! prints it.
func (s *slot) String() string {
	if s.typ.IsNumeric() {
		return padLeft(s.num.String(), s.typ.Width)
	}
	return s.text
}

// setNumber stores |v| mod 10^W.
func (s *slot) setNumber(v *big.Int) {
	s.num = reduce(v, s.modulus)
}

// setText stores the rightmost W runes of text, left-padded with '0'.
func (s *slot) setText(text string) {
	s.text = fitText(text, s.typ.Width)
}

func reduce(v, modulus *big.Int) *big.Int {
	out := new(big.Int).Abs(v)
	return out.Mod(out, modulus)
}

// digits reads the ASCII digits of s as a number, keeping the last
// textDigits of them.
func digits(s string) *big.Int {
	v := new(big.Int)
	d := new(big.Int)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		v.Mul(v, ten)
		v.Add(v, d.SetInt64(int64(c-'0')))
		v.Mod(v, textModulus)
	}
	return v
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat("0", width-n) + s
	}
	return s
}

func fitText(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n < width {
		return strings.Repeat("0", width-n) + s
	}
	if n == width {
		return s
	}
	runes := []rune(s)
	return string(runes[n-width:])
}
