package braille

import "strings"

// Attributes classify a character or a cell. Cells inherit the attributes of
// the characters they are defined for.
type Attributes uint32

// Character classes. NumericMode and NumericNoContract mark characters which
// continue a number, or need a no-contraction sign after a number.
const (
	Space Attributes = 1 << iota
	Letter
	Digit
	Punctuation
	UpperCase
	LowerCase
	Math
	Sign
	LitDigit
	Class1
	Class2
	Class3
	Class4
	NumericMode
	NumericNoContract
)

var attributeNames = [...]string{
	"space", "letter", "digit", "punctuation", "uppercase", "lowercase",
	"math", "sign", "litdigit", "class1", "class2", "class3", "class4",
	"numericmode", "numericnocontract",
}

// Has returns true if a and mask share at least one attribute.
func (a Attributes) Has(mask Attributes) bool {
	return a&mask != 0
}

func (a Attributes) String() string {
	if a == 0 {
		return "none"
	}
	var names []string
	for i, name := range attributeNames {
		if a&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
