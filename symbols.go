package braille

import (
	"fmt"
	"strings"
	"unicode"
)

// Dots of a braille cell. Dots 1–8 are the standard dots of 6- and 8-dot
// braille. B16 is not a dot but flags a rune as a braille cell.
const (
	B1 rune = 1 << iota
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	B9
	B10
	B11
	B12
	B13
	B14
	B15
	B16
)

// CellFlag marks a rune as a braille cell.
const CellFlag = B16

// BlankCell is a cell without any dots raised.
const BlankCell = CellFlag

// UnicodeBrailleBase is the first code point of the Unicode block
// "Braille Patterns" (U+2800–U+28FF).
const UnicodeBrailleBase rune = 0x2800

// IsCell returns true if r carries the cell flag.
func IsCell(r rune) bool {
	return r&CellFlag != 0
}

// UnicodeFromCell returns the Unicode braille pattern for a cell.
// Dots beyond dot 8 are not representable and will be dropped.
func UnicodeFromCell(d rune) rune {
	return UnicodeBrailleBase | (d & 0xff)
}

// CellFromUnicode converts a Unicode braille pattern to a cell.
func CellFromUnicode(r rune) (rune, bool) {
	if r < UnicodeBrailleBase || r > UnicodeBrailleBase+0xff {
		return 0, false
	}
	return (r - UnicodeBrailleBase) | CellFlag, true
}

// dotDigits are the digits used to spell out dots 1 to 15.
const dotDigits = "123456789ABCDEF"

// DotNumbers spells out the dots of a cell, e.g. "1256" for dots 1, 2, 5, 6.
// A blank cell is spelled as "0".
func DotNumbers(d rune) string {
	var b strings.Builder
	for i := 0; i < len(dotDigits); i++ {
		if d&(1<<i) != 0 {
			b.WriteByte(dotDigits[i])
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// EscapeDots returns the escape notation for a cell which has no translation,
// i.e. a backslash, the dot numbers, and a slash. Dots 1 and 2 escape as `\12/`.
// A blank cell escapes as `\/`.
func EscapeDots(d rune) []rune {
	esc := make([]rune, 0, 17)
	esc = append(esc, '\\')
	for i := 0; i < len(dotDigits); i++ {
		if d&(1<<i) != 0 {
			esc = append(esc, rune(dotDigits[i]))
		}
	}
	return append(esc, '/')
}

// ParseCell reads a cell from its dot numbers, e.g. "1256". "0" denotes the
// blank cell.
func ParseCell(s string) (rune, error) {
	if s == "" {
		return 0, fmt.Errorf("empty dot pattern: %w", ErrInvalidArgument)
	}
	d := CellFlag
	if s == "0" {
		return d, nil
	}
	for _, c := range s {
		i := strings.IndexRune(dotDigits, unicode.ToUpper(c))
		if i < 0 {
			return 0, fmt.Errorf("invalid dot %q in pattern %q: %w", c, s, ErrInvalidArgument)
		}
		if d&(1<<i) != 0 {
			return 0, fmt.Errorf("duplicate dot %q in pattern %q: %w", c, s, ErrInvalidArgument)
		}
		d |= 1 << i
	}
	return d, nil
}

// ParseCells reads a sequence of cells separated by '-', e.g. "1-1256-0".
func ParseCells(s string) ([]rune, error) {
	parts := strings.Split(s, "-")
	cells := make([]rune, 0, len(parts))
	for _, p := range parts {
		d, err := ParseCell(p)
		if err != nil {
			return nil, err
		}
		cells = append(cells, d)
	}
	return cells, nil
}

// Cells is like ParseCells, but panics on invalid input. It is intended for
// tables defined in code.
func Cells(s string) []rune {
	cells, err := ParseCells(s)
	if err != nil {
		panic(err)
	}
	return cells
}

// CellsString spells out a sequence of cells in the notation of ParseCells.
func CellsString(cells []rune) string {
	parts := make([]string, len(cells))
	for i, d := range cells {
		parts[i] = DotNumbers(d)
	}
	return strings.Join(parts, "-")
}

// --- ASCII braille ---------------------------------------------------------

// asciiBraille is the North American computer braille code for 6-dot cells,
// indexed by the dot bitmask.
const asciiBraille = " A1B'K2L@CIF/MSP\"E3H9O6R^DJG>NTQ,*5<-U8V.%[$+X!&;:4\\0Z7(_?W]#Y)="

// ASCIIForCell returns the ASCII braille character for a 6-dot cell.
func ASCIIForCell(d rune) (rune, bool) {
	if d&0x7fc0 != 0 { // dots 7–15
		return 0, false
	}
	return rune(asciiBraille[d&0x3f]), true
}

// CellForASCII returns the 6-dot cell for an ASCII braille character.
// Lowercase letters are treated like uppercase ones.
func CellForASCII(c rune) (rune, bool) {
	c = unicode.ToUpper(c)
	if c > unicode.MaxASCII {
		return 0, false
	}
	i := strings.IndexRune(asciiBraille, c)
	if i < 0 {
		return 0, false
	}
	return rune(i) | CellFlag, true
}
