package braille

import (
	"errors"
	"fmt"
	"testing"
)

func TestEscapeDots(t *testing.T) {
	tests := []struct {
		cell rune
		esc  string
	}{
		{B1 | B2 | CellFlag, `\12/`},
		{B1 | B2 | B3 | B4 | B5 | B6 | B7 | B8 | CellFlag, `\12345678/`},
		{B9 | B10 | B15 | CellFlag, `\9AF/`},
		{CellFlag, `\/`},
	}
	for _, test := range tests {
		if esc := string(EscapeDots(test.cell)); esc != test.esc {
			t.Errorf("expected escape of %#x to be %s, is %s", test.cell, test.esc, esc)
		}
	}
}

func TestParseCells(t *testing.T) {
	cells, err := ParseCells("1-1256-0-9A")
	if err != nil {
		t.Fatal(err)
	}
	expected := []rune{B1 | CellFlag, B1 | B2 | B5 | B6 | CellFlag, CellFlag, B9 | B10 | CellFlag}
	if len(cells) != len(expected) {
		t.Fatalf("expected %d cells, have %d", len(expected), len(cells))
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("cell #%d: expected %#x, have %#x", i, expected[i], cells[i])
		}
	}
	if s := CellsString(cells); s != "1-1256-0-9A" {
		t.Errorf("expected cells to spell out as 1-1256-0-9A, have %s", s)
	}
	for _, bad := range []string{"", "19x", "11", "1--2"} {
		if _, err := ParseCells(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected %q to be rejected, error is %v", bad, err)
		}
	}
}

func TestUnicodeCells(t *testing.T) {
	d := Cells("2346")[0]
	u := UnicodeFromCell(d)
	if u != '⠮' {
		t.Errorf("expected dots 2346 to be U+282E, is %#U", u)
	}
	back, ok := CellFromUnicode(u)
	if !ok || back != d {
		t.Errorf("expected %#U to convert back to %#x, is %#x", u, d, back)
	}
	if _, ok := CellFromUnicode('a'); ok {
		t.Errorf("expected 'a' not to be a braille pattern")
	}
}

func TestASCIIBraille(t *testing.T) {
	for c, dots := range map[rune]string{'a': "1", 'B': "12", '!': "2346", '=': "123456", ' ': "0"} {
		d, ok := CellForASCII(c)
		if !ok || DotNumbers(d) != dots {
			t.Errorf("expected %q to be dots %s, is %s", c, dots, DotNumbers(d))
		}
	}
	if _, ok := ASCIIForCell(B7 | CellFlag); ok {
		t.Errorf("expected 8-dot cell to have no ASCII braille character")
	}
}

func TestAttributesString(t *testing.T) {
	a := Letter | UpperCase
	if a.String() != "letter|uppercase" {
		t.Errorf("unexpected attribute names %q", a.String())
	}
	if !a.Has(Letter | Digit) {
		t.Errorf("expected attributes to share letter")
	}
}

func ExampleEscapeDots() {
	d := Cells("12")[0]
	fmt.Println(string(EscapeDots(d)))
	// Output: \12/
}
