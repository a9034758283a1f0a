/*
Package testtables provides rule tables for tests.

The tables are small, but shaped like real literary braille tables: letters
share their cells with literal digits, a number sign switches to digits, a
capital sign and a letter sign are defined, and there are some contractions
of every position class.
*/
package testtables

import (
	"sync"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
)

// letters of the basic Latin alphabet, in dot notation.
var letters = [26]string{
	"1", "12", "14", "145", "15", "124", "1245", "125", "24", "245",
	"13", "123", "134", "1345", "135", "1234", "12345", "1235", "234", "2345",
	"136", "1236", "2456", "1346", "13456", "1356",
}

// cell converts a single cell from dot notation.
func cell(dots string) rune {
	return braille.Cells(dots)[0]
}

// Alphabet declares space, basic punctuation, the letters a to z and the
// digits to a builder. Digits use the cells of the letters a to j.
func Alphabet(b *table.Builder) {
	b.Define(table.Space, ' ', braille.BlankCell)
	b.Define(table.Punctuation, ',', cell("2"))
	b.Define(table.Punctuation, ';', cell("23"))
	b.Define(table.Punctuation, ':', cell("25"))
	b.Define(table.Punctuation, '.', cell("256"))
	b.Define(table.Punctuation, '!', cell("235"))
	b.Define(table.Punctuation, '-', cell("36"))
	for i, dots := range letters {
		b.UpLow('A'+rune(i), 'a'+rune(i), cell(dots))
	}
	for i := 0; i < 10; i++ {
		digit := '1' + rune(i)
		if i == 9 {
			digit = '0'
		}
		b.Define(table.Digit, digit, cell(letters[i]))
		b.Define(table.LitDigit, digit, cell(letters[i]))
	}
	b.AddAttributes(braille.NumericMode, '.', ',')
	for i := 0; i < 10; i++ {
		b.AddAttributes(braille.NumericNoContract, 'a'+rune(i), 'A'+rune(i))
	}
}

var (
	englishOnce  sync.Once
	englishTable *table.Table
)

// English returns a contracted English fixture table. It is built once and
// shared by all tests.
//
//    the      2346        whole word
//    but      12          whole word
//    and      12346       large sign
//    for      123456      large sign
//    th       1456        always
//    ch       16          always
//    ing      346         always
//    ed       1246        always
//    er       12456       always
//    st       34          always
//    capital sign  6, capitalized word  6-6, letter sign  56, number sign  3456
func English() *table.Table {
	englishOnce.Do(func() {
		b := table.NewBuilder("en-fixture")
		Alphabet(b)
		b.Add(table.WholeWord, "the", braille.Cells("2346"))
		b.Add(table.WholeWord, "but", braille.Cells("12"))
		b.Add(table.LargeSign, "and", braille.Cells("12346"))
		b.Add(table.LargeSign, "for", braille.Cells("123456"))
		b.Add(table.Always, "th", braille.Cells("1456"))
		b.Add(table.Always, "ch", braille.Cells("16"))
		b.Add(table.Always, "ing", braille.Cells("346"))
		b.Add(table.Always, "ed", braille.Cells("1246"))
		b.Add(table.Always, "er", braille.Cells("12456"))
		b.Add(table.Always, "st", braille.Cells("34"))
		b.Indicator(table.CapsLetter, braille.Cells("6"))
		b.Indicator(table.BegCapsWord, braille.Cells("6-6"))
		b.Indicator(table.LetterSign, braille.Cells("56"))
		b.Indicator(table.NumberSign, braille.Cells("3456"))
		englishTable = mustBuild(b)
	})
	return englishTable
}

// Uncontracted returns a table with letters, digits and punctuation only.
func Uncontracted() *table.Table {
	b := table.NewBuilder("uncontracted-fixture")
	Alphabet(b)
	b.Indicator(table.CapsLetter, braille.Cells("6"))
	b.Indicator(table.NumberSign, braille.Cells("3456"))
	return mustBuild(b)
}

func mustBuild(b *table.Builder) *table.Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
