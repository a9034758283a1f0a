package table

import (
	"unicode"

	"github.com/npillmayer/braille"
	"golang.org/x/text/unicode/rangetable"
)

// HashSize is the number of hash buckets for characters, cells and rules.
const HashSize = 1123

// Character is the table record for a character or a cell.
type Character struct {
	Value      rune
	Attributes braille.Attributes
	Upper      rune   // uppercase variant
	Lower      rune   // lowercase variant
	Definition RuleID // rule which defined the symbol, if any
	Others     RuleID // head of the chain of single-symbol rules
	next       int32  // next record in hash bucket
}

// unknown is the record returned for symbols without table entry.
func unknown(c rune) Character {
	return Character{Value: c, Attributes: braille.Space, Upper: c, Lower: c}
}

// Table is a compiled rule table. Tables are immutable once built and may be
// used by any number of concurrent translations.
//
// Rules live in an arena and are addressed by RuleID. Rules with a match of two
// or more symbols are chained into hash buckets keyed by the first two
// symbols; rules matching a single symbol are chained at the record of that
// symbol. Chains are ordered by specificity, see Builder.
type Table struct {
	name        string
	rules       []Rule // rules[0] is unused
	chars       []Character
	cells       []Character
	charBuckets [HashSize]int32
	cellBuckets [HashSize]int32
	forRules    [HashSize]RuleID
	backRules   [HashSize]RuleID
	indicators  map[Opcode]RuleID
	passes      [2][5][]RuleID
	display     map[rune]rune // character → cell
	displayRev  map[rune]rune // cell → character
}

// Name returns the name a table has been built with.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rules in t.
func (t *Table) Len() int {
	return len(t.rules) - 1
}

// Rule returns the rule with the given ID, or nil. Rules must not be modified.
func (t *Table) Rule(id RuleID) *Rule {
	if id <= 0 || int(id) >= len(t.rules) {
		return nil
	}
	return &t.rules[id]
}

// Next returns the successor of rule id within its chain for direction dir.
func (t *Table) Next(id RuleID, dir Direction) RuleID {
	if r := t.Rule(id); r != nil {
		return r.next(dir)
	}
	return 0
}

func hash(c rune) int {
	return int(uint32(c) % HashSize)
}

func hash2(c0, c1 rune) int {
	return int((uint64(uint32(c0))<<8 + uint64(uint32(c1))) % HashSize)
}

func (t *Table) lookup(c rune, dots bool) *Character {
	records, buckets := t.chars, &t.charBuckets
	if dots {
		records, buckets = t.cells, &t.cellBuckets
	}
	for i := buckets[hash(c)]; i != 0; i = records[i].next {
		if records[i].Value == c {
			return &records[i]
		}
	}
	return nil
}

// Char returns the record for a character. Characters unknown to the table are
// reported as spaces, with the character being its own case variant.
func (t *Table) Char(c rune) Character {
	if rec := t.lookup(c, false); rec != nil {
		return *rec
	}
	return unknown(c)
}

// Cell returns the record for a cell. Cells unknown to the table are reported
// as spaces.
func (t *Table) Cell(d rune) Character {
	if rec := t.lookup(d, true); rec != nil {
		return *rec
	}
	return unknown(d)
}

// Symbol returns the record of a character (dots=false) or a cell (dots=true).
func (t *Table) Symbol(s rune, dots bool) Character {
	if dots {
		return t.Cell(s)
	}
	return t.Char(s)
}

// Chain returns the head of the chain of rules matching at least two symbols,
// starting with s0 and s1, in direction dir. Forward chains are keyed by the
// lowercase variants of the characters.
func (t *Table) Chain(dir Direction, s0, s1 rune) RuleID {
	if dir == Backward {
		return t.backRules[hash2(s0, s1)]
	}
	return t.forRules[hash2(t.Char(s0).Lower, t.Char(s1).Lower)]
}

// Single returns the head of the chain of rules matching exactly one symbol s
// in direction dir.
func (t *Table) Single(dir Direction, s rune) RuleID {
	if dir == Backward {
		return t.Cell(s).Others
	}
	return t.Char(t.Char(s).Lower).Others
}

// Indicator returns the indicator rule for an indicator opcode, or 0.
func (t *Table) Indicator(op Opcode) RuleID {
	return t.indicators[op]
}

// PassRules returns the rules of pass number pass (0–4) for direction dir,
// in table order.
func (t *Table) PassRules(dir Direction, pass int) []RuleID {
	if pass < 0 || pass > 4 {
		return nil
	}
	return t.passes[dir.index()][pass]
}

// NumPasses returns the highest pass number in use for direction dir.
// The primary pass (1) is always in use.
func (t *Table) NumPasses(dir Direction) int {
	n := 1
	for pass := 2; pass <= 4; pass++ {
		if len(t.passes[dir.index()][pass]) > 0 {
			n = pass
		}
	}
	return n
}

// HasCorrections is true if t has correction rules for direction dir.
func (t *Table) HasCorrections(dir Direction) bool {
	return len(t.passes[dir.index()][0]) > 0
}

// UsesNumericMode is true if t defines a number sign. Forward translation
// will then insert number signs in front of digits.
func (t *Table) UsesNumericMode() bool {
	return t.indicators[NumberSign] != 0
}

// DotsForChar returns the cell used to display a character. Unless the table
// declares a display cell for c, Unicode braille patterns and ASCII braille
// are recognized.
func (t *Table) DotsForChar(c rune) (rune, bool) {
	if d, ok := t.display[c]; ok {
		return d, true
	}
	if d, ok := braille.CellFromUnicode(c); ok {
		return d, true
	}
	return braille.CellForASCII(c)
}

// CharForDots returns the character used to display a cell, falling back to
// ASCII braille.
func (t *Table) CharForDots(d rune) (rune, bool) {
	if c, ok := t.displayRev[d|braille.CellFlag]; ok {
		return c, true
	}
	return braille.ASCIIForCell(d)
}

// Coverage returns the set of characters defined by t.
func (t *Table) Coverage() *unicode.RangeTable {
	defined := make([]rune, 0, len(t.chars))
	for i := 1; i < len(t.chars); i++ {
		if t.chars[i].Definition != 0 {
			defined = append(defined, t.chars[i].Value)
		}
	}
	return rangetable.New(defined...)
}
