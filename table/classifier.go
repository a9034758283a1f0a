package table

import "github.com/npillmayer/braille"

// Classifier looks up symbol records, remembering the most recent lookup of a
// character and of a cell. Adjacent tests in a translation loop frequently ask
// for the same symbol. A Classifier is not safe for concurrent use; every
// translation creates its own.
type Classifier struct {
	t     *Table
	slots [2]classified // characters, cells
}

type classified struct {
	valid bool
	sym   rune
	rec   Character
}

// NewClassifier creates a classifier for table t.
func NewClassifier(t *Table) *Classifier {
	return &Classifier{t: t}
}

// Symbol returns the record of a character (dots=false) or a cell (dots=true),
// see Table.Symbol.
func (c *Classifier) Symbol(sym rune, dots bool) Character {
	slot := &c.slots[0]
	if dots {
		slot = &c.slots[1]
	}
	if slot.valid && slot.sym == sym {
		return slot.rec
	}
	slot.rec, slot.sym, slot.valid = c.t.Symbol(sym, dots), sym, true
	return slot.rec
}

// Char returns the record of a character.
func (c *Classifier) Char(ch rune) Character {
	return c.Symbol(ch, false)
}

// Cell returns the record of a cell.
func (c *Classifier) Cell(d rune) Character {
	return c.Symbol(d, true)
}

// Attributes returns the attributes of a character (dots=false) or a cell
// (dots=true).
func (c *Classifier) Attributes(sym rune, dots bool) braille.Attributes {
	return c.Symbol(sym, dots).Attributes
}

// Is returns true if a symbol has any of the attributes in mask.
func (c *Classifier) Is(sym rune, dots bool, mask braille.Attributes) bool {
	return c.Attributes(sym, dots)&mask != 0
}

// Reset forgets the cached lookups.
func (c *Classifier) Reset() {
	c.slots[0].valid, c.slots[1].valid = false, false
}
