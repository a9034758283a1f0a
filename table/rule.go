package table

import (
	"fmt"

	"github.com/npillmayer/braille"
	"golang.org/x/exp/slices"
)

// RuleID addresses a rule within the rule arena of a table. The zero value
// denotes "no rule".
type RuleID int32

// Direction is the direction of translation a rule applies to.
type Direction uint8

// Forward is text to braille, Backward is braille to text.
const (
	Forward Direction = 1 << iota
	Backward
	Both = Forward | Backward
)

func (dir Direction) String() string {
	switch dir {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Both:
		return "both"
	}
	return "none"
}

// index maps a single direction to 0 (forward) or 1 (backward).
func (dir Direction) index() int {
	if dir == Backward {
		return 1
	}
	return 0
}

// Rule is an entry of a rule table. Chars holds the text side, Dots the
// braille side of a rule. Forward translation matches Chars and emits Dots,
// back-translation matches Dots and emits Chars.
//
// After and Before are attribute masks, named from the forward perspective:
// After must be met by the symbol preceding a match, Before by the symbol
// following it. A zero mask always matches.
type Rule struct {
	Opcode       Opcode
	Chars        []rune
	Dots         []rune
	After        braille.Attributes
	Before       braille.Attributes
	Dir          Direction
	Test         Program    // test part of a pass rule
	Action       Program    // action part of a pass rule
	Indicators   []Opcode   // sub-indicators of a MultInd rule
	Keys         []rune     // swap rules: symbols to substitute
	Replacements [][]rune   // swap rules: replacement per key
	charsNext    RuleID     // next rule in a forward chain
	dotsNext     RuleID     // next rule in a backward chain
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s %q %s", r.Opcode, string(r.Chars), braille.CellsString(r.Dots))
}

// Match returns the symbols a rule matches in direction dir.
func (r *Rule) Match(dir Direction) []rune {
	if dir == Backward {
		return r.Dots
	}
	return r.Chars
}

// Output returns the symbols a rule emits in direction dir.
func (r *Rule) Output(dir Direction) []rune {
	if dir == Backward {
		return r.Chars
	}
	return r.Dots
}

// Admits checks the attribute masks of a rule against the attributes of the
// symbols surrounding a match.
func (r *Rule) Admits(preceding, following braille.Attributes) bool {
	return (r.After == 0 || preceding&r.After != 0) &&
		(r.Before == 0 || following&r.Before != 0)
}

// SwapIndex returns the position of sym within the keys of a swap rule,
// or -1.
func (r *Rule) SwapIndex(sym rune) int {
	return slices.Index(r.Keys, sym)
}

// next returns the successor of r within a chain of direction dir.
func (r *Rule) next(dir Direction) RuleID {
	if dir == Backward {
		return r.dotsNext
	}
	return r.charsNext
}

func (r *Rule) setNext(dir Direction, id RuleID) {
	if dir == Backward {
		r.dotsNext = id
	} else {
		r.charsNext = id
	}
}
