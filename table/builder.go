package table

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/braille"
	"golang.org/x/exp/slices"
)

// Builder assembles a Table from rule declarations. Compiling table source
// files is not the business of this package; Builder is the programmatic
// interface which a compiler, a table loader or a test would use.
//
// Declaration order is significant: among rules of equal specificity, the
// first declared wins. Rules are chained by specificity as follows:
//
//   - forward chains: longer character match first, keyed by lowercase;
//   - backward chains of single cells: longer text first, cell definitions
//     other than literal digits after everything else;
//   - backward chains of multiple cells: longer match plus text first;
//   - at equal length, `Always` rules and character definitions go last.
//
// Errors are collected and reported by Build. The first error wins.
type Builder struct {
	name    string
	staged  *arraylist.List // of *Rule, in declaration order
	caseOf  *arraylist.List // of [2]rune{upper, lower}
	attrsOf *arraylist.List // of extraAttributes
	display *treemap.Map    // int(character) → cell
	err     error
}

type extraAttributes struct {
	mask  braille.Attributes
	chars []rune
}

// Option modifies a rule while it is declared.
type Option func(*Rule)

// Preceded requires the symbol before a match to have one of the attributes
// in mask.
func Preceded(mask braille.Attributes) Option {
	return func(r *Rule) { r.After = mask }
}

// Followed requires the symbol after a match to have one of the attributes
// in mask.
func Followed(mask braille.Attributes) Option {
	return func(r *Rule) { r.Before = mask }
}

// ForwardOnly restricts a rule to forward translation.
func ForwardOnly() Option {
	return func(r *Rule) { r.Dir = Forward }
}

// BackwardOnly restricts a rule to back-translation.
func BackwardOnly() Option {
	return func(r *Rule) { r.Dir = Backward }
}

// NewBuilder creates a builder for a table called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		staged:  arraylist.New(),
		caseOf:  arraylist.New(),
		attrsOf: arraylist.New(),
		display: treemap.NewWithIntComparator(),
	}
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) stage(r *Rule) RuleID {
	if r.Dir == 0 {
		r.Dir = Both
	}
	b.staged.Add(r)
	return RuleID(b.staged.Size())
}

// Define declares character c, its attributes being implied by the definition
// opcode op, and translates it to a single cell.
func (b *Builder) Define(op Opcode, c rune, cell rune) RuleID {
	if !op.IsDefinition() {
		b.setErr(fmt.Errorf("%s is not a character definition", op))
		return 0
	}
	return b.stage(&Rule{Opcode: op, Chars: []rune{c}, Dots: []rune{cell | braille.CellFlag}})
}

// UpLow declares a pair of upper- and lowercase letters sharing a cell.
func (b *Builder) UpLow(upper, lower rune, cell rune) {
	b.Define(LowerCase, lower, cell)
	b.Define(UpperCase, upper, cell)
	b.caseOf.Add([2]rune{upper, lower})
}

// AddAttributes adds attributes to already defined characters.
func (b *Builder) AddAttributes(mask braille.Attributes, chars ...rune) {
	b.attrsOf.Add(extraAttributes{mask: mask, chars: chars})
}

// Display declares the character used to display a cell.
func (b *Builder) Display(c rune, cell rune) {
	b.display.Put(int(c), cell|braille.CellFlag)
}

// Add declares a translation rule, translating chars to cells.
func (b *Builder) Add(op Opcode, chars string, cells []rune, opts ...Option) RuleID {
	if op < Always || op > NoCont {
		b.setErr(fmt.Errorf("%s is not a translation opcode", op))
		return 0
	}
	r := &Rule{Opcode: op, Chars: []rune(chars), Dots: flagged(cells)}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.Chars) == 0 || len(r.Dots) == 0 {
		b.setErr(fmt.Errorf("%s rule %q needs characters and cells", op, chars))
	}
	return b.stage(r)
}

// Indicator declares the cells of an indicator.
func (b *Builder) Indicator(op Opcode, cells []rune) RuleID {
	if !op.IsIndicator() || op == MultInd {
		b.setErr(fmt.Errorf("%s is not an indicator opcode", op))
		return 0
	}
	if len(cells) == 0 {
		b.setErr(fmt.Errorf("indicator %s needs cells", op))
	}
	return b.stage(&Rule{Opcode: op, Dots: flagged(cells)})
}

// MultInd declares a cell sequence which stands for a sequence of indicators,
// e.g. a capital sign followed by a letter sign.
func (b *Builder) MultInd(cells []rune, ops ...Opcode) RuleID {
	if len(cells) == 0 || len(ops) == 0 {
		b.setErr(errors.New("multind needs cells and indicators"))
	}
	for _, op := range ops {
		if !op.IsIndicator() || op == MultInd {
			b.setErr(fmt.Errorf("multind: %s is not an indicator opcode", op))
		}
	}
	return b.stage(&Rule{Opcode: MultInd, Dots: flagged(cells), Indicators: ops, Dir: Backward})
}

// Swap declares a swap rule. Keys are characters for SwapCC and SwapCD, cells
// for SwapDD. Each key has its own replacement, consisting of characters for
// SwapCC and cells otherwise.
func (b *Builder) Swap(op Opcode, keys []rune, replacements ...[]rune) RuleID {
	if !op.IsSwap() {
		b.setErr(fmt.Errorf("%s is not a swap opcode", op))
		return 0
	}
	if len(keys) == 0 || len(keys) != len(replacements) {
		b.setErr(fmt.Errorf("swap rule needs one replacement per key"))
	}
	if op == SwapDD {
		keys = flagged(keys)
	}
	if op != SwapCC {
		reps := make([][]rune, len(replacements))
		for i := range replacements {
			reps[i] = flagged(replacements[i])
		}
		replacements = reps
	} else {
		for _, rep := range replacements {
			if len(rep) != 1 {
				b.setErr(errors.New("swapcc needs single-character replacements"))
			}
		}
	}
	return b.stage(&Rule{Opcode: op, Keys: keys, Replacements: replacements})
}

// Pass declares a rule carrying a pass program: a correction (op=Correct),
// a context rule (op=Context) or a rule of generic passes 2–4.
func (b *Builder) Pass(op Opcode, dir Direction, test, action Program) RuleID {
	if !op.IsPass() {
		b.setErr(fmt.Errorf("%s is not a pass opcode", op))
		return 0
	}
	if dir == 0 {
		dir = Both
	}
	return b.stage(&Rule{Opcode: op, Dir: dir, Test: test, Action: action})
}

func flagged(cells []rune) []rune {
	f := make([]rune, len(cells))
	for i, d := range cells {
		f[i] = d | braille.CellFlag
	}
	return f
}

// --- Building --------------------------------------------------------------

// Build freezes the declarations into an immutable table.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := &Table{
		name:       b.name,
		rules:      make([]Rule, b.staged.Size()+1),
		chars:      make([]Character, 1, 128),
		cells:      make([]Character, 1, 128),
		indicators: make(map[Opcode]RuleID),
		display:    make(map[rune]rune),
		displayRev: make(map[rune]rune),
	}
	b.staged.Each(func(i int, v interface{}) {
		t.rules[i+1] = *v.(*Rule)
	})
	// character and cell records first, as chains depend on case variants
	for id := RuleID(1); int(id) < len(t.rules); id++ {
		r := &t.rules[id]
		if !r.Opcode.IsDefinition() {
			continue
		}
		attrs := definitionAttributes(r.Opcode)
		ch := t.record(r.Chars[0], false)
		ch.Attributes |= attrs
		if ch.Definition == 0 {
			ch.Definition = id
		}
		cell := t.record(r.Dots[0], true)
		cell.Attributes |= attrs
		if cell.Definition == 0 {
			cell.Definition = id
		}
	}
	b.caseOf.Each(func(_ int, v interface{}) {
		pair := v.([2]rune)
		t.record(pair[0], false).Lower = pair[1]
		t.record(pair[1], false).Upper = pair[0]
	})
	b.attrsOf.Each(func(_ int, v interface{}) {
		extra := v.(extraAttributes)
		for _, c := range extra.chars {
			t.record(c, false).Attributes |= extra.mask
		}
	})
	for id := RuleID(1); int(id) < len(t.rules); id++ {
		if err := t.place(id); err != nil {
			return nil, err
		}
	}
	for id := RuleID(1); int(id) < len(t.rules); id++ {
		if err := t.checkMultInd(id); err != nil {
			return nil, err
		}
	}
	it := b.display.Iterator()
	for it.Next() {
		c, d := rune(it.Key().(int)), it.Value().(rune)
		t.display[c] = d
		if _, ok := t.displayRev[d]; !ok {
			t.displayRev[d] = c
		}
	}
	T().Debugf("built table %q with %d rules", t.name, t.Len())
	return t, nil
}

// record finds or creates the record for a symbol.
func (t *Table) record(c rune, dots bool) *Character {
	if rec := t.lookup(c, dots); rec != nil {
		return rec
	}
	records, buckets := &t.chars, &t.charBuckets
	if dots {
		records, buckets = &t.cells, &t.cellBuckets
	}
	h := hash(c)
	*records = append(*records, Character{Value: c, Upper: c, Lower: c, next: buckets[h]})
	buckets[h] = int32(len(*records) - 1)
	return &(*records)[len(*records)-1]
}

// place registers rule id with the chains, indicators and passes it belongs to.
func (t *Table) place(id RuleID) error {
	r := &t.rules[id]
	switch {
	case r.Opcode.IsPass():
		if err := r.Test.validate(t); err != nil {
			return fmt.Errorf("rule #%d (%s), test: %w", id, r.Opcode, err)
		}
		if err := r.Action.validate(t); err != nil {
			return fmt.Errorf("rule #%d (%s), action: %w", id, r.Opcode, err)
		}
		for _, dir := range []Direction{Forward, Backward} {
			if r.Dir&dir != 0 {
				i := dir.index()
				t.passes[i][r.Opcode.Pass()] = append(t.passes[i][r.Opcode.Pass()], id)
			}
		}
		return nil
	case r.Opcode.IsSwap():
		return nil
	case r.Opcode.IsIndicator():
		if r.Opcode != MultInd && t.indicators[r.Opcode] == 0 {
			t.indicators[r.Opcode] = id
		}
		t.chain(id, Backward)
		return nil
	}
	// cells used by translations are known to the table, even without
	// a definition of their own
	for _, d := range r.Dots {
		t.record(d, true)
	}
	if r.Dir&Forward != 0 {
		t.chain(id, Forward)
	}
	if r.Dir&Backward != 0 {
		t.chain(id, Backward)
	}
	return nil
}

// checkMultInd verifies that the cells of a multi-indicator rule are the
// cells of its indicators, in order. Indicators the table does not define
// are skipped, as they are during translation.
func (t *Table) checkMultInd(id RuleID) error {
	r := &t.rules[id]
	if r.Opcode != MultInd {
		return nil
	}
	var cells []rune
	for _, op := range r.Indicators {
		if ind := t.indicators[op]; ind != 0 {
			cells = append(cells, t.rules[ind].Dots...)
		}
	}
	if !slices.Equal(cells, r.Dots) {
		return fmt.Errorf("rule #%d (multind): cells %s do not match indicator cells %s",
			id, braille.CellsString(r.Dots), braille.CellsString(cells))
	}
	return nil
}

// chain inserts rule id into the chain of direction dir, keeping chains ordered
// by specificity.
func (t *Table) chain(id RuleID, dir Direction) {
	r := &t.rules[id]
	match := r.Match(dir)
	var head *RuleID
	if len(match) == 1 && dir == Backward {
		head = &t.record(match[0], true).Others
	} else if len(match) == 1 {
		head = &t.record(t.Char(match[0]).Lower, false).Others
	} else if dir == Backward {
		head = &t.backRules[hash2(match[0], match[1])]
	} else {
		head = &t.forRules[hash2(t.Char(match[0]).Lower, t.Char(match[1]).Lower)]
	}
	key := t.specificity(r, dir)
	prev, cur := RuleID(0), *head
	for cur != 0 {
		c := &t.rules[cur]
		k := t.specificity(c, dir)
		if key > k || (key == k && weak(c) && !weak(r)) {
			break
		}
		prev, cur = cur, c.next(dir)
	}
	r.setNext(dir, cur)
	if prev == 0 {
		*head = id
	} else {
		t.rules[prev].setNext(dir, id)
	}
}

func (t *Table) specificity(r *Rule, dir Direction) int {
	switch {
	case dir == Forward:
		return len(r.Chars)
	case len(r.Dots) == 1 && r.Opcode.IsDefinition() && r.Opcode != LitDigit:
		return 0
	case len(r.Dots) == 1:
		return len(r.Chars)
	}
	return len(r.Dots) + len(r.Chars)
}

// weak rules give way to other rules of equal specificity.
func weak(r *Rule) bool {
	return r.Opcode == Always || r.Opcode.IsDefinition()
}
