package translate

import (
	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
)

// translation is the per-call context of a translation. It is threaded
// through all of the passes of a call and never shared.
type translation struct {
	t    *table.Table
	dir  table.Direction
	mode braille.Mode
	cls  *table.Classifier
	pass int   // current pass number
	in   []rune // input of the current pass
	out  []rune // output buffer of the current pass
	src  int
	dest int
	vars [table.NumPassVariables]int
	tr   tracker
	st   state
	none table.Rule // pseudo-rule for symbols without a rule
	// applied rules, if requested
	applied    []table.RuleID
	maxApplied int
	// forward translation: word shown in computer braille
	compStart, compEnd int
}

func newTranslation(t *table.Table, dir table.Direction, mode braille.Mode) *translation {
	return &translation{
		t:         t,
		dir:       dir,
		mode:      mode,
		cls:       table.NewClassifier(t),
		compStart: -1,
		compEnd:   -1,
	}
}

// startPass prepares a pass reading in and writing out.
func (x *translation) startPass(pass int, in, out []rune) {
	x.pass, x.in, x.out = pass, in, out
	x.src, x.dest = 0, 0
	x.vars = [table.NumPassVariables]int{}
	x.cls.Reset()
}

// inputIsDots is true if the input of the current pass consists of cells.
func (x *translation) inputIsDots() bool {
	if x.dir == table.Backward {
		return x.pass > 0
	}
	return x.pass > 1
}

// outputIsDots is true if the output of the current pass consists of cells.
func (x *translation) outputIsDots() bool {
	if x.dir == table.Backward {
		return x.pass > 1
	}
	return x.pass > 0
}

func (x *translation) isAt(pos int, mask braille.Attributes) bool {
	if pos < 0 || pos >= len(x.in) {
		return false
	}
	return x.cls.Is(x.in[pos], x.inputIsDots(), mask)
}

// appliedRule remembers a rule which has been applied.
func (x *translation) appliedRule(id table.RuleID) {
	if id != 0 && len(x.applied) < x.maxApplied {
		x.applied = append(x.applied, id)
	}
}

// emit writes syms to the output, mapping them to inLen input symbols at src.
func (x *translation) emit(syms []rune, src, inLen int) error {
	if x.dest+len(syms) > len(x.out) {
		return braille.ErrOutputTooSmall
	}
	x.tr.record(src, inLen, x.dest, len(syms))
	copy(x.out[x.dest:], syms)
	x.dest += len(syms)
	return nil
}

// copyThrough copies input symbols [from, to) verbatim.
func (x *translation) copyThrough(from, to int) error {
	if to <= from {
		return nil
	}
	if x.dest+to-from > len(x.out) {
		return braille.ErrOutputTooSmall
	}
	for p := from; p < to; p++ {
		x.tr.local[x.dest] = p
		x.out[x.dest] = x.in[p]
		x.dest++
	}
	return nil
}

// putCharacter outputs the translation of the definition of a single input
// symbol.
func (x *translation) putCharacter(p int) error {
	if x.dir == table.Backward {
		return x.putBackCharacter(p)
	}
	return x.putForwardCharacter(p)
}

// giveUp rewinds a pass which ran out of output capacity to the last word
// boundary, then skips spaces. This keeps partial results consistent up to
// the last complete word.
func (x *translation) giveUp(err error, rewind bool) error {
	if rewind && x.st.destword != 0 && x.src < len(x.in) && !x.isAt(x.src, braille.Space) {
		x.src, x.dest = x.st.srcword, x.st.destword
	}
	for x.src < len(x.in) && x.isAt(x.src, braille.Space) {
		x.src++
	}
	tracer().Debugf("pass %d stopped at input %d, output %d: %v", x.pass, x.src, x.dest, err)
	return err
}
