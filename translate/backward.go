package translate

import (
	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
)

// selection is a rule chosen by a rule matcher.
type selection struct {
	id     table.RuleID // 0 for the pseudo-rule
	rule   *table.Rule
	op     table.Opcode // opcode to act on; may differ from the rule's
	length int          // number of input symbols matched
	m      match        // context rules only
}

// --- Back-translation rule matcher -----------------------------------------

// selectBack selects the rule to apply at the current input position.
//
// Pending indicators of a multi-indicator rule take priority, followed by
// context rules, rules matching two or more cells, and rules matching a
// single cell. If no rule is admissible, the pseudo-rule None matches the
// current cell.
func (x *translation) selectBack() (selection, error) {
	if sel, ok := x.pendingIndicator(); ok {
		return sel, nil
	}
	if x.st.posIncremented {
		id, m, ok, err := x.passRule(1)
		if err != nil || ok {
			return selection{id: id, rule: x.t.Rule(id), op: table.Context, length: m.end - m.start, m: m}, err
		}
	}
	src, srcmax := x.src, len(x.in)
	before := x.backBefore()
	cell := x.cls.Cell(x.in[src])
	for try := 0; try < 2; try++ {
		var id table.RuleID
		switch try {
		case 0:
			if srcmax-src < 2 || (x.st.itsANumber && cell.Attributes.Has(braille.LitDigit)) {
				continue
			}
			id = x.t.Chain(table.Backward, x.in[src], x.in[src+1])
		case 1:
			id = cell.Others
		}
		for ; id != 0; id = x.t.Next(id, table.Backward) {
			r := x.t.Rule(id)
			n := len(r.Dots)
			if n == 0 || n > srcmax-src || !equalSymbols(x.in[src:src+n], r.Dots) {
				continue
			}
			after := x.backAfter(n)
			if !r.Admits(before, after) {
				continue
			}
			if r.Opcode == table.MultInd {
				x.st.pending = append(x.st.pending[:0], r.Indicators...)
				if sel, ok := x.pendingIndicator(); ok {
					return sel, nil
				}
				continue
			}
			if x.admitBack(r, n, before, after) {
				tracer().P("pass", 1).Debugf("%d: rule #%d %s", src, id, r)
				return selection{id: id, rule: r, op: r.Opcode, length: n}, nil
			}
		}
	}
	return x.noRule(), nil
}

// noRule returns the pseudo-rule matching the current input symbol.
func (x *translation) noRule() selection {
	x.none = table.Rule{Opcode: table.None}
	if x.dir == table.Backward {
		x.none.Dots = x.in[x.src : x.src+1]
	} else {
		x.none.Chars = x.in[x.src : x.src+1]
	}
	return selection{rule: &x.none, op: table.None, length: 1}
}

// pendingIndicator resolves the next pending indicator of a multi-indicator
// rule. Indicators the table does not define, or whose cells do not follow
// in the input, are dropped.
func (x *translation) pendingIndicator() (selection, bool) {
	for {
		op, ok := x.st.nextIndicator()
		if !ok {
			return selection{}, false
		}
		id := x.t.Indicator(op)
		if id == 0 {
			continue
		}
		r := x.t.Rule(id)
		n := len(r.Dots)
		if n == 0 || n > len(x.in)-x.src || !equalSymbols(x.in[x.src:x.src+n], r.Dots) {
			tracer().P("pass", 1).Debugf("%d: dropping pending %s", x.src, op)
			continue
		}
		return selection{id: id, rule: r, op: r.Opcode, length: n}, true
	}
}

func equalSymbols(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// backBefore returns the attributes of the last character written.
func (x *translation) backBefore() braille.Attributes {
	if x.dest == 0 {
		return x.cls.Char(' ').Attributes
	}
	return x.cls.Char(x.out[x.dest-1]).Attributes
}

// backAfter returns the attributes of the cell following a match of n cells.
func (x *translation) backAfter(n int) braille.Attributes {
	if x.src+n < len(x.in) {
		return x.cls.Cell(x.in[x.src+n]).Attributes
	}
	return braille.Space
}

// admitBack checks the opcode-specific conditions for a rule matching n
// cells.
func (x *translation) admitBack(r *table.Rule, n int, before, after braille.Attributes) bool {
	const (
		space  = braille.Space
		letter = braille.Letter
		punct  = braille.Punctuation
	)
	partial := x.mode.Is(braille.PartialTrans)
	switch r.Opcode {
	case table.Space, table.Digit, table.Letter, table.UpperCase, table.LowerCase,
		table.Punctuation, table.Math, table.Sign, table.ExactDots, table.NoCross,
		table.Repeated, table.Replace, table.Hyphen, table.LargeSign:
		return true
	case table.LitDigit:
		return x.st.itsANumber
	case table.CapsLetter, table.BegCaps, table.EndCaps, table.BegCapsWord,
		table.EndCapsWord, table.BegEmph, table.EndEmph, table.NumberSign,
		table.BegComp, table.EndComp:
		return true
	case table.LetterSign, table.NoContractSign:
		return !before.Has(letter) && after.Has(letter|braille.Sign)
	case table.WholeWord:
		if partial || x.st.itsALetter || x.st.itsANumber {
			return false
		}
		return before.Has(space|punct) && (after.Has(space) || x.isEndWord(n))
	case table.Contraction:
		return before.Has(space|punct) && (after.Has(space) || x.isEndWord(n))
	case table.LowWord:
		return !partial && before.Has(space) && after.Has(space) &&
			x.st.previous != table.JoinableWord
	case table.JoinNum, table.JoinableWord:
		return before.Has(space|punct) && (!after.Has(space) || partial)
	case table.SuffixableWord:
		return before.Has(space | punct)
	case table.PrefixableWord:
		return before.Has(space|letter|punct) && x.isEndWord(n)
	case table.BegWord:
		return before.Has(space|punct) && !x.isEndWord(n)
	case table.BegMidWord:
		return before.Has(letter|space|punct) && !x.isEndWord(n)
	case table.PartWord:
		return !before.Has(braille.LitDigit) && (before.Has(letter) || !x.isEndWord(n))
	case table.MidWord:
		return before.Has(letter) && !x.isEndWord(n)
	case table.MidEndWord:
		return before.Has(letter)
	case table.EndWord:
		return before.Has(letter) && x.isEndWord(n)
	case table.BegNum:
		return before.Has(space|punct) && after.Has(braille.LitDigit|braille.Sign)
	case table.MidNum:
		return before.Has(braille.Digit) && after.Has(braille.LitDigit)
	case table.EndNum:
		return x.st.itsANumber && !after.Has(braille.LitDigit)
	case table.DecPoint:
		return after.Has(braille.Digit | braille.LitDigit)
	case table.PrePunc:
		return x.isBegWord()
	case table.PostPunc:
		return x.isEndWord(n)
	case table.Always:
		return !(before.Has(braille.LitDigit) && after.Has(braille.LitDigit) && len(r.Chars) > 1)
	}
	return false
}

// isEndWord checks if the word ends after a match of n cells, looking at
// the cells up to the next space. Without a complete word (partial
// translation) it never does.
func (x *translation) isEndWord(n int) bool {
	if x.mode.Is(braille.PartialTrans) {
		return false
	}
	for k := x.src + n; k < len(x.in); k++ {
		cell := x.cls.Cell(x.in[k])
		if cell.Attributes.Has(braille.Space) {
			break
		}
		if cell.Attributes.Has(braille.Letter) {
			return false
		}
		translation, postpunc := false, false
		for id := cell.Others; id != 0; id = x.t.Next(id, table.Backward) {
			r := x.t.Rule(id)
			// begword and midword rules are no definite translations yet
			if len(r.Chars) > 1 && r.Opcode != table.BegWord && r.Opcode != table.MidWord {
				translation = true
			}
			switch r.Opcode {
			case table.PostPunc:
				postpunc = true
			case table.Hyphen:
				return true
			}
		}
		if translation && !postpunc {
			return false
		}
	}
	return true
}

// isBegWord checks the text already written for the start of a word.
func (x *translation) isBegWord() bool {
	for k := x.dest - 1; k >= 0; k-- {
		attrs := x.cls.Char(x.out[k]).Attributes
		if attrs.Has(braille.Space) {
			break
		}
		if attrs.Has(braille.Letter | braille.Digit | braille.Math | braille.Sign) {
			return false
		}
	}
	return true
}

// --- Back-translation primary pass -----------------------------------------

// backPrimary is the main back-translation pass, translating cells to text.
func (x *translation) backPrimary() error {
	st := &x.st
	st.reset()
	for x.src < len(x.in) {
		sel, err := x.selectBack()
		if err != nil {
			return err
		}
		x.appliedRule(sel.id)
		r, op, n := sel.rule, sel.op, sel.length
		// indicators and state changes before replacement
		switch op {
		case table.Hyphen:
			st.itsANumber = false
		case table.LargeSign:
			if st.previous == table.LargeSign {
				if err := x.insertSpace(x.src); err != nil {
					return x.giveUp(err, true)
				}
			}
		case table.CapsLetter:
			st.nextUpper = true
		case table.BegCapsWord:
			st.allUpper = true
		case table.BegCaps:
			st.allUpperPhrase = true
		case table.EndCapsWord:
			st.allUpper = false
		case table.EndCaps:
			st.allUpperPhrase = false
		case table.LetterSign, table.NoContractSign:
			st.itsALetter, st.itsANumber = true, false
		case table.NumberSign:
			st.itsANumber = true
		}
		if op.IsIndicator() {
			x.tr.hold(x.src, n, x.dest)
			x.src += n
			continue
		}
		// replacement
		st.posIncremented = true
		switch op {
		case table.Context:
			next, err := x.act(r, sel.m)
			if err != nil {
				return x.giveUp(err, true)
			}
			st.posIncremented = next > x.src
			x.src = next
		case table.None:
			if err := x.undefinedDots(x.src); err != nil {
				return x.giveUp(err, true)
			}
			x.src++
		default:
			switch op {
			case table.BegNum:
				st.itsANumber = true
			case table.EndNum:
				st.itsANumber = false
			case table.Space:
				st.itsALetter, st.itsANumber = false, false
				st.allUpper, st.nextUpper = false, false
			}
			if err := x.backReplace(r, n); err != nil {
				return x.giveUp(err, true)
			}
		}
		// after replacement
		switch op {
		case table.JoinNum, table.JoinableWord:
			if err := x.insertSpace(x.src - 1); err != nil {
				return x.giveUp(err, true)
			}
		}
		if x.src > 0 && x.isAt(x.src-1, braille.Space) && op != table.JoinableWord {
			st.markWord(x.src, x.dest)
		}
		if op.IsTranslation() {
			st.previous = op
		}
	}
	return nil
}

// backReplace outputs the text of rule r, which matched n cells. Rules
// without text output the definitions of the cells matched.
func (x *translation) backReplace(r *table.Rule, n int) error {
	if len(r.Chars) > 0 {
		if err := x.emitChars(r.Chars, x.src, n); err != nil {
			return err
		}
		x.src += n
		return nil
	}
	for k := 0; k < n; k++ {
		if err := x.putBackCharacter(x.src); err != nil {
			return err
		}
		x.src++
	}
	return nil
}

// emitChars outputs characters, applying pending capitalization.
func (x *translation) emitChars(chars []rune, src, inLen int) error {
	start := x.dest
	if err := x.emit(chars, src, inLen); err != nil {
		return err
	}
	x.capitalize(start)
	return nil
}

// capitalize applies pending capitalization to the output from start on.
func (x *translation) capitalize(start int) {
	if start >= x.dest {
		return
	}
	if x.st.nextUpper {
		x.out[start] = x.cls.Char(x.out[start]).Upper
		x.st.nextUpper = false
		start++
	}
	if x.st.allUpper || x.st.allUpperPhrase {
		for k := start; k < x.dest; k++ {
			x.out[k] = x.cls.Char(x.out[k]).Upper
		}
	}
}

// putBackCharacter outputs the character a single cell is defined as.
func (x *translation) putBackCharacter(p int) error {
	d := x.in[p]
	def := x.cls.Cell(d).Definition
	if def == 0 {
		return x.undefinedDots(p)
	}
	if r := x.t.Rule(def); len(r.Chars) > 0 {
		return x.emitChars(r.Chars, p, 1)
	}
	c, ok := x.t.CharForDots(d)
	if !ok {
		return x.undefinedDots(p)
	}
	return x.emitChars([]rune{c}, p, 1)
}

// undefinedDots outputs a cell without translation in escape notation,
// unless the mode asks to drop such cells.
func (x *translation) undefinedDots(p int) error {
	if x.mode.Is(braille.NoUndefinedDots) {
		return nil
	}
	return x.emit(braille.EscapeDots(x.in[p]), p, 1)
}

// insertSpace outputs a space which has no counterpart in the input. It is
// mapped to input position at.
func (x *translation) insertSpace(at int) error {
	if at < 0 {
		at = 0
	}
	return x.emit([]rune{' '}, at, 0)
}
