package translate

import (
	"fmt"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
)

// --- Forward rule matcher ---------------------------------------------------

// selectForward selects the rule to apply at the current input position.
//
// Context rules take priority, followed by rules matching two or more
// characters and rules matching a single character. If no rule is
// admissible, the pseudo-rule None matches the current character.
func (x *translation) selectForward() (selection, error) {
	if x.st.posIncremented {
		id, m, ok, err := x.passRule(1)
		if err != nil || ok {
			return selection{id: id, rule: x.t.Rule(id), op: table.Context, length: m.end - m.start, m: m}, err
		}
	}
	src, srcmax := x.src, len(x.in)
	before := x.forBefore()
	for try := 0; try < 2; try++ {
		var id table.RuleID
		switch try {
		case 0:
			if srcmax-src < 2 {
				continue
			}
			id = x.t.Chain(table.Forward, x.in[src], x.in[src+1])
		case 1:
			id = x.t.Single(table.Forward, x.in[src])
		}
		for ; id != 0; id = x.t.Next(id, table.Forward) {
			r := x.t.Rule(id)
			n := len(r.Chars)
			if n == 0 || n > srcmax-src || !x.validMatch(r.Chars) {
				continue
			}
			if x.uncontracted() && (r.Opcode == table.NoCont || (r.Opcode.IsContraction() && n > 1)) {
				continue
			}
			if x.compStart >= 0 && src < x.compStart && src+n > x.compStart {
				continue
			}
			after := x.forAfter(n)
			if !r.Admits(before, after) {
				continue
			}
			if op, ok := x.admitForward(r, n, before, after); ok {
				tracer().P("pass", 1).Debugf("%d: rule #%d %s", src, id, r)
				return selection{id: id, rule: r, op: op, length: n}, nil
			}
		}
	}
	return x.noRule(), nil
}

func (x *translation) uncontracted() bool {
	return x.st.dontContract || x.mode.Is(braille.NoContractions)
}

// validMatch compares the characters of a rule with the input, ignoring
// case. Within a match, case may change after the first character only.
func (x *translation) validMatch(chars []rune) bool {
	var prev braille.Attributes
	for k, c := range chars {
		ic := x.cls.Char(x.in[x.src+k])
		if ic.Lower != x.cls.Char(c).Lower {
			return false
		}
		if k > 1 && prev.Has(braille.Letter) && ic.Attributes.Has(braille.Letter) &&
			prev&braille.UpperCase != ic.Attributes&braille.UpperCase {
			return false
		}
		prev = ic.Attributes
	}
	return true
}

func (x *translation) forBefore() braille.Attributes {
	if x.src == 0 {
		return x.cls.Char(' ').Attributes
	}
	return x.cls.Char(x.in[x.src-1]).Attributes
}

func (x *translation) forAfter(n int) braille.Attributes {
	if x.src+n < len(x.in) {
		return x.cls.Char(x.in[x.src+n]).Attributes
	}
	return x.cls.Char(' ').Attributes
}

// admitForward checks the opcode-specific conditions for a rule matching n
// characters. It returns the opcode to act on, which differs from the
// rule's for demoted large signs and decimal points within numbers.
func (x *translation) admitForward(r *table.Rule, n int, before, after braille.Attributes) (table.Opcode, bool) {
	const (
		space  = braille.Space
		letter = braille.Letter
		digit  = braille.Digit
		punct  = braille.Punctuation
	)
	op := r.Opcode
	if op.IsDefinition() {
		return op, true
	}
	switch op {
	case table.Always, table.ExactDots, table.NoCross, table.Repeated, table.Replace,
		table.Hyphen, table.CompBrl, table.Literal, table.NoCont:
		return op, true
	case table.RepWord:
		return op, x.repeatedWord(n) > 0
	case table.LargeSign:
		if !(before.Has(space|punct) || x.onlyLettersBehind()) ||
			!(after.Has(space) || x.st.previous == table.LargeSign) || after.Has(letter) {
			return table.Always, true
		}
		return op, true
	case table.WholeWord, table.Contraction:
		return op, before.Has(space|punct) && after.Has(space|punct)
	case table.PartWord:
		return op, before.Has(letter) || after.Has(letter)
	case table.JoinNum:
		if !before.Has(space|punct) || !after.Has(space) || x.dest+len(r.Dots) >= len(x.out) {
			return op, false
		}
		k := x.src + n + 1
		for k < len(x.in) && x.isAt(k, space) {
			k++
		}
		return op, x.isAt(k, digit)
	case table.LowWord:
		return op, before.Has(space) && after.Has(space) && x.st.previous != table.JoinableWord
	case table.JoinableWord:
		return op, before.Has(space|punct) && x.onlyLettersAhead(n)
	case table.SuffixableWord:
		return op, before.Has(space|punct) && after.Has(space|letter|punct)
	case table.PrefixableWord:
		return op, before.Has(space|letter|punct) && after.Has(space|punct)
	case table.BegWord:
		return op, before.Has(space|punct) && after.Has(letter)
	case table.BegMidWord:
		return op, before.Has(letter|space|punct) && after.Has(letter)
	case table.MidWord:
		return op, before.Has(letter) && after.Has(letter)
	case table.MidEndWord:
		return op, before.Has(letter) && after.Has(letter|space|punct)
	case table.EndWord:
		return op, before.Has(letter) && after.Has(space|punct)
	case table.BegNum:
		return op, before.Has(space|punct) && after.Has(digit)
	case table.MidNum:
		return op, x.st.previous != table.ExactDots && before.Has(digit) && after.Has(digit)
	case table.EndNum:
		return op, before.Has(digit) && x.st.previous != table.ExactDots
	case table.DecPoint:
		if !after.Has(digit) {
			return op, false
		}
		if before.Has(digit) {
			return table.MidNum, true
		}
		return op, true
	case table.PrePunc:
		return op, x.isPrePunc(n)
	case table.PostPunc:
		return op, x.isPostPunc(n)
	}
	return op, false
}

// onlyLettersBehind checks that the current word consists of letters up to
// the current position.
func (x *translation) onlyLettersBehind() bool {
	for k := x.src - 1; k >= 0; k-- {
		if x.isAt(k, braille.Space) {
			break
		}
		if !x.isAt(k, braille.Letter) {
			return false
		}
	}
	return true
}

// onlyLettersAhead checks that a match of n characters is followed by a
// single space and a word of letters.
func (x *translation) onlyLettersAhead(n int) bool {
	k := x.src + n
	if !x.isAt(k, braille.Space) {
		return false
	}
	k++
	start := k
	for k < len(x.in) && x.isAt(k, braille.Letter) {
		k++
	}
	return k > start && (k == len(x.in) || x.isAt(k, braille.Space|braille.Punctuation))
}

// isPrePunc checks that a match of n characters starts a word and is
// followed by punctuation up to a letter or digit.
func (x *translation) isPrePunc(n int) bool {
	if x.src > 0 && !x.isAt(x.src-1, braille.Space|braille.Punctuation) {
		return false
	}
	for k := x.src + n; k < len(x.in); k++ {
		if x.isAt(k, braille.Letter|braille.Digit) {
			return true
		}
		if !x.isAt(k, braille.Punctuation) {
			return false
		}
	}
	return false
}

// isPostPunc checks that a match of n characters ends a word and is preceded
// by a letter or digit, possibly followed by more punctuation.
func (x *translation) isPostPunc(n int) bool {
	if x.src == 0 || !x.isAt(x.src-1, braille.Letter|braille.Digit|braille.Punctuation) {
		return false
	}
	for k := x.src + n; k < len(x.in); k++ {
		if x.isAt(k, braille.Space) {
			return true
		}
		if !x.isAt(k, braille.Punctuation) {
			return false
		}
	}
	return true
}

// repeatedWord checks if a match of n characters sits between two equal
// words, as in "go-go". It returns the length of the word, or 0.
func (x *translation) repeatedWord(n int) int {
	start := x.src
	for start > 0 && x.isAt(start-1, braille.Letter) {
		start--
	}
	l := x.src - start
	next := x.src + n
	if l == 0 || next+l > len(x.in) || x.isAt(next+l, braille.Letter) {
		return 0
	}
	for k := 0; k < l; k++ {
		if x.cls.Char(x.in[start+k]).Lower != x.cls.Char(x.in[next+k]).Lower {
			return 0
		}
	}
	return l
}

// --- Forward primary pass ---------------------------------------------------

// forwardPrimary is the main forward pass, translating text to cells.
func (x *translation) forwardPrimary() error {
	st := &x.st
	st.reset()
	x.findCompWord()
	for x.src < len(x.in) {
		if x.src == x.compStart {
			if err := x.compTrans(x.compStart, x.compEnd); err != nil {
				return x.giveUp(err, true)
			}
			x.src, x.compStart = x.compEnd, -1
			continue
		}
		sel, err := x.selectForward()
		if err != nil {
			return err
		}
		x.appliedRule(sel.id)
		r, op, n := sel.rule, sel.op, sel.length
		before := x.forBefore()
		switch op {
		case table.CompBrl, table.Literal:
			if err := x.compbrlWord(); err != nil {
				return x.giveUp(err, true)
			}
			continue
		case table.Context:
			next, err := x.act(r, sel.m)
			if err != nil {
				return x.giveUp(err, true)
			}
			st.posIncremented = next > x.src
			x.src = next
			if x.src > 0 && x.isAt(x.src-1, braille.Space) {
				st.markWord(x.src, x.dest)
			}
			continue
		}
		st.posIncremented = true
		if op == table.NoCont {
			// retry the word without contractions
			st.dontContract = true
			continue
		}
		if err := x.indicators(op, before); err != nil {
			return x.giveUp(err, true)
		}
		if x.isAt(x.src, braille.Space) {
			st.dontContract = false
		}
		switch op {
		case table.Repeated, table.Space:
			st.dontContract = false
		case table.LargeSign:
			if st.previous == table.LargeSign {
				for x.dest > 0 && x.isSpaceCell(x.out[x.dest-1]) {
					x.dest--
				}
			}
		}
		// replacement
		switch op {
		case table.None:
			if err := x.undefinedChar(x.src); err != nil {
				return x.giveUp(err, true)
			}
			x.src++
		default:
			if err := x.emit(r.Dots, x.src, n); err != nil {
				return x.giveUp(err, true)
			}
			x.src += n
		}
		// after replacement
		switch op {
		case table.Repeated:
			for x.src+n <= len(x.in) && x.validMatch(r.Chars) {
				x.tr.skip(x.src, n, x.dest)
				x.src += n
			}
		case table.RepWord:
			x.skipRepeatedWords(r.Chars)
		case table.JoinNum, table.JoinableWord:
			for x.src < len(x.in) && x.isAt(x.src, braille.Space) {
				x.tr.skip(x.src, 1, x.dest)
				x.src++
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

// skipRepeatedWords consumes the repetitions of a word following a RepWord
// match, e.g. "-go" in "go-go" or "-go-go" in "go-go-go".
func (x *translation) skipRepeatedWords(sep []rune) {
	l := x.src - len(sep)
	start := l
	for start > 0 && x.isAt(start-1, braille.Letter) {
		start--
	}
	wordLen := l - start
	x.tr.skip(x.src, wordLen, x.dest)
	x.src += wordLen
	for x.src+len(sep)+wordLen <= len(x.in) && x.validMatch(sep) {
		next := x.src + len(sep)
		if x.isAt(next+wordLen, braille.Letter) {
			return
		}
		for k := 0; k < wordLen; k++ {
			if x.cls.Char(x.in[start+k]).Lower != x.cls.Char(x.in[next+k]).Lower {
				return
			}
		}
		x.tr.skip(x.src, len(sep)+wordLen, x.dest)
		x.src = next + wordLen
	}
}

// --- Indicators -------------------------------------------------------------

// emitIndicator outputs the cells of an indicator, mapped to input position
// at. Indicators a table does not define are ignored.
func (x *translation) emitIndicator(op table.Opcode, at int) error {
	id := x.t.Indicator(op)
	if id == 0 {
		return nil
	}
	x.appliedRule(id)
	return x.emit(x.t.Rule(id).Dots, at, 0)
}

// indicators inserts capital, number and letter signs in front of the
// current input character.
func (x *translation) indicators(op table.Opcode, before braille.Attributes) error {
	c := x.cls.Char(x.in[x.src])
	if err := x.capitals(c); err != nil {
		return err
	}
	done, err := x.numberSign(op, c, before)
	if err != nil || done {
		return err
	}
	if x.t.Indicator(table.LetterSign) == 0 {
		return nil
	}
	if op == table.Contraction || (c.Attributes.Has(braille.Letter) && !before.Has(braille.Letter) &&
		(!x.isAt(x.src+1, braille.Letter) || before.Has(braille.Digit))) {
		return x.emitIndicator(table.LetterSign, x.src)
	}
	return nil
}

// capitals inserts capital signs. A word of two or more capitals starts with
// a capitalized word indicator, if the table has one.
func (x *translation) capitals(c table.Character) error {
	st := &x.st
	switch {
	case !c.Attributes.Has(braille.Letter):
		st.capsWord = false
	case c.Attributes.Has(braille.UpperCase):
		if st.capsWord {
			return nil
		}
		if x.t.Indicator(table.BegCapsWord) != 0 && x.capsWordAhead() {
			st.capsWord = true
			return x.emitIndicator(table.BegCapsWord, x.src)
		}
		return x.emitIndicator(table.CapsLetter, x.src)
	case st.capsWord:
		st.capsWord = false
		return x.emitIndicator(table.EndCapsWord, x.src)
	}
	return nil
}

// capsWordAhead checks if a word of at least two uppercase letters starts at
// the current position.
func (x *translation) capsWordAhead() bool {
	if x.src > 0 && x.isAt(x.src-1, braille.Letter) {
		return false
	}
	k := x.src
	for k < len(x.in) && x.isAt(k, braille.Letter) {
		if !x.isAt(k, braille.UpperCase) {
			return false
		}
		k++
	}
	return k-x.src >= 2
}

// numberSign tracks numeric mode for tables with a number sign. It returns
// true if it has handled the current character.
func (x *translation) numberSign(op table.Opcode, c table.Character, before braille.Attributes) (bool, error) {
	if !x.t.UsesNumericMode() {
		return false, nil
	}
	st := &x.st
	digit := c.Attributes.Has(braille.Digit | braille.LitDigit)
	switch {
	case st.numeric && (digit || op == table.MidNum || op == table.DecPoint ||
		(c.Attributes.Has(braille.NumericMode) && x.isAt(x.src+1, braille.Digit))):
		return true, nil
	case st.numeric:
		st.numeric = false
		if !c.Attributes.Has(braille.NumericNoContract) {
			return false, nil
		}
		st.dontContract = true
		if x.t.Indicator(table.NoContractSign) != 0 {
			return true, x.emitIndicator(table.NoContractSign, x.src)
		}
		return true, x.emitIndicator(table.LetterSign, x.src)
	case digit || op == table.DecPoint:
		if st.previous == table.MidNum || (st.previous != table.ExactDots && before.Has(braille.Digit)) {
			return true, nil
		}
		st.numeric = true
		return true, x.emitIndicator(table.NumberSign, x.src)
	}
	return false, nil
}

// --- Computer braille -------------------------------------------------------

// findCompWord locates the word containing the cursor, if it is to be shown
// in computer braille.
func (x *translation) findCompWord() {
	x.compStart, x.compEnd = -1, -1
	cursor := x.tr.cursor
	if !x.mode.Is(braille.CompbrlAtCursor) || cursor < 0 || cursor >= len(x.in) ||
		x.isAt(cursor, braille.Space) {
		return
	}
	x.compStart, x.compEnd = cursor, cursor
	for x.compStart > 0 && !x.isAt(x.compStart-1, braille.Space) {
		x.compStart--
	}
	for x.compEnd < len(x.in) && !x.isAt(x.compEnd, braille.Space) {
		x.compEnd++
	}
}

// compbrlWord restarts the current word and shows it in computer braille.
// The word extends at least up to the character the computer braille rule
// matched at.
func (x *translation) compbrlWord() error {
	at := x.src
	if x.st.srcword <= at {
		x.src, x.dest = x.st.srcword, x.st.destword
	}
	if x.tr.resolved && x.tr.at >= x.dest {
		x.tr.resolved = false
	}
	end := at
	for end < len(x.in) && !x.isAt(end, braille.Space) {
		end++
	}
	if end == at {
		end++
	}
	if err := x.compTrans(x.src, end); err != nil {
		return err
	}
	x.src = end
	return nil
}

// compTrans outputs the characters [from, to) in computer braille, enclosed
// in computer braille indicators.
func (x *translation) compTrans(from, to int) error {
	if err := x.emitIndicator(table.BegComp, from); err != nil {
		return err
	}
	for p := from; p < to; p++ {
		d, ok := x.t.DotsForChar(x.in[p])
		if !ok {
			if err := x.putForwardCharacter(p); err != nil {
				return err
			}
			continue
		}
		if err := x.emit([]rune{d}, p, 1); err != nil {
			return err
		}
	}
	return x.emitIndicator(table.EndComp, to-1)
}

// --- Characters -------------------------------------------------------------

// putForwardCharacter outputs the cells a single character is defined as.
func (x *translation) putForwardCharacter(p int) error {
	ch := x.cls.Char(x.in[p])
	def := ch.Definition
	if def == 0 {
		def = x.cls.Char(ch.Lower).Definition
	}
	if def == 0 {
		return x.undefinedChar(p)
	}
	return x.emit(x.t.Rule(def).Dots, p, 1)
}

// undefinedChar outputs a character the table does not define. Printable
// ASCII shows as itself, anything else as `\xhhhh`, spelled out in display
// cells.
func (x *translation) undefinedChar(p int) error {
	c := x.in[p]
	text := []rune{c}
	if c < ' ' || c >= 0x7f {
		text = []rune(fmt.Sprintf("\\x%04x", c))
	}
	cells := make([]rune, len(text))
	for i, ch := range text {
		d, ok := x.t.DotsForChar(ch)
		if !ok {
			d = braille.BlankCell
		}
		cells[i] = d
	}
	return x.emit(cells, p, 1)
}

// isSpaceCell is true for the blank cell and cells defined as spaces.
func (x *translation) isSpaceCell(d rune) bool {
	if d == braille.BlankCell {
		return true
	}
	cell := x.cls.Cell(d)
	return cell.Definition != 0 && cell.Attributes.Has(braille.Space)
}
