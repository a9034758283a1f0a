package translate

import (
	"fmt"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
	"golang.org/x/exp/slices"
)

// match is the outcome of a successful test program.
type match struct {
	start        int // start of the match
	startReplace int // start of the replacement span
	endReplace   int // end of the replacement span
	end          int // end of the match
}

// test runs the test program of rule r at input position pos.
//
// Instructions form a conjunction, evaluated left to right. A Not
// instruction negates the instruction following it, and only that one. If
// the program does not set a replacement span, the whole match is replaced.
func (x *translation) test(r *table.Rule, pos int) (match, bool, error) {
	m := match{start: pos, startReplace: -1, endReplace: -1}
	dots := x.inputIsDots()
	srcmax := len(x.in)
	not := false
	p := pos
	for _, instr := range r.Test {
		if p > srcmax {
			return m, false, nil
		}
		ok := true
		switch instr.Kind {
		case table.IFirst:
			ok = p == 0
		case table.ILast:
			ok = p == srcmax
		case table.ILookback:
			p -= instr.N
			if p < 0 {
				p, ok = 0, false
			}
		case table.INot:
			not = !not
			continue
		case table.ILiteral:
			n := len(instr.Symbols)
			ok = p+n <= srcmax && slices.Equal(x.in[p:p+n], instr.Symbols)
			if ok {
				p += n
			}
		case table.IStartReplace:
			m.startReplace = p
		case table.IEndReplace:
			m.endReplace = p
		case table.IAttrRun:
			p, ok = x.run(p, instr, func(s rune) bool {
				return x.cls.Is(s, dots, instr.Attrs)
			})
		case table.ISwapRun:
			swap := x.t.Rule(instr.Swap)
			p, ok = x.run(p, instr, func(s rune) bool {
				return swap.SwapIndex(s) >= 0
			})
		case table.IVarTest:
			ok = x.compare(instr)
		case table.IEndTest:
			return m.finish(p), true, nil
		default:
			return m, false, fmt.Errorf("rule %s: test instruction %s: %w", r, instr,
				braille.ErrMalformedProgram)
		}
		if ok == not {
			return m, false, nil
		}
		not = false
	}
	return m.finish(p), true, nil
}

func (m match) finish(end int) match {
	m.end = end
	if m.startReplace < 0 {
		m.startReplace = m.start
	}
	if m.endReplace < m.startReplace {
		m.endReplace = end
	}
	return m
}

// run matches at least instr.Min and at most instr.Max symbols satisfying
// member, greedily.
func (x *translation) run(p int, instr table.Instruction, member func(rune) bool) (int, bool) {
	n := 0
	for ; n < instr.Min; n++ {
		if p >= len(x.in) || !member(x.in[p]) {
			return p, false
		}
		p++
	}
	for ; n < instr.Max && p < len(x.in) && member(x.in[p]); n++ {
		p++
	}
	return p, true
}

func (x *translation) compare(instr table.Instruction) bool {
	v := x.vars[instr.Var]
	switch instr.Cmp {
	case table.Lt:
		return v < instr.Value
	case table.Gt:
		return v > instr.Value
	case table.LtEq:
		return v <= instr.Value
	case table.GtEq:
		return v >= instr.Value
	}
	return v == instr.Value
}

// act runs the action program of rule r for match m. It returns the input
// position translation continues at.
//
// The part of the match in front of the replacement span is copied first.
// A Copy action takes that copy back, copies the replacement span and
// consumes the rest of the match.
func (x *translation) act(r *table.Rule, m match) (int, error) {
	destInitial := x.dest
	if err := x.copySpan(r, m.start, m.startReplace); err != nil {
		return m.start, err
	}
	destStart := x.dest
	next := m.endReplace
	for _, instr := range r.Action {
		switch instr.Kind {
		case table.AEmit:
			start := x.dest
			if err := x.emit(instr.Symbols, m.startReplace, 1); err != nil {
				return m.start, err
			}
			if x.dir == table.Backward && x.pass == 1 {
				x.capitalize(start)
			}
		case table.ASwap:
			if err := x.swap(x.t.Rule(instr.Swap), m.startReplace, m.endReplace); err != nil {
				return m.start, err
			}
		case table.AOmit:
		case table.ACopy:
			if n := destStart - destInitial; n > 0 {
				copy(x.out[destInitial:], x.out[destStart:x.dest])
				copy(x.tr.local[destInitial:], x.tr.local[destStart:x.dest])
				x.dest -= n
				destStart = destInitial
			}
			if err := x.copySpan(r, m.startReplace, m.endReplace); err != nil {
				return m.start, err
			}
			next = m.end
		case table.AVarSet:
			x.vars[instr.Var] = instr.Value
		case table.AVarInc:
			x.vars[instr.Var]++
		case table.AVarDec:
			x.vars[instr.Var]--
		default:
			return m.start, fmt.Errorf("rule %s: action instruction %s: %w", r, instr,
				braille.ErrMalformedProgram)
		}
	}
	return next, nil
}

// copySpan copies input symbols [from, to). Context rules of the primary pass
// translate every symbol by its definition, other passes copy verbatim.
func (x *translation) copySpan(r *table.Rule, from, to int) error {
	if r.Opcode != table.Context {
		return x.copyThrough(from, to)
	}
	for p := from; p < to; p++ {
		if err := x.putCharacter(p); err != nil {
			return err
		}
	}
	return nil
}

// swap replaces every symbol of [from, to) by the replacement its swap
// rule holds for it, stopping at the first symbol which is not a key.
func (x *translation) swap(swap *table.Rule, from, to int) error {
	for p := from; p < to; p++ {
		i := swap.SwapIndex(x.in[p])
		if i < 0 {
			return nil
		}
		if err := x.emit(swap.Replacements[i], p, 1); err != nil {
			return err
		}
	}
	return nil
}

// passRule finds the first rule of the current pass whose test succeeds at
// the current input position.
func (x *translation) passRule(pass int) (table.RuleID, match, bool, error) {
	for _, id := range x.t.PassRules(x.dir, pass) {
		m, ok, err := x.test(x.t.Rule(id), x.src)
		if err != nil {
			return 0, m, false, err
		}
		if ok {
			return id, m, true, nil
		}
	}
	return 0, match{}, false, nil
}
