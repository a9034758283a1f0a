package translate

import (
	"errors"
	"fmt"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
)

// NoCursor is the cursor position requesting no cursor tracking.
const NoCursor = -1

// Options control a translation call.
//
// OutputPositions receives, for every consumed input symbol, the position of
// the first output symbol it contributed to. InputPositions receives, for
// every produced output symbol, the input position it stems from. Both are
// optional; if given, they must be at least as long as the input and the
// output buffer, respectively.
type Options struct {
	Mode            braille.Mode
	Cursor          int // input position of the cursor, or NoCursor
	OutputPositions []int
	InputPositions  []int
	MaxAppliedRules int // number of applied rules to report
}

// Result reports the outcome of a translation call.
type Result struct {
	Consumed     int            // number of input symbols consumed
	Produced     int            // number of output symbols written
	Cursor       int            // cursor in output coordinates, or NoCursor
	AppliedRules []table.RuleID // rules applied, in order, if requested
}

// BackTranslate translates braille cells into text, writing to out.
//
// Unless the mode contains braille.DotsIO, the input consists of display
// characters (ASCII braille, Unicode braille patterns or characters the table
// declares a display cell for). With DotsIO, the input consists of dot
// bitmasks. Cells without a translation are escaped as `\dots/`.
func BackTranslate(t *table.Table, in []rune, out []rune, opt Options) (Result, error) {
	return run(t, table.Backward, in, out, opt)
}

// Translate translates text into braille, writing to out.
//
// Unless the mode contains braille.DotsIO, cells are written as display
// characters: Unicode braille patterns with braille.UCBrl, the display
// characters of the table otherwise. With DotsIO, cells are written as dot
// bitmasks carrying braille.CellFlag.
func Translate(t *table.Table, in []rune, out []rune, opt Options) (Result, error) {
	return run(t, table.Forward, in, out, opt)
}

// passPlan lists the passes to run for a direction, in order.
func passPlan(t *table.Table, dir table.Direction, mode braille.Mode) []int {
	if mode.Is(braille.Pass1Only) {
		return []int{1}
	}
	plan := make([]int, 0, 5)
	n := t.NumPasses(dir)
	if dir == table.Forward {
		if t.HasCorrections(dir) {
			plan = append(plan, 0)
		}
		for pass := 1; pass <= n; pass++ {
			plan = append(plan, pass)
		}
		return plan
	}
	for pass := n; pass >= 1; pass-- {
		plan = append(plan, pass)
	}
	if t.HasCorrections(dir) {
		plan = append(plan, 0)
	}
	return plan
}

func run(t *table.Table, dir table.Direction, in []rune, out []rune, opt Options) (Result, error) {
	res := Result{Cursor: NoCursor}
	if t == nil {
		return res, fmt.Errorf("no table: %w", braille.ErrInvalidArgument)
	}
	if opt.OutputPositions != nil && len(opt.OutputPositions) < len(in) {
		return res, fmt.Errorf("output positions hold %d, need %d: %w",
			len(opt.OutputPositions), len(in), braille.ErrInvalidArgument)
	}
	if opt.InputPositions != nil && len(opt.InputPositions) < len(out) {
		return res, fmt.Errorf("input positions hold %d, need %d: %w",
			len(opt.InputPositions), len(out), braille.ErrInvalidArgument)
	}
	wantCursor := opt.Cursor >= 0
	if len(in) == 0 {
		if wantCursor {
			res.Cursor = 0
		}
		return res, nil
	}
	n := len(in)
	if len(out) > n {
		n = len(out)
	}
	sc := borrowScratch(n + 1)
	defer sc.release()
	x := newTranslation(t, dir, opt.Mode)
	if opt.MaxAppliedRules > 0 {
		x.maxApplied = opt.MaxAppliedRules
		x.applied = make([]table.RuleID, 0, opt.MaxAppliedRules)
	}
	input := in
	if dir == table.Backward {
		input = x.convertInput(in, sc.runes[2][:len(in)])
	}
	incoming, local, composed := sc.maps[0], sc.maps[1], sc.maps[2]
	for i := 0; i <= len(in); i++ {
		incoming[i] = i
	}
	cursor := opt.Cursor // original coordinates until resolved
	resolved := false
	plan := passPlan(t, dir, opt.Mode)
	tracer().Debugf("%s translation of %d symbols, passes %v", dir, len(in), plan)
	var err error
	for i, pass := range plan {
		final := i == len(plan)-1
		output := out
		if !final {
			output = sc.runes[i%2][:len(out)]
		}
		x.startPass(pass, input, output)
		x.tr = tracker{local: local, cursor: NoCursor}
		switch {
		case wantCursor && resolved:
			x.tr.cursor = cursor
		case wantCursor && pass == 1:
			x.tr.cursor = passPosition(incoming, len(input), cursor)
			x.tr.resolving = true
			x.tr.midpoint = dir == table.Backward
		}
		if pass == 1 && dir == table.Backward {
			err = x.backPrimary()
		} else if pass == 1 {
			err = x.forwardPrimary()
		} else {
			err = x.genericPass()
		}
		tracer().Debugf("pass %d: %d symbols in, %d out", pass, len(input), x.dest)
		if err != nil && (!final || !errors.Is(err, braille.ErrOutputTooSmall)) {
			tracer().Errorf("%s translation failed in pass %d: %v", dir, pass, err)
			return Result{Cursor: NoCursor}, err
		}
		for o := 0; o < x.dest; o++ {
			composed[o] = incoming[local[o]]
		}
		composed[x.dest] = incoming[x.src]
		incoming, composed = composed, incoming
		switch {
		case !wantCursor:
		case resolved:
			if !x.tr.follow(x.dest) {
				cursor = x.dest
			} else {
				cursor = x.tr.at
			}
		case x.tr.resolved:
			cursor, resolved = x.tr.at, true
		}
		input = output[:x.dest]
	}
	res.Produced = len(input)
	res.Consumed = incoming[res.Produced]
	res.AppliedRules = x.applied
	if wantCursor {
		res.Cursor = res.Produced
		if resolved && cursor < res.Produced {
			res.Cursor = cursor
		}
	}
	if dir == table.Forward {
		x.convertOutput(out[:res.Produced])
	}
	if opt.InputPositions != nil {
		copy(opt.InputPositions, incoming[:res.Produced])
	}
	if opt.OutputPositions != nil {
		fillOutputPositions(opt.OutputPositions[:res.Consumed], incoming[:res.Produced])
	}
	return res, err
}

// passPosition converts a position of the original input into pass input
// coordinates: the first pass input symbol stemming from it or from a later
// position.
func passPosition(srcMap []int, srcmax, pos int) int {
	for j := 0; j < srcmax; j++ {
		if srcMap[j] >= pos {
			return j
		}
	}
	return NoCursor
}

// fillOutputPositions inverts the final output→input map. Input positions
// without output of their own get the output position of their predecessor.
func fillOutputPositions(outPos []int, inPos []int) {
	for i := range outPos {
		outPos[i] = -1
	}
	for o := len(inPos) - 1; o >= 0; o-- {
		if i := inPos[o]; i < len(outPos) {
			outPos[i] = o
		}
	}
	last := 0
	for i, o := range outPos {
		if o < 0 {
			outPos[i] = last
		} else {
			last = o
		}
	}
}

// convertInput converts the input of a back-translation to cells.
func (x *translation) convertInput(in []rune, cells []rune) []rune {
	for i, c := range in {
		if x.mode.Is(braille.DotsIO) {
			cells[i] = c | braille.CellFlag
			continue
		}
		d, ok := x.t.DotsForChar(c)
		if !ok {
			d = braille.BlankCell
		}
		cells[i] = d
	}
	return cells
}

// convertOutput converts the cells of a forward translation to display
// characters, unless the mode asks for cells.
func (x *translation) convertOutput(cells []rune) {
	if x.mode.Is(braille.DotsIO) {
		return
	}
	for i, d := range cells {
		if x.mode.Is(braille.UCBrl) {
			cells[i] = braille.UnicodeFromCell(d)
			continue
		}
		if c, ok := x.t.CharForDots(d); ok {
			cells[i] = c
		} else {
			cells[i] = braille.UnicodeFromCell(d)
		}
	}
}
