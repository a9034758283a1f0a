package translate

// tracker keeps the position mapping of a single pass and moves the cursor
// through it.
//
// local maps every output position of the pass to the pass input position it
// stems from. At the end of a pass, local is composed with the mapping of
// the pass input to the original input, see sequencer.
type tracker struct {
	local     []int
	cursor    int  // cursor in pass input coordinates, or -1
	resolving bool // resolve the cursor while recording
	midpoint  bool // resolve to the middle of an emission instead of its start
	resolved  bool
	at        int // resolved cursor in pass output coordinates
}

// record maps outLen output symbols at dest to inLen input symbols at src.
// Surplus output symbols map to the last input symbol of the span. If the
// span contains the cursor, the cursor is resolved, once.
func (tr *tracker) record(src, inLen, dest, outLen int) {
	last := inLen - 1
	if last < 0 {
		last = 0
	}
	for k := 0; k < outLen; k++ {
		if k < last {
			tr.local[dest+k] = src + k
		} else {
			tr.local[dest+k] = src + last
		}
	}
	if !tr.resolving || tr.resolved || tr.cursor < src || tr.cursor >= src+inLen {
		return
	}
	tr.at = dest
	if tr.midpoint {
		tr.at = dest + outLen/2
	}
	tr.resolved = true
}

// skip resolves the cursor for input symbols consumed without output of
// their own, e.g. repeated symbols. They resolve to the most recent output
// position.
func (tr *tracker) skip(src, inLen, dest int) {
	if !tr.resolving || tr.resolved || tr.cursor < src || tr.cursor >= src+inLen {
		return
	}
	tr.at = dest - 1
	if tr.at < 0 {
		tr.at = 0
	}
	tr.resolved = true
}

// hold resolves the cursor for input symbols consumed without any output,
// e.g. indicators. They resolve to the start of the next output.
func (tr *tracker) hold(src, inLen, dest int) {
	if !tr.resolving || tr.resolved || tr.cursor < src || tr.cursor >= src+inLen {
		return
	}
	tr.at = dest
	tr.resolved = true
}

// follow moves an unresolved cursor through a pass which does not resolve
// cursors itself: the cursor lands on the first output symbol stemming from
// an input position at or after it. It returns false if no such symbol
// exists.
func (tr *tracker) follow(produced int) bool {
	if tr.cursor < 0 {
		return false
	}
	for o := 0; o < produced; o++ {
		if tr.local[o] >= tr.cursor {
			tr.at = o
			return true
		}
	}
	return false
}
