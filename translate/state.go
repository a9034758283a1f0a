package translate

import "github.com/npillmayer/braille/table"

// state holds the transient flags of a primary or correction pass.
type state struct {
	nextUpper      bool // capitalize the next character
	allUpper       bool // capitalize the current word
	allUpperPhrase bool // capitalize up to the end of a capitalized phrase
	itsANumber     bool // inside a number
	itsALetter     bool // a letter sign is in effect
	numeric        bool // forward: number sign has been emitted
	dontContract   bool // forward: contractions are suppressed for the current word
	capsWord       bool // forward: begin-caps-word indicator has been emitted
	posIncremented bool // the last rule consumed input
	previous       table.Opcode
	srcword        int // input position of the last word start
	destword       int // output position of the last word start
	pending        []table.Opcode
}

func (st *state) reset() {
	pending := st.pending[:0]
	*st = state{
		previous:       table.None,
		posIncremented: true,
		pending:        pending,
	}
}

// markWord remembers the start of a word.
func (st *state) markWord(src, dest int) {
	st.srcword, st.destword = src, dest
}

// nextIndicator pops the next pending indicator of a multi-indicator rule.
func (st *state) nextIndicator() (table.Opcode, bool) {
	if len(st.pending) == 0 {
		return table.None, false
	}
	op := st.pending[0]
	st.pending = st.pending[1:]
	return op, true
}
