package table

import (
	"fmt"

	"github.com/npillmayer/braille"
)

// Opcode is the category of a rule. It decides how a rule is matched and
// what it emits.
type Opcode uint8

// Opcodes for character definitions.
const (
	None Opcode = iota // terminal fallback, never stored in a table
	Space
	Punctuation
	Digit
	Letter
	UpperCase
	LowerCase
	Math
	Sign
	LitDigit
)

// Opcodes for rules which emit a translation.
const (
	Always Opcode = iota + LitDigit + 1
	ExactDots
	NoCross
	Repeated
	RepWord
	Replace
	LargeSign
	WholeWord
	PartWord
	JoinNum
	JoinableWord
	LowWord
	Contraction
	SuffixableWord
	PrefixableWord
	BegWord
	BegMidWord
	MidWord
	MidEndWord
	EndWord
	PrePunc
	PostPunc
	BegNum
	MidNum
	EndNum
	DecPoint
	Hyphen
	CompBrl
	Literal
	NoCont
)

// Opcodes for indicators. Indicator rules consume cells during
// back-translation without emitting anything, but change the state of the
// translation. During forward translation they are inserted into the output.
const (
	CapsLetter Opcode = iota + NoCont + 1
	BegCapsWord
	EndCapsWord
	BegCaps
	EndCaps
	LetterSign
	NoContractSign
	NumberSign
	BegEmph
	EndEmph
	BegComp
	EndComp
	MultInd
)

// Opcodes for rules carrying a pass program, and for swap rules referenced
// by pass programs.
const (
	Correct Opcode = iota + MultInd + 1
	Context
	Pass2
	Pass3
	Pass4
	SwapCC
	SwapCD
	SwapDD
	lastOpcode
)

var opcodeNames = [...]string{
	"none", "space", "punctuation", "digit", "letter", "uppercase", "lowercase",
	"math", "sign", "litdigit",
	"always", "exactdots", "nocross", "repeated", "repword", "replace",
	"largesign", "word", "partword", "joinnum", "joinword", "lowword",
	"contraction", "sufword", "prfword", "begword", "begmidword", "midword",
	"midendword", "endword", "prepunc", "postpunc", "begnum", "midnum",
	"endnum", "decpoint", "hyphen", "compbrl", "literal", "nocont",
	"capsletter", "begcapsword", "endcapsword", "begcaps", "endcaps",
	"letsign", "nocontractsign", "numsign", "begemph", "endemph", "begcomp",
	"endcomp", "multind",
	"correct", "context", "pass2", "pass3", "pass4", "swapcc", "swapcd",
	"swapdd",
}

func (op Opcode) String() string {
	if op < lastOpcode {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", int(op))
}

// IsDefinition is true for opcodes which define a character.
func (op Opcode) IsDefinition() bool {
	return op >= Space && op <= LitDigit
}

// IsIndicator is true for indicator opcodes, including MultInd.
func (op Opcode) IsIndicator() bool {
	return op >= CapsLetter && op <= MultInd
}

// IsPass is true for opcodes carrying a pass program.
func (op Opcode) IsPass() bool {
	return op >= Correct && op <= Pass4
}

// IsSwap is true for swap rules.
func (op Opcode) IsSwap() bool {
	return op >= SwapCC && op <= SwapDD
}

// IsTranslation is true for opcodes whose matches count as the previous
// rule for adjacency decisions (large signs, joinable words). Spaces do not
// count.
func (op Opcode) IsTranslation() bool {
	return (op >= Always && op <= NoCont) || (op >= Punctuation && op <= LitDigit) || op == None
}

// IsContraction is true for opcodes which are suppressed in uncontracted
// forward translation.
func (op Opcode) IsContraction() bool {
	switch op {
	case Always, NoCross, RepWord, NoCont, LargeSign, WholeWord, PartWord,
		JoinNum, LowWord, JoinableWord, SuffixableWord, PrefixableWord, BegWord,
		BegMidWord, MidWord, MidEndWord, EndWord:
		return true
	}
	return false
}

// Pass returns the pass number of a pass opcode: 0 for corrections, 1 for
// context rules, 2–4 for generic passes. Other opcodes return -1.
func (op Opcode) Pass() int {
	switch op {
	case Correct:
		return 0
	case Context:
		return 1
	case Pass2:
		return 2
	case Pass3:
		return 3
	case Pass4:
		return 4
	}
	return -1
}

// definitionAttributes returns the character attributes implied by a
// definition opcode.
func definitionAttributes(op Opcode) braille.Attributes {
	switch op {
	case Space:
		return braille.Space
	case Punctuation:
		return braille.Punctuation
	case Digit:
		return braille.Digit
	case Letter:
		return braille.Letter
	case UpperCase:
		return braille.Letter | braille.UpperCase
	case LowerCase:
		return braille.Letter | braille.LowerCase
	case Math:
		return braille.Math
	case Sign:
		return braille.Sign
	case LitDigit:
		return braille.LitDigit
	}
	return 0
}
