package table

import (
	"fmt"

	"github.com/npillmayer/braille"
)

// InstrKind is the kind of a pass program instruction.
type InstrKind uint8

// Test instructions.
const (
	IFirst        InstrKind = iota + 1 // match only at the start of input
	ILast                              // match only at the end of input
	ILookback                          // move the trial position back by N
	INot                               // negate the next instruction
	ILiteral                           // match Symbols verbatim
	IStartReplace                      // start of the replacement span
	IEndReplace                        // end of the replacement span
	IAttrRun                           // Min to Max symbols with attributes Attrs
	ISwapRun                           // Min to Max symbols of swap rule Swap
	IVarTest                           // compare pass variable Var to Value
	IEndTest                           // end of the test part
)

// Action instructions.
const (
	AEmit   InstrKind = iota + IEndTest + 1 // emit Symbols
	ASwap                                   // substitute the replacement span by swap rule Swap
	AOmit                                   // drop the replacement span
	ACopy                                   // copy the replacement span verbatim
	AVarSet                                 // set pass variable Var to Value
	AVarInc                                 // increment pass variable Var
	AVarDec                                 // decrement pass variable Var
)

// Cmp is a comparison of a pass variable.
type Cmp uint8

// Comparisons for IVarTest.
const (
	Eq Cmp = iota
	Lt
	Gt
	LtEq
	GtEq
)

// NumPassVariables is the number of pass variables available to pass programs.
const NumPassVariables = 50

// Instruction is a single instruction of a pass program. Which fields are
// significant depends on Kind.
type Instruction struct {
	Kind    InstrKind
	N       int                // look-back distance
	Symbols []rune             // literal characters or cells
	Attrs   braille.Attributes // attribute mask of an attribute run
	Min     int                // minimum run length
	Max     int                // maximum run length
	Swap    RuleID             // swap rule
	Var     int                // pass variable
	Cmp     Cmp                // comparison of a variable test
	Value   int                // comparison or assignment value
}

// Program is a sequence of pass instructions, interpreted left to right.
type Program []Instruction

func (instr Instruction) String() string {
	switch instr.Kind {
	case IFirst:
		return "first"
	case ILast:
		return "last"
	case ILookback:
		return fmt.Sprintf("lookback(%d)", instr.N)
	case INot:
		return "not"
	case ILiteral:
		return fmt.Sprintf("literal(%q)", string(instr.Symbols))
	case IStartReplace:
		return "["
	case IEndReplace:
		return "]"
	case IAttrRun:
		return fmt.Sprintf("attr(%s,%d..%d)", instr.Attrs, instr.Min, instr.Max)
	case ISwapRun:
		return fmt.Sprintf("swap(#%d,%d..%d)", instr.Swap, instr.Min, instr.Max)
	case IVarTest:
		return fmt.Sprintf("var#%d cmp%d %d", instr.Var, instr.Cmp, instr.Value)
	case IEndTest:
		return "endtest"
	case AEmit:
		return fmt.Sprintf("emit(%q)", string(instr.Symbols))
	case ASwap:
		return fmt.Sprintf("swap(#%d)", instr.Swap)
	case AOmit:
		return "omit"
	case ACopy:
		return "copy"
	case AVarSet:
		return fmt.Sprintf("var#%d=%d", instr.Var, instr.Value)
	case AVarInc:
		return fmt.Sprintf("var#%d++", instr.Var)
	case AVarDec:
		return fmt.Sprintf("var#%d--", instr.Var)
	}
	return fmt.Sprintf("instr(%d)", instr.Kind)
}

// --- Program construction --------------------------------------------------

// First anchors a test to the start of the input.
func First() Instruction { return Instruction{Kind: IFirst} }

// Last anchors a test to the end of the input.
func Last() Instruction { return Instruction{Kind: ILast} }

// Lookback moves the trial position n symbols back.
func Lookback(n int) Instruction { return Instruction{Kind: ILookback, N: n} }

// Not negates the instruction following it.
func Not() Instruction { return Instruction{Kind: INot} }

// Match tests for a verbatim sequence of symbols.
func Match(symbols ...rune) Instruction {
	return Instruction{Kind: ILiteral, Symbols: symbols}
}

// StartReplace marks the start of the replacement span.
func StartReplace() Instruction { return Instruction{Kind: IStartReplace} }

// EndReplace marks the end of the replacement span.
func EndReplace() Instruction { return Instruction{Kind: IEndReplace} }

// AttrRun tests for min to max symbols having any of the attributes in mask.
func AttrRun(mask braille.Attributes, min, max int) Instruction {
	return Instruction{Kind: IAttrRun, Attrs: mask, Min: min, Max: max}
}

// SwapRun tests for min to max symbols being keys of a swap rule.
func SwapRun(swap RuleID, min, max int) Instruction {
	return Instruction{Kind: ISwapRun, Swap: swap, Min: min, Max: max}
}

// VarTest compares pass variable v with value.
func VarTest(v int, cmp Cmp, value int) Instruction {
	return Instruction{Kind: IVarTest, Var: v, Cmp: cmp, Value: value}
}

// EndTest ends the test part of a program. It is optional at the end of a
// test program.
func EndTest() Instruction { return Instruction{Kind: IEndTest} }

// Emit outputs a sequence of symbols.
func Emit(symbols ...rune) Instruction {
	return Instruction{Kind: AEmit, Symbols: symbols}
}

// SwapOut replaces the replacement span using swap rule swap.
func SwapOut(swap RuleID) Instruction { return Instruction{Kind: ASwap, Swap: swap} }

// Omit drops the replacement span.
func Omit() Instruction { return Instruction{Kind: AOmit} }

// Copy copies the replacement span to the output.
func Copy() Instruction { return Instruction{Kind: ACopy} }

// VarSet sets pass variable v to value.
func VarSet(v, value int) Instruction { return Instruction{Kind: AVarSet, Var: v, Value: value} }

// VarInc increments pass variable v.
func VarInc(v int) Instruction { return Instruction{Kind: AVarInc, Var: v} }

// VarDec decrements pass variable v.
func VarDec(v int) Instruction { return Instruction{Kind: AVarDec, Var: v} }

// validate checks the structural sanity of a program against table t.
func (p Program) validate(t *Table) error {
	for i, instr := range p {
		switch instr.Kind {
		case ILookback:
			if instr.N < 0 {
				return fmt.Errorf("instruction %d: negative look-back: %w", i, braille.ErrMalformedProgram)
			}
		case ILiteral:
			if len(instr.Symbols) == 0 {
				return fmt.Errorf("instruction %d: empty literal: %w", i, braille.ErrMalformedProgram)
			}
		case IAttrRun, ISwapRun:
			if instr.Min < 0 || instr.Max < instr.Min {
				return fmt.Errorf("instruction %d: invalid run length %d..%d: %w", i,
					instr.Min, instr.Max, braille.ErrMalformedProgram)
			}
		case IVarTest, AVarSet, AVarInc, AVarDec:
			if instr.Var < 0 || instr.Var >= NumPassVariables {
				return fmt.Errorf("instruction %d: no pass variable %d: %w", i, instr.Var,
					braille.ErrMalformedProgram)
			}
		}
		if instr.Kind == ISwapRun || instr.Kind == ASwap {
			if r := t.Rule(instr.Swap); r == nil || !r.Opcode.IsSwap() {
				return fmt.Errorf("instruction %d: rule #%d is not a swap rule: %w", i,
					instr.Swap, braille.ErrMalformedProgram)
			}
		}
	}
	return nil
}
