/*
Package table holds compiled braille rule tables.

A table consists of character and cell records, translation rules,
indicators, pass programs and swap rules. Rules are addressed by RuleID
within a single arena; chains of rules are threaded through the arena by
index, never by pointer. A table is immutable once built and may be shared
between any number of concurrent translations.

Tables are created with a Builder:

    b := table.NewBuilder("en-demo")
    b.UpLow('T', 't', braille.B2|braille.B3|braille.B4|braille.B5)
    b.Define(table.Space, ' ', braille.BlankCell)
    b.Add(table.WholeWord, "the", braille.Cells("2346"))
    t, err := b.Build()

Parsing table source files is out of scope for this package.

Pass programs

Correction rules, context rules and the rules of the generic passes 2 to 4
carry a test program and an action program. Programs are slices of
Instruction, see the constructors First, Last, Lookback, Not, Match,
StartReplace, EndReplace, AttrRun, SwapRun and VarTest for tests and Emit,
SwapOut, Omit, Copy, VarSet, VarInc and VarDec for actions.

___________________________________________________________________________

BSD License

Copyright © 2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package table

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
