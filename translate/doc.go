/*
Package translate is the braille translation engine.

The engine interprets a compiled rule table (see package table). It translates
braille cells into text (BackTranslate) and text into braille cells
(Translate). Both directions share one architecture:

▪︎ A rule matcher selects, at every input position, the first admissible rule
from the rule chains of the table, falling back to a pseudo-rule which
escapes the current symbol.

▪︎ A pass interpreter evaluates the test programs of correction rules,
context rules and rules of the generic passes, and runs their actions.

▪︎ A pass sequencer runs the passes of a direction one after another. Every pass
reads the complete output of its predecessor. Back-translation runs the
passes from the highest pass down to the correction pass, forward
translation runs them the other way round.

▪︎ A position tracker maps every output symbol to the input symbol it stems
from, and moves a caller-supplied cursor from input to output coordinates.

Translations are synchronous and keep all of their state in a per-call
object. Tables may be shared between goroutines; scratch buffers are drawn
from a pool.

Output buffers are supplied by the caller. If a buffer turns out to be too
small, the translation fails with braille.ErrOutputTooSmall and reports a
result consistent up to the last complete word. Callers retry with a larger
buffer, as package translator does.

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
package translate

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
