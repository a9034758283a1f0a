/*
Package braille is about rule-based braille transliteration.

Description

Braille tables for literary braille are not simple substitution tables.
Contracted braille ("grade 2") replaces whole words or word fragments by
short cell sequences, and whether a contraction may be used depends on the
surrounding text: a contraction valid at the start of a word may be invalid in
the middle of it, numbers need a number sign, capital letters need a capital
sign, and some signs must never be followed by a space. Translating text into
braille and braille back into text therefore is an interpreter over a
compiled rule table.

Base package braille provides the vocabulary shared by the sub-packages:
symbols (text characters and braille cells), character attributes, mode
flags, dot notation and the error values callers may test for.

BSD License

Copyright (c) 2021, Norbert Pillmayer

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
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRETC, INDIRETC, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRATC, STRITC LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

Contents

The compiled rule table lives in sub-package table. It is immutable once built
and may be shared between goroutines. The translation engine is in
sub-package translate; it offers forward translation (text to braille) and
back-translation (braille to text), both producing a bidirectional position
mapping and tracking a cursor through all passes.

Sub-package catalog resolves table identifiers and locales to tables,
sub-package translator drives the engine with growing output buffers, and
sub-package brailletext adapts translation to golang.org/x/text/transform.

Symbols

Symbols are runes. A text character is its Unicode code point. A braille cell
is a bitmask of dots 1 to 8 (B1…B8), with additional dots B9…B15 for tables
which need them, and bit B16 set to mark the rune as a cell. The two
representations are never mixed within one buffer.
*/
package braille

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
