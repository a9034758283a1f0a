/*
Package catalog keeps the list of braille tables available to an application.

A catalog is created from table metadata (type Info), usually parsed from a
table list:

    <table-list>
      <table id="en-us-g2" locale="en_US" grade="2" fileName="en-us-g2.ctb"/>
      <table id="en-us-comp8" locale="en_US" dots="8" fileName="en-us-comp8.ctb"/>
    </table-list>

A table is either a literary table with 6 dots and a contraction grade, or a
computer braille table with 8 dots and no grade. A 6 dot table without a
grade is of grade 1.

Tables are loaded lazily, on first use, through a Loader supplied by the
client, and are shared afterwards. Clients may look up tables by id or ask for
the table best matching a language.

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
package catalog

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'braille.catalog'.
func tracer() tracing.Trace {
	return tracing.Select("braille.catalog")
}
