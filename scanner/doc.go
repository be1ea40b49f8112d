/*
Package scanner tokenizes RPAL source text.

The scanner is backed by a lexmachine DFA. Keywords, operator symbols and
literal lexemes each map to their own token category, so the parser can
dispatch on categories alone. Comments ('//' to end-of-line) and whitespace
are skipped. String lexemes keep their surrounding quotes; both single and
double quotes are accepted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rpali.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("rpali.scanner")
}
