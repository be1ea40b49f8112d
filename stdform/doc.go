/*
Package stdform rewrites an RPAL AST into its standard form.

The standardizer walks the tree in post-order, so every rewrite sees
already-standardized subtrees. Surface constructs ('let', 'where', 'within',
'rec', 'and', 'function_form', multi-parameter 'fn', infix '@') collapse
into a small set of combinators: 'gamma', 'lambda', '=', 'Y', 'tau' and
','. A node whose shape does not match the pattern for its tag passes
through unchanged, with a diagnostic recorded; the CSE machine will then
refuse to evaluate the leftover tag.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package stdform

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rpali.stdform'.
func tracer() tracing.Trace {
	return tracing.Select("rpali.stdform")
}
