/*
Package cse evaluates standardized RPAL trees on a CSE machine.

CSE stands for Control-Stack-Environment. The standardized tree is first
flattened into numbered control structures ("deltas"); evaluation then
repeatedly matches rules over a triple of control stack, value stack and
environment stack until the control stack drains, leaving the program's
result as the single surviving value.

Closures carry a delta id rather than a tree reference; recursion is
realized by a two-step eta/lambda unfolding of the fixed-point combinator
instead of substitution.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package cse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rpali.cse'.
func tracer() tracing.Trace {
	return tracing.Select("rpali.cse")
}
