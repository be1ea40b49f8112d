/*
Package syntree provides the tree node shared by the parser's AST and the
standardizer's output.

Nodes form a first-child/next-sibling tree: a single node type with two
optional links represents an n-ary tree uniformly. This makes tree walking
and tree restructuring easy, at the price of some bookkeeping when
rewriting sibling chains.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package syntree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rpali.syntree'.
func tracer() tracing.Trace {
	return tracing.Select("rpali.syntree")
}
