/*
Package parse implements the RPAL parser.

The parser is a straightforward LL recursive-descent walk over the token
sequence, one function per grammar production. Tree building follows the
usual stack discipline: productions push leaf nodes, and a reduction pops
the n topmost nodes and chains them as children of a fresh internal node.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rpali.parse'.
func tracer() tracing.Trace {
	return tracing.Select("rpali.parse")
}
