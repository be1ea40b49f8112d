/*
Command rpali runs the RPAL interpreter.

	rpali [-ast] [-st] [-trace LEVEL] <file>
	rpali -i

With -ast the command prints the abstract syntax tree of the program and
exits; with -st the standardized tree. With neither it runs the full
pipeline and prints the program's value. -i starts an interactive
read-eval-print loop.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rpali.cli'.
func tracer() tracing.Trace {
	return tracing.Select("rpali.cli")
}
