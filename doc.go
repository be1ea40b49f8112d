/*
Package rpali is an interpreter for the RPAL functional language.

RPAL programs are reduced to a value by a CSE (Control-Stack-Environment)
abstract machine. The pipeline is strictly one-way: tokens → AST →
standardized tree → result. Package structure is as follows:

■ scanner: Package scanner tokenizes RPAL source text, backed by a
lexmachine DFA.

■ syntree: Package syntree provides the first-child/next-sibling tree node
shared by the AST and the standardized tree.

■ parse: Package parse implements an LL recursive-descent parser, producing
an AST from a token sequence.

■ stdform: Package stdform rewrites the AST into its standard form, built
from a small set of combinators (gamma, lambda, Y, =, tau).

■ cse: Package cse flattens the standardized tree into control structures
and evaluates them on the CSE machine.

The base package contains the token data types which the scanner and the
parser share.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/
package rpali
