package rpali

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. The scanner package defines the
// concrete categories for RPAL; keeping the type here decouples the parser
// from the scanner implementation.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by a scanner and
// reflect terminals of the RPAL language.
//
// An example would be a token for an integer literal:
//
//    TokType = Integer     // identifier for this kind of tokens
//    Lexeme  = "512"       // lexeme how it appeared in the input stream
//    Span    = 67…70       // occurred from position 67 in the input stream
//
// Line and column are tracked for diagnostics; syntax errors are reported
// in terms of them.
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
	Pos() (line, col int)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
