package scanner

import (
	"fmt"

	"github.com/mwijesinghe/rpali"
)

// Token categories for RPAL. Every keyword and operator symbol gets its own
// category, so the parser never has to inspect lexemes.
const (
	EOF rpali.TokType = iota
	Ident
	Integer
	Str
	Let
	In
	Fn
	Where
	True
	False
	Nil
	Dummy
	Within
	Rec
	Aug
	Or
	And
	Not
	Gr
	Ge
	Ls
	Le
	Eq
	Ne
	Plus
	Minus
	Star
	Slash
	Power
	Equals
	Arrow
	Bar
	Amp
	At
	Comma
	Dot
	Lparen
	Rparen
)

// The keyword tokens
var keywords = map[string]rpali.TokType{
	"let":    Let,
	"in":     In,
	"fn":     Fn,
	"where":  Where,
	"true":   True,
	"false":  False,
	"nil":    Nil,
	"dummy":  Dummy,
	"within": Within,
	"rec":    Rec,
	"aug":    Aug,
	"or":     Or,
	"and":    And,
	"not":    Not,
	"gr":     Gr,
	"ge":     Ge,
	"ls":     Ls,
	"le":     Le,
	"eq":     Eq,
	"ne":     Ne,
}

// The operator tokens; multi-character lexemes first, so the literal rules
// are added to the DFA in an order where longest-match settles ties.
var operators = []struct {
	lexeme  string
	toktype rpali.TokType
}{
	{"->", Arrow},
	{"**", Power},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"=", Equals},
	{"|", Bar},
	{"&", Amp},
	{"@", At},
	{",", Comma},
	{".", Dot},
	{"(", Lparen},
	{")", Rparen},
}

var typeNames = map[rpali.TokType]string{
	EOF:     "end of input",
	Ident:   "identifier",
	Integer: "integer",
	Str:     "string",
}

// TypeString returns a printable name for a token category. It implements
// rpali.TokTypeStringer.
func TypeString(tt rpali.TokType) string {
	if nm, ok := typeNames[tt]; ok {
		return nm
	}
	for kw, t := range keywords {
		if t == tt {
			return "'" + kw + "'"
		}
	}
	for _, op := range operators {
		if op.toktype == tt {
			return "'" + op.lexeme + "'"
		}
	}
	return fmt.Sprintf("token(%d)", tt)
}

// Tokenizer is a scanner interface: a stream of tokens, terminated by an
// EOF token.
type Tokenizer interface {
	NextToken() rpali.Token
	SetErrorHandler(func(error))
}

// Tokenize scans a complete RPAL source text into a token sequence. The
// returned slice ends with an EOF token. The first lexical error aborts the
// scan.
func Tokenize(input string) ([]rpali.Token, error) {
	sc, err := New(input)
	if err != nil {
		return nil, err
	}
	var lexErr error
	sc.SetErrorHandler(func(e error) {
		if lexErr == nil {
			lexErr = e
		}
	})
	var toks []rpali.Token
	for {
		tok := sc.NextToken()
		if lexErr != nil {
			return nil, lexErr
		}
		toks = append(toks, tok)
		if tok.TokType() == EOF {
			return toks, nil
		}
	}
}

// --- Lexical errors --------------------------------------------------------

// A LexicalError is either an unterminated string literal or a character the
// scanner cannot make sense of.
type LexicalError struct {
	Unterminated bool
	Line, Col    int
	Text         string
}

func (e *LexicalError) Error() string {
	if e.Unterminated {
		return fmt.Sprintf("unterminated string at line %d, column %d", e.Line, e.Col)
	}
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Text, e.Line, e.Col)
}

// --- Tokens ----------------------------------------------------------------

type rpalToken struct {
	kind      rpali.TokType
	lexeme    string
	span      rpali.Span
	line, col int
}

var _ rpali.Token = rpalToken{}

func (t rpalToken) TokType() rpali.TokType {
	return t.kind
}

func (t rpalToken) Lexeme() string {
	return t.lexeme
}

func (t rpalToken) Span() rpali.Span {
	return t.span
}

func (t rpalToken) Pos() (int, int) {
	return t.line, t.col
}

func (t rpalToken) String() string {
	return fmt.Sprintf("%s %q", TypeString(t.kind), t.lexeme)
}
