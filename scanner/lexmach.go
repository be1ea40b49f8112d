package scanner

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/

import (
	"strings"
	"sync"

	"github.com/mwijesinghe/rpali"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

var lexerOnce sync.Once // monitors one-time DFA compilation
var lexer *lexmachine.Lexer
var lexerErr error

// buildLexer compiles the RPAL DFA. Rule order matters for equal-length
// matches: keywords are added before the identifier rule, terminated string
// rules before the unterminated fallbacks.
func buildLexer() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`//[^\n]*\n?`), skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	lexer.Add([]byte(`'[^'\n]*'`), makeToken(Str))
	lexer.Add([]byte(`"[^"\n]*"`), makeToken(Str))
	for kw, tt := range keywords {
		lexer.Add([]byte(kw), makeToken(tt))
	}
	lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), makeToken(Ident))
	lexer.Add([]byte(`[0-9]+`), makeToken(Integer))
	for _, op := range operators {
		r := "\\" + strings.Join(strings.Split(op.lexeme, ""), "\\")
		lexer.Add([]byte(r), makeToken(op.toktype))
	}
	lexer.Add([]byte(`'[^'\n]*`), unterminated)
	lexer.Add([]byte(`"[^"\n]*`), unterminated)
	lexerErr = lexer.Compile()
}

// skip is a lexmachine action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a lexmachine action which wraps a scanned match into a token.
func makeToken(tt rpali.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(tt), string(m.Bytes), m), nil
	}
}

// unterminated is a lexmachine action reporting a string literal that runs
// into a newline or the end of input.
func unterminated(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return nil, &LexicalError{
		Unterminated: true,
		Line:         m.StartLine,
		Col:          m.StartColumn,
		Text:         string(m.Bytes),
	}
}

// Scanner is a Tokenizer over one input text, backed by a lexmachine
// scanner.
type Scanner struct {
	scanner *lexmachine.Scanner
	pos     uint64
	Error   func(error)
}

var _ Tokenizer = (*Scanner)(nil)

// New creates a Scanner for a given input. Compiling the DFA happens once,
// on first use.
func New(input string) (*Scanner, error) {
	lexerOnce.Do(buildLexer)
	if lexerErr != nil {
		tracer().Errorf("error compiling DFA: %v", lexerErr)
		return nil, lexerErr
	}
	s, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s, Error: logError}, nil
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// SetErrorHandler sets an error handler for the scanner.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		sc.Error = logError
		return
	}
	sc.Error = h
}

// NextToken is part of the Tokenizer interface. Lexical errors are handed to
// the error handler. For unconsumable input the scanner then skips past the
// offending characters and carries on, so a handler that wants to abort
// records the error and discards the remaining tokens; any other error (an
// unterminated string, for one) ends the stream with an EOF token.
func (sc *Scanner) NextToken() rpali.Token {
	tok, err, eof := sc.scanner.Next()
	for err != nil {
		sc.Error(classify(err))
		if ui, is := err.(*machines.UnconsumedInput); is {
			if ui.FailTC > sc.scanner.TC {
				sc.scanner.TC = ui.FailTC
			} else {
				sc.scanner.TC++
			}
		} else {
			return rpalToken{kind: EOF}
		}
		tok, err, eof = sc.scanner.Next()
	}
	if eof {
		return rpalToken{kind: EOF, span: rpali.Span{sc.pos, sc.pos}}
	}
	token := tok.(*lexmachine.Token)
	sc.pos = uint64(token.TC + len(token.Lexeme))
	tracer().Debugf("token %d %q", token.Type, string(token.Lexeme))
	return rpalToken{
		kind:   rpali.TokType(token.Type),
		lexeme: string(token.Lexeme),
		span:   rpali.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		line:   token.StartLine,
		col:    token.StartColumn,
	}
}

// classify maps low-level scanner errors to LexicalError.
func classify(err error) error {
	if _, ok := err.(*LexicalError); ok {
		return err
	}
	if ui, ok := err.(*machines.UnconsumedInput); ok {
		text := ""
		if ui.FailTC <= len(ui.Text) && ui.StartTC < ui.FailTC {
			text = string(ui.Text[ui.StartTC:ui.FailTC])
		} else if ui.StartTC < len(ui.Text) {
			text = string(ui.Text[ui.StartTC : ui.StartTC+1])
		}
		return &LexicalError{
			Line: ui.StartLine,
			Col:  ui.StartColumn,
			Text: text,
		}
	}
	return err
}
