package parse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Malith Wijesinghe <malith.wijesinghe@gmail.com>

*/

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/mwijesinghe/rpali"
	"github.com/mwijesinghe/rpali/scanner"
	"github.com/mwijesinghe/rpali/syntree"
)

// SyntaxError reports the offending token together with its position.
type SyntaxError struct {
	Line, Col int
	Found     string
	Expected  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s",
		e.Line, e.Col, e.Expected, e.Found)
}

// Parser consumes a token sequence and builds an AST.
type Parser struct {
	toks  []rpali.Token
	pos   int
	nodes *arraystack.Stack // of *syntree.Node
}

// New creates a parser over a token sequence (as produced by
// scanner.Tokenize, i.e. terminated by an EOF token).
func New(toks []rpali.Token) *Parser {
	return &Parser{toks: toks, nodes: arraystack.New()}
}

// Parse runs the parser and returns the AST root.
func Parse(toks []rpali.Token) (*syntree.Node, error) {
	return New(toks).Parse()
}

// Parse parses the token sequence as an RPAL expression.
func (p *Parser) Parse() (*syntree.Node, error) {
	if len(p.toks) == 0 {
		return nil, &SyntaxError{Line: 1, Col: 1, Found: "end of input", Expected: "an expression"}
	}
	if p.peek().TokType() == scanner.EOF {
		return nil, p.expected("an expression")
	}
	if err := p.parseE(); err != nil {
		return nil, err
	}
	if p.peek().TokType() != scanner.EOF {
		return nil, p.expected("end of input")
	}
	if p.nodes.Size() != 1 {
		return nil, fmt.Errorf("parser imbalance: %d nodes left on stack", p.nodes.Size())
	}
	root := p.popNode()
	tracer().Debugf("AST =\n%s", root.DotString())
	return root, nil
}

// --- Token cursor ----------------------------------------------------------

func (p *Parser) peek() rpali.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return p.toks[len(p.toks)-1] // trailing EOF
}

// ahead peeks k tokens past the cursor.
func (p *Parser) ahead(k int) rpali.Token {
	if p.pos+k < len(p.toks) {
		return p.toks[p.pos+k]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(tt rpali.TokType) bool {
	return p.peek().TokType() == tt
}

func (p *Parser) advance() rpali.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) accept(tt rpali.TokType) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt rpali.TokType) (rpali.Token, error) {
	if !p.at(tt) {
		return nil, p.expected(scanner.TypeString(tt))
	}
	return p.advance(), nil
}

func (p *Parser) expected(what string) error {
	tok := p.peek()
	line, col := tok.Pos()
	found := tok.Lexeme()
	if tok.TokType() == scanner.EOF {
		found = "end of input"
	} else {
		found = fmt.Sprintf("%q", found)
	}
	return &SyntaxError{Line: line, Col: col, Found: found, Expected: what}
}

// --- Tree building ---------------------------------------------------------

// build pops the n topmost nodes and pushes a fresh internal node having
// them as children, leftmost child deepest on the stack.
func (p *Parser) build(tag string, n int) {
	kids := make([]*syntree.Node, n)
	for i := n - 1; i >= 0; i-- {
		kids[i] = p.popNode()
	}
	p.nodes.Push(syntree.NewOp(tag, kids...))
}

func (p *Parser) popNode() *syntree.Node {
	v, ok := p.nodes.Pop()
	if !ok {
		panic("parse: node stack underflow")
	}
	return v.(*syntree.Node)
}

func (p *Parser) pushLeaf(n *syntree.Node) {
	p.nodes.Push(n)
}

// --- Expressions -----------------------------------------------------------

// E -> 'let' D 'in' E   => 'let'
//   -> 'fn' Vb+ '.' E   => 'lambda'
//   -> Ew
func (p *Parser) parseE() error {
	switch p.peek().TokType() {
	case scanner.Let:
		p.advance()
		if err := p.parseD(); err != nil {
			return err
		}
		if _, err := p.expect(scanner.In); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		p.build("let", 2)
		return nil
	case scanner.Fn:
		p.advance()
		n := 0
		for p.at(scanner.Ident) || p.at(scanner.Lparen) {
			if err := p.parseVb(); err != nil {
				return err
			}
			n++
		}
		if n == 0 {
			return p.expected("a function parameter")
		}
		if _, err := p.expect(scanner.Dot); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		p.build("lambda", n+1)
		return nil
	}
	return p.parseEw()
}

// Ew -> T 'where' Dr    => 'where'
//    -> T
func (p *Parser) parseEw() error {
	if err := p.parseT(); err != nil {
		return err
	}
	if p.accept(scanner.Where) {
		if err := p.parseDr(); err != nil {
			return err
		}
		p.build("where", 2)
	}
	return nil
}

// T -> Ta ( ',' Ta )+   => 'tau'
//   -> Ta
func (p *Parser) parseT() error {
	if err := p.parseTa(); err != nil {
		return err
	}
	n := 1
	for p.accept(scanner.Comma) {
		if err := p.parseTa(); err != nil {
			return err
		}
		n++
	}
	if n > 1 {
		p.build("tau", n)
	}
	return nil
}

// Ta -> Ta 'aug' Tc     => 'aug'
//    -> Tc
func (p *Parser) parseTa() error {
	if err := p.parseTc(); err != nil {
		return err
	}
	for p.accept(scanner.Aug) {
		if err := p.parseTc(); err != nil {
			return err
		}
		p.build("aug", 2)
	}
	return nil
}

// Tc -> B '->' Tc '|' Tc  => '->'
//    -> B
func (p *Parser) parseTc() error {
	if err := p.parseB(); err != nil {
		return err
	}
	if p.accept(scanner.Arrow) {
		if err := p.parseTc(); err != nil {
			return err
		}
		if _, err := p.expect(scanner.Bar); err != nil {
			return err
		}
		if err := p.parseTc(); err != nil {
			return err
		}
		p.build("->", 3)
	}
	return nil
}

// B -> B 'or' Bt        => 'or'
//   -> Bt
func (p *Parser) parseB() error {
	if err := p.parseBt(); err != nil {
		return err
	}
	for p.accept(scanner.Or) {
		if err := p.parseBt(); err != nil {
			return err
		}
		p.build("or", 2)
	}
	return nil
}

// Bt -> Bt '&' Bs       => '&'
//    -> Bs
func (p *Parser) parseBt() error {
	if err := p.parseBs(); err != nil {
		return err
	}
	for p.accept(scanner.Amp) {
		if err := p.parseBs(); err != nil {
			return err
		}
		p.build("&", 2)
	}
	return nil
}

// Bs -> 'not' Bp        => 'not'
//    -> Bp
func (p *Parser) parseBs() error {
	if p.accept(scanner.Not) {
		if err := p.parseBp(); err != nil {
			return err
		}
		p.build("not", 1)
		return nil
	}
	return p.parseBp()
}

var comparisons = map[rpali.TokType]string{
	scanner.Gr: "gr",
	scanner.Ge: "ge",
	scanner.Ls: "ls",
	scanner.Le: "le",
	scanner.Eq: "eq",
	scanner.Ne: "ne",
}

// Bp -> A ('gr'|'ge'|'ls'|'le'|'eq'|'ne') A
//    -> A
func (p *Parser) parseBp() error {
	if err := p.parseA(); err != nil {
		return err
	}
	if tag, ok := comparisons[p.peek().TokType()]; ok {
		p.advance()
		if err := p.parseA(); err != nil {
			return err
		}
		p.build(tag, 2)
	}
	return nil
}

// A -> A '+' At | A '-' At | '+' At | '-' At => 'neg' | At
func (p *Parser) parseA() error {
	if p.accept(scanner.Plus) {
		if err := p.parseAt(); err != nil {
			return err
		}
	} else if p.accept(scanner.Minus) {
		if err := p.parseAt(); err != nil {
			return err
		}
		p.build("neg", 1)
	} else {
		if err := p.parseAt(); err != nil {
			return err
		}
	}
	for p.at(scanner.Plus) || p.at(scanner.Minus) {
		tag := "+"
		if p.advance().TokType() == scanner.Minus {
			tag = "-"
		}
		if err := p.parseAt(); err != nil {
			return err
		}
		p.build(tag, 2)
	}
	return nil
}

// At -> At '*' Af | At '/' Af | Af
func (p *Parser) parseAt() error {
	if err := p.parseAf(); err != nil {
		return err
	}
	for p.at(scanner.Star) || p.at(scanner.Slash) {
		tag := "*"
		if p.advance().TokType() == scanner.Slash {
			tag = "/"
		}
		if err := p.parseAf(); err != nil {
			return err
		}
		p.build(tag, 2)
	}
	return nil
}

// Af -> Ap '**' Af      => '**' (right-associative)
//    -> Ap
func (p *Parser) parseAf() error {
	if err := p.parseAp(); err != nil {
		return err
	}
	if p.accept(scanner.Power) {
		if err := p.parseAf(); err != nil {
			return err
		}
		p.build("**", 2)
	}
	return nil
}

// Ap -> Ap '@' IDENT R  => '@'
//    -> R
func (p *Parser) parseAp() error {
	if err := p.parseR(); err != nil {
		return err
	}
	for p.accept(scanner.At) {
		name, err := p.expect(scanner.Ident)
		if err != nil {
			return err
		}
		p.pushLeaf(syntree.NewIdent(name.Lexeme()))
		if err := p.parseR(); err != nil {
			return err
		}
		p.build("@", 3)
	}
	return nil
}

// R -> R Rn             => 'gamma'
//   -> Rn
func (p *Parser) parseR() error {
	if err := p.parseRn(); err != nil {
		return err
	}
	for startsRn(p.peek().TokType()) {
		if err := p.parseRn(); err != nil {
			return err
		}
		p.build("gamma", 2)
	}
	return nil
}

func startsRn(tt rpali.TokType) bool {
	switch tt {
	case scanner.Ident, scanner.Integer, scanner.Str,
		scanner.True, scanner.False, scanner.Nil, scanner.Dummy,
		scanner.Lparen:
		return true
	}
	return false
}

// Rn -> IDENT | INTEGER | STRING
//    -> 'true' | 'false' | 'nil' | 'dummy'
//    -> '(' E ')'
func (p *Parser) parseRn() error {
	tok := p.peek()
	switch tok.TokType() {
	case scanner.Ident:
		p.advance()
		p.pushLeaf(syntree.NewIdent(tok.Lexeme()))
	case scanner.Integer:
		p.advance()
		p.pushLeaf(syntree.NewInt(tok.Lexeme()))
	case scanner.Str:
		p.advance()
		p.pushLeaf(syntree.NewString(stripQuotes(tok.Lexeme())))
	case scanner.True:
		p.advance()
		p.build("true", 0)
	case scanner.False:
		p.advance()
		p.build("false", 0)
	case scanner.Nil:
		p.advance()
		p.build("nil", 0)
	case scanner.Dummy:
		p.advance()
		p.build("dummy", 0)
	case scanner.Lparen:
		p.advance()
		if err := p.parseE(); err != nil {
			return err
		}
		if _, err := p.expect(scanner.Rparen); err != nil {
			return err
		}
	default:
		return p.expected("an expression")
	}
	return nil
}

// --- Definitions -----------------------------------------------------------

// D -> Da 'within' D    => 'within'
//   -> Da
func (p *Parser) parseD() error {
	if err := p.parseDa(); err != nil {
		return err
	}
	if p.accept(scanner.Within) {
		if err := p.parseD(); err != nil {
			return err
		}
		p.build("within", 2)
	}
	return nil
}

// Da -> Dr ( 'and' Dr )+  => 'and'
//    -> Dr
func (p *Parser) parseDa() error {
	if err := p.parseDr(); err != nil {
		return err
	}
	n := 1
	for p.accept(scanner.And) {
		if err := p.parseDr(); err != nil {
			return err
		}
		n++
	}
	if n > 1 {
		p.build("and", n)
	}
	return nil
}

// Dr -> 'rec' Db        => 'rec'
//    -> Db
func (p *Parser) parseDr() error {
	if p.accept(scanner.Rec) {
		if err := p.parseDb(); err != nil {
			return err
		}
		p.build("rec", 1)
		return nil
	}
	return p.parseDb()
}

// Db -> Vl '=' E        => '='
//    -> IDENT Vb+ '=' E => 'function_form'
//    -> '(' D ')'
func (p *Parser) parseDb() error {
	if p.accept(scanner.Lparen) {
		if err := p.parseD(); err != nil {
			return err
		}
		_, err := p.expect(scanner.Rparen)
		return err
	}
	if !p.at(scanner.Ident) {
		return p.expected("a definition")
	}
	// one token of lookahead past the identifier decides the alternative
	switch p.ahead(1).TokType() {
	case scanner.Comma:
		if err := p.parseVl(); err != nil {
			return err
		}
		if _, err := p.expect(scanner.Equals); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		p.build("=", 2)
	case scanner.Equals:
		name := p.advance()
		p.pushLeaf(syntree.NewIdent(name.Lexeme()))
		p.advance() // '='
		if err := p.parseE(); err != nil {
			return err
		}
		p.build("=", 2)
	default:
		name := p.advance()
		p.pushLeaf(syntree.NewIdent(name.Lexeme()))
		n := 0
		for p.at(scanner.Ident) || p.at(scanner.Lparen) {
			if err := p.parseVb(); err != nil {
				return err
			}
			n++
		}
		if n == 0 {
			return p.expected("function parameters or '='")
		}
		if _, err := p.expect(scanner.Equals); err != nil {
			return err
		}
		if err := p.parseE(); err != nil {
			return err
		}
		p.build("function_form", n+2)
	}
	return nil
}

// --- Variables -------------------------------------------------------------

// Vb -> IDENT
//    -> '(' Vl ')'
//    -> '(' ')'         => '()'
func (p *Parser) parseVb() error {
	if p.at(scanner.Ident) {
		tok := p.advance()
		p.pushLeaf(syntree.NewIdent(tok.Lexeme()))
		return nil
	}
	if _, err := p.expect(scanner.Lparen); err != nil {
		return err
	}
	if p.accept(scanner.Rparen) {
		p.build("()", 0)
		return nil
	}
	if err := p.parseVl(); err != nil {
		return err
	}
	_, err := p.expect(scanner.Rparen)
	return err
}

// Vl -> IDENT ( ',' IDENT )+  => ','
//    -> IDENT
func (p *Parser) parseVl() error {
	tok, err := p.expect(scanner.Ident)
	if err != nil {
		return err
	}
	p.pushLeaf(syntree.NewIdent(tok.Lexeme()))
	n := 1
	for p.accept(scanner.Comma) {
		tok, err = p.expect(scanner.Ident)
		if err != nil {
			return err
		}
		p.pushLeaf(syntree.NewIdent(tok.Lexeme()))
		n++
	}
	if n > 1 {
		p.build(",", n)
	}
	return nil
}

func stripQuotes(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
