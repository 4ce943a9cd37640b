// File: checker.go
// Title: SFL Recognizer and Type Checker
// Description: Single-pass recursive descent recognizer for the
//              Start-Finish language. Grammar validation and type inference
//              run together over the token sequence; the first violation
//              aborts the check. No syntax tree is built.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-04
//
// Change History:
// - 2025-02-04 v0.1.0: Initial recognizer implementation

package checker

import (
	"fmt"
	"maps"

	"github.com/msto63/sfl/foundation/sfl/lexer"
)

// Recognizer holds the state of one check: cursor, symbol table, the
// pending declaration type and the expression type accumulator.
// A Recognizer is not safe for concurrent use.
type Recognizer struct {
	tokens   []lexer.Token
	pos      int
	symbols  map[string]Type
	pending  Type
	exprType Type
}

// New creates a recognizer over tokens. The slice is never modified.
func New(tokens []lexer.Token) *Recognizer {
	return &Recognizer{
		tokens:  tokens,
		symbols: make(map[string]Type),
	}
}

// Check is shorthand for New(tokens).Check()
func Check(tokens []lexer.Token) error {
	return New(tokens).Check()
}

// Check recognizes the whole token sequence as a program. It returns nil
// when the program is well-formed and type-correct, otherwise an *Error
// describing the first violation. Each call starts from a fresh state.
func (r *Recognizer) Check() error {
	r.pos = 0
	r.symbols = make(map[string]Type)
	r.pending = Integer
	r.exprType = Integer

	return r.program()
}

// Symbols returns a copy of the symbol table as left by the last Check
func (r *Recognizer) Symbols() map[string]Type {
	return maps.Clone(r.symbols)
}

// Position returns the cursor as left by the last Check
func (r *Recognizer) Position() int {
	return r.pos
}

// Program ::= 'start' Declarations Statements 'finish' END
func (r *Recognizer) program() error {
	if err := r.expect(lexer.Start); err != nil {
		return err
	}
	if err := r.declarations(); err != nil {
		return err
	}
	if err := r.statements(); err != nil {
		return err
	}
	if err := r.expect(lexer.Finish); err != nil {
		return err
	}
	return r.expectEnd()
}

// Declarations ::= (Declaration ';')*
func (r *Recognizer) declarations() error {
	for lexer.IsTypeKeyword(r.peek()) {
		if err := r.declaration(); err != nil {
			return err
		}
		if err := r.expect(lexer.Semicolon); err != nil {
			return err
		}
	}
	return nil
}

// Declaration ::= TypeKeyword Identifier (',' Identifier)*
func (r *Recognizer) declaration() error {
	keyword, _ := r.advance()
	r.pending, _ = typeOf(keyword.Value)

	if err := r.identifier(); err != nil {
		return err
	}
	for r.peek() == lexer.Comma {
		r.advance()
		if err := r.identifier(); err != nil {
			return err
		}
	}
	return nil
}

// identifier declares the next token under the pending type. The table is
// written before the checks run, so a redeclaration replaces the old type
// even though the check fails.
func (r *Recognizer) identifier() error {
	tok, ok := r.advance()
	if !ok {
		return r.eof("identifier")
	}

	_, existed := r.symbols[tok.Value]
	r.symbols[tok.Value] = r.pending

	if !lexer.IsIdentifier(tok.Value) || lexer.IsKeyword(tok.Value) {
		return r.failAt(KindUnexpectedToken, r.pos-1, "expected identifier, got %q", tok.Value)
	}
	if existed {
		return r.failAt(KindRedeclared, r.pos-1, "identifier %q already declared", tok.Value)
	}
	return nil
}

// Statements ::= (Statement ';')*
func (r *Recognizer) statements() error {
	for r.startsStatement() {
		if err := r.statement(); err != nil {
			return err
		}
		if err := r.terminator(); err != nil {
			return err
		}
	}
	return nil
}

// startsStatement reports whether the cursor is at a statement: one of the
// statement keywords, or any token followed by the arrow.
func (r *Recognizer) startsStatement() bool {
	switch r.peek() {
	case lexer.If, lexer.Print, lexer.Loopif:
		return true
	}
	return r.peekAt(1) == lexer.Arrow
}

// terminator consumes the ';' after a statement. It may be left out when
// the next token closes the enclosing statement list.
func (r *Recognizer) terminator() error {
	switch r.peek() {
	case lexer.Semicolon:
		r.advance()
		return nil
	case lexer.Finish, lexer.Else, lexer.Endif, lexer.Endloop:
		return nil
	}
	return r.expect(lexer.Semicolon)
}

// Statement ::= Conditional | Print | Loop | Assignment
func (r *Recognizer) statement() error {
	r.exprType = Integer

	switch r.peek() {
	case lexer.If:
		return r.conditional()
	case lexer.Print:
		return r.print()
	case lexer.Loopif:
		return r.loop()
	default:
		return r.assignment()
	}
}

// Conditional ::= 'if' Expression 'then' Statements ('else' Statements)? 'endif'
func (r *Recognizer) conditional() error {
	r.advance()
	if err := r.condition(lexer.If); err != nil {
		return err
	}
	if err := r.expect(lexer.Then); err != nil {
		return err
	}
	if err := r.statements(); err != nil {
		return err
	}
	if r.peek() == lexer.Else {
		r.advance()
		if err := r.statements(); err != nil {
			return err
		}
	}
	return r.expect(lexer.Endif)
}

// Print ::= 'print' Expression
func (r *Recognizer) print() error {
	r.advance()
	return r.expression()
}

// Loop ::= 'loopif' Expression 'do' Statements 'endloop'
func (r *Recognizer) loop() error {
	r.advance()
	if err := r.condition(lexer.Loopif); err != nil {
		return err
	}
	if err := r.expect(lexer.Do); err != nil {
		return err
	}
	if err := r.statements(); err != nil {
		return err
	}
	return r.expect(lexer.Endloop)
}

// condition parses the controlling expression of if and loopif, which
// must be logical
func (r *Recognizer) condition(keyword string) error {
	start := r.pos
	if err := r.expression(); err != nil {
		return err
	}
	if r.exprType != Logical {
		return r.failAt(KindTypeMismatch, start,
			"%s condition has type %s, want %s", keyword, r.exprType, Logical)
	}
	return nil
}

// Assignment ::= Identifier '<-' Expression
func (r *Recognizer) assignment() error {
	target, ok := r.advance()
	if !ok {
		return r.eof("statement")
	}
	targetIndex := r.pos - 1

	if err := r.expect(lexer.Arrow); err != nil {
		return err
	}
	if err := r.expression(); err != nil {
		return err
	}

	declared, ok := r.symbols[target.Value]
	if !ok {
		return r.failAt(KindUndeclared, targetIndex, "assignment to undeclared %q", target.Value)
	}
	if declared != r.exprType {
		return r.failAt(KindTypeMismatch, targetIndex,
			"cannot assign %s to %q of type %s", r.exprType, target.Value, declared)
	}
	return nil
}

// Expression ::= Term (BinaryOp Term)*
// Terms and operators are scanned flat, left to right. Relational and
// logical operators make the expression logical; operand types are not
// checked against each other.
func (r *Recognizer) expression() error {
	if err := r.term(); err != nil {
		return err
	}
	for lexer.IsBinaryOp(r.peek()) {
		op, _ := r.advance()
		if lexer.IsRelationalOp(op.Value) || lexer.IsLogicalOp(op.Value) {
			r.exprType = Logical
		}
		if err := r.term(); err != nil {
			return err
		}
	}
	return nil
}

// Term ::= Numeric | CharConstant | '(' Expression ')' | '.minus.' Term
//        | '.not.' Term | Identifier
func (r *Recognizer) term() error {
	tok, ok := r.advance()
	if !ok {
		return r.eof("term")
	}

	switch {
	case lexer.IsNumeric(tok.Value):
		return nil

	case lexer.IsCharConstant(tok.Value):
		r.promote(Character)
		return nil

	case tok.Value == lexer.LParen:
		if err := r.expression(); err != nil {
			return err
		}
		return r.expect(lexer.RParen)

	case tok.Value == lexer.Minus:
		return r.term()

	case tok.Value == lexer.Not:
		if err := r.term(); err != nil {
			return err
		}
		r.exprType = Logical
		return nil

	case lexer.IsIdentifier(tok.Value) && !lexer.IsKeyword(tok.Value):
		declared, ok := r.symbols[tok.Value]
		if !ok {
			return r.failAt(KindUndeclared, r.pos-1, "undeclared identifier %q", tok.Value)
		}
		r.promote(declared)
		return nil

	default:
		return r.failAt(KindUnexpectedToken, r.pos-1, "expected term, got %q", tok.Value)
	}
}

// promote raises the accumulator. Logical is never downgraded and integer
// never lowers anything.
func (r *Recognizer) promote(t Type) {
	switch t {
	case Logical:
		r.exprType = Logical
	case Character:
		if r.exprType != Logical {
			r.exprType = Character
		}
	}
}

// peek returns the current token text, or "" past the end
func (r *Recognizer) peek() string {
	return r.peekAt(0)
}

// peekAt returns the text n tokens ahead of the cursor, or "" past the end
func (r *Recognizer) peekAt(n int) string {
	if i := r.pos + n; i < len(r.tokens) {
		return r.tokens[i].Value
	}
	return ""
}

// advance returns the current token and moves the cursor forward.
// ok is false at the end of input, where the cursor does not move.
func (r *Recognizer) advance() (lexer.Token, bool) {
	if r.pos >= len(r.tokens) {
		return lexer.Token{}, false
	}
	tok := r.tokens[r.pos]
	r.pos++
	return tok, true
}

// expect consumes the current token and requires it to equal want
func (r *Recognizer) expect(want string) error {
	tok, ok := r.advance()
	if !ok {
		return r.eof(fmt.Sprintf("%q", want))
	}
	if tok.Value != want {
		return r.failAt(KindUnexpectedToken, r.pos-1, "expected %q, got %q", want, tok.Value)
	}
	return nil
}

// expectEnd requires that no token remains
func (r *Recognizer) expectEnd() error {
	if r.pos < len(r.tokens) {
		return r.failAt(KindTrailingInput, r.pos, "unexpected %q after %q", r.peek(), lexer.Finish)
	}
	return nil
}

func (r *Recognizer) eof(wanted string) error {
	return r.failAt(KindUnexpectedEOF, r.pos, "unexpected end of input, expected %s", wanted)
}

func (r *Recognizer) failAt(kind Kind, index int, format string, args ...interface{}) error {
	err := &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Index:   index,
	}
	if index < len(r.tokens) {
		err.Token = r.tokens[index]
	}
	return err
}
