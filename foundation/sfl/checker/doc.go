/*
Package checker implements the recognizer and static type checker of the
Start-Finish language (SFL).

A Recognizer walks a token sequence produced by package lexer exactly once,
left to right, without backtracking. It validates the grammar

	Program      ::= 'start' Declarations Statements 'finish' END
	Declarations ::= (Declaration ';')*
	Declaration  ::= TypeKeyword Identifier (',' Identifier)*
	Statements   ::= (Statement ';')*
	Statement    ::= Conditional | Print | Loop | Assignment
	Conditional  ::= 'if' Expression 'then' Statements ('else' Statements)? 'endif'
	Print        ::= 'print' Expression
	Loop         ::= 'loopif' Expression 'do' Statements 'endloop'
	Assignment   ::= Identifier '<-' Expression
	Expression   ::= Term (BinaryOp Term)*
	Term         ::= Numeric | CharConstant | '(' Expression ')'
	               | '.minus.' Term | '.not.' Term | Identifier

while inferring the type of every expression. The ';' after a statement
may be omitted directly before finish, else, endif or endloop.

Type inference is a flat scan: the accumulator starts as integer for each
statement, character constants and character variables raise it to
character, and logical variables, .not. and any relational or logical
operator make it logical. Logical is never downgraded. Conditions of if and
loopif must be logical and an assignment must match the target's declared
type. Operand types are otherwise not compared.

Known quirk: a declared name is written to the symbol table before the
redeclaration check, so after "integer x; logical x;" fails the table holds
x as logical.

Usage:

	err := checker.Check(lexer.Legacy(source))
	switch checker.KindOf(err) {
	case checker.KindNone:
		// accepted
	case checker.KindTypeMismatch:
		// ...
	}
*/
package checker
