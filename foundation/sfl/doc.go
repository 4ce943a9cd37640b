/*
Package sfl checks programs written in the Start-Finish language.

The engine tokenizes source text with package lexer and hands the tokens
to package checker. The result is a single verdict: the program is
accepted, or the first syntactic or type violation rejects it.

	if sfl.Check(source) {
		fmt.Println("ok")
	} else {
		fmt.Println("error")
	}

An Engine adds options for the logger, the lexer mode and the source size
limit. Verify returns the rejection as an error:

	engine, err := sfl.New(sfl.Options{LexerMode: lexer.ModeScanning})
	...
	if err := engine.Verify(source); err != nil {
		kind := checker.KindOf(err)
		...
	}

The legacy lexer is the default. It splits identifiers that contain a
keyword or operator name; the scanning lexer does not.
*/
package sfl
