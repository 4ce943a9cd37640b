/*
Package lexer converts Start-Finish language source into tokens.

Two tokenizers exist. Legacy pads every keyword, operator and punctuation
symbol with spaces by plain text substitution and splits on whitespace, so
an identifier such as "todo" becomes the tokens "to" and "do". Scan walks
the input once and takes the longest token at each position, which keeps
such identifiers whole. Legacy is the default mode.

Every token carries its byte offset, line and column. The Is* predicates
classify token text by shape for the recognizer.
*/
package lexer
