/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package sql contains the Lexer component for SQL tokenization.

Lexer Overview:
===============

The Lexer is the first stage of the SQL processing pipeline. It walks the
input text once, left to right, and hands out one Token per call to
NextToken. It is a forward-only cursor: it cannot be rewound, and scanning
the same text again requires a new Lexer.

Token Rules (in priority order at each position):
=================================================

 1. Whitespace is skipped.
 2. [A-Za-z_][A-Za-z0-9_]* is a TokenID. The lexer has no knowledge of
    reserved words; case is preserved and the parser classifies words.
 3. [0-9]+ is a TokenNumber. Decimals and exponents are not recognised.
 4. "..." is a TokenString holding the text between the quotes. There are
    no escape sequences.
 5. = , ; * ( ) { } [ ] map to their single-character tokens.
 6. <= <> >= != are recognised with one character of lookahead; < and >
    stand alone, a lone ! is an error.
 7. Anything else is an error in strict mode (the default) and silently
    skipped in lenient mode.

Termination:
============

At the end of input the lexer returns TokenEOF, and keeps returning it on
every later call. Any error also puts the lexer in that terminal state, so
a caller that ignores an error still sees a finite stream.
*/
package sql

import (
	"unicode/utf8"

	ferrors "flyparse/internal/errors"
)

// Lexer converts SQL text into a stream of Tokens.
type Lexer struct {
	input   string
	pos     int
	lenient bool
	done    bool
}

// LexerOption configures a Lexer.
type LexerOption func(*Lexer)

// WithLenientSkipping makes the lexer drop characters it does not recognise
// instead of failing. Unterminated strings and a lone '!' remain errors.
func WithLenientSkipping() LexerOption {
	return func(l *Lexer) {
		l.lenient = true
	}
}

// NewLexer creates a Lexer positioned at the start of input.
func NewLexer(input string, opts ...LexerOption) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NextToken returns the next token in the input. Once TokenEOF has been
// returned, or an error has been reported, every later call returns
// TokenEOF with a nil error.
func (l *Lexer) NextToken() (Token, error) {
	for !l.done && l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch {
		case isSpace(ch):
			l.pos++
			continue
		case isIdentStart(ch):
			return l.readIdentifier(), nil
		case isDigit(ch):
			return l.readNumber(), nil
		case ch == '"':
			return l.readString()
		}

		start := l.pos
		switch ch {
		case '=':
			return l.single(TokenEquals), nil
		case ',':
			return l.single(TokenComma), nil
		case ';':
			return l.single(TokenSemi), nil
		case '*':
			return l.single(TokenStar), nil
		case '(':
			return l.single(TokenLParen), nil
		case ')':
			return l.single(TokenRParen), nil
		case '{':
			return l.single(TokenLBrace), nil
		case '}':
			return l.single(TokenRBrace), nil
		case '[':
			return l.single(TokenLBracket), nil
		case ']':
			return l.single(TokenRBracket), nil
		case '<':
			switch l.peek() {
			case '=':
				return l.double(TokenLessEqual), nil
			case '>':
				return l.double(TokenNotEqual), nil
			}
			return l.single(TokenLess), nil
		case '>':
			if l.peek() == '=' {
				return l.double(TokenGreaterEqual), nil
			}
			return l.single(TokenGreater), nil
		case '!':
			if l.peek() == '=' {
				return l.double(TokenNotEqual), nil
			}
			return l.fail(ferrors.InvalidOperator("!", start))
		}

		if l.lenient {
			l.pos++
			continue
		}
		r, _ := utf8.DecodeRuneInString(l.input[start:])
		return l.fail(ferrors.UnexpectedChar(r, start))
	}

	l.done = true
	return Token{Type: TokenEOF, Pos: len(l.input)}, nil
}

// Pos returns the byte offset of the next unread character.
func (l *Lexer) Pos() int {
	return l.pos
}

func (l *Lexer) fail(err *ferrors.Error) (Token, error) {
	l.done = true
	return Token{Type: TokenEOF, Pos: len(l.input)}, err
}

func (l *Lexer) peek() byte {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1]
	}
	return 0
}

func (l *Lexer) single(t TokenType) Token {
	tok := Token{Type: t, Value: l.input[l.pos : l.pos+1], Pos: l.pos}
	l.pos++
	return tok
}

func (l *Lexer) double(t TokenType) Token {
	tok := Token{Type: t, Value: l.input[l.pos : l.pos+2], Pos: l.pos}
	l.pos += 2
	return tok
}

func (l *Lexer) readIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenID, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) readNumber() Token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) readString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return l.fail(ferrors.UnclosedString(start))
	}
	tok := Token{Type: TokenString, Value: l.input[start+1 : l.pos], Pos: start}
	l.pos++ // closing quote
	return tok, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
