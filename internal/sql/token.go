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

package sql

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

// Token types produced by the Lexer. Keywords are not a separate class:
// every word is a TokenID and the parser decides whether it is reserved.
const (
	TokenEOF TokenType = iota
	TokenID
	TokenNumber
	TokenString
	TokenEquals
	TokenComma
	TokenSemi
	TokenStar
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenLess
	TokenGreater
	TokenLessEqual
	TokenGreaterEqual
	TokenNotEqual
)

var tokenTypeNames = [...]string{
	TokenEOF:          "END_FILE",
	TokenID:           "ID",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenEquals:       "EQUALS",
	TokenComma:        "COMMA",
	TokenSemi:         "SEMI",
	TokenStar:         "STAR",
	TokenLParen:       "LPAREN",
	TokenRParen:       "RPAREN",
	TokenLBrace:       "LBRACE",
	TokenRBrace:       "RBRACE",
	TokenLBracket:     "LSBRACE",
	TokenRBracket:     "RSBRACE",
	TokenLess:         "LESS_THAN",
	TokenGreater:      "GREATER_THAN",
	TokenLessEqual:    "LESS_EQUAL",
	TokenGreaterEqual: "GREATER_EQUAL",
	TokenNotEqual:     "NOT_EQUAL",
}

// String returns the canonical name of the token type.
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit. Value preserves the source text exactly;
// for strings it is the content between the quotes. Pos is the byte offset
// of the first character of the token in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexeme returns the text used to describe the token in error messages.
// The end of input is reported as "EOF".
func (t Token) Lexeme() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return `"` + t.Value + `"`
	default:
		return t.Value
	}
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "END_FILE"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}
