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

import "strings"

// SplitStatements cuts a script into single statements at each ';'.
// Semicolons inside string literals do not split. Every returned statement
// keeps its terminating ';' when it had one, and empty statements are
// dropped. The script is tokenized once; a lex error aborts the split.
func SplitStatements(script string, opts ...LexerOption) ([]string, error) {
	lexer := NewLexer(script, opts...)

	var statements []string
	start := -1
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenEOF:
			if start >= 0 {
				statements = append(statements, strings.TrimSpace(script[start:]))
			}
			return statements, nil
		case TokenSemi:
			if start >= 0 {
				statements = append(statements, strings.TrimSpace(script[start:tok.Pos+1]))
			}
			start = -1
		default:
			if start < 0 {
				start = tok.Pos
			}
		}
	}
}
