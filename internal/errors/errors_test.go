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

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorBasic(t *testing.T) {
	err := NewSyntaxError("unexpected token")

	if err.Code != ErrCodeSyntax {
		t.Errorf("Expected code %d, got %d", ErrCodeSyntax, err.Code)
	}
	if err.Category != CategorySyntax {
		t.Errorf("Expected category %s, got %s", CategorySyntax, err.Category)
	}
	if err.Pos != NoPos {
		t.Errorf("Expected no position, got %d", err.Pos)
	}
	if !strings.Contains(err.Error(), "unexpected token") {
		t.Errorf("Expected error message to contain 'unexpected token', got: %s", err.Error())
	}
}

func TestErrorWithDetail(t *testing.T) {
	err := NewStorageError("write failed").WithDetail("disk full")

	if err.Detail != "disk full" {
		t.Errorf("Expected detail 'disk full', got: %s", err.Detail)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected error to contain detail, got: %s", err.Error())
	}
}

func TestErrorUserMessage(t *testing.T) {
	err := UnexpectedToken("column name", "FROM").WithPos(7).WithHint("Name a column")

	userMsg := err.UserMessage()
	if !strings.Contains(userMsg, "expected column name, found FROM") {
		t.Errorf("Expected message in user message, got: %s", userMsg)
	}
	if !strings.Contains(userMsg, "at position 7") {
		t.Errorf("Expected position in user message, got: %s", userMsg)
	}
	if !strings.Contains(userMsg, "HINT: Name a column") {
		t.Errorf("Expected hint in user message, got: %s", userMsg)
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewStorageError("write failed").WithCause(cause)

	if err.Unwrap() != cause {
		t.Error("Expected Unwrap to return the cause")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestLexErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code ErrorCode
		pos  int
	}{
		{"UnclosedString", UnclosedString(4), ErrCodeUnclosedString, 4},
		{"UnexpectedChar", UnexpectedChar('#', 9), ErrCodeUnexpectedChar, 9},
		{"UnexpectedChar multibyte", UnexpectedChar('é', 3), ErrCodeUnexpectedChar, 3},
		{"InvalidOperator", InvalidOperator("!", 2), ErrCodeInvalidOperator, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, tt.err.Code)
			}
			if tt.err.Category != CategoryLex {
				t.Errorf("Expected category %s, got %s", CategoryLex, tt.err.Category)
			}
			if tt.err.Pos != tt.pos {
				t.Errorf("Expected pos %d, got %d", tt.pos, tt.err.Pos)
			}
		})
	}
}

func TestUnexpectedCharMessage(t *testing.T) {
	if got := UnexpectedChar('é', 3).Message; got != "unexpected character 'é'" {
		t.Errorf("Expected the decoded character in the message, got %q", got)
	}
}

func TestSyntaxErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code ErrorCode
		text string
	}{
		{"UnexpectedToken", UnexpectedToken("table name", "EOF"), ErrCodeUnexpectedToken, "expected table name, found EOF"},
		{"MissingKeyword", MissingKeyword("BY", "ORDER", "name"), ErrCodeMissingKeyword, "expected BY after ORDER, found name"},
		{"UnknownStatement", UnknownStatement("EOF"), ErrCodeUnknownStatement, "expected SQL statement keyword"},
		{"IllegalClause", IllegalClause("LIMIT", "CREATE"), ErrCodeIllegalClause, "unexpected LIMIT in CREATE statement"},
		{"DuplicateClause", DuplicateClause("WHERE"), ErrCodeDuplicateClause, "duplicate WHERE clause"},
		{"ReservedWord", ReservedWord("column name", "FROM"), ErrCodeReservedWord, "expected column name, found FROM"},
		{"ExpectedExpression", ExpectedExpression(";"), ErrCodeExpectedExpression, "expected expression, found ;"},
		{"MalformedColumn", MalformedColumn("missing size"), ErrCodeMalformedColumn, "malformed column definition"},
		{"TrailingInput", TrailingInput("SELECT"), ErrCodeTrailingInput, "unexpected SELECT after end of statement"},
		{"Unsupported", Unsupported("INSERT statement"), ErrCodeUnsupported, "INSERT statement is not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, tt.err.Code)
			}
			if tt.err.Category != CategorySyntax {
				t.Errorf("Expected category %s, got %s", CategorySyntax, tt.err.Category)
			}
			if !strings.Contains(tt.err.Message, tt.text) {
				t.Errorf("Expected message to contain %q, got %q", tt.text, tt.err.Message)
			}
		})
	}
}

func TestErrorCategoryChecks(t *testing.T) {
	syntaxErr := NewSyntaxError("test")
	lexErr := NewLexError("test")
	configErr := NewConfigError("test")

	if !IsSyntaxError(syntaxErr) {
		t.Error("Expected IsSyntaxError to return true for syntax error")
	}
	if IsSyntaxError(lexErr) {
		t.Error("Expected IsSyntaxError to return false for lex error")
	}
	if !IsLexError(lexErr) {
		t.Error("Expected IsLexError to return true for lex error")
	}
	if !IsConfigError(configErr) {
		t.Error("Expected IsConfigError to return true for config error")
	}

	wrapped := fmt.Errorf("parsing line 3: %w", lexErr)
	if !IsLexError(wrapped) {
		t.Error("Expected IsLexError to see through wrapping")
	}
}

func TestGetCode(t *testing.T) {
	err := DuplicateClause("FROM")
	if GetCode(err) != ErrCodeDuplicateClause {
		t.Errorf("Expected code %d, got %d", ErrCodeDuplicateClause, GetCode(err))
	}

	regularErr := errors.New("regular error")
	if GetCode(regularErr) != 0 {
		t.Errorf("Expected code 0 for regular error, got %d", GetCode(regularErr))
	}
}

func TestFormatError(t *testing.T) {
	formatted := FormatError(NewSyntaxError("test error"))
	if !strings.HasPrefix(formatted, "ERROR:") {
		t.Errorf("Expected formatted error to start with 'ERROR:', got: %s", formatted)
	}

	formatted = FormatError(errors.New("regular error"))
	if !strings.Contains(formatted, "regular error") {
		t.Errorf("Expected formatted error to contain message, got: %s", formatted)
	}
}

func TestSQLSTATE(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected SQLSTATE
	}{
		{"nil", nil, SQLStateSuccess},
		{"lex", UnclosedString(0), SQLStateSyntaxError},
		{"syntax", UnexpectedToken("x", "y"), SQLStateSyntaxError},
		{"reserved", ReservedWord("column name", "FROM"), SQLStateReservedName},
		{"unsupported", Unsupported("INSERT statement"), SQLStateFeatureNotSupported},
		{"too large", InputTooLarge(10, 5), SQLStateProgramLimit},
		{"plain", errors.New("boom"), SQLStateInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSQLSTATE(tt.err); got != tt.expected {
				t.Errorf("Expected SQLSTATE %s, got %s", tt.expected, got)
			}
		})
	}

	if IsErrorSQLSTATE(SQLStateSuccess) {
		t.Error("Expected success SQLSTATE not to be an error")
	}
	if !IsErrorSQLSTATE(SQLStateSyntaxError) {
		t.Error("Expected 42601 to be an error")
	}
}
