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
Package errors provides structured error handling for flyparse.

The errors package implements a structured error system with:
  - Error categories (Lex, Syntax, Config, Validation, Storage)
  - Error codes for programmatic handling
  - User-friendly error messages with hints
  - The byte offset of the offending token, when known
  - Error wrapping for root cause analysis

Error Categories:
  - LexError: the tokenizer could not produce a token (unterminated
    string, unexpected character, lone '!')
  - SyntaxError: the token stream does not match the grammar
  - ConfigError: configuration files and values
  - ValidationError: input rejected before parsing (e.g. too large)
  - StorageError: reading or writing AST archives

Every lex or syntax error is fatal for the parse it belongs to. Callers
branch on the category with IsLexError / IsSyntaxError instead of
inspecting message text.
*/
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error identifier.
type ErrorCode int

const (
	// Lex errors (1000-1099)
	ErrCodeLex             ErrorCode = 1000
	ErrCodeUnclosedString  ErrorCode = 1001
	ErrCodeUnexpectedChar  ErrorCode = 1002
	ErrCodeInvalidOperator ErrorCode = 1003

	// Syntax errors (1100-1999)
	ErrCodeSyntax             ErrorCode = 1100
	ErrCodeUnexpectedToken    ErrorCode = 1101
	ErrCodeMissingKeyword     ErrorCode = 1102
	ErrCodeUnknownStatement   ErrorCode = 1103
	ErrCodeIllegalClause      ErrorCode = 1104
	ErrCodeDuplicateClause    ErrorCode = 1105
	ErrCodeReservedWord       ErrorCode = 1106
	ErrCodeExpectedExpression ErrorCode = 1107
	ErrCodeMalformedColumn    ErrorCode = 1108
	ErrCodeTrailingInput      ErrorCode = 1109
	ErrCodeUnsupported        ErrorCode = 1110

	// Config errors (3000-3999)
	ErrCodeConfig        ErrorCode = 3000
	ErrCodeConfigFile    ErrorCode = 3001
	ErrCodeConfigInvalid ErrorCode = 3002

	// Storage errors (5000-5999)
	ErrCodeStorage          ErrorCode = 5000
	ErrCodeIOError          ErrorCode = 5003
	ErrCodeArchiveCorrupted ErrorCode = 5005

	// Validation errors (6000-6999)
	ErrCodeValidation    ErrorCode = 6000
	ErrCodeInvalidValue  ErrorCode = 6001
	ErrCodeInputTooLarge ErrorCode = 6005
	ErrCodeCanceled      ErrorCode = 6006
)

// Category represents the error category.
type Category string

const (
	CategoryLex        Category = "LEX"
	CategorySyntax     Category = "SYNTAX"
	CategoryConfig     Category = "CONFIG"
	CategoryValidation Category = "VALIDATION"
	CategoryStorage    Category = "STORAGE"
)

// NoPos marks an error that is not tied to a position in the input.
const NoPos = -1

// Error represents a structured error in flyparse.
type Error struct {
	Code     ErrorCode
	Category Category
	Message  string
	Detail   string
	Hint     string
	Pos      int // byte offset into the input, or NoPos
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ERROR %d (%s): %s - %s", e.Code, e.Category, e.Message, e.Detail)
	}
	return fmt.Sprintf("ERROR %d (%s): %s", e.Code, e.Category, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message.
func (e *Error) UserMessage() string {
	msg := fmt.Sprintf("ERROR: %s", e.Message)
	if e.Pos != NoPos {
		msg += fmt.Sprintf(" at position %d", e.Pos)
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf("\nHINT: %s", e.Hint)
	}
	return msg
}

// WithDetail adds detail to the error.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithHint adds a hint to the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithPos records the byte offset the error refers to.
func (e *Error) WithPos(pos int) *Error {
	e.Pos = pos
	return e
}

func newError(code ErrorCode, category Category, message string) *Error {
	return &Error{Code: code, Category: category, Message: message, Pos: NoPos}
}

// ============================================================================
// Lex Error Constructors
// ============================================================================

// NewLexError creates a new lex error.
func NewLexError(message string) *Error {
	return newError(ErrCodeLex, CategoryLex, message)
}

// UnclosedString creates an error for a string literal that never ends.
func UnclosedString(pos int) *Error {
	return newError(ErrCodeUnclosedString, CategoryLex, "unterminated string literal").
		WithPos(pos).
		WithHint(`Close the string with a matching '"'`)
}

// UnexpectedChar creates an error for a character the lexer does not know.
func UnexpectedChar(ch rune, pos int) *Error {
	return newError(ErrCodeUnexpectedChar, CategoryLex, fmt.Sprintf("unexpected character %q", ch)).
		WithPos(pos)
}

// InvalidOperator creates an error for an incomplete operator such as a lone '!'.
func InvalidOperator(op string, pos int) *Error {
	return newError(ErrCodeInvalidOperator, CategoryLex, fmt.Sprintf("invalid operator %q", op)).
		WithPos(pos).
		WithHint("Use != or <> for inequality")
}

// ============================================================================
// Syntax Error Constructors
// ============================================================================

// NewSyntaxError creates a new syntax error.
func NewSyntaxError(message string) *Error {
	return newError(ErrCodeSyntax, CategorySyntax, message)
}

// UnexpectedToken creates an error for unexpected tokens.
func UnexpectedToken(expected, got string) *Error {
	return newError(ErrCodeUnexpectedToken, CategorySyntax,
		fmt.Sprintf("expected %s, found %s", expected, got))
}

// MissingKeyword creates an error for a mandatory keyword that is absent,
// such as BY after ORDER.
func MissingKeyword(keyword, after, got string) *Error {
	return newError(ErrCodeMissingKeyword, CategorySyntax,
		fmt.Sprintf("expected %s after %s, found %s", keyword, after, got)).
		WithHint(fmt.Sprintf("Add the '%s' keyword to your statement", keyword))
}

// UnknownStatement creates an error for an unknown leading keyword.
func UnknownStatement(got string) *Error {
	return newError(ErrCodeUnknownStatement, CategorySyntax,
		fmt.Sprintf("expected SQL statement keyword, found %s", got)).
		WithHint("Statements start with SELECT or CREATE")
}

// IllegalClause creates an error for a clause keyword that the statement
// kind does not allow.
func IllegalClause(clause, statement string) *Error {
	return newError(ErrCodeIllegalClause, CategorySyntax,
		fmt.Sprintf("unexpected %s in %s statement", clause, statement))
}

// DuplicateClause creates an error for a clause that appears twice.
func DuplicateClause(clause string) *Error {
	return newError(ErrCodeDuplicateClause, CategorySyntax,
		fmt.Sprintf("duplicate %s clause", clause))
}

// ReservedWord creates an error for a keyword used where a name is required.
func ReservedWord(what, word string) *Error {
	return newError(ErrCodeReservedWord, CategorySyntax,
		fmt.Sprintf("expected %s, found %s", what, word)).
		WithHint(fmt.Sprintf("'%s' is a reserved word and cannot be used as a name", word))
}

// ExpectedExpression creates an error for a missing expression operand.
func ExpectedExpression(got string) *Error {
	return newError(ErrCodeExpectedExpression, CategorySyntax,
		fmt.Sprintf("expected expression, found %s", got))
}

// MalformedColumn creates an error for a broken CREATE TABLE column entry.
func MalformedColumn(detail string) *Error {
	return newError(ErrCodeMalformedColumn, CategorySyntax, "malformed column definition").
		WithDetail(detail)
}

// TrailingInput creates an error for tokens after the end of a statement.
func TrailingInput(got string) *Error {
	return newError(ErrCodeTrailingInput, CategorySyntax,
		fmt.Sprintf("unexpected %s after end of statement", got)).
		WithHint("Only one statement can be parsed at a time")
}

// Unsupported creates an error for grammar that is recognised but not
// implemented.
func Unsupported(feature string) *Error {
	return newError(ErrCodeUnsupported, CategorySyntax,
		fmt.Sprintf("%s is not supported", feature))
}

// ============================================================================
// Config Error Constructors
// ============================================================================

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *Error {
	return newError(ErrCodeConfig, CategoryConfig, message)
}

// ConfigFile creates an error for a config file that cannot be read or decoded.
func ConfigFile(path string, cause error) *Error {
	return newError(ErrCodeConfigFile, CategoryConfig, fmt.Sprintf("failed to load config file %s", path)).
		WithCause(cause).
		WithDetail(cause.Error())
}

// ConfigInvalid creates an error for an invalid configuration value.
func ConfigInvalid(field, reason string) *Error {
	return newError(ErrCodeConfigInvalid, CategoryConfig, fmt.Sprintf("invalid %s", field)).
		WithDetail(reason)
}

// ============================================================================
// Storage Error Constructors
// ============================================================================

// NewStorageError creates a new storage error.
func NewStorageError(message string) *Error {
	return newError(ErrCodeStorage, CategoryStorage, message)
}

// IOError wraps a filesystem failure.
func IOError(op, path string, cause error) *Error {
	return newError(ErrCodeIOError, CategoryStorage, fmt.Sprintf("%s %s failed", op, path)).
		WithCause(cause).
		WithDetail(cause.Error())
}

// ArchiveCorrupted creates an error for an unreadable AST archive.
func ArchiveCorrupted(detail string) *Error {
	return newError(ErrCodeArchiveCorrupted, CategoryStorage, "archive corrupted").
		WithDetail(detail).
		WithHint("Re-create the archive with 'flyparse archive write'")
}

// ============================================================================
// Validation Error Constructors
// ============================================================================

// NewValidationError creates a new validation error.
func NewValidationError(message string) *Error {
	return newError(ErrCodeValidation, CategoryValidation, message)
}

// InvalidValue creates an error for invalid values.
func InvalidValue(field, reason string) *Error {
	return newError(ErrCodeInvalidValue, CategoryValidation, fmt.Sprintf("invalid value for '%s'", field)).
		WithDetail(reason)
}

// InputTooLarge creates an error for input that exceeds the configured bound.
func InputTooLarge(size, limit int) *Error {
	return newError(ErrCodeInputTooLarge, CategoryValidation,
		fmt.Sprintf("input of %d bytes exceeds limit of %d bytes", size, limit)).
		WithHint("Raise max_input_bytes in the configuration")
}

// Canceled wraps a context cancellation observed before parsing started.
func Canceled(cause error) *Error {
	return newError(ErrCodeCanceled, CategoryValidation, "parse canceled").WithCause(cause)
}

// ============================================================================
// Helper Functions
// ============================================================================

func asError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsLexError checks if an error is a lex error.
func IsLexError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Category == CategoryLex
	}
	return false
}

// IsSyntaxError checks if an error is a syntax (parse) error.
func IsSyntaxError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Category == CategorySyntax
	}
	return false
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Category == CategoryConfig
	}
	return false
}

// GetCode returns the error code if it's an *Error, or 0 otherwise.
func GetCode(err error) ErrorCode {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return 0
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if e, ok := asError(err); ok {
		return e.UserMessage()
	}
	return fmt.Sprintf("ERROR: %v", err)
}
