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


package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	ferrors "flyparse/internal/errors"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitParseError = 2
	ExitUsage      = 64
)

// CLIError represents a CLI error with suggestions.
type CLIError struct {
	Message     string
	Detail      string
	Context     []string
	Suggestions []string
	ExitCode    int
	Err         error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Print writes the error with formatting to w.
func (e *CLIError) Print(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", ErrorIcon(), Error(e.Message))

	if e.Detail != "" {
		fmt.Fprintf(w, "  %s\n", Dimmed(e.Detail))
	}
	for _, line := range e.Context {
		fmt.Fprintf(w, "  %s\n", line)
	}

	if len(e.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", Highlight("Suggestions:"))
		for _, s := range e.Suggestions {
			fmt.Fprintf(w, "    • %s\n", s)
		}
	}
}

// NewCLIError creates a new CLI error.
func NewCLIError(message string) *CLIError {
	return &CLIError{
		Message:  message,
		ExitCode: ExitFailure,
	}
}

// WithDetail adds detail to the error.
func (e *CLIError) WithDetail(detail string) *CLIError {
	e.Detail = detail
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithExitCode sets the exit code.
func (e *CLIError) WithExitCode(code int) *CLIError {
	e.ExitCode = code
	return e
}

// WithCause records the error that caused this one.
func (e *CLIError) WithCause(err error) *CLIError {
	e.Err = err
	return e
}

// Common CLI errors with helpful suggestions.

// ErrParseFailed describes a lex or syntax error in input. When the error
// carries a position, the offending line is shown with a caret under it.
func ErrParseFailed(input string, err error) *CLIError {
	e := NewCLIError(ferrors.FormatError(err)).
		WithCause(err).
		WithExitCode(ExitParseError)

	var fe *ferrors.Error
	if errors.As(err, &fe) {
		e.Message = fmt.Sprintf("%s error: %s", strings.ToLower(string(fe.Category)), fe.Message)
		e.Detail = fe.Detail
		if fe.Pos >= 0 {
			e.Context = Caret(input, fe.Pos)
		}
		if fe.Hint != "" {
			e.WithSuggestion(fe.Hint)
		}
		if fe.Code == ferrors.ErrCodeUnsupported {
			e.WithSuggestion("Supported statements are SELECT and CREATE")
		}
	}
	return e
}

// ErrFileNotFound creates an error for an unreadable input file.
func ErrFileNotFound(path string, err error) *CLIError {
	return NewCLIError(fmt.Sprintf("Cannot read %s", path)).
		WithDetail(err.Error()).
		WithCause(err).
		WithSuggestion("Check that the file exists and is readable")
}

// ErrMissingArgument creates a missing argument error.
func ErrMissingArgument(arg, usage string) *CLIError {
	return NewCLIError(fmt.Sprintf("Missing required argument: %s", arg)).
		WithExitCode(ExitUsage).
		WithSuggestion(fmt.Sprintf("Usage: %s", usage))
}

// ErrInvalidValue creates an invalid value error.
func ErrInvalidValue(field, value, reason string) *CLIError {
	return NewCLIError(fmt.Sprintf("Invalid value for %s: %s", field, value)).
		WithExitCode(ExitUsage).
		WithDetail(reason)
}

// ErrConfig wraps a configuration load failure.
func ErrConfig(err error) *CLIError {
	return NewCLIError("Invalid configuration").
		WithDetail(err.Error()).
		WithCause(err).
		WithSuggestion("Run 'flyparse config show' to inspect the effective settings").
		WithSuggestion("Run 'flyparse config init' to write a fresh configuration file")
}

// ErrArchive wraps an archive read or write failure.
func ErrArchive(path string, err error) *CLIError {
	e := NewCLIError(fmt.Sprintf("Archive %s failed", path)).
		WithDetail(err.Error()).
		WithCause(err)
	if ferrors.GetCode(err) == ferrors.ErrCodeArchiveCorrupted {
		e.WithSuggestion("Re-create the archive with 'flyparse archive write'")
	}
	return e
}

// FromError converts any error into a CLIError.
func FromError(input string, err error) *CLIError {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce
	}
	if ferrors.IsLexError(err) || ferrors.IsSyntaxError(err) {
		return ErrParseFailed(input, err)
	}
	if ferrors.IsConfigError(err) {
		return ErrConfig(err)
	}
	return NewCLIError(ferrors.FormatError(err)).WithCause(err)
}

// Caret returns the line of input holding byte offset pos followed by a
// line with a caret under that offset.
func Caret(input string, pos int) []string {
	if pos > len(input) {
		pos = len(input)
	}
	start := strings.LastIndexByte(input[:pos], '\n') + 1
	end := len(input)
	if i := strings.IndexByte(input[pos:], '\n'); i >= 0 {
		end = pos + i
	}
	line := input[start:end]

	pad := make([]byte, pos-start)
	for i := range pad {
		if line[i] == '\t' {
			pad[i] = '\t'
		} else {
			pad[i] = ' '
		}
	}
	return []string{line, string(pad) + Error("^")}
}
