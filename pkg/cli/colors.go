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
Package cli provides terminal helpers shared by the flyparse commands.

This package includes:
  - Color and styling utilities for terminal output
  - A spinner for long-running batch work
  - Yes/no prompts
  - Tables, syntax tree rendering and error display
*/
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes for terminal output.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// colorsEnabled controls whether colors are output.
var colorsEnabled = true

func init() {
	colorsEnabled = DetectColors(os.Stdout)
}

// DetectColors reports whether color output suits f: NO_COLOR must be
// unset and f must be a terminal.
func DetectColors(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// SetColorsEnabled enables or disables color output.
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// ColorsEnabled returns whether colors are enabled.
func ColorsEnabled() bool {
	return colorsEnabled
}

// colorize applies color codes if colors are enabled.
func colorize(color, text string) string {
	if !colorsEnabled {
		return text
	}
	return color + text + Reset
}

// Success formats text as a success message (green).
func Success(text string) string {
	return colorize(Green, text)
}

// Error formats text as an error message (red).
func Error(text string) string {
	return colorize(Red, text)
}

// Warning formats text as a warning message (yellow).
func Warning(text string) string {
	return colorize(Yellow, text)
}

// Info formats text as an info message (cyan).
func Info(text string) string {
	return colorize(Cyan, text)
}

// Highlight formats text as highlighted (bold).
func Highlight(text string) string {
	return colorize(Bold, text)
}

// Dimmed formats text as dimmed.
func Dimmed(text string) string {
	return colorize(Dim, text)
}

// Keyword formats an SQL keyword (blue).
func Keyword(text string) string {
	return colorize(Blue, text)
}

// Literal formats an SQL literal (magenta).
func Literal(text string) string {
	return colorize(Magenta, text)
}

// SuccessIcon returns a green checkmark.
func SuccessIcon() string {
	return colorize(Green, "✓")
}

// ErrorIcon returns a red X.
func ErrorIcon() string {
	return colorize(Red, "✗")
}

// WarningIcon returns a yellow warning sign.
func WarningIcon() string {
	return colorize(Yellow, "⚠")
}

// InfoIcon returns a cyan info icon.
func InfoIcon() string {
	return colorize(Cyan, "ℹ")
}

// PrintSuccess prints a success message with icon.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", SuccessIcon(), Success(msg))
}

// PrintError prints an error message with icon.
func PrintError(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", ErrorIcon(), Error(msg))
}

// PrintWarning prints a warning message with icon.
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", WarningIcon(), Warning(msg))
}

// PrintInfo prints an info message with icon.
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", InfoIcon(), Info(msg))
}

// Separator returns a horizontal line separator.
func Separator(width int) string {
	return strings.Repeat("─", width)
}
