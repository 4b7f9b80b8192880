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
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ansiRegex matches ANSI escape sequences for stripping from strings.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// VisibleLen returns the visible length of a string, excluding ANSI escape codes.
// This is essential for proper alignment when strings contain color codes.
func VisibleLen(s string) int {
	return len(ansiRegex.ReplaceAllString(s, ""))
}

// PadRight pads a string to the specified visible width, accounting for ANSI codes.
// If the string (excluding ANSI codes) is already >= width, returns the original string.
func PadRight(s string, width int) string {
	visible := VisibleLen(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "plain":
		return FormatPlain
	default:
		return FormatTable
	}
}

// Table provides formatted table output.
type Table struct {
	headers []string
	rows    [][]string
	format  OutputFormat
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		format:  FormatTable,
	}
}

// SetFormat sets the output format.
func (t *Table) SetFormat(format OutputFormat) {
	t.format = format
}

// AddRow adds a row to the table.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w in the configured format.
func (t *Table) Render(w io.Writer) error {
	switch t.format {
	case FormatJSON:
		return t.renderJSON(w)
	case FormatPlain:
		t.renderPlain(w)
	default:
		t.renderTable(w)
	}
	return nil
}

// columnWidths returns the visible width of every column, at least 3.
func (t *Table) columnWidths() []int {
	numCols := len(t.headers)
	for _, row := range t.rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	widths := make([]int, numCols)
	for i, h := range t.headers {
		widths[i] = max(widths[i], VisibleLen(h))
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], VisibleLen(cell))
		}
	}
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}
	return widths
}

func (t *Table) renderTable(w io.Writer) {
	if len(t.rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}

	const (
		horizontal = "─"
		vertical   = "│"
	)

	widths := t.columnWidths()
	border := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = strings.Repeat(horizontal, width+2)
		}
		return Dimmed(left + strings.Join(parts, mid) + right)
	}
	line := func(cells []string, style func(string) string) string {
		var b strings.Builder
		b.WriteString(Dimmed(vertical))
		for i, width := range widths {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			b.WriteString(style(" " + PadRight(val, width) + " "))
			b.WriteString(Dimmed(vertical))
		}
		return b.String()
	}
	plain := func(s string) string { return s }

	fmt.Fprintln(w, border("┌", "┬", "┐"))
	if len(t.headers) > 0 {
		fmt.Fprintln(w, line(t.headers, Highlight))
		fmt.Fprintln(w, border("├", "┼", "┤"))
	}
	for _, row := range t.rows {
		fmt.Fprintln(w, line(row, plain))
	}
	fmt.Fprintln(w, border("└", "┴", "┘"))
	fmt.Fprintf(w, "(%d rows)\n", len(t.rows))
}

func (t *Table) renderJSON(w io.Writer) error {
	result := make([]map[string]string, len(t.rows))
	for i, row := range t.rows {
		rowMap := make(map[string]string)
		for j, val := range row {
			if j < len(t.headers) {
				rowMap[t.headers[j]] = val
			} else {
				rowMap[fmt.Sprintf("col%d", j)] = val
			}
		}
		result[i] = rowMap
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (t *Table) renderPlain(w io.Writer) {
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

// KeyValue prints a key-value pair with alignment.
func KeyValue(w io.Writer, key, value string, keyWidth int) {
	fmt.Fprintf(w, "  %s %s\n", PadRight(Highlight(key+":"), keyWidth+1), value)
}
