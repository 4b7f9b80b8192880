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
Package logging provides component-scoped, leveled logging for flyparse.

Output Formats:
===============

Text (default), one line per entry:

	2026-01-02T15:04:05.000Z [INFO ] [frontend] statement parsed kind=SELECT clauses=3

JSON, one Entry object per line:

	{"time":"...","level":"INFO","component":"frontend","message":"statement parsed","fields":{"kind":"SELECT"}}

Output, level and format are process-wide and are normally set once at
start-up from the configuration. Every Logger writes through them, so a
change applies to loggers that already exist.

Fields are passed as alternating key/value arguments. A trailing key
without a value is logged with the value "MISSING".
*/
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level. Unknown names yield INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Entry is the JSON form of a log line.
type Entry struct {
	Time      string         `json:"time"`
	Level     string         `json:"level"`
	Component string         `json:"component"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel           = INFO
	jsonMode bool
)

// SetGlobalOutput sets the writer all loggers write to.
func SetGlobalOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetGlobalLevel sets the minimum level that is written.
func SetGlobalLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// SetJSONMode switches between JSON and text output.
func SetJSONMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonMode = enabled
}

// GlobalLevel returns the current minimum level.
func GlobalLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Logger writes entries tagged with a component name and a fixed set of
// context fields. Loggers are safe for concurrent use.
type Logger struct {
	component string
	fields    []any
}

// NewLogger creates a logger for the named component.
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

// With returns a child logger that adds keyvals to every entry.
func (l *Logger) With(keyvals ...any) *Logger {
	fields := make([]any, 0, len(l.fields)+len(keyvals))
	fields = append(fields, l.fields...)
	fields = append(fields, keyvals...)
	return &Logger{component: l.component, fields: fields}
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, keyvals ...any) { l.log(DEBUG, msg, keyvals) }

// Info logs at INFO level.
func (l *Logger) Info(msg string, keyvals ...any) { l.log(INFO, msg, keyvals) }

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, keyvals ...any) { l.log(WARN, msg, keyvals) }

// Error logs at ERROR level.
func (l *Logger) Error(msg string, keyvals ...any) { l.log(ERROR, msg, keyvals) }

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level >= GlobalLevel()
}

func (l *Logger) log(level Level, msg string, keyvals []any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	all := keyvals
	if len(l.fields) > 0 {
		all = append(append([]any{}, l.fields...), keyvals...)
	}
	now := time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")

	if jsonMode {
		entry := Entry{
			Time:      now,
			Level:     level.String(),
			Component: l.component,
			Message:   msg,
			Fields:    fieldMap(all),
		}
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(output, `{"level":"ERROR","message":"log encoding failed: %v"}`+"\n", err)
			return
		}
		output.Write(append(data, '\n'))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%-5s] [%s] %s", now, level.String(), l.component, msg)
	for i := 0; i < len(all); i += 2 {
		key, val := fieldPair(all, i)
		fmt.Fprintf(&b, " %s=%v", key, val)
	}
	b.WriteByte('\n')
	io.WriteString(output, b.String())
}

func fieldPair(keyvals []any, i int) (string, any) {
	key := fmt.Sprint(keyvals[i])
	if i+1 >= len(keyvals) {
		return key, "MISSING"
	}
	return key, keyvals[i+1]
}

func fieldMap(keyvals []any) map[string]any {
	if len(keyvals) == 0 {
		return nil
	}
	m := make(map[string]any, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, val := fieldPair(keyvals, i)
		switch v := val.(type) {
		case error:
			m[key] = v.Error()
		case time.Duration:
			m[key] = v.String()
		case fmt.Stringer:
			m[key] = v.String()
		default:
			m[key] = v
		}
	}
	return m
}
