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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Prompt displays a prompt and reads one line of input.
func (p *Prompter) Prompt(message string) (string, error) {
	fmt.Fprint(p.out, message)
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// YesNo prompts for a yes/no answer. An empty answer or a read failure
// selects the default.
func (p *Prompter) YesNo(message string, defaultYes bool) bool {
	var prompt string
	if defaultYes {
		prompt = fmt.Sprintf("%s [%s/n]: ", message, Highlight("Y"))
	} else {
		prompt = fmt.Sprintf("%s [y/%s]: ", message, Highlight("N"))
	}

	input, err := p.Prompt(prompt)
	if err != nil {
		return defaultYes
	}

	input = strings.ToLower(input)
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// Confirm prompts for confirmation before a destructive operation.
// It defaults to no.
func (p *Prompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s %s\n", WarningIcon(), Warning(message))
	return p.YesNo("Are you sure you want to continue?", false)
}
