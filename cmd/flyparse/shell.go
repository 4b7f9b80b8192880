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


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"flyparse/internal/config"
	"flyparse/internal/logging"
	"flyparse/internal/sql"
	"flyparse/pkg/cli"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	shellPrompt         = "flyparse> "
	shellContinuePrompt = "      -> "
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive SQL shell",
		Long: `Start an interactive shell. Statements may span several lines and run
when a line ends with ';'. Lines starting with a backslash are shell
commands; type \h for the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context())
		},
	}
}

// shell holds the state of one interactive session.
type shell struct {
	a       *app
	out     io.Writer
	logger  *logging.Logger
	session string
	output  string
	buf     strings.Builder
}

func newShell(a *app, out io.Writer) *shell {
	session := uuid.NewString()
	return &shell{
		a:       a,
		out:     out,
		logger:  logging.NewLogger("shell").With("session", session),
		session: session,
		output:  a.cfg.Output,
	}
}

func (a *app) runShell(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            shellPrompt,
		HistoryFile:       a.cfg.HistoryFile,
		AutoComplete:      keywordCompleter{},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return cli.NewCLIError("Cannot start the shell").WithDetail(err.Error()).WithCause(err)
	}
	defer rl.Close()

	s := newShell(a, rl.Stdout())
	s.banner()
	s.logger.Info("Shell started", "history", a.cfg.HistoryFile)
	defer s.logger.Info("Shell closed")

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if s.buf.Len() > 0 || line != "" {
				s.buf.Reset()
				continue
			}
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		if s.handleLine(ctx, line) {
			return nil
		}
	}
}

func (s *shell) banner() {
	fmt.Fprintf(s.out, "%s %s\n", cli.Highlight("flyparse"), version)
	fmt.Fprintf(s.out, "Type %s for help, %s to quit.\n", cli.Info(`\h`), cli.Info(`\q`))
	fmt.Fprintln(s.out, cli.Dimmed("session "+s.session))
	fmt.Fprintln(s.out)
}

func (s *shell) prompt() string {
	if s.buf.Len() > 0 {
		return shellContinuePrompt
	}
	return shellPrompt
}

// handleLine processes one line of input and reports whether the shell
// should exit.
func (s *shell) handleLine(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if s.buf.Len() == 0 {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, `\`) || trimmed == "exit" || trimmed == "quit" {
			return s.command(ctx, trimmed)
		}
	}

	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)
	if !strings.HasSuffix(trimmed, ";") {
		return false
	}

	script := s.buf.String()
	s.buf.Reset()
	s.run(ctx, script)
	return false
}

// run parses every statement of script and prints the results.
func (s *shell) run(ctx context.Context, script string) {
	results, err := s.a.fe.ParseScript(ctx, script)
	if err != nil {
		cli.FromError(script, err).Print(s.out)
		return
	}
	for _, r := range results {
		if r.Err != nil {
			s.logger.Debug("Statement rejected", "error", r.Err)
			cli.ErrParseFailed(r.Source, r.Err).Print(s.out)
			continue
		}
		if err := renderStatement(s.out, r.Statement, s.output); err != nil {
			cli.PrintError(s.out, "%v", err)
		}
	}
}

// command runs a backslash command and reports whether the shell should
// exit.
func (s *shell) command(ctx context.Context, input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case `\q`, "exit", "quit":
		return true
	case `\h`, `\?`:
		s.help()
	case `\o`:
		s.setOutput(arg)
	case `\t`:
		s.tokens(ctx, arg)
	case `\k`:
		fmt.Fprintln(s.out, strings.Join(sql.Keywords(), " "))
	case `\c`:
		s.buf.Reset()
	case `\reload`:
		if err := s.a.manager.Reload(); err != nil {
			cli.FromError("", err).Print(s.out)
			return false
		}
		s.output = s.a.cfg.Output
		cli.PrintSuccess(s.out, "configuration reloaded")
	default:
		cli.NewCLIError(fmt.Sprintf("Unknown command: %s", name)).
			WithSuggestion(`Type \h for a list of available commands`).
			Print(s.out)
	}
	return false
}

func (s *shell) help() {
	table := cli.NewTable("Command", "Description")
	table.SetFormat(cli.FormatPlain)
	table.AddRow(`\h`, "show this help")
	table.AddRow(`\q`, "quit (also exit, quit, Ctrl-D)")
	table.AddRow(`\o [text|json|tree]`, "show or set the output format")
	table.AddRow(`\t <sql>`, "show the tokens of <sql>")
	table.AddRow(`\k`, "list reserved words")
	table.AddRow(`\c`, "discard the statement being typed")
	table.AddRow(`\reload`, "re-read the configuration file")
	table.Render(s.out)
}

func (s *shell) setOutput(arg string) {
	if arg == "" {
		fmt.Fprintf(s.out, "output: %s\n", s.output)
		return
	}
	switch arg = strings.ToLower(arg); arg {
	case config.OutputText, config.OutputJSON, config.OutputTree:
		s.output = arg
		s.logger.Debug("Output changed", "output", arg)
	default:
		cli.ErrInvalidValue("output", arg, "must be text, json or tree").Print(s.out)
	}
}

func (s *shell) tokens(ctx context.Context, text string) {
	if text == "" {
		cli.ErrMissingArgument("sql", `\t SELECT a FROM t`).Print(s.out)
		return
	}
	tokens, err := s.a.fe.Tokens(ctx, text)
	tokenTable(tokens).Render(s.out)
	if err != nil {
		cli.FromError(text, err).Print(s.out)
	}
}

// keywordCompleter completes the word under the cursor to a reserved word,
// keeping the case the user started typing in.
type keywordCompleter struct{}

func (keywordCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && (unicode.IsLetter(line[start-1]) || line[start-1] == '_') {
		start--
	}
	word := string(line[start:pos])
	if word == "" {
		return nil, 0
	}

	lower := strings.ToLower(word) == word
	prefix := strings.ToUpper(word)
	var candidates [][]rune
	for _, kw := range sql.Keywords() {
		if !strings.HasPrefix(kw, prefix) || kw == prefix {
			continue
		}
		suffix := kw[len(prefix):]
		if lower {
			suffix = strings.ToLower(suffix)
		}
		candidates = append(candidates, []rune(suffix+" "))
	}
	return candidates, len(line[start:pos])
}
