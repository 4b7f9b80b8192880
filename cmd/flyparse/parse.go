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
	"encoding/json"
	"fmt"
	"io"

	"flyparse/internal/archive"
	"flyparse/internal/config"
	"flyparse/internal/frontend"
	"flyparse/internal/sql"
	"flyparse/pkg/cli"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse [SQL...]",
		Short: "Parse SQL and print the syntax tree",
		Long: `Parse SQL and print the result in the configured output format.

Arguments are joined and parsed as a single statement. With --file, or
when no arguments are given, the input is read as a script: it is split at
';' and every statement is parsed.

Output formats:
  text  - normalized SQL
  json  - the syntax tree as JSON
  tree  - the syntax tree drawn in the terminal`,
		Example: `  flyparse parse "select a, b from t where a > 1 order by b desc"
  flyparse parse -o tree "CREATE TABLE users (id INT, name VARCHAR(64))"
  flyparse parse --file schema.sql -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(file, args)
			if err != nil {
				return err
			}
			if file == "" && len(args) > 0 {
				return a.parseStatement(cmd.Context(), input)
			}
			return a.parseScript(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read SQL from a file")
	return cmd
}

func (a *app) parseStatement(ctx context.Context, input string) error {
	stmt, err := a.fe.Parse(ctx, input)
	if err != nil {
		return cli.FromError(input, err)
	}
	return renderStatement(a.out, stmt, a.cfg.Output)
}

func (a *app) parseScript(ctx context.Context, script string) error {
	results, err := a.fe.ParseScript(ctx, script)
	if err != nil {
		return cli.FromError(script, err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if a.cfg.Output == config.OutputJSON {
		if err := renderRecords(a.out, results); err != nil {
			return err
		}
	} else {
		for i, r := range results {
			if r.Err != nil {
				cli.ErrParseFailed(r.Source, r.Err).Print(a.errOut)
				continue
			}
			if i > 0 && a.cfg.Output == config.OutputTree {
				fmt.Fprintln(a.out)
			}
			if err := renderStatement(a.out, r.Statement, a.cfg.Output); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return cli.NewCLIError(fmt.Sprintf("%d of %d statements failed to parse", failed, len(results))).
			WithExitCode(cli.ExitParseError)
	}
	return nil
}

// renderStatement writes stmt in the given output format.
func renderStatement(w io.Writer, stmt *sql.Statement, output string) error {
	switch output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stmt)
	case config.OutputTree:
		cli.StatementTree(stmt).Render(w)
		return nil
	default:
		_, err := fmt.Fprintln(w, stmt.String()+";")
		return err
	}
}

// renderRecords writes the results of a script as a JSON array with one
// object per statement.
func renderRecords(w io.Writer, results []frontend.Result) error {
	records := make([]archive.Record, len(results))
	for i, r := range results {
		rec, err := archive.NewRecord(r.Source, r.Statement, r.Err)
		if err != nil {
			return err
		}
		records[i] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
