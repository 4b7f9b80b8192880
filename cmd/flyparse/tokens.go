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
	"strconv"

	"flyparse/internal/config"
	"flyparse/internal/sql"
	"flyparse/pkg/cli"

	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "tokens [SQL...]",
		Short: "Print the token stream of SQL text",
		Long: `Tokenize SQL text and print one row per token: its type, its value
and its byte offset. The stream always ends with END_FILE. On a lex error
the tokens read so far are printed before the error.`,
		Example: `  flyparse tokens 'SELECT a FROM t WHERE b <> "x"'
  flyparse tokens --format plain --file query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(file, args)
			if err != nil {
				return err
			}

			tokens, lexErr := a.fe.Tokens(cmd.Context(), input)
			table := tokenTable(tokens)
			switch {
			case cmd.Flags().Changed("format"):
				table.SetFormat(cli.ParseOutputFormat(format))
			case a.cfg.Output == config.OutputJSON:
				table.SetFormat(cli.FormatJSON)
			}
			if err := table.Render(a.out); err != nil {
				return err
			}
			if lexErr != nil {
				return cli.FromError(input, lexErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read SQL from a file")
	cmd.Flags().StringVar(&format, "format", "table", "table format: table, json, plain")
	return cmd
}

// tokenTable lists tokens with their type, value and offset.
func tokenTable(tokens []sql.Token) *cli.Table {
	table := cli.NewTable("#", "Type", "Value", "Pos")
	for i, tok := range tokens {
		value := tok.Value
		if tok.Type == sql.TokenString {
			value = tok.Lexeme()
		}
		table.AddRow(strconv.Itoa(i+1), tok.Type.String(), value, strconv.Itoa(tok.Pos))
	}
	return table
}
