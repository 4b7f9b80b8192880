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
	"os"
	"strconv"
	"time"

	"flyparse/internal/archive"
	"flyparse/internal/compression"
	"flyparse/internal/config"
	"flyparse/internal/sql"
	"flyparse/pkg/cli"

	"github.com/spf13/cobra"
)

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Store parsed scripts in compressed archives",
	}
	cmd.AddCommand(newArchiveWriteCmd(a), newArchiveShowCmd(a))
	return cmd
}

func newArchiveWriteCmd(a *app) *cobra.Command {
	var (
		force bool
		algo  string
	)

	cmd := &cobra.Command{
		Use:   "write SCRIPT ARCHIVE",
		Short: "Parse a script and store the results in an archive",
		Long: `Split SCRIPT into statements, parse them in parallel and store every
statement with its normalized text and syntax tree, or its error, in
ARCHIVE. Statements that fail to parse are kept in the archive.`,
		Example: `  flyparse archive write schema.sql schema.fpa
  flyparse archive write --compression lz4 --force queries.sql queries.fpa`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Compression
			if cmd.Flags().Changed("compression") {
				name = algo
			}
			return a.archiveWrite(cmd.Context(), args[0], args[1], name, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing archive without asking")
	cmd.Flags().StringVar(&algo, "compression", "", "compression: none, gzip, lz4, snappy, zstd (default from config)")
	return cmd
}

func (a *app) archiveWrite(ctx context.Context, scriptPath, archivePath, algoName string, force bool) error {
	algo, err := compression.ParseAlgorithm(algoName)
	if err != nil {
		return cli.ErrInvalidValue("compression", algoName, err.Error())
	}

	if _, err := os.Stat(archivePath); err == nil && !force {
		if !isTerminalReader(a.in) ||
			!cli.NewPrompter(a.in, a.errOut).Confirm(fmt.Sprintf("%s exists and will be replaced", archivePath)) {
			return cli.NewCLIError(fmt.Sprintf("%s already exists", archivePath)).
				WithSuggestion("Use --force to overwrite it")
		}
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return cli.ErrFileNotFound(scriptPath, err)
	}
	script := string(data)

	spinner := cli.NewSpinner(a.errOut, "Parsing "+scriptPath, isTerminal(a.errOut))
	spinner.Start()
	defer spinner.Stop()

	start := time.Now()
	results, err := a.fe.ParseScript(ctx, script)
	if err != nil {
		return cli.FromError(script, err)
	}

	arc := archive.New(algo)
	for _, r := range results {
		rec, err := archive.NewRecord(r.Source, r.Statement, r.Err)
		if err != nil {
			return err
		}
		arc.Add(rec)
	}

	spinner.UpdateMessage("Writing " + archivePath)
	if err := arc.WriteFile(archivePath); err != nil {
		return cli.ErrArchive(archivePath, err)
	}
	spinner.Stop()

	a.logger.Info("Archive written",
		"path", archivePath,
		"id", arc.ID,
		"statements", len(arc.Records),
		"failed", arc.Failed(),
		"compression", algo,
		"duration", time.Since(start))

	cli.PrintSuccess(a.out, "Archived %d statements (%d failed) to %s", len(arc.Records), arc.Failed(), archivePath)
	cli.KeyValue(a.out, "ID", arc.ID.String(), 12)
	return nil
}

func newArchiveShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ARCHIVE",
		Short: "List the statements stored in an archive",
		Long: `List the statements stored in ARCHIVE. With --output tree the syntax
tree of every parsed statement is drawn; with --output json the archive is
printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := archive.ReadFile(args[0])
			if err != nil {
				return cli.ErrArchive(args[0], err)
			}
			return showArchive(a.out, arc, a.cfg.Output)
		},
	}
}

// archiveJSON is the JSON form of an archive.
type archiveJSON struct {
	ID          string           `json:"id"`
	Created     time.Time        `json:"created"`
	Compression string           `json:"compression"`
	Records     []archive.Record `json:"records"`
}

func showArchive(w io.Writer, arc *archive.Archive, output string) error {
	if output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(archiveJSON{
			ID:          arc.ID.String(),
			Created:     arc.Created,
			Compression: arc.Algorithm.String(),
			Records:     arc.Records,
		})
	}

	cli.KeyValue(w, "ID", arc.ID.String(), 12)
	cli.KeyValue(w, "Created", arc.Created.Format(time.RFC3339), 12)
	cli.KeyValue(w, "Compression", arc.Algorithm.String(), 12)
	cli.KeyValue(w, "Statements", fmt.Sprintf("%d (%d failed)", len(arc.Records), arc.Failed()), 12)
	fmt.Fprintln(w)

	if output == config.OutputTree {
		for i, rec := range arc.Records {
			fmt.Fprintf(w, "%s %s\n", cli.Dimmed("#"+strconv.Itoa(i+1)), rec.Source)
			if !rec.OK() {
				cli.PrintError(w, "%s", rec.Error)
				continue
			}
			stmt, err := sql.Parse(rec.Normalized)
			if err != nil {
				return cli.ErrArchive("record "+strconv.Itoa(i+1), err)
			}
			cli.StatementTree(stmt).Render(w)
			fmt.Fprintln(w)
		}
		return nil
	}

	table := cli.NewTable("#", "Kind", "Statement")
	for i, rec := range arc.Records {
		if rec.OK() {
			table.AddRow(strconv.Itoa(i+1), rec.Kind, rec.Normalized)
		} else {
			table.AddRow(strconv.Itoa(i+1), cli.Error("ERROR "+rec.SQLState), rec.Source+"  "+cli.Dimmed(rec.Error))
		}
	}
	return table.Render(w)
}

// isTerminalReader reports whether r is an interactive terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && cli.IsTerminal(f)
}
