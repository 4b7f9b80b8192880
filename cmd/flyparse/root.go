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
	"io"
	"os"
	"strings"

	"flyparse/internal/config"
	"flyparse/internal/frontend"
	"flyparse/internal/logging"
	"flyparse/pkg/cli"

	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configFile string
	logLevel   string
	jsonLogs   bool
	output     string
	noColor    bool
	lenient    bool
	workers    int
}

// app is the state shared by the commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	flags   rootFlags
	manager *config.Manager
	cfg     *config.Config
	fe      *frontend.Frontend
	logger  *logging.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:      in,
		out:     out,
		errOut:  errOut,
		manager: config.NewManager(),
		logger:  logging.NewLogger("cli"),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "flyparse",
		Short: "SQL lexer and parser",
		Long: `flyparse tokenizes and parses SQL statements.

Supported statements:
  SELECT  - select list, FROM, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT
  CREATE  - CREATE TABLE with column definitions, CREATE DATABASE

Settings come from the config file, FLYPARSE_* environment variables and
flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default: $FLYPARSE_CONFIG or "+config.DefaultConfigPath()+")")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flags.jsonLogs, "json-logs", false, "write logs as JSON")
	pf.StringVarP(&a.flags.output, "output", "o", "", "output format: text, json, tree")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&a.flags.lenient, "lenient", false, "skip unrecognized characters instead of failing")
	pf.IntVar(&a.flags.workers, "workers", 0, "parallel parsers for scripts (0 = number of CPUs)")

	root.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newShellCmd(a),
		newArchiveCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// configPath resolves the config file: the --config flag, then
// FLYPARSE_CONFIG, then the per-user default when it exists.
func (a *app) configPath() string {
	if a.flags.configFile != "" {
		return a.flags.configFile
	}
	if p := os.Getenv(config.EnvConfigFile); p != "" {
		return p
	}
	p := config.DefaultConfigPath()
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// setup loads the configuration, applies flag overrides and builds the
// front end.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.manager.Load(a.configPath())
	if err != nil {
		return cli.ErrConfig(err)
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return cli.ErrConfig(err)
	}
	a.configure(cfg)

	a.manager.OnReload(func(next *config.Config) {
		a.applyFlags(cmd, next)
		if err := next.Validate(); err != nil {
			a.logger.Warn("Reloaded configuration rejected", "error", err)
			return
		}
		a.configure(next)
		a.logger.Info("Configuration reloaded", "file", next.ConfigFile)
	})
	return nil
}

// applyFlags copies explicitly set flags over cfg.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(a.flags.logLevel)
	}
	if flags.Changed("json-logs") {
		cfg.LogJSON = a.flags.jsonLogs
	}
	if flags.Changed("output") {
		cfg.Output = strings.ToLower(a.flags.output)
	}
	if flags.Changed("no-color") && a.flags.noColor {
		cfg.Color = false
	}
	if flags.Changed("lenient") && a.flags.lenient {
		cfg.StrictLexer = false
	}
	if flags.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
}

// configure makes cfg the active configuration.
func (a *app) configure(cfg *config.Config) {
	a.cfg = cfg
	logging.SetGlobalOutput(a.errOut)
	logging.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	logging.SetJSONMode(cfg.LogJSON)
	cli.SetColorsEnabled(cfg.Color && isTerminal(a.out))
	a.fe = frontend.New(cfg)

	a.logger.Debug("Configuration loaded",
		"file", cfg.ConfigFile,
		"output", cfg.Output,
		"strict_lexer", cfg.StrictLexer)
}

// isTerminal reports whether w is a terminal that accepts colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && cli.DetectColors(f)
}

// readInput returns the SQL text named by a command's arguments: the file
// given with --file, the joined arguments, or standard input.
func (a *app) readInput(file string, args []string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", cli.NewCLIError("Both --file and SQL arguments given").
				WithExitCode(cli.ExitUsage).
				WithSuggestion("Pass either a file or the statement text")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", cli.ErrFileNotFound(file, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(a.in)
	if err != nil {
		return "", cli.NewCLIError("Cannot read standard input").WithDetail(err.Error()).WithCause(err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", cli.ErrMissingArgument("SQL", "flyparse parse \"SELECT a FROM t\"")
	}
	return string(data), nil
}
