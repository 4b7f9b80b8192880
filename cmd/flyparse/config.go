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
	"fmt"
	"os"

	"flyparse/internal/config"
	"flyparse/pkg/cli"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the config file, FLYPARSE_* environment
variables and flags have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "toml":
				fmt.Fprint(a.out, a.cfg.ToTOML())
			case "yaml":
				data, err := yaml.Marshal(a.cfg)
				if err != nil {
					return err
				}
				a.out.Write(data)
			default:
				return cli.ErrInvalidValue("format", format, "must be toml or yaml")
			}
			if a.cfg.ConfigFile != "" {
				fmt.Fprintf(a.out, "# loaded from %s\n", a.cfg.ConfigFile)
			}
			return nil
		},
	}
	show.Flags().StringVar(&format, "format", "toml", "file format: toml, yaml")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			return a.configInit(path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func (a *app) configInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return cli.NewCLIError(fmt.Sprintf("%s already exists", path)).
			WithSuggestion("Use --force to overwrite it")
	}
	if err := config.DefaultConfig().SaveToFile(path); err != nil {
		return cli.FromError("", err)
	}
	cli.PrintSuccess(a.out, "Wrote %s", path)
	return nil
}
