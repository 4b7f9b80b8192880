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
flyparse - SQL front end

flyparse tokenizes and parses SQL statements and shows the resulting syntax
trees. It also stores parsed scripts in compressed archives.

Usage:

	flyparse parse "SELECT a FROM t WHERE a > 1"   # Parse one statement
	flyparse parse --file script.sql --output tree # Parse every statement of a script
	flyparse tokens "SELECT * FROM t"              # Show the token stream
	flyparse shell                                 # Interactive shell
	flyparse archive write script.sql out.fpa      # Parse a script into an archive
	flyparse archive show out.fpa                  # List an archive
	flyparse config init                           # Write a default config file
*/
package main

import (
	"context"
	"os"
	"os/signal"

	"flyparse/pkg/cli"
)

const (
	version   = "1.0.0"
	copyright = "Copyright (c) 2026 Firefly Software Solutions Inc."
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		ce := cli.FromError("", err)
		ce.Print(os.Stderr)
		stop()
		os.Exit(ce.ExitCode)
	}
}
