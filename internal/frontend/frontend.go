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
Package frontend is the entry point used by the CLI to turn SQL text into
syntax trees.

It applies the configured policy around the lexer and parser: the input
size bound, lexer strictness and logging. Each statement is parsed by its
own Lexer and Parser, so batches of statements are parsed concurrently.

Usage:

	fe := frontend.New(cfg)
	stmt, err := fe.Parse(ctx, "SELECT a FROM t")

	results, err := fe.ParseScript(ctx, script)
	for _, r := range results {
		if r.Err != nil {
			// r.Source failed to parse
		}
	}
*/
package frontend

import (
	"context"
	"runtime"
	"time"

	"flyparse/internal/config"
	ferrors "flyparse/internal/errors"
	"flyparse/internal/logging"
	"flyparse/internal/sql"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of parsing one statement of a batch.
type Result struct {
	Index     int
	Source    string
	Statement *sql.Statement
	Err       error
}

// Frontend parses SQL text according to a configuration.
// It holds no per-parse state and is safe for concurrent use.
type Frontend struct {
	cfg    *config.Config
	logger *logging.Logger
}

// New creates a Frontend. A nil cfg selects the defaults.
func New(cfg *config.Config) *Frontend {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Frontend{
		cfg:    cfg,
		logger: logging.NewLogger("frontend"),
	}
}

// Config returns the configuration the Frontend was built with.
func (f *Frontend) Config() *config.Config {
	return f.cfg
}

func (f *Frontend) lexerOptions() []sql.LexerOption {
	if f.cfg.StrictLexer {
		return nil
	}
	return []sql.LexerOption{sql.WithLenientSkipping()}
}

// checkInput rejects canceled contexts and oversized input before any
// tokenizing happens.
func (f *Frontend) checkInput(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return ferrors.Canceled(err)
	}
	if f.cfg.MaxInputBytes > 0 && len(text) > f.cfg.MaxInputBytes {
		return ferrors.InputTooLarge(len(text), f.cfg.MaxInputBytes)
	}
	return nil
}

// Parse parses a single statement.
func (f *Frontend) Parse(ctx context.Context, text string) (*sql.Statement, error) {
	if err := f.checkInput(ctx, text); err != nil {
		f.logger.Warn("Input rejected", "bytes", len(text), "error", err)
		return nil, err
	}

	start := time.Now()
	stmt, err := sql.Parse(text, f.lexerOptions()...)
	if err != nil {
		f.logger.Warn("Parse failed", "code", int(ferrors.GetCode(err)), "error", err)
		return nil, err
	}
	if f.logger.Enabled(logging.DEBUG) {
		f.logger.Debug("Parsed statement",
			"kind", stmt.Kind,
			"clauses", len(stmt.Clauses),
			"duration", time.Since(start))
	}
	return stmt, nil
}

// Tokens returns the lexer stream of text up to and including END_FILE.
func (f *Frontend) Tokens(ctx context.Context, text string) ([]sql.Token, error) {
	if err := f.checkInput(ctx, text); err != nil {
		return nil, err
	}

	lexer := sql.NewLexer(text, f.lexerOptions()...)
	var tokens []sql.Token
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			f.logger.Warn("Tokenizing failed", "error", err)
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == sql.TokenEOF {
			return tokens, nil
		}
	}
}

// workers returns the concurrency limit for batch parsing.
func (f *Frontend) workers() int {
	if f.cfg.Workers > 0 {
		return f.cfg.Workers
	}
	return runtime.NumCPU()
}

// ParseAll parses every text concurrently. Parse failures are reported per
// item in Result.Err; only cancellation of ctx fails the whole batch.
// Results are returned in input order.
func (f *Frontend) ParseAll(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers())
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return ferrors.Canceled(err)
			}
			stmt, err := f.Parse(gctx, text)
			if ferrors.GetCode(err) == ferrors.ErrCodeCanceled {
				return err
			}
			results[i] = Result{Index: i, Source: text, Statement: stmt, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	f.logger.Debug("Parsed batch", "statements", len(texts), "failed", failed, "workers", f.workers())
	return results, nil
}

// ParseScript splits script at ';' and parses each statement.
func (f *Frontend) ParseScript(ctx context.Context, script string) ([]Result, error) {
	if err := f.checkInput(ctx, script); err != nil {
		return nil, err
	}
	statements, err := sql.SplitStatements(script, f.lexerOptions()...)
	if err != nil {
		f.logger.Warn("Splitting script failed", "error", err)
		return nil, err
	}
	return f.ParseAll(ctx, statements)
}
