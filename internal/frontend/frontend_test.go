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

package frontend

import (
	"context"
	"strings"
	"testing"

	"flyparse/internal/config"
	ferrors "flyparse/internal/errors"
	"flyparse/internal/sql"
)

func TestParse(t *testing.T) {
	fe := New(nil)

	stmt, err := fe.Parse(context.Background(), "SELECT a, b FROM t WHERE a = 1;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if stmt.Kind != sql.StatementSelect {
		t.Errorf("Expected SELECT statement, got %s", stmt.Kind)
	}
	if len(stmt.Clauses) != 3 {
		t.Errorf("Expected 3 clauses, got %d", len(stmt.Clauses))
	}

	if _, err := fe.Parse(context.Background(), "SELECT FROM;"); !ferrors.IsSyntaxError(err) {
		t.Errorf("Expected syntax error, got %v", err)
	}
}

func TestParseInputBound(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxInputBytes = 16
	fe := New(cfg)

	if _, err := fe.Parse(context.Background(), "SELECT a FROM t"); err != nil {
		t.Fatalf("Expected input within bound to parse, got %v", err)
	}
	_, err := fe.Parse(context.Background(), "SELECT a FROM table_with_long_name")
	if ferrors.GetCode(err) != ferrors.ErrCodeInputTooLarge {
		t.Errorf("Expected input too large, got %v", err)
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Parse(ctx, "SELECT a FROM t")
	if ferrors.GetCode(err) != ferrors.ErrCodeCanceled {
		t.Errorf("Expected canceled error, got %v", err)
	}
}

func TestLexerStrictness(t *testing.T) {
	input := "SELECT a # FROM t"

	strict := New(config.DefaultConfig())
	if _, err := strict.Parse(context.Background(), input); !ferrors.IsLexError(err) {
		t.Errorf("Expected lex error in strict mode, got %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.StrictLexer = false
	lenient := New(cfg)
	stmt, err := lenient.Parse(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected lenient mode to skip '#', got %v", err)
	}
	if got := stmt.String(); got != "SELECT a FROM t" {
		t.Errorf("Expected 'SELECT a FROM t', got %q", got)
	}
}

func TestTokens(t *testing.T) {
	tokens, err := New(nil).Tokens(context.Background(), "SELECT * FROM t;")
	if err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}

	want := []sql.TokenType{sql.TokenID, sql.TokenStar, sql.TokenID, sql.TokenID, sql.TokenSemi, sql.TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
		}
	}

	tokens, err = New(nil).Tokens(context.Background(), `SELECT "open`)
	if !ferrors.IsLexError(err) {
		t.Errorf("Expected lex error, got %v", err)
	}
	if len(tokens) != 1 {
		t.Errorf("Expected the tokens before the error to be kept, got %v", tokens)
	}
}

func TestParseAll(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workers = 2
	fe := New(cfg)

	texts := []string{
		"SELECT a FROM t",
		"SELECT FROM;",
		"CREATE TABLE t (id INT)",
		"DROP TABLE t",
		"SELECT * FROM t ORDER BY a DESC LIMIT 3",
	}
	results, err := fe.ParseAll(context.Background(), texts)
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("Expected %d results, got %d", len(texts), len(results))
	}

	wantErr := []bool{false, true, false, true, false}
	for i, r := range results {
		if r.Index != i || r.Source != texts[i] {
			t.Errorf("result %d out of order: %+v", i, r)
		}
		if (r.Err != nil) != wantErr[i] {
			t.Errorf("result %d: expected error=%v, got %v", i, wantErr[i], r.Err)
		}
		if r.Err == nil && r.Statement == nil {
			t.Errorf("result %d: missing statement", i)
		}
		if r.Err != nil && r.Statement != nil {
			t.Errorf("result %d: statement returned together with error", i)
		}
	}
}

func TestParseAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).ParseAll(ctx, []string{"SELECT a FROM t", "SELECT b FROM u"})
	if ferrors.GetCode(err) != ferrors.ErrCodeCanceled {
		t.Errorf("Expected canceled error, got %v", err)
	}
}

func TestParseScript(t *testing.T) {
	script := strings.Join([]string{
		"SELECT a FROM t;",
		"CREATE DATABASE shop;",
		`SELECT a FROM t WHERE x = "a;b";`,
		"",
	}, "\n")

	results, err := New(nil).ParseScript(context.Background(), script)
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%q: unexpected error %v", r.Source, r.Err)
		}
	}
	if results[1].Statement.Kind != sql.StatementCreate {
		t.Errorf("Expected CREATE, got %s", results[1].Statement.Kind)
	}

	if _, err := New(nil).ParseScript(context.Background(), `SELECT "open`); !ferrors.IsLexError(err) {
		t.Errorf("Expected lex error from split, got %v", err)
	}
}
