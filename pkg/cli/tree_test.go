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
	"bytes"
	"strings"
	"testing"

	"flyparse/internal/sql"
)

func renderPlain(t *testing.T, n *TreeNode) string {
	t.Helper()
	withColors(t, false)

	var buf bytes.Buffer
	n.Render(&buf)
	return buf.String()
}

func TestStatementTree(t *testing.T) {
	stmt, err := sql.Parse("SELECT DISTINCT a AS x, b FROM t WHERE a = 1 AND NOT b IS NULL LIMIT 5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := strings.Join([]string{
		"SELECT statement",
		"├── SELECT DISTINCT",
		"│   ├── a AS x",
		"│   └── b",
		"├── FROM",
		"│   └── t",
		"├── WHERE",
		"│   └── AND",
		"│       ├── =",
		"│       │   ├── a",
		"│       │   └── 1",
		"│       └── NOT",
		"│           └── IS NULL",
		"│               └── b",
		"└── LIMIT 5",
		"",
	}, "\n")

	withColors(t, true)
	tree := StatementTree(stmt)
	if got := renderPlain(t, tree); got != want {
		t.Errorf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestCreateTree(t *testing.T) {
	stmt, err := sql.Parse("CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(20))")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := strings.Join([]string{
		"CREATE statement",
		"└── CREATE TABLE users",
		"    ├── id",
		"    │   ├── INT",
		"    │   ├── PRIMARY",
		"    │   └── KEY",
		"    └── name",
		"        └── VARCHAR(20)",
		"",
	}, "\n")

	withColors(t, true)
	tree := StatementTree(stmt)
	if got := renderPlain(t, tree); got != want {
		t.Errorf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpressionTreeLeaves(t *testing.T) {
	tests := []struct {
		expr sql.Expression
		want string
	}{
		{&sql.Literal{Kind: sql.LiteralString, Value: "x"}, "\"x\"\n"},
		{&sql.Literal{Kind: sql.LiteralNull, Value: "NULL"}, "NULL\n"},
		{&sql.ColumnRef{Name: "Price"}, "Price\n"},
		{&sql.ParenExpr{Inner: &sql.ColumnRef{Name: "a"}}, "( )\n└── a\n"},
	}

	for _, tt := range tests {
		if got := renderPlain(t, ExpressionTree(tt.expr)); got != tt.want {
			t.Errorf("ExpressionTree(%s) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}
