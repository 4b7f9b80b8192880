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

package sql

import (
	"reflect"
	"strings"
	"testing"

	ferrors "flyparse/internal/errors"
)

func mustParse(t *testing.T, input string) *Statement {
	t.Helper()
	stmt, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return stmt
}

func TestParseSelectWithAllCoreClauses(t *testing.T) {
	stmt := mustParse(t, `SELECT age, sex FROM Student, Teachers WHERE name = "Frank" AND age = 34 GROUP BY Name, Class;`)

	if stmt.Kind != StatementSelect {
		t.Fatalf("Expected SELECT statement, got %v", stmt.Kind)
	}
	kinds := stmt.ClauseKinds()
	expectedKinds := []ClauseKind{ClauseSelect, ClauseFrom, ClauseWhere, ClauseGroupBy}
	if !reflect.DeepEqual(kinds, expectedKinds) {
		t.Fatalf("Expected clauses %v, got %v", expectedKinds, kinds)
	}

	sel := stmt.Clauses[0].(*SelectClause)
	if !reflect.DeepEqual(sel.Items, []SelectItem{{Column: "age"}, {Column: "sex"}}) {
		t.Errorf("Unexpected select items: %+v", sel.Items)
	}

	from := stmt.Clauses[1].(*FromClause)
	if !reflect.DeepEqual(from.Tables, []TableRef{{Name: "Student"}, {Name: "Teachers"}}) {
		t.Errorf("Unexpected tables: %+v", from.Tables)
	}

	where := stmt.Clauses[2].(*WhereClause)
	expectedCond := &BinaryExpr{
		Op:    OpAnd,
		Left:  &BinaryExpr{Op: OpEq, Left: &ColumnRef{Name: "name"}, Right: &Literal{Kind: LiteralString, Value: "Frank"}},
		Right: &BinaryExpr{Op: OpEq, Left: &ColumnRef{Name: "age"}, Right: &Literal{Kind: LiteralNumber, Value: "34"}},
	}
	if !reflect.DeepEqual(where.Condition, Expression(expectedCond)) {
		t.Errorf("Expected condition %s, got %s", expectedCond, where.Condition)
	}

	group := stmt.Clauses[3].(*GroupByClause)
	if !reflect.DeepEqual(group.Columns, []string{"Name", "Class"}) {
		t.Errorf("Unexpected group columns: %v", group.Columns)
	}
}

func TestParseSelectStar(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM T;")
	if len(stmt.Clauses) != 2 {
		t.Fatalf("Expected 2 clauses, got %d", len(stmt.Clauses))
	}
	sel := stmt.Clauses[0].(*SelectClause)
	if !sel.IsStar() {
		t.Errorf("Expected star select, got %+v", sel.Items)
	}
	from := stmt.Clauses[1].(*FromClause)
	if len(from.Tables) != 1 || from.Tables[0].Name != "T" {
		t.Errorf("Expected table T, got %+v", from.Tables)
	}
}

func TestParseCreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE Foo (id INT, name VARCHAR(255));")
	if stmt.Kind != StatementCreate || len(stmt.Clauses) != 1 {
		t.Fatalf("Expected one CREATE clause, got %v", stmt)
	}
	create := stmt.Clauses[0].(*CreateClause)
	expected := &CreateClause{
		Object: ObjectTable,
		Name:   "Foo",
		Columns: []ColumnDef{
			{Name: "id", Attributes: []string{"INT"}},
			{Name: "name", Attributes: []string{"VARCHAR(255)"}},
		},
	}
	if !reflect.DeepEqual(create, expected) {
		t.Errorf("Expected %+v, got %+v", expected, create)
	}
}

func TestParseCreateVariants(t *testing.T) {
	tests := []struct {
		input    string
		expected *CreateClause
	}{
		{
			"CREATE DATABASE shop",
			&CreateClause{Object: ObjectDatabase, Name: "shop"},
		},
		{
			"create table t",
			&CreateClause{Object: ObjectTable, Name: "t"},
		},
		{
			`CREATE TABLE t (id INT NOT NULL, note TEXT DEFAULT "x", n DECIMAL(10) UNSIGNED)`,
			&CreateClause{Object: ObjectTable, Name: "t", Columns: []ColumnDef{
				{Name: "id", Attributes: []string{"INT", "NOT", "NULL"}},
				{Name: "note", Attributes: []string{"TEXT", "DEFAULT", `"x"`}},
				{Name: "n", Attributes: []string{"DECIMAL(10)", "UNSIGNED"}},
			}},
		},
		{
			"CREATE TABLE t (flag)",
			&CreateClause{Object: ObjectTable, Name: "t", Columns: []ColumnDef{{Name: "flag"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := mustParse(t, tt.input)
			create := stmt.Clauses[0].(*CreateClause)
			if !reflect.DeepEqual(create, tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, create)
			}
		})
	}
}

func TestParseSelectVariants(t *testing.T) {
	stmt := mustParse(t, "SELECT DISTINCT a AS x, b y FROM t AS u ORDER BY a DESC, b LIMIT 10")

	sel := stmt.Clauses[0].(*SelectClause)
	if !sel.Distinct {
		t.Error("Expected DISTINCT")
	}
	if !reflect.DeepEqual(sel.Items, []SelectItem{{Column: "a", Alias: "x"}, {Column: "b", Alias: "y"}}) {
		t.Errorf("Unexpected items: %+v", sel.Items)
	}

	from, ok := FindClause[*FromClause](stmt)
	if !ok || from.Tables[0].Alias != "u" {
		t.Errorf("Expected table alias u, got %+v", from)
	}

	order, ok := FindClause[*OrderByClause](stmt)
	if !ok {
		t.Fatal("Expected ORDER BY clause")
	}
	expectedOrder := []OrderItem{{Column: "a", Direction: SortDesc}, {Column: "b", Direction: SortAsc}}
	if !reflect.DeepEqual(order.Items, expectedOrder) {
		t.Errorf("Expected %+v, got %+v", expectedOrder, order.Items)
	}

	limit, ok := FindClause[*LimitClause](stmt)
	if !ok {
		t.Fatal("Expected LIMIT clause")
	}
	if n, err := limit.Count(); err != nil || n != 10 {
		t.Errorf("Expected limit 10, got %d (err=%v)", n, err)
	}
}

func TestParseHaving(t *testing.T) {
	stmt := mustParse(t, "SELECT dept FROM emp GROUP BY dept HAVING total > 5")
	having, ok := FindClause[*HavingClause](stmt)
	if !ok {
		t.Fatal("Expected HAVING clause")
	}
	if having.Condition.String() != "total > 5" {
		t.Errorf("Expected 'total > 5', got '%s'", having.Condition)
	}
}

func TestParseClauseOrderIsPreserved(t *testing.T) {
	stmt := mustParse(t, "SELECT a WHERE a = 1 FROM t")
	expected := []ClauseKind{ClauseSelect, ClauseWhere, ClauseFrom}
	if !reflect.DeepEqual(stmt.ClauseKinds(), expected) {
		t.Errorf("Expected %v, got %v", expected, stmt.ClauseKinds())
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	upper := mustParse(t, `SELECT a FROM t WHERE b = "x" AND c IS NOT NULL GROUP BY a`)
	lower := mustParse(t, `select a from t where b = "x" and c is not null group by a`)
	mixed := mustParse(t, `SeLeCt a FrOm t WhErE b = "x" AnD c Is NoT nUlL gRoUp By a`)

	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("Lower-case keywords parsed differently:\n%s\n%s", upper, lower)
	}
	if !reflect.DeepEqual(upper, mixed) {
		t.Errorf("Mixed-case keywords parsed differently:\n%s\n%s", upper, mixed)
	}
}

func TestParseIdentifierCaseIsPreserved(t *testing.T) {
	stmt := mustParse(t, "SELECT UserName FROM Accounts")
	sel := stmt.Clauses[0].(*SelectClause)
	if sel.Items[0].Column != "UserName" {
		t.Errorf("Expected 'UserName', got '%s'", sel.Items[0].Column)
	}
}

func TestParseLenientLexer(t *testing.T) {
	if _, err := Parse("SELECT a # FROM t"); !ferrors.IsLexError(err) {
		t.Errorf("Expected lex error in strict mode, got %v", err)
	}
	stmt, err := Parse("SELECT a # FROM t", WithLenientSkipping())
	if err != nil {
		t.Fatalf("Expected lenient parse to succeed, got %v", err)
	}
	if stmt.String() != "SELECT a FROM t" {
		t.Errorf("Unexpected statement: %s", stmt)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    ferrors.ErrorCode
		message string
	}{
		{"empty input", "", ferrors.ErrCodeUnknownStatement, "expected SQL statement keyword, found EOF"},
		{"whitespace only", "  \n ", ferrors.ErrCodeUnknownStatement, "expected SQL statement keyword"},
		{"not a statement", "FOO bar", ferrors.ErrCodeUnknownStatement, "found FOO"},
		{"punctuation first", "; SELECT a", ferrors.ErrCodeUnknownStatement, "found ;"},
		{"missing column", "SELECT FROM;", ferrors.ErrCodeReservedWord, "expected column name, found FROM"},
		{"missing table", "SELECT a FROM WHERE a = 1", ferrors.ErrCodeReservedWord, "expected table name, found WHERE"},
		{"empty where", "SELECT * FROM T WHERE", ferrors.ErrCodeExpectedExpression, "expected expression, found EOF"},
		{"dangling comma", "SELECT a, FROM t", ferrors.ErrCodeReservedWord, "expected column name, found FROM"},
		{"group without by", "SELECT a FROM t GROUP a", ferrors.ErrCodeMissingKeyword, "expected BY after GROUP, found a"},
		{"order without by", "SELECT a FROM t ORDER", ferrors.ErrCodeMissingKeyword, "expected BY after ORDER, found EOF"},
		{"limit without number", "SELECT a FROM t LIMIT x", ferrors.ErrCodeUnexpectedToken, "found x"},
		{"illegal clause", "SELECT a FROM t VALUES", ferrors.ErrCodeIllegalClause, "unexpected VALUES in SELECT statement"},
		{"not a clause", "SELECT a b c", ferrors.ErrCodeUnexpectedToken, "expected clause keyword, found c"},
		{"dangling connective", "SELECT a FROM t AND b", ferrors.ErrCodeUnexpectedToken, "expected clause keyword, found AND"},
		{"duplicate clause", "SELECT a FROM t FROM u", ferrors.ErrCodeDuplicateClause, "duplicate FROM clause"},
		{"trailing statement", "SELECT a FROM t; SELECT b", ferrors.ErrCodeTrailingInput, "unexpected SELECT after end of statement"},
		{"double semicolon", "SELECT a;;", ferrors.ErrCodeTrailingInput, "unexpected ;"},
		{"unclosed paren", "SELECT a FROM t WHERE (a = 1", ferrors.ErrCodeUnexpectedToken, "expected ), found EOF"},
		{"reserved word operand", "SELECT a FROM t WHERE a = FROM", ferrors.ErrCodeExpectedExpression, "found FROM"},
		{"is without null", "SELECT a FROM t WHERE a IS 5", ferrors.ErrCodeMissingKeyword, "expected NULL after IS, found 5"},
		{"is not without null", "SELECT a FROM t WHERE a IS NOT b", ferrors.ErrCodeMissingKeyword, "expected NULL after IS NOT"},
		{"chained comparison", "SELECT a FROM t WHERE a = b = c", ferrors.ErrCodeUnexpectedToken, "found ="},
		{"create without object", "CREATE INDEX i", ferrors.ErrCodeUnexpectedToken, "expected TABLE or DATABASE, found INDEX"},
		{"create reserved name", "CREATE TABLE select", ferrors.ErrCodeReservedWord, "expected table name, found select"},
		{"create reserved column", "CREATE TABLE t (from INT)", ferrors.ErrCodeReservedWord, "expected column name, found from"},
		{"create unclosed columns", "CREATE TABLE t (id INT", ferrors.ErrCodeUnexpectedToken, "found EOF"},
		{"create bad size", "CREATE TABLE t (name VARCHAR(abc))", ferrors.ErrCodeMalformedColumn, "expected size of VARCHAR"},
		{"create size unclosed", "CREATE TABLE t (name VARCHAR(10 x))", ferrors.ErrCodeMalformedColumn, "expected ) after size 10"},
		{"create paren without type", "CREATE TABLE t (name (10))", ferrors.ErrCodeMalformedColumn, "unexpected ("},
		{"insert", "INSERT INTO t VALUES (1)", ferrors.ErrCodeUnsupported, "INSERT statement is not supported"},
		{"update", "UPDATE t SET a = 1", ferrors.ErrCodeUnsupported, "UPDATE statement is not supported"},
		{"drop", "DROP TABLE t", ferrors.ErrCodeUnsupported, "DROP statement is not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Expected error, got statement %s", stmt)
			}
			if stmt != nil {
				t.Error("Expected no statement alongside the error")
			}
			if !ferrors.IsSyntaxError(err) {
				t.Errorf("Expected SYNTAX category, got %v", err)
			}
			if code := ferrors.GetCode(err); code != tt.code {
				t.Errorf("Expected code %d, got %d (%v)", tt.code, code, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected message containing %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestParseLexErrorWins(t *testing.T) {
	tests := []struct {
		input string
		code  ferrors.ErrorCode
	}{
		{`SELECT a FROM t WHERE name = "Frank`, ferrors.ErrCodeUnclosedString},
		{"SELECT a FROM t WHERE a ! b", ferrors.ErrCodeInvalidOperator},
		{"SELECT a, $ FROM t", ferrors.ErrCodeUnexpectedChar},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !ferrors.IsLexError(err) {
				t.Fatalf("Expected lex error, got %v", err)
			}
			if code := ferrors.GetCode(err); code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, code)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("SELECT FROM;")
	e, ok := err.(*ferrors.Error)
	if !ok {
		t.Fatalf("Expected *errors.Error, got %T", err)
	}
	if e.Pos != 7 {
		t.Errorf("Expected position 7, got %d", e.Pos)
	}
}

func TestParserFromLexer(t *testing.T) {
	p := NewParser(NewLexer("SELECT x FROM y"))
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stmt.String() != "SELECT x FROM y" {
		t.Errorf("Unexpected statement: %s", stmt)
	}
}
