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
Package sql provides the SQL front end for flyparse: lexer, parser and the
Abstract Syntax Tree they produce.

Abstract Syntax Tree (AST) Overview:
====================================

The AST is the contract between the parser and the engine layers that
consume it (storage, optimizer, executor). A parsed statement is a
Statement holding an ordered list of clauses; WHERE and HAVING clauses own
an Expression tree.

AST Design Pattern:
===================

Clause and Expression are closed sets. Each is an interface with an
unexported marker method (clauseNode, exprNode), so only the types in this
file can implement them and consumers handle them with exhaustive type
switches:

	switch c := clause.(type) {
	case *SelectClause:
	case *FromClause:
	case *WhereClause:
	...
	}

Ownership is strictly top-down: a Statement owns its clauses, a clause owns
its expression, and no node is ever shared between two parents. Trees are
built bottom-up during one parse call and are read-only afterwards, so a
finished Statement can be shared freely between goroutines.

AST Node Hierarchy:
===================

	Statement{Kind, Clauses}
	├── SelectClause    (DISTINCT, items or *)
	├── FromClause      (tables with aliases)
	├── WhereClause     (Expression)
	├── GroupByClause   (columns)
	├── HavingClause    (Expression)
	├── OrderByClause   (columns with ASC/DESC)
	├── LimitClause     (unsigned integer text)
	└── CreateClause    (TABLE|DATABASE, name, column definitions)

	Expression
	├── Literal         (number, string, NULL)
	├── ColumnRef
	├── UnaryExpr       (NOT, IS NULL, IS NOT NULL)
	├── BinaryExpr      (AND, OR, comparisons, LIKE, IN, BETWEEN)
	└── ParenExpr

Example AST:
============

For the SQL: SELECT name FROM users WHERE id = 1

	Statement{
	    Kind: StatementSelect,
	    Clauses: []Clause{
	        &SelectClause{Items: []SelectItem{{Column: "name"}}},
	        &FromClause{Tables: []TableRef{{Name: "users"}}},
	        &WhereClause{Condition: &BinaryExpr{
	            Op:    OpEq,
	            Left:  &ColumnRef{Name: "id"},
	            Right: &Literal{Kind: LiteralNumber, Value: "1"},
	        }},
	    },
	}

Rendering:
==========

Every node has a String method producing normalised SQL: keywords upper
case, single spaces, string literals in double quotes, no trailing
semicolon. Parsing the rendering of a Statement yields a Statement with the
same clause sequence and the same expression shapes.
*/
package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// StatementKind identifies the kind of a statement.
type StatementKind int

// Statement kinds.
const (
	StatementSelect StatementKind = iota
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementCreate
)

// String returns the keyword that starts statements of this kind.
func (k StatementKind) String() string {
	switch k {
	case StatementSelect:
		return "SELECT"
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementDelete:
		return "DELETE"
	case StatementCreate:
		return "CREATE"
	default:
		return fmt.Sprintf("StatementKind(%d)", int(k))
	}
}

// Statement is a parsed SQL statement. Clauses are in source order.
type Statement struct {
	Kind    StatementKind
	Clauses []Clause
}

// String renders the statement as normalised SQL.
func (s *Statement) String() string {
	parts := make([]string, len(s.Clauses))
	for i, c := range s.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Clause returns the first clause of the given kind.
func (s *Statement) Clause(kind ClauseKind) (Clause, bool) {
	for _, c := range s.Clauses {
		if c.Kind() == kind {
			return c, true
		}
	}
	return nil, false
}

// ClauseKinds returns the kinds of the statement's clauses in order.
func (s *Statement) ClauseKinds() []ClauseKind {
	kinds := make([]ClauseKind, len(s.Clauses))
	for i, c := range s.Clauses {
		kinds[i] = c.Kind()
	}
	return kinds
}

// FindClause returns the first clause of type T in the statement.
//
//	where, ok := sql.FindClause[*sql.WhereClause](stmt)
func FindClause[T Clause](s *Statement) (T, bool) {
	for _, c := range s.Clauses {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ClauseKind is the discriminant of a Clause.
type ClauseKind int

// Clause kinds.
const (
	ClauseSelect ClauseKind = iota
	ClauseFrom
	ClauseWhere
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseLimit
	ClauseCreate
)

// String returns the keyword text of the clause kind.
func (k ClauseKind) String() string {
	switch k {
	case ClauseSelect:
		return "SELECT"
	case ClauseFrom:
		return "FROM"
	case ClauseWhere:
		return "WHERE"
	case ClauseGroupBy:
		return "GROUP BY"
	case ClauseHaving:
		return "HAVING"
	case ClauseOrderBy:
		return "ORDER BY"
	case ClauseLimit:
		return "LIMIT"
	case ClauseCreate:
		return "CREATE"
	default:
		return fmt.Sprintf("ClauseKind(%d)", int(k))
	}
}

// Clause is one clause of a Statement. The set of implementations is closed.
type Clause interface {
	Kind() ClauseKind
	String() string
	clauseNode()
}

// SelectItem is one entry of a select list.
type SelectItem struct {
	Column string
	Alias  string // empty when absent
}

// SelectClause is the projection list of a SELECT statement.
// SELECT * is represented by a single item whose Column is "*".
//
// SQL Syntax:
//
//	SELECT [DISTINCT] * | column [[AS] alias] {, column [[AS] alias]}
type SelectClause struct {
	Distinct bool
	Items    []SelectItem
}

// IsStar reports whether the clause selects all columns.
func (c *SelectClause) IsStar() bool {
	return len(c.Items) == 1 && c.Items[0].Column == "*"
}

func (c *SelectClause) Kind() ClauseKind { return ClauseSelect }
func (c *SelectClause) clauseNode()      {}

func (c *SelectClause) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if c.Distinct {
		b.WriteString("DISTINCT ")
	}
	for i, item := range c.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.Column)
		if item.Alias != "" {
			b.WriteString(" AS ")
			b.WriteString(item.Alias)
		}
	}
	return b.String()
}

// TableRef is one table of a FROM clause.
type TableRef struct {
	Name  string
	Alias string // empty when absent
}

// FromClause lists the tables a statement reads.
//
// SQL Syntax:
//
//	FROM table [AS alias] {, table [AS alias]}
type FromClause struct {
	Tables []TableRef
}

func (c *FromClause) Kind() ClauseKind { return ClauseFrom }
func (c *FromClause) clauseNode()      {}

func (c *FromClause) String() string {
	parts := make([]string, len(c.Tables))
	for i, t := range c.Tables {
		parts[i] = t.Name
		if t.Alias != "" {
			parts[i] += " AS " + t.Alias
		}
	}
	return "FROM " + strings.Join(parts, ", ")
}

// WhereClause filters rows. Condition is never nil.
type WhereClause struct {
	Condition Expression
}

func (c *WhereClause) Kind() ClauseKind { return ClauseWhere }
func (c *WhereClause) clauseNode()      {}
func (c *WhereClause) String() string   { return "WHERE " + c.Condition.String() }

// HavingClause filters groups. Condition is never nil.
type HavingClause struct {
	Condition Expression
}

func (c *HavingClause) Kind() ClauseKind { return ClauseHaving }
func (c *HavingClause) clauseNode()      {}
func (c *HavingClause) String() string   { return "HAVING " + c.Condition.String() }

// GroupByClause lists the grouping columns.
type GroupByClause struct {
	Columns []string
}

func (c *GroupByClause) Kind() ClauseKind { return ClauseGroupBy }
func (c *GroupByClause) clauseNode()      {}

func (c *GroupByClause) String() string {
	return "GROUP BY " + strings.Join(c.Columns, ", ")
}

// SortDirection is the direction of an ORDER BY item.
type SortDirection int

// Sort directions. The zero value is ascending.
const (
	SortAsc SortDirection = iota
	SortDesc
)

func (d SortDirection) String() string {
	if d == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// OrderItem is one sort key.
type OrderItem struct {
	Column    string
	Direction SortDirection
}

// OrderByClause lists the sort keys of a SELECT statement.
//
// SQL Syntax:
//
//	ORDER BY column [ASC|DESC] {, column [ASC|DESC]}
type OrderByClause struct {
	Items []OrderItem
}

func (c *OrderByClause) Kind() ClauseKind { return ClauseOrderBy }
func (c *OrderByClause) clauseNode()      {}

func (c *OrderByClause) String() string {
	parts := make([]string, len(c.Items))
	for i, item := range c.Items {
		parts[i] = item.Column + " " + item.Direction.String()
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// LimitClause caps the number of rows. Value is the literal digits as
// written in the source.
type LimitClause struct {
	Value string
}

// Count returns the limit as a number.
func (c *LimitClause) Count() (uint64, error) {
	return strconv.ParseUint(c.Value, 10, 64)
}

func (c *LimitClause) Kind() ClauseKind { return ClauseLimit }
func (c *LimitClause) clauseNode()      {}
func (c *LimitClause) String() string   { return "LIMIT " + c.Value }

// ObjectKind is the kind of object a CREATE statement defines.
type ObjectKind int

// Object kinds.
const (
	ObjectTable ObjectKind = iota
	ObjectDatabase
)

func (k ObjectKind) String() string {
	if k == ObjectDatabase {
		return "DATABASE"
	}
	return "TABLE"
}

// ColumnDef is one column of a CREATE TABLE definition list. Attributes
// are kept as written: a sized type appears as a single attribute such as
// "VARCHAR(255)".
type ColumnDef struct {
	Name       string
	Attributes []string
}

// CreateClause defines a table or a database.
//
// SQL Syntax:
//
//	CREATE DATABASE name
//	CREATE TABLE name [( column {attribute} {, column {attribute}} )]
//
// Columns is empty unless Object is ObjectTable and a definition list was
// present.
type CreateClause struct {
	Object  ObjectKind
	Name    string
	Columns []ColumnDef
}

func (c *CreateClause) Kind() ClauseKind { return ClauseCreate }
func (c *CreateClause) clauseNode()      {}

func (c *CreateClause) String() string {
	s := "CREATE " + c.Object.String() + " " + c.Name
	if len(c.Columns) == 0 {
		return s
	}
	cols := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = strings.Join(append([]string{col.Name}, col.Attributes...), " ")
	}
	return s + " (" + strings.Join(cols, ", ") + ")"
}

// Expression is a node of a condition tree. The set of implementations is
// closed.
type Expression interface {
	String() string
	exprNode()
}

// LiteralKind tells how a Literal was written.
type LiteralKind int

// Literal kinds.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralNull
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "STRING"
	case LiteralNull:
		return "NULL"
	default:
		return "NUMBER"
	}
}

// Literal is a constant value. For strings Value is the unquoted content;
// for NULL it is "NULL".
type Literal struct {
	Kind  LiteralKind
	Value string
}

func (e *Literal) exprNode() {}

func (e *Literal) String() string {
	if e.Kind == LiteralString {
		return `"` + e.Value + `"`
	}
	return e.Value
}

// ColumnRef names a column. The name keeps its source case.
type ColumnRef struct {
	Name string
}

func (e *ColumnRef) exprNode()      {}
func (e *ColumnRef) String() string { return e.Name }

// UnaryOperator is the operator of a UnaryExpr.
type UnaryOperator string

// Unary operators.
const (
	OpNot       UnaryOperator = "NOT"
	OpIsNull    UnaryOperator = "IS NULL"
	OpIsNotNull UnaryOperator = "IS NOT NULL"
)

// UnaryExpr applies a prefix NOT or a postfix IS [NOT] NULL test.
type UnaryExpr struct {
	Op      UnaryOperator
	Operand Expression
}

func (e *UnaryExpr) exprNode() {}

func (e *UnaryExpr) String() string {
	if e.Op == OpNot {
		return "NOT " + e.Operand.String()
	}
	return e.Operand.String() + " " + string(e.Op)
}

// BinaryOperator is the operator of a BinaryExpr.
type BinaryOperator string

// Binary operators. Both != and <> in the source become OpNe.
const (
	OpOr      BinaryOperator = "OR"
	OpAnd     BinaryOperator = "AND"
	OpEq      BinaryOperator = "="
	OpLt      BinaryOperator = "<"
	OpGt      BinaryOperator = ">"
	OpLe      BinaryOperator = "<="
	OpGe      BinaryOperator = ">="
	OpNe      BinaryOperator = "<>"
	OpLike    BinaryOperator = "LIKE"
	OpIn      BinaryOperator = "IN"
	OpBetween BinaryOperator = "BETWEEN"
)

// IsComparison reports whether op is a comparison rather than AND/OR.
func (op BinaryOperator) IsComparison() bool {
	return op != OpAnd && op != OpOr
}

// BinaryExpr combines two operands.
type BinaryExpr struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (e *BinaryExpr) exprNode() {}

func (e *BinaryExpr) String() string {
	return e.Left.String() + " " + string(e.Op) + " " + e.Right.String()
}

// ParenExpr records explicit grouping in the source.
type ParenExpr struct {
	Inner Expression
}

func (e *ParenExpr) exprNode()      {}
func (e *ParenExpr) String() string { return "(" + e.Inner.String() + ")" }
