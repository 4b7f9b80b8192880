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
Package sql contains the Parser component for SQL syntax analysis.

Parser Overview:
================

The Parser is the second stage of the SQL processing pipeline. It pulls
tokens from the Lexer one at a time and builds a Statement. It keeps the
current token (cur) and the one before it (prev); every decision is made by
looking at cur alone.

Statement Dispatch:
===================

 1. The first word selects the statement kind (SELECT, CREATE, ...).
 2. The kind's main clause is parsed (the select list, or the CREATE
    object definition).
 3. Until ';' or end of input, the next word must be a clause keyword that
    is legal for the statement kind. WHERE and FROM are shared by several
    kinds and are tried first; the rest are looked up per kind.
 4. Clauses are appended in the order they appear.

Parsing Context:
================

Lists inside a clause (select items, tables, GROUP BY and ORDER BY
columns) are comma separated and have no closing token, so the parser must
tell "another item" from "the next clause". Clause parsers receive the
clauseLevel context: at that level a list also stops at ';', at end of
input, and at any word that opens a clause of the current statement kind.
The context is a parameter of each clause parser, not parser state.

Grammar (Simplified BNF):
=========================

	statement  := select | create
	select     := SELECT [DISTINCT] ( * | item {, item} ) {clause} [;]
	item       := ident [AS ident | ident]
	clause     := FROM table {, table}
	            | WHERE expr
	            | GROUP BY ident {, ident}
	            | HAVING expr
	            | ORDER BY ident [ASC|DESC] {, ident [ASC|DESC]}
	            | LIMIT number
	table      := ident [AS ident]
	create     := CREATE ( DATABASE ident | TABLE ident [( column {, column} )] ) [;]
	column     := ident {attribute [( number )]}

INSERT, UPDATE, DELETE, DROP and ALTER are recognised and rejected as
unsupported.

Error Handling:
===============

Errors are fatal: the first problem stops the parse and no partial
Statement is returned. A lex error always wins over the parse error it
causes, since the parser only sees an early end of input.

Usage Example:
==============

	stmt, err := sql.Parse("SELECT name FROM users WHERE id = 1")
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(stmt.Kind, len(stmt.Clauses))
*/
package sql

import (
	"fmt"
	"strings"

	ferrors "flyparse/internal/errors"

	"golang.org/x/text/cases"
)

// parseContext says whether a list is being scanned inside a clause.
type parseContext int

const (
	statementLevel parseContext = iota
	clauseLevel
)

// Parser transforms a stream of tokens into a Statement.
// A Parser parses one statement and must not be used from several
// goroutines at once.
type Parser struct {
	lexer  *Lexer
	cur    Token
	prev   Token
	lexErr error
	caser  cases.Caser
	kind   StatementKind
}

// NewParser creates a Parser reading from lexer and loads the first token.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer, caser: newKeywordCaser()}
	p.advance()
	return p
}

// Parse parses a single SQL statement, optionally terminated by ';'.
func Parse(input string, opts ...LexerOption) (*Statement, error) {
	return NewParser(NewLexer(input, opts...)).ParseStatement()
}

// ParseStatement parses the whole input as one statement. On failure it
// returns a nil Statement and an *errors.Error whose category is LEX or
// SYNTAX.
func (p *Parser) ParseStatement() (*Statement, error) {
	stmt, err := p.parseStatement()
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// advance moves to the next token. The first lex error is kept aside; the
// lexer then reports end of input, which unwinds the parse.
func (p *Parser) advance() {
	p.prev = p.cur
	tok, err := p.lexer.NextToken()
	if err != nil && p.lexErr == nil {
		p.lexErr = err
	}
	p.cur = tok
}

// keyword returns the upper-cased text of the current token.
func (p *Parser) keyword() string {
	return p.caser.String(p.cur.Value)
}

func (p *Parser) isKeyword(kw string) bool {
	return p.cur.Type == TokenID && p.keyword() == kw
}

func (p *Parser) isReserved() bool {
	return p.cur.Type == TokenID && allKeywords.has(p.keyword())
}

// fail attaches the current position to err.
func (p *Parser) fail(err *ferrors.Error) error {
	return err.WithPos(p.cur.Pos)
}

func (p *Parser) parseStatement() (*Statement, error) {
	if p.cur.Type != TokenID {
		return nil, p.fail(ferrors.UnknownStatement(p.cur.Lexeme()))
	}

	word := p.keyword()
	kind, ok := statementKinds[word]
	if !ok {
		if statementKeywords.has(word) {
			return nil, p.fail(ferrors.Unsupported(word + " statement"))
		}
		return nil, p.fail(ferrors.UnknownStatement(p.cur.Lexeme()))
	}
	p.kind = kind
	stmt := &Statement{Kind: kind}

	main, err := p.parseMainClause()
	if err != nil {
		return nil, err
	}
	stmt.Clauses = append(stmt.Clauses, main)
	seen := map[ClauseKind]bool{main.Kind(): true}

	for p.cur.Type != TokenSemi && p.cur.Type != TokenEOF {
		pos := p.cur.Pos
		clause, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		if seen[clause.Kind()] {
			return nil, ferrors.DuplicateClause(clause.Kind().String()).WithPos(pos)
		}
		seen[clause.Kind()] = true
		stmt.Clauses = append(stmt.Clauses, clause)
	}

	if p.cur.Type == TokenSemi {
		p.advance()
	}
	if p.cur.Type != TokenEOF {
		return nil, p.fail(ferrors.TrailingInput(p.cur.Lexeme()))
	}
	return stmt, nil
}

// parseMainClause parses the clause every statement of the current kind
// starts with.
func (p *Parser) parseMainClause() (Clause, error) {
	switch p.kind {
	case StatementSelect:
		return p.parseSelect(clauseLevel)
	case StatementCreate:
		p.advance() // CREATE
		return p.parseCreateObject()
	default:
		return nil, p.fail(ferrors.Unsupported(p.kind.String() + " statement"))
	}
}

// parseClause dispatches on the keyword that opens the next clause.
func (p *Parser) parseClause() (Clause, error) {
	if p.cur.Type != TokenID {
		return nil, p.fail(ferrors.UnexpectedToken("clause keyword", p.cur.Lexeme()))
	}

	word := p.keyword()
	if connectives.has(word) {
		return nil, p.fail(ferrors.UnexpectedToken("clause keyword", p.cur.Value).
			WithHint(word + " is only valid inside a WHERE or HAVING condition"))
	}
	if !clauseKeywords[p.kind].has(word) {
		if allKeywords.has(word) {
			return nil, p.fail(ferrors.IllegalClause(word, p.kind.String()))
		}
		return nil, p.fail(ferrors.UnexpectedToken("clause keyword", p.cur.Value))
	}

	// Clauses shared by several statement kinds.
	switch word {
	case "WHERE":
		return p.parseWhere()
	case "FROM":
		return p.parseFrom(clauseLevel)
	}

	switch p.kind {
	case StatementSelect:
		switch word {
		case "GROUP":
			return p.parseGroupBy(clauseLevel)
		case "HAVING":
			return p.parseHaving()
		case "ORDER":
			return p.parseOrderBy(clauseLevel)
		case "LIMIT":
			return p.parseLimit()
		}
	case StatementInsert:
		switch word {
		case "INTO", "VALUES", "RETURNING":
			return p.parseUnimplemented(word)
		}
	case StatementUpdate:
		switch word {
		case "SET", "RETURNING":
			return p.parseUnimplemented(word)
		}
	case StatementDelete:
		if word == "RETURNING" {
			return p.parseUnimplemented(word)
		}
	case StatementCreate:
		switch word {
		case "TABLE", "DATABASE":
			return p.parseCreateObject()
		}
	}
	return nil, p.fail(ferrors.IllegalClause(word, p.kind.String()))
}

// parseUnimplemented consumes a clause keyword whose payload grammar does
// not exist yet and reports it.
func (p *Parser) parseUnimplemented(word string) (Clause, error) {
	err := p.fail(ferrors.Unsupported(word + " clause"))
	p.advance()
	return nil, err
}

// listContinues is called after each list item. It consumes the comma and
// returns true when another item follows.
func (p *Parser) listContinues(ctx parseContext) bool {
	if ctx == clauseLevel && p.atClauseBoundary() {
		return false
	}
	if p.cur.Type == TokenComma {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) atClauseBoundary() bool {
	switch p.cur.Type {
	case TokenSemi, TokenEOF:
		return true
	case TokenID:
		return clauseKeywords[p.kind].has(p.keyword())
	}
	return false
}

// expectIdentifier consumes a name. Reserved words are rejected.
func (p *Parser) expectIdentifier(what string) (string, error) {
	if p.cur.Type != TokenID {
		return "", p.fail(ferrors.UnexpectedToken(what, p.cur.Lexeme()))
	}
	if p.isReserved() {
		return "", p.fail(ferrors.ReservedWord(what, p.cur.Value))
	}
	name := p.cur.Value
	p.advance()
	return name, nil
}

// expectKeyword consumes kw, which must follow the keyword after.
func (p *Parser) expectKeyword(kw, after string) error {
	if !p.isKeyword(kw) {
		return p.fail(ferrors.MissingKeyword(kw, after, p.cur.Lexeme()))
	}
	p.advance()
	return nil
}

// parseAlias parses an optional alias. With implicit set, a bare
// non-reserved word is taken as the alias too.
func (p *Parser) parseAlias(implicit bool) (string, error) {
	if p.isKeyword("AS") {
		p.advance()
		return p.expectIdentifier("alias")
	}
	if implicit && p.cur.Type == TokenID && !p.isReserved() {
		alias := p.cur.Value
		p.advance()
		return alias, nil
	}
	return "", nil
}

// parseSelect parses SELECT [DISTINCT] ( * | item {, item} ).
func (p *Parser) parseSelect(ctx parseContext) (*SelectClause, error) {
	p.advance() // SELECT
	clause := &SelectClause{}

	if p.isKeyword("DISTINCT") {
		clause.Distinct = true
		p.advance()
	}

	if p.cur.Type == TokenStar {
		clause.Items = []SelectItem{{Column: "*"}}
		p.advance()
		return clause, nil
	}

	for {
		column, err := p.expectIdentifier("column name")
		if err != nil {
			return nil, err
		}
		alias, err := p.parseAlias(true)
		if err != nil {
			return nil, err
		}
		clause.Items = append(clause.Items, SelectItem{Column: column, Alias: alias})

		if !p.listContinues(ctx) {
			break
		}
	}
	return clause, nil
}

// parseFrom parses FROM table [AS alias] {, table [AS alias]}.
func (p *Parser) parseFrom(ctx parseContext) (*FromClause, error) {
	p.advance() // FROM
	clause := &FromClause{}

	for {
		name, err := p.expectIdentifier("table name")
		if err != nil {
			return nil, err
		}
		alias, err := p.parseAlias(false)
		if err != nil {
			return nil, err
		}
		clause.Tables = append(clause.Tables, TableRef{Name: name, Alias: alias})

		if !p.listContinues(ctx) {
			break
		}
	}
	return clause, nil
}

func (p *Parser) parseWhere() (*WhereClause, error) {
	p.advance() // WHERE
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &WhereClause{Condition: cond}, nil
}

func (p *Parser) parseHaving() (*HavingClause, error) {
	p.advance() // HAVING
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &HavingClause{Condition: cond}, nil
}

// parseGroupBy parses GROUP BY column {, column}.
func (p *Parser) parseGroupBy(ctx parseContext) (*GroupByClause, error) {
	p.advance() // GROUP
	if err := p.expectKeyword("BY", "GROUP"); err != nil {
		return nil, err
	}

	clause := &GroupByClause{}
	for {
		column, err := p.expectIdentifier("column name")
		if err != nil {
			return nil, err
		}
		clause.Columns = append(clause.Columns, column)

		if !p.listContinues(ctx) {
			break
		}
	}
	return clause, nil
}

// parseOrderBy parses ORDER BY column [ASC|DESC] {, column [ASC|DESC]}.
func (p *Parser) parseOrderBy(ctx parseContext) (*OrderByClause, error) {
	p.advance() // ORDER
	if err := p.expectKeyword("BY", "ORDER"); err != nil {
		return nil, err
	}

	clause := &OrderByClause{}
	for {
		column, err := p.expectIdentifier("column name")
		if err != nil {
			return nil, err
		}
		item := OrderItem{Column: column, Direction: SortAsc}
		switch {
		case p.isKeyword("ASC"):
			p.advance()
		case p.isKeyword("DESC"):
			item.Direction = SortDesc
			p.advance()
		}
		clause.Items = append(clause.Items, item)

		if !p.listContinues(ctx) {
			break
		}
	}
	return clause, nil
}

// parseLimit parses LIMIT number.
func (p *Parser) parseLimit() (*LimitClause, error) {
	p.advance() // LIMIT
	if p.cur.Type != TokenNumber {
		return nil, p.fail(ferrors.UnexpectedToken("row count after LIMIT", p.cur.Lexeme()))
	}
	clause := &LimitClause{Value: p.cur.Value}
	p.advance()
	return clause, nil
}

// parseCreateObject parses the part of a CREATE statement after CREATE:
// DATABASE name, or TABLE name with an optional column list.
func (p *Parser) parseCreateObject() (*CreateClause, error) {
	var object ObjectKind
	switch {
	case p.isKeyword("TABLE"):
		object = ObjectTable
	case p.isKeyword("DATABASE"):
		object = ObjectDatabase
	default:
		return nil, p.fail(ferrors.UnexpectedToken("TABLE or DATABASE", p.cur.Lexeme()))
	}
	p.advance()

	name, err := p.expectIdentifier(strings.ToLower(object.String()) + " name")
	if err != nil {
		return nil, err
	}
	clause := &CreateClause{Object: object, Name: name}

	if object == ObjectDatabase || p.cur.Type != TokenLParen {
		return clause, nil
	}
	p.advance() // (

	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		clause.Columns = append(clause.Columns, col)

		// Inside the parentheses only ',' and ')' matter.
		if !p.listContinues(statementLevel) {
			break
		}
	}

	if p.cur.Type != TokenRParen {
		return nil, p.fail(ferrors.UnexpectedToken(") to close the column list", p.cur.Lexeme()))
	}
	p.advance()
	return clause, nil
}

// parseColumnDef parses a column name followed by attribute words up to the
// next ',' or ')'. NAME ( number ) is folded into one "NAME(number)"
// attribute.
func (p *Parser) parseColumnDef() (ColumnDef, error) {
	name, err := p.expectIdentifier("column name")
	if err != nil {
		return ColumnDef{}, err
	}
	col := ColumnDef{Name: name}
	sized := false

	for {
		switch p.cur.Type {
		case TokenComma, TokenRParen:
			return col, nil
		case TokenID, TokenNumber, TokenString:
			col.Attributes = append(col.Attributes, p.cur.Lexeme())
			sized = false
			p.advance()
		case TokenLParen:
			if len(col.Attributes) == 0 || sized {
				return col, p.fail(ferrors.MalformedColumn(
					fmt.Sprintf("unexpected ( in definition of column %s", name)))
			}
			p.advance()
			if p.cur.Type != TokenNumber {
				return col, p.fail(ferrors.MalformedColumn(
					fmt.Sprintf("expected size of %s, found %s", col.Attributes[len(col.Attributes)-1], p.cur.Lexeme())))
			}
			size := p.cur.Value
			p.advance()
			if p.cur.Type != TokenRParen {
				return col, p.fail(ferrors.MalformedColumn(
					fmt.Sprintf("expected ) after size %s, found %s", size, p.cur.Lexeme())))
			}
			p.advance()
			col.Attributes[len(col.Attributes)-1] += "(" + size + ")"
			sized = true
		default:
			return col, p.fail(ferrors.UnexpectedToken(", or ) in column list", p.cur.Lexeme()))
		}
	}
}
