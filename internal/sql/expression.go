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
	ferrors "flyparse/internal/errors"
)

// Conditions are parsed by precedence climbing, loosest binding first:
//
//	expr       := or
//	or         := and {OR and}
//	and        := not {AND not}
//	not        := NOT not | comparison
//	comparison := primary [compop primary | IS [NOT] NULL]
//	primary    := ( expr ) | NUMBER | STRING | NULL | ident
//
// AND and OR associate to the left. Comparisons do not chain: a = b = c
// stops after a = b and the stray '=' is reported by the caller. IN and
// BETWEEN take a single primary on the right.

func (p *Parser) parseExpression() (Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("OR") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("AND") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expression, error) {
	if !p.isKeyword("NOT") {
		return p.parseComparison()
	}
	p.advance()
	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: OpNot, Operand: operand}, nil
}

func (p *Parser) parseComparison() (Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.isKeyword("IS") {
		p.advance()
		op, after := OpIsNull, "IS"
		if p.isKeyword("NOT") {
			p.advance()
			op, after = OpIsNotNull, "IS NOT"
		}
		if err := p.expectKeyword("NULL", after); err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: left}, nil
	}

	op, ok := p.comparisonOperator()
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: op, Left: left, Right: right}, nil
}

// comparisonOperator maps the current token to a comparison operator.
func (p *Parser) comparisonOperator() (BinaryOperator, bool) {
	switch p.cur.Type {
	case TokenEquals:
		return OpEq, true
	case TokenLess:
		return OpLt, true
	case TokenGreater:
		return OpGt, true
	case TokenLessEqual:
		return OpLe, true
	case TokenGreaterEqual:
		return OpGe, true
	case TokenNotEqual:
		return OpNe, true
	case TokenID:
		switch p.keyword() {
		case "LIKE":
			return OpLike, true
		case "IN":
			return OpIn, true
		case "BETWEEN":
			return OpBetween, true
		}
	}
	return "", false
}

func (p *Parser) parsePrimary() (Expression, error) {
	switch p.cur.Type {
	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokenRParen {
			return nil, p.fail(ferrors.UnexpectedToken(")", p.cur.Lexeme()))
		}
		p.advance()
		return &ParenExpr{Inner: inner}, nil

	case TokenNumber:
		lit := &Literal{Kind: LiteralNumber, Value: p.cur.Value}
		p.advance()
		return lit, nil

	case TokenString:
		lit := &Literal{Kind: LiteralString, Value: p.cur.Value}
		p.advance()
		return lit, nil

	case TokenID:
		if p.isKeyword("NULL") {
			p.advance()
			return &Literal{Kind: LiteralNull, Value: "NULL"}, nil
		}
		if p.isReserved() {
			return nil, p.fail(ferrors.ExpectedExpression(p.cur.Value))
		}
		ref := &ColumnRef{Name: p.cur.Value}
		p.advance()
		return ref, nil
	}
	return nil, p.fail(ferrors.ExpectedExpression(p.cur.Lexeme()))
}
