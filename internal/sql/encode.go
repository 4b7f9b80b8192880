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

import "encoding/json"

// JSON encoding of the AST. Every node object carries a "type" member so
// consumers can tell the variants of Clause and Expression apart.

func (s *Statement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Kind    string   `json:"kind"`
		Clauses []Clause `json:"clauses"`
	}{"statement", s.Kind.String(), s.Clauses})
}

type selectItemJSON struct {
	Column string `json:"column"`
	Alias  string `json:"alias,omitempty"`
}

func (c *SelectClause) MarshalJSON() ([]byte, error) {
	items := make([]selectItemJSON, len(c.Items))
	for i, it := range c.Items {
		items[i] = selectItemJSON{it.Column, it.Alias}
	}
	return json.Marshal(struct {
		Type     string           `json:"type"`
		Distinct bool             `json:"distinct,omitempty"`
		Items    []selectItemJSON `json:"items"`
	}{"select", c.Distinct, items})
}

func (c *FromClause) MarshalJSON() ([]byte, error) {
	type tableJSON struct {
		Name  string `json:"name"`
		Alias string `json:"alias,omitempty"`
	}
	tables := make([]tableJSON, len(c.Tables))
	for i, t := range c.Tables {
		tables[i] = tableJSON{t.Name, t.Alias}
	}
	return json.Marshal(struct {
		Type   string      `json:"type"`
		Tables []tableJSON `json:"tables"`
	}{"from", tables})
}

func (c *WhereClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string     `json:"type"`
		Condition Expression `json:"condition"`
	}{"where", c.Condition})
}

func (c *HavingClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string     `json:"type"`
		Condition Expression `json:"condition"`
	}{"having", c.Condition})
}

func (c *GroupByClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Columns []string `json:"columns"`
	}{"group_by", c.Columns})
}

func (c *OrderByClause) MarshalJSON() ([]byte, error) {
	type itemJSON struct {
		Column    string `json:"column"`
		Direction string `json:"direction"`
	}
	items := make([]itemJSON, len(c.Items))
	for i, it := range c.Items {
		items[i] = itemJSON{it.Column, it.Direction.String()}
	}
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Items []itemJSON `json:"items"`
	}{"order_by", items})
}

func (c *LimitClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{"limit", c.Value})
}

func (c *CreateClause) MarshalJSON() ([]byte, error) {
	type columnJSON struct {
		Name       string     `json:"name"`
		DataType   ColumnType `json:"data_type,omitempty"`
		Size       int        `json:"size,omitempty"`
		Attributes []string   `json:"attributes"`
	}
	var columns []columnJSON
	for _, col := range c.Columns {
		attrs := col.Attributes
		if attrs == nil {
			attrs = []string{}
		}
		typ, size, _ := col.Type()
		columns = append(columns, columnJSON{col.Name, typ, size, attrs})
	}
	return json.Marshal(struct {
		Type    string       `json:"type"`
		Object  string       `json:"object"`
		Name    string       `json:"name"`
		Columns []columnJSON `json:"columns,omitempty"`
	}{"create", c.Object.String(), c.Name, columns})
}

func (e *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{"literal", e.Kind.String(), e.Value})
}

func (e *ColumnRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{"column", e.Name})
}

func (e *UnaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string     `json:"type"`
		Op      string     `json:"op"`
		Operand Expression `json:"operand"`
	}{"unary", string(e.Op), e.Operand})
}

func (e *BinaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Op    string     `json:"op"`
		Left  Expression `json:"left"`
		Right Expression `json:"right"`
	}{"binary", string(e.Op), e.Left, e.Right})
}

func (e *ParenExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Inner Expression `json:"inner"`
	}{"paren", e.Inner})
}
