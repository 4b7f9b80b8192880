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
	"fmt"
	"io"
	"strings"

	"flyparse/internal/sql"
)

// Span is a piece of a node label with the formatter applied when the
// node is rendered. A nil Style prints the text as is.
type Span struct {
	Text  string
	Style func(string) string
}

func plain(text string) Span   { return Span{Text: text} }
func keyword(text string) Span { return Span{Text: text, Style: Keyword} }
func literal(text string) Span { return Span{Text: text, Style: Literal} }

// TreeNode is one labelled node of a rendered tree. Styles are kept apart
// from the text so the same tree renders with or without colors.
type TreeNode struct {
	Spans    []Span
	Children []*TreeNode
}

// NewTreeNode returns an unstyled node.
func NewTreeNode(label string, children ...*TreeNode) *TreeNode {
	return &TreeNode{Spans: []Span{plain(label)}, Children: children}
}

func node(spans ...Span) *TreeNode {
	return &TreeNode{Spans: spans}
}

// Label returns the node text without styling.
func (n *TreeNode) Label() string {
	var b strings.Builder
	for _, s := range n.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Append extends the label.
func (n *TreeNode) Append(spans ...Span) *TreeNode {
	n.Spans = append(n.Spans, spans...)
	return n
}

// Add appends a child and returns it.
func (n *TreeNode) Add(child *TreeNode) *TreeNode {
	n.Children = append(n.Children, child)
	return child
}

func (n *TreeNode) styled() string {
	var b strings.Builder
	for _, s := range n.Spans {
		if s.Style != nil {
			b.WriteString(s.Style(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Render writes the tree to w using box-drawing connectors:
//
//	SELECT
//	├── FROM
//	│   └── t
//	└── LIMIT 5
func (n *TreeNode) Render(w io.Writer) {
	fmt.Fprintln(w, n.styled())
	n.renderChildren(w, "")
}

func (n *TreeNode) renderChildren(w io.Writer, prefix string) {
	for i, child := range n.Children {
		connector, indent := "├── ", "│   "
		if i == len(n.Children)-1 {
			connector, indent = "└── ", "    "
		}
		fmt.Fprintln(w, prefix+Dimmed(connector)+child.styled())
		child.renderChildren(w, prefix+Dimmed(indent))
	}
}

// StatementTree builds the display tree of a statement.
func StatementTree(stmt *sql.Statement) *TreeNode {
	root := node(Span{Text: stmt.Kind.String() + " statement", Style: Highlight})
	for _, c := range stmt.Clauses {
		root.Add(clauseTree(c))
	}
	return root
}

func clauseTree(c sql.Clause) *TreeNode {
	n := node(keyword(c.Kind().String()))

	switch c := c.(type) {
	case *sql.SelectClause:
		if c.Distinct {
			n.Append(plain(" "), keyword("DISTINCT"))
		}
		for _, item := range c.Items {
			child := node(plain(item.Column))
			if item.Alias != "" {
				child.Append(plain(" "), keyword("AS"), plain(" "+item.Alias))
			}
			n.Add(child)
		}
	case *sql.FromClause:
		for _, t := range c.Tables {
			child := node(plain(t.Name))
			if t.Alias != "" {
				child.Append(plain(" "), keyword("AS"), plain(" "+t.Alias))
			}
			n.Add(child)
		}
	case *sql.WhereClause:
		n.Add(ExpressionTree(c.Condition))
	case *sql.HavingClause:
		n.Add(ExpressionTree(c.Condition))
	case *sql.GroupByClause:
		for _, col := range c.Columns {
			n.Add(node(plain(col)))
		}
	case *sql.OrderByClause:
		for _, item := range c.Items {
			n.Add(node(plain(item.Column+" "), keyword(item.Direction.String())))
		}
	case *sql.LimitClause:
		n.Append(plain(" "), literal(c.Value))
	case *sql.CreateClause:
		n.Append(plain(" "), keyword(c.Object.String()), plain(" "+c.Name))
		for _, col := range c.Columns {
			colNode := n.Add(node(plain(col.Name)))
			for _, attr := range col.Attributes {
				colNode.Add(node(plain(attr)))
			}
		}
	}
	return n
}

// ExpressionTree builds the display tree of a condition.
func ExpressionTree(e sql.Expression) *TreeNode {
	switch e := e.(type) {
	case *sql.BinaryExpr:
		n := node(keyword(string(e.Op)))
		n.Add(ExpressionTree(e.Left))
		n.Add(ExpressionTree(e.Right))
		return n
	case *sql.UnaryExpr:
		n := node(keyword(string(e.Op)))
		n.Add(ExpressionTree(e.Operand))
		return n
	case *sql.ParenExpr:
		return NewTreeNode("( )", ExpressionTree(e.Inner))
	case *sql.Literal:
		return node(literal(e.String()))
	case *sql.ColumnRef:
		return node(plain(e.Name))
	default:
		return node(plain(e.String()))
	}
}
