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
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The keyword tables below are built once at package initialisation and
// never written afterwards, so they are safe to read from any goroutine.
// All keys are upper case; callers fold words before looking them up.

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

// allKeywords holds every reserved word of every grammar.
var allKeywords = newWordSet(
	"CREATE", "DROP", "ALTER", "TABLE", "DATABASE", "INDEX",
	"SELECT", "INSERT", "UPDATE", "DELETE",
	"FROM", "WHERE", "ORDER", "GROUP", "HAVING", "LIMIT",
	"INTO", "VALUES", "SET", "RETURNING",
	"AND", "OR", "NOT", "LIKE", "IN", "BETWEEN", "IS", "NULL",
	"DISTINCT", "AS", "BY", "ASC", "DESC",
)

// statementKeywords holds the words that may start a statement.
var statementKeywords = newWordSet(
	"CREATE", "SELECT", "INSERT", "UPDATE", "DELETE", "DROP", "ALTER",
)

// statementKinds maps a leading keyword to the statement it starts. DROP and
// ALTER start statements but have no kind yet.
var statementKinds = map[string]StatementKind{
	"SELECT": StatementSelect,
	"INSERT": StatementInsert,
	"UPDATE": StatementUpdate,
	"DELETE": StatementDelete,
	"CREATE": StatementCreate,
}

// clauseKeywords lists, per statement kind, the keywords that may introduce
// a clause after the statement's main clause.
var clauseKeywords = map[StatementKind]wordSet{
	StatementSelect: newWordSet("FROM", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT"),
	StatementInsert: newWordSet("INTO", "VALUES", "RETURNING"),
	StatementUpdate: newWordSet("SET", "WHERE", "RETURNING"),
	StatementDelete: newWordSet("FROM", "WHERE", "RETURNING"),
	StatementCreate: newWordSet("TABLE", "DATABASE"),
}

// connectives are the boolean keywords only meaningful inside a condition.
var connectives = newWordSet("AND", "OR", "NOT")

func newKeywordCaser() cases.Caser {
	return cases.Upper(language.Und)
}

func upper(word string) string {
	return newKeywordCaser().String(word)
}

// IsKeyword reports whether word is reserved in any grammar. The check is
// case-insensitive.
func IsKeyword(word string) bool {
	return allKeywords.has(upper(word))
}

// IsStatementKeyword reports whether word may start a statement.
func IsStatementKeyword(word string) bool {
	return statementKeywords.has(upper(word))
}

// StatementKindOf returns the statement kind started by word.
func StatementKindOf(word string) (StatementKind, bool) {
	kind, ok := statementKinds[upper(word)]
	return kind, ok
}

// IsClauseKeyword reports whether word introduces a clause that is legal
// in a statement of the given kind.
func IsClauseKeyword(kind StatementKind, word string) bool {
	return clauseKeywords[kind].has(upper(word))
}

// ClauseKeywordsFor returns the clause keywords of a statement kind in
// alphabetical order. The result is a copy.
func ClauseKeywordsFor(kind StatementKind) []string {
	set := clauseKeywords[kind]
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Keywords returns every reserved word in alphabetical order.
func Keywords() []string {
	words := make([]string, 0, len(allKeywords))
	for w := range allKeywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
