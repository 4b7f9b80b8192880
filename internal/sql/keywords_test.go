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
	"sync"
	"testing"
)

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"SELECT", true},
		{"select", true},
		{"Returning", true},
		{"index", true},
		{"null", true},
		{"users", false},
		{"", false},
		{"SELECTS", false},
	}
	for _, tt := range tests {
		if got := IsKeyword(tt.word); got != tt.expected {
			t.Errorf("IsKeyword(%q): expected %v, got %v", tt.word, tt.expected, got)
		}
	}
}

func TestIsStatementKeyword(t *testing.T) {
	for _, w := range []string{"create", "SELECT", "insert", "Update", "DELETE", "drop", "ALTER"} {
		if !IsStatementKeyword(w) {
			t.Errorf("Expected %q to start a statement", w)
		}
	}
	for _, w := range []string{"FROM", "TABLE", "WHERE"} {
		if IsStatementKeyword(w) {
			t.Errorf("Expected %q not to start a statement", w)
		}
	}
}

func TestStatementKindOf(t *testing.T) {
	kind, ok := StatementKindOf("select")
	if !ok || kind != StatementSelect {
		t.Errorf("Expected SELECT kind, got %v (ok=%v)", kind, ok)
	}
	if _, ok := StatementKindOf("DROP"); ok {
		t.Error("Expected DROP to have no statement kind")
	}
}

func TestClauseKeywordsPerStatement(t *testing.T) {
	tests := []struct {
		kind     StatementKind
		expected []string
	}{
		{StatementSelect, []string{"FROM", "GROUP", "HAVING", "LIMIT", "ORDER", "WHERE"}},
		{StatementInsert, []string{"INTO", "RETURNING", "VALUES"}},
		{StatementUpdate, []string{"RETURNING", "SET", "WHERE"}},
		{StatementDelete, []string{"FROM", "RETURNING", "WHERE"}},
		{StatementCreate, []string{"DATABASE", "TABLE"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := ClauseKeywordsFor(tt.kind)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsClauseKeyword(t *testing.T) {
	if !IsClauseKeyword(StatementSelect, "where") {
		t.Error("Expected WHERE to be a SELECT clause")
	}
	if IsClauseKeyword(StatementSelect, "VALUES") {
		t.Error("Expected VALUES not to be a SELECT clause")
	}
	if IsClauseKeyword(StatementCreate, "WHERE") {
		t.Error("Expected WHERE not to be a CREATE clause")
	}
}

func TestKeywordsReturnsCopy(t *testing.T) {
	words := Keywords()
	if len(words) != len(allKeywords) {
		t.Fatalf("Expected %d keywords, got %d", len(allKeywords), len(words))
	}
	words[0] = "MUTATED"
	if IsKeyword("MUTATED") {
		t.Error("Mutating the returned slice changed the keyword table")
	}
}

func TestKeywordTablesConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !IsKeyword("from") || !IsClauseKeyword(StatementSelect, "order") {
					t.Error("Keyword lookup failed under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}
