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

import "testing"

func TestLookupColumnType(t *testing.T) {
	tests := []struct {
		attr string
		typ  ColumnType
		size int
		ok   bool
	}{
		{"INT", TypeINT, 0, true},
		{"integer", TypeINT, 0, true},
		{"VARCHAR(255)", TypeVARCHAR, 255, true},
		{"varchar(8)", TypeVARCHAR, 8, true},
		{"Bool", TypeBOOLEAN, 0, true},
		{"JSONB", TypeJSON, 0, true},
		{"NOT", "", 0, false},
		{"PRIMARY", "", 0, false},
		{"VARCHAR(x)", "", 0, false},
		{`"INT"`, "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		typ, size, ok := LookupColumnType(tt.attr)
		if typ != tt.typ || size != tt.size || ok != tt.ok {
			t.Errorf("LookupColumnType(%q) = %q, %d, %v; want %q, %d, %v",
				tt.attr, typ, size, ok, tt.typ, tt.size, tt.ok)
		}
	}
}

func TestColumnDefType(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (id INT PRIMARY KEY, name varchar(32) NOT NULL, flag, extra NOT NULL)")
	create, ok := FindClause[*CreateClause](stmt)
	if !ok {
		t.Fatal("expected a CREATE clause")
	}

	want := []struct {
		typ  ColumnType
		size int
		ok   bool
	}{
		{TypeINT, 0, true},
		{TypeVARCHAR, 32, true},
		{"", 0, false},
		{"", 0, false},
	}
	for i, col := range create.Columns {
		typ, size, ok := col.Type()
		if typ != want[i].typ || size != want[i].size || ok != want[i].ok {
			t.Errorf("column %s: got %q, %d, %v", col.Name, typ, size, ok)
		}
	}
}
