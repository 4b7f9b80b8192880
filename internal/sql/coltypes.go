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
	"strconv"
	"strings"
)

// ColumnType is the canonical name of a column data type.
type ColumnType string

// Column type constants.
const (
	TypeINT       ColumnType = "INT"
	TypeBIGINT    ColumnType = "BIGINT"
	TypeSMALLINT  ColumnType = "SMALLINT"
	TypeTEXT      ColumnType = "TEXT"
	TypeVARCHAR   ColumnType = "VARCHAR"
	TypeCHAR      ColumnType = "CHAR"
	TypeBOOLEAN   ColumnType = "BOOLEAN"
	TypeFLOAT     ColumnType = "FLOAT"
	TypeDOUBLE    ColumnType = "DOUBLE"
	TypeDECIMAL   ColumnType = "DECIMAL"
	TypeTIMESTAMP ColumnType = "TIMESTAMP"
	TypeDATE      ColumnType = "DATE"
	TypeTIME      ColumnType = "TIME"
	TypeBLOB      ColumnType = "BLOB"
	TypeUUID      ColumnType = "UUID"
	TypeJSON      ColumnType = "JSON"
)

// columnTypes maps every accepted spelling to its canonical type.
var columnTypes = map[string]ColumnType{
	"INT":       TypeINT,
	"INTEGER":   TypeINT,
	"BIGINT":    TypeBIGINT,
	"SMALLINT":  TypeSMALLINT,
	"TINYINT":   TypeSMALLINT,
	"TEXT":      TypeTEXT,
	"VARCHAR":   TypeVARCHAR,
	"CHAR":      TypeCHAR,
	"CHARACTER": TypeCHAR,
	"BOOLEAN":   TypeBOOLEAN,
	"BOOL":      TypeBOOLEAN,
	"FLOAT":     TypeFLOAT,
	"REAL":      TypeFLOAT,
	"DOUBLE":    TypeDOUBLE,
	"DECIMAL":   TypeDECIMAL,
	"NUMERIC":   TypeDECIMAL,
	"TIMESTAMP": TypeTIMESTAMP,
	"DATETIME":  TypeTIMESTAMP,
	"DATE":      TypeDATE,
	"TIME":      TypeTIME,
	"BLOB":      TypeBLOB,
	"BYTEA":     TypeBLOB,
	"UUID":      TypeUUID,
	"JSON":      TypeJSON,
	"JSONB":     TypeJSON,
}

// LookupColumnType reports whether attr, a column attribute as stored in
// ColumnDef, names a data type. A sized attribute such as "varchar(64)"
// yields the type and its size; size is 0 when absent.
func LookupColumnType(attr string) (typ ColumnType, size int, ok bool) {
	name := attr
	if open := strings.IndexByte(attr, '('); open > 0 && strings.HasSuffix(attr, ")") {
		n, err := strconv.Atoi(attr[open+1 : len(attr)-1])
		if err != nil {
			return "", 0, false
		}
		name, size = attr[:open], n
	}
	typ, ok = columnTypes[upper(name)]
	if !ok {
		return "", 0, false
	}
	return typ, size, true
}

// Type returns the data type of the column: its first attribute, when that
// attribute names a known type.
func (c ColumnDef) Type() (typ ColumnType, size int, ok bool) {
	if len(c.Attributes) == 0 {
		return "", 0, false
	}
	return LookupColumnType(c.Attributes[0])
}
