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

package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flyparse/internal/compression"
	ferrors "flyparse/internal/errors"
	"flyparse/internal/sql"
)

func buildArchive(t *testing.T, algo compression.Algorithm, sources ...string) *Archive {
	t.Helper()
	a := New(algo)
	for _, src := range sources {
		stmt, err := sql.Parse(src)
		rec, recErr := NewRecord(src, stmt, err)
		if recErr != nil {
			t.Fatalf("NewRecord(%q): %v", src, recErr)
		}
		a.Add(rec)
	}
	return a
}

func TestNewRecord(t *testing.T) {
	stmt, err := sql.Parse("select a from t where a = 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rec, err := NewRecord("select a from t where a = 1", stmt, nil)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if !rec.OK() {
		t.Errorf("expected OK record, got error %q", rec.Error)
	}
	if rec.Kind != "SELECT" {
		t.Errorf("expected kind SELECT, got %q", rec.Kind)
	}
	if rec.Normalized != stmt.String() {
		t.Errorf("expected normalized %q, got %q", stmt.String(), rec.Normalized)
	}

	var ast map[string]any
	if err := json.Unmarshal(rec.AST, &ast); err != nil {
		t.Fatalf("AST is not valid JSON: %v", err)
	}
	if ast["type"] != "statement" {
		t.Errorf("expected AST type statement, got %v", ast["type"])
	}

	_, parseErr := sql.Parse("SELECT FROM;")
	rec, err = NewRecord("SELECT FROM;", nil, parseErr)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if rec.OK() || rec.Error != parseErr.Error() {
		t.Errorf("expected error record, got %+v", rec)
	}
	if rec.SQLState != "42939" {
		t.Errorf("expected reserved-name SQLSTATE 42939, got %q", rec.SQLState)
	}
	if rec.AST != nil || rec.Normalized != "" {
		t.Errorf("error record must not carry a tree, got %+v", rec)
	}
}

func TestEncodeDecode(t *testing.T) {
	sources := []string{
		"SELECT a, b FROM t WHERE a > 1 ORDER BY b DESC LIMIT 5;",
		"CREATE TABLE users (id INT, name VARCHAR(20) NOT NULL)",
		"SELECT FROM;",
		"select * from t where x is not null",
	}

	algos := []compression.Algorithm{
		compression.AlgorithmNone,
		compression.AlgorithmGzip,
		compression.AlgorithmLZ4,
		compression.AlgorithmSnappy,
		compression.AlgorithmZstd,
	}
	for _, algo := range algos {
		t.Run(algo.String(), func(t *testing.T) {
			a := buildArchive(t, algo, sources...)

			var buf bytes.Buffer
			if err := a.Encode(&buf); err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if got.ID != a.ID {
				t.Errorf("ID mismatch: %s != %s", got.ID, a.ID)
			}
			if !got.Created.Equal(a.Created) {
				t.Errorf("created mismatch: %v != %v", got.Created, a.Created)
			}
			if got.Algorithm != algo {
				t.Errorf("algorithm mismatch: %s != %s", got.Algorithm, algo)
			}
			if len(got.Records) != len(sources) {
				t.Fatalf("expected %d records, got %d", len(sources), len(got.Records))
			}
			for i, rec := range got.Records {
				want := a.Records[i]
				if rec.Source != want.Source || rec.Normalized != want.Normalized ||
					rec.Kind != want.Kind || rec.Error != want.Error {
					t.Errorf("record %d mismatch:\n got %+v\nwant %+v", i, rec, want)
				}
				if !bytes.Equal(rec.AST, want.AST) {
					t.Errorf("record %d AST mismatch", i)
				}
			}
			if got.Failed() != 1 {
				t.Errorf("expected 1 failed record, got %d", got.Failed())
			}
		})
	}
}

func TestDecodeCorrupted(t *testing.T) {
	a := buildArchive(t, compression.AlgorithmZstd, "SELECT a FROM t", "SELECT b FROM u")
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	valid := buf.Bytes()

	mutate := func(f func([]byte) []byte) []byte {
		data := append([]byte(nil), valid...)
		return f(data)
	}

	tests := []struct {
		name  string
		data  []byte
		cause error
	}{
		{"empty", nil, nil},
		{"short header", valid[:10], nil},
		{"bad magic", mutate(func(d []byte) []byte { d[0] = 0x00; return d }), ErrInvalidMagic},
		{"bad version", mutate(func(d []byte) []byte { d[1] = 0x7F; return d }), ErrInvalidVersion},
		{"truncated payload", valid[:len(valid)-2], nil},
		{"flipped payload byte", mutate(func(d []byte) []byte { d[HeaderSize] ^= 0xFF; return d }), ErrChecksum},
		{"oversized length", mutate(func(d []byte) []byte {
			d[28], d[29], d[30], d[31] = 0xFF, 0xFF, 0xFF, 0xFF
			return d
		}), ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if ferrors.GetCode(err) != ferrors.ErrCodeArchiveCorrupted {
				t.Errorf("expected archive corrupted code, got %v", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "script.fpa")

	a := buildArchive(t, compression.AlgorithmGzip, "SELECT a FROM t", "CREATE DATABASE shop")
	if err := a.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got.Records) != 2 || got.Records[1].Kind != "CREATE" {
		t.Errorf("unexpected records: %+v", got.Records)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.fpa"))
	if ferrors.GetCode(err) != ferrors.ErrCodeIOError {
		t.Errorf("expected IO error code, got %v", err)
	}
}
