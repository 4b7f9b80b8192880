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
Package archive stores batches of parsed statements in a single compressed
file.

Archive Overview:
=================

An archive records, for every statement of a script, the source text and
the outcome of parsing it: the normalised SQL, the statement kind and the
JSON-encoded syntax tree, or the error message when parsing failed.
Records keep the order of the script.

File Format:
============

	+--------+--------+--------+--------+----------------+-----------+
	| Magic  | Version|  Algo  | Flags  |   ID (16B)     | Created   |
	+--------+--------+--------+--------+----------------+-----------+
	| Length (4B)     | CRC32 (4B)      | Payload...
	+-----------------+-----------------+----------

	- Magic (1 byte): 0xFA
	- Version (1 byte): format version (currently 0x01)
	- Algo (1 byte): compression.Algorithm of the payload
	- Flags (1 byte): reserved, zero
	- ID (16 bytes): archive UUID
	- Created (8 bytes): creation time, Unix nanoseconds, big-endian
	- Length (4 bytes): payload length, big-endian
	- CRC32 (4 bytes): IEEE checksum of the payload
	- Payload: a compressed batch with one JSON Record per entry
*/
package archive

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"time"

	"flyparse/internal/compression"
	ferrors "flyparse/internal/errors"
	"flyparse/internal/sql"

	"github.com/google/uuid"
)

// Format constants.
const (
	MagicByte     byte = 0xFA
	FormatVersion byte = 0x01

	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 4 + 16 + 8 + 4 + 4

	// MaxPayloadSize bounds the payload accepted on read (256 MB).
	MaxPayloadSize = 256 * 1024 * 1024
)

// Common errors.
var (
	ErrInvalidMagic   = errors.New("invalid archive magic byte")
	ErrInvalidVersion = errors.New("unsupported archive version")
	ErrTooLarge       = errors.New("archive payload exceeds maximum size")
	ErrChecksum       = errors.New("archive checksum mismatch")
)

// Record is the stored outcome of parsing one statement.
type Record struct {
	Source     string          `json:"source"`
	Normalized string          `json:"normalized,omitempty"`
	Kind       string          `json:"kind,omitempty"`
	AST        json.RawMessage `json:"ast,omitempty"`
	Error      string          `json:"error,omitempty"`
	SQLState   string          `json:"sqlstate,omitempty"`
}

// OK reports whether the statement parsed.
func (r Record) OK() bool {
	return r.Error == ""
}

// NewRecord builds a Record from a parse result. Exactly one of stmt and
// parseErr is expected to be non-nil.
func NewRecord(source string, stmt *sql.Statement, parseErr error) (Record, error) {
	rec := Record{Source: source}
	if parseErr != nil {
		rec.Error = parseErr.Error()
		rec.SQLState = string(ferrors.GetSQLSTATE(parseErr))
		return rec, nil
	}
	if stmt == nil {
		return rec, nil
	}

	ast, err := json.Marshal(stmt)
	if err != nil {
		return Record{}, err
	}
	rec.Normalized = stmt.String()
	rec.Kind = stmt.Kind.String()
	rec.AST = ast
	return rec, nil
}

// Archive is an ordered collection of records.
type Archive struct {
	ID        uuid.UUID
	Created   time.Time
	Algorithm compression.Algorithm
	Records   []Record
}

// New creates an empty archive with a fresh ID.
func New(algo compression.Algorithm) *Archive {
	return &Archive{
		ID:        uuid.New(),
		Created:   time.Now().UTC(),
		Algorithm: algo,
	}
}

// Add appends a record.
func (a *Archive) Add(rec Record) {
	a.Records = append(a.Records, rec)
}

// Failed returns the number of records holding a parse error.
func (a *Archive) Failed() int {
	n := 0
	for _, r := range a.Records {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Encode writes the archive to w.
func (a *Archive) Encode(w io.Writer) error {
	batch := compression.NewBatchCompressor(compression.Config{
		Algorithm: a.Algorithm,
		Level:     compression.LevelDefault,
	})
	for _, rec := range a.Records {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		batch.Add(data)
	}
	payload, err := batch.Flush()
	if err != nil {
		return err
	}
	if len(payload) > MaxPayloadSize {
		return ErrTooLarge
	}

	header := make([]byte, HeaderSize)
	header[0] = MagicByte
	header[1] = FormatVersion
	header[2] = byte(a.Algorithm)
	header[3] = 0
	copy(header[4:20], a.ID[:])
	binary.BigEndian.PutUint64(header[20:28], uint64(a.Created.UnixNano()))
	binary.BigEndian.PutUint32(header[28:32], uint32(len(payload)))
	binary.BigEndian.PutUint32(header[32:36], crc32.ChecksumIEEE(payload))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// Decode reads an archive from r.
func Decode(r io.Reader) (*Archive, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ferrors.ArchiveCorrupted("short header").WithCause(err)
	}
	if header[0] != MagicByte {
		return nil, ferrors.ArchiveCorrupted("not an archive").WithCause(ErrInvalidMagic)
	}
	if header[1] != FormatVersion {
		return nil, ferrors.ArchiveCorrupted("unknown format version").WithCause(ErrInvalidVersion)
	}

	a := &Archive{Algorithm: compression.Algorithm(header[2])}
	copy(a.ID[:], header[4:20])
	a.Created = time.Unix(0, int64(binary.BigEndian.Uint64(header[20:28]))).UTC()

	length := binary.BigEndian.Uint32(header[28:32])
	if length > MaxPayloadSize {
		return nil, ferrors.ArchiveCorrupted("payload length out of range").WithCause(ErrTooLarge)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, ferrors.ArchiveCorrupted("truncated payload").WithCause(err)
	}
	if crc32.ChecksumIEEE(payload) != binary.BigEndian.Uint32(header[32:36]) {
		return nil, ferrors.ArchiveCorrupted("payload checksum").WithCause(ErrChecksum)
	}

	batch := compression.NewBatchCompressor(compression.Config{Algorithm: a.Algorithm})
	entries, err := batch.DecompressBatch(payload, a.Algorithm)
	if err != nil {
		return nil, ferrors.ArchiveCorrupted("payload").WithCause(err)
	}
	a.Records = make([]Record, len(entries))
	for i, e := range entries {
		if err := json.Unmarshal(e, &a.Records[i]); err != nil {
			return nil, ferrors.ArchiveCorrupted("record").WithCause(err)
		}
	}
	return a, nil
}

// WriteFile writes the archive to path, creating parent directories. The
// file is written to a temporary name first and renamed into place.
func (a *Archive) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return ferrors.IOError("encode archive", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ferrors.IOError("create directory", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return ferrors.IOError("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return ferrors.IOError("rename", path, err)
	}
	return nil
}

// ReadFile reads the archive stored at path.
func ReadFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ferrors.IOError("open", path, err)
	}
	defer f.Close()
	return Decode(f)
}
