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
Package compression provides configurable compression for flyparse.

Compression Overview:
=====================

AST archives store many small records (statement text plus its encoded
syntax tree). Records are collected into one batch and the batch is
compressed as a whole, which compresses far better than the records do
one by one.

Supported Algorithms:
=====================

 1. Gzip: standard library, portable
 2. LZ4: fast compression/decompression, moderate ratio
 3. Snappy: very fast, lower ratio
 4. Zstd: best ratio, configurable speed/ratio tradeoff (default)

Batch Format:
=============

Before compression a batch is laid out as

	uvarint(count) { uvarint(len) bytes }

The algorithm is not recorded in the payload; callers store it next to
the compressed data.
*/
package compression

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm represents a compression algorithm
type Algorithm int

const (
	AlgorithmNone Algorithm = iota
	AlgorithmGzip
	AlgorithmLZ4
	AlgorithmSnappy
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmGzip:
		return "gzip"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmSnappy:
		return "snappy"
	case AlgorithmZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses a compression algorithm from string
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return AlgorithmNone, nil
	case "gzip":
		return AlgorithmGzip, nil
	case "lz4":
		return AlgorithmLZ4, nil
	case "snappy":
		return AlgorithmSnappy, nil
	case "zstd":
		return AlgorithmZstd, nil
	default:
		return AlgorithmNone, fmt.Errorf("%w: %s", ErrUnsupportedAlgo, s)
	}
}

// Level represents compression level
type Level int

const (
	LevelFastest Level = 1
	LevelDefault Level = 5
	LevelBest    Level = 9
)

// Config holds compression configuration
type Config struct {
	Algorithm Algorithm `json:"algorithm"`
	Level     Level     `json:"level"`
	MinSize   int       `json:"min_size"` // Minimum size to compress
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Algorithm: AlgorithmZstd,
		Level:     LevelDefault,
		MinSize:   256,
	}
}

// Errors
var (
	ErrDataTooSmall     = errors.New("data too small to compress")
	ErrInvalidHeader    = errors.New("invalid compression header")
	ErrUnsupportedAlgo  = errors.New("unsupported compression algorithm")
	ErrDecompressFailed = errors.New("decompression failed")
)

// Compressor provides compression/decompression operations. It is safe for
// concurrent use.
type Compressor struct {
	config     Config
	gzipPool   sync.Pool
	bufferPool sync.Pool

	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
}

// NewCompressor creates a new compressor
func NewCompressor(config Config) *Compressor {
	level := gzipLevel(config.Level)
	return &Compressor{
		config: config,
		gzipPool: sync.Pool{
			New: func() interface{} {
				w, err := gzip.NewWriterLevel(nil, level)
				if err != nil {
					return gzip.NewWriter(nil)
				}
				return w
			},
		},
		bufferPool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// Algorithm returns the configured algorithm.
func (c *Compressor) Algorithm() Algorithm {
	return c.config.Algorithm
}

// Compress compresses data with the configured algorithm. Inputs shorter
// than Config.MinSize are refused with ErrDataTooSmall so the caller can
// store them uncompressed.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if c.config.Algorithm != AlgorithmNone && len(data) < c.config.MinSize {
		return nil, ErrDataTooSmall
	}
	return c.compress(data, c.config.Algorithm)
}

// Decompress reverses Compress for the given algorithm.
func (c *Compressor) Decompress(data []byte, algo Algorithm) ([]byte, error) {
	switch algo {
	case AlgorithmNone:
		return append([]byte(nil), data...), nil

	case AlgorithmGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	case AlgorithmLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	case AlgorithmSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	case AlgorithmZstd:
		if err := c.initZstd(); err != nil {
			return nil, err
		}
		out, err := c.zstdDec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgo, algo)
	}
}

func (c *Compressor) compress(data []byte, algo Algorithm) ([]byte, error) {
	switch algo {
	case AlgorithmNone:
		return append([]byte(nil), data...), nil

	case AlgorithmGzip:
		buf := c.bufferPool.Get().(*bytes.Buffer)
		buf.Reset()
		defer c.bufferPool.Put(buf)

		w := c.gzipPool.Get().(*gzip.Writer)
		defer c.gzipPool.Put(w)
		w.Reset(buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return append([]byte(nil), buf.Bytes()...), nil

	case AlgorithmLZ4:
		buf := c.bufferPool.Get().(*bytes.Buffer)
		buf.Reset()
		defer c.bufferPool.Put(buf)

		w := lz4.NewWriter(buf)
		if err := w.Apply(lz4.CompressionLevelOption(lz4Level(c.config.Level))); err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return append([]byte(nil), buf.Bytes()...), nil

	case AlgorithmSnappy:
		return snappy.Encode(nil, data), nil

	case AlgorithmZstd:
		if err := c.initZstd(); err != nil {
			return nil, err
		}
		return c.zstdEnc.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgo, algo)
	}
}

// initZstd creates the shared zstd encoder and decoder on first use. Both
// support concurrent EncodeAll/DecodeAll calls.
func (c *Compressor) initZstd() error {
	c.zstdOnce.Do(func() {
		level := zstd.EncoderLevelFromZstd(zstdLevel(c.config.Level))
		c.zstdEnc, c.zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		if c.zstdErr != nil {
			return
		}
		c.zstdDec, c.zstdErr = zstd.NewReader(nil)
	})
	return c.zstdErr
}

func gzipLevel(l Level) int {
	switch {
	case l <= 0:
		return gzip.DefaultCompression
	case l > gzip.BestCompression:
		return gzip.BestCompression
	default:
		return int(l)
	}
}

func lz4Level(l Level) lz4.CompressionLevel {
	switch {
	case l <= LevelFastest:
		return lz4.Fast
	case l >= LevelBest:
		return lz4.Level9
	default:
		return lz4.Level5
	}
}

// zstdLevel maps the 1-9 scale onto zstd's 1-22 scale.
func zstdLevel(l Level) int {
	switch {
	case l <= LevelFastest:
		return 1
	case l >= LevelBest:
		return 19
	default:
		return 3
	}
}

// BatchCompressor collects entries and compresses them as one unit.
type BatchCompressor struct {
	compressor *Compressor
	mu         sync.Mutex
	entries    [][]byte
}

// NewBatchCompressor creates a batch compressor.
func NewBatchCompressor(config Config) *BatchCompressor {
	return &BatchCompressor{compressor: NewCompressor(config)}
}

// Algorithm returns the algorithm batches are compressed with.
func (b *BatchCompressor) Algorithm() Algorithm {
	return b.compressor.Algorithm()
}

// Add appends a copy of entry to the pending batch.
func (b *BatchCompressor) Add(entry []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, append([]byte(nil), entry...))
}

// Len returns the number of pending entries.
func (b *BatchCompressor) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Flush encodes and compresses the pending entries and empties the batch.
// MinSize does not apply to batches.
func (b *BatchCompressor) Flush() ([]byte, error) {
	b.mu.Lock()
	entries := b.entries
	b.entries = nil
	b.mu.Unlock()

	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], uint64(len(entries)))
	buf.Write(scratch[:n])
	for _, e := range entries {
		n = binary.PutUvarint(scratch[:], uint64(len(e)))
		buf.Write(scratch[:n])
		buf.Write(e)
	}
	return b.compressor.compress(buf.Bytes(), b.compressor.config.Algorithm)
}

// DecompressBatch decompresses a flushed batch and splits it into entries.
func (b *BatchCompressor) DecompressBatch(data []byte, algo Algorithm) ([][]byte, error) {
	raw, err := b.compressor.Decompress(data, algo)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(raw)
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: batch count: %v", ErrInvalidHeader, err)
	}
	if count > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: batch count %d exceeds payload", ErrInvalidHeader, count)
	}

	entries := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		size, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d length: %v", ErrInvalidHeader, i, err)
		}
		if size > uint64(r.Len()) {
			return nil, fmt.Errorf("%w: entry %d truncated", ErrInvalidHeader, i)
		}
		entry := make([]byte, size)
		if _, err := io.ReadFull(r, entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidHeader, i, err)
		}
		entries = append(entries, entry)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidHeader, r.Len())
	}
	return entries, nil
}
