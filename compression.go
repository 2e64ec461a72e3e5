// Copyright 2024 The nbt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nbt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// A Compression selects the envelope Inflate and Deflate use. The numeric
// values are the ones traditionally used by NBT tooling.
type Compression uint8

const (
	CompressionGzip Compression = 1 // RFC 1952 gzip stream
	CompressionZlib Compression = 2 // RFC 1950 zlib-wrapped deflate
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// ParseCompression returns the Compression with the given name: "gzip", or
// "zlib" (also accepted as "deflate").
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "gzip":
		return CompressionGzip, nil
	case "zlib", "deflate":
		return CompressionZlib, nil
	}
	return 0, errorf(CodeUnsupportedCompression, "unknown compression %q", name)
}

// DetectCompression sniffs the envelope at the start of data. It recognizes
// the gzip magic number and any valid zlib header using the deflate method.
// Uncompressed NBT with a Compound root never looks like either.
func DetectCompression(data []byte) (Compression, bool) {
	if len(data) < 2 {
		return 0, false
	}
	if data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip, true
	}
	// CMF: low nibble 8 is deflate, high nibble is the window size and
	// must be at most 7. The CMF/FLG pair is a multiple of 31.
	if data[0]&0x0f == 8 && data[0]>>4 <= 7 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0 {
		return CompressionZlib, true
	}
	return 0, false
}

// Inflate decompresses data. If sizeHint is positive, the output buffer is
// pre-sized to sizeHint bytes (up to 64 MiB), and output longer than sizeHint
// fails with CodeCompressionFailure; callers can retry with a larger hint. A
// zero or negative sizeHint means no limit.
func Inflate(data []byte, algorithm Compression, sizeHint int) ([]byte, error) {
	pool, err := compressionPoolFor(algorithm)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	presize(&out, sizeHint)
	if err := pool.Decompress(&out, data, int64(sizeHint)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Deflate compresses data with the default compression level. If sizeHint is
// positive, the output buffer is pre-sized to sizeHint bytes (up to 64 MiB);
// it is never a limit.
func Deflate(data []byte, algorithm Compression, sizeHint int) ([]byte, error) {
	pool, err := compressionPoolFor(algorithm)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	presize(&out, sizeHint)
	if err := pool.Compress(&out, data); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// maxPresize bounds how much memory a size hint can reserve up front, so a
// bogus hint from a file header can't force a huge allocation.
const maxPresize = 64 << 20

func presize(buffer *bytes.Buffer, sizeHint int) {
	if sizeHint > 0 {
		buffer.Grow(min(sizeHint, maxPresize))
	}
}

var compressionPools = map[Compression]*compressionPool{
	CompressionGzip: newCompressionPool(
		func() *gzip.Reader { return &gzip.Reader{} },
		func() *gzip.Writer { return gzip.NewWriter(io.Discard) },
	),
	CompressionZlib: newCompressionPool(
		func() *zlibReader { return &zlibReader{} },
		func() *zlib.Writer { return zlib.NewWriter(io.Discard) },
	),
}

func compressionPoolFor(algorithm Compression) (*compressionPool, *Error) {
	pool, ok := compressionPools[algorithm]
	if !ok {
		return nil, errorf(CodeUnsupportedCompression, "unsupported compression %s", algorithm)
	}
	return pool, nil
}

// A decompressor is a reusable wrapper that decompresses an underlying data
// source. *gzip.Reader implements decompressor.
type decompressor interface {
	io.Reader

	// Close closes the decompressor, but not the underlying data source.
	Close() error

	// Reset discards any internal state and prepares to read from a new
	// source of compressed data.
	Reset(io.Reader) error
}

// A compressor is a reusable wrapper that compresses data written to an
// underlying sink. *gzip.Writer and *zlib.Writer implement compressor.
type compressor interface {
	io.Writer

	// Close flushes any buffered data to the sink, but doesn't close it.
	Close() error

	// Reset discards any internal state and prepares to write to a new sink.
	Reset(io.Writer)
}

type compressionPool struct {
	decompressors sync.Pool
	compressors   sync.Pool
}

func newCompressionPool[D decompressor, C compressor](
	newDecompressor func() D,
	newCompressor func() C,
) *compressionPool {
	return &compressionPool{
		decompressors: sync.Pool{
			New: func() any { return newDecompressor() },
		},
		compressors: sync.Pool{
			New: func() any { return newCompressor() },
		},
	}
}

// Decompress inflates src into dst. If readMaxBytes is positive, output
// beyond that many bytes is an error.
func (c *compressionPool) Decompress(dst *bytes.Buffer, src []byte, readMaxBytes int64) *Error {
	reader, ok := c.decompressors.Get().(decompressor)
	if !ok {
		return errorf(CodeCompressionFailure, "get decompressor: unexpected type from pool")
	}
	if err := reader.Reset(bytes.NewReader(src)); err != nil {
		// The reader never saw a valid header, so it isn't safe to Close
		// or return to the pool.
		return errorf(CodeCompressionFailure, "read header: %w", err)
	}
	var limited io.Reader = reader
	if readMaxBytes > 0 {
		limited = io.LimitReader(reader, readMaxBytes+1)
	}
	bytesRead, err := dst.ReadFrom(limited)
	if err != nil {
		_ = reader.Close()
		return errorf(CodeCompressionFailure, "decompress: %w", err)
	}
	if readMaxBytes > 0 && bytesRead > readMaxBytes {
		_ = reader.Close()
		return errorf(CodeCompressionFailure, "decompressed size exceeds size hint %d", readMaxBytes)
	}
	c.putDecompressor(reader)
	return nil
}

func (c *compressionPool) putDecompressor(reader decompressor) {
	if err := reader.Close(); err != nil {
		return
	}
	// While it's in the pool, the decompressor shouldn't keep a reference to
	// the caller's data. Resetting to an empty gzip header does that for gzip
	// readers; other readers fail to parse it, which is fine because every
	// reader is reset again when it leaves the pool.
	_ = reader.Reset(bytes.NewReader(emptyGzipBytes))
	c.decompressors.Put(reader)
}

// Compress deflates src into dst.
func (c *compressionPool) Compress(dst *bytes.Buffer, src []byte) *Error {
	writer, ok := c.compressors.Get().(compressor)
	if !ok {
		return errorf(CodeCompressionFailure, "get compressor: unexpected type from pool")
	}
	writer.Reset(dst)
	if _, err := writer.Write(src); err != nil {
		return errorf(CodeCompressionFailure, "compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return errorf(CodeCompressionFailure, "close compressor: %w", err)
	}
	writer.Reset(io.Discard) // don't keep references
	c.compressors.Put(writer)
	return nil
}

// zlibReader adapts the zlib package's reader, which can only be constructed
// from a valid header, to the decompressor interface.
type zlibReader struct {
	reader io.ReadCloser
}

var _ decompressor = (*zlibReader)(nil)

func (z *zlibReader) Read(data []byte) (int, error) {
	if z.reader == nil {
		return 0, io.ErrUnexpectedEOF
	}
	return z.reader.Read(data)
}

func (z *zlibReader) Close() error {
	if z.reader == nil {
		return nil
	}
	return z.reader.Close()
}

func (z *zlibReader) Reset(source io.Reader) error {
	if z.reader == nil {
		reader, err := zlib.NewReader(source)
		if err != nil {
			return err
		}
		z.reader = reader
		return nil
	}
	resetter, ok := z.reader.(zlib.Resetter)
	if !ok {
		return fmt.Errorf("%T doesn't implement zlib.Resetter", z.reader)
	}
	return resetter.Reset(source, nil /* dict */)
}

// To reset gzip readers when returning them to a sync.Pool, we need a source
// of valid gzipped data. Gzip files begin with a 10-byte header, which is
// simple enough to write in a literal.
var emptyGzipBytes = []byte{
	// Magic number, identifies file type.
	0x1f, 0x8b,
	// Compression method. 0-7 reserved, 8 deflate.
	8,
	// File flags.
	0,
	// 32-bit timestamp.
	0, 0, 0, 0,
	// Compression flags.
	0,
	// Operating system ID, 3 is Unix.
	3,
}
