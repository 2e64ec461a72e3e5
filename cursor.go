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
	"encoding/binary"
	"math"
)

// cursor is a position in a single byte buffer. Reads consume bytes from
// buf[pos:], writes append to buf. A cursor belongs to exactly one Serialize
// or Deserialize call.
type cursor struct {
	buf []byte
	pos int
}

func newReadCursor(data []byte) *cursor {
	return &cursor{buf: data}
}

// newWriteCursor appends to dst, re-using its spare capacity.
func newWriteCursor(dst []byte) *cursor {
	return &cursor{buf: dst, pos: len(dst)}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

// readBytes returns the next n bytes and advances past them. The returned
// slice aliases the input; callers copy what they keep.
func (c *cursor) readBytes(n int) ([]byte, *Error) {
	if n < 0 || c.remaining() < n {
		return nil, errorAt(
			CodeTruncatedInput, c.pos,
			"need %d bytes, have %d", n, c.remaining(),
		)
	}
	span := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return span, nil
}

func (c *cursor) readU8() (uint8, *Error) {
	span, err := c.readBytes(1)
	if err != nil {
		return 0, err
	}
	return span[0], nil
}

func (c *cursor) readU16() (uint16, *Error) {
	span, err := c.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(span), nil
}

func (c *cursor) readU32() (uint32, *Error) {
	span, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(span), nil
}

// readI32 is readU32 with the high bit treated as a sign.
func (c *cursor) readI32() (int32, *Error) {
	v, err := c.readU32()
	return int32(v), err
}

func (c *cursor) readU64() (uint64, *Error) {
	span, err := c.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(span), nil
}

func (c *cursor) readI64() (int64, *Error) {
	v, err := c.readU64()
	return int64(v), err
}

// readString reads a u16 length followed by that many bytes. It reads both
// tag names and String payloads.
func (c *cursor) readString() (string, *Error) {
	n, err := c.readU16()
	if err != nil {
		return "", err
	}
	span, err := c.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(span), nil
}

// readCount reads a u32 element count and checks that count elements of at
// least elemSize bytes each could fit in what's left of the input.
func (c *cursor) readCount(elemSize int) (int, *Error) {
	start := c.pos
	n, err := c.readU32()
	if err != nil {
		return 0, err
	}
	if elemSize > 0 && uint64(n)*uint64(elemSize) > uint64(c.remaining()) {
		return 0, errorAt(
			CodeTruncatedInput, start,
			"count %d needs at least %d bytes, have %d",
			n, uint64(n)*uint64(elemSize), c.remaining(),
		)
	}
	return int(n), nil
}

func (c *cursor) writeU8(v uint8) {
	c.buf = append(c.buf, v)
	c.pos++
}

func (c *cursor) writeU16(v uint16) {
	c.buf = binary.BigEndian.AppendUint16(c.buf, v)
	c.pos += 2
}

func (c *cursor) writeU32(v uint32) {
	c.buf = binary.BigEndian.AppendUint32(c.buf, v)
	c.pos += 4
}

func (c *cursor) writeU64(v uint64) {
	c.buf = binary.BigEndian.AppendUint64(c.buf, v)
	c.pos += 8
}

// writeBytesWithU16Length writes a String payload: a u16 length prefix and
// the raw bytes.
func (c *cursor) writeBytesWithU16Length(s string) *Error {
	if len(s) > math.MaxUint16 {
		return errorf(
			CodeInvalidEncodeInput,
			"string of %d bytes exceeds maximum length %d", len(s), math.MaxUint16,
		)
	}
	c.writeU16(uint16(len(s)))
	c.buf = append(c.buf, s...)
	c.pos += len(s)
	return nil
}

// writeCount writes a u32 element count.
func (c *cursor) writeCount(n int) *Error {
	if uint64(n) > math.MaxUint32 {
		return errorf(CodeInvalidEncodeInput, "%d elements exceed maximum count %d", n, uint32(math.MaxUint32))
	}
	c.writeU32(uint32(n))
	return nil
}
