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
	"math"
	"strings"
	"testing"

	"github.com/bastelbot/nbt/internal/assert"
)

func TestCursorWrites(t *testing.T) {
	t.Parallel()
	out := newWriteCursor([]byte{0xaa})
	out.writeU8(0x01)
	out.writeU16(0x0203)
	out.writeU32(0x04050607)
	out.writeU64(0x08090a0b0c0d0e0f)
	assert.Nil(t, out.writeBytesWithU16Length("hi"))
	assert.Nil(t, out.writeCount(3))
	assert.Bytes(t, out.buf, []byte{
		0xaa,
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x00, 0x02, 'h', 'i',
		0x00, 0x00, 0x00, 0x03,
	})
	assert.Equal(t, out.pos, len(out.buf))
}

func TestCursorReads(t *testing.T) {
	t.Parallel()
	in := newReadCursor([]byte{
		0xfe,
		0xff, 0xfe,
		0xff, 0xff, 0xff, 0xfd,
		0x80, 0, 0, 0, 0, 0, 0, 0,
		0x00, 0x03, 'a', 'b', 'c',
	})
	u8, err := in.readU8()
	assert.Nil(t, err)
	assert.Equal(t, u8, uint8(0xfe))
	u16, err := in.readU16()
	assert.Nil(t, err)
	assert.Equal(t, u16, uint16(0xfffe))
	i32, err := in.readI32()
	assert.Nil(t, err)
	assert.Equal(t, i32, int32(-3))
	i64, err := in.readI64()
	assert.Nil(t, err)
	assert.Equal(t, i64, int64(math.MinInt64))
	s, err := in.readString()
	assert.Nil(t, err)
	assert.Equal(t, s, "abc")
	assert.Equal(t, in.remaining(), 0)

	_, err = in.readU8()
	assert.NotNil(t, err)
	assert.Equal(t, err.Code(), CodeTruncatedInput)
	assert.Equal(t, err.Offset(), 20)
}

func TestCursorBounds(t *testing.T) {
	t.Parallel()
	in := newReadCursor([]byte{0x01, 0x02, 0x03})
	_, err := in.readU32()
	assert.NotNil(t, err)
	assert.Equal(t, err.Code(), CodeTruncatedInput)
	assert.Equal(t, in.pos, 0, assert.Sprintf("failed reads don't advance"))
	_, err = in.readBytes(-1)
	assert.NotNil(t, err)

	counts := newReadCursor([]byte{0x00, 0x00, 0x00, 0x02, 0x01, 0x02, 0x03, 0x04})
	_, err = counts.readCount(4)
	assert.NotNil(t, err)
	assert.Equal(t, err.Offset(), 0)
}

func TestCursorWriteLimits(t *testing.T) {
	t.Parallel()
	out := newWriteCursor(nil)
	err := out.writeBytesWithU16Length(strings.Repeat("x", math.MaxUint16+1))
	assert.NotNil(t, err)
	assert.Equal(t, err.Code(), CodeInvalidEncodeInput)
	assert.Nil(t, out.writeBytesWithU16Length(strings.Repeat("x", math.MaxUint16)))
	assert.Equal(t, len(out.buf), math.MaxUint16+2)
}
