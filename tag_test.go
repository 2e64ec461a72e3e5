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

func TestKind(t *testing.T) {
	t.Parallel()
	for kind := KindEnd; kind <= maxKind; kind++ {
		assert.True(t, kind.Valid())
		assert.False(t, strings.Contains(kind.String(), "("), assert.Sprintf("name kind %d", uint8(kind)))
	}
	assert.False(t, Kind(13).Valid())
	assert.Equal(t, Kind(200).String(), "Kind(200)")
}

func TestPayloadKinds(t *testing.T) {
	t.Parallel()
	payloads := map[Kind]Payload{
		KindByte:      Byte(0),
		KindShort:     Short(0),
		KindInt:       Int(0),
		KindLong:      Long(0),
		KindFloat:     Float(0),
		KindDouble:    Double(0),
		KindByteArray: ByteArray(nil),
		KindString:    String(""),
		KindList:      NewList(KindEnd),
		KindCompound:  NewCompound(),
		KindIntArray:  IntArray(nil),
		KindLongArray: LongArray(nil),
	}
	assert.Equal(t, len(payloads), int(maxKind))
	for kind, payload := range payloads {
		assert.Equal(t, payload.Kind(), kind)
		assert.Equal(t, Tag{Payload: payload}.Kind(), kind)
	}
	assert.Equal(t, Tag{}.Kind(), KindEnd)
}

func TestCompound(t *testing.T) {
	t.Parallel()

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()
		var compound Compound
		_, ok := compound.Get("missing")
		assert.False(t, ok)
		compound.Set("a", Int(1))
		assert.Equal(t, compound.Len(), 1)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		var compound *Compound
		assert.Equal(t, compound.Len(), 0)
		assert.Nil(t, compound.Tags())
		assert.False(t, compound.Delete("a"))
		_, ok := compound.Get("a")
		assert.False(t, ok)
	})

	t.Run("last write wins in place", func(t *testing.T) {
		t.Parallel()
		compound := NewCompound(
			Tag{Name: "x", Payload: Int(1)},
			Tag{Name: "y", Payload: Int(2)},
		)
		compound.Set("x", String("replaced"))
		assert.Equal(t, compound.Tags(), []Tag{
			{Name: "x", Payload: String("replaced")},
			{Name: "y", Payload: Int(2)},
		})
	})

	t.Run("delete reindexes", func(t *testing.T) {
		t.Parallel()
		compound := NewCompound(
			Tag{Name: "a", Payload: Byte(1)},
			Tag{Name: "b", Payload: Byte(2)},
			Tag{Name: "c", Payload: Byte(3)},
		)
		assert.True(t, compound.Delete("a"))
		assert.False(t, compound.Delete("a"))
		payload, ok := compound.Get("c")
		assert.True(t, ok)
		assert.Equal[Payload](t, payload, Byte(3))
		compound.Set("b", Byte(20))
		assert.Equal(t, compound.Tags(), []Tag{
			{Name: "b", Payload: Byte(20)},
			{Name: "c", Payload: Byte(3)},
		})
	})

	t.Run("range stops early", func(t *testing.T) {
		t.Parallel()
		compound := NewCompound(
			Tag{Name: "a", Payload: Byte(1)},
			Tag{Name: "b", Payload: Byte(2)},
		)
		var seen []string
		compound.Range(func(tag Tag) bool {
			seen = append(seen, tag.Name)
			return false
		})
		assert.Equal(t, seen, []string{"a"})
	})

	t.Run("equal ignores order", func(t *testing.T) {
		t.Parallel()
		first := NewCompound(Tag{Name: "a", Payload: Byte(1)}, Tag{Name: "b", Payload: Byte(2)})
		second := NewCompound(Tag{Name: "b", Payload: Byte(2)}, Tag{Name: "a", Payload: Byte(1)})
		assert.True(t, first.Equal(second))
		second.Set("a", Short(1))
		assert.False(t, first.Equal(second))
	})
}

func TestEqual(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		a, b  Payload
		equal bool
	}{
		{name: "nils", a: nil, b: nil, equal: true},
		{name: "nil and value", a: nil, b: Byte(0), equal: false},
		{name: "same kind different value", a: Int(1), b: Int(2), equal: false},
		{name: "different kinds", a: Int(1), b: Long(1), equal: false},
		{name: "nan", a: Float(float32(math.NaN())), b: Float(float32(math.NaN())), equal: true},
		{name: "signed zero", a: Double(0), b: DoubleFromBits(1 << 63), equal: false},
		{name: "arrays", a: IntArray{1, 2}, b: IntArray{1, 2}, equal: true},
		{name: "array lengths", a: LongArray{1}, b: LongArray{1, 2}, equal: false},
		{name: "empty arrays", a: ByteArray(nil), b: ByteArray{}, equal: true},
		{name: "list order", a: NewList(KindByte, Byte(1), Byte(2)), b: NewList(KindByte, Byte(2), Byte(1)), equal: false},
		{name: "list kinds", a: NewList(KindByte), b: NewList(KindEnd), equal: false},
		{name: "strings", a: String("a"), b: String("a"), equal: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, Equal(testCase.a, testCase.b), testCase.equal)
			assert.Equal(t, Equal(testCase.b, testCase.a), testCase.equal)
		})
	}
}

func TestFloatBits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Float(1.5).Bits(), uint32(0x3fc00000))
	assert.Equal(t, FloatFromBits(0x3fc00000), Float(1.5))
	assert.Equal(t, Double(1).Bits(), uint64(0x3ff0000000000000))
	assert.Equal(t, DoubleFromBits(0x3ff0000000000000), Double(1))
}
