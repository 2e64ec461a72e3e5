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

import "fmt"

// A Kind is the one-byte type code that precedes every tag on the wire.
type Kind uint8

const (
	KindEnd       Kind = 0
	KindByte      Kind = 1
	KindShort     Kind = 2
	KindInt       Kind = 3
	KindLong      Kind = 4
	KindFloat     Kind = 5
	KindDouble    Kind = 6
	KindByteArray Kind = 7
	KindString    Kind = 8
	KindList      Kind = 9
	KindCompound  Kind = 10
	KindIntArray  Kind = 11
	KindLongArray Kind = 12

	maxKind = KindLongArray
)

// Valid reports whether k is one of the thirteen defined kinds, including
// KindEnd.
func (k Kind) Valid() bool {
	return k <= maxKind
}

func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "End"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindByteArray:
		return "ByteArray"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindCompound:
		return "Compound"
	case KindIntArray:
		return "IntArray"
	case KindLongArray:
		return "LongArray"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// minPayloadSize is the smallest number of bytes a payload of kind k can
// occupy on the wire. Decoding uses it to reject element counts that can't
// possibly fit in the remaining input before allocating anything.
func (k Kind) minPayloadSize() int {
	switch k {
	case KindByte:
		return 1
	case KindShort, KindString:
		return 2
	case KindInt, KindFloat, KindByteArray, KindIntArray, KindLongArray:
		return 4
	case KindLong, KindDouble:
		return 8
	case KindList:
		return 5
	case KindCompound:
		return 1
	}
	return 0
}
