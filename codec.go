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

// DefaultMaxDepth is the nesting limit used by Serialize, Deserialize, and
// codecs constructed without the MaxDepth option.
const DefaultMaxDepth = 512

var defaultCodec = NewCodec()

// Serialize encodes tag, including its kind byte and name, using the default
// Codec.
func Serialize(tag Tag) ([]byte, error) {
	return defaultCodec.Serialize(tag)
}

// Deserialize decodes the single named root tag at the start of data using
// the default Codec.
func Deserialize(data []byte) (Tag, error) {
	return defaultCodec.Deserialize(data)
}

// A Codec converts between Tag trees and their binary encoding. A Codec is
// immutable once constructed and safe for concurrent use; each call works on
// its own cursor.
type Codec struct {
	maxDepth           int
	rejectTrailingData bool
}

// NewCodec constructs a Codec.
func NewCodec(options ...Option) *Codec {
	codec := &Codec{maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		opt.applyToCodec(codec)
	}
	return codec
}

// Serialize encodes tag into a new slice.
func (c *Codec) Serialize(tag Tag) ([]byte, error) {
	return c.AppendSerialize(nil, tag)
}

// AppendSerialize appends the encoding of tag to dst and returns the extended
// slice. On error, it returns dst unchanged.
func (c *Codec) AppendSerialize(dst []byte, tag Tag) ([]byte, error) {
	out := newWriteCursor(dst)
	if err := c.encodeTag(out, tag, 1 /* depth */); err != nil {
		return dst, err
	}
	return out.buf, nil
}

// Deserialize decodes the root tag at the start of data. The returned tree
// doesn't alias data.
func (c *Codec) Deserialize(data []byte) (Tag, error) {
	in := newReadCursor(data)
	tag, ok, err := c.decodeTag(in, 1 /* depth */)
	if err != nil {
		return Tag{}, err
	}
	if !ok {
		return Tag{}, errorAt(CodeMalformedCompound, 0, "root tag is End")
	}
	if c.rejectTrailingData && in.remaining() > 0 {
		return Tag{}, errorAt(CodeTrailingData, in.pos, "%d bytes after root tag", in.remaining())
	}
	return tag, nil
}

func (c *Codec) checkDepth(depth int, offset int) *Error {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return errorAt(CodeDepthExceeded, offset, "nesting depth exceeds %d", c.maxDepth)
	}
	return nil
}

// decodeTag reads one complete named tag. It reports false, with no error,
// when it reads an End byte.
func (c *Codec) decodeTag(in *cursor, depth int) (Tag, bool, *Error) {
	start := in.pos
	b, err := in.readU8()
	if err != nil {
		return Tag{}, false, err
	}
	kind := Kind(b)
	if kind == KindEnd {
		return Tag{}, false, nil
	}
	if !kind.Valid() {
		return Tag{}, false, errorAt(CodeUnknownKind, start, "unknown tag kind 0x%02x", b)
	}
	name, err := in.readString()
	if err != nil {
		return Tag{}, false, err
	}
	payload, err := c.decodePayload(in, kind, depth)
	if err != nil {
		return Tag{}, false, err
	}
	return Tag{Name: name, Payload: payload}, true, nil
}

func (c *Codec) decodePayload(in *cursor, kind Kind, depth int) (Payload, *Error) {
	switch kind {
	case KindByte:
		v, err := in.readU8()
		if err != nil {
			return nil, err
		}
		return Byte(int8(v)), nil
	case KindShort:
		v, err := in.readU16()
		if err != nil {
			return nil, err
		}
		return Short(int16(v)), nil
	case KindInt:
		v, err := in.readI32()
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case KindLong:
		v, err := in.readI64()
		if err != nil {
			return nil, err
		}
		return Long(v), nil
	case KindFloat:
		v, err := in.readU32()
		if err != nil {
			return nil, err
		}
		return FloatFromBits(v), nil
	case KindDouble:
		v, err := in.readU64()
		if err != nil {
			return nil, err
		}
		return DoubleFromBits(v), nil
	case KindByteArray:
		n, err := in.readCount(1)
		if err != nil {
			return nil, err
		}
		span, err := in.readBytes(n)
		if err != nil {
			return nil, err
		}
		array := make(ByteArray, n)
		for i, b := range span {
			array[i] = int8(b)
		}
		return array, nil
	case KindString:
		s, err := in.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case KindList:
		return c.decodeList(in, depth)
	case KindCompound:
		return c.decodeCompound(in, depth)
	case KindIntArray:
		n, err := in.readCount(4)
		if err != nil {
			return nil, err
		}
		array := make(IntArray, n)
		for i := range array {
			if array[i], err = in.readI32(); err != nil {
				return nil, err
			}
		}
		return array, nil
	case KindLongArray:
		n, err := in.readCount(8)
		if err != nil {
			return nil, err
		}
		array := make(LongArray, n)
		for i := range array {
			if array[i], err = in.readI64(); err != nil {
				return nil, err
			}
		}
		return array, nil
	}
	return nil, errorAt(CodeUnknownKind, in.pos, "no payload encoding for kind %s", kind)
}

func (c *Codec) decodeList(in *cursor, depth int) (*List, *Error) {
	start := in.pos
	if err := c.checkDepth(depth, start); err != nil {
		return nil, err
	}
	b, err := in.readU8()
	if err != nil {
		return nil, err
	}
	elem := Kind(b)
	if !elem.Valid() {
		return nil, errorAt(CodeUnknownKind, start, "unknown list element kind 0x%02x", b)
	}
	n, err := in.readCount(elem.minPayloadSize())
	if err != nil {
		return nil, err
	}
	if elem == KindEnd && n > 0 {
		return nil, errorAt(CodeMalformedCompound, start, "list of End has %d items", n)
	}
	list := &List{Elem: elem, Items: make([]Payload, n)}
	for i := range list.Items {
		if list.Items[i], err = c.decodePayload(in, elem, depth+1); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (c *Codec) decodeCompound(in *cursor, depth int) (*Compound, *Error) {
	if err := c.checkDepth(depth, in.pos); err != nil {
		return nil, err
	}
	compound := &Compound{}
	for {
		tag, ok, err := c.decodeTag(in, depth+1)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compound, nil
		}
		compound.Set(tag.Name, tag.Payload)
	}
}

func (c *Codec) encodeTag(out *cursor, tag Tag, depth int) *Error {
	if tag.Payload == nil {
		return errorf(CodeInvalidEncodeInput, "tag %q has no payload", tag.Name)
	}
	out.writeU8(uint8(tag.Payload.Kind()))
	if err := out.writeBytesWithU16Length(tag.Name); err != nil {
		return err
	}
	return c.encodePayload(out, tag.Payload, depth)
}

func (c *Codec) encodePayload(out *cursor, payload Payload, depth int) *Error {
	switch payload := payload.(type) {
	case Byte:
		out.writeU8(uint8(payload))
	case Short:
		out.writeU16(uint16(payload))
	case Int:
		out.writeU32(uint32(payload))
	case Long:
		out.writeU64(uint64(payload))
	case Float:
		out.writeU32(payload.Bits())
	case Double:
		out.writeU64(payload.Bits())
	case ByteArray:
		if err := out.writeCount(len(payload)); err != nil {
			return err
		}
		for _, v := range payload {
			out.writeU8(uint8(v))
		}
	case String:
		return out.writeBytesWithU16Length(string(payload))
	case *List:
		return c.encodeList(out, payload, depth)
	case *Compound:
		return c.encodeCompound(out, payload, depth)
	case IntArray:
		if err := out.writeCount(len(payload)); err != nil {
			return err
		}
		for _, v := range payload {
			out.writeU32(uint32(v))
		}
	case LongArray:
		if err := out.writeCount(len(payload)); err != nil {
			return err
		}
		for _, v := range payload {
			out.writeU64(uint64(v))
		}
	default:
		return errorf(CodeInvalidEncodeInput, "unsupported payload %T", payload)
	}
	return nil
}

func (c *Codec) encodeList(out *cursor, list *List, depth int) *Error {
	if err := c.checkDepth(depth, -1); err != nil {
		return err
	}
	elem := KindEnd
	if list != nil {
		elem = list.Elem
	}
	if !elem.Valid() {
		return errorf(CodeInvalidEncodeInput, "invalid list element kind %s", elem)
	}
	if elem == KindEnd && list.Len() > 0 {
		return errorf(CodeInvalidEncodeInput, "list of End has %d items", list.Len())
	}
	out.writeU8(uint8(elem))
	if err := out.writeCount(list.Len()); err != nil {
		return err
	}
	for i := 0; i < list.Len(); i++ {
		item := list.Items[i]
		if item == nil {
			return errorf(CodeInvalidEncodeInput, "list item %d is nil", i)
		}
		if item.Kind() != elem {
			return errorf(CodeInvalidEncodeInput, "list item %d has kind %s, list holds %s", i, item.Kind(), elem)
		}
		if err := c.encodePayload(out, item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) encodeCompound(out *cursor, compound *Compound, depth int) *Error {
	if err := c.checkDepth(depth, -1); err != nil {
		return err
	}
	var err *Error
	compound.Range(func(tag Tag) bool {
		err = c.encodeTag(out, tag, depth+1)
		return err == nil
	})
	if err != nil {
		return err
	}
	out.writeU8(uint8(KindEnd))
	return nil
}
