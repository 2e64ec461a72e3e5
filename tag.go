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

import "math"

// A Tag is one named node in an NBT tree. Tags nested directly inside a List
// have no name on the wire, so lists hold bare Payloads instead of Tags.
type Tag struct {
	Name    string
	Payload Payload
}

// Kind returns the kind of the tag's payload, or KindEnd if the payload is
// nil.
func (t Tag) Kind() Kind {
	if t.Payload == nil {
		return KindEnd
	}
	return t.Payload.Kind()
}

// Equal reports whether two tags have the same name and structurally equal
// payloads.
func (t Tag) Equal(other Tag) bool {
	return t.Name == other.Name && Equal(t.Payload, other.Payload)
}

// A Payload is the value carried by a tag. The set of implementations is
// closed: exactly one type per non-End kind, all defined in this package.
type Payload interface {
	Kind() Kind

	isPayload()
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	String    string
	IntArray  []int32
	LongArray []int64
)

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (ByteArray) Kind() Kind { return KindByteArray }
func (String) Kind() Kind    { return KindString }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }
func (*List) Kind() Kind     { return KindList }
func (*Compound) Kind() Kind { return KindCompound }

func (Byte) isPayload()      {}
func (Short) isPayload()     {}
func (Int) isPayload()       {}
func (Long) isPayload()      {}
func (Float) isPayload()     {}
func (Double) isPayload()    {}
func (ByteArray) isPayload() {}
func (String) isPayload()    {}
func (IntArray) isPayload()  {}
func (LongArray) isPayload() {}
func (*List) isPayload()     {}
func (*Compound) isPayload() {}

// Bits returns the IEEE 754 bit pattern written to the wire for f.
func (f Float) Bits() uint32 { return math.Float32bits(float32(f)) }

// Bits returns the IEEE 754 bit pattern written to the wire for d.
func (d Double) Bits() uint64 { return math.Float64bits(float64(d)) }

// FloatFromBits returns the Float whose wire representation is bits.
func FloatFromBits(bits uint32) Float { return Float(math.Float32frombits(bits)) }

// DoubleFromBits returns the Double whose wire representation is bits.
func DoubleFromBits(bits uint64) Double { return Double(math.Float64frombits(bits)) }

// A List is a homogeneous sequence of unnamed payloads. Every item must have
// kind Elem; Serialize rejects lists that break this rule. An empty list may
// use KindEnd as its element kind.
type List struct {
	Elem  Kind
	Items []Payload
}

// NewList constructs a List of the given element kind.
func NewList(elem Kind, items ...Payload) *List {
	return &List{Elem: elem, Items: items}
}

// Len returns the number of items in the list. It's safe to call on a nil
// *List.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Equal reports whether two lists have the same element kind and
// structurally equal items in the same order.
func (l *List) Equal(other *List) bool {
	if l.Len() != other.Len() {
		return false
	}
	if l == nil || other == nil {
		// Both are empty; a nil list has no element kind to compare.
		return true
	}
	if l.Elem != other.Elem {
		return false
	}
	for i := range l.Items {
		if !Equal(l.Items[i], other.Items[i]) {
			return false
		}
	}
	return true
}

// A Compound is a collection of uniquely named tags. It remembers insertion
// order, and setting a name that's already present replaces the payload in
// place: the last write wins, but the entry keeps its original position.
//
// The zero value is an empty Compound ready to use.
type Compound struct {
	tags  []Tag
	index map[string]int
}

// NewCompound constructs a Compound from tags, applying the usual
// last-write-wins rule to duplicate names.
func NewCompound(tags ...Tag) *Compound {
	compound := &Compound{}
	for _, tag := range tags {
		compound.Set(tag.Name, tag.Payload)
	}
	return compound
}

// Len returns the number of members. It's safe to call on a nil *Compound.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tags)
}

// Get returns the payload stored under name.
func (c *Compound) Get(name string) (Payload, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.tags[i].Payload, true
}

// Set stores payload under name.
func (c *Compound) Set(name string, payload Payload) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.tags[i].Payload = payload
		return
	}
	c.index[name] = len(c.tags)
	c.tags = append(c.tags, Tag{Name: name, Payload: payload})
}

// Delete removes name and reports whether it was present.
func (c *Compound) Delete(name string) bool {
	if c == nil {
		return false
	}
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.tags = append(c.tags[:i], c.tags[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.tags); j++ {
		c.index[c.tags[j].Name] = j
	}
	return true
}

// Tags returns a copy of the members in insertion order.
func (c *Compound) Tags() []Tag {
	if c == nil {
		return nil
	}
	tags := make([]Tag, len(c.tags))
	copy(tags, c.tags)
	return tags
}

// Range calls fn for each member in insertion order until fn returns false.
func (c *Compound) Range(fn func(Tag) bool) {
	if c == nil {
		return
	}
	for _, tag := range c.tags {
		if !fn(tag) {
			return
		}
	}
}

// Equal reports whether two compounds hold the same names with structurally
// equal payloads. Member order is ignored.
func (c *Compound) Equal(other *Compound) bool {
	if c.Len() != other.Len() {
		return false
	}
	for _, tag := range c.Tags() {
		payload, ok := other.Get(tag.Name)
		if !ok || !Equal(tag.Payload, payload) {
			return false
		}
	}
	return true
}

// Equal reports whether two payloads are structurally equal. Floats and
// doubles compare by bit pattern, so a NaN equals itself and 0 doesn't
// equal -0.
func Equal(a, b Payload) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case Byte, Short, Int, Long, String:
		return a == b
	case Float:
		return a.Bits() == b.(Float).Bits()
	case Double:
		return a.Bits() == b.(Double).Bits()
	case ByteArray:
		return equalSlices(a, b.(ByteArray))
	case IntArray:
		return equalSlices(a, b.(IntArray))
	case LongArray:
		return equalSlices(a, b.(LongArray))
	case *List:
		return a.Equal(b.(*List))
	case *Compound:
		return a.Equal(b.(*Compound))
	}
	return false
}

func equalSlices[S ~[]E, E comparable](a, b S) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
