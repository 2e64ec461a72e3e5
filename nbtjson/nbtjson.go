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

// Package nbtjson renders NBT trees as JSON, for inspection and debugging.
//
// The mapping goes through google.protobuf.Value, so it's one-way: kinds
// aren't recorded, and several payloads share a JSON shape.
//
//   - Compounds become objects and Lists become arrays.
//   - Byte, Short, Int, Float, and Double become numbers. Non-finite floats
//     become the strings "NaN", "Infinity", and "-Infinity".
//   - Long and LongArray elements become decimal strings, since JSON numbers
//     can't hold every 64-bit integer.
//   - Strings and names that aren't valid UTF-8 have the invalid bytes
//     replaced with U+FFFD.
package nbtjson

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastelbot/nbt"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec converts trees to JSON.
type Codec struct {
	marshalOptions protojson.MarshalOptions
	maxDepth       int
}

// New constructs a Codec that produces compact JSON.
func New(options ...Option) *Codec {
	codec := &Codec{maxDepth: nbt.DefaultMaxDepth}
	for _, opt := range options {
		opt.applyToCodec(codec)
	}
	return codec
}

// NewIndent constructs a Codec that produces multi-line JSON, indenting
// each level with indent.
func NewIndent(indent string, options ...Option) *Codec {
	codec := New(options...)
	codec.marshalOptions = protojson.MarshalOptions{Multiline: true, Indent: indent}
	return codec
}

// An Option configures a Codec.
type Option interface {
	applyToCodec(*Codec)
}

type maxDepthOption struct {
	Max int
}

// MaxDepth limits how deeply Lists and Compounds may nest in the rendered
// tree, counting the same way as nbt.MaxDepth. Exceeding it fails with
// nbt.CodeDepthExceeded. Zero or a negative number removes the limit.
// Codecs default to nbt.DefaultMaxDepth.
func MaxDepth(n int) Option {
	return &maxDepthOption{n}
}

func (o *maxDepthOption) applyToCodec(codec *Codec) {
	codec.maxDepth = o.Max
}

// Marshal renders tag as a JSON object with a single member, keyed by the
// tag's name.
//
// protojson deliberately varies its whitespace between builds, so callers
// must not compare the output byte-for-byte.
func (c *Codec) Marshal(tag nbt.Tag) ([]byte, error) {
	value, err := c.Value(tag.Payload)
	if err != nil {
		return nil, err
	}
	root := &structpb.Struct{Fields: map[string]*structpb.Value{
		validUTF8(tag.Name): value,
	}}
	return c.marshalOptions.Marshal(root)
}

// Value converts payload to a google.protobuf.Value.
func (c *Codec) Value(payload nbt.Payload) (*structpb.Value, error) {
	return c.toValue(payload, 1 /* depth */)
}

func (c *Codec) toValue(payload nbt.Payload, depth int) (*structpb.Value, error) {
	switch payload := payload.(type) {
	case nbt.Byte:
		return structpb.NewNumberValue(float64(payload)), nil
	case nbt.Short:
		return structpb.NewNumberValue(float64(payload)), nil
	case nbt.Int:
		return structpb.NewNumberValue(float64(payload)), nil
	case nbt.Long:
		return longValue(int64(payload)), nil
	case nbt.Float:
		return floatValue(float64(payload)), nil
	case nbt.Double:
		return floatValue(float64(payload)), nil
	case nbt.String:
		return structpb.NewStringValue(validUTF8(string(payload))), nil
	case nbt.ByteArray:
		return arrayValue(payload, func(v int8) *structpb.Value {
			return structpb.NewNumberValue(float64(v))
		}), nil
	case nbt.IntArray:
		return arrayValue(payload, func(v int32) *structpb.Value {
			return structpb.NewNumberValue(float64(v))
		}), nil
	case nbt.LongArray:
		return arrayValue(payload, longValue), nil
	case *nbt.List:
		if err := c.checkDepth(depth); err != nil {
			return nil, err
		}
		values := make([]*structpb.Value, payload.Len())
		for i := range values {
			value, err := c.toValue(payload.Items[i], depth+1)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	case *nbt.Compound:
		if err := c.checkDepth(depth); err != nil {
			return nil, err
		}
		fields := make(map[string]*structpb.Value, payload.Len())
		var err error
		payload.Range(func(tag nbt.Tag) bool {
			var value *structpb.Value
			value, err = c.toValue(tag.Payload, depth+1)
			fields[validUTF8(tag.Name)] = value
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	case nil:
		return nil, nbt.NewError(nbt.CodeInvalidEncodeInput, errNoPayload)
	}
	return nil, nbt.NewError(nbt.CodeInvalidEncodeInput, errUnknownPayload)
}

// checkDepth applies the limit to containers only, as the binary codec does.
func (c *Codec) checkDepth(depth int) error {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return nbt.NewError(nbt.CodeDepthExceeded, errTooDeep)
	}
	return nil
}

func arrayValue[S ~[]E, E any](elems S, convert func(E) *structpb.Value) *structpb.Value {
	values := make([]*structpb.Value, len(elems))
	for i, elem := range elems {
		values[i] = convert(elem)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func longValue(v int64) *structpb.Value {
	return structpb.NewStringValue(strconv.FormatInt(v, 10))
}

// floatValue maps non-finite values to strings, since protojson refuses to
// emit them as numbers.
func floatValue(v float64) *structpb.Value {
	switch {
	case math.IsNaN(v):
		return structpb.NewStringValue("NaN")
	case math.IsInf(v, 1):
		return structpb.NewStringValue("Infinity")
	case math.IsInf(v, -1):
		return structpb.NewStringValue("-Infinity")
	}
	return structpb.NewNumberValue(v)
}

func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
