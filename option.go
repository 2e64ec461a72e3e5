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

// An Option configures a Codec.
type Option interface {
	applyToCodec(*Codec)
}

type maxDepthOption struct {
	Max int
}

// MaxDepth limits how deeply Lists and Compounds may nest, both when
// decoding untrusted input and when encoding trees that might contain
// cycles. A root Compound is at depth 1. Exceeding the limit fails with
// CodeDepthExceeded.
//
// Setting MaxDepth to zero or a negative number removes the limit. Codecs
// default to DefaultMaxDepth.
func MaxDepth(n int) Option {
	return &maxDepthOption{n}
}

func (o *maxDepthOption) applyToCodec(codec *Codec) {
	codec.maxDepth = o.Max
}

type rejectTrailingDataOption struct{}

// RejectTrailingData makes Deserialize fail with CodeTrailingData if any
// bytes follow the root tag. By default, trailing bytes are ignored.
func RejectTrailingData() Option {
	return &rejectTrailingDataOption{}
}

func (o *rejectTrailingDataOption) applyToCodec(codec *Codec) {
	codec.rejectTrailingData = true
}
