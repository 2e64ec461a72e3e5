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

// Package nbt reads and writes the Named Binary Tag format: a schemaless,
// big-endian binary encoding of a tree of typed, named values.
//
// A tree is a root Tag whose Payload is one of the package's payload types,
// usually a *Compound. Serialize and Deserialize convert between trees and
// bytes; Deflate and Inflate add or remove a gzip or zlib envelope, which is
// how NBT is usually stored on disk. The two halves are independent:
//
//	data, err := nbt.Inflate(raw, nbt.CompressionGzip, 0 /* sizeHint */)
//	if err != nil {
//		return err
//	}
//	root, err := nbt.Deserialize(data)
//
// Every error returned by this package wraps an *Error, whose Code says what
// went wrong and whose Offset says where in the input decoding stopped.
//
// Float and Double payloads are IEEE 754 values. On the wire they're stored
// as their raw bit patterns, so every bit pattern (including NaN payloads)
// survives a round trip.
package nbt
