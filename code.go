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
	"fmt"
	"strconv"
	"strings"
)

// A Code classifies an *Error. There are no user-defined codes, so only the
// codes enumerated below are valid.
type Code uint32

const (
	CodeTruncatedInput         Code = 1 // read past the end of the input
	CodeUnknownKind            Code = 2 // kind byte outside 0..12
	CodeMalformedCompound      Code = 3 // missing End sentinel or End-typed list with items
	CodeInvalidEncodeInput     Code = 4 // tree can't be encoded as given
	CodeUnsupportedCompression Code = 5 // algorithm isn't gzip or zlib
	CodeCompressionFailure     Code = 6 // compressor rejected the stream
	CodeDepthExceeded          Code = 7 // nesting deeper than the configured limit
	CodeTrailingData           Code = 8 // bytes left over after the root tag

	minCode = CodeTruncatedInput
	maxCode = CodeTrailingData
)

func (c Code) String() string {
	switch c {
	case CodeTruncatedInput:
		return "truncated_input"
	case CodeUnknownKind:
		return "unknown_kind"
	case CodeMalformedCompound:
		return "malformed_compound"
	case CodeInvalidEncodeInput:
		return "invalid_encode_input"
	case CodeUnsupportedCompression:
		return "unsupported_compression"
	case CodeCompressionFailure:
		return "compression_failure"
	case CodeDepthExceeded:
		return "depth_exceeded"
	case CodeTrailingData:
		return "trailing_data"
	}
	return fmt.Sprintf("Code(%d)", c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if c < minCode || c > maxCode {
		return nil, fmt.Errorf("invalid code %d", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the names
// produced by MarshalText and their numeric equivalents.
func (c *Code) UnmarshalText(data []byte) error {
	text := strings.TrimSpace(string(data))
	for code := minCode; code <= maxCode; code++ {
		if code.String() == text {
			*c = code
			return nil
		}
	}
	n, err := strconv.ParseUint(text, 10 /* base */, 32 /* bitsize */)
	if err != nil {
		return fmt.Errorf("invalid code %q", text)
	}
	code := Code(n)
	if code < minCode || code > maxCode {
		return fmt.Errorf("invalid code %d", n)
	}
	*c = code
	return nil
}
