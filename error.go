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
	"errors"
	"fmt"
)

// An Error captures a Code, an underlying Go error, and (for decoding
// errors) the byte offset in the input where the problem was found.
//
// Every error returned by this package can be unwrapped to an *Error with
// errors.As, or inspected with CodeOf.
type Error struct {
	code   Code
	err    error
	offset int
}

// NewError annotates any Go error with a code. The returned error has no
// offset.
func NewError(c Code, underlying error) *Error {
	return &Error{code: c, err: underlying, offset: -1}
}

func (e *Error) Error() string {
	var text string
	if e.err != nil {
		text = e.err.Error()
	}
	switch {
	case e.offset >= 0 && text != "":
		text = fmt.Sprintf("offset %d: %s", e.offset, text)
	case e.offset >= 0:
		text = fmt.Sprintf("offset %d", e.offset)
	}
	if text == "" {
		return e.code.String()
	}
	return e.code.String() + ": " + text
}

// Unwrap allows errors.Is and errors.As access to the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's code.
func (e *Error) Code() Code {
	return e.code
}

// Offset returns the byte offset into the decoded input at which the error
// was detected, or -1 if the error isn't tied to a position.
func (e *Error) Offset() int {
	return e.offset
}

// CodeOf returns the error's code if it is or wraps an *Error, and zero
// otherwise.
func CodeOf(err error) Code {
	if nbtErr, ok := asError(err); ok {
		return nbtErr.Code()
	}
	return 0
}

// errorf calls fmt.Errorf with the supplied template and arguments, then wraps
// the resulting error.
func errorf(c Code, template string, args ...any) *Error {
	return NewError(c, fmt.Errorf(template, args...))
}

// errorAt is errorf with a position in the input.
func errorAt(c Code, offset int, template string, args ...any) *Error {
	err := errorf(c, template, args...)
	err.offset = offset
	return err
}

// asError uses errors.As to unwrap any error and look for an *Error.
func asError(err error) (*Error, bool) {
	var nbtErr *Error
	ok := errors.As(err, &nbtErr)
	return nbtErr, ok
}
