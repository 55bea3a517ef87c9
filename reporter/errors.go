// Copyright 2020-2025 Buf Technologies, Inc.
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

package reporter

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is a sentinel error that is returned by [Handler.Error]
// in the event that errors were encountered while decoding, but the
// configured ErrorReporter always returned nil.
var ErrInvalidSource = errors.New("decode failed: invalid source")

// SourcePos identifies a location in a source document.
//
// Line and Col are 1-based. A zero Line means the position only identifies
// a file.
type SourcePos struct {
	Filename  string
	Line, Col int
}

// String implements [fmt.Stringer].
func (pos SourcePos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}

// InFile returns a copy of pos with its filename replaced.
func (pos SourcePos) InFile(filename string) SourcePos {
	pos.Filename = filename
	return pos
}

// ErrorWithPos is an error about a source document that includes information
// about the location in the document that caused the error.
//
// The value of Error() will contain both the SourcePos and Underlying error.
// The value of Unwrap() will only be the Underlying error.
type ErrorWithPos interface {
	error
	GetPosition() SourcePos
	Unwrap() error
}

// Error wraps err with a position. If err already carries a position, the
// old position is discarded.
func Error(pos SourcePos, err error) ErrorWithPos {
	if ewp, ok := err.(ErrorWithPos); ok {
		err = ewp.Unwrap()
	}
	return errorWithSourcePos{pos: pos, underlying: err}
}

func Errorf(pos SourcePos, format string, args ...any) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

// errorWithSourcePos is the only implementation of ErrorWithPos in this
// module. Callers should look for the interface.
type errorWithSourcePos struct {
	underlying error
	pos        SourcePos
}

func (e errorWithSourcePos) Error() string {
	sourcePos := e.GetPosition()
	if s := sourcePos.String(); s != "" {
		return fmt.Sprintf("%s: %v", s, e.underlying)
	}
	return e.underlying.Error()
}

// GetPosition implements the ErrorWithPos interface, supplying a location in
// the source that caused the error.
func (e errorWithSourcePos) GetPosition() SourcePos {
	return e.pos
}

// Unwrap implements the ErrorWithPos interface, supplying the underlying
// error. This error will not include location information.
func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
