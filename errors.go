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

package presence

import (
	"errors"
	"fmt"
)

// Sentinels for each [ErrorKind]. Every *[Error] unwraps to one of these, so
// callers can test with [errors.Is].
var (
	ErrUnsupportedShape     = errors.New("unsupported presence shape")
	ErrUnknownPresenceValue = errors.New("unknown presence value")
	ErrUnsupportedKey       = errors.New("unsupported presence key")
	ErrMissingOptionalType  = errors.New("missing optional type")
	ErrUnknownOptionalType  = errors.New("unknown optional type")
	ErrComparisonType       = errors.New("invalid presence comparison")
)

// ErrorKind classifies an [Error].
type ErrorKind byte

const (
	UnsupportedShape     ErrorKind = iota + 1 // Input is neither a string nor a mapping.
	UnknownPresenceValue                      // String input outside mandatory/optional.
	UnsupportedKey                            // Mapping key other than "optional".
	MissingOptionalType                       // Mapping value is absent.
	UnknownOptionalType                       // Mapping value outside the subtype vocabulary.
	ComparisonType                            // Comparison operand of the wrong type.
)

// String implements [fmt.Stringer].
func (k ErrorKind) String() string {
	switch k {
	case UnsupportedShape:
		return "UnsupportedShape"
	case UnknownPresenceValue:
		return "UnknownPresenceValue"
	case UnsupportedKey:
		return "UnsupportedKey"
	case MissingOptionalType:
		return "MissingOptionalType"
	case UnknownOptionalType:
		return "UnknownOptionalType"
	case ComparisonType:
		return "ComparisonType"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnsupportedShape:
		return ErrUnsupportedShape
	case UnknownPresenceValue:
		return ErrUnknownPresenceValue
	case UnsupportedKey:
		return ErrUnsupportedKey
	case MissingOptionalType:
		return ErrMissingOptionalType
	case UnknownOptionalType:
		return ErrUnknownOptionalType
	case ComparisonType:
		return ErrComparisonType
	default:
		return nil
	}
}

// Error is returned when a presence cannot be constructed, or when a
// comparison is given an operand it cannot compare against.
type Error struct {
	Kind ErrorKind
	// The offending input: a Go type name for UnsupportedShape and
	// ComparisonType, otherwise the rejected string. Empty for
	// MissingOptionalType.
	Value string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnsupportedShape:
		return fmt.Sprintf("presence must be a string or a mapping, got %s", e.Value)
	case UnknownPresenceValue:
		return fmt.Sprintf("unknown presence %q, expected %q or %q", e.Value, "mandatory", "optional")
	case UnsupportedKey:
		return fmt.Sprintf("unsupported presence key %q, expected %q", e.Value, "optional")
	case MissingOptionalType:
		return `missing optional type for "optional" presence`
	case UnknownOptionalType:
		return fmt.Sprintf(
			"unknown optional type %q, expected one of %q, %q, %q, %q",
			e.Value, Localized, Development, Expansion, Transitory,
		)
	case ComparisonType:
		return fmt.Sprintf("cannot compare presence with %s", e.Value)
	default:
		return fmt.Sprintf("invalid presence: %s", e.Value)
	}
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func shapeError(raw any) *Error {
	return &Error{Kind: UnsupportedShape, Value: typeName(raw)}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
