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

import "fmt"

// Equal reports whether p and other have the same classification and
// compatible subtypes. A missing subtype on either side matches any subtype,
// so "optional" equals both "optional (localized)" and "optional
// (development)", while those two are not equal to each other.
//
// This relation is therefore not transitive. It lets a rule written against
// "any optional extension" match a specific optional subtype. Use == for
// exact equality.
//
// The zero Presence is equal to nothing, not even itself.
func (p Presence) Equal(other Presence) bool {
	if p.IsZero() || p.kind != other.kind {
		return false
	}
	if !p.HasOptionalType() || !other.HasOptionalType() {
		return true
	}
	return p.optional == other.optional
}

// EqualString reports whether p's classification is named by s. Any subtype
// is ignored. The zero Presence matches no string.
func (p Presence) EqualString(s string) bool {
	return !p.IsZero() && p.kind.String() == s
}

// Greater reports whether p is mandatory and other is optional.
func (p Presence) Greater(other Presence) bool {
	return p.IsMandatory() && other.IsOptional()
}

// Less reports whether p is optional and other is mandatory.
func (p Presence) Less(other Presence) bool {
	return p.IsOptional() && other.IsMandatory()
}

// GreaterEqual reports whether p is [Presence.Greater] than or
// [Presence.Equal] to other.
func (p Presence) GreaterEqual(other Presence) bool {
	return p.Greater(other) || p.Equal(other)
}

// LessEqual reports whether p is [Presence.Less] than or [Presence.Equal]
// to other.
func (p Presence) LessEqual(other Presence) bool {
	return p.Less(other) || p.Equal(other)
}

// Op is a relation accepted by [Presence.Compare].
type Op byte

const (
	OpEqual Op = iota
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
)

// String implements [fmt.Stringer].
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Equals is the dynamically-typed form of [Presence.Equal]. other may be a
// string, compared with [Presence.EqualString], or a Presence or non-nil
// *Presence, compared with [Presence.Equal]. Anything else is a
// [ComparisonType] error.
func (p Presence) Equals(other any) (bool, error) {
	if s, ok := other.(string); ok {
		return p.EqualString(s), nil
	}
	q, err := operand(other)
	if err != nil {
		return false, err
	}
	return p.Equal(q), nil
}

// Compare evaluates "p op other". Ordering relations only accept a Presence
// or non-nil *Presence; OpEqual accepts whatever [Presence.Equals] accepts.
//
// The ordering is partial: two optional presences with different subtypes
// satisfy none of the relations.
func (p Presence) Compare(op Op, other any) (bool, error) {
	if op == OpEqual {
		return p.Equals(other)
	}

	q, err := operand(other)
	if err != nil {
		return false, err
	}
	switch op {
	case OpGreater:
		return p.Greater(q), nil
	case OpGreaterEqual:
		return p.GreaterEqual(q), nil
	case OpLess:
		return p.Less(q), nil
	case OpLessEqual:
		return p.LessEqual(q), nil
	default:
		return false, fmt.Errorf("presence: unknown comparison operator %v", op)
	}
}

func operand(v any) (Presence, error) {
	switch v := v.(type) {
	case Presence:
		return v, nil
	case *Presence:
		if v != nil {
			return *v, nil
		}
		return Presence{}, &Error{Kind: ComparisonType, Value: "nil *presence.Presence"}
	default:
		return Presence{}, &Error{Kind: ComparisonType, Value: typeName(v)}
	}
}
