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
	"cmp"
	"fmt"
	"slices"
)

// optionalKey is the only key accepted in the mapping form.
const optionalKey = "optional"

// Presence is the presence of an extension: whether it is mandatory or
// optional, and for optional extensions, optionally why.
//
// Presence is a comparable value type. The zero value is not a valid
// presence; see [Presence.IsZero].
type Presence struct {
	kind     Kind
	optional OptionalType
}

// New constructs a Presence from a raw decoded value, as produced by a YAML
// or JSON decoder. Two shapes are accepted:
//
//	mandatory
//	optional
//	{optional: localized|development|expansion|transitory}
//
// The mapping may be a map[string]any, map[string]string or map[any]any.
// Any other value is an [UnsupportedShape] error.
func New(raw any) (Presence, error) {
	switch raw := raw.(type) {
	case string:
		return Parse(raw)
	case map[string]any:
		return fromMapping(raw)
	case map[any]any:
		return fromMapping(raw)
	case map[string]string:
		return fromMapping(raw)
	default:
		return Presence{}, shapeError(raw)
	}
}

// fromMapping validates every entry of m, in a deterministic order, and
// builds an optional Presence from the last valid one.
func fromMapping[K comparable, V any](m map[K]V) (Presence, error) {
	if len(m) == 0 {
		return Presence{}, &Error{Kind: UnsupportedShape, Value: "empty " + typeName(m)}
	}

	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})

	var p Presence
	for _, k := range keys {
		if name, ok := any(k).(string); !ok || name != optionalKey {
			return Presence{}, &Error{Kind: UnsupportedKey, Value: fmt.Sprint(k)}
		}

		var raw any = m[k]
		if raw == nil {
			return Presence{}, &Error{Kind: MissingOptionalType}
		}
		s, ok := raw.(string)
		if !ok {
			return Presence{}, &Error{Kind: UnknownOptionalType, Value: fmt.Sprint(raw)}
		}

		var err error
		if p, err = ParseOptional(s); err != nil {
			return Presence{}, err
		}
	}
	return p, nil
}

// Parse constructs a Presence from the string form, which must be
// "mandatory" or "optional". The result never has an optional subtype.
func Parse(s string) (Presence, error) {
	kind := KindByName(s)
	if kind == Unknown {
		return Presence{}, &Error{Kind: UnknownPresenceValue, Value: s}
	}
	return Presence{kind: kind}, nil
}

// ParseOptional constructs an optional Presence from the value of the mapping
// form, which must name one of the [OptionalTypes].
func ParseOptional(optionalType string) (Presence, error) {
	t := OptionalTypeByName(optionalType)
	if t == NoOptionalType {
		return Presence{}, &Error{Kind: UnknownOptionalType, Value: optionalType}
	}
	return Presence{kind: Optional, optional: t}, nil
}

// MustParse is like [Parse], but panics on error.
func MustParse(s string) Presence {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MustParseOptional is like [ParseOptional], but panics on error.
func MustParseOptional(optionalType string) Presence {
	p, err := ParseOptional(optionalType)
	if err != nil {
		panic(err)
	}
	return p
}

// Kind returns p's classification.
func (p Presence) Kind() Kind {
	return p.kind
}

// OptionalType returns p's optional subtype, or [NoOptionalType] if it has
// none.
func (p Presence) OptionalType() OptionalType {
	return p.optional
}

// HasOptionalType returns whether p carries an optional subtype.
func (p Presence) HasOptionalType() bool {
	return p.optional != NoOptionalType
}

// IsZero returns whether p is the zero value, i.e. was never constructed.
func (p Presence) IsZero() bool {
	return p.kind == Unknown
}

// IsMandatory returns whether p is mandatory.
func (p Presence) IsMandatory() bool {
	return p.kind == Mandatory
}

// IsOptional returns whether p is optional, with or without a subtype.
func (p Presence) IsOptional() bool {
	return p.kind == Optional
}

// String implements [fmt.Stringer]. It returns the classification, followed
// by the subtype in parentheses if there is one, e.g. "optional (localized)".
func (p Presence) String() string {
	if p.HasOptionalType() {
		return fmt.Sprintf("%s (%s)", p.kind, p.optional)
	}
	return p.kind.String()
}

// Concise returns just the classification, ignoring any subtype.
func (p Presence) Concise() string {
	return p.kind.String()
}

// GoString implements [fmt.GoStringer], producing the Go expression that
// constructs p.
func (p Presence) GoString() string {
	switch {
	case p.IsZero():
		return "presence.Presence{}"
	case p.HasOptionalType():
		return fmt.Sprintf("presence.MustParseOptional(%q)", p.optional)
	default:
		return fmt.Sprintf("presence.MustParse(%q)", p.kind)
	}
}
