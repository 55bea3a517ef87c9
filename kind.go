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

const (
	Unknown Kind = iota // Never produced by a successful parse.

	Mandatory // The extension must be implemented.
	Optional  // The extension may be implemented.
)

// Kind is the top-level classification of a [Presence].
type Kind byte

var (
	kindByName = map[string]Kind{
		"mandatory": Mandatory,
		"optional":  Optional,
	}

	kindNames = [...]string{
		Unknown:   "unknown",
		Mandatory: "mandatory",
		Optional:  "optional",
	}
)

// KindByName looks up a classification by its canonical name.
//
// If name does not name a classification, returns [Unknown].
func KindByName(name string) Kind {
	return kindByName[name]
}

// Kinds returns the valid classifications, in declaration order.
func Kinds() []Kind {
	return []Kind{Mandatory, Optional}
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind%d", int(k))
}

// GoString implements [fmt.GoStringer].
func (k Kind) GoString() string {
	switch k {
	case Unknown:
		return "presence.Unknown"
	case Mandatory:
		return "presence.Mandatory"
	case Optional:
		return "presence.Optional"
	default:
		return fmt.Sprintf("presence.Kind(%d)", int(k))
	}
}

const (
	NoOptionalType OptionalType = iota // The subtype is absent.

	Localized   // Optional in some regions or markets.
	Development // Optional while still under development.
	Expansion   // Optional extra functionality.
	Transitory  // Optional only for a limited time.
)

// OptionalType is the reason an optional extension is optional.
//
// The zero value, [NoOptionalType], means no reason was given. It matches
// any other OptionalType under [Presence.Equal].
type OptionalType byte

var (
	optionalTypeByName = map[string]OptionalType{
		"localized":   Localized,
		"development": Development,
		"expansion":   Expansion,
		"transitory":  Transitory,
	}

	optionalTypeNames = [...]string{
		NoOptionalType: "none",
		Localized:      "localized",
		Development:    "development",
		Expansion:      "expansion",
		Transitory:     "transitory",
	}
)

// OptionalTypeByName looks up an optional subtype by its canonical name.
//
// If name does not name a subtype, returns [NoOptionalType].
func OptionalTypeByName(name string) OptionalType {
	return optionalTypeByName[name]
}

// OptionalTypes returns the valid optional subtypes, in declaration order.
func OptionalTypes() []OptionalType {
	return []OptionalType{Localized, Development, Expansion, Transitory}
}

// String implements [fmt.Stringer].
func (t OptionalType) String() string {
	if int(t) < len(optionalTypeNames) {
		return optionalTypeNames[t]
	}
	return fmt.Sprintf("optionalType%d", int(t))
}

// GoString implements [fmt.GoStringer].
func (t OptionalType) GoString() string {
	switch t {
	case NoOptionalType:
		return "presence.NoOptionalType"
	case Localized:
		return "presence.Localized"
	case Development:
		return "presence.Development"
	case Expansion:
		return "presence.Expansion"
	case Transitory:
		return "presence.Transitory"
	default:
		return fmt.Sprintf("presence.OptionalType(%d)", int(t))
	}
}
