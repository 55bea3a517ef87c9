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
	"slices"
	"sync"
)

var (
	allKinds = sync.OnceValue(func() []Presence {
		all := make([]Presence, 0, 2)
		for _, k := range Kinds() {
			all = append(all, MustParse(k.String()))
		}
		return all
	})

	allOptional = sync.OnceValue(func() []Presence {
		all := make([]Presence, 0, 4)
		for _, t := range OptionalTypes() {
			all = append(all, MustParseOptional(t.String()))
		}
		return all
	})
)

// All returns one Presence per classification, without subtypes: mandatory,
// then optional.
func All() []Presence {
	return slices.Clone(allKinds())
}

// AllOptional returns one optional Presence per subtype, in the order of
// [OptionalTypes].
func AllOptional() []Presence {
	return slices.Clone(allOptional())
}
