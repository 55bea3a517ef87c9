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

// Package profile decodes architecture profiles: named bundles of
// extensions, each of which is required with some [presence.Presence].
//
// A profile document looks like this:
//
//	name: RVA23U64
//	description: RVA23 user-mode profile for 64-bit application processors
//	extensions:
//	  I:
//	    presence: mandatory
//	    version: "~> 2.1"
//	  Zfh:
//	    presence:
//	      optional: localized
package profile

import (
	"github.com/tidwall/btree"

	"github.com/udbtools/presence"
	"github.com/udbtools/presence/reporter"
)

// Extension is one extension requirement of a profile.
type Extension struct {
	Name     string
	Presence presence.Presence
	Version  string // Version requirement, verbatim. May be empty.

	// Where the extension was declared. Zero for extensions added with
	// [Profile.Add].
	Pos reporter.SourcePos
}

// Profile is a decoded profile document.
//
// Profiles must not be copied after first use.
type Profile struct {
	Name        string
	Description string
	Filename    string

	extensions btree.Map[string, Extension]
}

// Add adds ext to p. Returns false, leaving p unchanged, if an extension
// with the same name is already present.
func (p *Profile) Add(ext Extension) bool {
	if _, ok := p.extensions.Get(ext.Name); ok {
		return false
	}
	p.extensions.Set(ext.Name, ext)
	return true
}

// Len returns the number of extensions in p.
func (p *Profile) Len() int {
	return p.extensions.Len()
}

// Extension looks up an extension by name.
func (p *Profile) Extension(name string) (Extension, bool) {
	return p.extensions.Get(name)
}

// Extensions returns all of p's extensions, sorted by name.
func (p *Profile) Extensions() []Extension {
	return p.collect(func(Extension) bool { return true })
}

// Select returns the extensions whose presence is [presence.Presence.Equal]
// to filter, sorted by name.
//
// Because a missing subtype is a wildcard, selecting plain "optional"
// returns every optional extension, while selecting "optional (localized)"
// returns the localized ones plus those with no subtype.
func (p *Profile) Select(filter presence.Presence) []Extension {
	return p.collect(func(ext Extension) bool {
		return filter.Equal(ext.Presence)
	})
}

// Mandatory returns the mandatory extensions, sorted by name.
func (p *Profile) Mandatory() []Extension {
	return p.collect(func(ext Extension) bool { return ext.Presence.IsMandatory() })
}

// Optional returns the optional extensions of any subtype, sorted by name.
func (p *Profile) Optional() []Extension {
	return p.collect(func(ext Extension) bool { return ext.Presence.IsOptional() })
}

func (p *Profile) collect(keep func(Extension) bool) []Extension {
	var out []Extension
	p.extensions.Scan(func(_ string, ext Extension) bool {
		if keep(ext) {
			out = append(out, ext)
		}
		return true
	})
	return out
}
