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

package profile

import (
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// Format writes a human-readable table of p to w: the profile's name and
// description, then one aligned row per extension with its presence and
// version requirement.
func (p *Profile) Format(w io.Writer) error {
	exts := p.Extensions()

	var nameWidth, presenceWidth int
	for _, ext := range exts {
		nameWidth = max(nameWidth, uniseg.StringWidth(ext.Name))
		presenceWidth = max(presenceWidth, uniseg.StringWidth(ext.Presence.String()))
	}

	var out strings.Builder
	out.WriteString(p.Name)
	out.WriteByte('\n')
	if p.Description != "" {
		out.WriteString(p.Description)
		out.WriteByte('\n')
	}

	for _, ext := range exts {
		var row strings.Builder
		row.WriteString("  ")
		pad(&row, ext.Name, nameWidth)
		row.WriteString("  ")
		pad(&row, ext.Presence.String(), presenceWidth)
		row.WriteString("  ")
		row.WriteString(ext.Version)

		out.WriteString(strings.TrimRight(row.String(), " "))
		out.WriteByte('\n')
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// pad writes s followed by enough spaces to fill width columns.
func pad(out *strings.Builder, s string, width int) {
	out.WriteString(s)
	if n := width - uniseg.StringWidth(s); n > 0 {
		out.WriteString(strings.Repeat(" ", n))
	}
}
