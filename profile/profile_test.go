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

package profile_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udbtools/presence"
	"github.com/udbtools/presence/profile"
	"github.com/udbtools/presence/reporter"
)

const rva23 = `name: RVA23U64
description: RVA23 user-mode profile
extensions:
  I:
    presence: mandatory
    version: "~> 2.1"
  Zfh:
    presence:
      optional: localized
  Zicntr:
    presence: optional
    version: 2.0
  Sv57:
    presence: {optional: expansion}
`

// collector records everything reported to it. It is safe for concurrent
// use, since the loader reports from several goroutines.
type collector struct {
	mu       sync.Mutex
	errs     []string
	warnings []string
}

func (c *collector) reporter() reporter.Reporter {
	return reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.errs = append(c.errs, err.Error())
			return nil
		},
		func(err reporter.ErrorWithPos) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.warnings = append(c.warnings, err.Error())
		},
	)
}

func names(exts []profile.Extension) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = ext.Name
	}
	return out
}

func TestParse(t *testing.T) {
	t.Parallel()

	c := new(collector)
	p, err := profile.Parse("rva23.yaml", []byte(rva23), reporter.NewHandler(c.reporter()))
	require.NoError(t, err)
	assert.Empty(t, c.errs)
	assert.Empty(t, c.warnings)

	assert.Equal(t, "RVA23U64", p.Name)
	assert.Equal(t, "RVA23 user-mode profile", p.Description)
	assert.Equal(t, "rva23.yaml", p.Filename)
	assert.Equal(t, 4, p.Len())

	want := []profile.Extension{
		{
			Name: "I", Presence: presence.MustParse("mandatory"), Version: "~> 2.1",
			Pos: reporter.SourcePos{Filename: "rva23.yaml", Line: 4, Col: 3},
		},
		{
			Name: "Sv57", Presence: presence.MustParseOptional("expansion"),
			Pos: reporter.SourcePos{Filename: "rva23.yaml", Line: 13, Col: 3},
		},
		{
			Name: "Zfh", Presence: presence.MustParseOptional("localized"),
			Pos: reporter.SourcePos{Filename: "rva23.yaml", Line: 7, Col: 3},
		},
		{
			Name: "Zicntr", Presence: presence.MustParse("optional"), Version: "2.0",
			Pos: reporter.SourcePos{Filename: "rva23.yaml", Line: 10, Col: 3},
		},
	}
	if diff := cmp.Diff(want, p.Extensions(), cmp.Comparer(func(a, b presence.Presence) bool { return a == b })); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}

	ext, ok := p.Extension("Zfh")
	require.True(t, ok)
	assert.Equal(t, "optional (localized)", ext.Presence.String())
	_, ok = p.Extension("Zzz")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	p, err := profile.Parse("rva23.yaml", []byte(rva23), reporter.NewHandler(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"I"}, names(p.Mandatory()))
	assert.Equal(t, []string{"Sv57", "Zfh", "Zicntr"}, names(p.Optional()))

	assert.Equal(t, []string{"I"}, names(p.Select(presence.MustParse("mandatory"))))
	assert.Equal(t, []string{"Sv57", "Zfh", "Zicntr"}, names(p.Select(presence.MustParse("optional"))))
	// Zicntr has no subtype, so it matches every subtype.
	assert.Equal(t, []string{"Zfh", "Zicntr"}, names(p.Select(presence.MustParseOptional("localized"))))
	assert.Equal(t, []string{"Zicntr"}, names(p.Select(presence.MustParseOptional("transitory"))))

	for _, all := range [][]presence.Presence{presence.All(), presence.AllOptional()} {
		for _, filter := range all {
			for _, ext := range p.Select(filter) {
				ok, err := ext.Presence.Equals(filter)
				require.NoError(t, err)
				assert.True(t, ok)
			}
		}
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{Name: "Custom"}
	assert.Empty(t, p.Extensions())
	assert.True(t, p.Add(profile.Extension{Name: "M", Presence: presence.MustParse("mandatory")}))
	assert.True(t, p.Add(profile.Extension{Name: "A", Presence: presence.MustParse("mandatory")}))
	assert.False(t, p.Add(profile.Extension{Name: "M", Presence: presence.MustParse("optional")}))

	assert.Equal(t, []string{"A", "M"}, names(p.Extensions()))
	ext, _ := p.Extension("M")
	assert.True(t, ext.Presence.IsMandatory())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	p, err := profile.Parse("rva23.yaml", []byte(rva23), reporter.NewHandler(nil))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, p.Format(&out))
	assert.Equal(t, `RVA23U64
RVA23 user-mode profile
  I       mandatory             ~> 2.1
  Sv57    optional (expansion)
  Zfh     optional (localized)
  Zicntr  optional              2.0
`, out.String())

	// Wide characters are padded by display width, not bytes.
	wide := &profile.Profile{Name: "Wide"}
	wide.Add(profile.Extension{Name: "拡張", Presence: presence.MustParse("mandatory"), Version: "1"})
	wide.Add(profile.Extension{Name: "Zabcd", Presence: presence.MustParse("optional"), Version: "2"})
	out.Reset()
	require.NoError(t, wide.Format(&out))
	assert.Equal(t, `Wide
  Zabcd  optional   2
  拡張   mandatory  1
`, out.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	const doc = `name: Broken
extensions:
  A:
    presence: bogus
  B:
    presence:
      other: x
  C:
    version: "1.0"
  D:
    presence: ~
  E:
    presence: mandatory
    notes: hi
  E:
    presence: optional
`

	c := new(collector)
	p, err := profile.Parse("broken.yaml", []byte(doc), reporter.NewHandler(c.reporter()))
	require.ErrorIs(t, err, reporter.ErrInvalidSource)

	assert.Equal(t, []string{
		`broken.yaml:4:15: unknown presence "bogus", expected "mandatory" or "optional"`,
		`broken.yaml:7:7: unsupported presence key "other", expected "optional"`,
		`broken.yaml:9:5: extension "C" has no presence`,
		`broken.yaml:11:15: presence must be a string or a mapping, got null`,
	}, c.errs)
	assert.Equal(t, []string{
		`broken.yaml:14:5: unknown key "notes" in extension "E"`,
		`broken.yaml:15:3: extension "E" already listed at broken.yaml:12:3`,
	}, c.warnings)

	require.NotNil(t, p)
	assert.Equal(t, []string{"E"}, names(p.Extensions()))
	ext, _ := p.Extension("E")
	assert.True(t, ext.Presence.IsMandatory())
}

func TestParseDuplicateOfFailedEntry(t *testing.T) {
	t.Parallel()

	const doc = `name: Broken
extensions:
  E:
    presence: bogus
  F:
    presence: optional
  E:
    presence: mandatory
`

	c := new(collector)
	p, err := profile.Parse("broken.yaml", []byte(doc), reporter.NewHandler(c.reporter()))
	require.ErrorIs(t, err, reporter.ErrInvalidSource)

	assert.Equal(t, []string{
		`broken.yaml:4:15: unknown presence "bogus", expected "mandatory" or "optional"`,
	}, c.errs)
	assert.Equal(t, []string{
		`broken.yaml:7:3: extension "E" already listed at broken.yaml:3:3`,
	}, c.warnings)

	require.NotNil(t, p)
	assert.Equal(t, []string{"F"}, names(p.Extensions()))
}

func TestParseAbortsOnFirstError(t *testing.T) {
	t.Parallel()

	const doc = `name: Broken
extensions:
  A:
    presence: {optional: bogus}
  B:
    presence: 42
`
	p, err := profile.Parse("broken.yaml", []byte(doc), reporter.NewHandler(nil))
	require.Error(t, err)
	assert.Equal(t,
		`broken.yaml:4:15: unknown optional type "bogus", expected one of "localized", "development", "expansion", "transitory"`,
		err.Error(),
	)
	assert.ErrorIs(t, err, presence.ErrUnknownOptionalType)

	var perr *presence.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bogus", perr.Value)

	require.NotNil(t, p)
	assert.Zero(t, p.Len())
}

func TestParseDocumentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, doc string
		errs      []string
		warnings  []string
	}{
		{
			name: "empty",
			errs: []string{"doc.yaml: empty profile document"},
		},
		{
			name: "scalar",
			doc:  "mandatory\n",
			errs: []string{"doc.yaml:1:1: profile must be a mapping"},
		},
		{
			name: "no-name",
			doc:  "extensions:\n  I: {presence: mandatory}\n",
			errs: []string{"doc.yaml:1:1: profile has no name"},
		},
		{
			name: "null-name",
			doc:  "name:\nextensions:\n  I: {presence: mandatory}\n",
			errs: []string{
				"doc.yaml:1:6: profile name must be a string",
				"doc.yaml:1:1: profile has no name",
			},
		},
		{
			name:     "no-extensions",
			doc:      "name: Empty\n",
			warnings: []string{`doc.yaml:1:1: profile "Empty" declares no extensions`},
		},
		{
			name:     "unknown-key",
			doc:      "name: X\nowner: me\nextensions:\n  I: {presence: mandatory}\n",
			warnings: []string{`doc.yaml:2:1: unknown profile key "owner"`},
		},
		{
			name: "extensions-list",
			doc:  "name: X\nextensions:\n  - I\n",
			errs: []string{"doc.yaml:3:3: extensions must be a mapping from extension name to requirement"},
			warnings: []string{
				`doc.yaml:1:1: profile "X" declares no extensions`,
			},
		},
		{
			name: "extension-scalar",
			doc:  "name: X\nextensions:\n  I: mandatory\n",
			errs: []string{`doc.yaml:3:6: extension "I" must be a mapping`},
			warnings: []string{
				`doc.yaml:1:1: profile "X" declares no extensions`,
			},
		},
		{
			name: "bad-version",
			doc:  "name: X\nextensions:\n  I: {presence: mandatory, version: [1]}\n",
			errs: []string{"doc.yaml:3:37: version must be a string"},
			warnings: []string{
				`doc.yaml:1:1: profile "X" declares no extensions`,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c := new(collector)
			_, err := profile.Parse("doc.yaml", []byte(test.doc), reporter.NewHandler(c.reporter()))
			if len(test.errs) > 0 {
				assert.ErrorIs(t, err, reporter.ErrInvalidSource)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, test.errs, c.errs)
			assert.Equal(t, test.warnings, c.warnings)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := profile.Parse("bad.yaml", []byte("name: [\n"), reporter.NewHandler(nil))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "bad.yaml: yaml: "), err.Error())

	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, "bad.yaml", ewp.GetPosition().Filename)
}
