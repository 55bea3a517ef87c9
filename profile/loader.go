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
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"runtime"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/semaphore"

	"github.com/udbtools/presence/reporter"
)

// DefaultPattern is the pattern [Loader.Load] uses when given none.
const DefaultPattern = "**/*.yaml"

// Loader loads profile documents from a file system. The zero value is
// ready to use.
type Loader struct {
	// Receives errors and warnings. If nil, loading stops at the first
	// error and warnings are dropped.
	Reporter reporter.Reporter

	// The maximum number of documents decoded at once. If zero or negative,
	// the lesser of runtime.GOMAXPROCS and runtime.NumCPU is used.
	MaxParallelism int
}

// Load decodes every file in fsys that matches one of the doublestar
// patterns, defaulting to [DefaultPattern]. A pattern that matches no files
// is an error.
//
// Profiles are returned sorted by name. If any error was reported, Load
// returns no profiles.
func (l Loader) Load(ctx context.Context, fsys fs.FS, patterns ...string) ([]*Profile, error) {
	paths, err := expand(fsys, patterns)
	if err != nil {
		return nil, err
	}

	par := l.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}

	handler := reporter.NewHandler(l.Reporter)
	sem := semaphore.NewWeighted(int64(par))
	profiles := make([]*Profile, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		if handler.ReporterError() != nil {
			sem.Release(1)
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			profiles[i] = load(fsys, path, handler)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profiles = slices.DeleteFunc(profiles, func(p *Profile) bool { return p == nil })
	slices.SortStableFunc(profiles, func(a, b *Profile) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Filename, b.Filename))
	})
	for i := 1; i < len(profiles); i++ {
		prev, cur := profiles[i-1], profiles[i]
		if prev.Name == cur.Name {
			handler.HandleWarningf(
				reporter.SourcePos{Filename: cur.Filename},
				"profile %q is also defined in %s", cur.Name, prev.Filename,
			)
		}
	}

	if err := handler.Error(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func load(fsys fs.FS, path string, handler *reporter.Handler) *Profile {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		_ = handler.HandleError(err)
		return nil
	}
	p, _ := Parse(path, data, handler)
	return p
}

// expand resolves patterns against fsys into a sorted, de-duplicated list of
// file paths.
func expand(fsys fs.FS, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("profile: invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("profile: expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("profile: no files match %q", pattern)
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}
