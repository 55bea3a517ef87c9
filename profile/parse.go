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
	"errors"
	"iter"

	"gopkg.in/yaml.v3"

	"github.com/udbtools/presence"
	"github.com/udbtools/presence/reporter"
)

// Parse decodes the profile document in data. Problems are reported to
// handler, and decoding stops as soon as the handler says so.
//
// The returned profile may be partial if errors were reported. The returned
// error is handler.Error(), so if handler was shared with earlier calls, it
// may describe a problem in another document.
func Parse(filename string, data []byte, handler *reporter.Handler) (*Profile, error) {
	d := decoder{filename: filename, handler: handler}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		_ = handler.HandleError(reporter.Errorf(reporter.SourcePos{Filename: filename}, "%v", err))
		return nil, handler.Error()
	}
	if len(doc.Content) == 0 {
		_ = handler.HandleErrorf(reporter.SourcePos{Filename: filename}, "empty profile document")
		return nil, handler.Error()
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		d.errorf(root, "profile must be a mapping")
		return nil, handler.Error()
	}

	p := &Profile{Filename: filename}
	var sawExtensions bool
	for key, value := range pairs(root) {
		switch key.Value {
		case "name":
			p.Name, _ = d.scalar(value, "profile name")
		case "description":
			p.Description, _ = d.scalar(value, "profile description")
		case "extensions":
			sawExtensions = true
			d.extensions(p, value)
		default:
			d.warnf(key, "unknown profile key %q", key.Value)
		}
		if d.aborted() {
			return p, handler.Error()
		}
	}

	switch {
	case p.Name == "":
		d.errorf(root, "profile has no name")
	case !sawExtensions || p.Len() == 0:
		d.warnf(root, "profile %q declares no extensions", p.Name)
	}
	return p, handler.Error()
}

type decoder struct {
	filename string
	handler  *reporter.Handler
}

func (d *decoder) extensions(p *Profile, node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		d.errorf(node, "extensions must be a mapping from extension name to requirement")
		return
	}

	// Positions of every name listed so far, including entries that failed
	// to decode.
	seen := make(map[string]reporter.SourcePos)
	for key, value := range pairs(node) {
		name, ok := d.scalar(key, "extension name")
		if !ok {
			continue
		}
		if prev, ok := seen[name]; ok {
			d.warnf(key, "extension %q already listed at %s", name, prev)
			continue
		}
		seen[name] = d.pos(key)
		if ext, ok := d.extension(name, key, value); ok {
			p.Add(ext)
		}
		if d.aborted() {
			return
		}
	}
}

func (d *decoder) extension(name string, key, node *yaml.Node) (Extension, bool) {
	ext := Extension{Name: name, Pos: d.pos(key)}
	if node.Kind != yaml.MappingNode {
		d.errorf(node, "extension %q must be a mapping", name)
		return ext, false
	}

	var presenceNode *yaml.Node
	for k, v := range pairs(node) {
		switch k.Value {
		case "presence":
			presenceNode = v
		case "version":
			version, ok := d.scalar(v, "version")
			if !ok {
				return ext, false
			}
			ext.Version = version
		default:
			d.warnf(k, "unknown key %q in extension %q", k.Value, name)
		}
	}

	if presenceNode == nil {
		d.errorf(node, "extension %q has no presence", name)
		return ext, false
	}
	if err := presenceNode.Decode(&ext.Presence); err != nil {
		pos := d.pos(presenceNode)
		var ewp reporter.ErrorWithPos
		if errors.As(err, &ewp) {
			pos = ewp.GetPosition().InFile(d.filename)
		}
		_ = d.handler.HandleError(reporter.Error(pos, err))
		return ext, false
	}
	if ext.Presence.IsZero() {
		// Null nodes never reach Presence.UnmarshalYAML.
		_, err := presence.New(nil)
		_ = d.handler.HandleError(reporter.Error(d.pos(presenceNode), err))
		return ext, false
	}
	return ext, true
}

// scalar returns the string value of a non-null scalar node.
func (d *decoder) scalar(node *yaml.Node, what string) (string, bool) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		d.errorf(node, "%s must be a string", what)
		return "", false
	}
	return node.Value, true
}

func (d *decoder) pos(node *yaml.Node) reporter.SourcePos {
	return reporter.SourcePos{Filename: d.filename, Line: node.Line, Col: node.Column}
}

func (d *decoder) errorf(node *yaml.Node, format string, args ...any) {
	_ = d.handler.HandleErrorf(d.pos(node), format, args...)
}

func (d *decoder) warnf(node *yaml.Node, format string, args ...any) {
	d.handler.HandleWarningf(d.pos(node), format, args...)
}

func (d *decoder) aborted() bool {
	return d.handler.ReporterError() != nil
}

// pairs iterates over the key/value pairs of a mapping node.
func pairs(node *yaml.Node) iter.Seq2[*yaml.Node, *yaml.Node] {
	return func(yield func(key, value *yaml.Node) bool) {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if !yield(node.Content[i], node.Content[i+1]) {
				return
			}
		}
	}
}
