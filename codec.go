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
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/udbtools/presence/reporter"
)

var errEncodeZero = errors.New("presence: cannot encode the zero Presence")

var (
	_ yaml.Unmarshaler = (*Presence)(nil)
	_ yaml.Marshaler   = Presence{}
	_ json.Unmarshaler = (*Presence)(nil)
	_ json.Marshaler   = Presence{}
)

// UnmarshalYAML implements [yaml.Unmarshaler]. Errors carry the position of
// node as a [reporter.ErrorWithPos] with an empty filename.
func (p *Presence) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := New(raw)
	if err != nil {
		return reporter.Error(reporter.SourcePos{Line: node.Line, Col: node.Column}, err)
	}
	*p = v
	return nil
}

// MarshalYAML implements [yaml.Marshaler]. It produces the string form when p
// has no subtype, and the mapping form otherwise.
func (p Presence) MarshalYAML() (any, error) {
	switch {
	case p.IsZero():
		return nil, errEncodeZero
	case p.HasOptionalType():
		return map[string]string{optionalKey: p.optional.String()}, nil
	default:
		return p.kind.String(), nil
	}
}

// UnmarshalJSON implements [json.Unmarshaler]. It accepts the same shapes as
// [New].
func (p *Presence) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := New(raw)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalJSON implements [json.Marshaler], using the same shapes as
// [Presence.MarshalYAML].
func (p Presence) MarshalJSON() ([]byte, error) {
	v, err := p.MarshalYAML()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
