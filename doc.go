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

// Package presence provides [Presence], which denotes whether an extension
// of an architecture specification is mandatory or optional, and if optional,
// for what reason.
//
// A presence is written in one of two shapes in architecture documents:
//
//	presence: mandatory
//	presence: optional
//	presence:
//	  optional: localized
//
// The second shape carries an [OptionalType]. Presences compare with a
// wildcard rule: a presence without a subtype matches every subtype of the
// same classification. Mandatory presences order above optional ones, and
// nothing else is ordered, so two optional presences with different
// subtypes are incomparable.
//
// The sub-packages build on this one:
//   - reporter: positioned errors and warnings for decoders.
//   - profile: profile documents that assign a presence to each extension,
//     and a loader for reading them from an [io/fs.FS].
package presence
