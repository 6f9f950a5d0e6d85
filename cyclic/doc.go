// Copyright (C) 2026 The Refwire Authors.
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

// Package cyclic implements the encode and decode sessions, with full
// support for shared references and cyclic graphs of objects.
//
// Object encoding details
//
// A stream starts with a 4 byte magic and a uint16 format version. Each
// object is then encoded in one of three forms, selected by a single tag
// byte. A non-nil object encoded for the first time in a session is written
// as:
//
//	tag      byte    // 0, new object
//	type     string  // the identity of the object's entity
//	version  uint64  // the entity version at encode time
//	...data...       // one sub-record per persistent field, in field order
//
// Entities with the tolerant version policy carry a field directory (name
// and type per persistent field) between the version and the data, which is
// what decode-time field reconciliation works from.
//
// The object's reference id is not written: ids are assigned from 1 in
// first-encounter order, which the decoder reproduces. All subsequent
// encodings of the same object are written as:
//
//	tag  byte           // 1, back-reference
//	id   varint uint64  // a previously assigned reference id
//
// A nil object is a single tag byte of 2.
//
// Traversal uses an explicit work stack in both directions, so graph depth
// is bounded by available memory rather than by goroutine stack growth, and
// the decoder registers each object handle before populating its fields,
// which makes a cycle a table lookup rather than a recursion problem.
//
// Each call to Encode or Decode is one session over one private reference
// table. Sessions share no mutable state, so any number of them may run
// concurrently once the namespace is sealed.
package cyclic
