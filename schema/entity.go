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

package schema

import "fmt"

// Policy selects how a stream version tag is checked against the registered
// version of an entity at decode time.
type Policy uint8

const (
	// Exact rejects any stream whose version tag differs from the
	// registered version.
	Exact Policy = iota
	// Tolerant accepts any version tag and reconciles fields by name:
	// stream fields with no current counterpart are read and discarded,
	// current fields absent from the stream are set to their zero value.
	Tolerant
)

func (p Policy) String() string {
	switch p {
	case Exact:
		return "exact"
	case Tolerant:
		return "tolerant"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// PreEncodeHook transforms a persistent field value just before it is
// written. It runs once per persistent field when the owning object's record
// is emitted, so it can substitute a snapshot (a defensive copy of a mutable
// value) or an otherwise transformed form such as a ciphertext.
type PreEncodeHook func(field string, value interface{}) (interface{}, error)

// PostDecodeHook runs on a reconstructed object after all of its fields have
// been populated. A non-nil return aborts the decode session.
type PostDecodeHook func(obj interface{}) error

// Entity describes one serializable type: its stable identity, version tag,
// ordered field layout and optional hooks. Entities are immutable once their
// registry is sealed.
type Entity struct {
	// Identity is the stable type identifier carried on the wire.
	Identity string
	// Version is the layout revision tag checked at decode time.
	Version uint64
	// Policy selects the version compatibility rule for this entity.
	Policy Policy
	// Fields describe the layout. Field order fixes the wire layout.
	Fields FieldList
	// New constructs a zero value of the concrete type, returned as a
	// handle (pointer) so that reference identity is preserved.
	New func() interface{}
	// PreEncode, if set, transforms persistent field values at encode time.
	PreEncode PreEncodeHook
	// PostDecode, if set, runs after an object has been fully populated.
	PostDecode PostDecodeHook
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s@%d", e.Identity, e.Version)
}

// Field represents one named slot of an Entity.
//
// Get and Set may panic when handed an object or value of the wrong concrete
// type; the engine recovers such panics into a typed mismatch error.
type Field struct {
	// Declared is the field name, unique within its entity.
	Declared string
	// Type is the declared kind of the field value.
	Type Type
	// Transient marks a field that carries no wire payload. It is skipped
	// on encode and reset to the kind's zero value on decode.
	Transient bool
	// Get reads the field from an object. Sequence values are returned as
	// a fresh []interface{} so the engine never aliases caller memory.
	Get func(obj interface{}) interface{}
	// Set writes the field on an object.
	Set func(obj, value interface{})
}

// FieldList is a slice of fields.
type FieldList []Field

// Find searches the field list for the field with the specified name,
// returning the index of the field if found, otherwise -1.
func (l FieldList) Find(name string) int {
	for i, f := range l {
		if f.Declared == name {
			return i
		}
	}
	return -1
}
