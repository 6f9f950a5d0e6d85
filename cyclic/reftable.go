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

package cyclic

import "github.com/refwire/refwire/schema"

// refTable maps between object identity and reference id within a single
// session. Ids start at 1 and grow in first-encounter order. The encoder
// uses the forward direction, the decoder the reverse one; a table belongs
// to exactly one session and is never shared, so it needs no locking.
type refTable struct {
	forward map[interface{}]uint64
	reverse []refEntry
}

// refEntry is one registered handle together with its entity, so a
// back-reference can be checked against the declared kind of the edge it
// arrives through.
type refEntry struct {
	handle interface{}
	ent    *schema.Entity
}

func newRefTable() *refTable {
	return &refTable{forward: map[interface{}]uint64{}}
}

// lookup returns the id previously assigned to v, if any.
func (t *refTable) lookup(v interface{}) (uint64, bool) {
	id, ok := t.forward[v]
	return id, ok
}

// assign gives v the next reference id.
func (t *refTable) assign(v interface{}) uint64 {
	id := uint64(len(t.forward)) + 1
	t.forward[v] = id
	return id
}

// register records a decoded handle under the next reference id. The handle
// is registered before its fields are populated, so records inside the
// object can back-reference it.
func (t *refTable) register(h interface{}, ent *schema.Entity) uint64 {
	t.reverse = append(t.reverse, refEntry{handle: h, ent: ent})
	return uint64(len(t.reverse))
}

// resolve returns the handle and entity registered under id.
func (t *refTable) resolve(id uint64) (interface{}, *schema.Entity, bool) {
	if id < 1 || id > uint64(len(t.reverse)) {
		return nil, nil, false
	}
	e := t.reverse[id-1]
	return e.handle, e.ent, true
}
