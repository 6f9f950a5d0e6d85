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

import (
	"fmt"

	"github.com/refwire/refwire/schema"
	"github.com/refwire/refwire/wire"
)

// checkVersion applies an entity's compatibility policy to the version tag
// carried by the stream. It runs before any field of the record is read, so
// a rejected object never partially exists in the output graph.
func checkVersion(ent *schema.Entity, streamVersion uint64) error {
	if ent.Policy == schema.Exact && streamVersion != ent.Version {
		return fmt.Errorf("%w: %s encoded at version %d, registry expects %d",
			ErrIncompatibleVersion, ent.Identity, streamVersion, ent.Version)
	}
	return nil
}

// dirField is one entry of a stream field directory: the layout of one
// persistent field as it was at encode time.
type dirField struct {
	name string
	t    schema.Type
}

// writeDirectory emits the field directory for a tolerant entity: the name
// and type of every persistent field, in field order.
func writeDirectory(w *wire.Writer, ent *schema.Entity) {
	count := uint32(0)
	for _, f := range ent.Fields {
		if !f.Transient {
			count++
		}
	}
	w.Uint32(count)
	for _, f := range ent.Fields {
		if f.Transient {
			continue
		}
		w.String(f.Declared)
		schema.EncodeType(w, f.Type)
	}
}

func readDirectory(r *wire.Reader) ([]dirField, error) {
	count := r.Uint32()
	if err := r.Error(); err != nil {
		return nil, err
	}
	var dir []dirField
	for i := uint32(0); i < count; i++ {
		name := r.String()
		t, err := schema.DecodeType(r)
		if err != nil {
			return nil, err
		}
		if err := r.Error(); err != nil {
			return nil, err
		}
		dir = append(dir, dirField{name: name, t: t})
	}
	return dir, nil
}

// planStep is one stream value to read: into a current field, or — when the
// field is nil — decoded generically and discarded. Discarded values still
// consume their records and still assign reference ids, which keeps the id
// sequence aligned with the encoder's.
type planStep struct {
	t     schema.Type
	field *schema.Field
}

// reconcile builds the read plan for one record. With no directory (exact
// policy; layouts are known equal) the plan is simply the persistent fields
// in order. With a directory the stream layout drives the plan: stream
// fields are matched to current fields by name and structural type, stream
// fields with no current counterpart are discarded, and current fields the
// stream does not carry come back in zeroed along with the transients.
func reconcile(ent *schema.Entity, dir []dirField) (reads []planStep, zeroed []*schema.Field) {
	if dir == nil {
		for i := range ent.Fields {
			f := &ent.Fields[i]
			if f.Transient {
				zeroed = append(zeroed, f)
				continue
			}
			reads = append(reads, planStep{t: f.Type, field: f})
		}
		return reads, zeroed
	}

	consumed := make([]bool, len(ent.Fields))
	for _, d := range dir {
		if i := ent.Fields.Find(d.name); i >= 0 {
			f := &ent.Fields[i]
			if !f.Transient && !consumed[i] && schema.Equal(f.Type, d.t) {
				consumed[i] = true
				reads = append(reads, planStep{t: d.t, field: f})
				continue
			}
		}
		reads = append(reads, planStep{t: d.t})
	}
	for i := range ent.Fields {
		f := &ent.Fields[i]
		if f.Transient || !consumed[i] {
			zeroed = append(zeroed, f)
		}
	}
	return reads, zeroed
}
