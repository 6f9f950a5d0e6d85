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

	"github.com/refwire/refwire/registry"
	"github.com/refwire/refwire/schema"
	"github.com/refwire/refwire/wire"
)

// Encode writes root and everything reachable from it as one stream.
//
// The root must be a handle of a registered entity. On failure the session
// is abandoned; bytes already flushed to the underlying writer are not
// rolled back.
func (e *Encoder) Encode(root interface{}) (err error) {
	if !e.ns.Sealed() {
		return ErrNotSealed
	}
	defer recoverMismatch(&err)
	s := &encodeSession{
		ns:   e.ns,
		w:    wire.NewWriter(e.w),
		refs: newRefTable(),
	}
	return s.run(root)
}

// encTask is one pending value on the encoder's work stack.
type encTask struct {
	t schema.Type
	v interface{}
}

type encodeSession struct {
	ns    *registry.Namespace
	w     *wire.Writer
	refs  *refTable
	stack []encTask
}

func (s *encodeSession) push(t encTask) {
	s.stack = append(s.stack, t)
}

func (s *encodeSession) pop() encTask {
	t := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return t
}

func (s *encodeSession) run(root interface{}) error {
	s.w.Data(Magic[:])
	s.w.Uint16(FormatVersion)
	s.push(encTask{t: &schema.Reference{}, v: root})
	for len(s.stack) > 0 {
		if err := s.emit(s.pop()); err != nil {
			return err
		}
		if err := s.w.Error(); err != nil {
			return err
		}
	}
	return s.w.Error()
}

func (s *encodeSession) emit(task encTask) error {
	switch t := task.t.(type) {
	case *schema.Primitive:
		return t.Write(s.w, task.v)
	case *schema.Sequence:
		return s.sequence(t, task.v)
	case *schema.Reference:
		return s.object(t, task.v)
	default:
		return fmt.Errorf("%w: unknown kind %T", ErrTypeMismatch, task.t)
	}
}

func (s *encodeSession) sequence(t *schema.Sequence, v interface{}) error {
	if v == nil {
		s.w.Uint32(0)
		return nil
	}
	vals, ok := v.([]interface{})
	if !ok {
		return fmt.Errorf("%w: %T is not a sequence", ErrTypeMismatch, v)
	}
	s.w.Uint32(uint32(len(vals)))
	for i := len(vals) - 1; i >= 0; i-- {
		s.push(encTask{t: t.Elem, v: vals[i]})
	}
	return nil
}

// object emits one reference-kind value: a null record, a back-reference to
// an id this session already assigned, or a full new-object record.
func (s *encodeSession) object(t *schema.Reference, v interface{}) error {
	if isNil(v) {
		s.w.Uint8(tagNull)
		return nil
	}
	// The declared-entity constraint applies to every edge, so the entity is
	// resolved and checked before the back-reference shortcut.
	ent, err := s.ns.LookupValue(v)
	if err != nil {
		return err
	}
	if t.Entity != "" && ent.Identity != t.Entity {
		return fmt.Errorf("%w: %s where a %s reference was declared",
			ErrTypeMismatch, ent.Identity, t.Entity)
	}
	if id, ok := s.refs.lookup(v); ok {
		s.w.Uint8(tagBackref)
		s.w.Uvarint(id)
		return nil
	}
	s.refs.assign(v)
	s.w.Uint8(tagObject)
	s.w.String(ent.Identity)
	s.w.Uint64(ent.Version)
	if ent.Policy == schema.Tolerant {
		writeDirectory(s.w, ent)
	}
	// Persistent field values are captured here, hook applied, before any of
	// them is written. Mutating the source object after this point cannot
	// change what the session flushes.
	pending := make([]encTask, 0, len(ent.Fields))
	for i := range ent.Fields {
		f := &ent.Fields[i]
		if f.Transient {
			continue
		}
		fv := f.Get(v)
		if ent.PreEncode != nil {
			fv, err = ent.PreEncode(f.Declared, fv)
			if err != nil {
				return fmt.Errorf("pre-encode hook for %s.%s: %w",
					ent.Identity, f.Declared, err)
			}
		}
		pending = append(pending, encTask{t: f.Type, v: fv})
	}
	for i := len(pending) - 1; i >= 0; i-- {
		s.push(pending[i])
	}
	return nil
}
