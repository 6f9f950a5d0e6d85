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

// Decode reads one stream and returns the reconstructed root object.
//
// A failed session returns no object: the partially built graph is dropped
// along with the session's reference table.
func (d *Decoder) Decode() (root interface{}, err error) {
	if !d.ns.Sealed() {
		return nil, ErrNotSealed
	}
	defer recoverMismatch(&err)
	s := &decodeSession{
		ns:   d.ns,
		r:    wire.NewReader(d.r),
		refs: newRefTable(),
	}
	return s.run()
}

// sink receives a decoded value and stores it at its destination: a field of
// an object, a slot of a sequence, or the session root.
type sink func(interface{})

func discard(interface{}) {}

type taskKind uint8

const (
	taskRead    taskKind = iota // read a value of type t, deliver to dst
	taskSeqDone                 // all elements of vals are filled, deliver
	taskObjDone                 // all fields of obj are set, run the hook
)

// decTask is one pending expectation on the decoder's work stack.
type decTask struct {
	kind taskKind
	t    schema.Type
	dst  sink
	vals []interface{}
	ent  *schema.Entity
	obj  interface{}
}

type decodeSession struct {
	ns    *registry.Namespace
	r     *wire.Reader
	refs  *refTable
	stack []decTask
}

func (s *decodeSession) push(t decTask) {
	s.stack = append(s.stack, t)
}

func (s *decodeSession) pop() decTask {
	t := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return t
}

func (s *decodeSession) run() (interface{}, error) {
	var hdr [4]byte
	s.r.Data(hdr[:])
	if err := s.r.Error(); err != nil {
		return nil, err
	}
	if hdr != Magic {
		return nil, fmt.Errorf("%w: % x", ErrUnknownMagic, hdr[:])
	}
	version := s.r.Uint16()
	if err := s.r.Error(); err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var root interface{}
	s.push(decTask{
		kind: taskRead,
		t:    &schema.Reference{},
		dst:  func(v interface{}) { root = v },
	})
	for len(s.stack) > 0 {
		if err := s.step(s.pop()); err != nil {
			return nil, err
		}
		if err := s.r.Error(); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (s *decodeSession) step(task decTask) error {
	switch task.kind {
	case taskRead:
		return s.read(task.t, task.dst)
	case taskSeqDone:
		task.dst(task.vals)
		return nil
	case taskObjDone:
		if task.ent.PostDecode != nil {
			if err := task.ent.PostDecode(task.obj); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrValidation, task.ent.Identity, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown task kind %d", ErrCorruptStream, task.kind)
	}
}

func (s *decodeSession) read(t schema.Type, dst sink) error {
	switch t := t.(type) {
	case *schema.Primitive:
		v := t.Read(s.r)
		if err := s.r.Error(); err != nil {
			return err
		}
		dst(v)
		return nil
	case *schema.Sequence:
		count := s.r.Uint32()
		if err := s.r.Error(); err != nil {
			return err
		}
		vals := make([]interface{}, count)
		s.push(decTask{kind: taskSeqDone, vals: vals, dst: dst})
		for i := int(count) - 1; i >= 0; i-- {
			i := i
			s.push(decTask{
				kind: taskRead,
				t:    t.Elem,
				dst:  func(v interface{}) { vals[i] = v },
			})
		}
		return nil
	case *schema.Reference:
		return s.object(t, dst)
	default:
		return fmt.Errorf("%w: unknown kind %T", ErrCorruptStream, t)
	}
}

func (s *decodeSession) object(t *schema.Reference, dst sink) error {
	tag := s.r.Uint8()
	if err := s.r.Error(); err != nil {
		return err
	}
	switch tag {
	case tagNull:
		dst(nil)
		return nil
	case tagBackref:
		id := s.r.Uvarint()
		if err := s.r.Error(); err != nil {
			return err
		}
		h, ent, ok := s.refs.resolve(id)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrDanglingReference, id)
		}
		if t.Entity != "" && ent.Identity != t.Entity {
			return fmt.Errorf("%w: %s where a %s reference was declared",
				ErrTypeMismatch, ent.Identity, t.Entity)
		}
		dst(h)
		return nil
	case tagObject:
		return s.newObject(t, dst)
	default:
		return fmt.Errorf("%w: record tag %#x", ErrCorruptStream, tag)
	}
}

// newObject reads a new-object record. The fresh handle is registered in the
// reference table and delivered to its destination before any field is
// populated; a record inside this object (or a sibling reachable through a
// cycle) can therefore back-reference it and resolve correctly.
func (s *decodeSession) newObject(t *schema.Reference, dst sink) error {
	identity := s.r.String()
	version := s.r.Uint64()
	if err := s.r.Error(); err != nil {
		return err
	}
	ent, err := s.ns.Lookup(identity)
	if err != nil {
		return err
	}
	if t.Entity != "" && ent.Identity != t.Entity {
		return fmt.Errorf("%w: %s where a %s reference was declared",
			ErrTypeMismatch, ent.Identity, t.Entity)
	}
	if err := checkVersion(ent, version); err != nil {
		return err
	}
	var dir []dirField
	if ent.Policy == schema.Tolerant {
		if dir, err = readDirectory(s.r); err != nil {
			return err
		}
	}

	obj := ent.New()
	s.refs.register(obj, ent)
	dst(obj)

	reads, zeroed := reconcile(ent, dir)
	for _, f := range zeroed {
		f.Set(obj, f.Type.Zero())
	}
	s.push(decTask{kind: taskObjDone, ent: ent, obj: obj})
	for i := len(reads) - 1; i >= 0; i-- {
		step := reads[i]
		if step.field == nil {
			s.push(decTask{kind: taskRead, t: step.t, dst: discard})
			continue
		}
		f := step.field
		s.push(decTask{
			kind: taskRead,
			t:    step.t,
			dst:  func(v interface{}) { f.Set(obj, v) },
		})
	}
	return nil
}
