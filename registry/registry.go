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

// Package registry holds the catalog of entities known to the engine.
//
// A Namespace has a two phase lifecycle: it is open for registration while
// the process starts up, then sealed before the first encode or decode.
// After sealing the namespace is immutable, which is what makes concurrent
// sessions race-free without locks.
package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/refwire/refwire/fault"
	"github.com/refwire/refwire/schema"
)

const (
	// ErrDuplicateType is returned when an identity is registered twice.
	ErrDuplicateType = fault.Const("type already registered")
	// ErrDuplicateField is returned when two fields of an entity share a name.
	ErrDuplicateField = fault.Const("duplicate field name")
	// ErrSealed is returned by Register after Seal has been called.
	ErrSealed = fault.Const("registry is sealed")
	// ErrUnknownType is returned by Lookup for an unregistered identity.
	ErrUnknownType = fault.Const("unknown type")
	// ErrNotRegistered is returned by LookupValue for a value whose concrete
	// type has no entity.
	ErrNotRegistered = fault.Const("type not registered")
	// ErrInvalidEntity is returned for structurally broken descriptors.
	ErrInvalidEntity = fault.Const("invalid entity descriptor")
)

// Namespace represents a mapping of type identities to their entities.
type Namespace struct {
	entities map[string]*schema.Entity
	byType   map[reflect.Type]*schema.Entity
	sealed   bool
}

// Global is the default namespace object.
var Global = NewNamespace()

// NewNamespace creates a new, open namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		entities: map[string]*schema.Entity{},
		byType:   map[reflect.Type]*schema.Entity{},
	}
}

// Register adds an entity to the namespace. The entity's concrete Go type,
// taken from New, becomes the encode-time key for identity lookup, so two
// entities may not share a constructor type.
func (n *Namespace) Register(ent *schema.Entity) error {
	if n.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrSealed, entityName(ent))
	}
	if ent == nil || ent.Identity == "" {
		return fmt.Errorf("%w: missing identity", ErrInvalidEntity)
	}
	if ent.New == nil {
		return fmt.Errorf("%w: %q has no constructor", ErrInvalidEntity, ent.Identity)
	}
	seen := map[string]bool{}
	for _, f := range ent.Fields {
		if f.Declared == "" {
			return fmt.Errorf("%w: %q has an unnamed field", ErrInvalidEntity, ent.Identity)
		}
		if f.Type == nil {
			return fmt.Errorf("%w: field %s.%s has no type", ErrInvalidEntity, ent.Identity, f.Declared)
		}
		if seen[f.Declared] {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, ent.Identity, f.Declared)
		}
		seen[f.Declared] = true
	}
	if _, found := n.entities[ent.Identity]; found {
		return fmt.Errorf("%w: %q", ErrDuplicateType, ent.Identity)
	}
	proto := ent.New()
	rt := reflect.TypeOf(proto)
	if rt == nil || rt.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: constructor for %q must return a pointer, got %T",
			ErrInvalidEntity, ent.Identity, proto)
	}
	if prev, found := n.byType[rt]; found {
		return fmt.Errorf("%w: Go type %v already bound to %q",
			ErrDuplicateType, rt, prev.Identity)
	}
	n.entities[ent.Identity] = ent
	n.byType[rt] = ent
	return nil
}

// MustRegister registers ent and panics on failure. It is intended for the
// package init / startup phase where registration errors are programming
// errors.
func (n *Namespace) MustRegister(ent *schema.Entity) {
	if err := n.Register(ent); err != nil {
		panic(err)
	}
}

// Seal marks the namespace read-only. Encode and decode sessions require a
// sealed namespace. Sealing twice is a no-op.
func (n *Namespace) Seal() {
	n.sealed = true
}

// Sealed reports whether Seal has been called.
func (n *Namespace) Sealed() bool {
	return n.sealed
}

// Lookup returns the entity registered under the given identity.
func (n *Namespace) Lookup(identity string) (*schema.Entity, error) {
	if ent, found := n.entities[identity]; found {
		return ent, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, identity)
}

// LookupValue returns the entity registered for the concrete type of v.
func (n *Namespace) LookupValue(v interface{}) (*schema.Entity, error) {
	if ent, found := n.byType[reflect.TypeOf(v)]; found {
		return ent, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotRegistered, v)
}

// Count returns the number of registered entities.
func (n *Namespace) Count() int {
	return len(n.entities)
}

// Visit invokes the visitor for every entity in the namespace, in
// unspecified order.
func (n *Namespace) Visit(visitor func(*schema.Entity)) {
	for _, ent := range n.entities {
		visitor(ent)
	}
}

func entityName(ent *schema.Entity) string {
	if ent == nil {
		return "<nil>"
	}
	return ent.Identity
}

// Manifest is a plain snapshot of a namespace, ordered by identity, suitable
// for rendering as YAML or JSON diagnostics.
type Manifest struct {
	Entities []EntityManifest `yaml:"entities" json:"entities"`
}

// EntityManifest describes one registered entity in a Manifest.
type EntityManifest struct {
	Identity string          `yaml:"identity" json:"identity"`
	Version  uint64          `yaml:"version" json:"version"`
	Policy   string          `yaml:"policy" json:"policy"`
	Fields   []FieldManifest `yaml:"fields" json:"fields"`
}

// FieldManifest describes one field in an EntityManifest.
type FieldManifest struct {
	Name      string `yaml:"name" json:"name"`
	Type      string `yaml:"type" json:"type"`
	Transient bool   `yaml:"transient,omitempty" json:"transient,omitempty"`
}

// Manifest returns a snapshot of the namespace.
func (n *Namespace) Manifest() Manifest {
	m := Manifest{Entities: make([]EntityManifest, 0, len(n.entities))}
	n.Visit(func(ent *schema.Entity) {
		em := EntityManifest{
			Identity: ent.Identity,
			Version:  ent.Version,
			Policy:   ent.Policy.String(),
		}
		for _, f := range ent.Fields {
			em.Fields = append(em.Fields, FieldManifest{
				Name:      f.Declared,
				Type:      f.Type.String(),
				Transient: f.Transient,
			})
		}
		m.Entities = append(m.Entities, em)
	})
	sort.Slice(m.Entities, func(i, j int) bool {
		return m.Entities[i].Identity < m.Entities[j].Identity
	})
	return m
}
