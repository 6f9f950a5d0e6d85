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

import (
	"fmt"

	"github.com/refwire/refwire/fault"
	"github.com/refwire/refwire/wire"
)

// ErrTypeMismatch is returned when a runtime value does not have the shape
// its field descriptor declares.
const ErrTypeMismatch = fault.Const("value does not match the declared field type")

// ErrBadTypeTag is returned when a stream carries a malformed type tag.
const ErrBadTypeTag = fault.Const("malformed type tag")

// TypeTag denotes the schema type that follows in a field directory.
// Each tag corresponds to an implementation of the Type interface.
type TypeTag uint8

const (
	PrimitiveTag TypeTag = iota
	ReferenceTag
	SequenceTag
)

// Method enumerates the primitive value encodings.
type Method uint8

const (
	Bool Method = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	String
	methodCount
)

var methodNames = [methodCount]string{
	"bool", "int8", "uint8", "int16", "uint16", "int32", "uint32",
	"int64", "uint64", "float32", "float64", "string",
}

func (m Method) String() string {
	if m < methodCount {
		return methodNames[m]
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// Type is the common interface to the kind descriptors a Field can declare.
type Type interface {
	fmt.Stringer
	// Zero returns the kind's zero value, used for transient fields and for
	// fields reconciled away during a tolerant decode.
	Zero() interface{}
}

// Primitive is the Type descriptor for a fixed-layout scalar value.
type Primitive struct {
	Method Method
}

// Reference is the Type descriptor for a nested object of a named entity.
// An empty Entity places no constraint on the referenced type; it is used
// for the root of a session, which may be any registered object.
type Reference struct {
	Entity string
}

// Sequence is the Type descriptor for an ordered sequence of elements.
// Sequences nest: the element type may itself be a Sequence.
type Sequence struct {
	Elem Type
}

func (p *Primitive) String() string { return p.Method.String() }

func (p *Primitive) Zero() interface{} {
	switch p.Method {
	case Bool:
		return false
	case Int8:
		return int8(0)
	case Uint8:
		return uint8(0)
	case Int16:
		return int16(0)
	case Uint16:
		return uint16(0)
	case Int32:
		return int32(0)
	case Uint32:
		return uint32(0)
	case Int64:
		return int64(0)
	case Uint64:
		return uint64(0)
	case Float32:
		return float32(0)
	case Float64:
		return float64(0)
	case String:
		return ""
	default:
		panic(fmt.Errorf("zero of unknown method %v", p.Method))
	}
}

// Write encodes v, which must have the Go type matching the method.
func (p *Primitive) Write(w *wire.Writer, v interface{}) error {
	ok := false
	switch p.Method {
	case Bool:
		var b bool
		if b, ok = v.(bool); ok {
			w.Bool(b)
		}
	case Int8:
		var i int8
		if i, ok = v.(int8); ok {
			w.Int8(i)
		}
	case Uint8:
		var u uint8
		if u, ok = v.(uint8); ok {
			w.Uint8(u)
		}
	case Int16:
		var i int16
		if i, ok = v.(int16); ok {
			w.Int16(i)
		}
	case Uint16:
		var u uint16
		if u, ok = v.(uint16); ok {
			w.Uint16(u)
		}
	case Int32:
		var i int32
		if i, ok = v.(int32); ok {
			w.Int32(i)
		}
	case Uint32:
		var u uint32
		if u, ok = v.(uint32); ok {
			w.Uint32(u)
		}
	case Int64:
		var i int64
		if i, ok = v.(int64); ok {
			w.Int64(i)
		}
	case Uint64:
		var u uint64
		if u, ok = v.(uint64); ok {
			w.Uint64(u)
		}
	case Float32:
		var f float32
		if f, ok = v.(float32); ok {
			w.Float32(f)
		}
	case Float64:
		var f float64
		if f, ok = v.(float64); ok {
			w.Float64(f)
		}
	case String:
		var s string
		if s, ok = v.(string); ok {
			w.String(s)
		}
	}
	if !ok {
		return fmt.Errorf("%w: %T is not %v", ErrTypeMismatch, v, p.Method)
	}
	return nil
}

// Read decodes and returns a value of the method's Go type.
func (p *Primitive) Read(r *wire.Reader) interface{} {
	switch p.Method {
	case Bool:
		return r.Bool()
	case Int8:
		return r.Int8()
	case Uint8:
		return r.Uint8()
	case Int16:
		return r.Int16()
	case Uint16:
		return r.Uint16()
	case Int32:
		return r.Int32()
	case Uint32:
		return r.Uint32()
	case Int64:
		return r.Int64()
	case Uint64:
		return r.Uint64()
	case Float32:
		return r.Float32()
	case Float64:
		return r.Float64()
	case String:
		return r.String()
	default:
		r.SetError(fmt.Errorf("%w: read of unknown method %v", ErrBadTypeTag, p.Method))
		return nil
	}
}

func (r *Reference) String() string {
	if r.Entity == "" {
		return "ref"
	}
	return "ref(" + r.Entity + ")"
}

func (r *Reference) Zero() interface{} { return nil }

func (s *Sequence) String() string { return "[]" + s.Elem.String() }

func (s *Sequence) Zero() interface{} { return []interface{}{} }

// Equal reports whether two type descriptors are structurally identical.
// Reconciliation during a tolerant decode uses this to decide whether a
// stream field may populate a current field of the same name.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Method == b.Method
	case *Reference:
		b, ok := b.(*Reference)
		return ok && a.Entity == b.Entity
	case *Sequence:
		b, ok := b.(*Sequence)
		return ok && Equal(a.Elem, b.Elem)
	default:
		return false
	}
}

// EncodeType writes the wire form of a type descriptor. Primitive methods
// share the tag byte, packed into the high nibble.
func EncodeType(w *wire.Writer, t Type) {
	switch t := t.(type) {
	case *Primitive:
		w.Uint8(uint8(PrimitiveTag) | (uint8(t.Method) << 4))
	case *Reference:
		w.Uint8(uint8(ReferenceTag))
		w.String(t.Entity)
	case *Sequence:
		w.Uint8(uint8(SequenceTag))
		EncodeType(w, t.Elem)
	default:
		w.SetError(fmt.Errorf("encode unknown type %T", t))
	}
}

// DecodeType reads the wire form of a type descriptor.
func DecodeType(r *wire.Reader) (Type, error) {
	tag := r.Uint8()
	if err := r.Error(); err != nil {
		return nil, err
	}
	switch TypeTag(tag & 0xf) {
	case PrimitiveTag:
		m := Method(tag >> 4)
		if m >= methodCount {
			return nil, fmt.Errorf("%w: primitive method %d", ErrBadTypeTag, m)
		}
		return &Primitive{Method: m}, nil
	case ReferenceTag:
		name := r.String()
		if err := r.Error(); err != nil {
			return nil, err
		}
		return &Reference{Entity: name}, nil
	case SequenceTag:
		elem, err := DecodeType(r)
		if err != nil {
			return nil, err
		}
		return &Sequence{Elem: elem}, nil
	default:
		return nil, fmt.Errorf("%w: tag %#x", ErrBadTypeTag, tag)
	}
}
