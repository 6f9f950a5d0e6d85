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
	"bytes"
	"io"
	"reflect"

	"github.com/refwire/refwire/registry"
)

// Magic identifies a stream written by this package.
var Magic = [4]byte{'R', 'W', 'I', 'R'}

// FormatVersion is the stream format revision written after the magic.
const FormatVersion uint16 = 1

// Record tags. Every object record starts with one of these.
const (
	tagObject  = 0 // new object: identity, version, field data
	tagBackref = 1 // back-reference: varint reference id
	tagNull    = 2 // nil object, no payload
)

// Encoder writes object graphs to an underlying writer. Each call to Encode
// is one session with a fresh reference table; an Encoder may be reused for
// any number of sequential sessions.
type Encoder struct {
	ns *registry.Namespace
	w  io.Writer
}

// NewEncoder returns an Encoder writing streams for the entities of ns.
func NewEncoder(ns *registry.Namespace, w io.Writer) *Encoder {
	return &Encoder{ns: ns, w: w}
}

// Decoder reads object graphs from an underlying reader. Each call to
// Decode is one session with a fresh reference table.
type Decoder struct {
	ns *registry.Namespace
	r  io.Reader
}

// NewDecoder returns a Decoder reading streams for the entities of ns.
func NewDecoder(ns *registry.Namespace, r io.Reader) *Decoder {
	return &Decoder{ns: ns, r: r}
}

// Marshal encodes root into a byte slice.
func Marshal(ns *registry.Namespace, root interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := NewEncoder(ns, buf).Encode(root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the root object from data.
func Unmarshal(ns *registry.Namespace, data []byte) (interface{}, error) {
	return NewDecoder(ns, bytes.NewReader(data)).Decode()
}

// isNil reports whether v is nil, including a typed nil pointer or slice
// boxed in an interface.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
