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

package schema_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refwire/refwire/schema"
	"github.com/refwire/refwire/wire"
)

func TestZeroValues(t *testing.T) {
	assert.Equal(t, false, (&schema.Primitive{Method: schema.Bool}).Zero())
	assert.Equal(t, int32(0), (&schema.Primitive{Method: schema.Int32}).Zero())
	assert.Equal(t, uint64(0), (&schema.Primitive{Method: schema.Uint64}).Zero())
	assert.Equal(t, float64(0), (&schema.Primitive{Method: schema.Float64}).Zero())
	assert.Equal(t, "", (&schema.Primitive{Method: schema.String}).Zero())
	assert.Nil(t, (&schema.Reference{Entity: "Node"}).Zero())
	assert.Equal(t, []interface{}{},
		(&schema.Sequence{Elem: &schema.Primitive{Method: schema.String}}).Zero())
}

func TestTypeStrings(t *testing.T) {
	assert.Equal(t, "string", (&schema.Primitive{Method: schema.String}).String())
	assert.Equal(t, "ref(Node)", (&schema.Reference{Entity: "Node"}).String())
	assert.Equal(t, "ref", (&schema.Reference{}).String())
	assert.Equal(t, "[]int32",
		(&schema.Sequence{Elem: &schema.Primitive{Method: schema.Int32}}).String())
	assert.Equal(t, "[][]string",
		(&schema.Sequence{Elem: &schema.Sequence{Elem: &schema.Primitive{Method: schema.String}}}).String())
}

func TestEqual(t *testing.T) {
	text := &schema.Primitive{Method: schema.String}
	assert.True(t, schema.Equal(text, &schema.Primitive{Method: schema.String}))
	assert.False(t, schema.Equal(text, &schema.Primitive{Method: schema.Int32}))
	assert.True(t, schema.Equal(&schema.Reference{Entity: "A"}, &schema.Reference{Entity: "A"}))
	assert.False(t, schema.Equal(&schema.Reference{Entity: "A"}, &schema.Reference{Entity: "B"}))
	assert.False(t, schema.Equal(text, &schema.Reference{Entity: "A"}))
	assert.True(t, schema.Equal(
		&schema.Sequence{Elem: text},
		&schema.Sequence{Elem: &schema.Primitive{Method: schema.String}}))
	assert.False(t, schema.Equal(
		&schema.Sequence{Elem: text},
		&schema.Sequence{Elem: &schema.Primitive{Method: schema.Bool}}))
}

func TestTypeTagLayout(t *testing.T) {
	// The primitive method rides in the high nibble of the tag byte.
	buf := &bytes.Buffer{}
	w := wire.NewWriter(buf)
	schema.EncodeType(w, &schema.Primitive{Method: schema.String})
	require.NoError(t, w.Error())
	assert.Equal(t, []byte{0xb0}, buf.Bytes())
}

func TestTypeCodecRoundTrip(t *testing.T) {
	types := []schema.Type{
		&schema.Primitive{Method: schema.Bool},
		&schema.Primitive{Method: schema.Float64},
		&schema.Primitive{Method: schema.String},
		&schema.Reference{Entity: "Node"},
		&schema.Sequence{Elem: &schema.Primitive{Method: schema.Int32}},
		&schema.Sequence{Elem: &schema.Sequence{Elem: &schema.Reference{Entity: "Leaf"}}},
	}
	for _, typ := range types {
		buf := &bytes.Buffer{}
		w := wire.NewWriter(buf)
		schema.EncodeType(w, typ)
		require.NoError(t, w.Error())

		got, err := schema.DecodeType(wire.NewReader(buf))
		require.NoError(t, err)
		assert.True(t, schema.Equal(typ, got), "round trip of %v gave %v", typ, got)
	}
}

func TestDecodeTypeRejectsGarbage(t *testing.T) {
	_, err := schema.DecodeType(wire.NewReader(bytes.NewReader([]byte{0x0f})))
	assert.ErrorIs(t, err, schema.ErrBadTypeTag)

	_, err = schema.DecodeType(wire.NewReader(bytes.NewReader([]byte{0xf0})))
	assert.ErrorIs(t, err, schema.ErrBadTypeTag)
}

func TestPrimitiveWriteMismatch(t *testing.T) {
	w := wire.NewWriter(&bytes.Buffer{})
	err := (&schema.Primitive{Method: schema.Int32}).Write(w, "not an int32")
	assert.ErrorIs(t, err, schema.ErrTypeMismatch)
}
