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

package cyclic_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/refwire/refwire/cyclic"
	"github.com/refwire/refwire/schema"
)

type memo struct {
	text string
}

func memoEntity() *schema.Entity {
	return &schema.Entity{
		Identity: "Memo",
		Version:  1,
		Fields: schema.FieldList{
			schema.TextField("text", func(m *memo) *string { return &m.text }),
		},
		New: func() interface{} { return &memo{} },
	}
}

func TestPreEncodeSubstitution(t *testing.T) {
	ent := memoEntity()
	ent.PreEncode = func(field string, value interface{}) (interface{}, error) {
		if field == "text" {
			return strings.ToUpper(value.(string)), nil
		}
		return value, nil
	}
	ns := seal(t, ent)

	data, err := cyclic.Marshal(ns, &memo{text: "hello"})
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("HELLO")))
	assert.False(t, bytes.Contains(data, []byte("hello")))

	got, err := cyclic.Unmarshal(ns, data)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got.(*memo).text)
}

func TestPreEncodeFailureAbortsSession(t *testing.T) {
	boom := errors.New("boom")
	ent := memoEntity()
	ent.PreEncode = func(field string, value interface{}) (interface{}, error) {
		return nil, boom
	}
	ns := seal(t, ent)

	data, err := cyclic.Marshal(ns, &memo{text: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "pre-encode hook")
	assert.Nil(t, data)
}

func TestPostDecodeFailure(t *testing.T) {
	ent := memoEntity()
	ent.PostDecode = func(obj interface{}) error {
		if obj.(*memo).text == "" {
			return errors.New("empty memo")
		}
		return nil
	}
	ns := seal(t, ent)

	data, err := cyclic.Marshal(ns, &memo{})
	require.NoError(t, err)

	got, err := cyclic.Unmarshal(ns, data)
	assert.ErrorIs(t, err, cyclic.ErrValidation)
	assert.Nil(t, got)

	data, err = cyclic.Marshal(ns, &memo{text: "ok"})
	require.NoError(t, err)
	got, err = cyclic.Unmarshal(ns, data)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.(*memo).text)
}

type journal struct {
	entries []string
}

func journalEntity() *schema.Entity {
	return &schema.Entity{
		Identity: "Journal",
		Version:  1,
		Fields: schema.FieldList{
			schema.SeqField("entries", &schema.Primitive{Method: schema.String},
				func(j *journal) *[]string { return &j.entries }),
		},
		New: func() interface{} { return &journal{} },
	}
}

func TestSequenceSnapshotIsolation(t *testing.T) {
	ns := seal(t, journalEntity())
	j := &journal{entries: []string{"one"}}

	data, err := cyclic.Marshal(ns, j)
	require.NoError(t, err)
	j.entries[0] = "mutated"

	got, err := cyclic.Unmarshal(ns, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, got.(*journal).entries)
}

// sealedHooks builds a Memo entity whose text field is sealed with
// ChaCha20-Poly1305 on the way out and opened again on the way in.
func sealedHooks(t *testing.T, key []byte) *schema.Entity {
	t.Helper()
	aead, err := chacha20poly1305.New(key)
	require.NoError(t, err)
	nonce := make([]byte, aead.NonceSize())

	ent := memoEntity()
	ent.PreEncode = func(field string, value interface{}) (interface{}, error) {
		if field != "text" {
			return value, nil
		}
		return string(aead.Seal(nil, nonce, []byte(value.(string)), nil)), nil
	}
	ent.PostDecode = func(obj interface{}) error {
		m := obj.(*memo)
		plain, err := aead.Open(nil, nonce, []byte(m.text), nil)
		if err != nil {
			return err
		}
		m.text = string(plain)
		return nil
	}
	return ent
}

func TestEncryptingHooks(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, chacha20poly1305.KeySize)
	ns := seal(t, sealedHooks(t, key))

	data, err := cyclic.Marshal(ns, &memo{text: "attack at dawn"})
	require.NoError(t, err)
	assert.False(t, bytes.Contains(data, []byte("attack at dawn")))

	got, err := cyclic.Unmarshal(ns, data)
	require.NoError(t, err)
	assert.Equal(t, "attack at dawn", got.(*memo).text)
}

func TestEncryptingHooksRejectTampering(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, chacha20poly1305.KeySize)
	ns := seal(t, sealedHooks(t, key))

	data, err := cyclic.Marshal(ns, &memo{text: "attack at dawn"})
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff // corrupt the ciphertext tail

	got, err := cyclic.Unmarshal(ns, data)
	assert.ErrorIs(t, err, cyclic.ErrValidation)
	assert.Nil(t, got)
}
