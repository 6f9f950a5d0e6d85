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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refwire/refwire/schema"
)

func TestRefTableForward(t *testing.T) {
	tbl := newRefTable()
	a, b := &struct{ n int }{1}, &struct{ n int }{2}

	_, ok := tbl.lookup(a)
	assert.False(t, ok)

	assert.Equal(t, uint64(1), tbl.assign(a))
	assert.Equal(t, uint64(2), tbl.assign(b))

	id, ok := tbl.lookup(a)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)
}

func TestRefTableReverse(t *testing.T) {
	tbl := newRefTable()
	a, b := &struct{ n int }{1}, &struct{ n int }{2}
	entA := &schema.Entity{Identity: "A"}
	entB := &schema.Entity{Identity: "B"}

	assert.Equal(t, uint64(1), tbl.register(a, entA))
	assert.Equal(t, uint64(2), tbl.register(b, entB))

	got, ent, ok := tbl.resolve(2)
	assert.True(t, ok)
	assert.Same(t, b, got)
	assert.Same(t, entB, ent)

	_, _, ok = tbl.resolve(0)
	assert.False(t, ok)
	_, _, ok = tbl.resolve(3)
	assert.False(t, ok)
}
