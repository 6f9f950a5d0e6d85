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

package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refwire/refwire/fault"
)

func TestConst(t *testing.T) {
	const sentinel = fault.Const("it went wrong")
	assert.Equal(t, "it went wrong", sentinel.Error())
	assert.ErrorIs(t, fmt.Errorf("context: %w", sentinel), sentinel)
}

func TestFrom(t *testing.T) {
	assert.NoError(t, fault.From(nil))

	sentinel := errors.New("boom")
	assert.Same(t, sentinel, fault.From(sentinel))

	assert.ErrorIs(t, fault.From("not an error"), fault.InvalidErrorType)
	assert.ErrorIs(t, fault.From(42), fault.InvalidErrorType)
}
