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

	"github.com/refwire/refwire/fault"
	"github.com/refwire/refwire/registry"
	"github.com/refwire/refwire/schema"
)

const (
	// ErrNotSealed is returned when a session is opened on an unsealed
	// namespace.
	ErrNotSealed = fault.Const("namespace must be sealed before encode or decode")
	// ErrUnknownMagic is returned when a stream does not start with the
	// expected magic bytes.
	ErrUnknownMagic = fault.Const("unknown stream magic")
	// ErrUnsupportedVersion is returned for a stream written by an
	// unsupported format revision.
	ErrUnsupportedVersion = fault.Const("unsupported stream format version")
	// ErrIncompatibleVersion is returned when an exact-policy entity is
	// decoded from a stream carrying a different version tag.
	ErrIncompatibleVersion = fault.Const("incompatible type version")
	// ErrDanglingReference is returned when a back-reference names an id
	// that has not been registered in this session.
	ErrDanglingReference = fault.Const("dangling reference")
	// ErrValidation wraps a post-decode hook failure.
	ErrValidation = fault.Const("validation hook failed")
	// ErrCorruptStream is returned for structural stream damage that does
	// not match a more specific error.
	ErrCorruptStream = fault.Const("corrupt stream")
)

// Aliases for the errors raised by the packages a session drives, so call
// sites can match the whole session taxonomy against one package.
const (
	ErrTypeMismatch  = schema.ErrTypeMismatch
	ErrNotRegistered = registry.ErrNotRegistered
	ErrUnknownType   = registry.ErrUnknownType
)

// recoverMismatch converts a panic raised by a field accessor handed a value
// of the wrong shape into the typed mismatch error. Accessors are allowed to
// panic on bad input; nothing else in a session panics on purpose. A panic
// value that is itself an error stays in the chain.
func recoverMismatch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if cause := fault.From(r); cause != fault.InvalidErrorType {
		*err = fmt.Errorf("%w: %w", ErrTypeMismatch, cause)
		return
	}
	*err = fmt.Errorf("%w: %v", ErrTypeMismatch, r)
}
