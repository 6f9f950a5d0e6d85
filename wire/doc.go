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

// Package wire implements the primitive value layer of the stream format.
//
// All multi-byte scalars are little-endian fixed width. Strings are encoded
// as a uint32 byte length followed by the UTF-8 bytes. Uvarint values use a
// prefix-tagged variable length encoding where the number of leading one
// bits in the first byte gives the number of additional bytes; values below
// 0x80 therefore occupy a single byte.
//
// Readers and writers hold a sticky error: the first failure is recorded and
// every subsequent call becomes a no-op, so call sites can perform a run of
// operations and check the error once at the end.
package wire
