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

// Package schema declares the static type descriptors that drive encoding
// and decoding.
//
// There is no runtime field discovery: a type participates in serialization
// by having an Entity registered for it, and the Entity's ordered field list
// fixes the wire layout. Values cross the engine boundary as interface
// values; field accessors declared on each Field move data between the
// engine's view and the concrete object.
package schema
