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

// The constructors below build the accessor closures for the common case of
// a field stored directly on a struct. Hand-rolled Field values remain the
// escape hatch for anything they do not cover.

func scalarField[T any, V any](name string, m Method, get func(*T) *V) Field {
	return Field{
		Declared: name,
		Type:     &Primitive{Method: m},
		Get: func(obj interface{}) interface{} {
			return *get(obj.(*T))
		},
		Set: func(obj, value interface{}) {
			*get(obj.(*T)) = value.(V)
		},
	}
}

// BoolField declares a persistent bool field of a *T object.
func BoolField[T any](name string, get func(*T) *bool) Field {
	return scalarField(name, Bool, get)
}

// Int8Field declares a persistent int8 field of a *T object.
func Int8Field[T any](name string, get func(*T) *int8) Field {
	return scalarField(name, Int8, get)
}

// Uint8Field declares a persistent uint8 field of a *T object.
func Uint8Field[T any](name string, get func(*T) *uint8) Field {
	return scalarField(name, Uint8, get)
}

// Int16Field declares a persistent int16 field of a *T object.
func Int16Field[T any](name string, get func(*T) *int16) Field {
	return scalarField(name, Int16, get)
}

// Uint16Field declares a persistent uint16 field of a *T object.
func Uint16Field[T any](name string, get func(*T) *uint16) Field {
	return scalarField(name, Uint16, get)
}

// Int32Field declares a persistent int32 field of a *T object.
func Int32Field[T any](name string, get func(*T) *int32) Field {
	return scalarField(name, Int32, get)
}

// Uint32Field declares a persistent uint32 field of a *T object.
func Uint32Field[T any](name string, get func(*T) *uint32) Field {
	return scalarField(name, Uint32, get)
}

// Int64Field declares a persistent int64 field of a *T object.
func Int64Field[T any](name string, get func(*T) *int64) Field {
	return scalarField(name, Int64, get)
}

// Uint64Field declares a persistent uint64 field of a *T object.
func Uint64Field[T any](name string, get func(*T) *uint64) Field {
	return scalarField(name, Uint64, get)
}

// Float32Field declares a persistent float32 field of a *T object.
func Float32Field[T any](name string, get func(*T) *float32) Field {
	return scalarField(name, Float32, get)
}

// Float64Field declares a persistent float64 field of a *T object.
func Float64Field[T any](name string, get func(*T) *float64) Field {
	return scalarField(name, Float64, get)
}

// TextField declares a persistent string field of a *T object.
func TextField[T any](name string, get func(*T) *string) Field {
	return scalarField(name, String, get)
}

// RefField declares a persistent field of a *T object holding a *E, where E
// is registered under the given entity identity. A nil pointer encodes as a
// null record.
func RefField[T any, E any](name, entity string, get func(*T) **E) Field {
	return Field{
		Declared: name,
		Type:     &Reference{Entity: entity},
		Get: func(obj interface{}) interface{} {
			return *get(obj.(*T))
		},
		Set: func(obj, value interface{}) {
			if value == nil {
				*get(obj.(*T)) = nil
				return
			}
			*get(obj.(*T)) = value.(*E)
		},
	}
}

// SeqField declares a persistent []E field of a *T object, encoded as an
// ordered sequence of elem. Get copies the slice into the engine's boxed
// form, so a sequence snapshot never aliases the caller's backing array.
func SeqField[T any, E any](name string, elem Type, get func(*T) *[]E) Field {
	return Field{
		Declared: name,
		Type:     &Sequence{Elem: elem},
		Get: func(obj interface{}) interface{} {
			src := *get(obj.(*T))
			out := make([]interface{}, len(src))
			for i, e := range src {
				out[i] = e
			}
			return out
		},
		Set: func(obj, value interface{}) {
			boxed := value.([]interface{})
			out := make([]E, len(boxed))
			for i, v := range boxed {
				if v == nil {
					continue
				}
				out[i] = v.(E)
			}
			*get(obj.(*T)) = out
		},
	}
}

// Transient returns a copy of f marked transient: no payload on the wire,
// zero value after decode.
func Transient(f Field) Field {
	f.Transient = true
	return f
}
