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

package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// NewReader creates a Reader that reads from the provided io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: r}
}

// NewWriter creates a Writer that writes to the supplied io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: w}
}

// Reader decodes primitive values from an io.Reader.
type Reader struct {
	reader io.Reader
	tmp    [9]byte
	err    error
}

// Writer encodes primitive values to an io.Writer.
type Writer struct {
	writer io.Writer
	tmp    [9]byte
	err    error
}

// Data reads len(p) bytes into p.
func (r *Reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	_, r.err = io.ReadFull(r.reader, p)
}

// Data writes the bytes of data to the stream.
func (w *Writer) Data(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.writer.Write(data)
	if err != nil {
		w.err = err
		return
	}
	if n != len(data) {
		w.err = io.ErrShortWrite
		return
	}
}

func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (r *Reader) Int8() int8 {
	return int8(r.Uint8())
}

func (w *Writer) Int8(v int8) {
	w.Uint8(uint8(v))
}

func (r *Reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	b := r.tmp[:1]
	_, r.err = io.ReadFull(r.reader, b)
	return b[0]
}

func (w *Writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (r *Reader) Uint16() uint16 {
	b := r.tmp[:2]
	r.Data(b)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (w *Writer) Uint16(v uint16) {
	binary.LittleEndian.PutUint16(w.tmp[:2], v)
	w.Data(w.tmp[:2])
}

func (r *Reader) Uint32() uint32 {
	b := r.tmp[:4]
	r.Data(b)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (w *Writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(w.tmp[:4], v)
	w.Data(w.tmp[:4])
}

func (r *Reader) Uint64() uint64 {
	b := r.tmp[:8]
	r.Data(b)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (w *Writer) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(w.tmp[:8], v)
	w.Data(w.tmp[:8])
}

func (r *Reader) Int16() int16     { return int16(r.Uint16()) }
func (w *Writer) Int16(v int16)    { w.Uint16(uint16(v)) }
func (r *Reader) Int32() int32     { return int32(r.Uint32()) }
func (w *Writer) Int32(v int32)    { w.Uint32(uint32(v)) }
func (r *Reader) Int64() int64     { return int64(r.Uint64()) }
func (w *Writer) Int64(v int64)    { w.Uint64(uint64(v)) }
func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}
func (r *Reader) Float64() float64 { return math.Float64frombits(r.Uint64()) }
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Uvarint reads a prefix-tagged variable length unsigned integer.
func (r *Reader) Uvarint() uint64 {
	tag := r.Uint8()
	count := uint(0)
	for ; ((0x80 >> count) & tag) != 0; count++ {
	}
	v := uint64(tag & (byte(0xff) >> count))
	if count == 0 {
		return v
	}
	r.Data(r.tmp[:count])
	for i := uint(0); i < count; i++ {
		v = (v << 8) | uint64(r.tmp[i])
	}
	return v
}

// Uvarint writes a prefix-tagged variable length unsigned integer.
func (w *Writer) Uvarint(v uint64) {
	space := uint64(0x7f)
	tag := byte(0)
	for o := 8; true; o-- {
		if v <= space {
			w.tmp[o] = byte(v) | byte(tag)
			w.Data(w.tmp[o:])
			return
		}
		w.tmp[o] = byte(v)
		v >>= 8
		space >>= 1
		tag = (tag >> 1) | 0x80
	}
}

func (r *Reader) String() string {
	s := make([]byte, r.Uint32())
	r.Data(s)
	if r.err != nil {
		return ""
	}
	return string(s)
}

func (w *Writer) String(v string) {
	w.Uint32(uint32(len(v)))
	w.Data([]byte(v))
}

// Error returns the first error the reader encountered, if any.
func (r *Reader) Error() error {
	return r.err
}

// Error returns the first error the writer encountered, if any.
func (w *Writer) Error() error {
	return w.err
}

// SetError records err as the sticky error if none is set yet.
func (r *Reader) SetError(err error) {
	if r.err != nil {
		return
	}
	r.err = err
}

// SetError records err as the sticky error if none is set yet.
func (w *Writer) SetError(err error) {
	if w.err != nil {
		return
	}
	w.err = err
}
