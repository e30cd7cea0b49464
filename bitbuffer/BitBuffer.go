/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bitbuffer provides BitBuffer, an append-and-random-access bit
// sequence backed by bytes. It exposes two independent cursors: a FIFO
// front-read cursor (used by the arithmetic decoder) and a LIFO tail
// (used by the rANS codec, which shrinks the buffer as it decodes). Bits
// are packed MSB-first within each byte; round-tripping depends on every
// consumer agreeing on that convention.
package bitbuffer

import (
	"fmt"
	"os"

	yaecl "github.com/yaecl-go/yaecl"
)

// BitBuffer is a growable, MSB-first bit sequence with independent
// front-read and tail-shrink cursors.
type BitBuffer struct {
	data   []byte
	length int // logical bit length; shrinks on PopBack*
	cursor int // front read cursor for PopFront*; independent of length
}

// New creates an empty BitBuffer.
func New() *BitBuffer {
	return &BitBuffer{}
}

// PushBit appends one bit. Bits are packed MSB-first: the k-th bit
// pushed into a byte occupies position (7-k) from the low bit.
func (this *BitBuffer) PushBit(bit int) {
	if this.length&7 == 0 {
		this.data = append(this.data[:this.length>>3], 0)
	}

	if bit&1 != 0 {
		this.data[this.length>>3] |= 1 << uint(7-(this.length&7))
	}

	this.length++
}

// PushByte appends one byte. Requires the current length to be a
// multiple of 8; panics otherwise.
func (this *BitBuffer) PushByte(b byte) {
	if this.length&7 != 0 {
		panic(fmt.Errorf("%w: PushByte requires a byte-aligned length, have %d bits", yaecl.ErrBitBufferMisuse, this.length))
	}

	this.data = append(this.data[:this.length>>3], b)
	this.length += 8
}

// Get returns the bit at absolute position i. Panics if i is out of
// range. Unaffected by the front-read cursor.
func (this *BitBuffer) Get(i int) int {
	if i < 0 || i >= this.length {
		panic(fmt.Errorf("%w: Get(%d) out of range [0,%d)", yaecl.ErrBitBufferMisuse, i, this.length))
	}

	if this.data[i>>3]&(1<<uint(7-(i&7))) != 0 {
		return 1
	}

	return 0
}

// PopFrontBit advances the front cursor and returns the bit it pointed
// to. Returns 0, without advancing further, once the cursor reaches the
// length: the arithmetic decoder's renormalization may ask for more bits
// than were ever written, and this must not panic.
func (this *BitBuffer) PopFrontBit() int {
	if this.cursor >= this.length {
		return 0
	}

	bit := this.Get(this.cursor)
	this.cursor++
	return bit
}

// PopBackBit shrinks the length by one and returns the bit that occupied
// the old tail position. Returns 0 on an empty buffer.
func (this *BitBuffer) PopBackBit() int {
	if this.length == 0 {
		return 0
	}

	this.length--
	mask := byte(1) << uint(7-(this.length&7))
	bit := 0

	if this.data[this.length>>3]&mask != 0 {
		bit = 1
	}

	// Clear the popped bit so the unused low bits of a partial final byte
	// stay zero.
	this.data[this.length>>3] &^= mask
	return bit
}

// PopBackByte shrinks the length by 8 and returns the byte that occupied
// the new tail. Requires the length to be a non-zero multiple of 8;
// panics otherwise.
func (this *BitBuffer) PopBackByte() byte {
	if this.length&7 != 0 {
		panic(fmt.Errorf("%w: PopBackByte requires a byte-aligned length, have %d bits", yaecl.ErrBitBufferMisuse, this.length))
	}

	if this.length == 0 {
		panic(fmt.Errorf("%w: PopBackByte on an empty buffer", yaecl.ErrBitBufferMisuse))
	}

	this.length -= 8
	return this.data[this.length>>3]
}

// Size returns the current bit length. Reflects PopBack* shrinkage; not
// affected by the front cursor.
func (this *BitBuffer) Size() int {
	return this.length
}

// Data returns the raw bytes backing the buffer, truncated to
// ceil(Size()/8) bytes. The caller must not mutate the returned slice.
func (this *BitBuffer) Data() []byte {
	return this.data[:(this.length+7)>>3]
}

// Save writes ceil(length/8) bytes to path. The final partial byte's
// unused low bits are zero.
func (this *BitBuffer) Save(path string) error {
	return os.WriteFile(path, this.Data(), 0o644)
}

// Load replaces the receiver's contents with the bytes read from path.
// The logical length becomes 8*len(bytes); the front and tail cursors
// reset. The file's length in bits is not recorded anywhere: the caller
// is expected to know how many bits are meaningful, exactly as for any
// freshly constructed BitBuffer that a codec reads past the end of.
func (this *BitBuffer) Load(path string) error {
	data, err := os.ReadFile(path)

	if err != nil {
		return err
	}

	this.data = data
	this.length = len(data) * 8
	this.cursor = 0
	return nil
}
