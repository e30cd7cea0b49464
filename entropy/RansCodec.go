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

package entropy

import (
	"fmt"

	yaecl "github.com/yaecl-go/yaecl"
	"github.com/yaecl-go/yaecl/bitbuffer"
)

// RansCodec implements a single-state asymmetric numeral system coder.
// It holds one state register of head precision H bits, normalized to
// stay in [h_min, state_max) between symbols, where h_min = 2^(H-T) and
// state_max = 2^H. Decoding runs last-symbol-first: bytes spilled during
// Encode must be replayed, in reverse, as the refill source during
// Decode, so a RansCodec is normally driven by pushing a whole symbol
// sequence onto an encoder, flushing it, then decoding a fresh codec
// built (or rebuilt) from the flushed bytes back in reverse order — see
// SPEC_FULL.md's interactive vs. separate modes.
type RansCodec struct {
	h, t    uint
	hMin    uint64
	stateMx uint64
	state   uint64
	bits    *bitbuffer.BitBuffer
}

// validateRansParams checks h and t are byte multiples with
// t < h <= 2*t, and that h does not exceed the internal word width.
func validateRansParams(h, t uint) error {
	if h == 0 || t == 0 || h&7 != 0 || t&7 != 0 {
		return fmt.Errorf("%w: rANS H=%d, T=%d must both be positive multiples of 8", yaecl.ErrParameterOutOfRange, h, t)
	}

	if !(t < h && h <= 2*t) {
		return fmt.Errorf("%w: rANS requires T < H <= 2T, got H=%d, T=%d", yaecl.ErrParameterOutOfRange, h, t)
	}

	if h > yaecl.WordBits {
		return fmt.Errorf("%w: rANS H=%d exceeds word width %d", yaecl.ErrParameterOutOfRange, h, yaecl.WordBits)
	}

	return nil
}

// NewRansCodec creates a RansCodec with a fresh state, writing into a
// fresh bitbuffer.BitBuffer. Use this to begin encoding a symbol
// sequence.
func NewRansCodec(h, t uint) (*RansCodec, error) {
	if err := validateRansParams(h, t); err != nil {
		return nil, err
	}

	hMin := uint64(1) << (h - t)

	return &RansCodec{
		h:       h,
		t:       t,
		hMin:    hMin,
		stateMx: uint64(1) << h,
		state:   hMin,
		bits:    bitbuffer.New(),
	}, nil
}

// NewRansCodecFromBuffer creates a RansCodec that decodes from bits: it
// pops H/8 bytes off the tail of bits — Flush pushed them LSB-first, so
// the tail yields them back most-significant-byte first — and
// reassembles state by shifting each one in from the bottom, to seed
// the state register. It then decodes symbols in last-encoded-first
// order via repeated Decode calls.
func NewRansCodecFromBuffer(h, t uint, bits *bitbuffer.BitBuffer) (*RansCodec, error) {
	if err := validateRansParams(h, t); err != nil {
		return nil, err
	}

	var state uint64

	for i := uint(0); i < h/8; i++ {
		state = (state << 8) | uint64(bits.PopBackByte())
	}

	return &RansCodec{
		h:       h,
		t:       t,
		hMin:    uint64(1) << (h - t),
		stateMx: uint64(1) << h,
		state:   state,
		bits:    bits,
	}, nil
}

// BitStream returns the buffer the codec reads from or writes into.
func (this *RansCodec) BitStream() *bitbuffer.BitBuffer {
	return this.bits
}

// State returns the raw state register. Exposed for tests and for
// callers implementing the "interactive" mode of SPEC_FULL.md, which
// decodes directly off an in-flight encoder state without ever calling
// Flush.
func (this *RansCodec) State() uint64 {
	return this.state
}

// Encode folds sym into the state register, out of symCount symbols
// whose cumulative frequencies, given by cdf, total 2^cdfBits. Before
// folding, if state is at or above the symbol's bound
// freq << (H - cdfBits), it spills the T low bits of state once,
// LSB-first as whole bytes, and shifts them out; if state is still not
// below that bound it panics with ErrCodecInvariantBreak.
//
// cdf must satisfy the same admissibility contract as AcEncoder.Encode.
func (this *RansCodec) Encode(sym int, cdf []uint64, cdfBits uint) {
	checkRansCDFBits(cdfBits, this.h)
	checkCDFTotal(cdf, cdfBits)
	checkNonZeroProbability(sym, cdf[sym], cdf[sym+1])

	freq := cdf[sym+1] - cdf[sym]
	stateMax := freq << (this.h - cdfBits)

	if this.state >= stateMax {
		s := this.state

		for i := uint(0); i < this.t/8; i++ {
			this.bits.PushByte(byte(s))
			s >>= 8
		}

		this.state >>= this.t
	}

	if this.state >= stateMax {
		panic(fmt.Errorf("%w: rANS state %d did not fall below state_max %d after spill", yaecl.ErrCodecInvariantBreak, this.state, stateMax))
	}

	this.state = ((this.state/freq)<<cdfBits + this.state%freq) + cdf[sym]
}

// Flush appends H/8 bytes of the final state, LSB-first, so a later
// NewRansCodecFromBuffer can reconstruct it, then resets state to
// h_min. Call Flush once, after the last Encode, in "separate" mode;
// omit it entirely in "interactive" mode, where the caller calls Decode
// on the same codec.
func (this *RansCodec) Flush() *bitbuffer.BitBuffer {
	s := this.state

	for i := uint(0); i < this.h/8; i++ {
		this.bits.PushByte(byte(s))
		s >>= 8
	}

	this.state = this.hMin
	return this.bits
}

// Decode recovers the most recently encoded, not-yet-decoded symbol out
// of symCount symbols whose cumulative frequencies, given by cdf, total
// 2^cdfBits. After unfolding, if state is below h_min, it refills it once
// with T/8 bytes read off the tail of bits, shifted in MSB-first (the
// reverse of Encode's LSB-first spill order); if state is still below
// h_min it panics with ErrCodecInvariantBreak.
func (this *RansCodec) Decode(symCount int, cdf []uint64, cdfBits uint) int {
	checkRansCDFBits(cdfBits, this.h)
	checkCDFTotal(cdf, cdfBits)

	mask := (uint64(1) << cdfBits) - 1
	scaled := this.state & mask

	total := cdf[symCount]

	if scaled >= total {
		panic(fmt.Errorf("%w: decoded scaled value %d >= cdf total %d", yaecl.ErrIntervalCollapse, scaled, total))
	}

	sym := findSymbol(cdf, scaled)
	checkNonZeroProbability(sym, cdf[sym], cdf[sym+1])

	freq := cdf[sym+1] - cdf[sym]
	this.state = freq*(this.state>>cdfBits) + scaled - cdf[sym]

	if this.state < this.hMin {
		for i := uint(0); i < this.t/8; i++ {
			this.state = (this.state << 8) | uint64(this.bits.PopBackByte())
		}
	}

	if this.state < this.hMin {
		panic(fmt.Errorf("%w: rANS state %d did not reach h_min %d after refill", yaecl.ErrCodecInvariantBreak, this.state, this.hMin))
	}

	return sym
}
