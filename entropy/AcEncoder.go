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
	"github.com/yaecl-go/yaecl/bitbuffer"
)

// AcEncoder is a streaming binary arithmetic coder: it narrows a working
// interval [low, high] to the sub-interval a caller-supplied CDF assigns
// to each symbol, emitting the interval's shared leading bits as soon as
// they become fixed. Straddling pending bits (the "E3" case) are
// deferred until the straddle resolves.
type AcEncoder struct {
	acParams
	bits        *bitbuffer.BitBuffer
	low         uint64
	high        uint64
	pendingBits uint64
}

// NewAcEncoder creates an AcEncoder with the given interval precision,
// writing into a fresh bitbuffer.BitBuffer. precision must be in
// [2, yaecl.WordBits].
func NewAcEncoder(precision uint) (*AcEncoder, error) {
	p, err := newAcParams(precision)

	if err != nil {
		return nil, err
	}

	return &AcEncoder{
		acParams: p,
		bits:     bitbuffer.New(),
		low:      0,
		high:     p.mask,
	}, nil
}

// BitStream returns the buffer the encoder writes into. Call Flush first
// to obtain a decodable stream.
func (this *AcEncoder) BitStream() *bitbuffer.BitBuffer {
	return this.bits
}

// Encode narrows the working interval to the sub-interval cdf assigns to
// sym, out of sym_count symbols whose cumulative frequencies total
// 2^cdfBits, then renormalizes: every leading bit on which low and high
// now agree is emitted, along with any pending straddle bits, until the
// interval is wide enough that no more bits are forced.
//
// cdf must have len(cdf) == symCount+1, cdf[0] == 0 and
// cdf[symCount] == 2^cdfBits; cdf[sym] < cdf[sym+1] is required for sym
// to carry non-zero probability. A cdf_bits at or above the precision's
// limit, a last entry other than 2^cdfBits, and a zero-probability sym
// panic; the length and cdf[0] are not checked here. A caller that cannot
// guarantee an admissible CDF should call ValidateCDF first.
func (this *AcEncoder) Encode(sym int, cdf []uint64, cdfBits uint) {
	checkCDFBits(cdfBits, this.maxTotalBits)
	checkCDFTotal(cdf, cdfBits)
	checkNonZeroProbability(sym, cdf[sym], cdf[sym+1])

	rng := this.high - this.low + 1
	checkRange(rng, this.minRange, this.fullRange)

	this.high = this.low + ((cdf[sym+1]*rng)>>cdfBits) - 1
	this.low = this.low + ((cdf[sym]*rng)>>cdfBits)

	for {
		if this.high < this.halfRange {
			this.emitBit(0)
		} else if this.low >= this.halfRange {
			this.emitBit(1)
			this.low -= this.halfRange
			this.high -= this.halfRange
		} else if this.low >= this.quarterRange && this.high < this.threeQuarterRange {
			this.pendingBits++
			this.low -= this.quarterRange
			this.high -= this.quarterRange
		} else {
			break
		}

		this.low <<= 1
		this.high = (this.high << 1) | 1
		this.low &= this.mask
		this.high &= this.mask
	}
}

// emitBit pushes bit, followed by pendingBits copies of its complement:
// the resolution of one or more prior straddle cases.
func (this *AcEncoder) emitBit(bit int) {
	this.bits.PushBit(bit)

	for ; this.pendingBits > 0; this.pendingBits-- {
		this.bits.PushBit(1 - bit)
	}
}

// Flush emits enough bits to disambiguate the final interval and returns
// the completed stream. After Flush, further calls to Encode corrupt the
// stream: the encoder does not guard against this, matching the
// teacher's push-only streams.
func (this *AcEncoder) Flush() *bitbuffer.BitBuffer {
	this.pendingBits++

	if this.low < this.quarterRange {
		this.emitBit(0)
	} else {
		this.emitBit(1)
	}

	return this.bits
}
