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

// AcDecoder mirrors AcEncoder: it tracks the same working interval
// [low, high] and a code word read from the front of a BitBuffer, and
// recovers the symbol sequence the encoder narrowed the interval by.
type AcDecoder struct {
	acParams
	bits *bitbuffer.BitBuffer
	low  uint64
	high uint64
	code uint64
}

// NewAcDecoder creates an AcDecoder reading from bits, with the same
// precision the encoder used. It consumes the first precision bits of
// bits to seed the code word. bits' front-read cursor is otherwise
// untouched by construction and advances only as Decode renormalizes.
func NewAcDecoder(precision uint, bits *bitbuffer.BitBuffer) (*AcDecoder, error) {
	p, err := newAcParams(precision)

	if err != nil {
		return nil, err
	}

	d := &AcDecoder{
		acParams: p,
		bits:     bits,
		low:      0,
		high:     p.mask,
	}

	for i := uint(0); i < precision; i++ {
		d.code = (d.code << 1) | uint64(bits.PopFrontBit())
	}

	return d, nil
}

// Decode recovers the next symbol out of symCount symbols whose
// cumulative frequencies, given by cdf, total 2^cdfBits, then
// renormalizes low, high and code in lockstep with the encoder's
// Encode.
//
// cdf must satisfy the same admissibility contract as AcEncoder.Encode;
// a mismatch between cdf and the one used to encode the stream, or an
// out-of-sync bit stream, surfaces as ErrIntervalCollapse when the
// recovered scaled value falls outside the CDF's total.
func (this *AcDecoder) Decode(symCount int, cdf []uint64, cdfBits uint) int {
	checkCDFBits(cdfBits, this.maxTotalBits)
	checkCDFTotal(cdf, cdfBits)

	rng := this.high - this.low + 1
	checkRange(rng, this.minRange, this.fullRange)

	scaled := (((this.code-this.low+1)<<cdfBits)-1) / rng

	total := cdf[symCount]

	if scaled >= total {
		panic(fmt.Errorf("%w: decoded scaled value %d >= cdf total %d", yaecl.ErrIntervalCollapse, scaled, total))
	}

	sym := findSymbol(cdf, scaled)
	checkNonZeroProbability(sym, cdf[sym], cdf[sym+1])

	this.high = this.low + ((cdf[sym+1]*rng)>>cdfBits) - 1
	this.low = this.low + ((cdf[sym]*rng)>>cdfBits)

	for {
		if this.high < this.halfRange {
			// no-op: both bounds already share a leading 0
		} else if this.low >= this.halfRange {
			this.low -= this.halfRange
			this.high -= this.halfRange
			this.code -= this.halfRange
		} else if this.low >= this.quarterRange && this.high < this.threeQuarterRange {
			this.low -= this.quarterRange
			this.high -= this.quarterRange
			this.code -= this.quarterRange
		} else {
			break
		}

		this.low <<= 1
		this.high = (this.high << 1) | 1
		this.code = (this.code << 1) | uint64(this.bits.PopFrontBit())
		this.low &= this.mask
		this.high &= this.mask
		this.code &= this.mask
	}

	return sym
}
