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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// uniform5CDF is the five-symbol, cdf_bits=16 equiprobable CDF seeded
// across the concrete scenarios: [0, 0.2, 0.4, 0.6, 0.8, 1.0] * 2^16.
func uniform5CDF() []uint64 {
	return []uint64{0, 13107, 26214, 39321, 52428, 65536}
}

// seedSyms returns the 1024-symbol sequence syms[i] = i mod 5, i = 1..1024.
func seedSyms() []int {
	syms := make([]int, 1024)

	for i := range syms {
		syms[i] = (i + 1) % 5
	}

	return syms
}

func TestACEncodeDecodeSeedScenario(t *testing.T) {
	cdf := uniform5CDF()
	syms := seedSyms()

	enc, err := NewAcEncoder(32)
	require.NoError(t, err)

	for _, s := range syms {
		enc.Encode(s, cdf, 16)
	}

	stream := enc.Flush()

	entropyBits := float64(len(syms)) * math.Log2(5)
	require.Greater(t, float64(stream.Size()), entropyBits)
	require.LessOrEqual(t, float64(stream.Size()), 2*entropyBits)

	dec, err := NewAcDecoder(32, stream)
	require.NoError(t, err)

	got := make([]int, len(syms))

	for i := range got {
		got[i] = dec.Decode(5, cdf, 16)
	}

	require.Equal(t, syms, got)
}

func TestACSkewedDistributionCompressesWell(t *testing.T) {
	cdf := []uint64{0, 58982, 65536} // [0, 0.9, 1.0] * 2^16
	n := 10000

	enc, err := NewAcEncoder(32)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		enc.Encode(0, cdf, 16)
	}

	stream := enc.Flush()

	bound := float64(n) * math.Log2(1/0.9)
	require.Less(t, float64(stream.Size()), float64(n*8))
	require.Less(t, float64(stream.Size()), bound+64)
}

func TestRansInteractiveRoundTrip(t *testing.T) {
	cdf := uniform5CDF()
	syms := seedSyms()

	codec, err := NewRansCodec(64, 32)
	require.NoError(t, err)

	for _, s := range syms {
		codec.Encode(s, cdf, 16)
	}

	got := make([]int, len(syms))

	for i := range got {
		got[i] = codec.Decode(5, cdf, 16)
	}

	reversed := make([]int, len(syms))

	for i, s := range syms {
		reversed[len(syms)-1-i] = s
	}

	require.Equal(t, reversed, got)
}

func TestRansSeparateRoundTrip(t *testing.T) {
	cdf := uniform5CDF()
	syms := seedSyms()

	enc, err := NewRansCodec(64, 32)
	require.NoError(t, err)

	for _, s := range syms {
		enc.Encode(s, cdf, 16)
	}

	interactiveSize := enc.BitStream().Size()
	stream := enc.Flush()

	require.Equal(t, interactiveSize+64, stream.Size())

	dec, err := NewRansCodecFromBuffer(64, 32, stream)
	require.NoError(t, err)

	got := make([]int, len(syms))

	for i := range got {
		got[i] = dec.Decode(5, cdf, 16)
	}

	reversed := make([]int, len(syms))

	for i, s := range syms {
		reversed[len(syms)-1-i] = s
	}

	require.Equal(t, reversed, got)
}

func TestACRejectsZeroProbabilitySymbol(t *testing.T) {
	cdf := []uint64{0, 0, 65536} // symbol 0 has zero probability

	enc, err := NewAcEncoder(32)
	require.NoError(t, err)

	require.Panics(t, func() { enc.Encode(0, cdf, 16) })
}

func TestACRejectsCDFNotSummingToTotal(t *testing.T) {
	cdf := []uint64{0, 30000, 60000} // last entry != 2^16

	enc, err := NewAcEncoder(32)
	require.NoError(t, err)

	require.Panics(t, func() { enc.Encode(0, cdf, 16) })
}

func TestNewAcEncoderRejectsOutOfRangePrecision(t *testing.T) {
	_, err := NewAcEncoder(1)
	require.Error(t, err)

	_, err = NewAcEncoder(65)
	require.Error(t, err)
}

func TestNewRansCodecRejectsBadParams(t *testing.T) {
	_, err := NewRansCodec(63, 32) // not a multiple of 8
	require.Error(t, err)

	_, err = NewRansCodec(32, 32) // T < H required
	require.Error(t, err)

	_, err = NewRansCodec(72, 32) // H <= 2T required
	require.Error(t, err)
}

// TestACRoundTripProperty is the universally-quantified property of
// SPEC_FULL.md: for any admissible precision and CDF, and any symbol
// sequence with nonzero probability under that CDF, decode(encode(syms))
// reproduces syms exactly.
func TestACRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		precision := uint(rapid.IntRange(8, 40).Draw(t, "precision"))
		maxTotalBits := precision - 2

		if freqBits := 64 - precision; freqBits < maxTotalBits {
			maxTotalBits = freqBits
		}

		// checkCDFBits requires cdfBits < maxTotalBits (strict).
		cdfBits := uint(rapid.IntRange(1, int(maxTotalBits)-1).Draw(t, "cdfBits"))
		symCount := rapid.IntRange(2, min(8, int(1)<<cdfBits)).Draw(t, "symCount")

		cdf := drawCDF(t, symCount, cdfBits)
		syms := drawSyms(t, cdf, 40)

		enc, err := NewAcEncoder(precision)
		if err != nil {
			t.Fatal(err)
		}

		for _, s := range syms {
			enc.Encode(s, cdf, cdfBits)
		}

		stream := enc.Flush()

		dec, err := NewAcDecoder(precision, stream)
		if err != nil {
			t.Fatal(err)
		}

		got := make([]int, len(syms))

		for i := range got {
			got[i] = dec.Decode(symCount, cdf, cdfBits)
		}

		if !intsEqual(syms, got) {
			t.Fatalf("round trip mismatch: sent %v, got %v", syms, got)
		}
	})
}

// TestRansInteractiveRoundTripProperty is the universally-quantified
// rANS interactive round-trip: encode(syms) then |syms| decodes (without
// flush) yields reverse(syms).
func TestRansInteractiveRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cdfBits := uint(rapid.IntRange(1, 16).Draw(t, "cdfBits"))
		symCount := rapid.IntRange(2, min(8, int(1)<<cdfBits)).Draw(t, "symCount")

		cdf := drawCDF(t, symCount, cdfBits)
		syms := drawSyms(t, cdf, 40)

		codec, err := NewRansCodec(64, 32)
		if err != nil {
			t.Fatal(err)
		}

		for _, s := range syms {
			codec.Encode(s, cdf, cdfBits)
		}

		got := make([]int, len(syms))

		for i := range got {
			got[i] = codec.Decode(symCount, cdf, cdfBits)
		}

		reversed := reverseInts(syms)

		if !intsEqual(reversed, got) {
			t.Fatalf("interactive round trip mismatch: sent %v, got %v", syms, got)
		}
	})
}

// TestRansSeparateRoundTripProperty is the universally-quantified rANS
// separate-mode round-trip: encode -> flush -> a new RansCodec built from
// the flushed buffer -> decode |syms| symbols yields reverse(syms). Unlike
// TestRansSeparateRoundTrip's fixed H/T/CDF, this varies the head/tail
// precision and the CDF on every draw, so a regression in
// NewRansCodecFromBuffer's byte-reassembly under an H/T other than
// 64/32 is caught.
func TestRansSeparateRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		t_ := uint(rapid.IntRange(1, 4).Draw(t, "tUnits")) * 8
		h := t_ + uint(rapid.IntRange(1, int(t_/8)).Draw(t, "hExtraUnits"))*8

		// state stays in [h_min, 2^H) across a spill or refill only while
		// cdfBits <= H-T.
		cdfBitsMax := h - t_

		if cdfBitsMax > 16 {
			cdfBitsMax = 16
		}

		cdfBits := uint(rapid.IntRange(1, int(cdfBitsMax)).Draw(t, "cdfBits"))
		symCount := rapid.IntRange(2, min(8, int(1)<<cdfBits)).Draw(t, "symCount")

		cdf := drawCDF(t, symCount, cdfBits)
		syms := drawSyms(t, cdf, 40)

		enc, err := NewRansCodec(h, t_)
		if err != nil {
			t.Fatal(err)
		}

		for _, s := range syms {
			enc.Encode(s, cdf, cdfBits)
		}

		stream := enc.Flush()

		dec, err := NewRansCodecFromBuffer(h, t_, stream)
		if err != nil {
			t.Fatal(err)
		}

		got := make([]int, len(syms))

		for i := range got {
			got[i] = dec.Decode(symCount, cdf, cdfBits)
		}

		reversed := reverseInts(syms)

		if !intsEqual(reversed, got) {
			t.Fatalf("separate round trip mismatch (H=%d T=%d): sent %v, got %v", h, t_, syms, got)
		}
	})
}

// drawCDF builds a power-of-two-normalized CDF over symCount symbols at
// cdfBits of precision, with every symbol carrying non-zero probability.
func drawCDF(t *rapid.T, symCount int, cdfBits uint) []uint64 {
	total := uint64(1) << cdfBits
	shares := make([]uint64, symCount)
	remaining := total - uint64(symCount) // reserve 1 unit per symbol up front

	for i := 0; i < symCount-1; i++ {
		share := uint64(rapid.IntRange(0, int(remaining)).Draw(t, "share"))
		shares[i] = share
		remaining -= share
	}

	shares[symCount-1] = remaining

	cdf := make([]uint64, symCount+1)

	for i, s := range shares {
		cdf[i+1] = cdf[i] + s + 1
	}

	return cdf
}

// drawSyms draws a symbol sequence of bounded length, each symbol having
// non-zero probability under cdf.
func drawSyms(t *rapid.T, cdf []uint64, maxLen int) []int {
	admissible := make([]int, 0, len(cdf)-1)

	for s := 0; s < len(cdf)-1; s++ {
		if cdf[s] != cdf[s+1] {
			admissible = append(admissible, s)
		}
	}

	n := rapid.IntRange(0, maxLen).Draw(t, "symCount")
	syms := make([]int, n)

	for i := range syms {
		idx := rapid.IntRange(0, len(admissible)-1).Draw(t, "symIdx")
		syms[i] = admissible[idx]
	}

	return syms
}

func reverseInts(xs []int) []int {
	out := make([]int, len(xs))

	for i, x := range xs {
		out[len(xs)-1-i] = x
	}

	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestValidateCDF(t *testing.T) {
	require.NoError(t, ValidateCDF(uniform5CDF(), 16))

	require.Error(t, ValidateCDF([]uint64{0}, 16))
	require.Error(t, ValidateCDF([]uint64{1, 65536}, 16))
	require.Error(t, ValidateCDF([]uint64{0, 40000, 30000, 65536}, 16))
	require.Error(t, ValidateCDF([]uint64{0, 30000, 60000}, 16))
}

func TestBitStreamAccessors(t *testing.T) {
	enc, err := NewAcEncoder(32)
	require.NoError(t, err)
	require.NotNil(t, enc.BitStream())

	codec, err := NewRansCodec(64, 32)
	require.NoError(t, err)
	require.NotNil(t, codec.BitStream())
}

func TestRansStateStartsAtHMin(t *testing.T) {
	codec, err := NewRansCodec(64, 32)
	require.NoError(t, err)
	require.Equal(t, uint64(1)<<32, codec.State())
}
