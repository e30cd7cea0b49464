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

// Package entropy implements AcEncoder, AcDecoder and RansCodec: a
// streaming arithmetic coder pair and an asymmetric-numeral-system
// codec, both driven by caller-supplied CDFs over a bitbuffer.BitBuffer.
package entropy

import (
	"fmt"

	yaecl "github.com/yaecl-go/yaecl"
)

// checkCDFBits rejects a cdf_bits for which 2^cdf_bits exceeds
// max_total = 2^maxAllowedBits − 1 (spec.md §4.2 step 2): since both
// sides are powers of two, that condition is exactly
// cdf_bits >= maxAllowedBits. Used by the AC encoder/decoder, where
// maxAllowedBits is acParams.maxTotalBits.
func checkCDFBits(cdfBits uint, maxAllowedBits uint) {
	if cdfBits >= maxAllowedBits {
		panic(fmt.Errorf("%w: cdf_bits %d must be strictly less than %d", yaecl.ErrInadmissibleCDF, cdfBits, maxAllowedBits))
	}
}

// checkRansCDFBits rejects a cdf_bits the rANS codec was not configured
// to admit: spec.md §9 requires cdf_bits <= H, non-strict (state_max's
// shift H-cdf_bits must not go negative).
func checkRansCDFBits(cdfBits uint, h uint) {
	if cdfBits > h {
		panic(fmt.Errorf("%w: cdf_bits %d exceeds rANS head precision %d", yaecl.ErrInadmissibleCDF, cdfBits, h))
	}
}

// checkCDFTotal rejects a CDF whose last entry is not exactly
// 2^cdf_bits: CDFs are required to be power-of-two normalized.
func checkCDFTotal(cdf []uint64, cdfBits uint) {
	total := uint64(1) << cdfBits
	last := cdf[len(cdf)-1]

	if last != total {
		panic(fmt.Errorf("%w: cdf[%d] = %d, want 2^cdf_bits = %d", yaecl.ErrInadmissibleCDF, len(cdf)-1, last, total))
	}
}

// checkNonZeroProbability rejects encoding/decoding a symbol whose CDF
// interval is empty.
func checkNonZeroProbability(sym int, cLow, cHigh uint64) {
	if cLow == cHigh {
		panic(fmt.Errorf("%w: symbol %d has zero probability", yaecl.ErrInadmissibleCDF, sym))
	}
}

// findSymbol binary-searches cdf for the symbol whose half-open interval
// [cdf[sym], cdf[sym+1]) contains scaled. cdf must have sym_count+1
// elements and be treated as non-decreasing; see ValidateCDF for a
// caller-side check of that precondition.
func findSymbol(cdf []uint64, scaled uint64) int {
	start, end := 0, len(cdf)-1

	for end-start > 1 {
		mid := (start + end) >> 1

		if cdf[mid] > scaled {
			end = mid
		} else {
			start = mid
		}
	}

	return start
}

// ValidateCDF reports whether cdf is an admissible CDF for the given
// cdf_bits: S+1 entries, cdf[0] == 0, non-decreasing, and
// cdf[S] == 2^cdf_bits. Unlike the in-codec checks (which panic, since a
// violation discovered mid-stream is a fatal contract failure), this is
// a convenience for callers that want to validate a CDF up front and
// report a normal error instead.
func ValidateCDF(cdf []uint64, cdfBits uint) error {
	if len(cdf) < 2 {
		return fmt.Errorf("%w: CDF must have at least 2 entries, has %d", yaecl.ErrInadmissibleCDF, len(cdf))
	}

	if cdf[0] != 0 {
		return fmt.Errorf("%w: cdf[0] = %d, want 0", yaecl.ErrInadmissibleCDF, cdf[0])
	}

	for i := 1; i < len(cdf); i++ {
		if cdf[i] < cdf[i-1] {
			return fmt.Errorf("%w: cdf[%d] = %d < cdf[%d] = %d, not non-decreasing", yaecl.ErrInadmissibleCDF, i, cdf[i], i-1, cdf[i-1])
		}
	}

	total := uint64(1) << cdfBits
	last := cdf[len(cdf)-1]

	if last != total {
		return fmt.Errorf("%w: cdf[%d] = %d, want 2^cdf_bits = %d", yaecl.ErrInadmissibleCDF, len(cdf)-1, last, total)
	}

	return nil
}
