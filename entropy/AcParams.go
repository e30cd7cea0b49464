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
)

// acParams holds the precision-derived constants shared, identically,
// by AcEncoder and AcDecoder: the interval bounds, the minimum range
// guarantee, and the cdf_bits ceiling that keeps c_high*range from
// overflowing the internal word.
type acParams struct {
	precision         uint
	fullRange         uint64
	halfRange         uint64
	quarterRange      uint64
	threeQuarterRange uint64
	minRange          uint64
	maxTotalBits      uint
	mask              uint64
}

// newAcParams validates precision and derives the constants of
// spec §4.2: full_range, half_range, quarter_range, max_total_bits (the
// smaller of precision-2 and word_bits-precision, so that cdf_bits stays
// admissible for both the interval math and the word width), and mask.
func newAcParams(precision uint) (acParams, error) {
	if precision < 2 || precision > yaecl.WordBits {
		return acParams{}, fmt.Errorf("%w: AC precision %d (must be in [2..%d])", yaecl.ErrParameterOutOfRange, precision, yaecl.WordBits)
	}

	p := acParams{precision: precision}
	p.fullRange = uint64(1) << precision
	p.halfRange = p.fullRange >> 1
	p.quarterRange = p.halfRange >> 1
	p.threeQuarterRange = 3 * p.quarterRange
	p.minRange = p.quarterRange + 2

	freqBits := yaecl.WordBits - precision

	if precision-2 < freqBits {
		freqBits = precision - 2
	}

	p.maxTotalBits = freqBits
	p.mask = p.fullRange - 1
	return p, nil
}

func checkRange(rng, minRange, fullRange uint64) {
	if rng < minRange || rng > fullRange {
		panic(fmt.Errorf("%w: range %d outside [%d,%d]", yaecl.ErrIntervalCollapse, rng, minRange, fullRange))
	}
}
