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

package yaecl

import "errors"

// The errors below classify the contract violations a caller of this
// library can make. None of them is a recoverable runtime condition: a
// misconfigured codec or an inadmissible CDF corrupts the stream rather
// than failing safely, so every one of them (besides
// ErrParameterOutOfRange, which constructors return) surfaces as a panic
// rather than an error value.
var (
	// ErrParameterOutOfRange is returned by a constructor when precision,
	// H or T fall outside their admissible range.
	ErrParameterOutOfRange = errors.New("yaecl: parameter out of range")

	// ErrInadmissibleCDF is raised when a CDF is not power-of-two
	// normalized, an encoded symbol has zero probability, or cdf_bits
	// exceeds the codec's configured limit.
	ErrInadmissibleCDF = errors.New("yaecl: inadmissible CDF")

	// ErrIntervalCollapse is raised by the AC encoder/decoder when the
	// working interval has narrowed below the minimum range guarantee,
	// and by the AC decoder and the rANS decoder when a decoded scaled
	// value falls outside the CDF's total.
	ErrIntervalCollapse = errors.New("yaecl: interval collapse")

	// ErrBitBufferMisuse is raised by byte-aligned BitBuffer operations
	// used off a byte boundary, or by an out-of-range random-access read.
	ErrBitBufferMisuse = errors.New("yaecl: bit buffer misuse")

	// ErrCodecInvariantBreak is raised when a rANS spill or refill fails
	// to restore its governing invariant (state < state_max after spill,
	// state >= h_min after refill).
	ErrCodecInvariantBreak = errors.New("yaecl: codec invariant break")
)
