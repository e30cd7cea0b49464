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

// Package yaecl defines the shared vocabulary used by the bitbuffer and
// entropy sub-packages: the contract-violation sentinel errors and the
// word-width / default-parameter constants that both an arithmetic coder
// and a rANS codec need to agree on.
//
// Concrete implementations live in sub-packages:
//   - bitbuffer holds the dual-cursor bit buffer shared by both codecs.
//   - entropy holds AcEncoder, AcDecoder and RansCodec.
package yaecl

// WordBits is the width, in bits, of the internal unsigned integer used
// for all AC interval and rANS state arithmetic.
const WordBits = 64

// Default parameters for a canonical binding, per the external interface
// contract: 32-bit precision arithmetic coding, 64/32-bit head/tail rANS.
const (
	DefaultAcPrecision  = 32
	DefaultRansHeadBits = 64
	DefaultRansTailBits = 32
)
