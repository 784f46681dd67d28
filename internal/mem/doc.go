// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mem provides cache-bypassing memory primitives for shared
// regions the CPU cache hierarchy cannot be trusted to keep coherent.
//
// Contract:
//
//   - StoreLine delivers 64 bytes as a single non-temporal burst and
//     fences, so the line is globally visible when the call returns.
//   - StoreUint64 delivers 8 bytes the same way.
//   - LoadLine and LoadUint64 evict any cached copy of the source line
//     (flush + fence) before a plain aligned load, so the bytes returned
//     are the current contents of shared memory, not a stale replica.
//
// Destinations of StoreLine and sources of LoadLine must be 64-byte
// aligned; the local-side buffer may be arbitrarily aligned. StoreUint64
// and LoadUint64 take 8-byte-aligned addresses.
//
// On amd64 these are MOVNTDQ/MOVNTI/CLFLUSH sequences. Other architectures
// fall back to ordered word-wise atomics: no cache bypass, but the same
// observable publication order (the final word of a line, which carries the
// validation bytes, is written last and so never precedes the rest).
package mem
