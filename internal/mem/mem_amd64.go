// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import "unsafe"

// StoreLine copies the 64 bytes at src to the 64-byte-aligned dst with
// non-temporal stores and fences. The line is globally visible on return.
//
//go:noescape
func StoreLine(dst, src unsafe.Pointer)

// LoadLine evicts dst's source line from the cache (CLFLUSH + SFENCE) and
// copies the fresh 64 bytes at the 64-byte-aligned src into dst.
//
//go:noescape
func LoadLine(dst, src unsafe.Pointer)

// StoreUint64 writes v to the 8-byte-aligned dst with a non-temporal
// store and fences.
//
//go:noescape
func StoreUint64(dst unsafe.Pointer, v uint64)

// LoadUint64 evicts src's line from the cache and returns the fresh
// 8 bytes at the 8-byte-aligned src.
//
//go:noescape
func LoadUint64(src unsafe.Pointer) uint64
