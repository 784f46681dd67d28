// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64

package mem

import (
	"sync/atomic"
	"unsafe"
)

// Portable fallback: ordered word-wise atomics instead of non-temporal
// bursts. There is no cache bypass here: suitable for coherent hosts
// (tests, same-machine deployments), not for CXL or remote-NUMA fabrics.

// StoreLine copies the 64 bytes at src to the 64-byte-aligned dst, final
// word last. The last word carries a line's validation bytes, so an
// observer that sees it also sees the preceding words.
func StoreLine(dst, src unsafe.Pointer) {
	d := (*[8]uint64)(dst)
	s := (*[8]uint64)(src)
	for i := 0; i < 7; i++ {
		atomic.StoreUint64(&d[i], s[i])
	}
	atomic.StoreUint64(&d[7], s[7])
}

// LoadLine copies the current 64 bytes at the 64-byte-aligned src into
// dst, final word last to mirror StoreLine's publication order.
func LoadLine(dst, src unsafe.Pointer) {
	d := (*[8]uint64)(dst)
	s := (*[8]uint64)(src)
	for i := 0; i < 7; i++ {
		d[i] = atomic.LoadUint64(&s[i])
	}
	d[7] = atomic.LoadUint64(&s[7])
}

// StoreUint64 writes v to the 8-byte-aligned dst.
func StoreUint64(dst unsafe.Pointer, v uint64) {
	atomic.StoreUint64((*uint64)(dst), v)
}

// LoadUint64 returns the current 8 bytes at the 8-byte-aligned src.
func LoadUint64(src unsafe.Pointer) uint64 {
	return atomic.LoadUint64((*uint64)(src))
}
