// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shm

import (
	"errors"
	"unsafe"

	"code.hybscloud.com/shmq/internal/mem"
)

// ErrArenaFull indicates the arena cannot satisfy an allocation.
var ErrArenaFull = errors.New("shm: arena exhausted")

// Arena is a bump-pointer allocator over a single shared mapping.
//
// Blocks are never freed individually; Close releases the whole mapping.
// The arena itself is not safe for concurrent allocation: carve up the
// region before handing pointers to the producer and consumer sides.
type Arena struct {
	data  []byte
	off   int
	unmap func([]byte) error
}

// Alloc returns n tightly packed bytes, with no alignment guarantee.
func (a *Arena) Alloc(n int) (unsafe.Pointer, error) {
	return a.AllocAligned(n, 1)
}

// AllocAligned returns n bytes at a boundary of the given alignment,
// which must be a power of two. Returns ErrArenaFull when the remaining
// space cannot satisfy the request.
func (a *Arena) AllocAligned(n, align int) (unsafe.Pointer, error) {
	if n < 0 || align <= 0 || align&(align-1) != 0 {
		panic("shm: bad allocation size or alignment")
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.data)))
	off := a.off
	if rem := int((base + uintptr(off)) & uintptr(align-1)); rem != 0 {
		off += align - rem
	}
	if off+n > len(a.data) {
		return nil, ErrArenaFull
	}
	a.off = off + n
	return unsafe.Pointer(&a.data[off]), nil
}

// MustAllocAligned is AllocAligned that panics on exhaustion, for wiring
// code where a failed allocation is a sizing bug.
func (a *Arena) MustAllocAligned(n, align int) unsafe.Pointer {
	p, err := a.AllocAligned(n, align)
	if err != nil {
		panic("shm: arena exhausted")
	}
	return p
}

// Used returns the number of bytes handed out, including alignment gaps.
func (a *Arena) Used() int {
	return a.off
}

// Remaining returns the bytes still available.
func (a *Arena) Remaining() int {
	return len(a.data) - a.off
}

// Cap returns the total size of the mapping.
func (a *Arena) Cap() int {
	return len(a.data)
}

// TestMemory sanity-checks the mapping: it writes a pattern line to the
// first 64 bytes with a cache-bypassing store, reads it back fresh, and
// restores the previous contents. Reports whether the read-back matched.
func (a *Arena) TestMemory() bool {
	if len(a.data) < 64 || a.off != 0 {
		return false
	}
	base := unsafe.Pointer(unsafe.SliceData(a.data))

	var saved, got [8]uint64
	mem.LoadLine(unsafe.Pointer(&saved), base)

	pattern := [8]uint64{0xa5a5a5a5a5a5a5a5, 1, 2, 3, 4, 5, 6, 0x5a5a5a5a5a5a5a5a}
	mem.StoreLine(base, unsafe.Pointer(&pattern))
	mem.LoadLine(unsafe.Pointer(&got), base)

	mem.StoreLine(base, unsafe.Pointer(&saved))
	return got == pattern
}

// Close releases the mapping. The arena and every pointer handed out from
// it are invalid afterwards.
func (a *Arena) Close() error {
	if a.data == nil {
		return nil
	}
	data := a.data
	a.data = nil
	a.off = 0
	if a.unmap == nil {
		return nil
	}
	return a.unmap(data)
}
