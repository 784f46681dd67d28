// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/shmq/internal/mem"
)

// alignedLine returns a 64-byte-aligned view into a fresh buffer.
func alignedLine(t *testing.T) *[8]uint64 {
	t.Helper()
	buf := make([]byte, 128)
	p := unsafe.Pointer(unsafe.SliceData(buf))
	off := (64 - uintptr(p)%64) % 64
	return (*[8]uint64)(unsafe.Add(p, off))
}

func TestStoreLoadLineRoundTrip(t *testing.T) {
	shared := alignedLine(t)

	src := [8]uint64{0x0102030405060708, 2, 3, 4, 5, 6, 7, 0xfffefdfcfbfaf9f8}
	mem.StoreLine(unsafe.Pointer(shared), unsafe.Pointer(&src))

	var dst [8]uint64
	mem.LoadLine(unsafe.Pointer(&dst), unsafe.Pointer(shared))

	if dst != src {
		t.Fatalf("LoadLine: got %x, want %x", dst, src)
	}
}

func TestStoreLineOverwrites(t *testing.T) {
	shared := alignedLine(t)

	first := [8]uint64{1, 1, 1, 1, 1, 1, 1, 1}
	second := [8]uint64{2, 2, 2, 2, 2, 2, 2, 2}
	mem.StoreLine(unsafe.Pointer(shared), unsafe.Pointer(&first))
	mem.StoreLine(unsafe.Pointer(shared), unsafe.Pointer(&second))

	var dst [8]uint64
	mem.LoadLine(unsafe.Pointer(&dst), unsafe.Pointer(shared))
	if dst != second {
		t.Fatalf("LoadLine after overwrite: got %x, want %x", dst, second)
	}
}

func TestStoreLoadUint64(t *testing.T) {
	shared := alignedLine(t)

	for _, v := range []uint64{0, 1, 0xdeadbeef, ^uint64(0)} {
		mem.StoreUint64(unsafe.Pointer(shared), v)
		if got := mem.LoadUint64(unsafe.Pointer(shared)); got != v {
			t.Fatalf("LoadUint64: got %#x, want %#x", got, v)
		}
	}

	// The 8-byte store must not disturb the rest of the line.
	line := [8]uint64{0, 11, 22, 33, 44, 55, 66, 77}
	mem.StoreLine(unsafe.Pointer(shared), unsafe.Pointer(&line))
	mem.StoreUint64(unsafe.Pointer(shared), 99)

	var dst [8]uint64
	mem.LoadLine(unsafe.Pointer(&dst), unsafe.Pointer(shared))
	want := [8]uint64{99, 11, 22, 33, 44, 55, 66, 77}
	if dst != want {
		t.Fatalf("line after StoreUint64: got %v, want %v", dst, want)
	}
}

func TestLoadLineUnalignedDestination(t *testing.T) {
	shared := alignedLine(t)

	src := [8]uint64{7, 6, 5, 4, 3, 2, 1, 0}
	mem.StoreLine(unsafe.Pointer(shared), unsafe.Pointer(&src))

	// Destination deliberately off 64-byte alignment (8-byte only).
	buf := make([]uint64, 9)
	dst := unsafe.Pointer(&buf[1])
	mem.LoadLine(dst, unsafe.Pointer(shared))
	got := *(*[8]uint64)(dst)
	if got != src {
		t.Fatalf("LoadLine to unaligned dst: got %v, want %v", got, src)
	}
}
