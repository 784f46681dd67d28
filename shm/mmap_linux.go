// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package shm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MapFile maps size bytes of the file at path as a shared arena, creating
// and growing the file as needed. Both sides of a queue map the same path
// to reach the same physical memory.
func MapFile(path string, size int) (*Arena, error) {
	if size <= 0 {
		panic("shm: mapping size must be positive")
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("shm: open %s: %w", path, err)
	}
	defer f.Close()

	if err := f.Truncate(int64(size)); err != nil {
		return nil, fmt.Errorf("shm: size %s: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		return nil, fmt.Errorf("shm: mmap %s: %w", path, err)
	}
	return &Arena{data: data, unmap: unix.Munmap}, nil
}

// MapDAX maps size bytes of an existing DAX-capable file or device at
// path with MAP_SYNC, so stores reach the persistence domain without a
// separate flush path. Fails on filesystems without DAX support.
func MapDAX(path string, size int) (*Arena, error) {
	if size <= 0 {
		panic("shm: mapping size must be positive")
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := unix.Mmap(int(f.Fd()), 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED_VALIDATE|unix.MAP_SYNC)
	if err != nil {
		return nil, fmt.Errorf("shm: mmap (MAP_SYNC) %s: %w", path, err)
	}
	return &Arena{data: data, unmap: unix.Munmap}, nil
}

// MapAnon maps size bytes of anonymous shared memory. The mapping is
// shared across fork, which covers single-host two-process setups and
// tests; unrelated processes need MapFile.
func MapAnon(size int) (*Arena, error) {
	if size <= 0 {
		panic("shm: mapping size must be positive")
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("shm: anonymous mmap: %w", err)
	}
	return &Arena{data: data, unmap: unix.Munmap}, nil
}
