// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shm supplies the shared-memory collaborators around a shmq
// queue: mmap-backed arenas that hand out 64-byte-aligned blocks, the
// four-flag startup handshake for two-process deployments, and CPU
// pinning.
//
// An Arena is a bump-pointer allocator over one shared mapping. It never
// frees individual blocks; the mapping is released as a whole by Close.
// Backends:
//
//	MapFile(path, size)  - file-backed MAP_SHARED (devdax exposed as a
//	                       file, tmpfs, or any shared filesystem)
//	MapDAX(path, size)   - MAP_SYNC|MAP_SHARED_VALIDATE for regions in a
//	                       persistence domain (/dev/dax*, fsdax files)
//	MapAnon(size)        - anonymous MAP_SHARED for single-host and test
//	                       use (shared across fork)
//
// Typical wiring:
//
//	arena, err := shm.MapFile("/mnt/cxl0/q0", 2<<20)
//	ring, _ := arena.AllocAligned(capacity*64, 64)
//	tail, _ := arena.AllocAligned(64, 64)
//	hs := shm.NewHandshake(arena.MustAllocAligned(shm.HandshakeSize, 64), firstUp)
//
// Mapping constructors are Linux-only; on other platforms they return an
// unsupported error. There is no NUMA-bound allocation backend: place the
// process with numactl and use MapAnon or MapFile instead.
package shm
