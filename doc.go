// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shmq provides a single-producer single-consumer FIFO queue of
// fixed 64-byte entries over non-coherent shared memory.
//
// The queue is built for memory that two sides reach without a reliable
// cache-coherence protocol between them: a CXL-attached memory slice, a
// DAX-mapped persistent region, or a remote NUMA node shared by two
// machines. Every access to shared memory goes through cache-bypassing
// primitives: a non-temporal 64-byte store on the write side, a
// flush-then-load sequence on the read side, so neither side ever trusts
// a locally cached copy of a line the other side owns.
//
// # Protocol
//
// A slot becomes consumable through the bytes of the slot itself; there is
// no side-channel flag and no shared head index. Each 64-byte entry carries
// an epoch byte derived from the slot's lap around the ring and a 16-bit
// whole-line XOR checksum chosen so that a valid line folds to zero. The
// consumer accepts a slot only when both predicates hold: the epoch matches
// the lap it is waiting for, and the line folds to zero. A stale line from
// the previous lap fails the epoch check; a torn delivery of an in-flight
// store fails the fold.
//
// Back-pressure flows the other way through a single shared cache line: the
// consumer republishes its tail position every capacity/4 dequeues with an
// 8-byte cache-bypassing store, and the producer refreshes its shadow copy
// of that line only when the ring looks full. The published tail may lag
// reality by up to one flush interval; that can only cause spurious full
// returns, never an overwrite.
//
// # Basic Usage
//
// Both operations are non-blocking and return promptly; the caller owns the
// waiting policy:
//
//	q := shmq.Attach(ringBase, tailBase, 14, true)
//
//	// Producer side
//	e := shmq.Entry{RPCID: 42}
//	if err := q.Enqueue(&e); shmq.IsWouldBlock(err) {
//	    // ring full - back off or drop
//	}
//
//	// Consumer side
//	e, err := q.Dequeue()
//	if err == nil {
//	    process(&e)
//	}
//
// Each side also applies an internal exponential back-off on its failing
// branch (full for the producer; empty and torn-line for the consumer, with
// separate schedules because they signal different root causes).
//
// # Two-Process Deployment
//
// The ring and the tail line are borrowed: an external allocator owns them.
// The [code.hybscloud.com/shmq/shm] package supplies mmap-backed arenas,
// the four-flag startup handshake, and CPU pinning:
//
//	arena, err := shm.MapFile("/mnt/cxl0/ring", 4<<20)
//	ring, _ := arena.AllocAligned(16384*64, 64)
//	tail, _ := arena.AllocAligned(64, 64)
//
//	// First side up initializes; the peer attaches.
//	q := shmq.Attach(ring, tail, 14, firstUp)
//
// Exactly one process may act as producer and one as consumer per queue.
// Violating that contract causes data corruption; there is no runtime
// detection.
//
// # Error Handling
//
// Non-success outcomes are control-flow signals, not failures:
//
//	shmq.ErrWouldBlock  - ring full (Enqueue) or slot not ready (Dequeue)
//	shmq.ErrTornLine    - slot bytes do not fold to zero; a store is
//	                      presumed in flight. Wraps ErrWouldBlock.
//
// Both satisfy [IsWouldBlock]; classification delegates to
// [code.hybscloud.com/iox] for ecosystem consistency. Construction-time
// misuse (misaligned bases, out-of-range order) panics.
//
// # Race Detection
//
// The publication protocol lives in the bytes of shared lines, not in Go
// synchronization primitives, so the race detector cannot observe the
// happens-before edges it establishes. Concurrent tests skip themselves
// when [RaceEnabled] is true; single-threaded tests run everywhere.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package shmq
