// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"unsafe"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/shmq/internal/mem"
)

// Ring order bounds. Capacity is 1<<order slots of 64 bytes each.
const (
	MinOrder = 4
	MaxOrder = 30
)

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// Queue is a single-producer single-consumer queue of 64-byte entries over
// borrowed, possibly non-coherent shared memory.
//
// The ring and the shared tail line are supplied at construction and owned
// by an external allocator; the queue adds no storage of its own beyond
// local counters. In a two-process deployment each process constructs its
// own Queue over the same memory; one side enqueues, the other dequeues.
//
// The producer exclusively mutates the ring slots and its local head; the
// consumer exclusively mutates its local tail and the shared tail line.
// No datum is written by both sides.
type Queue struct {
	_ pad

	// Producer side.
	head       atomix.Uint64 // slots reserved so far
	shadowTail uint64        // producer's cached view of the consumer tail
	full       backoff
	_          pad

	// Consumer side.
	tail  uint64 // slots consumed so far
	empty backoff
	torn  backoff
	_     pad

	// Immutable after construction.
	ring      unsafe.Pointer // 1<<order slots of EntrySize bytes
	tailLine  unsafe.Pointer // 64-byte line; first 8 bytes hold the tail
	order     uint64
	mask      uint64
	capacity  uint64
	flushMask uint64

	metrics metrics
}

// Attach binds a Queue to a ring of 1<<order entries at ring and a shared
// tail cache line at tailLine. Both bases must be 64-byte aligned addresses
// into shared memory; order must be in [MinOrder, MaxOrder]. Violations are
// programming errors and panic.
//
// With initialize true (the first side to wire up), the ring and tail line
// are zeroed and tail=0 is published, all through cache-bypassing stores so
// the remote side observes a fresh queue without relying on coherence. With
// initialize false the queue attaches without mutating shared memory.
func Attach(ring, tailLine unsafe.Pointer, order int, initialize bool) *Queue {
	if order < MinOrder || order > MaxOrder {
		panic("shmq: order must be in [4, 30]")
	}
	if ring == nil || uintptr(ring)&(EntrySize-1) != 0 {
		panic("shmq: ring base must be 64-byte aligned")
	}
	if tailLine == nil || uintptr(tailLine)&(EntrySize-1) != 0 {
		panic("shmq: tail line base must be 64-byte aligned")
	}

	n := uint64(1) << order
	flushInterval := n / 4
	if flushInterval < 1 {
		flushInterval = 1
	}

	q := &Queue{
		full:      newBackoff(defaultFullWait),
		empty:     newBackoff(defaultEmptyWait),
		torn:      newBackoff(defaultTornWait),
		ring:      ring,
		tailLine:  tailLine,
		order:     uint64(order),
		mask:      n - 1,
		capacity:  n,
		flushMask: flushInterval - 1,
	}

	if initialize {
		var zero Entry
		for i := uint64(0); i < n; i++ {
			mem.StoreLine(q.slot(i), unsafe.Pointer(&zero))
		}
		mem.StoreLine(tailLine, unsafe.Pointer(&zero))
		mem.StoreUint64(tailLine, 0)
	}

	return q
}

// Enqueue reserves the next slot, seals the entry, and delivers it with a
// single 64-byte cache-bypassing store (producer only).
//
// The entry's Payload, Method, RPCID and SealIndex are taken as given;
// Epoch and Checksum are overwritten in place. Returns ErrWouldBlock when
// the ring is full even after refreshing the shadow tail from the shared
// line, after charging one producer back-off pause.
func (q *Queue) Enqueue(e *Entry) error {
	q.metrics.enqueueCalls.AddAcqRel(1)
	slot := q.head.LoadRelaxed()

	if slot-q.shadowTail >= q.capacity {
		// Ring looks full by the shadow view; refresh from the shared
		// tail line before giving up.
		q.shadowTail = mem.LoadUint64(q.tailLine)
		q.metrics.sharedTailReads.AddAcqRel(1)

		if slot-q.shadowTail >= q.capacity {
			q.metrics.queueFull.AddAcqRel(1)
			q.full.pause(&q.metrics.producerBackoffEvents, &q.metrics.producerBackoffSteps)
			return ErrWouldBlock
		}
	}
	q.full.reset()

	e.Epoch = expectedEpoch(slot, q.order)
	e.Seal()

	// One 64-byte non-temporal store; StoreLine fences after it so the
	// burst is globally visible before the reservation advances.
	mem.StoreLine(q.slot(slot), unsafe.Pointer(e))
	q.head.StoreRelease(slot + 1)
	return nil
}

// Dequeue reads the current slot with a cache-bypassing load and validates
// it (consumer only).
//
// Returns ErrWouldBlock when the slot's epoch shows nothing new, and
// ErrTornLine when the epoch matched but the line does not fold to zero
// (a store presumed in flight). Neither failure advances the tail, so the
// same slot is re-read on the next call. Each failure charges one pause on
// its own back-off schedule.
func (q *Queue) Dequeue() (Entry, error) {
	var e Entry
	// Evict any cached copy of the slot, then load: the bytes seen are
	// the current contents of shared memory, not a stale replica.
	mem.LoadLine(unsafe.Pointer(&e), q.slot(q.tail))
	q.metrics.dequeueCalls.AddAcqRel(1)

	if e.Epoch != expectedEpoch(q.tail, q.order) {
		q.metrics.emptyPolls.AddAcqRel(1)
		q.empty.pause(&q.metrics.consumerBackoffEvents, &q.metrics.consumerBackoffSteps)
		return Entry{}, ErrWouldBlock
	}

	if !e.Verify() {
		q.metrics.tornLines.AddAcqRel(1)
		q.torn.pause(&q.metrics.consumerBackoffEvents, &q.metrics.consumerBackoffSteps)
		return Entry{}, ErrTornLine
	}

	q.empty.reset()
	q.torn.reset()
	q.tail++

	// Republish progress every capacity/4 dequeues. The producer may see
	// a tail up to one flush interval old, which only costs it headroom.
	if q.tail&q.flushMask == 0 {
		mem.StoreUint64(q.tailLine, q.tail)
		q.metrics.tailFlushes.AddAcqRel(1)
	}

	return e, nil
}

// Cap returns the queue capacity in slots.
func (q *Queue) Cap() int {
	return int(q.capacity)
}

// Order returns the ring order (capacity is 1<<order).
func (q *Queue) Order() int {
	return int(q.order)
}

// slot returns the address of the i'th ring slot.
func (q *Queue) slot(i uint64) unsafe.Pointer {
	return unsafe.Add(q.ring, uintptr(i&q.mask)*EntrySize)
}
