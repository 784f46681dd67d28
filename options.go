// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import "unsafe"

// Options configures queue construction.
type Options struct {
	// Shared memory bases (both 64-byte aligned, required)
	ring     unsafe.Pointer
	tailLine unsafe.Pointer

	// Ring order: capacity is 1<<order
	order int

	// First side up zeroes shared memory and publishes tail=0
	initialize bool

	// Back-off schedule minimums, in CPU-relax steps
	fullWait  uint32
	emptyWait uint32
	tornWait  uint32
}

// Builder creates queues with fluent configuration.
//
// The direct [Attach] constructor covers the common case; the builder adds
// tuning of the back-off schedules.
//
// Example:
//
//	q := shmq.New(14).
//	    Ring(ringBase).
//	    TailLine(tailBase).
//	    Initialize().
//	    ProducerWait(256).
//	    Build()
type Builder struct {
	opts Options
}

// New creates a queue builder for a ring of 1<<order slots.
// Panics if order is outside [MinOrder, MaxOrder].
func New(order int) *Builder {
	if order < MinOrder || order > MaxOrder {
		panic("shmq: order must be in [4, 30]")
	}
	return &Builder{opts: Options{
		order:     order,
		fullWait:  defaultFullWait,
		emptyWait: defaultEmptyWait,
		tornWait:  defaultTornWait,
	}}
}

// Ring sets the 64-byte-aligned base of the entry ring in shared memory.
func (b *Builder) Ring(base unsafe.Pointer) *Builder {
	b.opts.ring = base
	return b
}

// TailLine sets the 64-byte-aligned base of the shared tail cache line.
func (b *Builder) TailLine(base unsafe.Pointer) *Builder {
	b.opts.tailLine = base
	return b
}

// Initialize declares this side the first to wire up: Build zeroes the
// ring and publishes tail=0. The peer in a two-process deployment attaches
// without this.
func (b *Builder) Initialize() *Builder {
	b.opts.initialize = true
	return b
}

// ProducerWait sets the producer-full back-off minimum, in CPU-relax
// steps. Panics if steps is zero or above the schedule ceiling.
func (b *Builder) ProducerWait(steps uint32) *Builder {
	if steps == 0 || steps > maxWaitSteps {
		panic("shmq: back-off minimum must be in [1, 16384]")
	}
	b.opts.fullWait = steps
	return b
}

// ConsumerWait sets the consumer back-off minimums for the empty and
// torn-line schedules, in CPU-relax steps. The two are distinct because an
// empty slot and an in-flight store need different initial waits.
// Panics if either is zero or above the schedule ceiling.
func (b *Builder) ConsumerWait(empty, torn uint32) *Builder {
	if empty == 0 || empty > maxWaitSteps || torn == 0 || torn > maxWaitSteps {
		panic("shmq: back-off minimum must be in [1, 16384]")
	}
	b.opts.emptyWait = empty
	b.opts.tornWait = torn
	return b
}

// Build constructs the queue. Panics on missing or misaligned bases,
// exactly as [Attach] does.
func (b *Builder) Build() *Queue {
	q := Attach(b.opts.ring, b.opts.tailLine, b.opts.order, b.opts.initialize)
	q.full = newBackoff(b.opts.fullWait)
	q.empty = newBackoff(b.opts.emptyWait)
	q.torn = newBackoff(b.opts.tornWait)
	return q
}
