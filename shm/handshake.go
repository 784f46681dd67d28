// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shm

import (
	"unsafe"

	"code.hybscloud.com/spin"

	"code.hybscloud.com/shmq/internal/mem"
)

// HandshakeSize is the shared footprint of a Handshake: four 64-byte
// lines (producer-ready, consumer-ready, start, one reserved).
const HandshakeSize = 256

// Handshake coordinates startup of a two-process queue deployment through
// shared memory, with the same cache-bypass discipline as the queue
// itself: flags are raised with an 8-byte non-temporal store and polled
// with a flush-then-load.
//
// Sequence: the producer signals ready and awaits the consumer; the
// consumer signals ready, and the producer then signals start, which both
// sides treat as the barrier before traffic begins.
type Handshake struct {
	producerReady unsafe.Pointer
	consumerReady unsafe.Pointer
	start         unsafe.Pointer
}

// NewHandshake lays a Handshake over HandshakeSize bytes of shared memory
// at the 64-byte-aligned base. With initialize true (first side up) all
// flags are lowered; the peer attaches without mutating. Panics on a
// misaligned base.
func NewHandshake(base unsafe.Pointer, initialize bool) *Handshake {
	if base == nil || uintptr(base)&63 != 0 {
		panic("shm: handshake base must be 64-byte aligned")
	}
	h := &Handshake{
		producerReady: base,
		consumerReady: unsafe.Add(base, 64),
		start:         unsafe.Add(base, 128),
	}
	if initialize {
		mem.StoreUint64(h.producerReady, 0)
		mem.StoreUint64(h.consumerReady, 0)
		mem.StoreUint64(h.start, 0)
	}
	return h
}

// SignalProducerReady raises the producer-ready flag.
func (h *Handshake) SignalProducerReady() {
	mem.StoreUint64(h.producerReady, 1)
}

// SignalConsumerReady raises the consumer-ready flag.
func (h *Handshake) SignalConsumerReady() {
	mem.StoreUint64(h.consumerReady, 1)
}

// SignalStart raises the start flag. Called by the producer once the
// consumer is ready.
func (h *Handshake) SignalStart() {
	mem.StoreUint64(h.start, 1)
}

// AwaitProducerReady spins until the producer-ready flag is raised.
func (h *Handshake) AwaitProducerReady() {
	await(h.producerReady)
}

// AwaitConsumerReady spins until the consumer-ready flag is raised.
func (h *Handshake) AwaitConsumerReady() {
	await(h.consumerReady)
}

// AwaitStart spins until the start flag is raised.
func (h *Handshake) AwaitStart() {
	await(h.start)
}

func await(flag unsafe.Pointer) {
	sw := spin.Wait{}
	for mem.LoadUint64(flag) == 0 {
		sw.Once()
	}
}
