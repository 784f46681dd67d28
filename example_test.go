// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq_test

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/shmq"
)

// alignedRegion carves 64-byte-aligned ring and tail-line bases out of an
// ordinary heap buffer. Real deployments take these from a shared mapping
// (see the shm package); the queue only cares about alignment.
func alignedRegion(order int) (ring, tail unsafe.Pointer) {
	ringBytes := (1 << order) * shmq.EntrySize
	buf := make([]byte, ringBytes+shmq.EntrySize+63)
	p := unsafe.Pointer(unsafe.SliceData(buf))
	if off := uintptr(p) % 64; off != 0 {
		p = unsafe.Add(p, 64-off)
	}
	return p, unsafe.Add(p, ringBytes)
}

// ExampleAttach demonstrates a round trip through an order-4 queue.
func ExampleAttach() {
	ring, tail := alignedRegion(4)
	q := shmq.Attach(ring, tail, 4, true)

	e := shmq.Entry{RPCID: 42, Payload: [7]uint64{7}}
	if err := q.Enqueue(&e); err != nil {
		fmt.Println("full")
	}

	out, err := q.Dequeue()
	if err != nil {
		fmt.Println("not ready")
	}
	fmt.Println(out.RPCID, out.Payload[0], out.Epoch)

	// Output:
	// 42 7 1
}

// ExampleNew demonstrates the builder with tuned back-off schedules.
func ExampleNew() {
	ring, tail := alignedRegion(5)

	q := shmq.New(5).
		Ring(ring).
		TailLine(tail).
		Initialize().
		ProducerWait(256).
		ConsumerWait(32, 64).
		Build()

	fmt.Println("capacity:", q.Cap())

	// Output:
	// capacity: 32
}

// ExampleQueue_Metrics demonstrates the counter snapshot.
func ExampleQueue_Metrics() {
	ring, tail := alignedRegion(4)
	q := shmq.Attach(ring, tail, 4, true)

	e := shmq.Entry{}
	q.Enqueue(&e)
	q.Dequeue()
	q.Dequeue() // empty poll

	m := q.Metrics()
	fmt.Println(m.EnqueueCalls, m.DequeueCalls, m.EmptyPolls)

	// Output:
	// 1 2 1
}
