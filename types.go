// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

// Producer is the enqueue-side interface of the queue.
//
// Exactly one thread may act as producer per queue instance. The entry is
// passed by pointer; Epoch and Checksum are overwritten in place and the
// remaining fields are copied into the shared slot, so the caller may
// reuse the entry after Enqueue returns.
type Producer interface {
	// Enqueue delivers an entry (non-blocking).
	// Returns nil on success, ErrWouldBlock if the ring is full.
	Enqueue(e *Entry) error
}

// Consumer is the dequeue-side interface of the queue.
//
// Exactly one thread may act as consumer per queue instance.
type Consumer interface {
	// Dequeue removes and returns the next entry (non-blocking).
	// Returns (zero Entry, ErrWouldBlock) if nothing is ready and
	// (zero Entry, ErrTornLine) if the current slot failed validation.
	Dequeue() (Entry, error)
}

var (
	_ Producer = (*Queue)(nil)
	_ Consumer = (*Queue)(nil)
)
