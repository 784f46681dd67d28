// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the ring is full even after refreshing the shadow tail
// from shared memory (backpressure).
// For Dequeue: the current slot's epoch does not match the awaited lap,
// i.e. nothing new has been produced.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry later (the queue has already charged one internal back-off pause
// to the failing side).
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrTornLine indicates the consumer observed a slot whose epoch matched
// but whose 64 bytes do not fold to zero. The usual cause is a store still
// in flight across the shared bus; the consumer does not advance and the
// next Dequeue re-reads the same slot.
//
// ErrTornLine wraps ErrWouldBlock: a torn line is retryable and
// [IsWouldBlock] reports true for it. Callers that care about the
// distinction test with errors.Is(err, shmq.ErrTornLine).
//
// A line that never folds to zero indicates hardware fault; detection and
// recovery are the caller's responsibility.
var ErrTornLine = fmt.Errorf("shmq: torn line: %w", iox.ErrWouldBlock)

// IsWouldBlock reports whether err indicates the operation would block.
// True for both ErrWouldBlock and ErrTornLine.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
