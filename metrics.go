// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"fmt"
	"strings"

	"code.hybscloud.com/atomix"
	"github.com/sugawarayuuta/sonnet"
)

// metrics is the per-queue, process-local counter block. Counters are
// best-effort: each is updated only by the side that owns the event, with
// an atomic add, and is not visible to the remote side.
type metrics struct {
	enqueueCalls    atomix.Uint64
	dequeueCalls    atomix.Uint64
	sharedTailReads atomix.Uint64
	queueFull       atomix.Uint64
	emptyPolls      atomix.Uint64
	tornLines       atomix.Uint64
	tailFlushes     atomix.Uint64

	producerBackoffEvents atomix.Uint64
	producerBackoffSteps  atomix.Uint64
	consumerBackoffEvents atomix.Uint64
	consumerBackoffSteps  atomix.Uint64
}

// Snapshot is a point-in-time copy of a queue's counters.
//
// Because counters are read one at a time with relaxed loads while two
// threads update them, a snapshot taken while both sides are running is
// approximate; snapshots
// taken after the sides quiesce are exact.
type Snapshot struct {
	EnqueueCalls    uint64 `json:"enqueue_calls"`
	DequeueCalls    uint64 `json:"dequeue_calls"`
	SharedTailReads uint64 `json:"shared_tail_reads"`
	QueueFull       uint64 `json:"queue_full"`
	EmptyPolls      uint64 `json:"empty_polls"`
	TornLines       uint64 `json:"torn_lines"`
	TailFlushes     uint64 `json:"tail_flushes"`

	ProducerBackoffEvents uint64 `json:"producer_backoff_events"`
	ProducerBackoffSteps  uint64 `json:"producer_backoff_steps"`
	ConsumerBackoffEvents uint64 `json:"consumer_backoff_events"`
	ConsumerBackoffSteps  uint64 `json:"consumer_backoff_steps"`
}

// Metrics returns a snapshot of the queue's counters.
func (q *Queue) Metrics() Snapshot {
	return Snapshot{
		EnqueueCalls:    q.metrics.enqueueCalls.LoadRelaxed(),
		DequeueCalls:    q.metrics.dequeueCalls.LoadRelaxed(),
		SharedTailReads: q.metrics.sharedTailReads.LoadRelaxed(),
		QueueFull:       q.metrics.queueFull.LoadRelaxed(),
		EmptyPolls:      q.metrics.emptyPolls.LoadRelaxed(),
		TornLines:       q.metrics.tornLines.LoadRelaxed(),
		TailFlushes:     q.metrics.tailFlushes.LoadRelaxed(),

		ProducerBackoffEvents: q.metrics.producerBackoffEvents.LoadRelaxed(),
		ProducerBackoffSteps:  q.metrics.producerBackoffSteps.LoadRelaxed(),
		ConsumerBackoffEvents: q.metrics.consumerBackoffEvents.LoadRelaxed(),
		ConsumerBackoffSteps:  q.metrics.consumerBackoffSteps.LoadRelaxed(),
	}
}

// String renders the snapshot as a fixed-width table, one counter per line.
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Enqueue calls        : %d\n", s.EnqueueCalls)
	fmt.Fprintf(&b, "Dequeue calls        : %d\n", s.DequeueCalls)
	fmt.Fprintf(&b, "Shared-tail reads    : %d\n", s.SharedTailReads)
	fmt.Fprintf(&b, "Queue-full events    : %d\n", s.QueueFull)
	fmt.Fprintf(&b, "Empty polls          : %d\n", s.EmptyPolls)
	fmt.Fprintf(&b, "Torn lines           : %d\n", s.TornLines)
	fmt.Fprintf(&b, "Tail flushes         : %d\n", s.TailFlushes)
	fmt.Fprintf(&b, "Producer back-offs   : %d (%d steps)\n", s.ProducerBackoffEvents, s.ProducerBackoffSteps)
	fmt.Fprintf(&b, "Consumer back-offs   : %d (%d steps)\n", s.ConsumerBackoffEvents, s.ConsumerBackoffSteps)
	return b.String()
}

// JSON encodes the snapshot for log shipping or test harnesses.
func (s Snapshot) JSON() ([]byte, error) {
	return sonnet.Marshal(s)
}
