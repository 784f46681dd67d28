// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Back-off schedule bounds, in CPU-relax steps. The minimums differ per
// failure reason: a full ring needs the remote consumer to drain, an empty
// slot needs the remote producer to wake, and a torn line usually means a
// store is already in flight and just needs a little longer than an empty
// slot would.
const (
	maxWaitSteps     = 16384
	defaultFullWait  = 128
	defaultEmptyWait = 50
	defaultTornWait  = 100
)

// backoff is a per-side, per-reason exponential wait schedule. It is owned
// by whichever side of the queue triggers it and must never be shared
// across producer and consumer.
type backoff struct {
	minWait     uint32
	currentWait uint32
}

func newBackoff(minWait uint32) backoff {
	return backoff{minWait: minWait, currentWait: minWait}
}

// pause spins for currentWait CPU-relax steps without touching shared
// memory, charges the pause to the owning side's counters, then doubles
// the wait, saturating at maxWaitSteps.
func (b *backoff) pause(events, steps *atomix.Uint64) {
	sw := spin.Wait{}
	for range b.currentWait {
		sw.Once()
	}
	events.AddAcqRel(1)
	steps.AddAcqRel(uint64(b.currentWait))
	b.currentWait = min(b.currentWait*2, maxWaitSteps)
}

// reset restores the schedule to its minimum. Called on every successful
// operation so an isolated stall does not penalize the next one.
func (b *backoff) reset() {
	b.currentWait = b.minWait
}
