// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// The publication protocol lives in the bytes of shared cache lines
// (epoch + whole-line checksum), which the race detector cannot model;
// the concurrent tests skip themselves under the detector.

package shmq_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/shmq"
)

// TestConcurrentFIFO runs a producer and a consumer thread through
// several hundred ring laps and checks every entry arrives exactly
// once, in order, and intact.
func TestConcurrentFIFO(t *testing.T) {
	if shmq.RaceEnabled {
		t.Skip("race detector cannot model the slot publication protocol")
	}

	const order = 8
	const total = 100_000

	ring, tail := region(t, order)
	q := shmq.Attach(ring, tail, order, true)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := uint64(0); i < total; i++ {
			e := shmq.Entry{
				Payload: [7]uint64{i, ^i, i * 3},
				RPCID:   uint16(i),
			}
			for q.Enqueue(&e) != nil {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()

	errCh := make(chan string, 1)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := uint64(0); i < total; i++ {
			var e shmq.Entry
			for {
				var err error
				e, err = q.Dequeue()
				if err == nil {
					break
				}
				backoff.Wait()
			}
			backoff.Reset()
			if e.Payload[0] != i || e.Payload[1] != ^i || e.RPCID != uint16(i) {
				select {
				case errCh <- "out-of-order or corrupt entry":
				default:
				}
				return
			}
		}
	}()

	wg.Wait()
	select {
	case msg := <-errCh:
		t.Fatal(msg)
	default:
	}

	m := q.Metrics()
	if m.EnqueueCalls < total {
		t.Fatalf("EnqueueCalls: got %d, want >= %d", m.EnqueueCalls, total)
	}
	if m.DequeueCalls < total {
		t.Fatalf("DequeueCalls: got %d, want >= %d", m.DequeueCalls, total)
	}
	// 2^8 capacity, flush stride 64: the consumer republished its tail
	// at least total/64 times.
	if m.TailFlushes < total/64 {
		t.Fatalf("TailFlushes: got %d, want >= %d", m.TailFlushes, total/64)
	}
}

// TestConcurrentBurstDrain pushes bursts of one ring's worth of entries
// from the producer while the consumer drains concurrently, to exercise
// the empty and full branches under real interleaving.
func TestConcurrentBurstDrain(t *testing.T) {
	if shmq.RaceEnabled {
		t.Skip("race detector cannot model the slot publication protocol")
	}

	const order = 4
	const bursts = 1_000

	ring, tail := region(t, order)
	q := shmq.Attach(ring, tail, order, true)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		seq := uint64(0)
		for range bursts {
			for range 16 {
				e := shmq.Entry{Payload: [7]uint64{seq}}
				for q.Enqueue(&e) != nil {
					backoff.Wait()
				}
				backoff.Reset()
				seq++
			}
		}
	}()

	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := uint64(0); i < bursts*16; i++ {
			for {
				e, err := q.Dequeue()
				if err == nil {
					if e.Payload[0] != i {
						panic("sequence break")
					}
					break
				}
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()

	wg.Wait()
}
