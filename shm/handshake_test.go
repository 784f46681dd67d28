// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package shm_test

import (
	"testing"
	"unsafe"

	"code.hybscloud.com/shmq/shm"
)

func TestHandshakeSequence(t *testing.T) {
	arena, err := shm.MapAnon(4096)
	if err != nil {
		t.Fatalf("MapAnon: %v", err)
	}
	defer arena.Close()

	base := arena.MustAllocAligned(shm.HandshakeSize, 64)
	producer := shm.NewHandshake(base, true)
	consumer := shm.NewHandshake(base, false)

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.AwaitProducerReady()
		consumer.SignalConsumerReady()
		consumer.AwaitStart()
	}()

	producer.SignalProducerReady()
	producer.AwaitConsumerReady()
	producer.SignalStart()

	<-done
}

func TestHandshakeValidation(t *testing.T) {
	arena, err := shm.MapAnon(4096)
	if err != nil {
		t.Fatalf("MapAnon: %v", err)
	}
	defer arena.Close()

	mustPanicShm(t, "nil base", func() { shm.NewHandshake(nil, true) })

	base := arena.MustAllocAligned(shm.HandshakeSize+8, 64)
	mustPanicShm(t, "misaligned base", func() {
		shm.NewHandshake(unsafe.Add(base, 8), true)
	})
}
