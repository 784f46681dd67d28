// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package shm

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its OS thread and binds that thread
// to the given CPU. Producer and consumer threads are expected to be
// pinned so the back-off schedules measure fabric latency, not scheduler
// noise.
//
// The goroutine stays locked until it exits; there is no unpin.
func Pin(cpu int) error {
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("shm: pin to cpu %d: %w", cpu, err)
	}
	return nil
}
