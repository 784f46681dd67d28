// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package shm

import (
	"errors"
	"fmt"
)

// Pin is unsupported on this platform.
func Pin(cpu int) error {
	return fmt.Errorf("shm: cpu pinning: %w", errors.ErrUnsupported)
}
