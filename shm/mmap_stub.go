// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package shm

import (
	"errors"
	"fmt"
)

// Shared mappings are Linux-only; the constructors exist on other
// platforms so callers can compile and report a clean error at runtime.

// MapFile is unsupported on this platform.
func MapFile(path string, size int) (*Arena, error) {
	return nil, fmt.Errorf("shm: file mapping: %w", errors.ErrUnsupported)
}

// MapDAX is unsupported on this platform.
func MapDAX(path string, size int) (*Arena, error) {
	return nil, fmt.Errorf("shm: DAX mapping: %w", errors.ErrUnsupported)
}

// MapAnon is unsupported on this platform.
func MapAnon(size int) (*Arena, error) {
	return nil, fmt.Errorf("shm: anonymous mapping: %w", errors.ErrUnsupported)
}
