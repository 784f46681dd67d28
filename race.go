// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package shmq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent producer/consumer runs: the publication
// protocol lives in the bytes of shared cache lines (epoch + whole-line
// checksum), which the detector cannot model and reports as races.
const RaceEnabled = true
