// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import "unsafe"

// EntrySize is the wire size of an Entry in bytes: exactly one cache line.
const EntrySize = 64

// Entry is the fixed 64-byte message record carried by the queue.
//
// The byte layout is bit-exact for cross-process use on little-endian
// 64-bit platforms: seven 8-byte payload words followed by
// (epoch:1)(method:1)(rpc id:2)(seal index:2)(checksum:2), no padding.
// The checksum occupies the last two bytes of the line, so an observer
// that sees a valid checksum has necessarily been delivered every
// earlier byte of the same burst.
//
// Payload, Method, RPCID and SealIndex are caller-owned and opaque to the
// queue. Epoch and Checksum are overwritten by Enqueue; callers never need
// to set them, but external tooling can set Epoch directly and the
// checksum via Seal.
type Entry struct {
	Payload   [7]uint64 // 56 bytes of user data
	Epoch     uint8     // slot-generation tag, owned by the queue
	Method    uint8     // opaque tag
	RPCID     uint16    // opaque correlation id
	SealIndex int16     // opaque
	Checksum  uint16    // whole-line XOR fold, owned by the queue
}

// Entry must stay exactly one cache line; a field change that alters the
// size fails to compile here.
var _ = [1]struct{}{}[unsafe.Sizeof(Entry{})-EntrySize]

// xorFold folds all 64 bytes of the entry as eight 64-bit words XORed
// together, collapsed to 16 bits. A sealed entry folds to zero.
func xorFold(e *Entry) uint16 {
	w := (*[8]uint64)(unsafe.Pointer(e))
	acc := w[0] ^ w[1] ^ w[2] ^ w[3] ^ w[4] ^ w[5] ^ w[6] ^ w[7]
	acc ^= acc >> 32
	acc ^= acc >> 16
	return uint16(acc)
}

// Seal computes and stores the whole-line checksum. The checksum field is
// zeroed first, so the stored value makes the full 64-byte fold equal zero.
//
// Enqueue seals entries itself; Seal is exported for tooling that writes
// or validates lines out-of-band.
func (e *Entry) Seal() {
	e.Checksum = 0
	e.Checksum = xorFold(e)
}

// Verify reports whether the entry's 64 bytes fold to zero, i.e. the line
// was sealed and delivered intact. A single flipped bit or a torn delivery
// is caught with probability 1 - 2^-16; this is not a cryptographic
// integrity guarantee.
func (e *Entry) Verify() bool {
	return xorFold(e) == 0
}

// expectedEpoch returns the generation tag a freshly produced entry at the
// given slot position must carry. The +1 keeps the first lap distinct from
// zeroed startup memory.
func expectedEpoch(slot, order uint64) uint8 {
	return uint8(slot>>order) + 1
}
