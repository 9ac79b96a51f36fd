// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

import "code.hybscloud.com/atomix"

// age is the packed (top, tag) word a deque's owner and thieves race on.
//
// top occupies bits [0:16), tag occupies bits [16:32). The pair is always
// read and written as a single 32-bit unit so a thief's compare-and-swap
// can never observe a torn (top, tag). The word lives in the low 32 bits
// of an atomix.Uint64 — no Uint32 atomic is used anywhere in this module's
// dependency stack, so the wider type carries the narrower word.
type age struct {
	word atomix.Uint64
}

func packAge(top, tag uint16) uint64 {
	return uint64(top) | uint64(tag)<<16
}

func unpackAge(w uint64) (top, tag uint16) {
	return uint16(w), uint16(w >> 16)
}

func (a *age) load() (top, tag uint16) {
	return unpackAge(a.word.LoadAcquire())
}

func (a *age) loadRelaxed() (top, tag uint16) {
	return unpackAge(a.word.LoadRelaxed())
}

func (a *age) store(top, tag uint16) {
	a.word.StoreRelease(packAge(top, tag))
}

// compareAndSwap attempts to install (newTop, newTag) iff the current word
// still matches (oldTop, oldTag). Reports whether it won.
func (a *age) compareAndSwap(oldTop, oldTag, newTop, newTag uint16) bool {
	return a.word.CompareAndSwapAcqRel(packAge(oldTop, oldTag), packAge(newTop, newTag))
}

// fullFence orders a bottom publication before a subsequent age reload.
// atomix exposes no bare fence primitive; a zero-delta acquire-release
// round trip on the same word gives pop_local's fast path the ordering
// it needs without introducing a second kind of atomic.
func (a *age) fullFence() {
	a.word.AddAcqRel(0)
}
