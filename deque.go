// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

import (
	"errors"

	"code.hybscloud.com/atomix"
)

// DefaultCapacity is a ready-made deque capacity of 2^14 slots for callers
// to pass to NewDeque, NewOverflow or RegisterAll; no constructor applies
// it implicitly.
const DefaultCapacity = 1 << 14

// ErrAllocation reports that a Deque's element buffer could not be
// allocated. Allocation failure is reported synchronously at Init and is
// treated as fatal by the host.
var ErrAllocation = errors.New("wsteal: deque buffer allocation failed")

// Deque is a bounded, single-owner, multi-thief lock-free deque.
//
// The owner goroutine is the only goroutine permitted to call Push and
// PopLocal. Any goroutine, including the owner, may call PopGlobal. Deque
// is safe for that access pattern without any additional locking.
//
// Capacity is a power of two fixed at construction; effective capacity is
// N-2 (one slot reserved to disambiguate full from empty, one more to
// tolerate the PopLocal/PopGlobal race window — see Size).
//
// All operations are total: they report success or failure as a bool and
// never block or return an error. The sole exception is Init, whose
// allocation failure is reported once, synchronously, before the deque is
// usable.
type Deque[E any] struct {
	_      pad
	bottom atomix.Uint64 // owner-only; first free slot after the last push
	_      pad
	age    age // (top, tag); any goroutine may CAS it
	_      pad
	buf    []E
	n      uint32 // capacity, power of two
	mask   uint32
}

// NewDeque allocates the Deque struct without allocating its element
// buffer. Call Init before using it. Capacity rounds up to the next power
// of two and must be at least 4 (so N-2, the effective capacity, is at
// least 2).
func NewDeque[E any](capacity int) *Deque[E] {
	n := roundToPow2(capacity)
	if n < 4 {
		n = 4
	}
	// top is packed into a 16-bit field of the age word, so it must be
	// able to index the whole buffer: N cannot exceed 2^16.
	if n > 1<<16 {
		n = 1 << 16
	}
	return &Deque[E]{n: uint32(n), mask: uint32(n - 1)}
}

// Init allocates the element buffer through alloc. Safe to call exactly
// once, before the deque is registered with any DequeSet or handed to any
// thief. Returns ErrAllocation if alloc fails.
func (d *Deque[E]) Init(alloc Allocator[E]) error {
	buf, err := alloc.Alloc(int(d.n))
	if err != nil {
		return ErrAllocation
	}
	d.buf = buf
	return nil
}

// Cap returns the deque's effective capacity (N-2 slots usable at once).
func (d *Deque[E]) Cap() int {
	return int(d.n) - 2
}

func (d *Deque[E]) incr(i uint32) uint32 { return (i + 1) & d.mask }
func (d *Deque[E]) decr(i uint32) uint32 { return (i - 1) & d.mask }

// dirtySize returns (bot-top) mod n, without mapping the n-1 transient
// encoding to 0 (see DESIGN.md).
func (d *Deque[E]) dirtySize(bot, top uint32) uint32 {
	return (bot - top) & d.mask
}

// canonSize maps the n-1 "transiently empty" encoding to 0; see Size.
func (d *Deque[E]) canonSize(bot, top uint32) uint32 {
	sz := d.dirtySize(bot, top)
	if sz == d.n-1 {
		return 0
	}
	return sz
}

// DirtySize returns the uncanonicalized size: (bottom-top) mod N. Unlike
// Size, it does not map the N-1 transient encoding to 0. It exists for
// diagnostics; ordinary callers want Size or Peek.
func (d *Deque[E]) DirtySize() uint32 {
	bot := uint32(d.bottom.LoadAcquire())
	top, _ := d.age.load()
	return d.dirtySize(bot, uint32(top))
}

// Size returns an approximate, race-tolerant count of queued elements.
// The snapshot of bottom and top is non-atomic as a pair and may cross a
// race window; callers must treat the result as an estimate.
func (d *Deque[E]) Size() uint32 {
	bot := uint32(d.bottom.LoadAcquire())
	top, _ := d.age.load()
	return d.canonSize(bot, uint32(top))
}

// Peek reports whether Size() is greater than zero. It is an optimistic,
// non-linearizable witness — a true result can go stale immediately.
func (d *Deque[E]) Peek() bool {
	return d.Size() > 0
}

// Push appends t at the owner's end. Returns false iff the deque is full.
// Owner-only.
func (d *Deque[E]) Push(t E) bool {
	bot := uint32(d.bottom.LoadRelaxed())
	top, _ := d.age.loadRelaxed()
	dirty := d.dirtySize(bot, uint32(top))

	if dirty < d.n-2 {
		d.buf[bot] = t
		// Release publication: the element store must happen-before any
		// thief observing the new bottom.
		d.bottom.StoreRelease(uint64(d.incr(bot)))
		return true
	}
	return d.pushSlow(t, dirty, bot)
}

// pushSlow handles the two remaining dirty-size outcomes: the N-1
// transient-empty encoding (actually empty — canonicalize by pushing) and
// N-2 (genuinely full).
func (d *Deque[E]) pushSlow(t E, dirty, bot uint32) bool {
	if dirty != d.n-1 {
		return false
	}
	d.buf[bot] = t
	d.bottom.StoreRelease(uint64(d.incr(bot)))
	return true
}

// PopLocal removes and returns the youngest element (the one Push most
// recently added). Returns false if the deque is empty. Owner-only.
func (d *Deque[E]) PopLocal() (t E, ok bool) {
	bot := uint32(d.bottom.LoadRelaxed())
	oldTop, _ := d.age.loadRelaxed()
	if d.dirtySize(bot, uint32(oldTop)) == 0 {
		return t, false
	}
	newBot := d.decr(bot)
	d.bottom.StoreRelease(uint64(newBot))

	// Full fence: the bottom store above must happen-before the age
	// reload below, so a concurrent thief's CAS cannot observe the old
	// bottom while we observe a stale top.
	d.age.fullFence()

	t = d.buf[newBot]
	top, _ := d.age.load()
	if d.canonSize(newBot, uint32(top)) > 0 {
		return t, true
	}
	return d.popLocalSlow(newBot, t)
}

// popLocalSlow resolves the contested-last-element race: the owner and at
// most one thief are competing for the single remaining slot.
func (d *Deque[E]) popLocalSlow(newBot uint32, t E) (E, bool) {
	oldTop, oldTag := d.age.load()
	newTag := oldTag + 1
	if oldTop == uint16(newBot) {
		if d.age.compareAndSwap(oldTop, oldTag, uint16(newBot), newTag) {
			// We win the last element; queue is canonically empty.
			return t, true
		}
		// A thief won the CAS race; fall through to canonicalize below.
	}
	// Either a thief already advanced top past newBot, or just won the
	// CAS above. Either way the queue is empty now. Canonicalize with a
	// plain store: only the owner ever writes bottom, and by this point
	// top >= newBot, so no live CAS from a losing thief can still apply.
	d.age.store(uint16(newBot), newTag)
	var zero E
	return zero, false
}

// PopGlobal removes and returns the oldest element. Any goroutine may
// call it. Returns false if the deque is empty, or if a concurrent thief
// or the owner won the race for the same element.
func (d *Deque[E]) PopGlobal() (t E, ok bool) {
	oldTop, oldTag := d.age.load()
	bot := uint32(d.bottom.LoadAcquire())
	if d.canonSize(bot, uint32(oldTop)) == 0 {
		return t, false
	}
	// Speculative load before the CAS: a successful CAS implies this
	// value was ours. A losing thief may have read a slot that was since
	// overwritten; it discards the read by returning false.
	t = d.buf[oldTop]

	newTop := d.incr(uint32(oldTop))
	newTag := oldTag
	if newTop == 0 {
		newTag++
	}
	if d.age.compareAndSwap(oldTop, oldTag, uint16(newTop), newTag) {
		return t, true
	}
	var zero E
	return zero, false
}
