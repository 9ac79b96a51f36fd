// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

// Overflow pairs a bounded Deque with an unbounded, owner-private LIFO
// spillover stack for bursty producers. Only the deque half is visible to
// thieves: work placed in overflow is not redistributable by stealing
// until the owner drains it back into the deque (or the overflow itself).
type Overflow[E any] struct {
	deque    *Deque[E]
	overflow []E
}

// NewOverflow allocates the Overflow struct and its backing Deque without
// allocating the deque's element buffer. Call Init before using it, mirroring
// Deque's own construction/allocation split (see Deque.Init) so an Overflow
// can be registered with a DequeSet before the host's allocator is known to
// be available.
func NewOverflow[E any](capacity int) *Overflow[E] {
	return &Overflow[E]{deque: NewDeque[E](capacity)}
}

// Init allocates the backing deque's element buffer through alloc. Safe to
// call exactly once, before the deque is registered with any DequeSet or
// handed to any thief. Returns ErrAllocation if alloc fails.
func (o *Overflow[E]) Init(alloc Allocator[E]) error {
	return o.deque.Init(alloc)
}

// Deque returns the stealable half, for registering with a DequeSet.
func (o *Overflow[E]) Deque() *Deque[E] {
	return o.deque
}

// Save pushes t onto the deque; if the deque is full, it spills onto the
// owner-private overflow stack instead. Owner-only.
func (o *Overflow[E]) Save(t E) {
	if o.deque.Push(t) {
		return
	}
	o.overflow = append(o.overflow, t)
}

// Retrieve pops from the overflow stack first, then from the deque.
// Owner-only.
func (o *Overflow[E]) Retrieve() (E, bool) {
	if t, ok := o.RetrieveFromOverflow(); ok {
		return t, true
	}
	return o.RetrieveFromStealableQueue()
}

// RetrieveErr is Retrieve with the iox error vocabulary instead of a
// bool, for hosts that have already standardized on it elsewhere.
func (o *Overflow[E]) RetrieveErr() (E, error) {
	t, ok := o.Retrieve()
	if !ok {
		return t, ErrEmpty
	}
	return t, nil
}

// RetrieveFromStealableQueue pops from the deque only, bypassing
// overflow. Owner-only.
func (o *Overflow[E]) RetrieveFromStealableQueue() (E, bool) {
	return o.deque.PopLocal()
}

// RetrieveFromOverflow pops from the overflow stack only. Owner-only.
func (o *Overflow[E]) RetrieveFromOverflow() (t E, ok bool) {
	n := len(o.overflow)
	if n == 0 {
		return t, false
	}
	t = o.overflow[n-1]
	var zero E
	o.overflow[n-1] = zero // avoid retaining a stale reference past truncation
	o.overflow = o.overflow[:n-1]
	return t, true
}

// StealableIsEmpty reports whether the deque half is empty.
func (o *Overflow[E]) StealableIsEmpty() bool {
	return !o.deque.Peek()
}

// OverflowIsEmpty reports whether the overflow stack is empty.
func (o *Overflow[E]) OverflowIsEmpty() bool {
	return len(o.overflow) == 0
}

// IsEmpty reports whether both halves are empty.
func (o *Overflow[E]) IsEmpty() bool {
	return o.StealableIsEmpty() && o.OverflowIsEmpty()
}

// StealableSize returns the deque half's approximate size.
func (o *Overflow[E]) StealableSize() uint32 {
	return o.deque.Size()
}
