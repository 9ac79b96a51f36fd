// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

// DequeSet holds a fixed-size fleet of deques and coordinates stealing and
// emptiness checks across them. The mapping from index to deque is fixed
// for the lifetime of a steal round: deques are registered once, before
// any worker begins running, by the setup thread only.
type DequeSet[E any] struct {
	queues []*Deque[E]
}

// NewDequeSet allocates an empty set sized for n deques. Deques are
// registered into it with Register; RegisterAll instead builds a new set
// together with its deques.
func NewDequeSet[E any](n int) *DequeSet[E] {
	return &DequeSet[E]{queues: make([]*Deque[E], n)}
}

// Register installs d at index i. Single-threaded, pre-run only. Index out
// of range is a programmer error and panics immediately rather than
// corrupting the set.
func (s *DequeSet[E]) Register(i int, d *Deque[E]) {
	if i < 0 || i >= len(s.queues) {
		panic("wsteal: DequeSet.Register: index out of range")
	}
	s.queues[i] = d
}

// RegisterAll builds and registers n fully-initialized deques of the given
// capacity in one call, for the common case where a custom per-deque
// Allocator is not needed. It panics if allocation fails, per Deque.Init's
// own treatment of allocation failure as fatal to the host.
func RegisterAll[E any](n, capacity int) *DequeSet[E] {
	s := NewDequeSet[E](n)
	for i := range n {
		d := NewDeque[E](capacity)
		if err := d.Init(DefaultAllocator[E]{}); err != nil {
			panic(err)
		}
		s.Register(i, d)
	}
	return s
}

// Queue returns the deque registered at index i, or nil if none was.
func (s *DequeSet[E]) Queue(i int) *Deque[E] {
	if i < 0 || i >= len(s.queues) {
		return nil
	}
	return s.queues[i]
}

// Len returns the number of slots in the set (registered or not).
func (s *DequeSet[E]) Len() int {
	return len(s.queues)
}

// Peek reports whether any deque in the set has Peek() true. Not
// linearizable across the whole set; used as an optimistic witness by the
// termination detector and by stealing hosts deciding whether to keep
// trying.
func (s *DequeSet[E]) Peek() bool {
	for _, q := range s.queues {
		if q != nil && q.Peek() {
			return true
		}
	}
	return false
}

// Steal makes up to 2*N best-of-two attempts to steal a task for the
// caller at myIndex, returning true on the first success. It always uses
// best-of-two, regardless of which StealPolicy a host might otherwise
// prefer. Use StealWith to plug in Random1 or BestOfAll instead.
func (s *DequeSet[E]) Steal(myIndex int, seed *Seed) (E, bool) {
	n := len(s.queues)
	for i := 0; i < 2*n; i++ {
		if t, ok := (BestOfTwo[E]{}).Steal(s, myIndex, seed); ok {
			return t, true
		}
	}
	var zero E
	return zero, false
}

// StealWith attempts a single steal using the given policy.
func (s *DequeSet[E]) StealWith(myIndex int, seed *Seed, policy StealPolicy[E]) (E, bool) {
	return policy.Steal(s, myIndex, seed)
}
