// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

// Allocator provides the element buffer backing a Deque[E].
//
// Construction and allocation are deliberately separate operations (see
// NewDeque and Deque.Init) so a deque can be registered into a DequeSet
// before the host's allocator is known to be available.
type Allocator[E any] interface {
	// Alloc returns a slice of length n, zero-valued, non-moving for the
	// lifetime of the deque. An error here is fatal to the caller — see
	// Deque.Init.
	Alloc(n int) ([]E, error)
}

// DefaultAllocator backs a Deque[E] with a plain make([]E, n). It never
// fails; it exists so hosts with a real failure-prone allocator (arena,
// huge-page-backed, pooled) have an interface to satisfy instead of a
// concrete type to special-case.
type DefaultAllocator[E any] struct{}

// Alloc implements Allocator[E].
func (DefaultAllocator[E]) Alloc(n int) ([]E, error) {
	return make([]E, n), nil
}
