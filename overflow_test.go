// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal_test

import (
	"testing"

	"github.com/quartzgc/wsteal"
)

func newIntOverflow(t *testing.T, capacity int) *wsteal.Overflow[int] {
	t.Helper()
	o := wsteal.NewOverflow[int](capacity)
	if err := o.Init(wsteal.DefaultAllocator[int]{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return o
}

// TestOverflowSpillsWhenDequeFull verifies Save falls back to the overflow
// stack once the backing deque has reached capacity, and that no element
// is lost.
func TestOverflowSpillsWhenDequeFull(t *testing.T) {
	o := newIntOverflow(t, 8) // effective capacity 6
	for i := 0; i < 6; i++ {
		o.Save(i)
	}
	if !o.OverflowIsEmpty() {
		t.Fatal("overflow stack non-empty before the deque is full")
	}
	o.Save(100)
	o.Save(101)
	if o.OverflowIsEmpty() {
		t.Fatal("overflow stack empty after spilling past deque capacity")
	}

	var got []int
	for {
		v, ok := o.Retrieve()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 8 {
		t.Fatalf("total retrieved: got %d, want 8", len(got))
	}
}

// TestOverflowRetrieveOrder verifies Retrieve drains the LIFO overflow
// stack before falling back to the deque.
func TestOverflowRetrieveOrder(t *testing.T) {
	o := newIntOverflow(t, 8)
	o.Save(1)
	o.Save(2)
	o.Save(3)
	o.Save(4)
	o.Save(5)
	o.Save(6)
	o.Save(999) // spills, since deque capacity is 6

	v, ok := o.Retrieve()
	if !ok || v != 999 {
		t.Fatalf("first Retrieve: got (%d,%v), want (999,true)", v, ok)
	}

	v, ok = o.RetrieveFromStealableQueue()
	if !ok || v != 6 {
		t.Fatalf("RetrieveFromStealableQueue: got (%d,%v), want (6,true)", v, ok)
	}
}

// TestOverflowRetrieveFromOverflowOnly verifies
// RetrieveFromOverflow never touches the deque half.
func TestOverflowRetrieveFromOverflowOnly(t *testing.T) {
	o := newIntOverflow(t, 8)
	o.Save(1)
	o.Save(2)
	o.Save(3)
	o.Save(4)
	o.Save(5)
	o.Save(6)
	o.Save(7) // spills

	if o.StealableIsEmpty() {
		t.Fatal("deque half reported empty though it holds 6 elements")
	}
	v, ok := o.RetrieveFromOverflow()
	if !ok || v != 7 {
		t.Fatalf("RetrieveFromOverflow: got (%d,%v), want (7,true)", v, ok)
	}
	if !o.OverflowIsEmpty() {
		t.Fatal("overflow stack non-empty after draining its only element")
	}
	if o.StealableIsEmpty() {
		t.Fatal("RetrieveFromOverflow touched the deque half")
	}
}

// TestOverflowIsEmpty verifies IsEmpty is true only when both halves are.
func TestOverflowIsEmpty(t *testing.T) {
	o := newIntOverflow(t, 8)
	if !o.IsEmpty() {
		t.Fatal("IsEmpty false on a fresh Overflow")
	}
	o.Save(1)
	if o.IsEmpty() {
		t.Fatal("IsEmpty true with one element in the deque half")
	}
	o.Retrieve()
	if !o.IsEmpty() {
		t.Fatal("IsEmpty false after draining the only element")
	}
}

// TestOverflowRetrieveErr checks the iox-flavored wrapper surfaces
// ErrEmpty on an empty Overflow and nil on success.
func TestOverflowRetrieveErr(t *testing.T) {
	o := newIntOverflow(t, 8)
	if _, err := o.RetrieveErr(); err != wsteal.ErrEmpty {
		t.Fatalf("RetrieveErr on empty: got %v, want ErrEmpty", err)
	}
	o.Save(42)
	v, err := o.RetrieveErr()
	if err != nil || v != 42 {
		t.Fatalf("RetrieveErr: got (%d,%v), want (42,nil)", v, err)
	}
}

// TestOverflowDequeIsStealable verifies the deque half returned by Deque
// is the same one stolen from externally, i.e. overflowed elements are
// invisible to a thief.
func TestOverflowDequeIsStealable(t *testing.T) {
	o := newIntOverflow(t, 8)
	for i := 0; i < 6; i++ {
		o.Save(i)
	}
	o.Save(999) // spills; must not be stealable

	d := o.Deque()
	v, ok := d.PopGlobal()
	if !ok {
		t.Fatal("PopGlobal found nothing on the deque half")
	}
	if v == 999 {
		t.Fatal("a thief observed an overflowed (non-stealable) element")
	}
}
