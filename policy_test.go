// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal_test

import (
	"testing"

	"github.com/quartzgc/wsteal"
)

// TestSeedDeterministic verifies the Park-Miller LCG is a pure function
// of its seed, so per-worker victim selection is reproducible under test.
func TestSeedDeterministic(t *testing.T) {
	a := wsteal.NewSeed(12345)
	b := wsteal.NewSeed(12345)
	for i := 0; i < 10; i++ {
		av, bv := a.Next(), b.Next()
		if av != bv {
			t.Fatalf("iteration %d: seeds diverged: %d vs %d", i, av, bv)
		}
	}
}

// TestSeedZeroDoesNotStick verifies a zero seed is coerced to a
// non-degenerate starting value rather than generating all zeros forever.
func TestSeedZeroDoesNotStick(t *testing.T) {
	s := wsteal.NewSeed(0)
	if s.Next() == 0 {
		t.Fatal("Next() from a zero seed returned 0")
	}
}

func buildPolicySet(t *testing.T, n, capacity int) *wsteal.DequeSet[int] {
	t.Helper()
	return wsteal.RegisterAll[int](n, capacity)
}

func policyCases[E any]() []struct {
	name   string
	policy wsteal.StealPolicy[E]
} {
	return []struct {
		name   string
		policy wsteal.StealPolicy[E]
	}{
		{"Random1", wsteal.Random1[E]{}},
		{"BestOfTwo", wsteal.BestOfTwo[E]{}},
		{"BestOfAll", wsteal.BestOfAll[E]{}},
	}
}

// TestPoliciesNeverStealFromSelf checks all three policies for N>2 never
// return the caller's own index as a victim by loading every other deque
// empty and confirming a non-empty self queue is never drained.
func TestPoliciesNeverStealFromSelf(t *testing.T) {
	for _, tc := range policyCases[int]() {
		t.Run(tc.name, func(t *testing.T) {
			set := buildPolicySet(t, 5, 64)
			self := 2
			set.Queue(self).Push(777) // only self has work
			seed := wsteal.NewSeed(42)
			if _, ok := set.StealWith(self, &seed, tc.policy); ok {
				t.Fatal("policy stole from the caller's own deque")
			}
			if v, ok := set.Queue(self).PopLocal(); !ok || v != 777 {
				t.Fatal("self queue's element was taken by a steal attempt")
			}
		})
	}
}

// TestPoliciesFindTheOnlyVictim checks all three policies succeed within
// 2*N attempts (the budget DequeSet.Steal uses) when exactly one other
// deque holds work. Random1 and BestOfTwo sample victims at random, so a
// single attempt may pick an empty deque.
func TestPoliciesFindTheOnlyVictim(t *testing.T) {
	for _, tc := range policyCases[int]() {
		t.Run(tc.name, func(t *testing.T) {
			set := buildPolicySet(t, 6, 64)
			set.Queue(4).Push(55)
			seed := wsteal.NewSeed(7)
			var v int
			var ok bool
			for i := 0; i < 2*set.Len() && !ok; i++ {
				v, ok = set.StealWith(0, &seed, tc.policy)
			}
			if !ok || v != 55 {
				t.Fatalf("StealWith: got (%d,%v), want (55,true)", v, ok)
			}
		})
	}
}

// TestBestOfAllPrefersLargest verifies BestOfAll picks the deque with the
// most elements among several non-empty candidates.
func TestBestOfAllPrefersLargest(t *testing.T) {
	set := buildPolicySet(t, 4, 64)
	set.Queue(1).Push(1)
	set.Queue(2).Push(1)
	set.Queue(2).Push(2)
	set.Queue(2).Push(3) // largest: 3 elements
	seed := wsteal.NewSeed(5)
	v, ok := wsteal.BestOfAll[int]{}.Steal(set, 0, &seed)
	if !ok {
		t.Fatal("BestOfAll found no victim")
	}
	if v != 1 {
		t.Fatalf("BestOfAll: got %d, want the oldest element 1 of the largest deque", v)
	}
	if sz := set.Queue(2).Size(); sz != 2 {
		t.Fatalf("largest deque size after steal: got %d, want 2", sz)
	}
}
