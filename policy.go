// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

// Seed is a Park–Miller multiplicative LCG state, owned by a single
// caller. There is no global RNG state in this package: each worker keeps
// its own Seed, which avoids cross-worker contention and makes victim
// selection reproducible under test.
type Seed uint32

// NewSeed returns a Seed initialized to v. A zero v is replaced by 1,
// since the generator would otherwise stay at 0 forever.
func NewSeed(v uint32) Seed {
	if v == 0 {
		v = 1
	}
	return Seed(v)
}

// Next advances the seed and returns the new value: seed = seed*16807 mod
// (2^31 - 1).
func (s *Seed) Next() uint32 {
	*s = Seed((uint64(*s) * 16807) % 0x7fffffff)
	return uint32(*s)
}

// StealPolicy picks a victim in a DequeSet and attempts to steal from it.
// Implementations are small, stateless (beyond the caller-owned seed)
// capabilities so hosts can swap victim-selection strategy without
// touching DequeSet or Deque.
type StealPolicy[E any] interface {
	Steal(set *DequeSet[E], myIndex int, seed *Seed) (E, bool)
}

// Random1 steals from a single uniformly-random victim other than the
// caller.
type Random1[E any] struct{}

// Steal implements StealPolicy[E].
func (Random1[E]) Steal(set *DequeSet[E], myIndex int, seed *Seed) (E, bool) {
	n := set.Len()
	var zero E
	switch {
	case n == 1:
		return zero, false
	case n == 2:
		return trySteal(set, other2(myIndex))
	default:
		k := myIndex
		for k == myIndex {
			k = int(seed.Next() % uint32(n))
		}
		return trySteal(set, k)
	}
}

// BestOfTwo samples two distinct victims other than the caller and steals
// from whichever reports the larger size. Ties favor the first victim
// sampled. This is the default policy; DequeSet.Steal hardwires it.
type BestOfTwo[E any] struct{}

// Steal implements StealPolicy[E].
func (BestOfTwo[E]) Steal(set *DequeSet[E], myIndex int, seed *Seed) (E, bool) {
	n := set.Len()
	var zero E
	switch {
	case n == 1:
		return zero, false
	case n == 2:
		return trySteal(set, other2(myIndex))
	default:
		k1 := myIndex
		for k1 == myIndex {
			k1 = int(seed.Next() % uint32(n))
		}
		k2 := myIndex
		for k2 == myIndex || k2 == k1 {
			k2 = int(seed.Next() % uint32(n))
		}
		sz1 := queueSize(set, k1)
		sz2 := queueSize(set, k2)
		if sz2 > sz1 {
			return trySteal(set, k2)
		}
		return trySteal(set, k1)
	}
}

// BestOfAll scans every registered deque, computes its size, and steals
// from the largest non-empty one.
type BestOfAll[E any] struct{}

// Steal implements StealPolicy[E].
func (BestOfAll[E]) Steal(set *DequeSet[E], myIndex int, seed *Seed) (E, bool) {
	n := set.Len()
	var zero E
	switch {
	case n == 1:
		return zero, false
	case n == 2:
		return trySteal(set, other2(myIndex))
	default:
		bestK := -1
		var bestSz uint32
		for k := range n {
			if k == myIndex {
				continue
			}
			sz := queueSize(set, k)
			if sz > bestSz {
				bestSz = sz
				bestK = k
			}
		}
		if bestK < 0 || bestSz == 0 {
			return zero, false
		}
		return trySteal(set, bestK)
	}
}

func other2(myIndex int) int {
	return (myIndex + 1) % 2
}

func queueSize[E any](set *DequeSet[E], i int) uint32 {
	q := set.Queue(i)
	if q == nil {
		return 0
	}
	return q.Size()
}

func trySteal[E any](set *DequeSet[E], i int) (E, bool) {
	q := set.Queue(i)
	if q == nil {
		var zero E
		return zero, false
	}
	return q.PopGlobal()
}
