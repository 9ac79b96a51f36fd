// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

import (
	"runtime"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Scheduler is the host thread capability the termination detector needs:
// a cooperative yield and a millisecond sleep. Expose it as a capability,
// not a package-level function, so tests can substitute a deterministic
// scheduler and make termination reproducible.
type Scheduler interface {
	// Yield gives up the current goroutine's turn without blocking for a
	// fixed duration.
	Yield()
	// Sleep blocks the caller for approximately d.
	Sleep(d time.Duration)
}

// RuntimeScheduler is the default Scheduler: runtime.Gosched() for Yield,
// time.Sleep for Sleep.
type RuntimeScheduler struct{}

// Yield implements Scheduler.
func (RuntimeScheduler) Yield() { runtime.Gosched() }

// Sleep implements Scheduler.
func (RuntimeScheduler) Sleep(d time.Duration) { time.Sleep(d) }

// Terminator detects distributed quiescence across a fleet of workers
// sharing a DequeSet. Each worker, on exhausting its local and stolen
// work, calls OfferTermination; the call returns true only once every
// worker has offered simultaneously with no deque holding any task.
//
// A thief about to push new work always increments its deque's bottom
// before any termination check it might itself make. If a checking worker
// observes the push, it bails out of offering and goes back to stealing.
// If it doesn't, the pushing worker's own later offer cannot raise the
// shared counter to n_threads until the new work is itself drained — so
// consensus is reached only when the fleet is globally, stably idle.
type Terminator[E any] struct {
	_          pad
	offered    atomix.Int64
	_          pad
	threads    int
	set        *DequeSet[E]
	sched      Scheduler
	yieldLimit int
}

// NewTerminator builds a detector for threads workers sharing set,
// using sched for the yield/sleep backoff. The yield limit defaults to 20
// and may be overridden with SetYieldLimit before use.
func NewTerminator[E any](threads int, set *DequeSet[E], sched Scheduler) *Terminator[E] {
	if sched == nil {
		sched = RuntimeScheduler{}
	}
	return &Terminator[E]{
		threads:    threads,
		set:        set,
		sched:      sched,
		yieldLimit: 20,
	}
}

// SetYieldLimit overrides the number of yield attempts tried before
// escalating to Sleep. Tests that want a tight, deterministic loop
// typically set this to 0 or 1.
func (t *Terminator[E]) SetYieldLimit(k int) {
	t.yieldLimit = k
}

// OfferTermination registers the calling worker as idle and ready to
// terminate. Returns true iff all threads workers are simultaneously
// idle, meaning the whole fleet may terminate. Returns false as soon as
// fresh work is observed anywhere in the queue set, having already
// retracted the caller's offer.
func (t *Terminator[E]) OfferTermination() bool {
	t.offered.AddAcqRel(1)
	attempts := 0
	sw := spin.Wait{}
	for {
		if t.offered.LoadAcquire() == int64(t.threads) {
			return true
		}
		if t.peekInQueueSet() {
			t.offered.AddAcqRel(-1)
			return false
		}
		if attempts < t.yieldLimit {
			sw.Once()
			t.sched.Yield()
		} else {
			t.sched.Sleep(time.Millisecond)
		}
		attempts++
	}
}

func (t *Terminator[E]) peekInQueueSet() bool {
	return t.set.Peek()
}

// ResetForReuse zeroes the offered counter so the terminator can be used
// for another round. The caller must ensure no worker is mid-offer when
// this is called.
func (t *Terminator[E]) ResetForReuse() {
	t.offered.StoreRelaxed(0)
}

// Offered returns the current count of workers offering termination. It
// exists for tests asserting the exact consensus moment; it is not part
// of the termination protocol itself.
func (t *Terminator[E]) Offered() int64 {
	return t.offered.LoadAcquire()
}
