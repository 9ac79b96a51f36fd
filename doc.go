// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wsteal provides a bounded work-stealing task queue subsystem:
// one lock-free deque per worker, a set coordinating theft across the
// fleet, and a distributed termination detector.
//
// # Quick Start
//
//	d := wsteal.NewDeque[int](wsteal.DefaultCapacity)
//	if err := d.Init(wsteal.DefaultAllocator[int]{}); err != nil {
//	    log.Fatal(err)
//	}
//	d.Push(42)
//	v, ok := d.PopLocal() // owner-only
//
// Or build a whole fleet at once:
//
//	set := wsteal.RegisterAll[int](numWorkers, wsteal.DefaultCapacity)
//
// # Basic Usage
//
// Each worker owns exactly one Deque: it Pushes new tasks locally, Pops
// locally for LIFO cache locality, and when its own deque is empty,
// consults the DequeSet to steal from another worker's opposite end.
//
//	go func(id int, d *wsteal.Deque[Task]) {
//	    seed := wsteal.NewSeed(uint32(id) + 1)
//	    for {
//	        t, ok := d.PopLocal()
//	        if !ok {
//	            t, ok = set.Steal(id, &seed)
//	        }
//	        if !ok {
//	            if term.OfferTermination() {
//	                return
//	            }
//	            continue
//	        }
//	        process(t)
//	    }
//	}(id, set.Queue(id))
//
// # Work Distribution
//
// Pushing is owner-only and wait-free on the fast path; PopLocal is
// owner-only and wait-free except for the single contested-last-element
// CAS; PopGlobal (stealing) is lock-free and may be called by any
// goroutine. No queue operation ever blocks.
//
// # Termination
//
// Workers that find no local or stolen work call Terminator.OfferTermination.
// It returns true only once every worker has offered simultaneously with
// every deque in the set observed empty. A worker that pushes fresh work
// after offering will itself be the one to retract some other worker's
// premature consensus — see Terminator's doc comment for the argument.
//
//	term := wsteal.NewTerminator(numWorkers, set, wsteal.RuntimeScheduler{})
//	// ... workers call term.OfferTermination() when idle ...
//	term.ResetForReuse() // before running another round with the same set
//
// # Overflow
//
// Bursty producers that would otherwise see Push fail can pair a Deque
// with an Overflow, an owner-private unbounded LIFO spillover. Overflow
// is invisible to thieves: work saved there is not redistributable until
// the owner drains it back.
//
//	ov := wsteal.NewOverflow[Task](wsteal.DefaultCapacity)
//	if err := ov.Init(wsteal.DefaultAllocator[Task]{}); err != nil {
//	    log.Fatal(err)
//	}
//	ov.Save(t)             // deque first, overflow on full
//	v, ok := ov.Retrieve()  // overflow first, then deque
//
// # Error Handling
//
// Deque's own Push/PopLocal/PopGlobal are total: they report success or
// failure as a bool and never return an error. "Empty" and "lost the
// steal race" are indistinguishable by design, and the caller's only
// sensible response in either case is to retry or look elsewhere.
// [Overflow.RetrieveErr] is the one error-returning convenience wrapper
// this package adds, and it reports [ErrEmpty] (an alias of
// [code.hybscloud.com/iox.ErrWouldBlock]) via [IsWouldBlock] for hosts
// that have standardized on that vocabulary elsewhere in their pool.
// [Deque.Init]'s allocation failure is the one genuine failure in this
// package and is reported as [ErrAllocation], which [IsNonFailure]
// correctly reports as a failure rather than a would-block signal.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely through
// atomic memory orderings. Deque's age word and bottom index are
// correctly synchronized via acquire/release and a single CAS, but the
// detector can still report false positives on the cross-variable
// ordering between them. [RaceEnabled] lets tests skip or shorten cases
// that are known to trigger this.
package wsteal
