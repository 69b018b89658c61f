// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lockfree provides intrusive lock-free data structures: a tagged
// atomic pointer, a two-party exchanger, a multi-producer/single-consumer
// queue, and a LIFO stack with elimination back-off.
//
// [Queue] and [Stack] are intrusive: the caller's node type carries its
// own link field (via [Link] or a custom [Linked] implementation) and
// neither container allocates on Push. None of the containers free or
// reclaim nodes — the caller owns every node's lifetime from construction
// through whatever point is safe to reuse or discard it.
//
// # Quick Start
//
//	type Job struct {
//	    lockfree.Link[Job]
//	    ID int
//	}
//
//	s := lockfree.NewStack[Job, *Job](lockfree.Disabled)
//	s.Push(&Job{ID: 1})
//	job := s.Pop() // *Job, or nil if empty
//
//	q := lockfree.NewQueue[Job, *Job]()
//	q.Push(&Job{ID: 2})
//	job = q.Pop() // *Job, or nil if empty (or momentarily appears so)
//
// # Basic Usage
//
// A node type opts in to a container by embedding [Link] (which supplies
// Next/SetNext with no extra allocation) or by implementing [Linked]
// itself:
//
//	type Linked[T any] interface {
//	    *T
//	    Next() *T
//	    SetNext(*T)
//	}
//
// Both [Queue] and [Stack] take two type parameters — the node type T and
// its pointer type P — so that P's [Linked] methods are available without
// runtime dispatch:
//
//	q := lockfree.NewQueue[Job, *Job]()
//
// Push never fails; Pop returns the zero value of P (nil, for a pointer
// type) when there is nothing to take. Neither reports an error.
//
// # Common Patterns
//
// Event aggregation (MPSC queue, many producers into one consumer):
//
//	q := lockfree.NewQueue[Event, *Event]()
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Push(ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() { // single consumer
//	    backoff := iox.Backoff{}
//	    for {
//	        ev := q.Pop()
//	        if ev == nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        aggregate(ev)
//	    }
//	}()
//
// Free list / object pool (LIFO stack, recently freed objects are cache-hot):
//
//	free := lockfree.NewStack[Buffer, *Buffer](lockfree.Disabled)
//	free.Push(buf)
//	buf := free.Pop()
//	if buf == nil {
//	    buf = allocateBuffer()
//	}
//
// High-contention free list (stack with elimination back-off enabled):
//
//	opts := lockfree.EliminationOptions{Slots: 16, Timeout: 64, Attempts: 4}
//	free := lockfree.NewStack[Buffer, *Buffer](opts)
//
// Direct goroutine-to-goroutine handoff ([Exchanger], no container at all):
//
//	var ex lockfree.Exchanger[Token]
//	got, ok := ex.Exchange(myToken, 1000)
//
// # Thread Safety
//
//   - [Queue]: any number of goroutines may call Push concurrently;
//     exactly one goroutine may call Pop at a time.
//   - [Stack]: any number of goroutines may call Push and Pop concurrently.
//   - [Exchanger]: any number of goroutines may call Exchange concurrently;
//     each successful rendezvous pairs exactly two callers.
//   - [TaggedPointer]: safe for concurrent Load/Store/CompareAndSwap from
//     any number of goroutines; it is the primitive the other three are
//     built from, not typically used directly.
//
// Violating Queue's single-consumer requirement is undefined behavior, not
// a checked error.
//
// # Race Detection
//
// [TaggedPointer] stores a pointer's bits inside an [code.hybscloud.com/atomix.Uint128]
// lane rather than as a Go pointer the race detector or garbage collector
// can see directly as such. The pointee stays reachable because
// TaggedPointer also keeps the same value in a real pointer field,
// but the race detector has no way to correlate the two views of the same
// memory and may flag false sharing that isn't there. [RaceEnabled]
// reports whether the race detector is active so tests can skip the
// scenarios that trigger this.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the double-wide atomic
// primitive behind [TaggedPointer], and [code.hybscloud.com/spin] for
// CPU-pause-backed spinning inside [Exchanger.Exchange]. Callers retrying
// an empty [Queue.Pop] or a failed [Exchanger.Exchange] are expected to
// back off with [code.hybscloud.com/iox.Backoff], the same way the
// examples above do.
package lockfree
