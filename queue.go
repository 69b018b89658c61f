// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "sync/atomic"

// Queue is an intrusive multi-producer / single-consumer FIFO queue.
// Many goroutines may call [Queue.Push] concurrently; exactly one
// goroutine may call [Queue.Pop] at a time — concurrent Pop calls are a
// contract violation, not a checked error (spec.md §5, "Single-consumer
// requirement").
//
// Push is wait-free: it always completes in one atomic exchange plus two
// link stores, regardless of contention. Pop is lock-free: a producer
// caught mid-push can make Pop observe the queue as momentarily empty
// even though a push is in flight; the caller is expected to retry
// (pairing well with [code.hybscloud.com/iox.Backoff], as the teacher's
// doc comments do for its own "would block" results).
//
// The queue is unbounded and never allocates: nodes are caller-owned and
// linked in place via [Linked]. Queue never frees a node; the caller
// must ensure a popped node is not freed while another goroutine might
// still be mid-traversal to it (there is no reclamation scheme here —
// see spec.md §1 Non-goals).
//
// The zero value is not usable; construct with [NewQueue].
type Queue[T any, P Linked[T]] struct {
	stub T
	_    pad
	head atomic.Pointer[T] // producer-swapped
	_    pad
	tail *T // consumer-owned only
}

// NewQueue creates an empty queue.
func NewQueue[T any, P Linked[T]]() *Queue[T, P] {
	q := new(Queue[T, P])
	P(&q.stub).SetNext(nil)
	q.head.Store(&q.stub)
	q.tail = &q.stub
	return q
}

// Push adds node to the queue. Safe to call from any number of
// goroutines concurrently. If the same goroutine calls Push(a) then
// Push(b), Pop will return a before b (spec.md §5's per-producer FIFO
// guarantee); interleaving across distinct producers is unspecified.
func (q *Queue[T, P]) Push(node P) {
	node.SetNext(nil)
	n := (*T)(node)
	prev := q.head.Swap(n)
	P(prev).SetNext(n)
}

// Pop removes and returns the node at the front of the queue, or nil if
// the queue is empty or only momentarily appears so (a producer is
// between its atomic head swap and writing the forward link — spec.md
// §4.C). Must not be called concurrently with another Pop.
func (q *Queue[T, P]) Pop() P {
	t := q.tail
	n := P(t).Next()

	if t == &q.stub {
		if n == nil {
			return nil
		}
		q.tail = n
		t = n
		n = P(n).Next()
	}

	if n != nil {
		q.tail = n
		return P(t)
	}

	h := q.head.Load()
	if t != h {
		return nil
	}

	// Producer finished pushing but tail has caught all the way up to
	// head; push the stub back on to restore the head/tail gap the
	// algorithm depends on, then see if a next link has since appeared.
	q.Push(P(&q.stub))
	n = P(t).Next()
	if n != nil {
		q.tail = n
		return P(t)
	}
	return nil
}
