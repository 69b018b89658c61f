// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "sync/atomic"

// Linked is the compile-time capability set a node type's pointer must
// satisfy to participate in [Queue] or [Stack]. A node exposes its
// intrusive forward link either by embedding [Link], or by implementing
// Next and SetNext directly.
//
// The container touches exactly this one field of a node; the rest of
// the node is the caller's payload and is never inspected or copied.
type Linked[T any] interface {
	*T
	// Next returns the node currently linked after this one, or nil.
	Next() *T
	// SetNext replaces the node linked after this one.
	SetNext(next *T)
}

// Link is an embeddable helper that gives a node type T a working
// [Linked] implementation with no extra allocation: the link lives
// inside the node itself, as spec'd for an intrusive container.
//
//	type Job struct {
//	    lockfree.Link[Job]
//	    Payload int
//	}
//
//	var q = lockfree.NewQueue[Job, *Job]()
//	q.Push(&Job{Payload: 42})
//
// The link word is a plain atomic pointer: a node's link is written once
// by whichever goroutine currently owns the node (the pusher, or the
// queue's single consumer) and read by at most one other goroutine
// concurrently, so no CAS or tag is needed here — only ordered
// visibility of the write.
type Link[T any] struct {
	next atomic.Pointer[T]
}

// Next returns the linked next node, or nil.
func (l *Link[T]) Next() *T { return l.next.Load() }

// SetNext replaces the linked next node.
func (l *Link[T]) SetNext(next *T) { l.next.Store(next) }
