// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

// EliminationOptions configures a [Stack]'s back-off behaviour.
//
// Slots must be a power of two (enabling mask-based indexing); it may be
// zero to disable elimination entirely. Timeout is the spin budget
// handed to each [Exchanger.Exchange] attempt. Attempts is how many
// distinct slots a single back-off episode tries before giving up and
// returning to the direct CAS path.
type EliminationOptions struct {
	Slots    uint32
	Timeout  int
	Attempts int
}

// Disabled is the well-known preset that turns elimination off: Push and
// Pop degenerate to the direct CAS loop with no elimination array
// allocated and no exchanger ever touched.
var Disabled = EliminationOptions{}

// Stack is an intrusive lock-free LIFO stack. On central-CAS contention
// it backs off into an array of [Exchanger] slots, letting a pusher and
// a popper hand a node directly to each other instead of retrying the
// shared top pointer.
//
// Push always succeeds (the stack is unbounded); Pop returns nil for
// empty. Neither returns an error — see spec.md §7. The stack never
// frees a node; Clear forgets the top pointer without touching node
// memory, so the caller remains responsible for every node's lifetime
// (spec.md §1 Non-goals).
//
// The zero value is not usable; construct with [NewStack].
type Stack[T any, P Linked[T]] struct {
	top   TaggedPointer[T, uint16]
	_     pad
	slots []Exchanger[T]
	mask  uint64
	opts  EliminationOptions
}

// NewStack creates an empty stack configured with opts. Passing
// [Disabled] (the zero value) allocates no elimination array.
//
// Panics if opts.Slots is set but is not a power of two.
func NewStack[T any, P Linked[T]](opts EliminationOptions) *Stack[T, P] {
	if opts.Slots != 0 && opts.Slots&(opts.Slots-1) != 0 {
		panic("lockfree: EliminationOptions.Slots must be a power of two")
	}
	s := &Stack[T, P]{opts: opts}
	if opts.Slots > 0 && opts.Attempts > 0 {
		s.slots = make([]Exchanger[T], opts.Slots)
		s.mask = uint64(opts.Slots) - 1
	}
	return s
}

// Push puts node on top of the stack. Always succeeds.
func (s *Stack[T, P]) Push(node P) {
	for {
		if s.tryPush(node) {
			return
		}
		if s.eliminatePush(node) {
			return
		}
	}
}

// Pop removes and returns the node on top of the stack, or nil if the
// stack is empty.
func (s *Stack[T, P]) Pop() P {
	for {
		node, empty, ok := s.tryPop()
		if ok {
			return node
		}
		if empty {
			return nil
		}
		if out, ok := s.eliminatePop(); ok {
			return out
		}
	}
}

// Clear resets the stack to empty without touching any node's memory.
// Not safe to call concurrently with other operations on the same
// stack; intended for single-threaded reset between uses.
func (s *Stack[T, P]) Clear() {
	s.top.Store(nil, 0)
}

// Empty reports whether the stack currently has no top node. The result
// may be stale the instant it is returned under concurrent access.
func (s *Stack[T, P]) Empty() bool {
	top, _ := s.top.Load()
	return top == nil
}

// tryPush attempts the direct CAS path once. The bool result is whether
// it succeeded; on failure the caller falls back to elimination.
func (s *Stack[T, P]) tryPush(node P) bool {
	top, tag := s.top.Load()
	node.SetNext(top)
	return s.top.CompareAndSwap(top, tag, (*T)(node), tag+1)
}

// tryPop attempts the direct CAS path once. empty reports a genuinely
// empty stack (no point falling back to elimination); ok reports success,
// with node holding the popped value.
func (s *Stack[T, P]) tryPop() (node P, empty bool, ok bool) {
	top, tag := s.top.Load()
	if top == nil {
		return nil, true, false
	}
	next := P(top).Next()
	if s.top.CompareAndSwap(top, tag, next, tag+1) {
		return P(top), false, true
	}
	return nil, false, false
}

// eliminatePush tries to hand node directly to a waiting popper via the
// elimination array. It only counts as success if the exchange partner
// was itself a popper (signaled by offering a nil pointer); a pusher
// meeting a pusher is elimination failure, same as a timeout.
func (s *Stack[T, P]) eliminatePush(node P) bool {
	if len(s.slots) == 0 {
		return false
	}
	for attempt := 0; attempt < s.opts.Attempts; attempt++ {
		idx := pickSlot(s.mask)
		partner, ok := s.slots[idx].Exchange((*T)(node), s.opts.Timeout)
		if ok && partner == nil {
			return true
		}
	}
	return false
}

// eliminatePop tries to receive a node directly from a waiting pusher.
// It only counts as success if the partner offered a non-nil pointer; a
// popper meeting a popper is elimination failure.
func (s *Stack[T, P]) eliminatePop() (P, bool) {
	if len(s.slots) == 0 {
		return nil, false
	}
	for attempt := 0; attempt < s.opts.Attempts; attempt++ {
		idx := pickSlot(s.mask)
		partner, ok := s.slots[idx].Exchange(nil, s.opts.Timeout)
		if ok && partner != nil {
			return P(partner), true
		}
	}
	return nil, false
}
