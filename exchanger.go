// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "code.hybscloud.com/spin"

// exchangeState is the three-state machine carried in an [Exchanger]'s
// tag: no one is offering a pointer, exactly one goroutine is waiting
// for a partner, or two goroutines have agreed to swap and the original
// waiter has not yet cleaned up.
type exchangeState uint8

const (
	stateEmpty exchangeState = iota
	stateWaiting
	stateBusy
)

// Exchanger is a rendezvous slot where two goroutines atomically swap
// one pointer each. It is the back-off mechanism [Stack] falls back to
// on central-CAS contention, but it has no dependency on Stack and is
// useful standalone wherever two producers need to hand off a pointer
// without a channel.
//
// Padded out to a cache line so that a [Stack]'s elimination array
// doesn't put two adjacent slots' hot CAS targets next to each other.
//
// The zero value is a valid, empty Exchanger.
type Exchanger[T any] struct {
	slot TaggedPointer[T, exchangeState]
	_    pad
}

// Exchange offers myPtr (which may be nil) for up to timeout spin
// iterations, attempting to trade it for another goroutine's offered
// pointer. It reports ok=true iff a partner was found, in which case the
// returned pointer is exactly the value the partner offered.
//
// If two goroutines succeed in the same rendezvous, the pair is
// consistent: each receives exactly what the other offered. A third
// goroutine that arrives mid-rendezvous (observes BUSY) never interferes
// with it; it keeps re-observing the slot until it clears (or its own
// timeout expires).
//
// timeout is a pure spin count, not a wall-clock duration. Exchange
// shares a single spin budget across both the initial wait for a
// partner and a subsequent arrival, matching the reference
// implementation this type is ported from.
func (e *Exchanger[T]) Exchange(myPtr *T, timeout int) (partner *T, ok bool) {
	sw := spin.Wait{}
	for attempts := 0; attempts < timeout; attempts++ {
		existing, state := e.slot.Load()
		switch state {
		case stateEmpty:
			if !e.slot.CompareAndSwap(existing, stateEmpty, myPtr, stateWaiting) {
				break
			}
			// Slot is ours; spin until a partner arrives, sharing the
			// outer budget.
			for {
				existing, state = e.slot.Load()
				if state == stateBusy {
					e.slot.Store(nil, stateEmpty)
					return existing, true
				}
				attempts++
				if attempts >= timeout {
					break
				}
				sw.Once()
			}
			// Spin budget exhausted with no partner; try to reclaim the
			// slot ourselves.
			if e.slot.CompareAndSwap(myPtr, stateWaiting, nil, stateEmpty) {
				return nil, false
			}
			// A partner arrived between our last check and the CAS
			// above: complete the rendezvous instead of reporting
			// failure.
			existing, _ = e.slot.Load()
			e.slot.Store(nil, stateEmpty)
			return existing, true
		case stateWaiting:
			if e.slot.CompareAndSwap(existing, stateWaiting, myPtr, stateBusy) {
				return existing, true
			}
		case stateBusy:
			// Two other goroutines are mid-rendezvous; don't interfere.
		}
		sw.Once()
	}
	return nil, false
}
