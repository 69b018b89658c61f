// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Tag constrains the counter type packed alongside a pointer in a
// [TaggedPointer]. Restricting it to one- or two-byte unsigned integers
// is the static check spec.md calls for: a tag wide enough to make a
// same-pointer ABA cycle vanishingly improbable within the longest
// realistic preemption, but never wider than two bytes. Attempting to
// instantiate a TaggedPointer with, say, a uint32 tag is a compile error,
// not a runtime one.
type Tag interface {
	~uint8 | ~uint16
}

// TaggedPointer holds a pointer and a tag as one atomically-updatable
// pair, defeating the ABA hazard when callers advance the tag on every
// successful CompareAndSwap (as [Stack] does), so a stale (ptr, tag) pair
// read before a preemption can never match the live value again after
// the pointed-to node is popped, freed^Wreused, and pushed back.
//
// The pair is stored in a single [atomix.Uint128], the package's
// double-wide atomic primitive — the tag occupies the low 64-bit lane,
// the pointer (as a uintptr) the high lane, both updated together by one
// hardware CAS. Unlike an implementation limited to a single 64-bit word,
// this needs no bit-stealing from the pointer's high bits: tag and
// pointer each get a full lane.
//
// raw's pointer lane holds only the bit pattern of the pointer, which
// Go's precise GC does not scan as a root. keep mirrors the same value
// in a real *T field purely so the pointee stays reachable for as long
// as its bits are live in raw — every successful Store/CompareAndSwap
// updates both together. Without it, a node whose only remaining
// reference is this slot (e.g. right after [Stack.Push] returns) would
// become collectible while still logically held here, and a later Load
// would decode a dangling address.
//
// The zero value is a valid TaggedPointer holding (nil, 0).
type TaggedPointer[T any, G Tag] struct {
	raw  atomix.Uint128
	keep atomic.Pointer[T]
}

// Load atomically reads the pointer and tag together.
func (p *TaggedPointer[T, G]) Load() (*T, G) {
	lo, hi := p.raw.LoadAcquire()
	return pointerFromBits[T](hi), G(lo)
}

// Store atomically overwrites the pointer and tag together.
func (p *TaggedPointer[T, G]) Store(ptr *T, tag G) {
	p.keep.Store(ptr)
	p.raw.StoreRelease(uint64(tag), bitsFromPointer(ptr))
}

// CompareAndSwap replaces (expectedPtr, expectedTag) with (newPtr,
// newTag) iff the slot currently holds exactly (expectedPtr,
// expectedTag). It reports whether the replacement happened; on failure
// the slot is left untouched.
func (p *TaggedPointer[T, G]) CompareAndSwap(expectedPtr *T, expectedTag G, newPtr *T, newTag G) bool {
	if !p.raw.CompareAndSwapAcqRel(
		uint64(expectedTag), bitsFromPointer(expectedPtr),
		uint64(newTag), bitsFromPointer(newPtr),
	) {
		return false
	}
	p.keep.Store(newPtr)
	return true
}

func bitsFromPointer[T any](ptr *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(ptr)))
}

func pointerFromBits[T any](bits uint64) *T {
	return (*T)(unsafe.Pointer(uintptr(bits)))
}
