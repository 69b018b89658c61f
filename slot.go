// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

import "math/rand/v2"

// pickSlot returns a uniformly distributed index in [0, mask], masking a
// fast per-goroutine random source rather than a shared counter — a
// process-wide source would itself become the contention point
// elimination is trying to avoid (spec.md §9). math/rand/v2's
// package-level generator is seeded per scheduler goroutine, not behind
// one shared lock, so repeated calls from many goroutines don't
// serialize on each other the way a single shared PRNG or mutex would.
func pickSlot(mask uint64) uint64 {
	return rand.Uint64() & mask
}
