// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lockfree

// RaceEnabled is true when the race detector is active. Tests use it to
// skip stress scenarios that rely on unsafe pointer round-tripping
// through TaggedPointer's raw uint64 lanes, which the race detector
// cannot see as the same memory and flags as a false positive.
const RaceEnabled = true
