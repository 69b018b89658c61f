// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree

// pad is cache line padding to prevent false sharing between hot atomic
// fields owned by different goroutines (e.g. a queue's producer-owned
// head and consumer-owned tail).
type pad [64]byte
