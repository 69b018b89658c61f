// Copyright 2026 The Lockfree Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockfree_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"github.com/mmcshane/lockfree"
)

type qNode struct {
	lockfree.Link[qNode]
	val int
}

func TestQueueEmptyPopReturnsNil(t *testing.T) {
	q := lockfree.NewQueue[qNode, *qNode]()
	if got := q.Pop(); got != nil {
		t.Fatalf("Pop on empty queue: got %v, want nil", got)
	}
}

func TestQueueSingleThreadedFIFO(t *testing.T) {
	q := lockfree.NewQueue[qNode, *qNode]()
	const n = 1000

	nodes := make([]*qNode, n)
	for i := range n {
		nodes[i] = &qNode{val: i}
		q.Push(nodes[i])
	}

	for i := range n {
		got := q.Pop()
		if got == nil {
			t.Fatalf("Pop(%d): got nil, want node with val=%d", i, i)
		}
		if got.val != i {
			t.Fatalf("Pop(%d): got val=%d, want %d", i, got.val, i)
		}
	}

	if got := q.Pop(); got != nil {
		t.Fatalf("Pop after draining: got %v, want nil", got)
	}
}

// TestQueueMPSCRoundTrip pushes a fixed set of nodes from a single
// producer and drains them from a single consumer running concurrently,
// confirming every node is observed exactly once in FIFO order.
func TestQueueMPSCRoundTrip(t *testing.T) {
	if lockfree.RaceEnabled {
		t.Skip("skip: relies on cross-variable memory ordering the race detector cannot model")
	}

	q := lockfree.NewQueue[qNode, *qNode]()
	const n = 5000

	var wg sync.WaitGroup
	results := make([]int, 0, n)

	wg.Add(1)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		deadline := time.Now().Add(5 * time.Second)
		for len(results) < n {
			if time.Now().After(deadline) {
				return
			}
			node := q.Pop()
			if node == nil {
				backoff.Wait()
				continue
			}
			backoff.Reset()
			results = append(results, node.val)
		}
	}()

	for i := range n {
		q.Push(&qNode{val: i})
	}

	wg.Wait()

	if len(results) != n {
		t.Fatalf("consumed %d/%d items", len(results), n)
	}
	for i, v := range results {
		if v != i {
			t.Fatalf("FIFO violation at position %d: got %d, want %d", i, v, i)
		}
	}
}

// TestQueueMPSCStress runs many producers against one consumer, draining
// with a poison pill once all producers are done, and verifies exactly
// the expected total count of nodes is observed (conservation: nothing
// lost, nothing duplicated).
func TestQueueMPSCStress(t *testing.T) {
	if lockfree.RaceEnabled {
		t.Skip("skip: high-contention MPSC stress is slow and ordering-sensitive under the race detector")
	}

	q := lockfree.NewQueue[qNode, *qNode]()
	const (
		numProducers = 8
		perProducer  = 100_000
	)
	total := numProducers * perProducer

	var wg sync.WaitGroup
	for p := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perProducer {
				q.Push(&qNode{val: id*perProducer + i})
			}
		}(p)
	}

	poison := &qNode{val: -1}
	go func() {
		wg.Wait()
		q.Push(poison)
	}()

	var count atomic.Int64
	seen := make(map[int]bool, total)
	var mu sync.Mutex
	backoff := iox.Backoff{}
	deadline := time.Now().Add(30 * time.Second)
	for {
		node := q.Pop()
		if node == nil {
			if time.Now().After(deadline) {
				t.Fatalf("timed out: consumed %d/%d", count.Load(), total)
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()
		if node == poison {
			break
		}
		mu.Lock()
		if seen[node.val] {
			mu.Unlock()
			t.Fatalf("duplicate value observed: %d", node.val)
		}
		seen[node.val] = true
		mu.Unlock()
		count.Add(1)
	}

	if int(count.Load()) != total {
		t.Fatalf("consumed %d items, want %d", count.Load(), total)
	}
}

// TestQueueFIFOPerProducer checks that a single producer's own pushes
// stay in order even while other producers interleave with it; the spec
// only guarantees order within one producer's pushes, not across them.
func TestQueueFIFOPerProducer(t *testing.T) {
	if lockfree.RaceEnabled {
		t.Skip("skip: FIFO-per-producer test requires precise concurrent timing")
	}

	q := lockfree.NewQueue[qNode, *qNode]()
	const (
		numProducers = 4
		itemsPerProd = 5000
	)

	var wg sync.WaitGroup
	for p := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProd {
				q.Push(&qNode{val: id*100000 + i})
			}
		}(p)
	}

	poison := &qNode{val: -1}
	go func() {
		wg.Wait()
		q.Push(poison)
	}()

	lastSeq := make([]int, numProducers)
	for i := range lastSeq {
		lastSeq[i] = -1
	}

	backoff := iox.Backoff{}
	deadline := time.Now().Add(10 * time.Second)
	consumed := 0
	for {
		node := q.Pop()
		if node == nil {
			if time.Now().After(deadline) {
				t.Fatalf("timed out: consumed %d/%d", consumed, numProducers*itemsPerProd)
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()
		if node == poison {
			break
		}
		id := node.val / 100000
		seq := node.val % 100000
		if seq <= lastSeq[id] {
			t.Fatalf("producer %d: sequence went backward: %d after %d", id, seq, lastSeq[id])
		}
		lastSeq[id] = seq
		consumed++
	}

	if consumed != numProducers*itemsPerProd {
		t.Fatalf("consumed %d items, want %d", consumed, numProducers*itemsPerProd)
	}
}
